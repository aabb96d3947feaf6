package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/internfinder/internfinder-client/internal/models"
	"github.com/internfinder/internfinder-client/pkg/errors"
	"github.com/internfinder/internfinder-client/pkg/httpclient"
	"github.com/internfinder/internfinder-client/pkg/logger"
	"github.com/internfinder/internfinder-client/pkg/metrics"
	"github.com/internfinder/internfinder-client/pkg/tracing"
)

const serviceName = "internfinder-api"

// resumeExtensions are the upload formats the remote service accepts.
var resumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// HTTPRemote talks to the recommendation service over HTTP+JSON. Requests are
// throttled by a local rate limiter so a misbehaving caller cannot hammer the
// service, and every operation is measured and traced.
type HTTPRemote struct {
	baseURL        string
	client         httpclient.Client
	limiter        *rate.Limiter
	maxResumeBytes int64
}

// Config holds the remote client's settings.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	RatePerSecond  float64
	RateBurst      int
	MaxResumeBytes int64
}

// NewHTTPRemote creates a Remote backed by the given HTTP client. A nil
// client gets a standard one with the configured timeout.
func NewHTTPRemote(cfg Config, client httpclient.Client) *HTTPRemote {
	if client == nil {
		client = httpclient.NewStandardClientWithTimeout(cfg.RequestTimeout)
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 10
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 5
	}
	if cfg.MaxResumeBytes <= 0 {
		cfg.MaxResumeBytes = 16 << 20
	}
	return &HTTPRemote{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		client:         client,
		limiter:        rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		maxResumeBytes: cfg.MaxResumeBytes,
	}
}

// Register creates an account and returns a fresh session.
func (r *HTTPRemote) Register(ctx context.Context, email, password, name string) (*AuthResponse, error) {
	payload := map[string]string{"email": email, "password": password, "name": name}
	var resp AuthResponse
	if err := r.postJSON(ctx, "register", "/register", "", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a session.
func (r *HTTPRemote) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	payload := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := r.postJSON(ctx, "login", "/login", "", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchProfile retrieves the account's profile, skills, interests and resume
// path in one call.
func (r *HTTPRemote) FetchProfile(ctx context.Context, token string) (*ProfileSnapshot, error) {
	var snap ProfileSnapshot
	if err := r.getJSON(ctx, "fetch_profile", "/user/profile", token, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SubmitProfile sends the profile for server-side persistence. The payload is
// forwarded exactly as given.
func (r *HTTPRemote) SubmitProfile(ctx context.Context, token string, profile *models.Profile) error {
	return r.postJSON(ctx, "submit_profile", "/submit_profile", token, profile, nil)
}

// SubmitSkills sends the selected skills and interests. An entirely empty
// skill set is rejected locally before any request goes out.
func (r *HTTPRemote) SubmitSkills(ctx context.Context, token string, skills models.SkillSet, interests models.InterestSet) error {
	if skills.TotalCount() == 0 {
		return errors.ValidationError("select at least one skill")
	}
	payload := map[string]interface{}{
		"skills":    skills,
		"interests": interests,
	}
	return r.postJSON(ctx, "submit_skills", "/submit_skills", token, payload, nil)
}

// UploadResume sends the resume file as multipart form data. Files over the
// size cap or with an unsupported extension are rejected before any request
// is issued.
func (r *HTTPRemote) UploadResume(ctx context.Context, token, filename string, data []byte) (string, error) {
	const operation = "upload_resume"

	if int64(len(data)) > r.maxResumeBytes {
		return "", errors.PayloadTooLargeError(int64(len(data)), r.maxResumeBytes)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !resumeExtensions[ext] {
		return "", errors.ValidationError(fmt.Sprintf("unsupported resume format %q", ext))
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("resume", filepath.Base(filename))
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/upload_resume", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp struct {
		ResumePath string `json:"resume_path"`
	}
	if err := r.do(ctx, operation, req, token, &resp); err != nil {
		return "", err
	}
	return resp.ResumePath, nil
}

// FetchRecommendations runs a recommendation query with the given criteria.
// Criteria are serialized as-is; no reordering or clamping happens here.
func (r *HTTPRemote) FetchRecommendations(ctx context.Context, token string, criteria models.FilterCriteria) (*RecommendationResponse, error) {
	var resp RecommendationResponse
	if err := r.postJSON(ctx, "get_recommendations", "/get_recommendations", token, criteria, &resp); err != nil {
		return nil, err
	}
	if resp.Recommendations == nil {
		resp.Recommendations = []models.RecommendationItem{}
	}
	return &resp, nil
}

func (r *HTTPRemote) getJSON(ctx context.Context, operation, path, token string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return r.do(ctx, operation, req, token, out)
}

func (r *HTTPRemote) postJSON(ctx context.Context, operation, path, token string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return r.do(ctx, operation, req, token, out)
}

// do runs the request with throttling, metrics, tracing and error mapping.
// A 401 always maps to ErrUnauthorized regardless of operation.
func (r *HTTPRemote) do(ctx context.Context, operation string, req *http.Request, token string, out interface{}) error {
	ctx, span := tracing.StartSpan(ctx, "remote."+operation)
	defer span.End()
	span.SetAttributes(
		attribute.String("remote.operation", operation),
		attribute.String("http.method", req.Method),
	)

	if err := r.limiter.Wait(ctx); err != nil {
		return errors.NetworkError(operation, err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := r.client.Do(req.WithContext(ctx))
	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.RemoteRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.RemoteRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall(serviceName, operation, "error", duration, zap.Error(err))
		return errors.NetworkError(operation, err)
	}
	defer resp.Body.Close()

	status := "success"
	if resp.StatusCode >= 400 {
		status = "error"
	}
	metrics.RemoteRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.RemoteRequestTotal.WithLabelValues(operation, status).Inc()
	logger.LogAPICall(serviceName, operation, status, duration,
		zap.Int("status_code", resp.StatusCode))

	if resp.StatusCode >= 400 {
		return r.mapError(operation, resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", operation, err)
	}
	return nil
}

// mapError folds an HTTP error status into the client's error taxonomy.
func (r *HTTPRemote) mapError(operation string, resp *http.Response) error {
	var serverMsg struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(body, &serverMsg)
	msg := serverMsg.Error
	if msg == "" {
		msg = serverMsg.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return errors.UnauthorizedError(operation)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if msg == "" {
			msg = operation
		}
		return errors.ValidationError(msg)
	case http.StatusNotFound:
		return errors.NotFoundError(operation)
	default:
		if msg != "" {
			return fmt.Errorf("%s: %s (status %d)", operation, msg, resp.StatusCode)
		}
		return fmt.Errorf("%s: unexpected status %d", operation, resp.StatusCode)
	}
}
