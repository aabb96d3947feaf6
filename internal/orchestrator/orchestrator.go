package orchestrator

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/internfinder/internfinder-client/internal/aggregate"
	"github.com/internfinder/internfinder-client/internal/api"
	"github.com/internfinder/internfinder-client/internal/cache"
	"github.com/internfinder/internfinder-client/internal/filter"
	"github.com/internfinder/internfinder-client/internal/models"
	"github.com/internfinder/internfinder-client/internal/session"
	"github.com/internfinder/internfinder-client/pkg/errors"
	"github.com/internfinder/internfinder-client/pkg/logger"
	"github.com/internfinder/internfinder-client/pkg/metrics"
)

// Phase is the orchestrator's lifecycle state.
type Phase string

const (
	// PhaseIdle means no data has been loaded yet or the session ended.
	PhaseIdle Phase = "idle"
	// PhaseLoading means a mount or refresh is in flight.
	PhaseLoading Phase = "loading"
	// PhaseReady means recommendations and profile data are on screen.
	PhaseReady Phase = "ready"
)

// View is the renderable snapshot of the orchestrator's state.
type View struct {
	Phase           Phase
	Err             string
	User            *models.User
	Profile         *models.Profile
	Skills          models.SkillSet
	Interests       models.InterestSet
	ResumePath      string
	Criteria        models.FilterCriteria
	Recommendations []models.RecommendationItem
	Stats           models.Stats
	SkillGaps       []models.SkillGap
}

// Orchestrator drives the session lifecycle: it gates every data operation on
// an active session, sequences remote fetches, and folds results and errors
// into a single consistent view. A failed operation surfaces its message and
// restores the last stable phase; a 401 from any operation ends the session.
type Orchestrator struct {
	mu sync.Mutex

	remote   api.Remote
	sessions *session.Store
	profiles *cache.ProfileCache
	filters  *filter.State
	validate *validator.Validate

	phase      Phase
	lastStable Phase
	errMsg     string

	profile    *models.Profile
	skills     models.SkillSet
	interests  models.InterestSet
	resumePath string

	items []models.RecommendationItem
	stats models.Stats
	gaps  []models.SkillGap

	// seq orders recommendation requests. A response is committed only when
	// its sequence number is still the latest, so a slow response can never
	// overwrite the result of a newer request.
	seq uint64
}

func New(remote api.Remote, sessions *session.Store, profiles *cache.ProfileCache) *Orchestrator {
	return &Orchestrator{
		remote:     remote,
		sessions:   sessions,
		profiles:   profiles,
		filters:    filter.NewState(),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		phase:      PhaseIdle,
		lastStable: PhaseIdle,
		skills:     models.NewSkillSet(),
		interests:  models.InterestSet{},
		items:      []models.RecommendationItem{},
		gaps:       []models.SkillGap{},
	}
}

// Register creates an account and starts a session with it.
func (o *Orchestrator) Register(ctx context.Context, email, password, name string) error {
	auth, err := o.remote.Register(ctx, email, password, name)
	if err != nil {
		return o.fail("register", err)
	}
	o.startSession(auth)
	return nil
}

// Login starts a session from credentials.
func (o *Orchestrator) Login(ctx context.Context, email, password string) error {
	auth, err := o.remote.Login(ctx, email, password)
	if err != nil {
		return o.fail("login", err)
	}
	o.startSession(auth)
	return nil
}

func (o *Orchestrator) startSession(auth *api.AuthResponse) {
	user := auth.User
	o.sessions.Set(auth.Token, &user)

	o.mu.Lock()
	o.phase = PhaseIdle
	o.lastStable = PhaseIdle
	o.errMsg = ""
	o.filters.Reset()
	o.profiles.Invalidate()
	o.mu.Unlock()
}

// Mount loads everything the dashboard needs: the profile snapshot, the
// seeded filter criteria, and a first recommendation fetch. It requires an
// active session and reports ErrUnauthenticated without touching the network
// when there is none.
func (o *Orchestrator) Mount(ctx context.Context) error {
	token, err := o.sessions.Token()
	if err != nil {
		metrics.SessionMounts.WithLabelValues("unauthenticated").Inc()
		return err
	}

	o.beginLoading()

	snap := o.profiles.Get()
	if snap == nil {
		snap, err = o.remote.FetchProfile(ctx, token)
		if err != nil {
			metrics.SessionMounts.WithLabelValues("error").Inc()
			return o.fail("mount", err)
		}
		o.profiles.Set(snap)
	}

	o.mu.Lock()
	o.profile = snap.Profile
	if snap.Skills != nil {
		o.skills = snap.Skills
	}
	if snap.Interests != nil {
		o.interests = snap.Interests
	}
	o.resumePath = snap.ResumePath
	if snap.Profile != nil {
		o.filters.SeedFromProfile(snap.Profile.PreferredLocation)
	}
	o.mu.Unlock()

	if err := o.refresh(ctx, token); err != nil {
		metrics.SessionMounts.WithLabelValues("error").Inc()
		return err
	}
	metrics.SessionMounts.WithLabelValues("success").Inc()
	return nil
}

// UpdateFilter changes one criteria field locally. Nothing is fetched until
// ApplyFilters runs.
func (o *Orchestrator) UpdateFilter(field, value string) error {
	return o.filters.Update(field, value)
}

// ApplyFilters re-queries recommendations with the current criteria.
func (o *Orchestrator) ApplyFilters(ctx context.Context) error {
	token, err := o.sessions.Token()
	if err != nil {
		return err
	}
	o.beginLoading()
	return o.refresh(ctx, token)
}

// refresh fetches recommendations and commits the result unless a newer
// request was issued while this one was in flight.
func (o *Orchestrator) refresh(ctx context.Context, token string) error {
	o.mu.Lock()
	o.seq++
	mySeq := o.seq
	criteria := o.filters.Criteria()
	o.mu.Unlock()

	resp, err := o.remote.FetchRecommendations(ctx, token, criteria)

	// The staleness check and the commit share one critical section, so a
	// competing request can never slip in between them.
	o.mu.Lock()
	if mySeq != o.seq {
		o.mu.Unlock()
		metrics.StaleResponsesDropped.Inc()
		logger.Debug("discarding stale recommendation response",
			zap.Uint64("seq", mySeq))
		return nil
	}
	if err != nil {
		o.mu.Unlock()
		return o.fail("get_recommendations", err)
	}

	o.items = resp.Recommendations
	result := aggregate.Aggregate(o.items, o.skills)
	o.stats = result.Stats
	o.gaps = result.Gaps
	o.phase = PhaseReady
	o.lastStable = PhaseReady
	o.errMsg = ""
	o.mu.Unlock()
	return nil
}

// ToggleSkill flips one skill selection and recomputes the aggregate over
// the current recommendation set. Nothing is sent until SubmitSkills.
func (o *Orchestrator) ToggleSkill(category models.SkillCategory, skill string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.skills.Toggle(category, skill)
	o.reaggregateLocked()
}

// ToggleInterest flips one interest selection.
func (o *Orchestrator) ToggleInterest(interest string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.interests = o.interests.Toggle(interest)
}

func (o *Orchestrator) reaggregateLocked() {
	result := aggregate.Aggregate(o.items, o.skills)
	o.stats = result.Stats
	o.gaps = result.Gaps
}

// SubmitProfile validates required fields locally, then persists the profile
// remotely. The cached snapshot is dropped so the next mount refetches.
func (o *Orchestrator) SubmitProfile(ctx context.Context, profile *models.Profile) error {
	token, err := o.sessions.Token()
	if err != nil {
		return err
	}
	if err := o.validate.Struct(profile); err != nil {
		return errors.ValidationError("all profile fields are required")
	}
	if err := o.remote.SubmitProfile(ctx, token, profile); err != nil {
		return o.fail("submit_profile", err)
	}

	o.mu.Lock()
	o.profile = profile
	o.mu.Unlock()
	o.profiles.Invalidate()
	return nil
}

// SubmitSkills persists the current skill and interest selections.
func (o *Orchestrator) SubmitSkills(ctx context.Context) error {
	token, err := o.sessions.Token()
	if err != nil {
		return err
	}
	o.mu.Lock()
	skills := o.skills
	interests := o.interests
	o.mu.Unlock()

	if err := o.remote.SubmitSkills(ctx, token, skills, interests); err != nil {
		return o.fail("submit_skills", err)
	}
	o.profiles.Invalidate()
	return nil
}

// UploadResume sends the resume file. Oversized or unsupported files are
// rejected by the remote client before any request leaves the process.
func (o *Orchestrator) UploadResume(ctx context.Context, filename string, data []byte) error {
	token, err := o.sessions.Token()
	if err != nil {
		return err
	}
	path, err := o.remote.UploadResume(ctx, token, filename, data)
	if err != nil {
		return o.fail("upload_resume", err)
	}

	o.mu.Lock()
	o.resumePath = path
	o.mu.Unlock()
	o.profiles.Invalidate()
	return nil
}

// Logout ends the session and clears all loaded data.
func (o *Orchestrator) Logout() {
	o.sessions.Clear()
	o.profiles.Invalidate()

	o.mu.Lock()
	o.phase = PhaseIdle
	o.lastStable = PhaseIdle
	o.errMsg = ""
	o.profile = nil
	o.skills = models.NewSkillSet()
	o.interests = models.InterestSet{}
	o.resumePath = ""
	o.items = []models.RecommendationItem{}
	o.stats = models.Stats{}
	o.gaps = []models.SkillGap{}
	o.filters.Reset()
	o.mu.Unlock()
}

// View returns a snapshot of the current state for rendering.
func (o *Orchestrator) View() View {
	o.mu.Lock()
	defer o.mu.Unlock()

	items := make([]models.RecommendationItem, len(o.items))
	copy(items, o.items)
	gaps := make([]models.SkillGap, len(o.gaps))
	copy(gaps, o.gaps)

	return View{
		Phase:           o.phase,
		Err:             o.errMsg,
		User:            o.sessions.User(),
		Profile:         o.profile,
		Skills:          o.skills.Clone(),
		Interests:       append(models.InterestSet(nil), o.interests...),
		ResumePath:      o.resumePath,
		Criteria:        o.filters.Criteria(),
		Recommendations: items,
		Stats:           o.stats,
		SkillGaps:       gaps,
	}
}

func (o *Orchestrator) beginLoading() {
	o.mu.Lock()
	if o.phase != PhaseLoading {
		o.lastStable = o.phase
	}
	o.phase = PhaseLoading
	o.mu.Unlock()
}

// fail records the error and restores the last stable phase. A 401 ends the
// session entirely: the token is the only credential, and the remote service
// rejecting it means it expired.
func (o *Orchestrator) fail(operation string, err error) error {
	if errors.Is(err, errors.ErrUnauthorized) {
		logger.Warn("session rejected by remote service",
			zap.String("operation", operation))
		o.sessions.Clear()
		o.profiles.Invalidate()

		o.mu.Lock()
		o.phase = PhaseIdle
		o.lastStable = PhaseIdle
		o.errMsg = "session expired, please log in again"
		o.mu.Unlock()
		return err
	}

	logger.LogError(err, "operation failed", zap.String("operation", operation))

	o.mu.Lock()
	o.errMsg = err.Error()
	if o.phase == PhaseLoading && o.lastStable == PhaseIdle {
		// A first load failed with nothing to fall back to: land on an empty
		// Ready screen with the error message instead of leaving the machine
		// stuck before the dashboard.
		o.phase = PhaseReady
		o.lastStable = PhaseReady
	} else {
		o.phase = o.lastStable
	}
	o.mu.Unlock()
	return err
}
