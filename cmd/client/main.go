package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/internfinder/internfinder-client/config"
	"github.com/internfinder/internfinder-client/internal/api"
	"github.com/internfinder/internfinder-client/internal/cache"
	"github.com/internfinder/internfinder-client/internal/orchestrator"
	"github.com/internfinder/internfinder-client/internal/session"
	"github.com/internfinder/internfinder-client/pkg/httpclient"
	"github.com/internfinder/internfinder-client/pkg/joburl"
	"github.com/internfinder/internfinder-client/pkg/logger"
	"github.com/internfinder/internfinder-client/pkg/profiling"
	"github.com/internfinder/internfinder-client/pkg/tracing"
)

// multiFlag collects repeated occurrences of a flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(value string) error {
	*m = append(*m, value)
	return nil
}

func main() {
	var (
		email      = flag.String("email", "", "account email")
		password   = flag.String("password", "", "account password")
		name       = flag.String("name", "", "full name; registers a new account when set")
		resumePath = flag.String("resume", "", "path to a resume file to upload before fetching")
		filters    multiFlag
	)
	flag.Var(&filters, "set", "filter override as field=value, repeatable (e.g. -set minStipend=5000)")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "both -email and -password are required")
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.App.Env,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting internfinder client",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.App.Env),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceVersion,
		cfg.App.Env,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Initialize continuous profiling
	stopProfiler, err := profiling.InitProfiler(profiling.Config{
		Enabled:               cfg.Profiling.Enabled,
		Endpoint:              cfg.Profiling.Endpoint,
		AppName:               cfg.Profiling.AppName,
		UploadIntervalSeconds: cfg.Profiling.UploadIntervalSeconds,
	}, cfg.App.Env)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	// Expose Prometheus metrics when enabled
	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			logger.Info("Metrics listener started", zap.String("addr", cfg.Metrics.ListenAddr))
			if err := http.ListenAndServe(cfg.Metrics.ListenAddr, mux); err != nil {
				logger.Error("Metrics listener failed", zap.Error(err))
			}
		}()
	}

	// Wire the remote client and orchestrator
	httpClient := httpclient.NewStandardClientWithTimeout(
		time.Duration(cfg.Remote.RequestTimeoutSeconds) * time.Second)
	remote := api.NewHTTPRemote(api.Config{
		BaseURL:        cfg.Remote.BaseURL,
		RatePerSecond:  cfg.Remote.RatePerSecond,
		RateBurst:      cfg.Remote.RateBurst,
		MaxResumeBytes: cfg.Resume.MaxUploadBytes,
	}, httpClient)
	sessions := session.NewStore()
	profiles := cache.NewProfileCache(time.Duration(cfg.Cache.ProfileTTLSeconds) * time.Second)
	orch := orchestrator.New(remote, sessions, profiles)
	urls := joburl.NewBuilder(joburl.Provider(cfg.JobSearch.Provider), cfg.JobSearch.CustomBaseURL)

	ctx := context.Background()

	if *name != "" {
		err = orch.Register(ctx, *email, *password, *name)
	} else {
		err = orch.Login(ctx, *email, *password)
	}
	if err != nil {
		logger.Fatal("Authentication failed", zap.Error(err))
	}

	if *resumePath != "" {
		data, readErr := os.ReadFile(*resumePath)
		if readErr != nil {
			logger.Fatal("Failed to read resume file", zap.Error(readErr))
		}
		if err := orch.UploadResume(ctx, *resumePath, data); err != nil {
			logger.Fatal("Resume upload failed", zap.Error(err))
		}
		fmt.Println("Resume uploaded.")
	}

	if err := orch.Mount(ctx); err != nil {
		logger.Fatal("Failed to load dashboard", zap.Error(err))
	}

	if len(filters) > 0 {
		for _, kv := range filters {
			field, value, ok := strings.Cut(kv, "=")
			if !ok {
				logger.Fatal("Invalid -set value, expected field=value", zap.String("got", kv))
			}
			if err := orch.UpdateFilter(field, value); err != nil {
				logger.Fatal("Invalid filter value", zap.Error(err))
			}
		}
		if err := orch.ApplyFilters(ctx); err != nil {
			logger.Fatal("Failed to apply filters", zap.Error(err))
		}
	}

	render(orch.View(), urls)
}

func render(v orchestrator.View, urls *joburl.Builder) {
	if v.User != nil {
		fmt.Printf("Logged in as %s <%s>\n\n", v.User.Name, v.User.Email)
	}

	fmt.Printf("Recommendations: %d  Avg match: %.1f%%  Your skills: %d\n\n",
		v.Stats.Count, v.Stats.AvgMatch, v.Stats.SkillsCount)

	for i := range v.Recommendations {
		item := &v.Recommendations[i]
		fmt.Printf("%2d. %s (%s)\n", i+1, item.Title, item.Location)
		fmt.Printf("    %v months, %v INR/month, match %.1f%%\n",
			item.DurationMonths, item.StipendINR, item.MatchPercentage())
		if item.SkillsRequired != "" {
			fmt.Printf("    Skills: %s\n", item.SkillsRequired)
		}
		fmt.Printf("    Apply: %s\n", urls.ApplicationURL(item))
	}

	if len(v.SkillGaps) > 0 {
		fmt.Println("\nSkills worth learning:")
		for _, gap := range v.SkillGaps {
			plural := "s"
			if gap.Frequency == 1 {
				plural = ""
			}
			fmt.Printf("  %-24s wanted by %d internship%s\n", gap.Skill, gap.Frequency, plural)
		}
	}
}
