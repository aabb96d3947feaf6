package orchestrator

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internfinder/internfinder-client/internal/api"
	"github.com/internfinder/internfinder-client/internal/cache"
	"github.com/internfinder/internfinder-client/internal/models"
	"github.com/internfinder/internfinder-client/internal/session"
	"github.com/internfinder/internfinder-client/pkg/errors"
	"github.com/internfinder/internfinder-client/pkg/logger"
)

func init() {
	_ = logger.Initialize(logger.Config{Level: "error", Environment: "development"})
}

// fakeRemote is a scriptable Remote for orchestrator tests.
type fakeRemote struct {
	authResp *api.AuthResponse
	authErr  error

	snapshot    *api.ProfileSnapshot
	snapshotErr error
	fetchCount  atomic.Int64

	recsFn   func(criteria models.FilterCriteria) (*api.RecommendationResponse, error)
	recCount atomic.Int64

	submitProfileErr error
	submitSkillsErr  error
	uploadPath       string
	uploadErr        error
}

func (f *fakeRemote) Register(ctx context.Context, email, password, name string) (*api.AuthResponse, error) {
	return f.authResp, f.authErr
}

func (f *fakeRemote) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	return f.authResp, f.authErr
}

func (f *fakeRemote) FetchProfile(ctx context.Context, token string) (*api.ProfileSnapshot, error) {
	f.fetchCount.Add(1)
	return f.snapshot, f.snapshotErr
}

func (f *fakeRemote) SubmitProfile(ctx context.Context, token string, profile *models.Profile) error {
	return f.submitProfileErr
}

func (f *fakeRemote) SubmitSkills(ctx context.Context, token string, skills models.SkillSet, interests models.InterestSet) error {
	return f.submitSkillsErr
}

func (f *fakeRemote) UploadResume(ctx context.Context, token, filename string, data []byte) (string, error) {
	return f.uploadPath, f.uploadErr
}

func (f *fakeRemote) FetchRecommendations(ctx context.Context, token string, criteria models.FilterCriteria) (*api.RecommendationResponse, error) {
	f.recCount.Add(1)
	if f.recsFn != nil {
		return f.recsFn(criteria)
	}
	return &api.RecommendationResponse{Recommendations: []models.RecommendationItem{}}, nil
}

func pct(v float64) *float64 { return &v }

func defaultSnapshot() *api.ProfileSnapshot {
	return &api.ProfileSnapshot{
		Profile: &models.Profile{
			Name:              "Asha",
			Age:               "21",
			Education:         "Btech/CSE/IT",
			Course:            "CSE",
			State:             "Karnataka",
			PreferredLocation: models.LocationSameState,
		},
		Skills:    models.NewSkillSet(),
		Interests: models.InterestSet{"Technology"},
	}
}

func newOrchestrator(remote api.Remote) (*Orchestrator, *session.Store) {
	sessions := session.NewStore()
	profiles := cache.NewProfileCache(time.Minute)
	return New(remote, sessions, profiles), sessions
}

func TestMount_RequiresSession(t *testing.T) {
	remote := &fakeRemote{snapshot: defaultSnapshot()}
	orch, _ := newOrchestrator(remote)

	err := orch.Mount(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnauthenticated))
	assert.Equal(t, int64(0), remote.fetchCount.Load())
	assert.Equal(t, int64(0), remote.recCount.Load())
}

func TestMount_LoadsProfileAndRecommendations(t *testing.T) {
	remote := &fakeRemote{
		authResp: &api.AuthResponse{Token: "tok", User: models.User{ID: 1, Name: "Asha"}},
		snapshot: defaultSnapshot(),
		recsFn: func(models.FilterCriteria) (*api.RecommendationResponse, error) {
			return &api.RecommendationResponse{
				Recommendations: []models.RecommendationItem{
					{Title: "A", SkillsRequired: "Python", MatchPct: pct(80)},
					{Title: "B", SkillsRequired: "Python, SQL", MatchPct: pct(60)},
				},
			}, nil
		},
	}
	orch, _ := newOrchestrator(remote)

	require.NoError(t, orch.Login(context.Background(), "a@b.c", "pw"))
	require.NoError(t, orch.Mount(context.Background()))

	v := orch.View()
	assert.Equal(t, PhaseReady, v.Phase)
	assert.Empty(t, v.Err)
	assert.Equal(t, 2, v.Stats.Count)
	assert.Equal(t, 70.0, v.Stats.AvgMatch)
	require.Len(t, v.SkillGaps, 2)
	assert.Equal(t, "Python", v.SkillGaps[0].Skill)
	assert.Equal(t, 2, v.SkillGaps[0].Frequency)

	// Profile's preferred location seeded into the criteria.
	assert.Equal(t, models.LocationSameState, v.Criteria.PreferredLocation)
}

func TestMount_ReusesCachedProfile(t *testing.T) {
	remote := &fakeRemote{
		authResp: &api.AuthResponse{Token: "tok"},
		snapshot: defaultSnapshot(),
	}
	orch, _ := newOrchestrator(remote)

	require.NoError(t, orch.Login(context.Background(), "a@b.c", "pw"))
	require.NoError(t, orch.Mount(context.Background()))
	require.NoError(t, orch.Mount(context.Background()))

	assert.Equal(t, int64(1), remote.fetchCount.Load())
	assert.Equal(t, int64(2), remote.recCount.Load())
}

func TestSeededLocationDoesNotOverrideUserFilter(t *testing.T) {
	remote := &fakeRemote{
		authResp: &api.AuthResponse{Token: "tok"},
		snapshot: defaultSnapshot(),
	}
	orch, _ := newOrchestrator(remote)
	require.NoError(t, orch.Login(context.Background(), "a@b.c", "pw"))

	require.NoError(t, orch.UpdateFilter("preferredLocation", "Remote"))
	require.NoError(t, orch.Mount(context.Background()))

	assert.Equal(t, "Remote", orch.View().Criteria.PreferredLocation)
}

func TestUnauthorizedClearsSession(t *testing.T) {
	remote := &fakeRemote{
		authResp:    &api.AuthResponse{Token: "tok"},
		snapshotErr: errors.UnauthorizedError("fetch_profile"),
	}
	orch, sessions := newOrchestrator(remote)
	require.NoError(t, orch.Login(context.Background(), "a@b.c", "pw"))

	err := orch.Mount(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))

	// Session is gone; the next operation fails locally.
	assert.True(t, errors.Is(sessions.Check(), errors.ErrUnauthenticated))
	v := orch.View()
	assert.Equal(t, PhaseIdle, v.Phase)
	assert.NotEmpty(t, v.Err)
}

func TestFailedRefreshRestoresPriorState(t *testing.T) {
	var fail atomic.Bool
	items := []models.RecommendationItem{{Title: "Kept", MatchPct: pct(90)}}
	remote := &fakeRemote{
		authResp: &api.AuthResponse{Token: "tok"},
		snapshot: defaultSnapshot(),
		recsFn: func(models.FilterCriteria) (*api.RecommendationResponse, error) {
			if fail.Load() {
				return nil, errors.NetworkError("get_recommendations", context.DeadlineExceeded)
			}
			return &api.RecommendationResponse{Recommendations: items}, nil
		},
	}
	orch, _ := newOrchestrator(remote)
	require.NoError(t, orch.Login(context.Background(), "a@b.c", "pw"))
	require.NoError(t, orch.Mount(context.Background()))

	fail.Store(true)
	err := orch.ApplyFilters(context.Background())
	require.Error(t, err)

	// Error surfaced, previous results still on screen, phase back to Ready.
	v := orch.View()
	assert.Equal(t, PhaseReady, v.Phase)
	assert.NotEmpty(t, v.Err)
	require.Len(t, v.Recommendations, 1)
	assert.Equal(t, "Kept", v.Recommendations[0].Title)
}

func TestStaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	firstEntered := make(chan struct{})
	var call atomic.Int64

	remote := &fakeRemote{
		authResp: &api.AuthResponse{Token: "tok"},
		snapshot: defaultSnapshot(),
		recsFn: func(models.FilterCriteria) (*api.RecommendationResponse, error) {
			if call.Add(1) == 1 {
				close(firstEntered)
				<-release
				return &api.RecommendationResponse{Recommendations: []models.RecommendationItem{{Title: "Old"}}}, nil
			}
			return &api.RecommendationResponse{Recommendations: []models.RecommendationItem{{Title: "New"}}}, nil
		},
	}
	orch, _ := newOrchestrator(remote)
	require.NoError(t, orch.Login(context.Background(), "a@b.c", "pw"))

	done := make(chan error, 1)
	go func() { done <- orch.ApplyFilters(context.Background()) }()
	<-firstEntered

	// A newer request completes while the first is still in flight.
	require.NoError(t, orch.ApplyFilters(context.Background()))
	close(release)
	require.NoError(t, <-done)

	v := orch.View()
	require.Len(t, v.Recommendations, 1)
	assert.Equal(t, "New", v.Recommendations[0].Title)
}

func TestToggleSkill_RecomputesGapsLocally(t *testing.T) {
	remote := &fakeRemote{
		authResp: &api.AuthResponse{Token: "tok"},
		snapshot: defaultSnapshot(),
		recsFn: func(models.FilterCriteria) (*api.RecommendationResponse, error) {
			return &api.RecommendationResponse{
				Recommendations: []models.RecommendationItem{
					{Title: "A", SkillsRequired: "Go", MatchPct: pct(50)},
				},
			}, nil
		},
	}
	orch, _ := newOrchestrator(remote)
	require.NoError(t, orch.Login(context.Background(), "a@b.c", "pw"))
	require.NoError(t, orch.Mount(context.Background()))

	require.Len(t, orch.View().SkillGaps, 1)
	before := remote.recCount.Load()

	orch.ToggleSkill(models.CategoryProgramming, "Go")

	v := orch.View()
	assert.Empty(t, v.SkillGaps)
	assert.Equal(t, 1, v.Stats.SkillsCount)
	assert.Equal(t, before, remote.recCount.Load())
}

func TestView_IsolatedFromLaterToggles(t *testing.T) {
	remote := &fakeRemote{
		authResp: &api.AuthResponse{Token: "tok"},
		snapshot: defaultSnapshot(),
	}
	orch, _ := newOrchestrator(remote)
	require.NoError(t, orch.Login(context.Background(), "a@b.c", "pw"))
	require.NoError(t, orch.Mount(context.Background()))

	before := orch.View()
	require.False(t, before.Skills.Has(models.CategoryProgramming, "Go"))
	require.False(t, before.Interests.Has("Finance"))

	orch.ToggleSkill(models.CategoryProgramming, "Go")
	orch.ToggleInterest("Finance")

	// The earlier snapshot must not reflect mutations made after it was taken.
	assert.False(t, before.Skills.Has(models.CategoryProgramming, "Go"))
	assert.False(t, before.Interests.Has("Finance"))

	after := orch.View()
	assert.True(t, after.Skills.Has(models.CategoryProgramming, "Go"))
	assert.True(t, after.Interests.Has("Finance"))
}

func TestFirstLoadFailureLandsOnEmptyReady(t *testing.T) {
	remote := &fakeRemote{
		authResp: &api.AuthResponse{Token: "tok"},
		snapshot: defaultSnapshot(),
		recsFn: func(models.FilterCriteria) (*api.RecommendationResponse, error) {
			return nil, errors.NetworkError("get_recommendations", context.DeadlineExceeded)
		},
	}
	orch, _ := newOrchestrator(remote)
	require.NoError(t, orch.Login(context.Background(), "a@b.c", "pw"))

	err := orch.Mount(context.Background())
	require.Error(t, err)

	// With no earlier results to fall back to, the machine shows an empty
	// dashboard with the error rather than staying stuck before it.
	v := orch.View()
	assert.Equal(t, PhaseReady, v.Phase)
	assert.NotEmpty(t, v.Err)
	assert.Empty(t, v.Recommendations)
	assert.Equal(t, 0, v.Stats.Count)
}

func TestSubmitProfile_ValidatesRequiredFields(t *testing.T) {
	remote := &fakeRemote{authResp: &api.AuthResponse{Token: "tok"}}
	orch, _ := newOrchestrator(remote)
	require.NoError(t, orch.Login(context.Background(), "a@b.c", "pw"))

	err := orch.SubmitProfile(context.Background(), &models.Profile{Name: "Asha"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestSubmitProfile_InvalidatesCachedSnapshot(t *testing.T) {
	remote := &fakeRemote{
		authResp: &api.AuthResponse{Token: "tok"},
		snapshot: defaultSnapshot(),
	}
	orch, _ := newOrchestrator(remote)
	require.NoError(t, orch.Login(context.Background(), "a@b.c", "pw"))
	require.NoError(t, orch.Mount(context.Background()))

	profile := defaultSnapshot().Profile
	profile.State = "Kerala"
	require.NoError(t, orch.SubmitProfile(context.Background(), profile))

	require.NoError(t, orch.Mount(context.Background()))
	assert.Equal(t, int64(2), remote.fetchCount.Load())
}

func TestUploadResume_UpdatesPath(t *testing.T) {
	remote := &fakeRemote{
		authResp:   &api.AuthResponse{Token: "tok"},
		uploadPath: "uploads/cv.pdf",
	}
	orch, _ := newOrchestrator(remote)
	require.NoError(t, orch.Login(context.Background(), "a@b.c", "pw"))

	require.NoError(t, orch.UploadResume(context.Background(), "cv.pdf", []byte("%PDF")))
	assert.Equal(t, "uploads/cv.pdf", orch.View().ResumePath)
}

func TestLogout_ClearsEverything(t *testing.T) {
	remote := &fakeRemote{
		authResp: &api.AuthResponse{Token: "tok", User: models.User{ID: 1}},
		snapshot: defaultSnapshot(),
		recsFn: func(models.FilterCriteria) (*api.RecommendationResponse, error) {
			return &api.RecommendationResponse{
				Recommendations: []models.RecommendationItem{{Title: "A", MatchPct: pct(10)}},
			}, nil
		},
	}
	orch, sessions := newOrchestrator(remote)
	require.NoError(t, orch.Login(context.Background(), "a@b.c", "pw"))
	require.NoError(t, orch.Mount(context.Background()))

	orch.Logout()

	v := orch.View()
	assert.Equal(t, PhaseIdle, v.Phase)
	assert.Nil(t, v.User)
	assert.Nil(t, v.Profile)
	assert.Empty(t, v.Recommendations)
	assert.Equal(t, models.DefaultFilterCriteria(), v.Criteria)
	assert.True(t, errors.Is(sessions.Check(), errors.ErrUnauthenticated))
}

func TestOperationsRequireSession(t *testing.T) {
	remote := &fakeRemote{}
	orch, _ := newOrchestrator(remote)
	ctx := context.Background()

	assert.True(t, errors.Is(orch.ApplyFilters(ctx), errors.ErrUnauthenticated))
	assert.True(t, errors.Is(orch.SubmitSkills(ctx), errors.ErrUnauthenticated))
	assert.True(t, errors.Is(orch.UploadResume(ctx, "cv.pdf", nil), errors.ErrUnauthenticated))
	profile := defaultSnapshot().Profile
	assert.True(t, errors.Is(orch.SubmitProfile(ctx, profile), errors.ErrUnauthenticated))
}
