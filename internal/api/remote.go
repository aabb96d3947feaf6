package api

import (
	"context"

	"github.com/internfinder/internfinder-client/internal/models"
)

// AuthResponse is returned by registration and login.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// ProfileSnapshot is the full account state returned by the profile endpoint.
type ProfileSnapshot struct {
	Profile    *models.Profile    `json:"profile"`
	Skills     models.SkillSet    `json:"skills"`
	Interests  models.InterestSet `json:"interests"`
	ResumePath string             `json:"resume_path"`
}

// RecommendationResponse is the remote service's answer to a recommendation
// query. SkillGaps as computed by the service are carried for reference; the
// client derives its own gaps from the items.
type RecommendationResponse struct {
	Recommendations []models.RecommendationItem `json:"recommendations"`
	SkillGaps       []string                    `json:"skill_gaps"`
	TotalFound      int                         `json:"total_found"`
}

// Remote is the client's view of the recommendation service. All operations
// except Register and Login carry the session token as a bearer credential.
type Remote interface {
	Register(ctx context.Context, email, password, name string) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	FetchProfile(ctx context.Context, token string) (*ProfileSnapshot, error)
	SubmitProfile(ctx context.Context, token string, profile *models.Profile) error
	SubmitSkills(ctx context.Context, token string, skills models.SkillSet, interests models.InterestSet) error
	UploadResume(ctx context.Context, token, filename string, data []byte) (string, error)
	FetchRecommendations(ctx context.Context, token string, criteria models.FilterCriteria) (*RecommendationResponse, error)
}
