package joburl

import (
	"fmt"
	"net/url"

	"github.com/internfinder/internfinder-client/internal/models"
)

// Provider selects which job-search engine backs constructed application URLs
// when a recommendation carries no explicit URL of its own.
type Provider string

const (
	ProviderLinkedIn Provider = "linkedin"
	ProviderIndeed   Provider = "indeed"
	ProviderCustom   Provider = "custom"
)

// Builder derives the external application URL for a recommendation item.
type Builder struct {
	provider      Provider
	customBaseURL string
}

// NewBuilder creates a Builder. customBaseURL is only used with ProviderCustom.
func NewBuilder(provider Provider, customBaseURL string) *Builder {
	if provider == "" {
		provider = ProviderLinkedIn
	}
	return &Builder{provider: provider, customBaseURL: customBaseURL}
}

// ApplicationURL returns the URL to open for an "apply" action. An explicit
// URL on the item always wins; otherwise a search query URL is constructed
// from the item's title and location.
func (b *Builder) ApplicationURL(item *models.RecommendationItem) string {
	if u := item.ExplicitURL(); u != "" {
		return u
	}

	title := item.Title
	if title == "" {
		title = "Internship"
	}
	q := url.QueryEscape(title)
	loc := url.QueryEscape(item.Location)

	switch b.provider {
	case ProviderIndeed:
		return fmt.Sprintf("https://www.indeed.com/jobs?q=%s&l=%s", q, loc)
	case ProviderCustom:
		if b.customBaseURL != "" {
			return fmt.Sprintf("%s?title=%s&location=%s", b.customBaseURL, q, loc)
		}
	}

	return fmt.Sprintf("https://www.linkedin.com/jobs/search/?keywords=%s&location=%s", q, loc)
}
