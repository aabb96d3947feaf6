package joburl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/internfinder/internfinder-client/internal/models"
)

func TestApplicationURL_ExplicitURLWins(t *testing.T) {
	b := NewBuilder(ProviderIndeed, "")
	item := &models.RecommendationItem{
		Title:          "Data Intern",
		Location:       "Pune",
		ApplicationURL: "https://jobs.example/123",
	}

	assert.Equal(t, "https://jobs.example/123", b.ApplicationURL(item))
}

func TestApplicationURL_LinkedInDefault(t *testing.T) {
	b := NewBuilder("", "")
	item := &models.RecommendationItem{Title: "Data Intern", Location: "Pune"}

	got := b.ApplicationURL(item)
	assert.Equal(t, "https://www.linkedin.com/jobs/search/?keywords=Data+Intern&location=Pune", got)
}

func TestApplicationURL_Indeed(t *testing.T) {
	b := NewBuilder(ProviderIndeed, "")
	item := &models.RecommendationItem{Title: "ML Intern", Location: "Remote"}

	assert.Equal(t, "https://www.indeed.com/jobs?q=ML+Intern&l=Remote", b.ApplicationURL(item))
}

func TestApplicationURL_CustomProvider(t *testing.T) {
	b := NewBuilder(ProviderCustom, "https://portal.example/search")
	item := &models.RecommendationItem{Title: "QA Intern", Location: "Goa"}

	assert.Equal(t, "https://portal.example/search?title=QA+Intern&location=Goa", b.ApplicationURL(item))
}

func TestApplicationURL_CustomWithoutBaseFallsBack(t *testing.T) {
	b := NewBuilder(ProviderCustom, "")
	item := &models.RecommendationItem{Title: "QA Intern", Location: "Goa"}

	assert.Contains(t, b.ApplicationURL(item), "linkedin.com")
}

func TestApplicationURL_EmptyTitleGetsGenericQuery(t *testing.T) {
	b := NewBuilder(ProviderLinkedIn, "")
	item := &models.RecommendationItem{Location: "Delhi"}

	assert.Contains(t, b.ApplicationURL(item), "keywords=Internship")
}
