package models

import "strings"

// RecommendationItem is one internship record as returned by the remote
// scoring service. Field names mirror the service's dataset columns,
// including the historical space in "Education _Level". Items are immutable
// once received and replaced wholesale on every fetch.
type RecommendationItem struct {
	Title          string   `json:"Title"`
	Location       string   `json:"Location"`
	DurationMonths float64  `json:"Duration (Months)"`
	StipendINR     float64  `json:"Stipend (INR)"`
	SkillsRequired string   `json:"Skills_Required"`
	InterestArea   string   `json:"Interest_Area"`
	EducationLevel string   `json:"Education _Level"`
	MatchPct       *float64 `json:"Match_Percentage,omitempty"`

	// Optional direct application links; first non-empty wins.
	ApplicationURL string `json:"Application_URL,omitempty"`
	URL            string `json:"URL,omitempty"`
	Link           string `json:"Link,omitempty"`
}

// RequiredSkills splits the comma-joined skills string into an ordered
// sequence of trimmed tokens. Empty tokens are dropped.
func (r *RecommendationItem) RequiredSkills() []string {
	if r.SkillsRequired == "" {
		return nil
	}
	parts := strings.Split(r.SkillsRequired, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// MatchPercentage returns the item's match score, treating a missing
// percentage as 0.
func (r *RecommendationItem) MatchPercentage() float64 {
	if r.MatchPct == nil {
		return 0
	}
	return *r.MatchPct
}

// ExplicitURL returns the first direct application link carried by the item,
// or "" when none is set.
func (r *RecommendationItem) ExplicitURL() string {
	switch {
	case r.ApplicationURL != "":
		return r.ApplicationURL
	case r.URL != "":
		return r.URL
	case r.Link != "":
		return r.Link
	}
	return ""
}

// SkillGap is a skill required by recommendations that the user does not
// have, with the number of items requiring it. Derived locally, never
// persisted.
type SkillGap struct {
	Skill     string `json:"skill"`
	Frequency int    `json:"frequency"`
}

// Stats summarizes the current recommendation set.
type Stats struct {
	Count       int     `json:"totalRecommendations"`
	AvgMatch    float64 `json:"avgMatchScore"`
	SkillsCount int     `json:"skillsCount"`
}
