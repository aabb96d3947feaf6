package models

// FilterCriteria is the predicate sent with every recommendation request.
// The client deliberately performs no cross-field validation: out-of-order
// min/max ranges are passed through to the remote service unmodified, since
// the remote contract documents no required ordering.
type FilterCriteria struct {
	MinDuration       int    `json:"minDuration"`
	MaxDuration       int    `json:"maxDuration"`
	MinStipend        int    `json:"minStipend"`
	MaxStipend        int    `json:"maxStipend"`
	WorkPreference    string `json:"workPreference"`
	PreferredLocation string `json:"preferredLocation"`
}

// Work preference values; the empty string means "any".
const (
	WorkRemote = "Remote"
	WorkOnSite = "On-site"
	WorkHybrid = "Hybrid"
)

// DefaultFilterCriteria returns the criteria applied at session start, before
// the profile's preferred location is seeded in.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		MinDuration:       0,
		MaxDuration:       12,
		MinStipend:        0,
		MaxStipend:        100000,
		WorkPreference:    "",
		PreferredLocation: "",
	}
}
