package filter

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/internfinder/internfinder-client/internal/models"
	"github.com/internfinder/internfinder-client/pkg/errors"
)

// Field names accepted by Update.
const (
	FieldMinDuration       = "minDuration"
	FieldMaxDuration       = "maxDuration"
	FieldMinStipend        = "minStipend"
	FieldMaxStipend        = "maxStipend"
	FieldWorkPreference    = "workPreference"
	FieldPreferredLocation = "preferredLocation"
)

// State holds the current filter criteria plus the bookkeeping needed to seed
// the preferred location from the profile exactly once without clobbering a
// value the user has already set by hand.
type State struct {
	mu       sync.Mutex
	criteria models.FilterCriteria
	touched  map[string]bool
	seeded   bool
}

func NewState() *State {
	return &State{
		criteria: models.DefaultFilterCriteria(),
		touched:  make(map[string]bool),
	}
}

// Criteria returns a copy of the current criteria.
func (s *State) Criteria() models.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// Update sets one criteria field from its string form. Duration and stipend
// fields are coerced to integers; a value that does not parse is rejected
// without changing the state. Range ordering is never checked.
func (s *State) Update(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch field {
	case FieldMinDuration, FieldMaxDuration, FieldMinStipend, FieldMaxStipend:
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.ValidationError(fmt.Sprintf("%s must be a whole number", field))
		}
		switch field {
		case FieldMinDuration:
			s.criteria.MinDuration = n
		case FieldMaxDuration:
			s.criteria.MaxDuration = n
		case FieldMinStipend:
			s.criteria.MinStipend = n
		case FieldMaxStipend:
			s.criteria.MaxStipend = n
		}
	case FieldWorkPreference:
		s.criteria.WorkPreference = value
	case FieldPreferredLocation:
		s.criteria.PreferredLocation = value
	default:
		return errors.ValidationError(fmt.Sprintf("unknown filter field %q", field))
	}

	s.touched[field] = true
	return nil
}

// SeedFromProfile copies the profile's preferred location into the criteria.
// Seeding happens at most once per State and never overrides a location the
// user has already typed in.
func (s *State) SeedFromProfile(preferredLocation string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seeded || s.touched[FieldPreferredLocation] {
		return
	}
	s.seeded = true
	if preferredLocation != "" {
		s.criteria.PreferredLocation = preferredLocation
	}
}

// Reset restores the defaults and forgets all touch and seed history.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = models.DefaultFilterCriteria()
	s.touched = make(map[string]bool)
	s.seeded = false
}
