package models

// SkillCategory is one of the four fixed skill groupings.
type SkillCategory string

const (
	CategoryProgramming    SkillCategory = "programming"
	CategoryTechnical      SkillCategory = "technical"
	CategorySoft           SkillCategory = "soft"
	CategoryProblemSolving SkillCategory = "problemSolving"
)

// SkillCategories lists the categories in their canonical order.
var SkillCategories = []SkillCategory{
	CategoryProgramming,
	CategoryTechnical,
	CategorySoft,
	CategoryProblemSolving,
}

// SkillVocabulary maps each category to its fixed set of selectable skills.
var SkillVocabulary = map[SkillCategory][]string{
	CategoryProgramming: {
		"C", "C++", "Python", "Java", "JavaScript", "PHP", "Swift", "Kotlin",
		"Go", "Rust", "Ruby", "TypeScript",
	},
	CategoryTechnical: {
		"Web Development", "Mobile Development", "UI/UX Design",
		"Database Management", "Cloud Computing", "DevOps", "Machine Learning",
		"Data Science", "Networking", "Cyber Security", "Game Development",
		"Embedded Systems",
	},
	CategorySoft: {
		"Communication", "Teamwork", "Leadership", "Time Management",
		"Adaptability", "Creativity", "Work Ethic", "Critical Thinking",
		"Conflict Resolution", "Emotional Intelligence", "Presentation Skills",
		"Negotiation",
	},
	CategoryProblemSolving: {
		"Analytical Thinking", "Troubleshooting", "Debugging",
		"Algorithm Design", "Data Analysis", "Research Skills",
		"Logical Reasoning", "Decision Making", "Pattern Recognition",
		"Optimization", "Root Cause Analysis", "Strategic Planning",
	},
}

// InterestOptions lists the selectable areas of interest.
var InterestOptions = []string{
	"Technology", "Healthcare", "Education", "Finance", "Agriculture",
	"Manufacturing", "Marketing", "Arts & Design", "Research", "Environment",
	"Sports", "Entertainment",
}

// SkillSet maps each category to the skills the user has selected. Selection
// uses toggle semantics, so duplicates cannot occur.
type SkillSet map[SkillCategory][]string

// NewSkillSet creates an empty skill set with every category present.
func NewSkillSet() SkillSet {
	s := make(SkillSet, len(SkillCategories))
	for _, c := range SkillCategories {
		s[c] = []string{}
	}
	return s
}

// Toggle adds the skill to the category if absent, removes it if present.
func (s SkillSet) Toggle(category SkillCategory, skill string) {
	list := s[category]
	for i, existing := range list {
		if existing == skill {
			s[category] = append(list[:i], list[i+1:]...)
			return
		}
	}
	s[category] = append(list, skill)
}

// Has reports whether the skill is selected in the category.
func (s SkillSet) Has(category SkillCategory, skill string) bool {
	for _, existing := range s[category] {
		if existing == skill {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the skill set. Later toggles on
// either copy leave the other untouched.
func (s SkillSet) Clone() SkillSet {
	c := make(SkillSet, len(s))
	for category, list := range s {
		c[category] = append([]string(nil), list...)
	}
	return c
}

// Flatten returns the user's skills across all categories as a set.
// Category boundaries are discarded; matching is by exact skill name.
func (s SkillSet) Flatten() map[string]struct{} {
	flat := make(map[string]struct{})
	for _, c := range SkillCategories {
		for _, skill := range s[c] {
			flat[skill] = struct{}{}
		}
	}
	return flat
}

// TotalCount returns the number of selected skills across all categories.
func (s SkillSet) TotalCount() int {
	n := 0
	for _, c := range SkillCategories {
		n += len(s[c])
	}
	return n
}

// InterestSet is the user's set of interest names, toggle-selected.
type InterestSet []string

// Toggle adds the interest if absent, removes it if present.
func (in InterestSet) Toggle(interest string) InterestSet {
	for i, existing := range in {
		if existing == interest {
			return append(in[:i], in[i+1:]...)
		}
	}
	return append(in, interest)
}

// Has reports whether the interest is selected.
func (in InterestSet) Has(interest string) bool {
	for _, existing := range in {
		if existing == interest {
			return true
		}
	}
	return false
}
