package aggregate

import (
	"math"
	"sort"

	"github.com/internfinder/internfinder-client/internal/models"
)

// Result is the locally derived view over a recommendation set: headline
// stats plus the skills the user is missing, ordered by demand.
type Result struct {
	Stats models.Stats
	Gaps  []models.SkillGap
}

// Aggregate derives stats and skill gaps from a freshly fetched
// recommendation set. Previous results contribute nothing; the caller
// replaces its aggregate wholesale on every fetch.
//
// Match scores average over all items with a missing score counting as 0,
// and the mean is rounded to one decimal place. The skill count tallies
// every selection across categories; gap matching runs against the flattened
// set, exact and case-sensitive, so "python" does not satisfy a requirement
// for "Python".
func Aggregate(items []models.RecommendationItem, skills models.SkillSet) Result {
	ownSkills := skills.Flatten()
	stats := models.Stats{
		Count:       len(items),
		SkillsCount: skills.TotalCount(),
	}

	if len(items) == 0 {
		return Result{Stats: stats, Gaps: []models.SkillGap{}}
	}

	var sum float64
	frequency := make(map[string]int)
	for i := range items {
		sum += items[i].MatchPercentage()
		for _, skill := range items[i].RequiredSkills() {
			if _, ok := ownSkills[skill]; !ok {
				frequency[skill]++
			}
		}
	}
	stats.AvgMatch = math.Round(sum/float64(len(items))*10) / 10

	gaps := make([]models.SkillGap, 0, len(frequency))
	for skill, count := range frequency {
		gaps = append(gaps, models.SkillGap{Skill: skill, Frequency: count})
	}
	// Highest demand first; ties break alphabetically so the order is stable
	// across runs regardless of map iteration.
	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].Frequency != gaps[j].Frequency {
			return gaps[i].Frequency > gaps[j].Frequency
		}
		return gaps[i].Skill < gaps[j].Skill
	})

	return Result{Stats: stats, Gaps: gaps}
}
