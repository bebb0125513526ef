// internal/scoring/jobmatch/weights.go
package jobmatch

import "career-workers/internal/models"

// Weights holds every constant of the match formula. The defaults reproduce
// the split location/remote rule; FoldedLocationWeights reproduces the rule
// where a remote posting only earns the combined location term.
type Weights struct {
	SkillOverlap           float64                        `mapstructure:"skill_overlap"`
	Proficiency            map[models.Proficiency]float64 `mapstructure:"proficiency"`
	Location               float64                        `mapstructure:"location"`
	LocationIncludesRemote bool                           `mapstructure:"location_includes_remote"`
	Remote                 float64                        `mapstructure:"remote"`
	PostedWithinWeek       float64                        `mapstructure:"posted_within_week"`
	PostedWithinMonth      float64                        `mapstructure:"posted_within_month"`
	FullTime               float64                        `mapstructure:"full_time"`
	MaxScore               float64                        `mapstructure:"max_score"`
}

func DefaultWeights() Weights {
	return Weights{
		SkillOverlap: 50,
		Proficiency: map[models.Proficiency]float64{
			models.ProficiencyExpert:       10,
			models.ProficiencyAdvanced:     7,
			models.ProficiencyIntermediate: 4,
			models.ProficiencyBeginner:     2,
		},
		Location:               10,
		LocationIncludesRemote: true,
		Remote:                 10,
		PostedWithinWeek:       10,
		PostedWithinMonth:      5,
		FullTime:               10,
		MaxScore:               100,
	}
}

func FoldedLocationWeights() Weights {
	w := DefaultWeights()
	w.Location = 20
	w.Remote = 0
	return w
}

// proficiencyBonus treats unknown levels as zero; lookups are case-insensitive.
func (w Weights) proficiencyBonus(p models.Proficiency) float64 {
	if p == "" {
		return 0
	}
	if v, ok := w.Proficiency[p]; ok {
		return v
	}
	return w.Proficiency[models.Proficiency(models.NormalizeSkill(string(p)))]
}

func (w Weights) maxScore() float64 {
	if w.MaxScore <= 0 {
		return 100
	}
	return w.MaxScore
}
