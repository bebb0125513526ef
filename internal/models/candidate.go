// internal/models/candidate.go
package models

import "strings"

// FallbackLocation is shown in place of a candidate location that was never filled in.
const FallbackLocation = "Anywhere"

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

type Skill struct {
	Name        string      `json:"name"`
	Proficiency Proficiency `json:"proficiency,omitempty"`
}

type CandidateProfile struct {
	UserID          string  `json:"userId,omitempty"`
	Skills          []Skill `json:"skills"`
	Location        string  `json:"location,omitempty"`
	ExperienceYears float64 `json:"experienceYears,omitempty"`
}

// SkillIndex maps lower-cased skill names to the first skill declared under that name.
func (p *CandidateProfile) SkillIndex() map[string]Skill {
	idx := make(map[string]Skill, len(p.Skills))
	for _, s := range p.Skills {
		key := NormalizeSkill(s.Name)
		if key == "" {
			continue
		}
		if _, seen := idx[key]; !seen {
			idx[key] = s
		}
	}
	return idx
}

// SkillNames returns the distinct skill names in declaration order.
func (p *CandidateProfile) SkillNames() []string {
	seen := make(map[string]bool, len(p.Skills))
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		key := NormalizeSkill(s.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, strings.TrimSpace(s.Name))
	}
	return names
}

func (p *CandidateProfile) DisplayLocation() string {
	if loc := strings.TrimSpace(p.Location); loc != "" {
		return loc
	}
	return FallbackLocation
}

// NormalizeSkill is the comparison key for skill names.
func NormalizeSkill(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
