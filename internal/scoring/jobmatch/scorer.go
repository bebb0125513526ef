// internal/scoring/jobmatch/scorer.go
package jobmatch

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"career-workers/internal/models"
)

const fullTimeType = "full-time"

// Breakdown is the per-term result of scoring one posting for one candidate.
type Breakdown struct {
	SkillOverlap  float64  `json:"skillOverlap"`
	Proficiency   float64  `json:"proficiency"`
	Location      float64  `json:"location"`
	Remote        float64  `json:"remote"`
	Recency       float64  `json:"recency"`
	JobType       float64  `json:"jobType"`
	Total         int      `json:"total"`
	MatchedSkills []string `json:"matchedSkills"`
	Reasons       []string `json:"reasons"`
}

type Option func(*Scorer)

// WithClock replaces time.Now for recency calculations.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		if now != nil {
			s.now = now
		}
	}
}

// Scorer is safe for concurrent use; it holds no mutable state.
type Scorer struct {
	weights Weights
	now     func() time.Time
}

func NewScorer(weights Weights, opts ...Option) *Scorer {
	s := &Scorer{
		weights: weights,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score returns the 0..MaxScore match score of job for candidate.
func (s *Scorer) Score(candidate *models.CandidateProfile, job *models.JobPosting) int {
	return s.Explain(candidate, job).Total
}

func (s *Scorer) Explain(candidate *models.CandidateProfile, job *models.JobPosting) Breakdown {
	if candidate == nil {
		candidate = &models.CandidateProfile{}
	}
	if job == nil {
		job = &models.JobPosting{}
	}

	var b Breakdown
	s.scoreSkills(&b, candidate, job)
	s.scoreLocation(&b, candidate, job)
	s.scoreRecency(&b, job)

	if strings.EqualFold(strings.TrimSpace(job.Type), fullTimeType) {
		b.JobType = s.weights.FullTime
		b.Reasons = append(b.Reasons, "Full-time role")
	}

	sum := b.SkillOverlap + b.Proficiency + b.Location + b.Remote + b.Recency + b.JobType
	total := math.Min(s.weights.maxScore(), math.Round(sum))
	if total < 0 {
		total = 0
	}
	b.Total = int(total)
	return b
}

func (s *Scorer) scoreSkills(b *Breakdown, candidate *models.CandidateProfile, job *models.JobPosting) {
	required := job.RequiredSkills()
	if len(required) == 0 {
		return
	}

	index := candidate.SkillIndex()
	for _, name := range required {
		skill, ok := index[models.NormalizeSkill(name)]
		if !ok {
			continue
		}
		b.MatchedSkills = append(b.MatchedSkills, name)
		if bonus := s.weights.proficiencyBonus(skill.Proficiency); bonus > 0 {
			b.Proficiency += bonus
			b.Reasons = append(b.Reasons, fmt.Sprintf("%s level in %s", titleCase(string(skill.Proficiency)), name))
		}
	}

	b.SkillOverlap = s.weights.SkillOverlap * float64(len(b.MatchedSkills)) / float64(len(required))
	if len(b.MatchedSkills) > 0 {
		b.Reasons = append([]string{fmt.Sprintf("Matches %d of %d skills: %s",
			len(b.MatchedSkills), len(required), strings.Join(b.MatchedSkills, ", "))}, b.Reasons...)
	}
}

func (s *Scorer) scoreLocation(b *Breakdown, candidate *models.CandidateProfile, job *models.JobPosting) {
	want := strings.ToLower(strings.TrimSpace(candidate.Location))
	have := strings.ToLower(strings.TrimSpace(job.Location))

	switch {
	case want == "":
		b.Location = s.weights.Location
		b.Reasons = append(b.Reasons, fmt.Sprintf("Open to any location (%s)", candidate.DisplayLocation()))
	case have != "" && (strings.Contains(have, want) || strings.Contains(want, have)):
		b.Location = s.weights.Location
		b.Reasons = append(b.Reasons, fmt.Sprintf("Located in %s", strings.TrimSpace(job.Location)))
	case job.Remote && s.weights.LocationIncludesRemote:
		b.Location = s.weights.Location
	}

	if job.Remote {
		b.Remote = s.weights.Remote
		b.Reasons = append(b.Reasons, "Remote friendly")
	}
}

func (s *Scorer) scoreRecency(b *Breakdown, job *models.JobPosting) {
	if job.PostedDate.IsZero() {
		return
	}
	days := int(s.now().Sub(job.PostedDate.Time).Hours() / 24)
	if days < 0 {
		days = 0
	}
	switch {
	case days <= 7:
		b.Recency = s.weights.PostedWithinWeek
		b.Reasons = append(b.Reasons, "Posted this week")
	case days <= 30:
		b.Recency = s.weights.PostedWithinMonth
		b.Reasons = append(b.Reasons, "Posted this month")
	}
}

// RankJobs scores every non-inactive posting, drops zero scores and returns
// the best limit matches, highest first. Equal scores keep their input order.
// A limit of zero or less returns every match.
func (s *Scorer) RankJobs(candidate *models.CandidateProfile, jobs []models.JobPosting, limit int) []models.JobMatch {
	matches := make([]models.JobMatch, 0, len(jobs))
	for i := range jobs {
		if jobs[i].IsInactive() {
			continue
		}
		b := s.Explain(candidate, &jobs[i])
		if b.Total == 0 {
			continue
		}
		matches = append(matches, models.JobMatch{
			JobPosting:    jobs[i],
			MatchScore:    b.Total,
			MatchedSkills: b.MatchedSkills,
			Reasons:       b.Reasons,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

var defaultScorer = NewScorer(DefaultWeights())

// Score uses the default weights.
func Score(candidate *models.CandidateProfile, job *models.JobPosting) int {
	return defaultScorer.Score(candidate, job)
}

// RankJobs uses the default weights.
func RankJobs(candidate *models.CandidateProfile, jobs []models.JobPosting, limit int) []models.JobMatch {
	return defaultScorer.RankJobs(candidate, jobs, limit)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
