// internal/scoring/progression/xp.go
package progression

import (
	"math"
	"strings"

	"career-workers/internal/models"
)

const (
	testBaseXP            = 100.0
	testLengthFreeLimit   = 10
	testExtraQuestionXP   = 5.0
	assessmentBaseXP      = 75.0
	assessmentCompletedXP = 25.0
	assessmentPerfectXP   = 100.0
	assessmentPerSkillXP  = 10.0
	challengeBaseXP       = 150.0
	challengeOptimizedXP  = 50.0
	challengeFastXP       = 25.0
	challengeFastRatio    = 0.8
	loginStreakCap        = 30
	profileSkillsCap      = 5
)

var testDifficultyMultiplier = map[string]float64{
	"easy":   1.0,
	"medium": 1.5,
	"hard":   2.0,
	"expert": 2.5,
}

var challengeDifficultyMultiplier = map[string]float64{
	"beginner":     1.0,
	"intermediate": 1.5,
	"advanced":     2.0,
	"expert":       3.0,
}

// scoreBonuses is ordered from the highest threshold down.
var scoreBonuses = []struct {
	min   float64
	bonus float64
}{
	{90, 50},
	{80, 30},
	{70, 15},
	{60, 5},
}

var achievementXP = map[int]float64{
	1: 200,
	2: 300,
	3: 100,
	4: 150,
	5: 250,
}

func multiplier(table map[string]float64, difficulty string) float64 {
	if m, ok := table[strings.ToLower(strings.TrimSpace(difficulty))]; ok {
		return m
	}
	return 1.0
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func TestCompletionXP(tc models.TestCompletion) float64 {
	xp := testBaseXP * multiplier(testDifficultyMultiplier, tc.Difficulty)
	for _, sb := range scoreBonuses {
		if tc.ScorePercent >= sb.min {
			xp += sb.bonus
			break
		}
	}
	if extra := nonNegative(tc.QuestionCount) - testLengthFreeLimit; extra > 0 {
		xp += testExtraQuestionXP * float64(extra)
	}
	return xp
}

// SkillsAssessmentXP keeps the per-skill term unclamped, so an assessment
// covering zero skills is worth 10 XP less than the base.
func SkillsAssessmentXP(sa models.SkillsAssessment) float64 {
	xp := assessmentBaseXP
	if sa.Completed {
		xp += assessmentCompletedXP
	}
	if sa.ScorePercent >= 100 {
		xp += assessmentPerfectXP
	}
	xp += assessmentPerSkillXP * float64(nonNegative(sa.SkillsCount)-1)
	return xp
}

func ProfileCompletionXP(pc models.ProfileCompletion) float64 {
	var xp float64
	if pc.BasicInfoComplete {
		xp += 50
	}
	xp += 25 * float64(min(nonNegative(pc.SkillsCount), profileSkillsCap))
	if pc.BioCompleted {
		xp += 30
	}
	if pc.CVUploaded {
		xp += 75
	}
	if pc.PictureUploaded {
		xp += 20
	}
	if pc.CareerGoalsSet {
		xp += 40
	}
	return xp
}

func EngagementXP(e models.Engagement) float64 {
	return 10*float64(min(nonNegative(e.LoginStreakDays), loginStreakCap)) +
		50*float64(nonNegative(e.WeeklyStreakCount)) +
		200*float64(nonNegative(e.MonthlyStreakCount)) +
		15*float64(nonNegative(e.FirstTestDays))
}

func AchievementXP(a models.Achievement) float64 {
	if !a.Earned {
		return 0
	}
	return achievementXP[a.ID]
}

func CodingChallengeXP(cc models.CodingChallenge) float64 {
	xp := challengeBaseXP * multiplier(challengeDifficultyMultiplier, cc.Difficulty)
	if cc.Optimized {
		xp += challengeOptimizedXP
	}
	if cc.TimeEfficiencyRatio > challengeFastRatio {
		xp += challengeFastXP
	}
	return xp
}

// RecordXP is the unrounded XP of a single record. Records with an unknown
// kind or without the payload their kind names are worth nothing.
func RecordXP(r models.ActivityRecord) float64 {
	switch r.Kind {
	case models.KindTestCompletion:
		if r.TestCompletion != nil {
			return TestCompletionXP(*r.TestCompletion)
		}
	case models.KindSkillsAssessment:
		if r.SkillsAssessment != nil {
			return SkillsAssessmentXP(*r.SkillsAssessment)
		}
	case models.KindProfileCompletion:
		if r.ProfileCompletion != nil {
			return ProfileCompletionXP(*r.ProfileCompletion)
		}
	case models.KindEngagement:
		if r.Engagement != nil {
			return EngagementXP(*r.Engagement)
		}
	case models.KindAchievement:
		if r.Achievement != nil {
			return AchievementXP(*r.Achievement)
		}
	case models.KindCodingChallenge:
		if r.CodingChallenge != nil {
			return CodingChallengeXP(*r.CodingChallenge)
		}
	}
	return 0
}

// TotalXP sums every record and rounds once at the end.
func TotalXP(records []models.ActivityRecord) int {
	var sum float64
	for _, r := range records {
		sum += RecordXP(r)
	}
	return roundXP(sum)
}

var knownKinds = func() map[models.ActivityKind]bool {
	kinds := make(map[models.ActivityKind]bool, len(models.ActivityKinds))
	for _, k := range models.ActivityKinds {
		kinds[k] = true
	}
	return kinds
}()

// Breakdown groups rounded XP by activity kind. Kinds without records and
// kinds the engine does not score are omitted.
func Breakdown(records []models.ActivityRecord) map[models.ActivityKind]int {
	sums := make(map[models.ActivityKind]float64)
	for _, r := range records {
		if !knownKinds[r.Kind] {
			continue
		}
		sums[r.Kind] += RecordXP(r)
	}

	out := make(map[models.ActivityKind]int, len(sums))
	for kind, xp := range sums {
		out[kind] = roundXP(xp)
	}
	return out
}

// roundXP saturates at math.MaxInt; converting a larger float wraps negative.
func roundXP(xp float64) int {
	if xp <= 0 || math.IsNaN(xp) {
		return 0
	}
	if xp >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(math.Round(xp))
}
