// internal/models/activity.go
package models

import "encoding/json"

type ActivityKind string

const (
	KindTestCompletion    ActivityKind = "testCompletion"
	KindSkillsAssessment  ActivityKind = "skillsAssessment"
	KindProfileCompletion ActivityKind = "profileCompletion"
	KindEngagement        ActivityKind = "engagement"
	KindAchievement       ActivityKind = "achievement"
	KindCodingChallenge   ActivityKind = "codingChallenge"
)

// ActivityKinds lists every kind in reporting order.
var ActivityKinds = []ActivityKind{
	KindTestCompletion,
	KindSkillsAssessment,
	KindProfileCompletion,
	KindEngagement,
	KindAchievement,
	KindCodingChallenge,
}

// ActivityRecord is a tagged union: Kind selects which payload is meaningful.
// A record whose payload for its kind is nil counts as empty.
type ActivityRecord struct {
	Kind              ActivityKind       `json:"kind"`
	TestCompletion    *TestCompletion    `json:"testCompletion,omitempty"`
	SkillsAssessment  *SkillsAssessment  `json:"skillsAssessment,omitempty"`
	ProfileCompletion *ProfileCompletion `json:"profileCompletion,omitempty"`
	Engagement        *Engagement        `json:"engagement,omitempty"`
	Achievement       *Achievement       `json:"achievement,omitempty"`
	CodingChallenge   *CodingChallenge   `json:"codingChallenge,omitempty"`
}

type TestCompletion struct {
	Difficulty    string  `json:"difficulty"`
	ScorePercent  float64 `json:"scorePercent"`
	QuestionCount int     `json:"questionCount"`
}

type SkillsAssessment struct {
	Completed    bool    `json:"completed"`
	ScorePercent float64 `json:"scorePercent"`
	SkillsCount  int     `json:"skillsCount"`
}

type ProfileCompletion struct {
	BasicInfoComplete bool `json:"basicInfoComplete"`
	SkillsCount       int  `json:"skillsCount"`
	BioCompleted      bool `json:"bioCompleted"`
	CVUploaded        bool `json:"cvUploaded"`
	PictureUploaded   bool `json:"pictureUploaded"`
	CareerGoalsSet    bool `json:"careerGoalsSet"`
}

type Engagement struct {
	LoginStreakDays    int `json:"loginStreakDays"`
	WeeklyStreakCount  int `json:"weeklyStreakCount"`
	MonthlyStreakCount int `json:"monthlyStreakCount"`
	FirstTestDays      int `json:"firstTestDays"`
}

type Achievement struct {
	ID     int  `json:"id"`
	Earned bool `json:"earned"`
}

type CodingChallenge struct {
	Difficulty          string  `json:"difficulty"`
	Optimized           bool    `json:"optimized"`
	TimeEfficiencyRatio float64 `json:"timeEfficiencyRatio"`
}

func TestCompletionRecord(tc TestCompletion) ActivityRecord {
	return ActivityRecord{Kind: KindTestCompletion, TestCompletion: &tc}
}

func SkillsAssessmentRecord(sa SkillsAssessment) ActivityRecord {
	return ActivityRecord{Kind: KindSkillsAssessment, SkillsAssessment: &sa}
}

func ProfileCompletionRecord(pc ProfileCompletion) ActivityRecord {
	return ActivityRecord{Kind: KindProfileCompletion, ProfileCompletion: &pc}
}

func EngagementRecord(e Engagement) ActivityRecord {
	return ActivityRecord{Kind: KindEngagement, Engagement: &e}
}

func AchievementRecord(a Achievement) ActivityRecord {
	return ActivityRecord{Kind: KindAchievement, Achievement: &a}
}

func CodingChallengeRecord(cc CodingChallenge) ActivityRecord {
	return ActivityRecord{Kind: KindCodingChallenge, CodingChallenge: &cc}
}

// Payload fields decode one at a time: a field holding the wrong JSON type
// reads as its zero value instead of failing the whole record.

func looseObject(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func field[T any](fields map[string]json.RawMessage, key string) T {
	var v T
	if raw, ok := fields[key]; ok {
		if err := json.Unmarshal(raw, &v); err != nil {
			var zero T
			return zero
		}
	}
	return v
}

func (tc *TestCompletion) UnmarshalJSON(data []byte) error {
	f, err := looseObject(data)
	if err != nil {
		return err
	}
	*tc = TestCompletion{
		Difficulty:    field[string](f, "difficulty"),
		ScorePercent:  field[float64](f, "scorePercent"),
		QuestionCount: field[int](f, "questionCount"),
	}
	return nil
}

func (sa *SkillsAssessment) UnmarshalJSON(data []byte) error {
	f, err := looseObject(data)
	if err != nil {
		return err
	}
	*sa = SkillsAssessment{
		Completed:    field[bool](f, "completed"),
		ScorePercent: field[float64](f, "scorePercent"),
		SkillsCount:  field[int](f, "skillsCount"),
	}
	return nil
}

func (pc *ProfileCompletion) UnmarshalJSON(data []byte) error {
	f, err := looseObject(data)
	if err != nil {
		return err
	}
	*pc = ProfileCompletion{
		BasicInfoComplete: field[bool](f, "basicInfoComplete"),
		SkillsCount:       field[int](f, "skillsCount"),
		BioCompleted:      field[bool](f, "bioCompleted"),
		CVUploaded:        field[bool](f, "cvUploaded"),
		PictureUploaded:   field[bool](f, "pictureUploaded"),
		CareerGoalsSet:    field[bool](f, "careerGoalsSet"),
	}
	return nil
}

func (e *Engagement) UnmarshalJSON(data []byte) error {
	f, err := looseObject(data)
	if err != nil {
		return err
	}
	*e = Engagement{
		LoginStreakDays:    field[int](f, "loginStreakDays"),
		WeeklyStreakCount:  field[int](f, "weeklyStreakCount"),
		MonthlyStreakCount: field[int](f, "monthlyStreakCount"),
		FirstTestDays:      field[int](f, "firstTestDays"),
	}
	return nil
}

func (a *Achievement) UnmarshalJSON(data []byte) error {
	f, err := looseObject(data)
	if err != nil {
		return err
	}
	*a = Achievement{
		ID:     field[int](f, "id"),
		Earned: field[bool](f, "earned"),
	}
	return nil
}

func (cc *CodingChallenge) UnmarshalJSON(data []byte) error {
	f, err := looseObject(data)
	if err != nil {
		return err
	}
	*cc = CodingChallenge{
		Difficulty:          field[string](f, "difficulty"),
		Optimized:           field[bool](f, "optimized"),
		TimeEfficiencyRatio: field[float64](f, "timeEfficiencyRatio"),
	}
	return nil
}
