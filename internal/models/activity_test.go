package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRecord_UnmarshalMistypedFields(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ActivityRecord
	}{
		{
			name:     "string count reads as zero",
			input:    `{"kind":"testCompletion","testCompletion":{"difficulty":"hard","scorePercent":95,"questionCount":"12"}}`,
			expected: TestCompletionRecord(TestCompletion{Difficulty: "hard", ScorePercent: 95}),
		},
		{
			name:     "fractional count reads as zero",
			input:    `{"kind":"engagement","engagement":{"loginStreakDays":4.5,"weeklyStreakCount":2}}`,
			expected: EngagementRecord(Engagement{WeeklyStreakCount: 2}),
		},
		{
			name:     "overflowing count reads as zero",
			input:    `{"kind":"engagement","engagement":{"firstTestDays":1e40,"monthlyStreakCount":1}}`,
			expected: EngagementRecord(Engagement{MonthlyStreakCount: 1}),
		},
		{
			name:     "string flag reads as false",
			input:    `{"kind":"profileCompletion","profileCompletion":{"cvUploaded":"yes","bioCompleted":true,"skillsCount":3}}`,
			expected: ProfileCompletionRecord(ProfileCompletion{BioCompleted: true, SkillsCount: 3}),
		},
		{
			name:     "numeric difficulty reads as empty",
			input:    `{"kind":"codingChallenge","codingChallenge":{"difficulty":3,"optimized":true,"timeEfficiencyRatio":0.5}}`,
			expected: CodingChallengeRecord(CodingChallenge{Optimized: true, TimeEfficiencyRatio: 0.5}),
		},
		{
			name:     "null field",
			input:    `{"kind":"achievement","achievement":{"id":null,"earned":true}}`,
			expected: AchievementRecord(Achievement{Earned: true}),
		},
		{
			name:     "skills assessment",
			input:    `{"kind":"skillsAssessment","skillsAssessment":{"completed":1,"scorePercent":"100","skillsCount":4}}`,
			expected: SkillsAssessmentRecord(SkillsAssessment{SkillsCount: 4}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var record ActivityRecord
			require.NoError(t, json.Unmarshal([]byte(tt.input), &record))
			assert.Equal(t, tt.expected, record)
		})
	}
}

func TestActivityRecord_PayloadMustBeObject(t *testing.T) {
	var record ActivityRecord
	err := json.Unmarshal([]byte(`{"kind":"achievement","achievement":[1,true]}`), &record)
	assert.Error(t, err)

	record = ActivityRecord{}
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"achievement","achievement":null}`), &record))
	assert.Nil(t, record.Achievement)
}

func TestActivityRecord_RoundTrip(t *testing.T) {
	in := CodingChallengeRecord(CodingChallenge{Difficulty: "advanced", Optimized: true, TimeEfficiencyRatio: 0.75})
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out ActivityRecord
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
