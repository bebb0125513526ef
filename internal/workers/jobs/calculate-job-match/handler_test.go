package calculatejobmatch

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"career-workers/internal/common/camunda"
	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/models"
	"career-workers/internal/scoring/jobmatch"
)

// ==========================
// Test Helpers
// ==========================

type fakeProfiles struct {
	profiles map[string]*models.CandidateProfile
	err      error
	calls    int
}

func (f *fakeProfiles) GetProfile(_ context.Context, userID string) (*models.CandidateProfile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return nil, errors.NewProfileNotFoundError(userID)
}

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

func createTestHandler(t *testing.T, profiles ProfileSource) *Handler {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	scorer := jobmatch.NewScorer(jobmatch.DefaultWeights(), jobmatch.WithClock(func() time.Time { return now }))
	return NewHandler(createTestConfig(), scorer, profiles, logger.NewZapAdapter(zaptest.NewLogger(t)))
}

func reactExpert() *models.CandidateProfile {
	return &models.CandidateProfile{
		UserID: "user-1",
		Skills: []models.Skill{{Name: "React", Proficiency: models.ProficiencyExpert}},
	}
}

func reactJob() models.JobPosting {
	return models.JobPosting{ID: "job-1", Tags: []string{"React"}, Type: "Full-time"}
}

func createMockJob(variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:       1,
		Type:      TaskType,
		Retries:   3,
		Variables: string(variablesJSON),
	}}
}

// ==========================
// Execute Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		profiles       *fakeProfiles
		expectedScore  int
		expectedCalls  int
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name:          "inline profile is scored without lookup",
			input:         &Input{UserID: "user-1", Job: reactJob(), CandidateProfile: reactExpert()},
			profiles:      &fakeProfiles{},
			expectedScore: 80,
			expectedCalls: 0,
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, []string{"React"}, output.MatchedSkills)
				assert.Equal(t, 50.0, output.Breakdown.SkillOverlap)
				assert.NotEmpty(t, output.Reasons)
			},
		},
		{
			name:          "stored profile is fetched",
			input:         &Input{UserID: "user-1", Job: reactJob()},
			profiles:      &fakeProfiles{profiles: map[string]*models.CandidateProfile{"user-1": reactExpert()}},
			expectedScore: 80,
			expectedCalls: 1,
		},
		{
			name:          "missing profile scores as empty",
			input:         &Input{UserID: "user-2", Job: reactJob()},
			profiles:      &fakeProfiles{},
			expectedScore: 20,
			expectedCalls: 1,
			validateOutput: func(t *testing.T, output *Output) {
				assert.NotNil(t, output.MatchedSkills)
				assert.Empty(t, output.MatchedSkills)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createTestHandler(t, tt.profiles)
			output, err := handler.Execute(context.Background(), tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedScore, output.MatchScore)
			assert.Equal(t, tt.expectedCalls, tt.profiles.calls)
			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}
		})
	}
}

func TestHandler_Execute_Errors(t *testing.T) {
	t.Run("profile fetch failure propagates", func(t *testing.T) {
		profiles := &fakeProfiles{err: errors.NewProfileFetchFailedError("user-1", fmt.Errorf("db down"))}
		handler := createTestHandler(t, profiles)

		_, err := handler.Execute(context.Background(), &Input{UserID: "user-1", Job: reactJob()})
		assert.True(t, errors.HasCode(err, errors.ErrCodeProfileFetchFailed))
	})

	t.Run("no profile and no user", func(t *testing.T) {
		handler := createTestHandler(t, &fakeProfiles{})

		_, err := handler.Execute(context.Background(), &Input{Job: reactJob()})
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
	})
}

// ==========================
// Input Decoding Tests
// ==========================

func TestDecodeInput(t *testing.T) {
	t.Run("valid variables", func(t *testing.T) {
		job := createMockJob(map[string]interface{}{
			"userId": "user-1",
			"job": map[string]interface{}{
				"id":         "job-9",
				"skills":     []string{"Go"},
				"remote":     true,
				"postedDate": "2024-06-10",
			},
		})

		var input Input
		require.NoError(t, camunda.DecodeVariables(job, GetInputSchema(), &input))
		assert.Equal(t, "job-9", input.Job.ID)
		assert.True(t, input.Job.Remote)
		assert.False(t, input.Job.PostedDate.IsZero())
		assert.Nil(t, input.CandidateProfile)
	})

	t.Run("missing job", func(t *testing.T) {
		var input Input
		err := camunda.DecodeVariables(createMockJob(map[string]interface{}{"userId": "user-1"}), GetInputSchema(), &input)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
	})

	t.Run("wrong skill type", func(t *testing.T) {
		var input Input
		err := camunda.DecodeVariables(createMockJob(map[string]interface{}{
			"job": map[string]interface{}{"skills": "Go"},
		}), GetInputSchema(), &input)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
	})
}
