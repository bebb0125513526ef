// internal/workers/jobs/calculate-job-match/models.go
package calculatejobmatch

import (
	"career-workers/internal/common/validation"
	"career-workers/internal/models"
	"career-workers/internal/scoring/jobmatch"
)

type Input struct {
	UserID           string                   `json:"userId"`
	Job              models.JobPosting        `json:"job"`
	CandidateProfile *models.CandidateProfile `json:"candidateProfile,omitempty"`
}

type Output struct {
	MatchScore    int                `json:"matchScore"`
	MatchedSkills []string           `json:"matchedSkills"`
	Reasons       []string           `json:"reasons"`
	Breakdown     jobmatch.Breakdown `json:"breakdown"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"job"},
		Properties: map[string]validation.Property{
			"userId": {
				Type:        "string",
				Description: "User whose stored profile is scored when candidateProfile is absent",
				MaxLength:   validation.IntPtr(128),
			},
			"job": {
				Type:        "object",
				Description: "Job posting to score",
				Properties: map[string]validation.Property{
					"id":     {Type: "string"},
					"skills": {Type: "array", Items: &validation.Property{Type: "string"}},
					"tags":   {Type: "array", Items: &validation.Property{Type: "string"}},
					"remote": {Type: "boolean"},
				},
			},
		},
	}
}
