// internal/workers/jobs/get-job-state/models.go
package getjobstate

import (
	"career-workers/internal/common/validation"
	"career-workers/internal/models"
)

type Input struct {
	UserID string `json:"userId"`
	JobID  string `json:"jobId"`
}

// Output has one entry per known job state.
type Output struct {
	JobID   string                   `json:"jobId"`
	States  map[models.JobState]bool `json:"states"`
	Saved   bool                     `json:"saved"`
	Applied bool                     `json:"applied"`
	Liked   bool                     `json:"liked"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"userId", "jobId"},
		Properties: map[string]validation.Property{
			"userId": {Type: "string", MinLength: validation.IntPtr(1), MaxLength: validation.IntPtr(128)},
			"jobId":  {Type: "string", MinLength: validation.IntPtr(1), MaxLength: validation.IntPtr(128)},
		},
	}
}
