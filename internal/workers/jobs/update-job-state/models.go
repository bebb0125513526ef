// internal/workers/jobs/update-job-state/models.go
package updatejobstate

import (
	"career-workers/internal/common/validation"
	"career-workers/internal/models"
)

type Input struct {
	UserID string          `json:"userId"`
	JobID  string          `json:"jobId"`
	State  models.JobState `json:"state"`
	// Active defaults to true; false clears the state.
	Active *bool `json:"active,omitempty"`
}

func (i *Input) IsActive() bool {
	return i.Active == nil || *i.Active
}

type Output struct {
	State  models.JobState `json:"state"`
	JobIDs []string        `json:"jobIds"`
}

func GetInputSchema() validation.JSONSchema {
	states := make([]string, 0, len(models.JobStates))
	for _, s := range models.JobStates {
		states = append(states, string(s))
	}
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"userId", "jobId", "state"},
		Properties: map[string]validation.Property{
			"userId": {Type: "string", MinLength: validation.IntPtr(1), MaxLength: validation.IntPtr(128)},
			"jobId":  {Type: "string", MinLength: validation.IntPtr(1), MaxLength: validation.IntPtr(128)},
			"state":  {Type: "string", Enum: states},
			"active": {Type: "boolean"},
		},
	}
}
