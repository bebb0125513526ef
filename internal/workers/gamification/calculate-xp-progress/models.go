// internal/workers/gamification/calculate-xp-progress/models.go
package calculatexpprogress

import (
	"career-workers/internal/common/validation"
	"career-workers/internal/models"
)

type Input struct {
	UserID string `json:"userId"`
	// Activities is loaded from the activity store when absent.
	Activities []models.ActivityRecord `json:"activities,omitempty"`
}

type Output struct {
	TotalXP       int                         `json:"totalXP"`
	Breakdown     map[models.ActivityKind]int `json:"breakdown"`
	Progress      models.LevelProgress        `json:"progress"`
	LeveledUp     bool                        `json:"leveledUp"`
	PreviousLevel int                         `json:"previousLevel"`
	NotifyLevelUp bool                        `json:"notifyLevelUp"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"userId": {Type: "string", MaxLength: validation.IntPtr(128)},
			"activities": {
				Type:     "array",
				MaxItems: validation.IntPtr(10000),
				Items: &validation.Property{
					Type:     "object",
					Required: []string{"kind"},
					Properties: map[string]validation.Property{
						// unknown kinds are accepted and earn no XP
						"kind": {Type: "string"},
					},
				},
			},
		},
	}
}
