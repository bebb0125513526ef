// internal/workers/gamification/send-progress-notification/models.go
package sendprogressnotification

import (
	"career-workers/internal/common/validation"
	"career-workers/internal/models"
)

const (
	StatusSent     = "sent"
	StatusSkipped  = "skipped"
	StatusDisabled = "disabled"

	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

type Input struct {
	UserID           string            `json:"userId"`
	NotificationType string            `json:"notificationType"`
	Level            int               `json:"level,omitempty"`
	LevelTitle       string            `json:"levelTitle,omitempty"`
	TotalXP          int               `json:"totalXP,omitempty"`
	Recommendations  []models.JobMatch `json:"recommendations,omitempty"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"`
	Channels       []string `json:"channels"`
	SentAt         string   `json:"sentAt"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"userId", "notificationType"},
		Properties: map[string]validation.Property{
			"userId": {Type: "string", MinLength: validation.IntPtr(1), MaxLength: validation.IntPtr(128)},
			"notificationType": {
				Type: "string",
				Enum: []string{models.NotificationLevelUp, models.NotificationJobDigest},
			},
			"level":      {Type: "integer", Minimum: validation.FloatPtr(1)},
			"levelTitle": {Type: "string", MaxLength: validation.IntPtr(100)},
			"totalXP":    {Type: "integer", Minimum: validation.FloatPtr(0)},
			"recommendations": {
				Type:  "array",
				Items: &validation.Property{Type: "object"},
			},
		},
	}
}
