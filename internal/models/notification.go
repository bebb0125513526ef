// internal/models/notification.go
package models

const (
	NotificationLevelUp   = "level_up"
	NotificationJobDigest = "job_digest"
)

// Contact is where a user can be reached.
type Contact struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}
