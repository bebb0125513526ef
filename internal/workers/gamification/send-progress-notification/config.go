// internal/workers/gamification/send-progress-notification/config.go
package sendprogressnotification

import (
	"time"

	"career-workers/internal/common/config"
)

type Config struct {
	Timeout      time.Duration
	EmailEnabled bool
	FromEmail    string
	SMSEnabled   bool
	DigestSize   int
}

func LoadConfig(wcfg config.WorkerConfig, notifications config.NotificationConfig) *Config {
	cfg := &Config{
		Timeout:      15 * time.Second,
		EmailEnabled: notifications.Email.Enabled,
		FromEmail:    notifications.Email.FromEmail,
		SMSEnabled:   notifications.SMS.Enabled,
		DigestSize:   5,
	}
	if wcfg.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wcfg.Timeout)
	}
	return cfg
}
