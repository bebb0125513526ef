// internal/workers/gamification/calculate-xp-progress/config.go
package calculatexpprogress

import (
	"time"

	"career-workers/internal/common/config"
)

type Config struct {
	Timeout         time.Duration
	NotifyOnLevelUp bool
}

func LoadConfig(wcfg config.WorkerConfig, progression config.ProgressionConfig) *Config {
	cfg := &Config{
		Timeout:         5 * time.Second,
		NotifyOnLevelUp: progression.NotifyOnLevelUp,
	}
	if wcfg.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wcfg.Timeout)
	}
	return cfg
}
