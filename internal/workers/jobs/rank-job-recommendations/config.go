// internal/workers/jobs/rank-job-recommendations/config.go
package rankjobrecommendations

import (
	"time"

	"career-workers/internal/common/config"
)

type Config struct {
	Timeout       time.Duration
	DefaultLimit  int
	MaxLimit      int
	CatalogSize   int
	SlowThreshold time.Duration
}

func LoadConfig(wcfg config.WorkerConfig, scoring config.ScoringConfig) *Config {
	cfg := &Config{
		Timeout:       10 * time.Second,
		DefaultLimit:  scoring.DefaultLimit,
		MaxLimit:      scoring.MaxLimit,
		CatalogSize:   100,
		SlowThreshold: time.Duration(scoring.SlowRankingMs) * time.Millisecond,
	}
	if wcfg.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wcfg.Timeout)
	}
	return cfg
}

// EffectiveLimit applies the default to an unset limit and caps it at MaxLimit.
func (c *Config) EffectiveLimit(requested int) int {
	limit := requested
	if limit <= 0 {
		limit = c.DefaultLimit
	}
	if c.MaxLimit > 0 && limit > c.MaxLimit {
		limit = c.MaxLimit
	}
	return limit
}
