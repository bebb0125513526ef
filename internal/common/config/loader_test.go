package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
camunda:
  broker_address: ${TEST_ZEEBE_ADDRESS}
database:
  postgres:
    host: localhost
    database: careers
    user: careers
  elasticsearch:
    addresses: ["http://localhost:9200"]
  redis:
    address: localhost:6379
workers:
  calculate-job-match:
    enabled: false
  rank-job-recommendations:
    enabled: true
    max_jobs_active: 2
scoring:
  weights:
    location: 20
    remote: 0
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("TEST_ZEEBE_ADDRESS", "zeebe:26500")

	cfg, err := LoadFromFile(writeTestConfig(t, testConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "zeebe:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, "career-workers", cfg.App.Name)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "jobs", cfg.Database.Elasticsearch.JobsIndex)
	assert.Equal(t, 10, cfg.Scoring.DefaultLimit)
	assert.Equal(t, 500, cfg.Scoring.SlowRankingMs)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "none", cfg.Tracing.Exporter)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRatio)

	// Overridden weights apply, untouched ones keep their defaults.
	assert.Equal(t, 20.0, cfg.Scoring.Weights.Location)
	assert.Equal(t, 0.0, cfg.Scoring.Weights.Remote)
	assert.Equal(t, 50.0, cfg.Scoring.Weights.SkillOverlap)
	assert.Equal(t, 100.0, cfg.Scoring.Weights.MaxScore)
	assert.Len(t, cfg.Scoring.Weights.Proficiency, 4)
}

func TestLoadFromFile_WorkerSettings(t *testing.T) {
	t.Setenv("TEST_ZEEBE_ADDRESS", "zeebe:26500")

	cfg, err := LoadFromFile(writeTestConfig(t, testConfigYAML))
	require.NoError(t, err)

	assert.False(t, IsWorkerEnabled(cfg, "calculate-job-match"))
	assert.True(t, IsWorkerEnabled(cfg, "rank-job-recommendations"))
	assert.True(t, IsWorkerEnabled(cfg, "not-configured"))

	ranking := GetWorkerConfig(cfg, "rank-job-recommendations")
	assert.Equal(t, 2, ranking.MaxJobsActive)
	assert.Equal(t, 30000, ranking.Timeout)
	assert.Equal(t, 3, ranking.MaxRetries)

	fallback := GetWorkerConfig(cfg, "not-configured")
	assert.Equal(t, 5, fallback.MaxJobsActive)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing broker",
			yaml:    "database:\n  postgres:\n    host: h\n",
			wantErr: "camunda.broker_address",
		},
		{
			name: "missing redis",
			yaml: `
camunda: {broker_address: "z:26500"}
database:
  postgres: {host: h, database: d, user: u}
  elasticsearch: {addresses: ["http://es:9200"]}
`,
			wantErr: "database.redis.address",
		},
		{
			name: "email without sender",
			yaml: `
camunda: {broker_address: "z:26500"}
database:
  postgres: {host: h, database: d, user: u}
  elasticsearch: {addresses: ["http://es:9200"]}
  redis: {address: "r:6379"}
notifications:
  email: {enabled: true}
`,
			wantErr: "from_email",
		},
		{
			name: "unknown trace exporter",
			yaml: `
camunda: {broker_address: "z:26500"}
database:
  postgres: {host: h, database: d, user: u}
  elasticsearch: {addresses: ["http://es:9200"]}
  redis: {address: "r:6379"}
tracing: {enabled: true, exporter: zipkin}
`,
			wantErr: "tracing.exporter",
		},
		{
			name: "sample ratio above one",
			yaml: `
camunda: {broker_address: "z:26500"}
database:
  postgres: {host: h, database: d, user: u}
  elasticsearch: {addresses: ["http://es:9200"]}
  redis: {address: "r:6379"}
tracing: {sample_ratio: 1.5}
`,
			wantErr: "tracing.sample_ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeTestConfig(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
