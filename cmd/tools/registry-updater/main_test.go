package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-workers/pkg/registry"
)

func TestSyncRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	changed, err := syncRegistry(path, now)
	require.NoError(t, err)
	assert.Equal(t, 8, changed)

	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01T12:00:00Z", reg.LastUpdated)
	require.Len(t, reg.Activities, 8)

	byID := map[string]registry.Activity{}
	for _, a := range reg.Activities {
		byID[a.ID] = a
	}
	update := byID["update-job-state"]
	assert.Equal(t, "3s", update.Timeout)
	assert.Equal(t, 3, update.Retries)
	assert.Contains(t, update.ErrorCodes, "JOB_STATE_STORE_FAILED")
	assert.Equal(t, "object", update.InputSchema["type"])

	invalidate := byID["invalidate-profile-cache"]
	assert.Equal(t, "2s", invalidate.Timeout)
	assert.Equal(t, []string{"INVALID_INPUT", "PROFILE_CACHE_FAILED"}, invalidate.ErrorCodes)
	assert.Equal(t, "jobs", byID["get-job-state"].Category)

	changed, err = syncRegistry(path, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, changed, "second sync is a no-op")

	assert.NoError(t, validateRegistry(path))
}

func TestValidateRegistry_UnknownTaskType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	require.NoError(t, registry.Save(&registry.ActivityRegistry{
		Activities: []registry.Activity{{ID: "legacy", DisplayName: "Legacy", TaskType: "legacy", Category: "misc"}},
	}, path))

	err := validateRegistry(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no worker for task type legacy")
}
