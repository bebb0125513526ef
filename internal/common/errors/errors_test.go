package errors

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name            string
		err             *StandardError
		expectedCode    string
		expectedRetries int
	}{
		{"retryable fetch", NewProfileFetchFailedError("u-1", fmt.Errorf("conn refused")), "PROFILE_FETCH_FAILED", 3},
		{"profile cache", NewProfileCacheFailedError("u-3", fmt.Errorf("redis down")), "PROFILE_CACHE_FAILED", 3},
		{"catalog timeout", NewJobCatalogTimeoutError(3 * time.Second), "JOB_CATALOG_TIMEOUT", 2},
		{"invalid input", NewInvalidInputError("userId is required"), "INVALID_INPUT", 0},
		{"profile not found", NewProfileNotFoundError("u-2"), "PROFILE_NOT_FOUND", 0},
		{"unmapped code", &StandardError{Code: "SOMETHING_ELSE", Retryable: true}, "SOMETHING_ELSE", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmnErr := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.expectedCode, bpmnErr.Code)
			assert.Equal(t, tt.expectedRetries, bpmnErr.Retries)
			assert.Equal(t, string(tt.err.Code), bpmnErr.ErrorVariables["originalErrorCode"])
		})
	}
}

func TestConvertToBPMNError_CarriesMetadata(t *testing.T) {
	stdErr := NewJobStateStoreFailedError("add", fmt.Errorf("redis down")).WithMetadata("userId", "u-9")

	vars := ConvertToBPMNError(stdErr).ToErrorVariables()
	assert.Equal(t, "u-9", vars["userId"])
	assert.Equal(t, "JOB_STATE_STORE_FAILED", vars["errorCode"])
	assert.Equal(t, true, vars["retryable"])
}

func TestNormalize(t *testing.T) {
	original := NewActivityFetchFailedError("u-1", fmt.Errorf("boom"))

	wrapped := fmt.Errorf("loading activities: %w", original)
	require.Same(t, original, Normalize(wrapped))

	plain := Normalize(fmt.Errorf("unexpected"))
	assert.Equal(t, ErrorCode("INTERNAL_ERROR"), plain.Code)
	assert.False(t, plain.Retryable)
	assert.Equal(t, "unexpected", plain.Details)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "PROFILE", GetErrorCategory(ErrCodeProfileNotFound))
	assert.Equal(t, "PROFILE", GetErrorCategory(ErrCodeProfileCacheFailed))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeJobCatalogQueryFailed))
	assert.Equal(t, "GAMIFICATION", GetErrorCategory(ErrCodeActivityFetchFailed))
	assert.Equal(t, "STATE", GetErrorCategory(ErrCodeJobStateStoreFailed))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeContactNotFound))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidInput))
	assert.Equal(t, "OTHER", GetErrorCategory("INTERNAL_ERROR"))
	assert.True(t, IsRetryableErrorCode(ErrCodeNotificationSendFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeContactNotFound))
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewProfileNotFoundError("u1"))
	assert.True(t, HasCode(err, ErrCodeProfileNotFound))
	assert.False(t, HasCode(err, ErrCodeProfileFetchFailed))
	assert.False(t, HasCode(fmt.Errorf("plain"), ErrCodeProfileNotFound))
}
