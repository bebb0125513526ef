// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	ErrCodeProfileFetchFailed ErrorCode = "PROFILE_FETCH_FAILED"
	ErrCodeProfileNotFound    ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeProfileCacheFailed ErrorCode = "PROFILE_CACHE_FAILED"

	ErrCodeJobCatalogQueryFailed ErrorCode = "JOB_CATALOG_QUERY_FAILED"
	ErrCodeJobCatalogTimeout     ErrorCode = "JOB_CATALOG_TIMEOUT"

	ErrCodeActivityFetchFailed ErrorCode = "ACTIVITY_FETCH_FAILED"

	ErrCodeJobStateStoreFailed ErrorCode = "JOB_STATE_STORE_FAILED"

	ErrCodeContactNotFound        ErrorCode = "CONTACT_NOT_FOUND"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key to the error and returns it for chaining.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewInvalidInputError creates a non-retryable input validation error.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Job input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileFetchFailedError creates a retryable profile source error.
func NewProfileFetchFailedError(userID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileFetchFailed,
		Message:   "Failed to load candidate profile",
		Details:   fmt.Sprintf("userId: %s, error: %s", userID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileNotFoundError creates a non-retryable missing profile error.
func NewProfileNotFoundError(userID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileNotFound,
		Message:   "Candidate profile not found",
		Details:   fmt.Sprintf("userId: %s", userID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileCacheFailedError creates a retryable profile cache error.
func NewProfileCacheFailedError(userID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileCacheFailed,
		Message:   "Profile cache operation failed",
		Details:   fmt.Sprintf("userId: %s, error: %s", userID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewJobCatalogQueryFailedError creates a retryable catalog search error.
func NewJobCatalogQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeJobCatalogQueryFailed,
		Message:   "Job catalog search failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewJobCatalogTimeoutError creates a retryable catalog timeout error.
func NewJobCatalogTimeoutError(timeout time.Duration) *StandardError {
	return &StandardError{
		Code:      ErrCodeJobCatalogTimeout,
		Message:   "Job catalog search timeout",
		Details:   fmt.Sprintf("search exceeded %s", timeout),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewActivityFetchFailedError creates a retryable activity history error.
func NewActivityFetchFailedError(userID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeActivityFetchFailed,
		Message:   "Failed to load activity history",
		Details:   fmt.Sprintf("userId: %s, error: %s", userID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewJobStateStoreFailedError creates a retryable job state store error.
func NewJobStateStoreFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeJobStateStoreFailed,
		Message:   "Job state store operation failed",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewContactNotFoundError creates a non-retryable missing contact error.
func NewContactNotFoundError(userID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeContactNotFound,
		Message:   "No contact details for user",
		Details:   fmt.Sprintf("userId: %s", userID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the error codes caught by boundary events.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidInput:           "INVALID_INPUT",
	ErrCodeProfileFetchFailed:     "PROFILE_FETCH_FAILED",
	ErrCodeProfileNotFound:        "PROFILE_NOT_FOUND",
	ErrCodeProfileCacheFailed:     "PROFILE_CACHE_FAILED",
	ErrCodeJobCatalogQueryFailed:  "JOB_CATALOG_QUERY_FAILED",
	ErrCodeJobCatalogTimeout:      "JOB_CATALOG_TIMEOUT",
	ErrCodeActivityFetchFailed:    "ACTIVITY_FETCH_FAILED",
	ErrCodeJobStateStoreFailed:    "JOB_STATE_STORE_FAILED",
	ErrCodeContactNotFound:        "CONTACT_NOT_FOUND",
	ErrCodeNotificationSendFailed: "NOTIFICATION_SEND_FAILED",
}

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeProfileFetchFailed,
		ErrCodeProfileCacheFailed,
		ErrCodeJobCatalogQueryFailed,
		ErrCodeActivityFetchFailed,
		ErrCodeJobStateStoreFailed,
		ErrCodeNotificationSendFailed:
		return 3

	case ErrCodeJobCatalogTimeout:
		return 2

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PROFILE"):
		return "PROFILE"
	case strings.Contains(codeStr, "CATALOG"):
		return "SEARCH"
	case strings.Contains(codeStr, "ACTIVITY"):
		return "GAMIFICATION"
	case strings.Contains(codeStr, "JOB_STATE"):
		return "STATE"
	case strings.Contains(codeStr, "NOTIFICATION") || strings.Contains(codeStr, "CONTACT"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
