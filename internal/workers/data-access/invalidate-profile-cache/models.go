// internal/workers/data-access/invalidate-profile-cache/models.go
package invalidateprofilecache

import "career-workers/internal/common/validation"

type Input struct {
	UserID string `json:"userId"`
}

type Output struct {
	UserID string `json:"userId"`
	// Invalidated is false when no cached profile existed.
	Invalidated bool `json:"invalidated"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"userId"},
		Properties: map[string]validation.Property{
			"userId": {Type: "string", MinLength: validation.IntPtr(1), MaxLength: validation.IntPtr(128)},
		},
	}
}
