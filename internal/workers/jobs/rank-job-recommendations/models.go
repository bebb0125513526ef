// internal/workers/jobs/rank-job-recommendations/models.go
package rankjobrecommendations

import (
	"career-workers/internal/common/validation"
	"career-workers/internal/models"
)

type Input struct {
	UserID           string                   `json:"userId"`
	CandidateProfile *models.CandidateProfile `json:"candidateProfile,omitempty"`
	Jobs             []models.JobPosting      `json:"jobs,omitempty"`
	Limit            int                      `json:"limit,omitempty"`
	Query            *CatalogFilter           `json:"query,omitempty"`
	ExcludeApplied   bool                     `json:"excludeApplied,omitempty"`
}

// CatalogFilter narrows the catalog search used when the job carries no postings.
type CatalogFilter struct {
	Keywords   []string `json:"keywords,omitempty"`
	Location   string   `json:"location,omitempty"`
	RemoteOnly bool     `json:"remoteOnly,omitempty"`
}

type Output struct {
	Recommendations []models.JobMatch `json:"recommendations"`
	CandidateCount  int               `json:"candidateCount"`
	DurationMs      int64             `json:"durationMs"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"userId"},
		Properties: map[string]validation.Property{
			"userId": {
				Type:      "string",
				MinLength: validation.IntPtr(1),
				MaxLength: validation.IntPtr(128),
			},
			"jobs": {
				Type:     "array",
				MaxItems: validation.IntPtr(1000),
				Items:    &validation.Property{Type: "object"},
			},
			"limit": {
				Type:    "integer",
				Minimum: validation.FloatPtr(0),
			},
			"query": {
				Type: "object",
				Properties: map[string]validation.Property{
					"keywords":   {Type: "array", Items: &validation.Property{Type: "string"}},
					"location":   {Type: "string"},
					"remoteOnly": {Type: "boolean"},
				},
			},
			"excludeApplied": {Type: "boolean"},
		},
	}
}
