// internal/workers/data-access/search-job-catalog/models.go
package searchjobcatalog

import (
	"career-workers/internal/common/validation"
	"career-workers/internal/datasource"
	"career-workers/internal/models"
)

type Input struct {
	Keywords   []string `json:"keywords,omitempty"`
	Location   string   `json:"location,omitempty"`
	RemoteOnly bool     `json:"remoteOnly,omitempty"`
	From       int      `json:"from,omitempty"`
	Size       int      `json:"size,omitempty"`
}

type Output struct {
	Jobs      []models.JobPosting `json:"jobs"`
	TotalHits int64               `json:"totalHits"`
	Took      int64               `json:"took"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"keywords": {
				Type:     "array",
				MaxItems: validation.IntPtr(50),
				Items:    &validation.Property{Type: "string", MaxLength: validation.IntPtr(100)},
			},
			"location":   {Type: "string", MaxLength: validation.IntPtr(200)},
			"remoteOnly": {Type: "boolean"},
			"from":       {Type: "integer", Minimum: validation.FloatPtr(0)},
			"size": {
				Type:    "integer",
				Minimum: validation.FloatPtr(1),
				Maximum: validation.FloatPtr(datasource.MaxCatalogSize),
			},
		},
	}
}
