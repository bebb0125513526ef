// internal/datasource/catalog.go
package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"career-workers/internal/common/errors"
	"career-workers/internal/models"
)

const (
	DefaultCatalogSize = 20
	MaxCatalogSize     = 100
)

var keywordFields = []string{"title^3", "skills^2", "tags", "company"}

type CatalogQuery struct {
	Keywords   []string
	Location   string
	RemoteOnly bool
	From       int
	Size       int
}

type CatalogResult struct {
	Jobs      []models.JobPosting
	TotalHits int64
	Took      int64
}

// JobCatalog searches the job postings index.
type JobCatalog struct {
	es      *elasticsearch.Client
	index   string
	timeout time.Duration
}

func NewJobCatalog(es *elasticsearch.Client, index string, timeout time.Duration) *JobCatalog {
	return &JobCatalog{es: es, index: index, timeout: timeout}
}

// Search never returns postings marked inactive.
func (c *JobCatalog) Search(ctx context.Context, q CatalogQuery) (*CatalogResult, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	from, size := pageBounds(q.From, q.Size)
	body, err := json.Marshal(BuildCatalogQuery(q))
	if err != nil {
		return nil, errors.NewJobCatalogQueryFailedError(err)
	}

	req := esapi.SearchRequest{
		Index: []string{c.index},
		Body:  strings.NewReader(string(body)),
		From:  &from,
		Size:  &size,
	}

	start := time.Now()
	res, err := req.Do(ctx, c.es)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewJobCatalogTimeoutError(c.timeout)
		}
		return nil, errors.NewJobCatalogQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewJobCatalogQueryFailedError(fmt.Errorf("search failed: %s", res.String()))
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, errors.NewJobCatalogQueryFailedError(fmt.Errorf("decode response: %w", err))
	}

	jobs := make([]models.JobPosting, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		job := hit.Source
		if job.ID == "" {
			job.ID = hit.ID
		}
		if job.IsInactive() {
			continue
		}
		jobs = append(jobs, job)
	}

	return &CatalogResult{
		Jobs:      jobs,
		TotalHits: r.Hits.Total.Value,
		Took:      time.Since(start).Milliseconds(),
	}, nil
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string            `json:"_id"`
			Source models.JobPosting `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// BuildCatalogQuery renders the search body for q.
func BuildCatalogQuery(q CatalogQuery) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	keywords := make([]string, 0, len(q.Keywords))
	for _, k := range q.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	if len(keywords) > 0 {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  strings.Join(keywords, " "),
				"fields": keywordFields,
			},
		})
	} else {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	location := strings.TrimSpace(q.Location)
	switch {
	case q.RemoteOnly:
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"remote": true},
		})
	case location != "":
		// remote postings are reachable from any location
		filterClauses = append(filterClauses, map[string]interface{}{
			"bool": map[string]interface{}{
				"should": []interface{}{
					map[string]interface{}{"match": map[string]interface{}{"location": location}},
					map[string]interface{}{"term": map[string]interface{}{"remote": true}},
				},
				"minimum_should_match": 1,
			},
		})
	}

	boolQuery := map[string]interface{}{
		"must": mustClauses,
		"must_not": []interface{}{
			map[string]interface{}{"term": map[string]interface{}{"status": string(models.JobStatusInactive)}},
		},
	}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
		"sort": []interface{}{
			map[string]interface{}{"_score": "desc"},
			map[string]interface{}{"postedDate": map[string]interface{}{"order": "desc", "unmapped_type": "date"}},
		},
	}
}

func pageBounds(from, size int) (int, int) {
	if from < 0 {
		from = 0
	}
	if size < 1 {
		size = DefaultCatalogSize
	}
	if size > MaxCatalogSize {
		size = MaxCatalogSize
	}
	return from, size
}
