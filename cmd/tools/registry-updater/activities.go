// cmd/tools/registry-updater/activities.go
package main

import (
	"encoding/json"
	"time"

	"career-workers/internal/common/config"
	"career-workers/internal/common/errors"
	"career-workers/internal/common/validation"
	"career-workers/pkg/registry"

	ipc "career-workers/internal/workers/data-access/invalidate-profile-cache"
	sjc "career-workers/internal/workers/data-access/search-job-catalog"
	cxp "career-workers/internal/workers/gamification/calculate-xp-progress"
	spn "career-workers/internal/workers/gamification/send-progress-notification"
	cjm "career-workers/internal/workers/jobs/calculate-job-match"
	gjs "career-workers/internal/workers/jobs/get-job-state"
	rjr "career-workers/internal/workers/jobs/rank-job-recommendations"
	ujs "career-workers/internal/workers/jobs/update-job-state"
)

const activityVersion = "1.0.0"

type descriptor struct {
	taskType    string
	displayName string
	description string
	category    string
	schema      validation.JSONSchema
	timeout     time.Duration
	errorCodes  []errors.ErrorCode
	tags        []string
}

// descriptors lists every worker the worker-manager can start.
func descriptors() []descriptor {
	none := config.WorkerConfig{}
	return []descriptor{
		{
			taskType:    cjm.TaskType,
			displayName: "Calculate Job Match",
			description: "Scores one job posting against a candidate profile",
			category:    "jobs",
			schema:      cjm.GetInputSchema(),
			timeout:     cjm.LoadConfig(none).Timeout,
			errorCodes: []errors.ErrorCode{
				errors.ErrCodeInvalidInput,
				errors.ErrCodeProfileFetchFailed,
			},
			tags: []string{"scoring", "postgres", "redis"},
		},
		{
			taskType:    rjr.TaskType,
			displayName: "Rank Job Recommendations",
			description: "Ranks catalog or supplied jobs for a candidate by match score",
			category:    "jobs",
			schema:      rjr.GetInputSchema(),
			timeout:     rjr.LoadConfig(none, config.ScoringConfig{}).Timeout,
			errorCodes: []errors.ErrorCode{
				errors.ErrCodeInvalidInput,
				errors.ErrCodeProfileFetchFailed,
				errors.ErrCodeJobCatalogQueryFailed,
				errors.ErrCodeJobCatalogTimeout,
				errors.ErrCodeJobStateStoreFailed,
			},
			tags: []string{"scoring", "elasticsearch", "redis"},
		},
		{
			taskType:    ujs.TaskType,
			displayName: "Update Job State",
			description: "Saves, applies or likes a job for a user",
			category:    "jobs",
			schema:      ujs.GetInputSchema(),
			timeout:     ujs.LoadConfig(none).Timeout,
			errorCodes: []errors.ErrorCode{
				errors.ErrCodeInvalidInput,
				errors.ErrCodeJobStateStoreFailed,
			},
			tags: []string{"redis"},
		},
		{
			taskType:    gjs.TaskType,
			displayName: "Get Job State",
			description: "Reports whether a user saved, applied to or liked a job",
			category:    "jobs",
			schema:      gjs.GetInputSchema(),
			timeout:     gjs.LoadConfig(none).Timeout,
			errorCodes: []errors.ErrorCode{
				errors.ErrCodeInvalidInput,
				errors.ErrCodeJobStateStoreFailed,
			},
			tags: []string{"redis"},
		},
		{
			taskType:    sjc.TaskType,
			displayName: "Search Job Catalog",
			description: "Full-text search over active job postings",
			category:    "data-access",
			schema:      sjc.GetInputSchema(),
			timeout:     sjc.LoadConfig(none).Timeout,
			errorCodes: []errors.ErrorCode{
				errors.ErrCodeInvalidInput,
				errors.ErrCodeJobCatalogQueryFailed,
				errors.ErrCodeJobCatalogTimeout,
			},
			tags: []string{"elasticsearch"},
		},
		{
			taskType:    ipc.TaskType,
			displayName: "Invalidate Profile Cache",
			description: "Drops a candidate's cached profile after it changes",
			category:    "data-access",
			schema:      ipc.GetInputSchema(),
			timeout:     ipc.LoadConfig(none).Timeout,
			errorCodes: []errors.ErrorCode{
				errors.ErrCodeInvalidInput,
				errors.ErrCodeProfileCacheFailed,
			},
			tags: []string{"redis"},
		},
		{
			taskType:    cxp.TaskType,
			displayName: "Calculate XP Progress",
			description: "Totals activity XP, resolves the level and detects level-ups",
			category:    "gamification",
			schema:      cxp.GetInputSchema(),
			timeout:     cxp.LoadConfig(none, config.ProgressionConfig{}).Timeout,
			errorCodes: []errors.ErrorCode{
				errors.ErrCodeInvalidInput,
				errors.ErrCodeActivityFetchFailed,
			},
			tags: []string{"progression", "postgres", "redis"},
		},
		{
			taskType:    spn.TaskType,
			displayName: "Send Progress Notification",
			description: "Emails level-ups and job digests, with SMS for level-ups",
			category:    "gamification",
			schema:      spn.GetInputSchema(),
			timeout:     spn.LoadConfig(none, config.NotificationConfig{}).Timeout,
			errorCodes: []errors.ErrorCode{
				errors.ErrCodeInvalidInput,
				errors.ErrCodeProfileFetchFailed,
				errors.ErrCodeNotificationSendFailed,
			},
			tags: []string{"ses", "sns"},
		},
	}
}

func (d descriptor) activity() (registry.Activity, error) {
	schema, err := schemaMap(d.schema)
	if err != nil {
		return registry.Activity{}, err
	}

	codes := make([]string, 0, len(d.errorCodes))
	retries := 0
	for _, code := range d.errorCodes {
		codes = append(codes, string(code))
		if n := errors.GetRetryCount(code); n > retries {
			retries = n
		}
	}

	return registry.Activity{
		ID:          d.taskType,
		DisplayName: d.displayName,
		Description: d.description,
		Category:    d.category,
		Version:     activityVersion,
		TaskType:    d.taskType,
		InputSchema: schema,
		ErrorCodes:  codes,
		Timeout:     d.timeout.String(),
		Retries:     retries,
		Tags:        d.tags,
	}, nil
}

func schemaMap(schema validation.JSONSchema) (map[string]interface{}, error) {
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	err = json.Unmarshal(data, &out)
	return out, err
}
