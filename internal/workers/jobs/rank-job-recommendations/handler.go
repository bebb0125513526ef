// internal/workers/jobs/rank-job-recommendations/handler.go
package rankjobrecommendations

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"career-workers/internal/common/camunda"
	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/internal/common/observability"
	"career-workers/internal/datasource"
	"career-workers/internal/models"
	"career-workers/internal/scoring/jobmatch"
)

const TaskType = "rank-job-recommendations"

type ProfileSource interface {
	GetProfile(ctx context.Context, userID string) (*models.CandidateProfile, error)
}

type JobCatalog interface {
	Search(ctx context.Context, q datasource.CatalogQuery) (*datasource.CatalogResult, error)
}

type JobStates interface {
	List(ctx context.Context, userID string, state models.JobState) ([]string, error)
}

type Dependencies struct {
	Scorer   *jobmatch.Scorer
	Profiles ProfileSource
	Catalog  JobCatalog
	States   JobStates
	Obs      *observability.Observability
}

type Handler struct {
	config *Config
	deps   Dependencies
	logger logger.Logger
	errors *errors.ErrorHandler
}

func NewHandler(config *Config, deps Dependencies, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		deps:   deps,
		logger: log,
		errors: errors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(ctx context.Context, client worker.JobClient, job entities.Job) error {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	h.logger.Info("Ranking job recommendations", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	var input Input
	if err := camunda.DecodeVariables(job, GetInputSchema(), &input); err != nil {
		h.failJob(ctx, client, job, err)
		return err
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return err
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.logger.Error("Failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return err
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	return nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	profile, err := h.resolveProfile(ctx, input)
	if err != nil {
		return nil, err
	}

	jobs := input.Jobs
	if len(jobs) == 0 {
		jobs, err = h.searchCatalog(ctx, profile, input.Query)
		if err != nil {
			return nil, err
		}
	}

	if input.ExcludeApplied {
		jobs, err = h.withoutApplied(ctx, input.UserID, jobs)
		if err != nil {
			return nil, err
		}
	}

	start := time.Now()
	ranked := h.deps.Scorer.RankJobs(profile, jobs, h.config.EffectiveLimit(input.Limit))
	duration := time.Since(start).Milliseconds()

	h.logger.Info("Ranking completed", map[string]interface{}{
		"userId":          input.UserID,
		"candidateCount":  len(jobs),
		"recommendations": len(ranked),
		"durationMs":      duration,
	})
	if h.config.SlowThreshold > 0 && duration > h.config.SlowThreshold.Milliseconds() {
		h.logger.Warn("Ranking exceeded threshold", map[string]interface{}{
			"durationMs":  duration,
			"thresholdMs": h.config.SlowThreshold.Milliseconds(),
			"jobCount":    len(jobs),
		})
	}
	h.deps.Obs.RecordRecommendations(ctx, len(ranked))

	return &Output{
		Recommendations: ranked,
		CandidateCount:  len(jobs),
		DurationMs:      duration,
	}, nil
}

func (h *Handler) resolveProfile(ctx context.Context, input *Input) (*models.CandidateProfile, error) {
	if input.CandidateProfile != nil {
		return input.CandidateProfile, nil
	}
	profile, err := h.deps.Profiles.GetProfile(ctx, input.UserID)
	if errors.HasCode(err, errors.ErrCodeProfileNotFound) {
		h.logger.Warn("No profile stored, ranking for empty profile", map[string]interface{}{
			"userId": input.UserID,
		})
		return &models.CandidateProfile{UserID: input.UserID}, nil
	}
	return profile, err
}

// searchCatalog queries by the candidate's skills unless explicit keywords are given.
func (h *Handler) searchCatalog(ctx context.Context, profile *models.CandidateProfile, filter *CatalogFilter) ([]models.JobPosting, error) {
	q := datasource.CatalogQuery{Size: h.config.CatalogSize}
	if filter != nil {
		q.Keywords = filter.Keywords
		q.Location = filter.Location
		q.RemoteOnly = filter.RemoteOnly
	}
	if len(q.Keywords) == 0 {
		q.Keywords = profile.SkillNames()
	}

	result, err := h.deps.Catalog.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return result.Jobs, nil
}

func (h *Handler) withoutApplied(ctx context.Context, userID string, jobs []models.JobPosting) ([]models.JobPosting, error) {
	applied, err := h.deps.States.List(ctx, userID, models.JobStateApplied)
	if err != nil {
		return nil, err
	}
	if len(applied) == 0 {
		return jobs, nil
	}

	skip := make(map[string]bool, len(applied))
	for _, id := range applied {
		skip[id] = true
	}
	kept := make([]models.JobPosting, 0, len(jobs))
	for _, job := range jobs {
		if skip[job.ID] {
			continue
		}
		kept = append(kept, job)
	}
	return kept, nil
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.Normalize(err).Code)).Inc()
	h.errors.HandleJobError(ctx, client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
