// internal/workers/jobs/calculate-job-match/handler.go
package calculatejobmatch

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"career-workers/internal/common/camunda"
	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/internal/models"
	"career-workers/internal/scoring/jobmatch"
)

const TaskType = "calculate-job-match"

type ProfileSource interface {
	GetProfile(ctx context.Context, userID string) (*models.CandidateProfile, error)
}

type Handler struct {
	config   *Config
	scorer   *jobmatch.Scorer
	profiles ProfileSource
	logger   logger.Logger
	errors   *errors.ErrorHandler
}

func NewHandler(config *Config, scorer *jobmatch.Scorer, profiles ProfileSource, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		scorer:   scorer,
		profiles: profiles,
		logger:   log,
		errors:   errors.NewErrorHandler(log),
	}
}

// Handle runs one job under ctx, bounded by the configured timeout. The
// returned error is the one the job was failed with.
func (h *Handler) Handle(ctx context.Context, client worker.JobClient, job entities.Job) error {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	h.logger.Info("Processing job match", map[string]interface{}{
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

	b := h.scorer.Explain(profile, &input.Job)
	metrics.ObserveMatchScore(TaskType, b.Total)

	h.logger.Debug("Job match calculated", map[string]interface{}{
		"userId":     input.UserID,
		"jobId":      input.Job.ID,
		"matchScore": b.Total,
	})

	matched := b.MatchedSkills
	if matched == nil {
		matched = []string{}
	}
	reasons := b.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return &Output{
		MatchScore:    b.Total,
		MatchedSkills: matched,
		Reasons:       reasons,
		Breakdown:     b,
	}, nil
}

// resolveProfile prefers the profile carried by the job. A user without a
// stored profile is scored as an empty profile.
func (h *Handler) resolveProfile(ctx context.Context, input *Input) (*models.CandidateProfile, error) {
	if input.CandidateProfile != nil {
		return input.CandidateProfile, nil
	}
	if input.UserID == "" {
		return nil, errors.NewInvalidInputError("either candidateProfile or userId is required")
	}

	profile, err := h.profiles.GetProfile(ctx, input.UserID)
	if errors.HasCode(err, errors.ErrCodeProfileNotFound) {
		h.logger.Warn("No profile stored, scoring empty profile", map[string]interface{}{
			"userId": input.UserID,
		})
		return &models.CandidateProfile{UserID: input.UserID}, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.Normalize(err).Code)).Inc()
	h.errors.HandleJobError(ctx, client, job, err)
}

// Execute is exposed for tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
