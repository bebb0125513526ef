// internal/workers/jobs/update-job-state/handler.go
package updatejobstate

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"career-workers/internal/common/camunda"
	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/internal/models"
)

const TaskType = "update-job-state"

// JobStateStore is the per-user saved/applied/liked store.
type JobStateStore interface {
	Set(ctx context.Context, userID, jobID string, state models.JobState, active bool) error
	List(ctx context.Context, userID string, state models.JobState) ([]string, error)
}

type Handler struct {
	config *Config
	store  JobStateStore
	logger logger.Logger
	errors *errors.ErrorHandler
}

func NewHandler(config *Config, store JobStateStore, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		store:  store,
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
	if !input.State.Valid() {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("unknown job state %q", input.State))
	}

	if err := h.store.Set(ctx, input.UserID, input.JobID, input.State, input.IsActive()); err != nil {
		return nil, err
	}

	ids, err := h.store.List(ctx, input.UserID, input.State)
	if err != nil {
		return nil, err
	}

	h.logger.Info("Job state updated", map[string]interface{}{
		"userId": input.UserID,
		"jobId":  input.JobID,
		"state":  input.State,
		"active": input.IsActive(),
		"count":  len(ids),
	})

	return &Output{State: input.State, JobIDs: ids}, nil
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.Normalize(err).Code)).Inc()
	h.errors.HandleJobError(ctx, client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
