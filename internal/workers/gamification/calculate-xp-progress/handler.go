// internal/workers/gamification/calculate-xp-progress/handler.go
package calculatexpprogress

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
	"career-workers/internal/scoring/progression"
)

const TaskType = "calculate-xp-progress"

type ActivitySource interface {
	ListActivities(ctx context.Context, userID string) ([]models.ActivityRecord, error)
}

// LevelMemory stores the last level reported per user.
type LevelMemory interface {
	LastLevel(ctx context.Context, userID string) (int, bool, error)
	SaveLevel(ctx context.Context, userID string, level int) error
}

type Handler struct {
	config     *Config
	activities ActivitySource
	levels     LevelMemory
	logger     logger.Logger
	errors     *errors.ErrorHandler
}

func NewHandler(config *Config, activities ActivitySource, levels LevelMemory, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		activities: activities,
		levels:     levels,
		logger:     log,
		errors:     errors.NewErrorHandler(log),
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

	h.logger.Info("Calculating XP progress", map[string]interface{}{
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
	records := input.Activities
	if records == nil {
		if input.UserID == "" {
			return nil, errors.NewInvalidInputError("either activities or userId is required")
		}
		var err error
		records, err = h.activities.ListActivities(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
	}

	total := progression.TotalXP(records)
	progress := progression.Progress(total)
	previous, leveledUp := h.detectLevelUp(ctx, input.UserID, progress.CurrentLevel)

	if leveledUp {
		metrics.RecordLevelReached(progress.CurrentLevel)
		h.logger.Info("User leveled up", map[string]interface{}{
			"userId":        input.UserID,
			"previousLevel": previous,
			"level":         progress.CurrentLevel,
			"title":         progress.LevelTitle,
		})
	}

	return &Output{
		TotalXP:       total,
		Breakdown:     progression.Breakdown(records),
		Progress:      progress,
		LeveledUp:     leveledUp,
		PreviousLevel: previous,
		NotifyLevelUp: leveledUp && h.config.NotifyOnLevelUp,
	}, nil
}

// detectLevelUp compares level with the remembered one and stores the new value.
// A user seen for the first time is not reported as leveling up. Memory
// failures are logged and treated as no level-up.
func (h *Handler) detectLevelUp(ctx context.Context, userID string, level int) (previous int, leveledUp bool) {
	if userID == "" || h.levels == nil {
		return level, false
	}

	last, ok, err := h.levels.LastLevel(ctx, userID)
	if err != nil {
		h.logger.Warn("Level memory unavailable", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		return level, false
	}
	if ok && last == level {
		return last, false
	}

	if err := h.levels.SaveLevel(ctx, userID, level); err != nil {
		h.logger.Warn("Failed to remember level", map[string]interface{}{
			"userId": userID,
			"level":  level,
			"error":  err.Error(),
		})
	}
	if !ok {
		return level, false
	}
	return last, level > last
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.Normalize(err).Code)).Inc()
	h.errors.HandleJobError(ctx, client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
