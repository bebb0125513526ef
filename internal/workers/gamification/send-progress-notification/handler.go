// internal/workers/gamification/send-progress-notification/handler.go
package sendprogressnotification

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	awsclient "career-workers/internal/common/aws"
	"career-workers/internal/common/camunda"
	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/internal/common/validation"
	"career-workers/internal/models"
	"career-workers/internal/scoring/progression"
)

const TaskType = "send-progress-notification"

type ContactSource interface {
	GetContact(ctx context.Context, userID string) (*models.Contact, error)
}

type EmailSender interface {
	SendEmail(ctx context.Context, email awsclient.Email) (string, error)
}

type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

type Handler struct {
	config   *Config
	contacts ContactSource
	email    EmailSender
	sms      SMSSender
	logger   logger.Logger
	errors   *errors.ErrorHandler
	now      func() time.Time
}

func NewHandler(config *Config, contacts ContactSource, email EmailSender, sms SMSSender, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		contacts: contacts,
		email:    email,
		sms:      sms,
		logger:   log,
		errors:   errors.NewErrorHandler(log),
		now:      time.Now,
	}
}

func (h *Handler) Handle(ctx context.Context, client worker.JobClient, job entities.Job) error {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	h.logger.Info("processing job", map[string]interface{}{
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
		h.logger.Error("failed to complete job", map[string]interface{}{
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
	tmpl, ok := templates[input.NotificationType]
	if !ok {
		return nil, errors.NewInvalidInputError("unsupported notificationType: " + input.NotificationType)
	}
	if input.NotificationType == models.NotificationLevelUp && input.Level < 1 {
		return nil, errors.NewInvalidInputError("level is required for level_up notifications")
	}

	output := &Output{
		NotificationID: uuid.New().String(),
		Status:         StatusSkipped,
		Channels:       []string{},
		SentAt:         h.now().UTC().Format(time.RFC3339),
	}

	if !h.config.EmailEnabled && !h.config.SMSEnabled {
		output.Status = StatusDisabled
		return output, nil
	}
	if input.NotificationType == models.NotificationJobDigest && len(input.Recommendations) == 0 {
		h.logger.Info("empty job digest skipped", map[string]interface{}{"userId": input.UserID})
		return output, nil
	}

	contact, err := h.contacts.GetContact(ctx, input.UserID)
	if errors.HasCode(err, errors.ErrCodeContactNotFound) {
		h.logger.Warn("recipient not found", map[string]interface{}{"userId": input.UserID})
		return output, nil
	}
	if err != nil {
		return nil, err
	}

	data := h.templateData(input, contact)

	if h.config.EmailEnabled && validation.ValidateEmail(contact.Email) {
		messageID, err := h.email.SendEmail(ctx, awsclient.Email{
			From:     h.config.FromEmail,
			To:       contact.Email,
			Subject:  renderTemplate(tmpl.Subject, data),
			TextBody: renderTemplate(tmpl.Body, data),
		})
		if err != nil {
			return nil, errors.NewNotificationSendFailedError(input.NotificationType, err).
				WithMetadata("channel", ChannelEmail)
		}
		output.Channels = append(output.Channels, ChannelEmail)
		h.logger.Info("email sent", map[string]interface{}{
			"userId":    input.UserID,
			"messageId": messageID,
		})
	}

	// SMS goes out for level-ups only
	if h.config.SMSEnabled && tmpl.SMS != "" && validation.ValidatePhone(contact.Phone) {
		messageID, err := h.sms.SendSMS(ctx, contact.Phone, renderTemplate(tmpl.SMS, data))
		switch {
		case err != nil && len(output.Channels) == 0:
			return nil, errors.NewNotificationSendFailedError(input.NotificationType, err).
				WithMetadata("channel", ChannelSMS)
		case err != nil:
			// the email already went out; retrying would send it twice
			h.logger.Warn("SMS send failed", map[string]interface{}{
				"userId": input.UserID,
				"error":  err.Error(),
			})
		default:
			output.Channels = append(output.Channels, ChannelSMS)
			h.logger.Info("SMS sent", map[string]interface{}{
				"userId":    input.UserID,
				"messageId": messageID,
			})
		}
	}

	if len(output.Channels) > 0 {
		output.Status = StatusSent
	}
	return output, nil
}

func (h *Handler) templateData(input *Input, contact *models.Contact) map[string]interface{} {
	name := contact.Name
	if name == "" {
		name = "there"
	}
	title := input.LevelTitle
	if title == "" && input.Level > 0 {
		title = progression.LevelTitle(input.Level)
	}
	listed := len(input.Recommendations)
	if h.config.DigestSize > 0 && listed > h.config.DigestSize {
		listed = h.config.DigestSize
	}
	return map[string]interface{}{
		"name":       name,
		"level":      input.Level,
		"levelTitle": title,
		"totalXP":    input.TotalXP,
		"jobCount":   listed,
		"jobList":    formatJobList(input.Recommendations, h.config.DigestSize),
	}
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.Normalize(err).Code)).Inc()
	h.errors.HandleJobError(ctx, client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
