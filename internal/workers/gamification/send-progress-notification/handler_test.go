package sendprogressnotification

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	awsclient "career-workers/internal/common/aws"
	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/datasource"
	"career-workers/internal/models"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESClient struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	sent          []*ses.SendEmailInput
}

func (m *MockSESClient) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.sent = append(m.sent, params)
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, params, optFns...)
	}
	return &ses.SendEmailOutput{MessageId: aws.String("ses-msg-1")}, nil
}

type MockSNSClient struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	published   []*sns.PublishInput
}

func (m *MockSNSClient) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.published = append(m.published, params)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, params, optFns...)
	}
	return &sns.PublishOutput{MessageId: aws.String("sns-msg-1")}, nil
}

// ==========================
// Test Helpers
// ==========================

type testEnv struct {
	handler *Handler
	mock    sqlmock.Sqlmock
	ses     *MockSESClient
	sns     *MockSNSClient
}

func createTestConfig() *Config {
	return &Config{
		Timeout:      5 * time.Second,
		EmailEnabled: true,
		FromEmail:    "no-reply@careers.example.com",
		SMSEnabled:   true,
		DigestSize:   2,
	}
}

func setupTestEnv(t *testing.T, cfg *Config) *testEnv {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sesMock := &MockSESClient{}
	snsMock := &MockSNSClient{}

	handler := NewHandler(
		cfg,
		datasource.NewContactStore(db),
		awsclient.NewSESClientWithAPI(sesMock),
		awsclient.NewSNSClientWithAPI(snsMock, "CAREERS"),
		logger.NewZapAdapter(zaptest.NewLogger(t)),
	)
	handler.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	return &testEnv{handler: handler, mock: mock, ses: sesMock, sns: snsMock}
}

func expectContact(mock sqlmock.Sqlmock, userID, name, email, phone string) {
	mock.ExpectQuery("SELECT name, email, phone FROM users").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"name", "email", "phone"}).AddRow(name, email, phone))
}

func levelUpInput() *Input {
	return &Input{UserID: "user-1", NotificationType: models.NotificationLevelUp, Level: 3, TotalXP: 2090}
}

// ==========================
// Execute Tests
// ==========================

func TestHandler_Execute_LevelUp(t *testing.T) {
	env := setupTestEnv(t, createTestConfig())
	expectContact(env.mock, "user-1", "Ada", "ada@example.com", "+14155550123")

	output, err := env.handler.Execute(context.Background(), levelUpInput())

	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Equal(t, []string{ChannelEmail, ChannelSMS}, output.Channels)
	assert.Equal(t, "2026-01-02T03:04:05Z", output.SentAt)
	_, parseErr := uuid.Parse(output.NotificationID)
	assert.NoError(t, parseErr)

	require.Len(t, env.ses.sent, 1)
	email := env.ses.sent[0]
	assert.Equal(t, "no-reply@careers.example.com", aws.ToString(email.Source))
	assert.Equal(t, []string{"ada@example.com"}, email.Destination.ToAddresses)
	assert.Equal(t, "You reached level 3: Apprentice", aws.ToString(email.Message.Subject.Data))
	assert.Contains(t, aws.ToString(email.Message.Body.Text.Data), "Hi Ada")
	assert.Contains(t, aws.ToString(email.Message.Body.Text.Data), "2090 XP")

	require.Len(t, env.sns.published, 1)
	assert.Equal(t, "+14155550123", aws.ToString(env.sns.published[0].PhoneNumber))
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestHandler_Execute_JobDigest(t *testing.T) {
	env := setupTestEnv(t, createTestConfig())
	expectContact(env.mock, "user-1", "", "ada@example.com", "+14155550123")

	recommendations := []models.JobMatch{
		{JobPosting: models.JobPosting{ID: "j1", Title: "Go Engineer", Company: "Acme"}, MatchScore: 90},
		{JobPosting: models.JobPosting{ID: "j2", Title: "SRE"}, MatchScore: 75},
		{JobPosting: models.JobPosting{ID: "j3", Title: "DBA", Company: "Initech"}, MatchScore: 40},
	}

	output, err := env.handler.Execute(context.Background(), &Input{
		UserID:           "user-1",
		NotificationType: models.NotificationJobDigest,
		Recommendations:  recommendations,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{ChannelEmail}, output.Channels, "digests are email only")
	assert.Empty(t, env.sns.published)

	email := env.ses.sent[0]
	body := aws.ToString(email.Message.Body.Text.Data)
	assert.Equal(t, "2 jobs picked for you", aws.ToString(email.Message.Subject.Data))
	assert.Contains(t, body, "Hi there")
	assert.Contains(t, body, "- Go Engineer at Acme (90% match)")
	assert.Contains(t, body, "- SRE (75% match)")
	assert.NotContains(t, body, "DBA")
}

func TestHandler_Execute_Skips(t *testing.T) {
	t.Run("channels disabled", func(t *testing.T) {
		cfg := createTestConfig()
		cfg.EmailEnabled = false
		cfg.SMSEnabled = false
		env := setupTestEnv(t, cfg)

		output, err := env.handler.Execute(context.Background(), levelUpInput())
		require.NoError(t, err)
		assert.Equal(t, StatusDisabled, output.Status)
		assert.NoError(t, env.mock.ExpectationsWereMet())
	})

	t.Run("unknown recipient", func(t *testing.T) {
		env := setupTestEnv(t, createTestConfig())
		env.mock.ExpectQuery("SELECT name, email, phone FROM users").
			WithArgs("user-1").
			WillReturnError(sql.ErrNoRows)

		output, err := env.handler.Execute(context.Background(), levelUpInput())
		require.NoError(t, err)
		assert.Equal(t, StatusSkipped, output.Status)
		assert.Empty(t, output.Channels)
	})

	t.Run("empty digest", func(t *testing.T) {
		env := setupTestEnv(t, createTestConfig())

		output, err := env.handler.Execute(context.Background(), &Input{UserID: "user-1", NotificationType: models.NotificationJobDigest})
		require.NoError(t, err)
		assert.Equal(t, StatusSkipped, output.Status)
		assert.Empty(t, env.ses.sent)
	})

	t.Run("unreachable contact", func(t *testing.T) {
		env := setupTestEnv(t, createTestConfig())
		expectContact(env.mock, "user-1", "Ada", "not-an-email", "0800")

		output, err := env.handler.Execute(context.Background(), levelUpInput())
		require.NoError(t, err)
		assert.Equal(t, StatusSkipped, output.Status)
		assert.Empty(t, env.ses.sent)
		assert.Empty(t, env.sns.published)
	})
}

func TestHandler_Execute_SendFailures(t *testing.T) {
	t.Run("email failure is retryable", func(t *testing.T) {
		env := setupTestEnv(t, createTestConfig())
		expectContact(env.mock, "user-1", "Ada", "ada@example.com", "")
		env.ses.SendEmailFunc = func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, fmt.Errorf("throttled")
		}

		_, err := env.handler.Execute(context.Background(), levelUpInput())
		require.Error(t, err)
		stdErr := errors.Normalize(err)
		assert.Equal(t, errors.ErrCodeNotificationSendFailed, stdErr.Code)
		assert.True(t, stdErr.Retryable)
		assert.Equal(t, ChannelEmail, stdErr.Metadata["channel"])
	})

	t.Run("sms failure after email is tolerated", func(t *testing.T) {
		env := setupTestEnv(t, createTestConfig())
		expectContact(env.mock, "user-1", "Ada", "ada@example.com", "+14155550123")
		env.sns.PublishFunc = func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, fmt.Errorf("opted out")
		}

		output, err := env.handler.Execute(context.Background(), levelUpInput())
		require.NoError(t, err)
		assert.Equal(t, StatusSent, output.Status)
		assert.Equal(t, []string{ChannelEmail}, output.Channels)
	})

	t.Run("sms only failure fails the job", func(t *testing.T) {
		env := setupTestEnv(t, createTestConfig())
		expectContact(env.mock, "user-1", "Ada", "", "+14155550123")
		env.sns.PublishFunc = func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, fmt.Errorf("opted out")
		}

		_, err := env.handler.Execute(context.Background(), levelUpInput())
		assert.True(t, errors.HasCode(err, errors.ErrCodeNotificationSendFailed))
	})
}

func TestHandler_Execute_InvalidInput(t *testing.T) {
	env := setupTestEnv(t, createTestConfig())

	_, err := env.handler.Execute(context.Background(), &Input{UserID: "user-1", NotificationType: models.NotificationLevelUp})
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))

	_, err = env.handler.Execute(context.Background(), &Input{UserID: "user-1", NotificationType: "weekly_summary"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
}

func TestRenderTemplate(t *testing.T) {
	out := renderTemplate("Hi {{name}}, level {{level}}{{missing}}!", map[string]interface{}{
		"name":  "Ada",
		"level": 4,
	})
	assert.Equal(t, "Hi Ada, level 4!", out)
}
