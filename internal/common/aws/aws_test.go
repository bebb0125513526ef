package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockSESAPI struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESAPI) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSAPI struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *MockSNSAPI) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

func TestSESClient_SendEmail(t *testing.T) {
	var captured *ses.SendEmailInput
	client := NewSESClientWithAPI(&MockSESAPI{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			captured = params
			return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
		},
	})

	id, err := client.SendEmail(context.Background(), Email{
		From:     "no-reply@careers.example.com",
		To:       "ana@example.com",
		Subject:  "Level up",
		TextBody: "You reached level 3",
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)

	require.NotNil(t, captured)
	assert.Equal(t, []string{"ana@example.com"}, captured.Destination.ToAddresses)
	assert.Equal(t, "no-reply@careers.example.com", aws.ToString(captured.Source))
	assert.Equal(t, "Level up", aws.ToString(captured.Message.Subject.Data))
	assert.Nil(t, captured.Message.Body.Html)
}

func TestSESClient_SendEmail_Error(t *testing.T) {
	client := NewSESClientWithAPI(&MockSESAPI{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("throttled")
		},
	})

	_, err := client.SendEmail(context.Background(), Email{To: "ana@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestSNSClient_SendSMS(t *testing.T) {
	var captured *sns.PublishInput
	client := NewSNSClientWithAPI(&MockSNSAPI{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			captured = params
			return &sns.PublishOutput{MessageId: aws.String("sms-1")}, nil
		},
	}, "CAREERS")

	id, err := client.SendSMS(context.Background(), "+919876543210", "Level 3 reached")
	require.NoError(t, err)
	assert.Equal(t, "sms-1", id)
	assert.Equal(t, "+919876543210", aws.ToString(captured.PhoneNumber))
	assert.Equal(t, "CAREERS", aws.ToString(captured.MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue))
	assert.Equal(t, "Transactional", aws.ToString(captured.MessageAttributes["AWS.SNS.SMS.SMSType"].StringValue))
}
