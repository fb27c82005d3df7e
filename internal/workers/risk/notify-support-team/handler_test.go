package notifysupportteam

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retention-workers/internal/assessment"
	"retention-workers/internal/common/config"
	"retention-workers/internal/common/errors"
	"retention-workers/internal/common/logger"
	"retention-workers/internal/models"
)

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	calls         int
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls++
	if m.SendEmailFunc == nil {
		return &ses.SendEmailOutput{MessageId: aws.String("ses-1")}, nil
	}
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	calls       int
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls++
	if m.PublishFunc == nil {
		return &sns.PublishOutput{MessageId: aws.String("sns-1")}, nil
	}
	return m.PublishFunc(ctx, params, optFns...)
}

func createTestConfig() *Config {
	cfg := DefaultConfig()
	cfg.EmailEnabled = true
	cfg.SMSEnabled = true
	cfg.PhoneNumber = "+2348000000000"
	cfg.SenderID = "UNIADVISE"
	return cfg
}

func createTestInput(p float64) *Input {
	r := models.DefaultRecord()
	r.FeePaymentStatus = models.FeesOwing
	return &Input{
		StudentID:    "STU-001",
		AssessmentID: "a-1",
		Assessment:   assessment.Assess(r, p),
	}
}

func createTestHandler(t *testing.T, cfg *Config, sesMock *MockSESService, snsMock *MockSNSService) *Handler {
	h, err := NewHandler(HandlerOptions{
		CustomConfig: cfg,
		SES:          sesMock,
		SNS:          snsMock,
		Logger:       logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	h.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return h
}

func TestNewHandler(t *testing.T) {
	tests := []struct {
		name    string
		opts    HandlerOptions
		wantErr string
	}{
		{"valid", HandlerOptions{CustomConfig: createTestConfig(), SES: &MockSESService{}, SNS: &MockSNSService{}}, ""},
		{"channels off need no clients", HandlerOptions{CustomConfig: DefaultConfig()}, ""},
		{"email without ses", HandlerOptions{CustomConfig: createTestConfig(), SNS: &MockSNSService{}}, "ses client is required"},
		{"sms without sns", HandlerOptions{CustomConfig: createTestConfig(), SES: &MockSESService{}}, "sns client is required"},
		{"sms without phone", HandlerOptions{CustomConfig: &Config{
			Enabled: true, MaxJobsActive: 1, Timeout: time.Second, SMSEnabled: true,
		}, SNS: &MockSNSService{}}, "phone_number is required"},
		{"email without advisor", HandlerOptions{CustomConfig: &Config{
			Enabled: true, MaxJobsActive: 1, Timeout: time.Second, EmailEnabled: true, FromEmail: "a@b.c",
		}, SES: &MockSESService{}}, "advisor_email is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHandler(tt.opts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, h)
		})
	}
}

func TestCreateConfigFromAppConfig(t *testing.T) {
	app := &config.Config{}
	app.Notifications.Enabled = true
	app.Notifications.Email.Enabled = true
	app.Notifications.Email.FromEmail = "alerts@uni.edu"
	app.Notifications.Email.AdvisorEmail = "dean@uni.edu"
	app.Notifications.SMS.Enabled = false
	app.Notifications.SMS.PhoneNumber = "+1555"

	cfg := createConfigFromAppConfig(app, nil)
	assert.True(t, cfg.EmailEnabled)
	assert.False(t, cfg.SMSEnabled)
	assert.Equal(t, "alerts@uni.edu", cfg.FromEmail)
	assert.Equal(t, "dean@uni.edu", cfg.AdvisorEmail)
	assert.Equal(t, "+1555", cfg.PhoneNumber)

	app.Notifications.Enabled = false
	assert.False(t, createConfigFromAppConfig(app, nil).EmailEnabled)
}

func TestHandler_Execute_ByTier(t *testing.T) {
	tests := []struct {
		name         string
		p            float64
		wantStatus   string
		wantChannels []string
		sesCalls     int
		snsCalls     int
	}{
		{"high sends email and sms", 0.85, StatusSent, []string{ChannelEmail, ChannelSMS}, 1, 1},
		{"moderate sends email only", 0.55, StatusSent, []string{ChannelEmail}, 1, 0},
		{"low is skipped", 0.20, StatusSkipped, []string{}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sesMock, snsMock := &MockSESService{}, &MockSNSService{}
			h := createTestHandler(t, createTestConfig(), sesMock, snsMock)

			out, err := h.Execute(context.Background(), createTestInput(tt.p))
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, out.Status)
			assert.Equal(t, tt.wantChannels, out.Channels)
			assert.Equal(t, tt.sesCalls, sesMock.calls)
			assert.Equal(t, tt.snsCalls, snsMock.calls)
			assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), out.SentAt)
			_, err = uuid.Parse(out.NotificationID)
			assert.NoError(t, err)
		})
	}
}

func TestHandler_Execute_MessageContent(t *testing.T) {
	var email *ses.SendEmailInput
	var sms *sns.PublishInput
	sesMock := &MockSESService{SendEmailFunc: func(_ context.Context, p *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		email = p
		return &ses.SendEmailOutput{}, nil
	}}
	snsMock := &MockSNSService{PublishFunc: func(_ context.Context, p *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
		sms = p
		return &sns.PublishOutput{}, nil
	}}

	h := createTestHandler(t, createTestConfig(), sesMock, snsMock)
	_, err := h.Execute(context.Background(), createTestInput(0.85))
	require.NoError(t, err)

	require.NotNil(t, email)
	assert.Equal(t, []string{"advising@university.edu"}, email.Destination.ToAddresses)
	assert.Equal(t, "retention-alerts@university.edu", aws.ToString(email.Source))
	assert.Equal(t, "[HIGH RISK] Student STU-001 needs immediate interventions", aws.ToString(email.Message.Subject.Data))
	body := aws.ToString(email.Message.Body.Text.Data)
	assert.Contains(t, body, "85.0% dropout probability")
	assert.Contains(t, body, "Owing Fees: Financial barrier")
	assert.Contains(t, body, "1. Intensive Tutoring: 10-15 hours per week")
	assert.Contains(t, body, "Follow-up: Weekly check-ins for 30 days, then bi-weekly")

	require.NotNil(t, sms)
	assert.Equal(t, "+2348000000000", aws.ToString(sms.PhoneNumber))
	assert.Contains(t, aws.ToString(sms.Message), "HIGH dropout risk: student STU-001 (85.0%)")
	assert.Equal(t, "UNIADVISE", aws.ToString(sms.MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue))
}

func TestHandler_Execute_Failures(t *testing.T) {
	boom := stderrors.New("throttled")

	t.Run("partial when sms fails", func(t *testing.T) {
		snsMock := &MockSNSService{PublishFunc: func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, boom
		}}
		h := createTestHandler(t, createTestConfig(), &MockSESService{}, snsMock)

		out, err := h.Execute(context.Background(), createTestInput(0.9))
		require.NoError(t, err)
		assert.Equal(t, StatusPartial, out.Status)
		assert.Equal(t, []string{ChannelEmail}, out.Channels)
		assert.Equal(t, []string{ChannelSMS}, out.FailedChannels)
	})

	t.Run("error when every channel fails", func(t *testing.T) {
		sesMock := &MockSESService{SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, boom
		}}
		h := createTestHandler(t, createTestConfig(), sesMock, &MockSNSService{})

		out, err := h.Execute(context.Background(), createTestInput(0.5))
		require.Error(t, err)
		assert.Nil(t, out)

		stdErr := errors.AsStandardError(err)
		assert.Equal(t, errors.ErrCodeNotificationSendFailed, stdErr.Code)
		assert.True(t, stdErr.Retryable)
		assert.ErrorIs(t, err, boom)
	})
}

func TestHandler_Execute_Disabled(t *testing.T) {
	cfg := createTestConfig()
	cfg.Enabled = false
	sesMock := &MockSESService{}
	h := createTestHandler(t, cfg, sesMock, &MockSNSService{})

	out, err := h.Execute(context.Background(), createTestInput(0.95))
	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, out.Status)
	assert.Zero(t, sesMock.calls)

	h = createTestHandler(t, DefaultConfig(), nil, nil)
	out, err = h.Execute(context.Background(), createTestInput(0.95))
	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, out.Status)
}

func TestHandler_ParseInput(t *testing.T) {
	h := createTestHandler(t, createTestConfig(), &MockSESService{}, &MockSNSService{})

	in := createTestInput(0.75)
	in.Assessment.Plan.Headline = "tampered"
	variables := map[string]interface{}{}
	data, _ := json.Marshal(in)
	require.NoError(t, json.Unmarshal(data, &variables))

	parsed, err := h.parseInput(createMockJob(variables))
	require.NoError(t, err)
	assert.Equal(t, "STU-001", parsed.StudentID)
	assert.Equal(t, assessment.TierHigh, parsed.Assessment.Tier)
	assert.Equal(t, "URGENT ACTION REQUIRED", parsed.Assessment.Plan.Headline)
	assert.Equal(t, 1, parsed.Assessment.RiskFactors.Len())

	_, err = h.parseInput(createMockJob(map[string]interface{}{
		"studentId":  "S",
		"assessment": map[string]interface{}{"riskTier": "CRITICAL", "probability": 0.9},
	}))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInputParsingFailed, errors.AsStandardError(err).Code)

	_, err = h.parseInput(createMockJob(map[string]interface{}{"studentId": "S"}))
	assert.Error(t, err)
}

func createMockJob(variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:           11,
		Type:          TaskType,
		CustomHeaders: "{}",
		Retries:       3,
		Variables:     string(variablesJSON),
	}}
}
