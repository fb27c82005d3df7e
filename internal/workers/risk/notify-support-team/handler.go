package notifysupportteam

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"retention-workers/internal/assessment"
	"retention-workers/internal/common/config"
	"retention-workers/internal/common/errors"
	"retention-workers/internal/common/logger"
	"retention-workers/internal/common/metrics"
)

const TaskType = "notify-support-team"

type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Handler alerts the advising office about students who need intervention.
// HIGH sends email and SMS, MODERATE sends email only, LOW is skipped.
type Handler struct {
	config     *Config
	logger     logger.Logger
	sesClient  SESService
	snsClient  SNSService
	errHandler *errors.ErrorHandler
	now        func() time.Time
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	SES          SESService
	SNS          SNSService
	Logger       logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if workerConfig.EmailEnabled && opts.SES == nil {
		return nil, fmt.Errorf("ses client is required when email is enabled")
	}
	if workerConfig.SMSEnabled && opts.SNS == nil {
		return nil, fmt.Errorf("sns client is required when sms is enabled")
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:     workerConfig,
		logger:     log,
		sesClient:  opts.SES,
		snsClient:  opts.SNS,
		errHandler: errors.NewErrorHandler(log),
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("Processing support team notification", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	input, err := h.parseInput(job)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, errors.NewInputParsingFailedError(err)
	}

	result, err := inputSchema.Validate(variables)
	if err != nil {
		return nil, errors.NewInputParsingFailedError(err)
	}
	if !result.Valid {
		return nil, errors.NewInputParsingFailedError(
			fmt.Errorf("invalid job variables: %s", strings.Join(result.GetErrorMessages(), "; ")))
	}

	var input Input
	if err := job.GetVariablesAs(&input); err != nil {
		return nil, errors.NewInputParsingFailedError(err)
	}
	// the plan is always re-derived from the tier
	input.Assessment.Plan = assessment.SelectPlan(input.Assessment.Tier)
	return &input, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInputParsingFailedError(fmt.Errorf("input cannot be nil"))
	}

	output := &Output{
		NotificationID: uuid.NewString(),
		Channels:       []string{},
		SentAt:         h.now(),
	}

	if !h.config.Enabled {
		output.Status = StatusDisabled
		return output, nil
	}
	if !input.Assessment.RequiresIntervention() {
		output.Status = StatusSkipped
		h.logger.Info("No intervention required, notification skipped", map[string]interface{}{
			"studentId": input.StudentID,
			"riskTier":  input.Assessment.Tier,
		})
		return output, nil
	}

	var lastErr error
	attempted := 0
	send := func(channel string, fn func(context.Context, *Input) error) {
		attempted++
		if err := fn(ctx, input); err != nil {
			lastErr = errors.NewNotificationSendFailedError(channel, err)
			output.FailedChannels = append(output.FailedChannels, channel)
			metrics.NotificationsSent.WithLabelValues(channel, "failed").Inc()
			h.logger.Warn("Notification channel failed", map[string]interface{}{
				"channel":   channel,
				"studentId": input.StudentID,
				"error":     err.Error(),
			})
			return
		}
		output.Channels = append(output.Channels, channel)
		metrics.NotificationsSent.WithLabelValues(channel, "sent").Inc()
	}

	if h.config.EmailEnabled {
		send(ChannelEmail, h.sendEmail)
	}
	if h.config.SMSEnabled && input.Assessment.Tier == assessment.TierHigh {
		send(ChannelSMS, h.sendSMS)
	}

	switch {
	case attempted == 0:
		output.Status = StatusDisabled
	case len(output.Channels) == 0:
		return nil, lastErr
	case len(output.FailedChannels) > 0:
		output.Status = StatusPartial
	default:
		output.Status = StatusSent
	}

	h.logger.Info("Support team notified", map[string]interface{}{
		"notificationId": output.NotificationID,
		"studentId":      input.StudentID,
		"riskTier":       input.Assessment.Tier,
		"status":         output.Status,
		"channels":       output.Channels,
	})
	return output, nil
}

func (h *Handler) sendEmail(ctx context.Context, in *Input) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &sestypes.Destination{
			ToAddresses: []string{h.config.AdvisorEmail},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(emailSubject(in))},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(emailBody(in))},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, in *Input) error {
	params := &sns.PublishInput{
		PhoneNumber: aws.String(h.config.PhoneNumber),
		Message:     aws.String(smsText(in)),
	}
	if h.config.SenderID != "" {
		params.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {DataType: aws.String("String"), StringValue: aws.String(h.config.SenderID)},
		}
	}
	_, err := h.snsClient.Publish(ctx, params)
	return err
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	request, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromObject(output)
	if err != nil {
		h.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err,
		})
		h.failJob(ctx, client, job, err)
		return
	}

	if _, err := request.Send(ctx); err != nil {
		h.logger.Error("Failed to send complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err,
		})
	}
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.AsStandardError(err).Code)).Inc()
	h.errHandler.HandleJobError(ctx, client, job, err)
}
