package validatestudentrecord

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"retention-workers/internal/common/config"
	"retention-workers/internal/common/errors"
	"retention-workers/internal/common/logger"
	"retention-workers/internal/common/metrics"
	"retention-workers/internal/models"
)

const TaskType = "validate-student-record"

// Handler checks a Feature Record against the form domain. An out-of-domain
// record completes the job with isValid=false; only a malformed envelope
// fails it.
type Handler struct {
	config     *Config
	logger     logger.Logger
	errHandler *errors.ErrorHandler
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	Logger       logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:     workerConfig,
		logger:     log,
		errHandler: errors.NewErrorHandler(log),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

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

	input := &Input{Record: variables["record"].(map[string]interface{})}
	if id, ok := variables["studentId"].(string); ok {
		input.StudentID = id
	}
	return input, nil
}

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil || input.Record == nil {
		return nil, errors.NewInputParsingFailedError(fmt.Errorf("record is required"))
	}

	output := &Output{StudentID: input.StudentID, IsValid: true, Errors: []models.FieldError{}}

	var verr *models.ValidationError
	record, err := models.RecordFromValue(input.Record)
	switch {
	case stderrors.As(err, &verr):
		// absent attributes decode as zero values; domain checks on them are noise
		output.IsValid = false
		output.Errors = append(output.Errors, verr.Fields...)
	case err != nil:
		output.IsValid = false
		output.Errors = append(output.Errors, models.FieldError{Field: "record", Message: err.Error()})
	default:
		if err := record.Validate(); err != nil {
			if !stderrors.As(err, &verr) {
				return nil, err
			}
			output.IsValid = false
			output.Errors = append(output.Errors, verr.Fields...)
		}
	}

	h.logger.Info("Record validated", map[string]interface{}{
		"studentId": input.StudentID,
		"isValid":   output.IsValid,
		"errors":    len(output.Errors),
	})
	return output, nil
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
