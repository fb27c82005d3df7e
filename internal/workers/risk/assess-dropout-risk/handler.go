package assessdropoutrisk

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"retention-workers/internal/assessment"
	"retention-workers/internal/common/config"
	"retention-workers/internal/common/errors"
	"retention-workers/internal/common/logger"
	"retention-workers/internal/common/metrics"
	"retention-workers/internal/models"
)

const TaskType = "assess-dropout-risk"

// RecordLoader resolves a student id to its Feature Record.
type RecordLoader interface {
	GetRecord(ctx context.Context, studentID string) (models.Record, error)
}

type Handler struct {
	config     *Config
	logger     logger.Logger
	roster     RecordLoader
	service    *assessment.Service
	errHandler *errors.ErrorHandler
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	Roster       RecordLoader
	Service      *assessment.Service
	Logger       logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if opts.Service == nil {
		return nil, fmt.Errorf("assessment service is required for %s", TaskType)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:     workerConfig,
		logger:     log,
		roster:     opts.Roster,
		service:    opts.Service,
		errHandler: errors.NewErrorHandler(log),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("Processing dropout risk assessment", map[string]interface{}{
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

	input := &Input{}
	if id, ok := variables["studentId"].(string); ok {
		input.StudentID = id
	}
	if raw, ok := variables["record"]; ok {
		record, err := models.RecordFromValue(raw)
		if err != nil {
			return nil, assessment.DecodeError(err)
		}
		input.Record = &record
	}
	if p, ok := variables["probability"].(float64); ok {
		input.Probability = &p
	}
	return input, nil
}

// Execute resolves the record, scores it unless a probability is supplied and
// returns the assessment.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInputParsingFailedError(fmt.Errorf("input cannot be nil"))
	}

	record, err := h.resolveRecord(ctx, input)
	if err != nil {
		return nil, err
	}

	var result assessment.Assessment
	if input.Probability != nil {
		result, err = h.service.EvaluateWithProbability(ctx, record, *input.Probability, "worker")
	} else {
		result, err = h.service.Evaluate(ctx, record, "worker")
	}
	if err != nil {
		return nil, err
	}

	output := &Output{
		AssessmentID:         uuid.NewString(),
		StudentID:            input.StudentID,
		RiskTier:             result.Tier,
		Assessment:           result,
		RequiresIntervention: result.RequiresIntervention(),
	}

	h.logger.Info("Assessment completed", map[string]interface{}{
		"assessmentId":         output.AssessmentID,
		"studentId":            output.StudentID,
		"riskTier":             result.Tier,
		"requiresIntervention": output.RequiresIntervention,
	})
	return output, nil
}

func (h *Handler) resolveRecord(ctx context.Context, input *Input) (models.Record, error) {
	if input.Record != nil {
		return *input.Record, nil
	}
	if input.StudentID == "" {
		return models.Record{}, errors.NewInputParsingFailedError(fmt.Errorf("studentId or record is required"))
	}
	if h.roster == nil {
		return models.Record{}, errors.NewStudentNotFoundError(input.StudentID)
	}
	return h.roster.GetRecord(ctx, input.StudentID)
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
