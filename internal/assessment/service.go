package assessment

import (
	"context"
	"errors"
	"fmt"
	"math"

	apperrors "retention-workers/internal/common/errors"
	"retention-workers/internal/common/logger"
	"retention-workers/internal/common/metrics"
	"retention-workers/internal/common/observability"
	"retention-workers/internal/models"
)

// ErrProbabilityOutOfRange is returned when a probability falls outside [0,1].
var ErrProbabilityOutOfRange = errors.New("probability must be within [0,1]")

// Scorer is the opaque classifier: one record in, one dropout probability out.
type Scorer interface {
	Score(ctx context.Context, record models.Record) (float64, error)
}

// Service validates a record, obtains its probability and runs the engine.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	scorer Scorer
	obs    *observability.Observability
	logger logger.Logger
}

func NewService(scorer Scorer, obs *observability.Observability, log logger.Logger) *Service {
	return &Service{
		scorer: scorer,
		obs:    obs,
		logger: log.WithFields(map[string]interface{}{"component": "assessment"}),
	}
}

// Evaluate classifies the record and assesses it. source labels the entry
// surface (worker, api, cli) in metrics.
func (s *Service) Evaluate(ctx context.Context, record models.Record, source string) (Assessment, error) {
	record, err := Prepare(record)
	if err != nil {
		return Assessment{}, err
	}

	p, err := s.scorer.Score(ctx, record)
	if err != nil {
		return Assessment{}, err
	}

	return s.assess(ctx, record, p, source)
}

// EvaluateWithProbability skips the classifier and assesses record at p.
func (s *Service) EvaluateWithProbability(ctx context.Context, record models.Record, p float64, source string) (Assessment, error) {
	record, err := Prepare(record)
	if err != nil {
		return Assessment{}, err
	}
	if err := CheckProbability(p); err != nil {
		return Assessment{}, apperrors.NewRecordValidationFailedError(err.Error())
	}
	return s.assess(ctx, record, p, source)
}

func (s *Service) assess(ctx context.Context, record models.Record, p float64, source string) (Assessment, error) {
	result := Assess(record, p)

	metrics.RiskAssessments.WithLabelValues(string(result.Tier), source).Inc()
	s.obs.RecordAssessment(ctx, string(result.Tier), p)

	s.logger.Debug("assessment computed", map[string]interface{}{
		"tier":            result.Tier,
		"probability":     p,
		"riskFactors":     result.RiskFactors.Len(),
		"protectiveCount": result.ProtectiveFactors.Len(),
		"source":          source,
	})
	return result, nil
}

// Prepare derives computed attributes and rejects out-of-domain records.
func Prepare(record models.Record) (models.Record, error) {
	record = record.Normalize()
	if err := record.Validate(); err != nil {
		stdErr := apperrors.NewRecordValidationFailedError(err.Error())
		stdErr.Cause = err
		return record, stdErr
	}
	return record, nil
}

// DecodeError maps a models.DecodeRecord failure to an error code. Absent or
// derived attributes fail validation; anything else is a parsing failure.
func DecodeError(err error) error {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		stdErr := apperrors.NewRecordValidationFailedError(err.Error())
		stdErr.Cause = err
		return stdErr
	}
	return apperrors.NewInputParsingFailedError(err)
}

func CheckProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: got %v", ErrProbabilityOutOfRange, p)
	}
	return nil
}
