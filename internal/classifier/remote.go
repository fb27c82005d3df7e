package classifier

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"retention-workers/internal/common/config"
	apperrors "retention-workers/internal/common/errors"
	commonhttp "retention-workers/internal/common/http"
	"retention-workers/internal/common/logger"
	"retention-workers/internal/common/metrics"
	"retention-workers/internal/models"
)

const defaultTimeout = 5 * time.Second

type predictRequest struct {
	Record map[string]interface{} `json:"record"`
}

type predictResponse struct {
	Probability *float64 `json:"probability"`
}

// Remote calls the model server that owns the trained artifact.
type Remote struct {
	baseURL string
	timeout time.Duration
	client  *commonhttp.Client
	logger  logger.Logger
}

func NewRemote(cfg config.ClassifierConfig, log logger.Logger) *Remote {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Remote{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		timeout: timeout,
		client:  commonhttp.NewClient(timeout),
		logger:  log.WithFields(map[string]interface{}{"component": "classifier"}),
	}
}

// Score posts the record's feature columns to /predict.
func (r *Remote) Score(ctx context.Context, record models.Record) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	var resp predictResponse
	err := r.client.PostJSON(ctx, r.baseURL+"/predict", predictRequest{Record: record.Features()}, &resp)
	if err != nil {
		stdErr := mapError(err)
		metrics.ClassifierRequestDuration.WithLabelValues(outcomeOf(stdErr)).Observe(time.Since(start).Seconds())
		r.logger.Warn("classifier call failed", map[string]interface{}{
			"error":     err.Error(),
			"errorCode": stdErr.Code,
		})
		return 0, stdErr
	}
	metrics.ClassifierRequestDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	if resp.Probability == nil {
		return 0, apperrors.NewClassifierFailedError(errors.New("response has no probability"))
	}
	p := *resp.Probability
	if err := checkRange(p); err != nil {
		stdErr := apperrors.NewClassifierFailedError(err)
		stdErr.Retryable = false
		return 0, stdErr
	}
	return p, nil
}

// Ready calls /health. Any failure means the artifact is not loaded.
func (r *Remote) Ready(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.client.GetJSON(ctx, r.baseURL+"/health", nil); err != nil {
		return apperrors.NewModelUnavailableError(fmt.Errorf("%w: %v", ErrModelUnavailable, err))
	}
	return nil
}

func mapError(err error) *apperrors.StandardError {
	var statusErr *commonhttp.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusServiceUnavailable || statusErr.StatusCode == http.StatusNotFound {
			return apperrors.NewModelUnavailableError(fmt.Errorf("%w: %v", ErrModelUnavailable, err))
		}
		return apperrors.NewClassifierFailedError(err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewClassifierTimeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.NewClassifierTimeoutError(err)
	}
	return apperrors.NewClassifierFailedError(err)
}

func outcomeOf(err *apperrors.StandardError) string {
	switch err.Code {
	case apperrors.ErrCodeClassifierTimeout:
		return "timeout"
	case apperrors.ErrCodeModelUnavailable:
		return "unavailable"
	default:
		return "error"
	}
}
