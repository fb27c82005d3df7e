package classifier

import (
	"context"
	"errors"
	"fmt"
	"math"

	"retention-workers/internal/models"
)

var (
	ErrModelUnavailable = errors.New("model not available, run training first")
	ErrScoreOutOfRange  = errors.New("classifier returned a probability outside [0,1]")
)

// Classifier maps one Feature Record to a dropout probability in [0,1].
// Implementations are safe for concurrent use.
type Classifier interface {
	Score(ctx context.Context, record models.Record) (float64, error)
}

// Static always returns the same probability. It backs the --probability
// override of the CLI and stands in for the model server in tests.
type Static float64

func (s Static) Score(_ context.Context, _ models.Record) (float64, error) {
	if err := checkRange(float64(s)); err != nil {
		return 0, err
	}
	return float64(s), nil
}

func checkRange(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: %v", ErrScoreOutOfRange, p)
	}
	return nil
}
