package assessdropoutrisk

import (
	"retention-workers/internal/assessment"
	"retention-workers/internal/models"
)

// Input names a rostered student or carries the record inline. When both are
// present the inline record wins and studentId only labels the result.
type Input struct {
	StudentID   string         `json:"studentId,omitempty"`
	Record      *models.Record `json:"record,omitempty"`
	Probability *float64       `json:"probability,omitempty"`
}

type Output struct {
	AssessmentID         string                `json:"assessmentId"`
	StudentID            string                `json:"studentId,omitempty"`
	RiskTier             assessment.Tier       `json:"riskTier"`
	Assessment           assessment.Assessment `json:"assessment"`
	RequiresIntervention bool                  `json:"requiresIntervention"`
}
