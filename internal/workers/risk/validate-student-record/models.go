package validatestudentrecord

import "retention-workers/internal/models"

type Input struct {
	StudentID string                 `json:"studentId,omitempty"`
	Record    map[string]interface{} `json:"record"`
}

type Output struct {
	StudentID string              `json:"studentId,omitempty"`
	IsValid   bool                `json:"isValid"`
	Errors    []models.FieldError `json:"errors"`
}
