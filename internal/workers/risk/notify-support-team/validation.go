package notifysupportteam

import "retention-workers/internal/common/validation"

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["studentId", "assessment"],
	"properties": {
		"studentId":    {"type": "string", "minLength": 1, "maxLength": 64},
		"assessmentId": {"type": "string"},
		"assessment": {
			"type": "object",
			"required": ["riskTier", "probability"],
			"properties": {
				"riskTier":    {"type": "string", "enum": ["HIGH", "MODERATE", "LOW"]},
				"probability": {"type": "number", "minimum": 0, "maximum": 1}
			}
		}
	}
}`)
