package assessdropoutrisk

import "retention-workers/internal/common/validation"

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"studentId":   {"type": "string", "minLength": 1, "maxLength": 64},
		"record":      {"type": "object"},
		"probability": {"type": "number", "minimum": 0, "maximum": 1}
	},
	"anyOf": [
		{"required": ["studentId"]},
		{"required": ["record"]}
	]
}`)
