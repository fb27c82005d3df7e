package validatestudentrecord

import "retention-workers/internal/common/validation"

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["record"],
	"properties": {
		"studentId": {"type": "string", "maxLength": 64},
		"record":    {"type": "object"}
	}
}`)
