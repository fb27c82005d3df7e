package validatestudentrecord

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retention-workers/internal/common/errors"
	"retention-workers/internal/common/logger"
	"retention-workers/internal/models"
)

func createMockJob(variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:           7,
		Type:          TaskType,
		CustomHeaders: "{}",
		Retries:       3,
		Variables:     string(variablesJSON),
	}}
}

func recordMap(t *testing.T, r models.Record) map[string]interface{} {
	data, err := json.Marshal(r)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func createTestHandler(t *testing.T) *Handler {
	h, err := NewHandler(HandlerOptions{CustomConfig: DefaultConfig(), Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)
	return h
}

func TestHandler_Execute(t *testing.T) {
	outOfDomain := models.DefaultRecord()
	outOfDomain.Age = 40
	outOfDomain.Gender = "Other"

	wrongType := recordMap(t, models.DefaultRecord())
	wrongType["attendance_percentage"] = "high"

	unknown := recordMap(t, models.DefaultRecord())
	unknown["gpa"] = 3.2

	withoutFlags := recordMap(t, models.DefaultRecord())
	delete(withoutFlags, "has_mentor")
	delete(withoutFlags, "previous_warnings")
	delete(withoutFlags, "fee_payment_status")

	withSTEM := recordMap(t, models.DefaultRecord())
	withSTEM["is_stem"] = true

	tests := []struct {
		name       string
		record     map[string]interface{}
		wantValid  bool
		wantFields []string
	}{
		{"default record", recordMap(t, models.DefaultRecord()), true, nil},
		{"out of domain", recordMap(t, outOfDomain), false, []string{"age", "gender"}},
		{"wrong type", wrongType, false, []string{"record"}},
		{"unknown attribute", unknown, false, []string{"record"}},
		{"missing attributes", withoutFlags, false, []string{"previous_warnings", "fee_payment_status", "has_mentor"}},
		{"is_stem supplied", withSTEM, false, []string{"is_stem"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := createTestHandler(t).Execute(context.Background(), &Input{StudentID: "S1", Record: tt.record})
			require.NoError(t, err)

			assert.Equal(t, "S1", out.StudentID)
			assert.Equal(t, tt.wantValid, out.IsValid)
			assert.NotNil(t, out.Errors)

			var fields []string
			for _, e := range out.Errors {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestHandler_Execute_MessagesNameBounds(t *testing.T) {
	r := models.DefaultRecord()
	r.CurrentCGPA = 1.0

	out, err := createTestHandler(t).Execute(context.Background(), &Input{Record: recordMap(t, r)})
	require.NoError(t, err)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "current_cgpa", out.Errors[0].Field)
	assert.Contains(t, out.Errors[0].Message, "at least 1.5")
}

func TestHandler_Execute_MissingFieldsAreRequired(t *testing.T) {
	out, err := createTestHandler(t).Execute(context.Background(), &Input{
		Record: map[string]interface{}{"age": 21, "gender": "Female"},
	})
	require.NoError(t, err)

	assert.False(t, out.IsValid)
	require.Len(t, out.Errors, len(models.InputFields)-2)
	for _, e := range out.Errors {
		assert.Equal(t, e.Field+" is required", e.Message)
		assert.NotEqual(t, "age", e.Field)
	}
}

func TestHandler_Execute_NilRecord(t *testing.T) {
	_, err := createTestHandler(t).Execute(context.Background(), &Input{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInputParsingFailed, errors.AsStandardError(err).Code)
}

func TestHandler_ParseInput(t *testing.T) {
	h := createTestHandler(t)

	in, err := h.parseInput(createMockJob(map[string]interface{}{
		"studentId": "S9",
		"record":    map[string]interface{}{"age": 21},
	}))
	require.NoError(t, err)
	assert.Equal(t, "S9", in.StudentID)
	assert.Equal(t, float64(21), in.Record["age"])

	_, err = h.parseInput(createMockJob(map[string]interface{}{"studentId": "S9"}))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInputParsingFailed, errors.AsStandardError(err).Code)

	_, err = h.parseInput(createMockJob(map[string]interface{}{"record": []int{1, 2}}))
	assert.Error(t, err)
}
