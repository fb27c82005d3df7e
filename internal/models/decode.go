package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"retention-workers/internal/common/validation"
)

// InputFields lists the attributes a caller must supply, in declaration order.
// It is every classifier column except is_stem.
var InputFields = inputFields()

var recordSchema = validation.MustCompile(recordSchemaJSON(InputFields))

func inputFields() []string {
	typ := reflect.TypeOf(Record{})
	names := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		names = append(names, tag)
	}
	return names
}

func recordSchemaJSON(required []string) string {
	data, err := json.Marshal(map[string]interface{}{
		"type":     "object",
		"required": required,
	})
	if err != nil {
		panic(err)
	}
	return string(data)
}

// DecodeRecord strictly decodes a JSON Feature Record. Unknown attributes and
// type mismatches are decode errors; absent attributes and a caller-supplied
// is_stem are reported as a *ValidationError. The result is normalized but
// its domains are not validated.
func DecodeRecord(data []byte) (Record, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Record{}, fmt.Errorf("decode student record: %w", err)
	}
	if doc == nil {
		return Record{}, fmt.Errorf("decode student record: expected a JSON object")
	}
	if err := checkPresence(doc); err != nil {
		return Record{}, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var r Record
	if err := dec.Decode(&r); err != nil {
		return Record{}, fmt.Errorf("decode student record: %w", err)
	}
	return r.Normalize(), nil
}

func checkPresence(doc map[string]interface{}) error {
	var fields []FieldError
	if _, ok := doc["is_stem"]; ok {
		fields = append(fields, FieldError{
			Field:   "is_stem",
			Message: "is_stem is derived from department and cannot be set",
		})
	}

	result, err := recordSchema.Validate(doc)
	if err != nil {
		return fmt.Errorf("decode student record: %w", err)
	}
	for _, e := range result.Errors {
		fields = append(fields, FieldError{Field: e.Field, Message: e.Message})
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// RecordFromValue re-encodes an already decoded JSON value, such as a job
// variable, and decodes it as a Feature Record.
func RecordFromValue(v interface{}) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Record{}, fmt.Errorf("encode student record: %w", err)
	}
	return DecodeRecord(data)
}
