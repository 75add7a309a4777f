package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/xeipuuv/gojsonschema"
)

// MaxBodyBytes caps request bodies read by Decode.
const MaxBodyBytes = 1 << 20

// ValidationError lists field problems found in a request. It is rendered
// as 422 with the fields map as detail.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field ValidationError.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("dto: invalid schema: %v", err))
	}
	return s
}

// Decode reads a JSON body, checks its shape against schema, unmarshals it
// into dst and finally runs dst's field rules.
func Decode(body io.Reader, schema *gojsonschema.Schema, dst validation.Validatable) error {
	raw, err := io.ReadAll(io.LimitReader(body, MaxBodyBytes+1))
	if err != nil {
		return NewValidationError("body", "could not read request body")
	}
	if len(raw) > MaxBodyBytes {
		return NewValidationError("body", "request body too large")
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return NewValidationError("body", "request body is required")
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return NewValidationError("body", "invalid JSON")
	}
	if !result.Valid() {
		return schemaErrors(result.Errors())
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return NewValidationError("body", "invalid JSON")
	}
	return CheckRules(dst)
}

// CheckRules runs v.Validate and converts rule failures into a ValidationError.
func CheckRules(v validation.Validatable) error {
	err := v.Validate()
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if errors.As(err, &errs) {
		out := &ValidationError{Fields: make(map[string]string, len(errs))}
		for field, ferr := range errs {
			if ferr != nil {
				out.Fields[field] = ferr.Error()
			}
		}
		return out
	}
	return err
}

func schemaErrors(errs []gojsonschema.ResultError) *ValidationError {
	out := &ValidationError{Fields: make(map[string]string, len(errs))}
	for _, e := range errs {
		field := e.Field()
		if prop, ok := e.Details()["property"]; ok {
			field = fmt.Sprint(prop)
		}
		if _, seen := out.Fields[field]; !seen {
			out.Fields[field] = e.Description()
		}
	}
	return out
}
