package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Path    string // JSON path to the invalid field (e.g., "queries.0")
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString("validation failed:")
	for _, err := range e {
		sb.WriteString(" ")
		sb.WriteString(err.Error())
		sb.WriteString(";")
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// Validate validates JSON data against the schema.
// Returns nil if valid, or ValidationErrors if invalid.
func (s *Schema) Validate(data json.RawMessage) error {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return &ValidationError{Message: fmt.Sprintf("invalid JSON: %s", err)}
	}

	var errs ValidationErrors
	s.validate("", value, &errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (s *Schema) validate(path string, value any, errs *ValidationErrors) {
	switch s.Type {
	case "object":
		s.validateObject(path, value, errs)
	case "array":
		s.validateArray(path, value, errs)
	case "string":
		str, ok := value.(string)
		if !ok {
			appendError(errs, path, fmt.Sprintf("expected string, got %T", value))
			return
		}
		s.validateEnum(path, str, errs)
	case "integer":
		num, ok := value.(float64)
		if !ok || num != math.Trunc(num) {
			appendError(errs, path, fmt.Sprintf("expected integer, got %v", value))
		}
	case "number":
		if _, ok := value.(float64); !ok {
			appendError(errs, path, fmt.Sprintf("expected number, got %T", value))
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			appendError(errs, path, fmt.Sprintf("expected boolean, got %T", value))
		}
	}
}

func (s *Schema) validateObject(path string, value any, errs *ValidationErrors) {
	obj, ok := value.(map[string]any)
	if !ok {
		appendError(errs, path, fmt.Sprintf("expected object, got %T", value))
		return
	}

	for _, req := range s.Required {
		if _, present := obj[req]; !present {
			appendError(errs, joinPath(path, req), "missing required field")
		}
	}

	for name, sub := range s.Properties {
		fieldValue, present := obj[name]
		if !present {
			continue
		}
		sub.validate(joinPath(path, name), fieldValue, errs)
	}
}

func (s *Schema) validateArray(path string, value any, errs *ValidationErrors) {
	arr, ok := value.([]any)
	if !ok {
		appendError(errs, path, fmt.Sprintf("expected array, got %T", value))
		return
	}

	if s.Items == nil {
		return
	}
	for i, item := range arr {
		s.Items.validate(fmt.Sprintf("%s.%d", path, i), item, errs)
	}
}

func (s *Schema) validateEnum(path string, value string, errs *ValidationErrors) {
	if len(s.Enum) == 0 {
		return
	}
	for _, allowed := range s.Enum {
		if allowed == value {
			return
		}
	}
	appendError(errs, path, fmt.Sprintf("value %q is not one of the allowed values", value))
}

func appendError(errs *ValidationErrors, path, msg string) {
	*errs = append(*errs, &ValidationError{Path: path, Message: msg})
}

func joinPath(base, field string) string {
	if base == "" {
		return field
	}
	return base + "." + field
}
