package inference

import (
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"

	"github.com/usestring/shapegen/pkg/value"
)

// selector maps each document to the outputs of a jq expression.
type selector struct {
	code *gojq.Code
}

func compileSelector(expression string) (*selector, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return &selector{code: code}, nil
}

// ValidateSelect checks a jq expression without running it.
func ValidateSelect(expression string) error {
	_, err := compileSelector(expression)
	return err
}

// run returns the jq outputs for doc. Null outputs are dropped, as a missing
// path yields null in jq. Object keys come back sorted.
func (s *selector) run(doc value.Value) ([]value.Value, error) {
	var out []value.Value
	iter := s.code.Run(doc.Interface())
	for {
		v, ok := iter.Next()
		if !ok {
			return out, nil
		}
		if err, isErr := v.(error); isErr {
			return nil, errors.New(formatJQError(err))
		}
		if v == nil {
			continue
		}
		out = append(out, value.FromInterface(v))
	}
}

// formatJQError decorates common runtime errors with a hint. gojq reports
// them as plain errors, so the hints are picked by message text.
func formatJQError(err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return "query halted"
		}
		return fmt.Sprintf("query halted with: %v", haltErr.Value())
	}

	msg := err.Error()
	var hint string
	switch {
	case strings.Contains(msg, "cannot iterate over: null"):
		hint = " (the path may not exist in this document)"
	case strings.Contains(msg, "cannot index") && strings.Contains(msg, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(msg, "object") && strings.Contains(msg, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(msg, "array") && strings.Contains(msg, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}
	return msg + hint
}
