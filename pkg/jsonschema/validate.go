package jsonschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
	santhosh "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Result is the outcome of validating one document.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Validator checks documents against a compiled schema.
type Validator struct {
	schema *santhosh.Schema
}

// NewValidator compiles a rendered schema.
func NewValidator(schema *jsonschema.Schema) (*Validator, error) {
	// Round-trip through JSON to get the plain value the compiler expects.
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}

	var schemaValue any
	if err := json.Unmarshal(schemaJSON, &schemaValue); err != nil {
		return nil, fmt.Errorf("unmarshaling schema: %w", err)
	}

	compiler := santhosh.NewCompiler()
	if err := compiler.AddResource("schema.json", schemaValue); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}

	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// ValidateJSON validates raw JSON bytes.
func (v *Validator) ValidateJSON(data []byte) Result {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return Result{Errors: []string{fmt.Sprintf("invalid JSON: %s", err.Error())}}
	}
	return v.Validate(value)
}

// Validate validates an already parsed value in the form produced by
// encoding/json.
func (v *Validator) Validate(value any) Result {
	err := v.schema.Validate(value)
	if err == nil {
		return Result{Valid: true}
	}
	return Result{Errors: extractValidationErrors(err)}
}

func extractValidationErrors(err error) []string {
	var validationErr *santhosh.ValidationError
	if errors.As(err, &validationErr) {
		return extractDetailedErrors(validationErr)
	}
	return []string{err.Error()}
}

// printer is a default English printer for localized error messages.
var printer = message.NewPrinter(language.English)

// extractDetailedErrors flattens the leaf errors of a ValidationError into
// sorted, deduplicated "path: message" lines.
func extractDetailedErrors(err *santhosh.ValidationError) []string {
	seen := make(map[string]bool)
	var result []string
	collectErrors(err, func(path, msg string) {
		line := msg
		if path != "" {
			line = path + ": " + msg
		}
		if !seen[line] {
			seen[line] = true
			result = append(result, line)
		}
	})
	sort.Strings(result)
	return result
}

func collectErrors(err *santhosh.ValidationError, emit func(path, msg string)) {
	instancePath := ""
	if len(err.InstanceLocation) > 0 {
		instancePath = "/" + strings.Join(err.InstanceLocation, "/")
	}

	if err.ErrorKind != nil && len(err.Causes) == 0 {
		msg := err.ErrorKind.LocalizedString(printer)
		// $ref and wrapper messages carry no detail of their own.
		if !strings.HasPrefix(msg, "$ref ") && !strings.HasPrefix(msg, "doesn't validate with") {
			emit(instancePath, msg)
		}
	}

	for _, cause := range err.Causes {
		collectErrors(cause, emit)
	}
}
