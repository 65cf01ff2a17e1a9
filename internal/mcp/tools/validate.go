package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/shapegen/pkg/inference"
	"github.com/usestring/shapegen/pkg/jsonschema"
	"github.com/usestring/shapegen/pkg/types"
	"github.com/usestring/shapegen/pkg/value"
)

const maxCommonErrors = 10

// ValidateInput is the input for shapegen_validate.
type ValidateInput struct {
	ShapeID           string   `json:"shape_id" jsonschema:"Shape ID from shapegen_infer"`
	Samples           []string `json:"samples" jsonschema:"Documents to check against the shape. One entry may hold several concatenated documents"`
	Format            string   `json:"format,omitempty" jsonschema:"Sample syntax: json (default) or yaml"`
	ContentType       string   `json:"content_type,omitempty" jsonschema:"Media type of the samples, used to pick the format when format is empty"`
	DenyUnknownFields bool     `json:"deny_unknown_fields,omitempty" jsonschema:"Report properties the shape does not know"`
	IncludeSchema     bool     `json:"include_schema,omitempty" jsonschema:"Return the JSON Schema the samples were checked against"`
}

// ToolValidate checks documents against the JSON Schema of a cached shape.
func ToolValidate(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateInput) (*sdkmcp.CallToolResult, types.ValidateOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateInput) (*sdkmcp.CallToolResult, types.ValidateOutput, error) {
		if input.ShapeID == "" {
			return nil, types.ValidateOutput{}, ErrInvalidInput("shape_id is required")
		}
		if len(input.Samples) == 0 {
			return nil, types.ValidateOutput{}, ErrInvalidInput("samples must contain at least one document")
		}
		entry, ok := d.Cache.Get(input.ShapeID)
		if !ok {
			return nil, types.ValidateOutput{}, ErrNotFound("shape", input.ShapeID)
		}

		format, err := resolveFormat(input.Format, input.ContentType)
		if err != nil {
			return nil, types.ValidateOutput{}, invalidInput(err)
		}

		schema := jsonschema.Render(entry.Shape, jsonschema.Options{
			Title:             displayName(entry.Name, entry.Shape),
			DenyUnknownFields: input.DenyUnknownFields,
		})
		validator, err := jsonschema.NewValidator(schema)
		if err != nil {
			return nil, types.ValidateOutput{}, fmt.Errorf("compiling schema: %w", err)
		}

		var results []types.SampleValidation
		for _, sample := range input.Samples {
			results = append(results, validateSample(validator, format, []byte(sample), len(results))...)
		}

		output := summarize(results)
		if input.IncludeSchema {
			output.Schema, err = types.ToAny(schema)
			if err != nil {
				return nil, types.ValidateOutput{}, fmt.Errorf("encoding schema: %w", err)
			}
		}
		return nil, output, nil
	}
}

// validateSample checks every document of one sample. A sample that cannot
// be decoded yields a single failed result.
func validateSample(v *jsonschema.Validator, format inference.Format, raw []byte, index int) []types.SampleValidation {
	decode := value.DecodeJSON
	if format == inference.FormatYAML {
		decode = value.DecodeYAML
	}
	docs, err := decode(raw)
	if err != nil {
		return []types.SampleValidation{{Index: index, Errors: []string{fmt.Sprintf("invalid %s: %v", format, err)}}}
	}

	out := make([]types.SampleValidation, 0, len(docs))
	for i, doc := range docs {
		data, err := json.Marshal(doc.Interface())
		var res jsonschema.Result
		if err != nil {
			res = jsonschema.Result{Errors: []string{err.Error()}}
		} else {
			res = v.ValidateJSON(data)
		}
		out = append(out, types.SampleValidation{Index: index + i, Valid: res.Valid, Errors: res.Errors})
	}
	return out
}

func summarize(results []types.SampleValidation) types.ValidateOutput {
	output := types.ValidateOutput{Results: results}
	output.Summary.TotalSamples = len(results)

	freq := make(map[string]int)
	for _, r := range results {
		if r.Valid {
			output.Summary.MatchingCount++
			continue
		}
		output.Summary.FailedCount++
		for _, e := range r.Errors {
			freq[e]++
		}
	}
	output.Summary.AllMatch = output.Summary.FailedCount == 0

	for msg, n := range freq {
		output.CommonErrors = append(output.CommonErrors, types.CommonError{Error: msg, Frequency: n})
	}
	sort.Slice(output.CommonErrors, func(i, j int) bool {
		a, b := output.CommonErrors[i], output.CommonErrors[j]
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		return a.Error < b.Error
	})
	if len(output.CommonErrors) > maxCommonErrors {
		output.CommonErrors = output.CommonErrors[:maxCommonErrors]
	}
	return output
}
