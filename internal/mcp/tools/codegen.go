package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/shapegen/pkg/codegen"
	"github.com/usestring/shapegen/pkg/hints"
	"github.com/usestring/shapegen/pkg/shape"
	"github.com/usestring/shapegen/pkg/types"
	"github.com/usestring/shapegen/pkg/wordcase"
)

// CodegenInput is the input for shapegen_codegen.
type CodegenInput struct {
	ShapeID string `json:"shape_id,omitempty" jsonschema:"Shape ID from shapegen_infer. Either shape_id or samples is required"`

	Samples     []string         `json:"samples,omitempty" jsonschema:"Sample documents to infer from when no shape_id is given"`
	Format      string           `json:"format,omitempty" jsonschema:"Sample syntax: json (default) or yaml"`
	ContentType string           `json:"content_type,omitempty" jsonschema:"Media type of the samples, used to pick the format when format is empty"`
	Select      string           `json:"select,omitempty" jsonschema:"jq expression applied to every document"`
	Unwrap      string           `json:"unwrap,omitempty" jsonschema:"JSON pointer applied to every document after select"`
	Hints       []hints.FileHint `json:"hints,omitempty" jsonschema:"Per-path hints, as for shapegen_infer"`

	Name                       string `json:"name,omitempty" jsonschema:"Root type name (default: the cached name, else Root)"`
	OutputMode                 string `json:"output_mode,omitempty" jsonschema:"go, typescript, typescript/typealias, python or json_schema (default from server config)"`
	PropertyNameFormat         string `json:"property_name_format,omitempty" jsonschema:"Rename properties: camelCase, snake_case, PascalCase, kebab-case, SCREAMING_SNAKE_CASE, SCREAMING-KEBAB-CASE, lowercase, UPPERCASE"`
	ImportStyle                string `json:"import_style,omitempty" jsonschema:"How opaque types are referenced: add_imports (default), assume_existing, qualified_paths"`
	DenyUnknownFields          bool   `json:"deny_unknown_fields,omitempty" jsonschema:"Close JSON Schema records to unknown properties"`
	UseDefaultForMissingFields bool   `json:"use_default_for_missing_fields,omitempty" jsonschema:"Render fields missing from some samples as their plain type"`
	GoPackage                  string `json:"go_package,omitempty" jsonschema:"Package clause for Go output (default: model)"`
	CollectAdditional          bool   `json:"collect_additional,omitempty" jsonschema:"Add an index signature for unknown properties to TypeScript records"`
}

// ToolCodegen renders type declarations for a cached or freshly inferred
// shape.
func ToolCodegen(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input CodegenInput) (*sdkmcp.CallToolResult, types.CodegenOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input CodegenInput) (*sdkmcp.CallToolResult, types.CodegenOutput, error) {
		if input.ShapeID == "" && len(input.Samples) == 0 {
			return nil, types.CodegenOutput{}, ErrInvalidInput("either shape_id or samples is required")
		}

		opts, err := codegenOptions(d, input)
		if err != nil {
			return nil, types.CodegenOutput{}, err
		}

		var s shape.Shape
		name := input.Name
		if input.ShapeID != "" {
			entry, ok := d.Cache.Get(input.ShapeID)
			if !ok {
				return nil, types.CodegenOutput{}, ErrNotFound("shape", input.ShapeID)
			}
			s = entry.Shape
			if name == "" {
				name = entry.Name
			}
		} else {
			res, err := d.Infer(ctx, InferRequest{
				Samples:     input.Samples,
				Format:      input.Format,
				ContentType: input.ContentType,
				Select:      input.Select,
				Unwrap:      input.Unwrap,
				Hints:       input.Hints,
			})
			if err != nil {
				return nil, types.CodegenOutput{}, err
			}
			s = res.Shape
		}

		code, err := codegen.CodegenFromShape(name, s, opts)
		if err != nil {
			return nil, types.CodegenOutput{}, fmt.Errorf("generating code: %w", err)
		}
		return nil, types.CodegenOutput{
			ShapeID:    input.ShapeID,
			OutputMode: string(opts.OutputMode),
			Code:       code,
		}, nil
	}
}

func codegenOptions(d *Deps, input CodegenInput) (codegen.Options, error) {
	opts := codegen.DefaultOptions()

	mode := input.OutputMode
	if mode == "" {
		mode = d.Config.DefaultOutputMode
	}
	m, err := codegen.ParseOutputMode(mode)
	if err != nil {
		return opts, invalidInput(err)
	}
	opts.OutputMode = m

	if input.PropertyNameFormat != "" {
		t, err := wordcase.ParseTransform(input.PropertyNameFormat)
		if err != nil {
			return opts, invalidInput(err)
		}
		opts.PropertyNameFormat = t
	}
	if input.ImportStyle != "" {
		style, err := codegen.ParseImportStyle(input.ImportStyle)
		if err != nil {
			return opts, invalidInput(err)
		}
		opts.ImportStyle = style
	}
	if input.GoPackage != "" {
		opts.GoPackage = input.GoPackage
	}
	opts.DenyUnknownFields = input.DenyUnknownFields
	opts.UseDefaultForMissingFields = input.UseDefaultForMissingFields
	opts.CollectAdditional = input.CollectAdditional
	return opts, nil
}
