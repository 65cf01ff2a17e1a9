package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/shapegen/pkg/hints"
	"github.com/usestring/shapegen/pkg/shape"
	"github.com/usestring/shapegen/pkg/types"
)

// InferInput is the input for shapegen_infer.
type InferInput struct {
	Samples     []string         `json:"samples" jsonschema:"Sample documents as text. One entry may hold several concatenated JSON documents; each document is one sample"`
	Name        string           `json:"name,omitempty" jsonschema:"Root type name used by later codegen calls (default: Root)"`
	Format      string           `json:"format,omitempty" jsonschema:"Sample syntax: json (default) or yaml"`
	ContentType string           `json:"content_type,omitempty" jsonschema:"Media type of the samples, used to pick the format when format is empty"`
	Select      string           `json:"select,omitempty" jsonschema:"jq expression applied to every document; its outputs become the samples"`
	Unwrap      string           `json:"unwrap,omitempty" jsonschema:"JSON pointer applied to every document after select, e.g. /data/items/-"`
	Hints       []hints.FileHint `json:"hints,omitempty" jsonschema:"Per-path hints: use_type (map, opt or a shape description), type_name, opaque_type"`
	Stats       bool             `json:"stats,omitempty" jsonschema:"Include per-path field statistics (frequency, formats, enums)"`
}

// ToolInfer infers a shape from samples and caches it for follow-up calls.
func ToolInfer(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferInput) (*sdkmcp.CallToolResult, types.InferOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferInput) (*sdkmcp.CallToolResult, types.InferOutput, error) {
		res, err := d.Infer(ctx, InferRequest{
			Samples:     input.Samples,
			Format:      input.Format,
			ContentType: input.ContentType,
			Select:      input.Select,
			Unwrap:      input.Unwrap,
			Hints:       input.Hints,
			Stats:       input.Stats,
		})
		if err != nil {
			return nil, types.InferOutput{}, err
		}

		entry := d.Cache.Put(input.Name, res)

		tree, err := types.ToAny(entry.Shape)
		if err != nil {
			return nil, types.InferOutput{}, fmt.Errorf("encoding shape: %w", err)
		}

		output := types.InferOutput{
			ShapeID:     entry.ID,
			Name:        displayName(entry.Name, entry.Shape),
			Description: entry.Shape.String(),
			Shape:       tree,
			Samples:     entry.Samples,
			Stats:       entry.Stats,
			Resource:    ShapeResource(entry.ID),
			Hint:        fmt.Sprintf("Pass shape_id %q to shapegen_codegen to render types or to shapegen_validate to check more samples", entry.ID),
		}
		return nil, output, nil
	}
}

// displayName is the root type name codegen will use for a cached shape.
func displayName(name string, s shape.Shape) string {
	switch {
	case name != "":
		return name
	case s.Name() != "":
		return s.Name()
	}
	return "Root"
}
