// Package codegen renders an inferred shape as type declarations in Go,
// TypeScript, Python or JSON Schema.
package codegen

import (
	"context"
	"fmt"
	"strings"

	"github.com/usestring/shapegen/pkg/hints"
	"github.com/usestring/shapegen/pkg/inference"
	"github.com/usestring/shapegen/pkg/jsonschema"
	"github.com/usestring/shapegen/pkg/shape"
)

// Codegen infers a shape from input and renders it as the root type name.
// input may hold several concatenated documents.
func Codegen(name string, input []byte, opts Options) (string, error) {
	name = stripVisibility(name)

	engine, err := inference.New(hints.New(opts.Hints...), inference.Options{
		Format: opts.Format,
		Unwrap: opts.Unwrap,
		Select: opts.Select,
	})
	if err != nil {
		return "", err
	}
	res, err := engine.Infer(context.Background(), input)
	if err != nil {
		return "", err
	}
	return CodegenFromShape(name, res.Shape, opts)
}

// CodegenFromShape renders s without inference. The output ends with
// exactly one newline.
func CodegenFromShape(name string, s shape.Shape, opts Options) (string, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return "", err
	}
	s = shape.Finalize(s)

	var out string
	switch opts.OutputMode {
	case OutputGo:
		out, err = emitGo(collect(name, s), opts)
	case OutputTypeScript:
		out = emitTypeScript(collect(name, s), opts, false)
	case OutputTypeScriptAlias:
		out = emitTypeScript(collect(name, s), opts, true)
	case OutputPython:
		out = emitPython(collect(name, s), opts)
	case OutputJSONSchema:
		out, err = emitJSONSchema(name, s, opts)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, " \t\r\n") + "\n", nil
}

func emitJSONSchema(name string, s shape.Shape, opts Options) (string, error) {
	data, err := jsonschema.Marshal(s, jsonschema.Options{
		Title:             rootName(name, s),
		DenyUnknownFields: opts.DenyUnknownFields,
		PropertyName:      opts.propertyName,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling schema: %w", err)
	}
	return string(data), nil
}

// stripVisibility removes a leading visibility marker such as "pub ",
// "pub(crate) " or "export ". Generated types are always exported.
func stripVisibility(name string) string {
	if rest, ok := strings.CutPrefix(name, "pub "); ok {
		return rest
	}
	if strings.HasPrefix(name, "pub(") {
		if _, rest, ok := strings.Cut(name, ") "); ok {
			return rest
		}
	}
	if rest, ok := strings.CutPrefix(name, "export "); ok {
		return rest
	}
	return name
}
