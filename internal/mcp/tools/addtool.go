package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers a tool after checking that the zero value of its output
// type satisfies the output schema the SDK infers for it.
//
// Panics if the check fails, so a broken output type is caught at startup.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	CheckOutputSchema[Out](t.Name)
	sdkmcp.AddTool(srv, t, h)
}

// CheckOutputSchema panics when the zero value of T would be rejected by the
// schema the SDK infers from T. Two mistakes are caught:
//
//   - a slice field without omitempty or omitzero, which marshals as null
//     while the inferred schema demands an array;
//   - a json.RawMessage field, which marshals as arbitrary JSON while the
//     inferred schema demands an array of integers.
//
// The untyped any output and types the inference cannot handle are skipped.
func CheckOutputSchema[T any](toolName string) {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	if paths := rawMessagePaths(rt, nil, map[reflect.Type]bool{}); len(paths) > 0 {
		panic(fmt.Sprintf(
			"AddTool %q: output type %s uses json.RawMessage at %s; declare the field as any and fill it with types.ToAny",
			toolName, rt, strings.Join(paths, ", "),
		))
	}

	if err := validateZero(rt); err != nil {
		panic(fmt.Sprintf(
			"AddTool %q: zero value of output type %s fails its schema: %v; add omitzero to slice fields or initialize them",
			toolName, rt, err,
		))
	}
}

func validateZero(rt reflect.Type) error {
	schema, err := jsonschema.ForType(rt, &jsonschema.ForOptions{})
	if err != nil {
		return nil
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return nil
	}

	data, err := json.Marshal(reflect.Zero(rt).Interface())
	if err != nil {
		return nil
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	if err := resolved.Validate(&v); err != nil {
		return fmt.Errorf("%w (JSON: %s)", err, data)
	}
	return nil
}

var rawMessageType = reflect.TypeFor[json.RawMessage]()

// rawMessagePaths returns the dotted field paths under t that hold a
// json.RawMessage.
func rawMessagePaths(t reflect.Type, path []string, seen map[reflect.Type]bool) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == rawMessageType {
		return []string{strings.Join(path, ".")}
	}
	if seen[t] {
		return nil
	}
	seen[t] = true
	defer delete(seen, t)

	var found []string
	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			found = append(found, rawMessagePaths(f.Type, append(path, f.Name), seen)...)
		}
	case reflect.Slice, reflect.Array:
		found = append(found, rawMessagePaths(t.Elem(), append(path, "[]"), seen)...)
	case reflect.Map:
		found = append(found, rawMessagePaths(t.Elem(), append(path, "[value]"), seen)...)
	}
	return found
}
