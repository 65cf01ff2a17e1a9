// Package jsonschema renders inferred shapes as JSON Schema (Draft 2020-12)
// documents and validates samples against them.
package jsonschema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/usestring/shapegen/pkg/naming"
	"github.com/usestring/shapegen/pkg/shape"
)

// Options control schema rendering.
type Options struct {
	// Title is set on the root schema.
	Title string
	// DenyUnknownFields closes every record with additionalProperties false.
	DenyUnknownFields bool
	// PropertyName maps a source key to the property name written to the
	// schema. Nil keeps keys as they are. Names that collide within one
	// record get numeric suffixes.
	PropertyName func(key string) string
}

// Render converts s to a schema. Records carrying rename metadata are
// placed in $defs and referenced by name.
func Render(s shape.Shape, opts Options) *jsonschema.Schema {
	r := &renderer{opts: opts, defs: jsonschema.Definitions{}}
	root := r.schema(s, true)
	root.Version = jsonschema.Version
	root.Title = opts.Title
	if len(r.defs) > 0 {
		root.Definitions = r.defs
	}
	return root
}

// Marshal renders s and encodes it with two-space indentation.
func Marshal(s shape.Shape, opts Options) ([]byte, error) {
	return json.MarshalIndent(Render(s, opts), "", "  ")
}

type renderer struct {
	opts Options
	defs jsonschema.Definitions
}

func (r *renderer) propertyName(key string) string {
	if r.opts.PropertyName == nil {
		return key
	}
	return r.opts.PropertyName(key)
}

func (r *renderer) schema(s shape.Shape, root bool) *jsonschema.Schema {
	switch s.Kind() {
	case shape.KindNull:
		return &jsonschema.Schema{Type: "null"}
	case shape.KindBool:
		return &jsonschema.Schema{Type: "boolean"}
	case shape.KindInteger:
		return &jsonschema.Schema{Type: "integer"}
	case shape.KindFloat:
		return &jsonschema.Schema{Type: "number"}
	case shape.KindString:
		return &jsonschema.Schema{Type: "string"}
	case shape.KindOptional:
		inner := s.Elem().WithName(s.Name())
		if inner.Kind() == shape.KindAny {
			return &jsonschema.Schema{}
		}
		return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{
			r.schema(inner, root),
			{Type: "null"},
		}}
	case shape.KindArray:
		arr := &jsonschema.Schema{Type: "array"}
		if elem := s.Elem(); elem.Kind() != shape.KindAny && elem.Kind() != shape.KindUnknown {
			arr.Items = r.schema(elem, false)
		}
		return arr
	case shape.KindMap:
		obj := &jsonschema.Schema{Type: "object"}
		if elem := s.Elem(); elem.Kind() != shape.KindAny && elem.Kind() != shape.KindUnknown {
			obj.AdditionalProperties = r.schema(elem, false)
		}
		return obj
	case shape.KindRecord:
		return r.record(s, root)
	case shape.KindOpaque:
		return &jsonschema.Schema{Description: s.OpaqueName()}
	}
	return &jsonschema.Schema{}
}

func (r *renderer) record(s shape.Shape, root bool) *jsonschema.Schema {
	obj := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}
	var namer *naming.Namer
	if r.opts.PropertyName != nil {
		namer = naming.NewNamer()
	}
	s.Fields(func(key string, f shape.Field) bool {
		name := key
		if namer != nil {
			name = namer.Unique(r.propertyName(key))
		}
		obj.Properties.Set(name, r.schema(f.Shape, false))
		if f.Required {
			obj.Required = append(obj.Required, name)
		}
		return true
	})
	if r.opts.DenyUnknownFields {
		obj.AdditionalProperties = jsonschema.FalseSchema
	}

	if root || s.Name() == "" {
		return obj
	}
	if _, exists := r.defs[s.Name()]; !exists {
		r.defs[s.Name()] = obj
	}
	return &jsonschema.Schema{Ref: "#/$defs/" + s.Name()}
}
