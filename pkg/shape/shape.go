// Package shape models the structural type inferred from sample documents.
//
// A Shape is a small immutable value. Shapes form a join semilattice under
// Merge with Unknown at the bottom and Any at the top; nullability is carried
// by Null and Optional and is orthogonal to the underlying variant.
package shape

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies the variant of a Shape.
type Kind uint8

const (
	// KindUnknown is the placeholder for "nothing observed yet", e.g. the
	// element of an empty array. It is the identity of Merge.
	KindUnknown Kind = iota
	KindNull
	KindBool
	KindInteger
	KindFloat
	KindString
	KindOptional
	KindArray
	KindMap
	KindRecord
	KindOpaque
	// KindAny is the top of the lattice.
	KindAny
)

var kindNames = [...]string{
	KindUnknown:  "unknown",
	KindNull:     "null",
	KindBool:     "bool",
	KindInteger:  "integer",
	KindFloat:    "float",
	KindString:   "string",
	KindOptional: "optional",
	KindArray:    "array",
	KindMap:      "map",
	KindRecord:   "record",
	KindOpaque:   "opaque",
	KindAny:      "any",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Field is a record member.
type Field struct {
	Shape    Shape
	Required bool
}

// Shape is an inferred type. The zero value is Unknown.
//
// Shapes are never mutated after construction; every operation returns a
// fresh value and may share sub-shapes with its inputs.
type Shape struct {
	kind   Kind
	elem   *Shape
	fields *orderedmap.OrderedMap[string, Field]
	opaque string
	name   string
}

// Unknown returns the bottom placeholder shape.
func Unknown() Shape { return Shape{kind: KindUnknown} }

// Null returns the shape of a JSON null.
func Null() Shape { return Shape{kind: KindNull} }

// Bool returns the boolean shape.
func Bool() Shape { return Shape{kind: KindBool} }

// Integer returns the integral number shape.
func Integer() Shape { return Shape{kind: KindInteger} }

// Float returns the fractional number shape.
func Float() Shape { return Shape{kind: KindFloat} }

// StringT returns the string shape.
func StringT() Shape { return Shape{kind: KindString} }

// Any returns the top shape.
func Any() Shape { return Shape{kind: KindAny} }

// Opaque returns a leaf whose rendering is the given target type name.
func Opaque(typeName string) Shape { return Shape{kind: KindOpaque, opaque: typeName} }

// OptionalOf wraps inner so that it may be absent or null. Optional never
// nests, and an optional placeholder collapses to Null.
func OptionalOf(inner Shape) Shape {
	switch inner.kind {
	case KindOptional, KindNull:
		return inner
	case KindUnknown:
		return Shape{kind: KindNull, name: inner.name}
	}
	name := inner.name
	inner.name = ""
	return Shape{kind: KindOptional, elem: &inner, name: name}
}

// ArrayOf returns an array shape with the given element shape.
func ArrayOf(elem Shape) Shape { return Shape{kind: KindArray, elem: &elem} }

// MapOf returns a string-keyed map shape with the given value shape.
func MapOf(value Shape) Shape { return Shape{kind: KindMap, elem: &value} }

// NamedField pairs a key with its field for building records.
type NamedField struct {
	Key string
	Field
}

// Record returns a record shape with fields in the given order. A repeated
// key keeps its first position and its last field.
func Record(fields ...NamedField) Shape {
	om := orderedmap.New[string, Field]()
	for _, f := range fields {
		om.Set(f.Key, f.Field)
	}
	return Shape{kind: KindRecord, fields: om}
}

// Req is shorthand for a required record field.
func Req(key string, s Shape) NamedField {
	return NamedField{Key: key, Field: Field{Shape: s, Required: true}}
}

// Opt is shorthand for a record field that may be absent. The shape is
// wrapped in Optional as Merge would have done.
func Opt(key string, s Shape) NamedField {
	return NamedField{Key: key, Field: Field{Shape: OptionalOf(s)}}
}

// Kind returns the variant of s.
func (s Shape) Kind() Kind { return s.kind }

// Name returns the rename metadata attached to s, or "".
func (s Shape) Name() string { return s.name }

// WithName returns a copy of s carrying name as its rename metadata.
func (s Shape) WithName(name string) Shape {
	s.name = name
	return s
}

// Elem returns the inner shape of an Optional, the element of an array or
// the value of a map. It returns Unknown for any other kind.
func (s Shape) Elem() Shape {
	if s.elem == nil {
		return Unknown()
	}
	return *s.elem
}

// OpaqueName returns the target type name of an Opaque shape.
func (s Shape) OpaqueName() string { return s.opaque }

// Len returns the number of record fields.
func (s Shape) Len() int {
	if s.fields == nil {
		return 0
	}
	return s.fields.Len()
}

// Keys returns the record field names in order.
func (s Shape) Keys() []string {
	if s.fields == nil {
		return nil
	}
	keys := make([]string, 0, s.fields.Len())
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Field looks up a record field by key.
func (s Shape) Field(key string) (Field, bool) {
	if s.fields == nil {
		return Field{}, false
	}
	return s.fields.Get(key)
}

// Fields calls fn for every record field in order until fn returns false.
func (s Shape) Fields(fn func(key string, f Field) bool) {
	if s.fields == nil {
		return
	}
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// IsNullable reports whether s admits null.
func (s Shape) IsNullable() bool {
	return s.kind == KindNull || s.kind == KindOptional
}

// Unwrap strips Optional and reports whether it did. Null unwraps to
// Unknown.
func (s Shape) Unwrap() (Shape, bool) {
	switch s.kind {
	case KindOptional:
		return *s.elem, true
	case KindNull:
		return Unknown(), true
	}
	return s, false
}

// Equal reports whether a and b have the same structure, including record
// field order and rename metadata.
func Equal(a, b Shape) bool {
	return equal(a, b, true)
}

// Equivalent is Equal without regard to record field order.
func Equivalent(a, b Shape) bool {
	return equal(a, b, false)
}

func equal(a, b Shape, ordered bool) bool {
	if a.kind != b.kind || a.name != b.name || a.opaque != b.opaque {
		return false
	}
	switch a.kind {
	case KindOptional, KindArray, KindMap:
		return equal(*a.elem, *b.elem, ordered)
	case KindRecord:
		if a.Len() != b.Len() {
			return false
		}
		if a.Len() == 0 {
			return true
		}
		if ordered {
			pa, pb := a.fields.Oldest(), b.fields.Oldest()
			for ; pa != nil; pa, pb = pa.Next(), pb.Next() {
				if pa.Key != pb.Key || !equalField(pa.Value, pb.Value, ordered) {
					return false
				}
			}
			return true
		}
		for pa := a.fields.Oldest(); pa != nil; pa = pa.Next() {
			fb, ok := b.fields.Get(pa.Key)
			if !ok || !equalField(pa.Value, fb, ordered) {
				return false
			}
		}
		return true
	}
	return true
}

func equalField(a, b Field, ordered bool) bool {
	return a.Required == b.Required && equal(a.Shape, b.Shape, ordered)
}
