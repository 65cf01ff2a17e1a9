// Package naming derives type and field identifiers from source keys so
// that every output mode names things identically from the same Shape.
package naming

import (
	"strconv"

	"github.com/usestring/shapegen/pkg/shape"
	"github.com/usestring/shapegen/pkg/wordcase"
)

// DefaultTypeName is used when a key yields no identifier characters.
const DefaultTypeName = "Type"

// TypeName derives the type name for the value of field key with shape s.
// Rename metadata on s wins over the key. A collection field (an array,
// possibly optional) names its element, so the key is singularized first.
func TypeName(key string, s shape.Shape) string {
	if name := s.Name(); name != "" {
		return TypeIdent(name)
	}
	if base, _ := s.Unwrap(); base.Kind() == shape.KindArray {
		if elemName := base.Elem().Name(); elemName != "" {
			return TypeIdent(elemName)
		}
		key = wordcase.ToSingular(key)
	}
	return TypeIdent(key)
}

// ElemTypeName is TypeName for the element of a collection field: rename
// metadata on the element wins, otherwise the key is singularized.
func ElemTypeName(key string, elem shape.Shape) string {
	if name := elem.Name(); name != "" {
		return TypeIdent(name)
	}
	return TypeIdent(wordcase.ToSingular(key))
}

// FieldName derives a field identifier from key using transform. An output
// mode that needs a valid identifier should pass the result through Ident.
func FieldName(key string, transform wordcase.Transform) string {
	return transform.Apply(key)
}

// Ident makes s usable as an identifier: an empty result becomes fallback
// and a leading digit gets prefix.
func Ident(s, fallback, prefix string) string {
	if s == "" {
		return fallback
	}
	if s[0] >= '0' && s[0] <= '9' {
		return prefix + s
	}
	return s
}

// TypeIdent type-cases s into a type identifier.
func TypeIdent(s string) string {
	return Ident(wordcase.TypeCase(s), DefaultTypeName, "T")
}

// Namer hands out unique type names within one generated file.
type Namer struct {
	used     map[string]int
	reserved map[string]struct{}
}

// NewNamer returns a namer that never produces any of reserved.
func NewNamer(reserved ...string) *Namer {
	n := &Namer{used: make(map[string]int), reserved: make(map[string]struct{}, len(reserved))}
	for _, r := range reserved {
		n.reserved[r] = struct{}{}
	}
	return n
}

// Unique returns name the first time and name2, name3 and so on after.
func (n *Namer) Unique(name string) string {
	for {
		n.used[name]++
		count := n.used[name]
		candidate := name
		if count > 1 {
			candidate = name + strconv.Itoa(count)
		}
		if _, taken := n.reserved[candidate]; taken {
			continue
		}
		if count > 1 {
			if _, clash := n.used[candidate]; clash {
				continue
			}
			n.used[candidate] = 1
		}
		return candidate
	}
}
