package shape

import orderedmap "github.com/wk8/go-ordered-map/v2"

// Merge returns the least upper bound of a and b.
//
// Merge is total, commutative and associative up to record field order, and
// idempotent. Record fields keep a's order followed by keys first seen in b.
// Incompatible variants widen to Any instead of failing.
func Merge(a, b Shape) Shape {
	baseA, nullA := a.Unwrap()
	baseB, nullB := b.Unwrap()

	merged := mergeBase(baseA, baseB)
	merged.name = pickName(a.name, b.name, merged.name)
	if nullA || nullB {
		return OptionalOf(merged)
	}
	return merged
}

// MergeAll folds shapes left to right starting from Unknown.
func MergeAll(shapes ...Shape) Shape {
	acc := Unknown()
	for _, s := range shapes {
		acc = Merge(acc, s)
	}
	return acc
}

// mergeBase joins two shapes that are neither Null nor Optional.
func mergeBase(a, b Shape) Shape {
	switch {
	case a.kind == KindUnknown:
		return b
	case b.kind == KindUnknown:
		return a
	case a.kind == KindAny || b.kind == KindAny:
		return Any()
	}

	if a.kind != b.kind {
		if isNumber(a.kind) && isNumber(b.kind) {
			return Float()
		}
		return Any()
	}

	switch a.kind {
	case KindArray:
		return ArrayOf(Merge(*a.elem, *b.elem))
	case KindMap:
		return MapOf(Merge(*a.elem, *b.elem))
	case KindRecord:
		return mergeRecords(a, b)
	case KindOpaque:
		if a.opaque != b.opaque {
			return Any()
		}
		return Opaque(a.opaque)
	}
	return Shape{kind: a.kind}
}

func mergeRecords(a, b Shape) Shape {
	om := orderedmap.New[string, Field]()

	a.Fields(func(key string, fa Field) bool {
		fb, ok := b.Field(key)
		if !ok {
			om.Set(key, Field{Shape: OptionalOf(fa.Shape)})
			return true
		}
		om.Set(key, Field{
			Shape:    Merge(fa.Shape, fb.Shape),
			Required: fa.Required && fb.Required,
		})
		return true
	})
	b.Fields(func(key string, fb Field) bool {
		if _, seen := om.Get(key); !seen {
			om.Set(key, Field{Shape: OptionalOf(fb.Shape)})
		}
		return true
	})

	return Shape{kind: KindRecord, fields: om}
}

func isNumber(k Kind) bool { return k == KindInteger || k == KindFloat }

// pickName keeps rename metadata deterministic regardless of operand order.
func pickName(names ...string) string {
	best := ""
	for _, n := range names {
		if n != "" && (best == "" || n < best) {
			best = n
		}
	}
	return best
}

// Finalize replaces placeholders that survived inference: Unknown becomes
// Any and a bare Null becomes Optional(Any).
func Finalize(s Shape) Shape {
	switch s.kind {
	case KindUnknown:
		return Any().WithName(s.name)
	case KindNull:
		top := Any()
		return Shape{kind: KindOptional, elem: &top, name: s.name}
	case KindOptional:
		inner := Finalize(*s.elem)
		return Shape{kind: KindOptional, elem: &inner, name: s.name}
	case KindArray:
		return ArrayOf(Finalize(*s.elem)).WithName(s.name)
	case KindMap:
		return MapOf(Finalize(*s.elem)).WithName(s.name)
	case KindRecord:
		om := orderedmap.New[string, Field]()
		s.Fields(func(key string, f Field) bool {
			om.Set(key, Field{Shape: Finalize(f.Shape), Required: f.Required})
			return true
		})
		return Shape{kind: KindRecord, fields: om, name: s.name}
	}
	return s
}
