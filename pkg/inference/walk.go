package inference

import (
	"github.com/usestring/shapegen/pkg/hints"
	"github.com/usestring/shapegen/pkg/shape"
	"github.com/usestring/shapegen/pkg/value"
)

// walker converts one sample into a shape. It is not shared between
// goroutines; matched records the hinted paths it visited.
type walker struct {
	dir     *hints.Directory
	matched map[hints.Path]struct{}
}

func newWalker(dir *hints.Directory) *walker {
	return &walker{dir: dir, matched: make(map[hints.Path]struct{})}
}

// shapeOf returns the shape of v found at path, applying the directives
// bound to path. A replacing directive skips everything below path.
func (w *walker) shapeOf(v value.Value, path hints.Path) shape.Shape {
	d, hinted := w.dir.Lookup(path)
	if hinted {
		w.matched[path] = struct{}{}
	}

	var s shape.Shape
	if d.Replaces() {
		s = d.Replacement()
	} else {
		s = w.structural(v, path, d.Map)
	}

	if d.Optional {
		s = shape.OptionalOf(s)
	}
	if d.Rename != "" {
		s = s.WithName(d.Rename)
	}
	return s
}

func (w *walker) structural(v value.Value, path hints.Path, asMap bool) shape.Shape {
	switch v.Kind() {
	case value.KindNull:
		return shape.Null()
	case value.KindBool:
		return shape.Bool()
	case value.KindNumber:
		if v.Number().IsInt {
			return shape.Integer()
		}
		return shape.Float()
	case value.KindString:
		return shape.StringT()
	case value.KindArray:
		elemPath := path.Elem()
		elem := shape.Unknown()
		for _, e := range v.Elems() {
			elem = shape.Merge(elem, w.shapeOf(e, elemPath))
		}
		return shape.ArrayOf(elem)
	case value.KindObject:
		if asMap {
			return w.mapOf(v, path)
		}
		return w.record(v, path)
	}
	return shape.Any()
}

func (w *walker) mapOf(v value.Value, path hints.Path) shape.Shape {
	valuePath := path.Elem()
	elem := shape.Unknown()
	v.Members(func(_ string, member value.Value) bool {
		elem = shape.Merge(elem, w.shapeOf(member, valuePath))
		return true
	})
	return shape.MapOf(elem)
}

func (w *walker) record(v value.Value, path hints.Path) shape.Shape {
	fields := make([]shape.NamedField, 0, v.Len())
	v.Members(func(key string, member value.Value) bool {
		fieldPath := path.Field(key)
		d, _ := w.dir.Lookup(fieldPath)
		fields = append(fields, shape.NamedField{
			Key: key,
			Field: shape.Field{
				Shape:    w.shapeOf(member, fieldPath),
				Required: !d.Optional,
			},
		})
		return true
	})
	return shape.Record(fields...)
}
