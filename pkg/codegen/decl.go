package codegen

import (
	"strings"

	"github.com/usestring/shapegen/pkg/hints"
	"github.com/usestring/shapegen/pkg/naming"
	"github.com/usestring/shapegen/pkg/shape"
	"github.com/usestring/shapegen/pkg/wordcase"
)

const defaultRootName = "Root"

// decl is one named top-level declaration.
type decl struct {
	name  string
	path  hints.Path
	shape shape.Shape
	// alias marks a root that is not a record; shape is the whole root.
	alias bool
}

// declSet holds the declarations of one output file in pre-order, root
// first, and the type name chosen for the record at each path.
type declSet struct {
	decls []decl
	names map[hints.Path]string
	namer *naming.Namer
}

func collect(name string, s shape.Shape) *declSet {
	ds := &declSet{names: make(map[hints.Path]string), namer: naming.NewNamer()}
	root := rootName(name, s)

	base, _ := peel(s)
	if base.Kind() == shape.KindRecord {
		ds.record(hints.Root, root, base)
		return ds
	}

	root = ds.namer.Unique(root)
	ds.decls = append(ds.decls, decl{name: root, path: hints.Root, shape: s, alias: true})
	if base.Kind() == shape.KindArray || base.Kind() == shape.KindMap {
		elem, _ := peel(base.Elem())
		elemName := rootElemName(root)
		if elem.Name() != "" {
			elemName = naming.TypeIdent(elem.Name())
		}
		ds.visit(hints.Root.Elem(), elemName, base.Elem())
	}
	return ds
}

// typeName returns the declared name of the record at path.
func (ds *declSet) typeName(path hints.Path) string {
	if name, ok := ds.names[path]; ok {
		return name
	}
	return naming.DefaultTypeName
}

func (ds *declSet) visit(path hints.Path, suggested string, s shape.Shape) {
	s, _ = peel(s)
	switch s.Kind() {
	case shape.KindRecord:
		ds.record(path, suggested, s)
	case shape.KindArray, shape.KindMap:
		ds.visit(path.Elem(), suggested, s.Elem())
	}
}

func (ds *declSet) record(path hints.Path, name string, s shape.Shape) {
	name = ds.namer.Unique(name)
	ds.names[path] = name
	ds.decls = append(ds.decls, decl{name: name, path: path, shape: s})

	s.Fields(func(key string, f shape.Field) bool {
		ds.visit(path.Field(key), fieldTypeName(key, f.Shape), f.Shape)
		return true
	})
}

// rootName picks the root type name: the caller's name, then rename
// metadata on the root, then Root.
func rootName(name string, s shape.Shape) string {
	if name = strings.TrimSpace(name); name != "" {
		return naming.TypeIdent(name)
	}
	if s.Name() != "" {
		return naming.TypeIdent(s.Name())
	}
	return defaultRootName
}

// rootElemName names the element of a root collection.
func rootElemName(root string) string {
	if singular := wordcase.ToSingular(root); singular != root {
		return singular
	}
	return root + "Item"
}

func fieldTypeName(key string, s shape.Shape) string {
	if base, _ := peel(s); base.Kind() == shape.KindMap {
		return naming.ElemTypeName(key, base.Elem())
	}
	return naming.TypeName(key, s)
}

// peel strips Optional and moves its rename metadata to the inner shape.
func peel(s shape.Shape) (shape.Shape, bool) {
	inner, nullable := s.Unwrap()
	if nullable && inner.Name() == "" {
		inner = inner.WithName(s.Name())
	}
	return inner, nullable
}

// external is a reference to an opaque type such as "time.Time" or
// "github.com/google/uuid.UUID".
type external struct {
	module string
	name   string
}

func parseExternal(typeName string) external {
	i := strings.LastIndexByte(typeName, '.')
	if i <= 0 || i == len(typeName)-1 {
		return external{name: typeName}
	}
	return external{module: typeName[:i], name: typeName[i+1:]}
}

// qualifier is the last element of a slash-separated module path.
func (e external) qualifier() string {
	q := e.module
	if i := strings.LastIndexByte(q, '/'); i >= 0 {
		q = q[i+1:]
	}
	return q
}
