package hints

import (
	"fmt"

	"github.com/usestring/shapegen/pkg/shape"
)

// Kind identifies a directive.
type Kind uint8

const (
	// KindForce replaces inference at and below the path with a fixed shape.
	KindForce Kind = iota + 1
	// KindRename attaches a type name to the shape produced at the path.
	KindRename
	// KindOpaque renders the value at the path as a named leaf type.
	KindOpaque
	// KindOptional marks the value at the path as possibly absent or null.
	KindOptional
	// KindMap infers an object at the path as a map of uniform values.
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindForce:
		return "force"
	case KindRename:
		return "rename"
	case KindOpaque:
		return "opaque"
	case KindOptional:
		return "optional"
	case KindMap:
		return "map"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Directive is a single override. Use the constructors below.
type Directive struct {
	Kind  Kind
	Shape shape.Shape
	Name  string
}

// Force returns a directive that pins the shape at a path.
func Force(s shape.Shape) Directive { return Directive{Kind: KindForce, Shape: s} }

// ForceDescription is Force with the shape given in the description
// language understood by shape.Parse.
func ForceDescription(desc string) (Directive, error) {
	s, err := shape.Parse(desc)
	if err != nil {
		return Directive{}, err
	}
	return Force(s), nil
}

// Rename returns a directive naming the type produced at a path.
func Rename(name string) Directive { return Directive{Kind: KindRename, Name: name} }

// MarkOpaque returns a directive rendering the value at a path as typeName.
func MarkOpaque(typeName string) Directive { return Directive{Kind: KindOpaque, Name: typeName} }

// ForceOptional returns a directive making the value at a path optional.
func ForceOptional() Directive { return Directive{Kind: KindOptional} }

// UseMap returns a directive inferring the object at a path as a map.
func UseMap() Directive { return Directive{Kind: KindMap} }

// Pair binds a directive to a path.
type Pair struct {
	Path      Path
	Directive Directive
}

// Directives is everything that applies at one path.
type Directives struct {
	Forced   bool
	Shape    shape.Shape
	Rename   string
	Opaque   string
	Optional bool
	Map      bool
}

// Replaces reports whether inference below the path is skipped.
func (d Directives) Replaces() bool {
	return d.Forced || d.Opaque != ""
}

// Replacement returns the shape used instead of inference. An opaque
// directive takes precedence over a forced shape.
func (d Directives) Replacement() shape.Shape {
	if d.Opaque != "" {
		return shape.Opaque(d.Opaque)
	}
	return d.Shape
}

func (d *Directives) apply(dir Directive) {
	switch dir.Kind {
	case KindForce:
		d.Forced = true
		d.Shape = dir.Shape
	case KindRename:
		d.Rename = dir.Name
	case KindOpaque:
		d.Opaque = dir.Name
	case KindOptional:
		d.Optional = true
	case KindMap:
		d.Map = true
	}
}

// Directory maps normalized paths to their directives. It is read-only once
// built and safe for concurrent lookups. A nil *Directory has no entries.
type Directory struct {
	byPath map[Path]Directives
	order  []Path
}

// New builds a directory from pairs in order. A later pair overrides an
// earlier one of the same kind at the same path.
func New(pairs ...Pair) *Directory {
	d := &Directory{byPath: make(map[Path]Directives, len(pairs))}
	for _, p := range pairs {
		path := ParsePath(string(p.Path))
		entry, seen := d.byPath[path]
		if !seen {
			d.order = append(d.order, path)
		}
		entry.apply(p.Directive)
		d.byPath[path] = entry
	}
	return d
}

// Lookup returns the directives bound to exactly path.
func (d *Directory) Lookup(path Path) (Directives, bool) {
	if d == nil {
		return Directives{}, false
	}
	entry, ok := d.byPath[path]
	return entry, ok
}

// Paths returns the hinted paths in first-seen order.
func (d *Directory) Paths() []Path {
	if d == nil {
		return nil
	}
	return append([]Path(nil), d.order...)
}

// Len returns the number of hinted paths.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}
