package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/usestring/shapegen/pkg/hints"
	"github.com/usestring/shapegen/pkg/shape"
)

const pyIndent = "    "

var pyKeywords = map[string]struct{}{
	"False": {}, "None": {}, "True": {}, "and": {}, "as": {}, "assert": {},
	"async": {}, "await": {}, "break": {}, "class": {}, "continue": {},
	"def": {}, "del": {}, "elif": {}, "else": {}, "except": {}, "finally": {},
	"for": {}, "from": {}, "global": {}, "if": {}, "import": {}, "in": {},
	"is": {}, "lambda": {}, "nonlocal": {}, "not": {}, "or": {}, "pass": {},
	"raise": {}, "return": {}, "try": {}, "while": {}, "with": {}, "yield": {},
}

type pyEmitter struct {
	ds      *declSet
	opts    Options
	typing  map[string]struct{}
	from    map[string]map[string]struct{}
	modules map[string]struct{}
}

// emitPython writes TypedDict declarations. Python evaluates annotations at
// class creation, so declarations are written leaves first.
func emitPython(ds *declSet, opts Options) string {
	p := &pyEmitter{
		ds:      ds,
		opts:    opts,
		typing:  map[string]struct{}{},
		from:    map[string]map[string]struct{}{},
		modules: map[string]struct{}{},
	}

	var blocks []string
	for i := len(ds.decls) - 1; i >= 0; i-- {
		d := ds.decls[i]
		if d.alias {
			blocks = append(blocks, fmt.Sprintf("%s = %s\n", d.name, p.typeRef(d.path, d.shape)))
			continue
		}
		p.typing["TypedDict"] = struct{}{}
		blocks = append(blocks, p.typedDict(d))
	}

	var out strings.Builder
	if len(p.typing) > 0 {
		fmt.Fprintf(&out, "from typing import %s\n", strings.Join(sortedKeys(p.typing), ", "))
	}
	for _, module := range sortedKeys(p.from) {
		fmt.Fprintf(&out, "from %s import %s\n", module, strings.Join(sortedKeys(p.from[module]), ", "))
	}
	for _, module := range sortedKeys(p.modules) {
		fmt.Fprintf(&out, "import %s\n", module)
	}
	if out.Len() > 0 {
		out.WriteString("\n\n")
	}
	out.WriteString(strings.Join(blocks, "\n\n"))
	return out.String()
}

type pyField struct {
	name string
	typ  string
}

func (p *pyEmitter) typedDict(d decl) string {
	var fields []pyField
	functional := false
	names := p.opts.propertyNames(d.shape)
	d.shape.Fields(func(key string, f shape.Field) bool {
		path := d.path.Field(key)
		name := names[key]
		if !isPyIdent(name) {
			functional = true
		}

		var typ string
		if f.Required {
			typ = p.typeRef(path, f.Shape)
		} else {
			base, _ := peel(f.Shape)
			typ = p.baseRef(path, base)
			if !p.opts.UseDefaultForMissingFields {
				p.typing["NotRequired"] = struct{}{}
				typ = "NotRequired[" + typ + "]"
			}
		}
		fields = append(fields, pyField{name: name, typ: typ})
		return true
	})

	var b strings.Builder
	if functional {
		fmt.Fprintf(&b, "%s = TypedDict(%s, {\n", d.name, strconv.Quote(d.name))
		for _, f := range fields {
			fmt.Fprintf(&b, "%s%s: %s,\n", pyIndent, strconv.Quote(f.name), f.typ)
		}
		b.WriteString("})\n")
		return b.String()
	}

	fmt.Fprintf(&b, "class %s(TypedDict):\n", d.name)
	if len(fields) == 0 {
		b.WriteString(pyIndent + "pass\n")
	}
	for _, f := range fields {
		fmt.Fprintf(&b, "%s%s: %s\n", pyIndent, f.name, f.typ)
	}
	return b.String()
}

func (p *pyEmitter) typeRef(path hints.Path, s shape.Shape) string {
	base, nullable := peel(s)
	ref := p.baseRef(path, base)
	if nullable && base.Kind() != shape.KindAny {
		p.typing["Optional"] = struct{}{}
		return "Optional[" + ref + "]"
	}
	return ref
}

func (p *pyEmitter) baseRef(path hints.Path, s shape.Shape) string {
	switch s.Kind() {
	case shape.KindBool:
		return "bool"
	case shape.KindInteger:
		return "int"
	case shape.KindFloat:
		return "float"
	case shape.KindString:
		return "str"
	case shape.KindArray:
		return "list[" + p.typeRef(path.Elem(), s.Elem()) + "]"
	case shape.KindMap:
		return "dict[str, " + p.typeRef(path.Elem(), s.Elem()) + "]"
	case shape.KindRecord:
		return p.ds.typeName(path)
	case shape.KindOpaque:
		return p.external(s.OpaqueName())
	}
	p.typing["Any"] = struct{}{}
	return "Any"
}

func (p *pyEmitter) external(typeName string) string {
	ext := parseExternal(typeName)
	if ext.module == "" {
		return ext.name
	}
	switch p.opts.ImportStyle {
	case ImportQualified:
		p.modules[ext.module] = struct{}{}
		return ext.module + "." + ext.name
	case ImportAdd:
		if p.from[ext.module] == nil {
			p.from[ext.module] = make(map[string]struct{})
		}
		p.from[ext.module][ext.name] = struct{}{}
	}
	return ext.name
}

func isPyIdent(s string) bool {
	if s == "" {
		return false
	}
	if _, kw := pyKeywords[s]; kw {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
