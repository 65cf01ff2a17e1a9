package codegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/usestring/shapegen/pkg/hints"
	"github.com/usestring/shapegen/pkg/shape"
)

const tsIndent = "    "

type tsEmitter struct {
	ds      *declSet
	opts    Options
	imports map[string]map[string]struct{}
}

func emitTypeScript(ds *declSet, opts Options, typeAlias bool) string {
	t := &tsEmitter{ds: ds, opts: opts, imports: make(map[string]map[string]struct{})}

	var body strings.Builder
	for i, d := range ds.decls {
		if i > 0 {
			body.WriteString("\n")
		}
		switch {
		case d.alias:
			fmt.Fprintf(&body, "export type %s = %s;\n", d.name, t.typeRef(d.path, d.shape))
		case typeAlias:
			fmt.Fprintf(&body, "export type %s = {\n", d.name)
			t.writeFields(&body, d)
			body.WriteString("};\n")
		default:
			fmt.Fprintf(&body, "export interface %s {\n", d.name)
			t.writeFields(&body, d)
			body.WriteString("}\n")
		}
	}

	if len(t.imports) == 0 {
		return body.String()
	}
	var out strings.Builder
	for _, module := range sortedKeys(t.imports) {
		names := sortedKeys(t.imports[module])
		fmt.Fprintf(&out, "import { %s } from %s;\n", strings.Join(names, ", "), strconv.Quote(module))
	}
	out.WriteString("\n")
	out.WriteString(body.String())
	return out.String()
}

func (t *tsEmitter) writeFields(b *strings.Builder, d decl) {
	names := t.opts.propertyNames(d.shape)
	d.shape.Fields(func(key string, f shape.Field) bool {
		path := d.path.Field(key)
		name := names[key]
		if !isTSIdent(name) {
			name = strconv.Quote(name)
		}

		switch {
		case f.Required:
			fmt.Fprintf(b, "%s%s: %s;\n", tsIndent, name, t.typeRef(path, f.Shape))
		case t.opts.UseDefaultForMissingFields:
			base, _ := peel(f.Shape)
			fmt.Fprintf(b, "%s%s: %s;\n", tsIndent, name, t.baseRef(path, base))
		default:
			base, _ := peel(f.Shape)
			fmt.Fprintf(b, "%s%s?: %s;\n", tsIndent, name, t.baseRef(path, base))
		}
		return true
	})
	if t.opts.CollectAdditional {
		b.WriteString(tsIndent + "[key: string]: unknown;\n")
	}
}

func (t *tsEmitter) typeRef(path hints.Path, s shape.Shape) string {
	base, nullable := peel(s)
	ref := t.baseRef(path, base)
	if nullable && base.Kind() != shape.KindAny {
		return ref + " | null"
	}
	return ref
}

func (t *tsEmitter) baseRef(path hints.Path, s shape.Shape) string {
	switch s.Kind() {
	case shape.KindBool:
		return "boolean"
	case shape.KindInteger, shape.KindFloat:
		return "number"
	case shape.KindString:
		return "string"
	case shape.KindArray:
		elem := t.typeRef(path.Elem(), s.Elem())
		if strings.Contains(elem, " | ") {
			return "(" + elem + ")[]"
		}
		return elem + "[]"
	case shape.KindMap:
		return "{ [key: string]: " + t.typeRef(path.Elem(), s.Elem()) + " }"
	case shape.KindRecord:
		return t.ds.typeName(path)
	case shape.KindOpaque:
		return t.external(s.OpaqueName())
	}
	return "any"
}

func (t *tsEmitter) external(typeName string) string {
	ext := parseExternal(typeName)
	if ext.module == "" {
		return ext.name
	}
	switch t.opts.ImportStyle {
	case ImportQualified:
		return "import(" + strconv.Quote(ext.module) + ")." + ext.name
	case ImportAdd:
		if t.imports[ext.module] == nil {
			t.imports[ext.module] = make(map[string]struct{})
		}
		t.imports[ext.module][ext.name] = struct{}{}
	}
	return ext.name
}

func isTSIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_' || c == '$', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
