package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/usestring/shapegen/pkg/hints"
	"github.com/usestring/shapegen/pkg/naming"
	"github.com/usestring/shapegen/pkg/shape"
	"github.com/usestring/shapegen/pkg/wordcase"
)

var goFileTemplate = template.Must(template.New("go").Parse(`package {{.Package}}
{{if .Imports}}
import (
{{range .Imports}}	"{{.}}"
{{end}})
{{end}}
{{.Body}}`))

type goFile struct {
	Package string
	Imports []string
	Body    string
}

type goEmitter struct {
	ds      *declSet
	opts    Options
	imports map[string]struct{}
}

func emitGo(ds *declSet, opts Options) (string, error) {
	g := &goEmitter{ds: ds, opts: opts, imports: make(map[string]struct{})}

	var body strings.Builder
	for i, d := range ds.decls {
		if i > 0 {
			body.WriteString("\n")
		}
		if d.alias {
			base, _ := peel(d.shape)
			fmt.Fprintf(&body, "type %s %s\n", d.name, g.baseRef(d.path, base))
			continue
		}
		g.writeStruct(&body, d)
	}

	file := goFile{Package: opts.GoPackage, Imports: sortedKeys(g.imports), Body: body.String()}

	var buf bytes.Buffer
	if err := goFileTemplate.Execute(&buf, file); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("formatting code: %w", err)
	}
	return string(formatted), nil
}

func (g *goEmitter) writeStruct(b *strings.Builder, d decl) {
	fmt.Fprintf(b, "type %s struct {\n", d.name)
	idents := naming.NewNamer()
	d.shape.Fields(func(key string, f shape.Field) bool {
		path := d.path.Field(key)
		typ := g.typeRef(path, f.Shape)
		if !f.Required {
			base, _ := peel(f.Shape)
			typ = g.baseRef(path, base)
			if !g.opts.UseDefaultForMissingFields && pointerable(base.Kind()) {
				typ = "*" + typ
			}
		}
		fmt.Fprintf(b, "\t%s %s %s\n", idents.Unique(goFieldIdent(key)), typ, goTag(key, !f.Required))
		return true
	})
	b.WriteString("}\n")
}

func (g *goEmitter) typeRef(path hints.Path, s shape.Shape) string {
	base, nullable := peel(s)
	t := g.baseRef(path, base)
	if nullable && pointerable(base.Kind()) {
		return "*" + t
	}
	return t
}

func (g *goEmitter) baseRef(path hints.Path, s shape.Shape) string {
	switch s.Kind() {
	case shape.KindBool:
		return "bool"
	case shape.KindInteger:
		return "int64"
	case shape.KindFloat:
		return "float64"
	case shape.KindString:
		return "string"
	case shape.KindArray:
		return "[]" + g.typeRef(path.Elem(), s.Elem())
	case shape.KindMap:
		return "map[string]" + g.typeRef(path.Elem(), s.Elem())
	case shape.KindRecord:
		return g.ds.typeName(path)
	case shape.KindOpaque:
		return g.external(s.OpaqueName())
	}
	return "any"
}

// external references an opaque type. Go has no import-free qualified
// reference, so qualified_paths imports like add_imports does.
func (g *goEmitter) external(typeName string) string {
	ext := parseExternal(typeName)
	if ext.module == "" {
		return ext.name
	}
	if g.opts.ImportStyle != ImportAssumeExisting {
		g.imports[ext.module] = struct{}{}
	}
	return ext.qualifier() + "." + ext.name
}

// pointerable reports whether nil can only be expressed through a pointer.
func pointerable(k shape.Kind) bool {
	switch k {
	case shape.KindBool, shape.KindInteger, shape.KindFloat, shape.KindString, shape.KindRecord, shape.KindOpaque:
		return true
	}
	return false
}

// goFieldIdent derives an exported field name from a source key.
func goFieldIdent(key string) string {
	ident := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, wordcase.TypeCase(key))
	if ident == "" {
		return "Field"
	}
	if first := []rune(ident)[0]; !unicode.IsUpper(first) {
		return "F" + ident
	}
	return ident
}

func goTag(key string, omitempty bool) string {
	value := key
	if omitempty {
		value += ",omitempty"
	}
	tag := "json:" + strconv.Quote(value)
	if strings.ContainsRune(tag, '`') {
		return strconv.Quote(tag)
	}
	return "`" + tag + "`"
}
