package shape

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders s in the description language accepted by Parse:
//
//	null bool integer float string any unknown
//	?T  []T  map<T>  opaque<Type>  {key: T, other?: T}
//
// A "?" after a record key marks the field as not required. Rename metadata
// is not part of the description.
func (s Shape) String() string {
	var b strings.Builder
	s.describe(&b)
	return b.String()
}

func (s Shape) describe(b *strings.Builder) {
	switch s.kind {
	case KindOptional:
		b.WriteByte('?')
		s.elem.describe(b)
	case KindArray:
		b.WriteString("[]")
		s.elem.describe(b)
	case KindMap:
		b.WriteString("map<")
		s.elem.describe(b)
		b.WriteByte('>')
	case KindOpaque:
		b.WriteString("opaque<")
		b.WriteString(s.opaque)
		b.WriteByte('>')
	case KindRecord:
		b.WriteByte('{')
		first := true
		s.Fields(func(key string, f Field) bool {
			if !first {
				b.WriteString(", ")
			}
			first = false
			if isBareKey(key) {
				b.WriteString(key)
			} else {
				b.WriteString(strconv.Quote(key))
			}
			if !f.Required {
				b.WriteByte('?')
			}
			b.WriteString(": ")
			f.Shape.describe(b)
			return true
		})
		b.WriteByte('}')
	default:
		b.WriteString(s.kind.String())
	}
}

func isBareKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		if !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

var leafByName = map[string]Kind{
	"unknown": KindUnknown,
	"null":    KindNull,
	"bool":    KindBool,
	"boolean": KindBool,
	"integer": KindInteger,
	"int":     KindInteger,
	"float":   KindFloat,
	"number":  KindFloat,
	"string":  KindString,
	"str":     KindString,
	"any":     KindAny,
}

// Parse reads a shape description such as "[]{id: integer, tags?: []string}".
func Parse(desc string) (Shape, error) {
	p := &parser{src: desc}
	s, err := p.shape()
	if err != nil {
		return Shape{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return Shape{}, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return s, nil
}

// MustParse is Parse for descriptions known to be valid.
func MustParse(desc string) Shape {
	s, err := Parse(desc)
	if err != nil {
		panic(err)
	}
	return s
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("shape description at offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && strings.IndexByte(" \t\r\n", p.src[p.pos]) >= 0 {
		p.pos++
	}
}

func (p *parser) consume(prefix string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], prefix) {
		p.pos += len(prefix)
		return true
	}
	return false
}

func (p *parser) shape() (Shape, error) {
	switch {
	case p.consume("?"):
		inner, err := p.shape()
		if err != nil {
			return Shape{}, err
		}
		return OptionalOf(inner), nil
	case p.consume("[]"):
		elem, err := p.shape()
		if err != nil {
			return Shape{}, err
		}
		return ArrayOf(elem), nil
	case p.consume("{"):
		return p.record()
	}

	word := p.word()
	switch word {
	case "map":
		if !p.consume("<") {
			return Shape{}, p.errorf("expected < after map")
		}
		value, err := p.shape()
		if err != nil {
			return Shape{}, err
		}
		if !p.consume(">") {
			return Shape{}, p.errorf("expected > closing map")
		}
		return MapOf(value), nil
	case "opaque":
		if !p.consume("<") {
			return Shape{}, p.errorf("expected < after opaque")
		}
		end := strings.IndexByte(p.src[p.pos:], '>')
		if end < 0 {
			return Shape{}, p.errorf("expected > closing opaque")
		}
		name := strings.TrimSpace(p.src[p.pos : p.pos+end])
		p.pos += end + 1
		return Opaque(name), nil
	case "":
		return Shape{}, p.errorf("expected a shape")
	}

	kind, ok := leafByName[word]
	if !ok {
		return Shape{}, p.errorf("unknown shape %q", word)
	}
	return Shape{kind: kind}, nil
}

func (p *parser) word() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isBareKey(p.src[p.pos:p.pos+1]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) record() (Shape, error) {
	var fields []NamedField
	for {
		if p.consume("}") {
			return Record(fields...), nil
		}
		key, err := p.key()
		if err != nil {
			return Shape{}, err
		}
		required := !p.consume("?")
		if !p.consume(":") {
			return Shape{}, p.errorf("expected : after key %q", key)
		}
		s, err := p.shape()
		if err != nil {
			return Shape{}, err
		}
		fields = append(fields, NamedField{Key: key, Field: Field{Shape: s, Required: required}})

		if !p.consume(",") {
			if !p.consume("}") {
				return Shape{}, p.errorf("expected , or } in record")
			}
			return Record(fields...), nil
		}
	}
}

func (p *parser) key() (string, error) {
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '"' {
		quoted, err := strconv.QuotedPrefix(p.src[p.pos:])
		if err != nil {
			return "", p.errorf("bad quoted key: %v", err)
		}
		p.pos += len(quoted)
		return strconv.Unquote(quoted)
	}
	if key := p.word(); key != "" {
		return key, nil
	}
	return "", p.errorf("expected a record key")
}
