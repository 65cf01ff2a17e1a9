package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/buger/jsonparser"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// DecodeError reports malformed input. Document is the zero-based index of
// the document within the input and Offset the byte offset of the failure,
// or -1 when the decoder reports positions by line only.
type DecodeError struct {
	Document int
	Offset   int64
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("document %d: %v", e.Document, e.Err)
	}
	return fmt.Sprintf("document %d at offset %d: %v", e.Document, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeJSON parses a stream of concatenated or whitespace-separated JSON
// documents. Object member order is kept as written.
func DecodeJSON(data []byte) ([]Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var docs []Value
	for {
		var raw json.RawMessage
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			offset := dec.InputOffset()
			var syntax *json.SyntaxError
			if errors.As(err, &syntax) {
				offset = syntax.Offset
			}
			return nil, &DecodeError{Document: len(docs), Offset: offset, Err: err}
		}

		start := dec.InputOffset() - int64(len(raw))
		v, err := parseJSON(raw)
		if err != nil {
			return nil, &DecodeError{Document: len(docs), Offset: start, Err: err}
		}
		docs = append(docs, v)
	}
}

// parseJSON walks one well-formed document. The document has already been
// validated by encoding/json; jsonparser supplies the ordered walk.
func parseJSON(raw []byte) (Value, error) {
	data, dataType, _, err := jsonparser.Get(raw)
	if err != nil {
		return Value{}, err
	}
	return fromJSON(data, dataType)
}

func fromJSON(data []byte, dataType jsonparser.ValueType) (Value, error) {
	switch dataType {
	case jsonparser.Null:
		return Null(), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case jsonparser.Number:
		return NumberOf(ParseNumber(string(data))), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case jsonparser.Array:
		elems := []Value{}
		var walkErr error
		_, err := jsonparser.ArrayEach(data, func(elem []byte, elemType jsonparser.ValueType, _ int, err error) {
			if walkErr != nil {
				return
			}
			if err != nil {
				walkErr = err
				return
			}
			v, err := fromJSON(elem, elemType)
			if err != nil {
				walkErr = err
				return
			}
			elems = append(elems, v)
		})
		if err == nil {
			err = walkErr
		}
		if err != nil {
			return Value{}, err
		}
		return Array(elems...), nil
	case jsonparser.Object:
		om := orderedmap.New[string, Value]()
		err := jsonparser.ObjectEach(data, func(key, member []byte, memberType jsonparser.ValueType, _ int) error {
			v, err := fromJSON(member, memberType)
			if err != nil {
				return err
			}
			om.Set(string(key), v)
			return nil
		})
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindObject, object: om}, nil
	}
	return Value{}, fmt.Errorf("unexpected JSON value type %s", dataType)
}

// maxAliasDepth bounds alias expansion to reject alias bombs.
const maxAliasDepth = 64

// DecodeYAML parses a stream of YAML documents. Mapping order is kept as
// written; non-string keys are rendered with their scalar text.
func DecodeYAML(data []byte) ([]Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var docs []Value
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, &DecodeError{Document: len(docs), Offset: -1, Err: err}
		}
		v, err := fromYAML(&node, 0)
		if err != nil {
			return nil, &DecodeError{Document: len(docs), Offset: -1, Err: err}
		}
		docs = append(docs, v)
	}
}

func fromYAML(n *yaml.Node, depth int) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return fromYAML(n.Content[0], depth)
	case yaml.AliasNode:
		if depth >= maxAliasDepth {
			return Value{}, fmt.Errorf("line %d: alias nesting exceeds %d", n.Line, maxAliasDepth)
		}
		return fromYAML(n.Alias, depth+1)
	case yaml.SequenceNode:
		elems := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromYAML(c, depth)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, v)
		}
		return Array(elems...), nil
	case yaml.MappingNode:
		om := orderedmap.New[string, Value]()
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := fromYAML(n.Content[i+1], depth)
			if err != nil {
				return Value{}, err
			}
			om.Set(n.Content[i].Value, v)
		}
		return Value{kind: KindObject, object: om}, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return Value{}, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

func yamlScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return NumberOf(Number{Literal: fmt.Sprint(u), IsInt: true, Float: float64(u)}), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return NumberOf(Number{Literal: n.Value, Float: f}), nil
	}
	return String(n.Value), nil
}
