package hints

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"
)

// FileHint is one entry of a hint file.
type FileHint struct {
	Path       string `json:"path,omitempty"`
	UseType    string `json:"use_type,omitempty"`
	TypeName   string `json:"type_name,omitempty"`
	OpaqueType string `json:"opaque_type,omitempty"`
}

// Pairs converts the entry into directives bound to its path. use_type is
// "map", "opt" or a shape description.
func (h FileHint) Pairs() ([]Pair, error) {
	path := ParsePath(h.Path)
	var pairs []Pair
	switch h.UseType {
	case "":
	case "map":
		pairs = append(pairs, Pair{Path: path, Directive: UseMap()})
	case "opt", "optional":
		pairs = append(pairs, Pair{Path: path, Directive: ForceOptional()})
	default:
		d, err := ForceDescription(h.UseType)
		if err != nil {
			return nil, fmt.Errorf("hint %q: %w", h.Path, err)
		}
		pairs = append(pairs, Pair{Path: path, Directive: d})
	}
	if h.OpaqueType != "" {
		pairs = append(pairs, Pair{Path: path, Directive: MarkOpaque(h.OpaqueType)})
	}
	if h.TypeName != "" {
		pairs = append(pairs, Pair{Path: path, Directive: Rename(h.TypeName)})
	}
	return pairs, nil
}

// ParseFile decodes a hint file. Two layouts are accepted: an array of
// entries carrying their own "path", or an object keyed by path whose
// values are entries. Object keys keep their written order.
func ParseFile(data []byte) ([]Pair, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var entries []FileHint
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("decoding hint file: %w", err)
		}
	case '{':
		err := jsonparser.ObjectEach(trimmed, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
			path := string(key)
			if dataType != jsonparser.Object {
				return fmt.Errorf("hint %q: expected an object, got %s", path, dataType)
			}
			var h FileHint
			if err := json.Unmarshal(value, &h); err != nil {
				return fmt.Errorf("hint %q: %w", path, err)
			}
			h.Path = path
			entries = append(entries, h)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("decoding hint file: %w", err)
		}
	default:
		return nil, fmt.Errorf("decoding hint file: expected a JSON array or object")
	}

	var pairs []Pair
	for _, h := range entries {
		p, err := h.Pairs()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p...)
	}
	return pairs, nil
}
