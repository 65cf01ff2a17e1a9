package shape

import "encoding/json"

// Tree returns s as nested maps and slices suitable for JSON encoding:
//
//	{"kind": "record", "name": "...", "fields": [{"key": "id", "required": true, "shape": {...}}]}
//
// Optional, array and map shapes carry their inner shape under "elem".
func (s Shape) Tree() map[string]any {
	node := map[string]any{"kind": s.kind.String()}
	if s.name != "" {
		node["name"] = s.name
	}
	switch s.kind {
	case KindOptional, KindArray, KindMap:
		node["elem"] = s.elem.Tree()
	case KindOpaque:
		node["type"] = s.opaque
	case KindRecord:
		fields := make([]any, 0, s.Len())
		s.Fields(func(key string, f Field) bool {
			fields = append(fields, map[string]any{
				"key":      key,
				"required": f.Required,
				"shape":    f.Shape.Tree(),
			})
			return true
		})
		node["fields"] = fields
	}
	return node
}

// MarshalJSON encodes the Tree form of s.
func (s Shape) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Tree())
}
