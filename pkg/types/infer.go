package types

import "github.com/usestring/shapegen/pkg/inference"

// InferOutput is the output type for the shapegen_infer tool.
type InferOutput struct {
	// ShapeID names the cached shape for shapegen_codegen and
	// shapegen_validate.
	ShapeID string `json:"shape_id"`
	Name    string `json:"name"`
	// Description is the shape in the compact description language, e.g.
	// "{id: integer, tags?: ?[]string}".
	Description string `json:"description"`
	// Shape is the shape as a JSON tree.
	Shape   any                   `json:"shape"`
	Samples int                   `json:"samples"`
	Stats   []inference.FieldStat `json:"stats,omitempty"`

	Resource *ResourceRef `json:"resource,omitempty"`
	Hint     string       `json:"hint,omitempty"`
}

// CodegenOutput is the output type for the shapegen_codegen tool.
type CodegenOutput struct {
	ShapeID    string `json:"shape_id,omitempty"`
	OutputMode string `json:"output_mode"`
	Code       string `json:"code"`
}

// CaseOutput is the output type for the shapegen_case tool.
type CaseOutput struct {
	Results []CaseResult `json:"results,omitzero"`
}

// CaseResult holds the converted forms of one input name.
type CaseResult struct {
	Input string `json:"input"`
	// Forms maps a transform name such as "snake_case" to the result.
	Forms map[string]string `json:"forms"`
	// TypeName is the identifier a generated type would get for a field
	// with this key.
	TypeName string `json:"type_name"`
	Singular string `json:"singular"`
}
