package codegen

import (
	"fmt"

	"github.com/usestring/shapegen/pkg/hints"
	"github.com/usestring/shapegen/pkg/inference"
	"github.com/usestring/shapegen/pkg/naming"
	"github.com/usestring/shapegen/pkg/shape"
	"github.com/usestring/shapegen/pkg/wordcase"
)

// OutputMode selects the target language.
type OutputMode string

const (
	OutputGo              OutputMode = "go"
	OutputTypeScript      OutputMode = "typescript"
	OutputTypeScriptAlias OutputMode = "typescript/typealias"
	OutputPython          OutputMode = "python"
	OutputJSONSchema      OutputMode = "json_schema"
)

// OutputModes lists the canonical mode names.
var OutputModes = []OutputMode{OutputGo, OutputTypeScript, OutputTypeScriptAlias, OutputPython, OutputJSONSchema}

// ParseOutputMode accepts the canonical names and the spellings used by
// other typegen front ends.
func ParseOutputMode(s string) (OutputMode, error) {
	switch s {
	case "go", "golang":
		return OutputGo, nil
	case "typescript", "typescript-iface", "ts":
		return OutputTypeScript, nil
	case "typescript/typealias", "typescript-types":
		return OutputTypeScriptAlias, nil
	case "python", "py":
		return OutputPython, nil
	case "json_schema", "jsonschema", "schema":
		return OutputJSONSchema, nil
	}
	return "", fmt.Errorf("unknown output mode %q (valid: %v)", s, OutputModes)
}

// ImportStyle decides how references to opaque external types are written.
type ImportStyle string

const (
	// ImportAdd adds import statements for external types.
	ImportAdd ImportStyle = "add_imports"
	// ImportAssumeExisting references external types by bare name.
	ImportAssumeExisting ImportStyle = "assume_existing"
	// ImportQualified references external types by qualified path.
	ImportQualified ImportStyle = "qualified_paths"
)

// ParseImportStyle accepts add_imports, assume_existing or qualified_paths.
func ParseImportStyle(s string) (ImportStyle, error) {
	switch ImportStyle(s) {
	case ImportAdd, ImportAssumeExisting, ImportQualified:
		return ImportStyle(s), nil
	}
	return "", fmt.Errorf("unknown import style %q (valid: add_imports, assume_existing, qualified_paths)", s)
}

// Options configure code generation.
type Options struct {
	OutputMode OutputMode
	// PropertyNameFormat renames properties in targets whose property names
	// are the wire names (TypeScript, Python, JSON Schema). Zero keeps keys
	// as they are. Go always tags fields with the source key.
	PropertyNameFormat wordcase.Transform
	ImportStyle        ImportStyle
	// DenyUnknownFields closes JSON Schema records.
	DenyUnknownFields bool
	// UseDefaultForMissingFields renders fields that are not always present
	// as their plain type instead of an optional one.
	UseDefaultForMissingFields bool
	// GoPackage is the package clause of Go output.
	GoPackage string
	// CollectAdditional gives TypeScript records an index signature for
	// properties no sample had. Go and Python output ignore it.
	CollectAdditional bool

	// The remaining options only apply to Codegen.
	Hints  []hints.Pair
	Unwrap string
	Select string
	Format inference.Format
}

// DefaultOptions returns Go output into package model.
func DefaultOptions() Options {
	return Options{
		OutputMode:  OutputGo,
		ImportStyle: ImportAdd,
		GoPackage:   "model",
	}
}

func (o Options) withDefaults() (Options, error) {
	if o.OutputMode == "" {
		o.OutputMode = OutputGo
	}
	mode, err := ParseOutputMode(string(o.OutputMode))
	if err != nil {
		return o, err
	}
	o.OutputMode = mode

	if o.ImportStyle == "" {
		o.ImportStyle = ImportAdd
	}
	if _, err := ParseImportStyle(string(o.ImportStyle)); err != nil {
		return o, err
	}
	if o.GoPackage == "" {
		o.GoPackage = "model"
	}
	return o, nil
}

func (o Options) propertyName(key string) string {
	if o.PropertyNameFormat == 0 {
		return key
	}
	return o.PropertyNameFormat.Apply(key)
}

// propertyNames maps the keys of record s to property names. Keys that
// collide once renamed get numeric suffixes in field order.
func (o Options) propertyNames(s shape.Shape) map[string]string {
	names := make(map[string]string, s.Len())
	if o.PropertyNameFormat == 0 {
		for _, key := range s.Keys() {
			names[key] = key
		}
		return names
	}
	namer := naming.NewNamer()
	for _, key := range s.Keys() {
		names[key] = namer.Unique(o.propertyName(key))
	}
	return names
}
