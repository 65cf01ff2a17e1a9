package codegen

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/shapegen/pkg/hints"
	"github.com/usestring/shapegen/pkg/shape"
	"github.com/usestring/shapegen/pkg/wordcase"
)

const helloInput = `{"id": 1, "owner": {"login": "x"}, "cards": [{"rank": 2}]}
{"id": 2, "score": 1.5}`

// squash collapses alignment padding so assertions do not depend on
// gofmt column widths.
func squash(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}

func gen(t *testing.T, name, input string, opts Options) string {
	t.Helper()
	out, err := Codegen(name, []byte(input), opts)
	require.NoError(t, err)
	return out
}

func withMode(mode OutputMode) Options {
	opts := DefaultOptions()
	opts.OutputMode = mode
	return opts
}

func TestCodegen_GoSimple(t *testing.T) {
	out := gen(t, "Hello", `{"a": 1, "b": "2", "c": true}`, DefaultOptions())

	want := "package model\n\n" +
		"type Hello struct {\n" +
		"\tA int64  `json:\"a\"`\n" +
		"\tB string `json:\"b\"`\n" +
		"\tC bool   `json:\"c\"`\n" +
		"}\n"
	assert.Equal(t, want, out)
}

func TestCodegen_GoNested(t *testing.T) {
	out := squash(gen(t, "Hello", helloInput, DefaultOptions()))

	assert.Contains(t, out, "type Hello struct {\n"+
		"Id int64 `json:\"id\"`\n"+
		"Owner *Owner `json:\"owner,omitempty\"`\n"+
		"Cards []Card `json:\"cards,omitempty\"`\n"+
		"Score *float64 `json:\"score,omitempty\"`\n"+
		"}")
	assert.Contains(t, out, "type Owner struct {\nLogin string `json:\"login\"`\n}")
	assert.Contains(t, out, "type Card struct {\nRank int64 `json:\"rank\"`\n}")
	assert.Less(t, strings.Index(out, "type Owner"), strings.Index(out, "type Card"), "declarations follow field order")
}

func TestCodegen_GoOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.GoPackage = "api"
	opts.UseDefaultForMissingFields = true
	out := squash(gen(t, "Hello", helloInput, opts))

	assert.True(t, strings.HasPrefix(out, "package api\n"))
	assert.Contains(t, out, "Owner Owner `json:\"owner,omitempty\"`")
	assert.Contains(t, out, "Score float64 `json:\"score,omitempty\"`")
}

func TestCodegen_GoNullableAndCollections(t *testing.T) {
	dir := []hints.Pair{{Path: "/labels", Directive: hints.UseMap()}}
	opts := DefaultOptions()
	opts.Hints = dir
	out := squash(gen(t, "Doc", `{"a": null, "xs": [1, null], "labels": {"k": "v"}, "raw": []}
{"a": 1, "xs": [], "labels": {}, "raw": []}`, opts))

	assert.Contains(t, out, "A *int64 `json:\"a\"`")
	assert.Contains(t, out, "Xs []*int64 `json:\"xs\"`")
	assert.Contains(t, out, "Labels map[string]string `json:\"labels\"`")
	assert.Contains(t, out, "Raw []any `json:\"raw\"`")
}

func TestCodegen_GoFieldIdentifiers(t *testing.T) {
	out := squash(gen(t, "Doc", `{"a_b": 1, "aB": 2, "$": 3, "1st": 4, "it's": 5}`, DefaultOptions()))

	assert.Contains(t, out, "AB int64 `json:\"a_b\"`")
	assert.Contains(t, out, "AB2 int64 `json:\"aB\"`")
	assert.Contains(t, out, "Field int64 `json:\"$\"`")
	assert.Contains(t, out, "F1st int64 `json:\"1st\"`")
	assert.Contains(t, out, "ItS int64 `json:\"it's\"`")
}

func TestCodegen_GoOpaqueImports(t *testing.T) {
	tests := []struct {
		name       string
		style      ImportStyle
		wantImport bool
	}{
		{"add imports", ImportAdd, true},
		{"qualified paths", ImportQualified, true},
		{"assume existing", ImportAssumeExisting, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.ImportStyle = tt.style
			opts.Hints = []hints.Pair{{Path: "/id", Directive: hints.MarkOpaque("github.com/google/uuid.UUID")}}
			out := squash(gen(t, "Doc", `{"id": "0f8e"}`, opts))

			assert.Contains(t, out, "Id uuid.UUID `json:\"id\"`")
			assert.Equal(t, tt.wantImport, strings.Contains(out, `"github.com/google/uuid"`))
		})
	}
}

func TestCodegen_TypeScript(t *testing.T) {
	out := gen(t, "Hello", helloInput, withMode(OutputTypeScript))

	want := `export interface Hello {
    id: number;
    owner?: Owner;
    cards?: Card[];
    score?: number;
}

export interface Owner {
    login: string;
}

export interface Card {
    rank: number;
}
`
	assert.Equal(t, want, out)
}

func TestCodegen_TypeScriptAlias(t *testing.T) {
	out := gen(t, "Owner", `{"login": "x"}`, withMode(OutputTypeScriptAlias))
	assert.Equal(t, "export type Owner = {\n    login: string;\n};\n", out)
}

func TestCodegen_TypeScriptTypes(t *testing.T) {
	opts := withMode(OutputTypeScript)
	opts.Hints = []hints.Pair{{Path: "/tags", Directive: hints.UseMap()}}
	out := gen(t, "Doc", `{"a": null, "xs": [1, null], "tags": {"k": 1}, "my-key": true, "any": []}
{"a": "s", "xs": [], "tags": {}, "my-key": false, "any": []}`, opts)

	assert.Contains(t, out, "    a: string | null;\n")
	assert.Contains(t, out, "    xs: (number | null)[];\n")
	assert.Contains(t, out, "    tags: { [key: string]: number };\n")
	assert.Contains(t, out, `    "my-key": boolean;`+"\n")
	assert.Contains(t, out, "    any: any[];\n")
}

func TestCodegen_TypeScriptOptions(t *testing.T) {
	opts := withMode(OutputTypeScript)
	opts.PropertyNameFormat = wordcase.Camel
	opts.UseDefaultForMissingFields = true
	out := gen(t, "Doc", `{"user_id": 1}
{"user_id": 2, "display_name": "x"}`, opts)

	assert.Contains(t, out, "    userId: number;\n")
	assert.Contains(t, out, "    displayName: string;\n")
}

func TestCodegen_TypeScriptCollectAdditional(t *testing.T) {
	opts := withMode(OutputTypeScript)
	opts.CollectAdditional = true
	out := gen(t, "Doc", `{"id": 1}`, opts)
	assert.Equal(t, "export interface Doc {\n    id: number;\n    [key: string]: unknown;\n}\n", out)

	opts.OutputMode = OutputGo
	assert.NotContains(t, gen(t, "Doc", `{"id": 1}`, opts), "unknown")
}

func TestCodegen_TypeScriptOpaque(t *testing.T) {
	tests := []struct {
		name  string
		style ImportStyle
		field string
		head  string
	}{
		{"add imports", ImportAdd, "at: Instant;", `import { Instant } from "./dates";`},
		{"qualified paths", ImportQualified, `at: import("./dates").Instant;`, "export interface"},
		{"assume existing", ImportAssumeExisting, "at: Instant;", "export interface"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := withMode(OutputTypeScript)
			opts.ImportStyle = tt.style
			opts.Hints = []hints.Pair{{Path: "/at", Directive: hints.MarkOpaque("./dates.Instant")}}
			out := gen(t, "Doc", `{"at": "2024-01-01"}`, opts)

			assert.Contains(t, out, tt.field)
			assert.True(t, strings.HasPrefix(out, tt.head), out)
		})
	}
}

func TestCodegen_Python(t *testing.T) {
	out := gen(t, "Hello", helloInput, withMode(OutputPython))

	want := `from typing import NotRequired, TypedDict


class Card(TypedDict):
    rank: int


class Owner(TypedDict):
    login: str


class Hello(TypedDict):
    id: int
    owner: NotRequired[Owner]
    cards: NotRequired[list[Card]]
    score: NotRequired[float]
`
	assert.Equal(t, want, out)
}

func TestCodegen_PythonOptionalImport(t *testing.T) {
	out := gen(t, "Doc", `{"a": 1, "b": "x", "c": "y"}
{"a": 2, "b": null, "c": null}
{"a": 3, "c": "z"}`, withMode(OutputPython))

	want := `from typing import NotRequired, Optional, TypedDict


class Doc(TypedDict):
    a: int
    b: NotRequired[str]
    c: Optional[str]
`
	assert.Equal(t, want, out)

	out = gen(t, "Doc", `{"a": 1, "b": "x"} {"a": 2, "b": null} {"a": 3}`, withMode(OutputPython))
	assert.NotContains(t, out, "Optional")
	assert.Contains(t, out, "    b: NotRequired[str]\n")
}

func TestCodegen_PropertyNameCollision(t *testing.T) {
	input := `{"foo_bar": 1, "fooBar": "x"}`
	tests := []struct {
		name string
		mode OutputMode
		want []string
	}{
		{"typescript", OutputTypeScript, []string{"    foo_bar: number;\n", "    foo_bar2: string;\n"}},
		{"python", OutputPython, []string{"    foo_bar: int\n", "    foo_bar2: str\n"}},
		{"json schema", OutputJSONSchema, []string{`"foo_bar": {`, `"foo_bar2": {`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := withMode(tt.mode)
			opts.PropertyNameFormat = wordcase.Snake
			out := gen(t, "Doc", input, opts)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestCodegen_PythonFunctionalForm(t *testing.T) {
	out := gen(t, "Doc", `{"my-key": 1, "class": null, "tags": {}}`, withMode(OutputPython))

	assert.Contains(t, out, "from typing import Any, TypedDict\n")
	assert.Contains(t, out, `Doc = TypedDict("Doc", {
    "my-key": int,
    "class": Any,
    "tags": Tags,
})`)
	assert.Contains(t, out, "class Tags(TypedDict):\n    pass\n")
}

func TestCodegen_PythonOpaque(t *testing.T) {
	opts := withMode(OutputPython)
	opts.Hints = []hints.Pair{{Path: "/at", Directive: hints.MarkOpaque("datetime.datetime")}}

	out := gen(t, "Doc", `{"at": "2024-01-01"}`, opts)
	assert.Contains(t, out, "from datetime import datetime\n")
	assert.Contains(t, out, "    at: datetime\n")

	opts.ImportStyle = ImportQualified
	out = gen(t, "Doc", `{"at": "2024-01-01"}`, opts)
	assert.Contains(t, out, "import datetime\n")
	assert.Contains(t, out, "    at: datetime.datetime\n")
}

func TestCodegen_RootCollection(t *testing.T) {
	input := `[{"rank": 1}, {"rank": 2, "suit": "h"}]`

	tests := []struct {
		name string
		mode OutputMode
		root string
		want []string
	}{
		{"go", OutputGo, "Cards", []string{"type Cards []Card", "type Card struct {"}},
		{"typescript", OutputTypeScript, "Cards", []string{"export type Cards = Card[];", "export interface Card {"}},
		{"python", OutputPython, "Cards", []string{"Cards = list[Card]", "class Card(TypedDict):"}},
		{"default name", OutputTypeScript, "", []string{"export type Root = RootItem[];", "export interface RootItem {"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := squash(gen(t, tt.root, input, withMode(tt.mode)))
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestCodegen_RootLeaf(t *testing.T) {
	assert.Equal(t, "export type Root = number;\n", gen(t, "", `1 2.5`, withMode(OutputTypeScript)))
	assert.Equal(t, "from typing import Optional\n\n\nRoot = Optional[str]\n", gen(t, "", `"a" null`, withMode(OutputPython)))
	assert.Equal(t, "package model\n\ntype Root string\n", gen(t, "", `"a"`, DefaultOptions()))
}

func TestCodegen_TypeNames(t *testing.T) {
	opts := withMode(OutputTypeScript)
	opts.Hints = []hints.Pair{{Path: "/owner", Directive: hints.Rename("account")}}
	out := gen(t, "Doc", `{"owner": {"id": 1}, "a": {"item": {"x": 1}}, "b": {"item": {"y": 1}}}`, opts)

	assert.Contains(t, out, "    owner: Account;\n")
	assert.Contains(t, out, "export interface Account {")
	assert.Contains(t, out, "export interface Item {\n    x: number;\n}")
	assert.Contains(t, out, "export interface Item2 {\n    y: number;\n}")
}

func TestCodegen_JSONSchema(t *testing.T) {
	opts := withMode(OutputJSONSchema)
	opts.DenyUnknownFields = true
	out := gen(t, "Hello", `{"user_id": 1}`, opts)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, "Hello", schema["title"])
	assert.Equal(t, false, schema["additionalProperties"])
	assert.Contains(t, schema["properties"], "user_id")
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestCodegen_VisibilityPrefix(t *testing.T) {
	for _, name := range []string{"pub Hello", "pub(crate) Hello", "export Hello", "Hello"} {
		out := gen(t, name, `{"a": 1}`, withMode(OutputTypeScript))
		assert.True(t, strings.HasPrefix(out, "export interface Hello {"), name)
	}
}

func TestCodegen_TrailingNewline(t *testing.T) {
	for _, mode := range OutputModes {
		out := gen(t, "Doc", `{"a": 1}`, withMode(mode))
		assert.True(t, strings.HasSuffix(out, "\n"), mode)
		assert.False(t, strings.HasSuffix(out, "\n\n"), mode)
	}
}

func TestCodegen_Errors(t *testing.T) {
	_, err := Codegen("Doc", []byte(`{"a": `), DefaultOptions())
	require.Error(t, err)

	_, err = Codegen("Doc", []byte(`{}`), withMode("rust"))
	assert.ErrorContains(t, err, "unknown output mode")

	opts := DefaultOptions()
	opts.ImportStyle = "vendored"
	_, err = Codegen("Doc", []byte(`{}`), opts)
	assert.ErrorContains(t, err, "unknown import style")
}

func TestCodegenFromShape(t *testing.T) {
	s := shape.MustParse("{when: opaque<time.Time>, n?: ?integer}")
	out, err := CodegenFromShape("Event", s, DefaultOptions())
	require.NoError(t, err)

	out = squash(out)
	assert.Contains(t, out, "import (\n\"time\"\n)")
	assert.Contains(t, out, "When time.Time `json:\"when\"`")
	assert.Contains(t, out, "N *int64 `json:\"n,omitempty\"`")
}

func TestParseOutputMode(t *testing.T) {
	tests := map[string]OutputMode{
		"go":               OutputGo,
		"typescript-iface": OutputTypeScript,
		"typescript-types": OutputTypeScriptAlias,
		"schema":           OutputJSONSchema,
		"python":           OutputPython,
	}
	for in, want := range tests {
		got, err := ParseOutputMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
}
