package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/shapegen/pkg/inference"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate_stdin(t *testing.T) {
	out, err := run(t, `{"id": 1, "name": "x"}`, "--name", "User", "--mode", "typescript")
	require.NoError(t, err)
	assert.Equal(t, "export interface User {\n    id: number;\n    name: string;\n}\n", out)
}

func TestGenerate_files(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"id": 1}`)
	b := writeFile(t, dir, "b.json", `{"id": 2, "note": "n"}`)

	out, err := run(t, "", "--package", "api", "--name", "Event", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "package api")
	assert.Contains(t, out, "type Event struct")
	assert.Contains(t, out, `json:"note,omitempty"`)
}

func TestGenerate_yamlByExtension(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.yaml", "port: 8080\nhosts:\n  - a\n")

	out, err := run(t, "", "--mode", "python", "--name", "Config", p)
	require.NoError(t, err)
	assert.Contains(t, out, "class Config(TypedDict):")
	assert.Contains(t, out, "port: int")
	assert.Contains(t, out, "hosts: list[str]")
}

func TestGenerate_hintsAndUnwrap(t *testing.T) {
	dir := t.TempDir()
	hintsPath := writeFile(t, dir, "hints.json", `{"/scores": {"use_type": "map"}}`)

	out, err := run(t, `{"data": [{"scores": {"a": 1}}, {"scores": {"b": 2.5}}]}`,
		"--hints", hintsPath, "--unwrap", "/data/-", "--mode", "json_schema", "--name", "Row")
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "Row"`)
	assert.Contains(t, out, `"additionalProperties": {`)
	assert.Contains(t, out, `"type": "number"`)
}

func TestGenerate_errors(t *testing.T) {
	dir := t.TempDir()
	j := writeFile(t, dir, "a.json", `{}`)
	y := writeFile(t, dir, "b.yml", `a: 1`)

	tests := []struct {
		name string
		args []string
		in   string
		want string
	}{
		{"bad mode", []string{"--mode", "cobol"}, "{}", "unknown output mode"},
		{"bad property format", []string{"--property-format", "Title Case"}, "{}", ""},
		{"bad import style", []string{"--import-style", "vendor"}, "{}", "unknown import style"},
		{"mixed formats", []string{j, y}, "", "mix"},
		{"missing file", []string{filepath.Join(dir, "nope.json")}, "", "reading"},
		{"missing hints", []string{"--hints", filepath.Join(dir, "nope.json")}, "{}", "reading hints"},
		{"malformed", nil, `{"a": }`, "parse error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.in, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGenerate_parseErrorIsTyped(t *testing.T) {
	_, err := run(t, `[1, 2,`)
	assert.ErrorIs(t, err, inference.ErrParse)
}

func TestShapeCmd(t *testing.T) {
	out, err := run(t, `{"a": 1} {"a": null, "b": "x"}`, "shape")
	require.NoError(t, err)
	assert.Equal(t, "{a: ?integer, b?: ?string}\n", out)

	out, err = run(t, `{"kind": "a"} {"kind": "b"}`, "shape", "--stats")
	require.NoError(t, err)
	assert.Contains(t, out, "2 samples")
	assert.Contains(t, out, "PATH")
	assert.Contains(t, out, "/kind")

	out, err = run(t, `{"a": true}`, "shape", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"description": "{a: bool}"`)
	assert.Contains(t, out, `"samples": 1`)
}

func TestCheckCmd(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.json", `{"id": 1, "name": "a"}`)
	good := writeFile(t, dir, "good.json", `{"id": 2, "name": "b"} {"id": 3, "name": "c"}`)
	bad := writeFile(t, dir, "bad.json", `{"id": "x", "name": "b"}`)

	out, err := run(t, "", "check", "--samples", ref, good)
	require.NoError(t, err)
	assert.Equal(t, "all 2 documents match\n", out)

	out, err = run(t, "", "check", "--samples", ref, good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 documents do not match")
	assert.Contains(t, out, "bad.json#0: ")

	_, err = run(t, "", "check", good)
	assert.ErrorContains(t, err, "--samples is required")
}

func TestCaseCmd(t *testing.T) {
	out, err := run(t, "", "case", "categoryKeys")
	require.NoError(t, err)
	assert.Contains(t, out, "categoryKeys\n")
	assert.Contains(t, out, "category_keys")
	assert.Contains(t, out, "CATEGORY-KEYS")
	assert.Contains(t, out, "categoryKey")
}

func TestResolveFormat(t *testing.T) {
	f, err := resolveFormat("", []string{"-", "a.yml"})
	require.NoError(t, err)
	assert.Equal(t, inference.FormatYAML, f)

	f, err = resolveFormat("", []string{"notes.txt"})
	require.NoError(t, err)
	assert.Equal(t, inference.FormatJSON, f)

	f, err = resolveFormat("yaml", []string{"a.json"})
	require.NoError(t, err)
	assert.Equal(t, inference.FormatYAML, f)
}

func TestReadInputs_limit(t *testing.T) {
	_, err := readInputs(strings.NewReader("12345"), nil, 4)
	assert.ErrorContains(t, err, "exceeds 4 bytes")

	got, err := readInputs(strings.NewReader("1234"), []string{"-"}, 4)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("1234")}, got)
}
