package inference

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/shapegen/pkg/hints"
	"github.com/usestring/shapegen/pkg/shape"
	"github.com/usestring/shapegen/pkg/value"
)

func TestInferSamples_FieldOrderAndWidening(t *testing.T) {
	got, err := InferSamples([][]byte{
		[]byte(`{"a": 1, "b": "x"}`),
		[]byte(`{"a": 2.5, "c": true}`),
	}, nil)
	require.NoError(t, err)

	require.Equal(t, shape.KindRecord, got.Kind())
	assert.Equal(t, []string{"a", "b", "c"}, got.Keys())
	assert.Equal(t, "{a: float, b?: ?string, c?: ?bool}", got.String())

	a, _ := got.Field("a")
	assert.True(t, a.Required)
}

func TestInfer_ForcedHint(t *testing.T) {
	dir := hints.New(hints.Pair{Path: "/a", Directive: hints.Force(shape.StringT())})

	got, err := Infer([]byte(`{"a": 1}`), dir)
	require.NoError(t, err)
	assert.Equal(t, "{a: string}", got.String())
}

func TestInfer_ForcedHintMergesAcrossSamples(t *testing.T) {
	dir := hints.New(hints.Pair{Path: "/-/v", Directive: hints.Force(shape.Integer())})

	got, err := Infer([]byte(`[{"v": "x"}, {"v": [1, 2]}, {}]`), dir)
	require.NoError(t, err)
	assert.Equal(t, "[]{v?: ?integer}", got.String())
}

func TestInfer_ParseError(t *testing.T) {
	got, err := Infer([]byte(`{"a": [1, 2`), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))
	assert.Equal(t, shape.KindUnknown, got.Kind(), "no partial shape")

	var inferErr *Error
	require.True(t, errors.As(err, &inferErr))
	assert.Equal(t, ErrorKindParse, inferErr.Kind)
	assert.Equal(t, 0, inferErr.Sample)
}

func TestInfer_EmptyInputIsParseError(t *testing.T) {
	_, err := Infer([]byte("   "), nil)
	assert.True(t, errors.Is(err, ErrParse))

	_, err = InferSamples(nil, nil)
	assert.True(t, errors.Is(err, ErrParse))
}

func TestEngine_LowestMalformedSampleReported(t *testing.T) {
	e, err := New(nil, Options{Workers: 4})
	require.NoError(t, err)

	_, err = e.Infer(context.Background(),
		[]byte(`{"ok": 1}`),
		[]byte(`{"ok": 2}`),
		[]byte(`{"bad": `),
		[]byte(`{"ok": 3}`),
		[]byte(`nope`),
	)
	var inferErr *Error
	require.True(t, errors.As(err, &inferErr))
	assert.Equal(t, 2, inferErr.Sample)
}

func TestEngine_CanceledContext(t *testing.T) {
	e, err := New(nil, Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Infer(ctx, []byte(`{}`))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInfer_Leaves(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"integer", `1`, "integer"},
		{"negative integer", `-7`, "integer"},
		{"exponent is float", `1e3`, "float"},
		{"fraction is float", `1.0`, "float"},
		{"huge integer is float", `123456789012345678901234567890`, "float"},
		{"string", `"x"`, "string"},
		{"bool", `false`, "bool"},
		{"null alone", `null`, "?any"},
		{"empty array", `[]`, "[]any"},
		{"mixed array", `[1, "a"]`, "[]any"},
		{"numeric array", `[1, 2.5, null]`, "[]?float"},
		{"empty object", `{}`, "{}"},
		{"stream of documents", "1\n2.5", "float"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Infer([]byte(tt.input), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestInfer_EmptyArrayAdoptsLaterElements(t *testing.T) {
	got, err := InferSamples([][]byte{
		[]byte(`{"tags": []}`),
		[]byte(`{"tags": ["a"]}`),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "{tags: []string}", got.String())
}

func TestInfer_AllNullDocuments(t *testing.T) {
	got, err := InferSamples([][]byte{[]byte(`null`), []byte(`null`)}, nil)
	require.NoError(t, err)
	assert.Equal(t, shape.KindOptional, got.Kind())
	assert.Equal(t, shape.KindAny, got.Elem().Kind())
}

func TestInfer_Directives(t *testing.T) {
	dir := hints.New(
		hints.Pair{Path: "/labels", Directive: hints.UseMap()},
		hints.Pair{Path: "/items/-", Directive: hints.Rename("Entry")},
		hints.Pair{Path: "/items/-/id", Directive: hints.MarkOpaque("uuid.UUID")},
		hints.Pair{Path: "/count", Directive: hints.ForceOptional()},
		hints.Pair{Path: "/never/seen", Directive: hints.Force(shape.Bool())},
	)

	input := `{
		"labels": {"env": "prod", "tier": "web"},
		"items": [{"id": "6f1c", "n": 1}],
		"count": 3
	}`
	got, err := Infer([]byte(input), dir)
	require.NoError(t, err)
	assert.Equal(t, "{labels: map<string>, items: []{id: opaque<uuid.UUID>, n: integer}, count?: ?integer}", got.String())

	items, _ := got.Field("items")
	assert.Equal(t, "Entry", items.Shape.Elem().Name())
}

func TestInfer_RootHint(t *testing.T) {
	dir := hints.New(hints.Pair{Path: "#", Directive: hints.Rename("Payload")})

	got, err := Infer([]byte(`{"a": 1}`), dir)
	require.NoError(t, err)
	assert.Equal(t, "Payload", got.Name())
}

func TestEngine_Unwrap(t *testing.T) {
	e, err := New(nil, Options{Unwrap: "/data/-"})
	require.NoError(t, err)

	res, err := e.Infer(context.Background(), []byte(`{"data": [{"id": 1}, {"id": 2, "name": "n"}]}`))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Samples)
	assert.Equal(t, "{id: integer, name?: ?string}", res.Shape.String())
}

func TestEngine_UnwrapMatchesNothing(t *testing.T) {
	e, err := New(nil, Options{Unwrap: "/missing"})
	require.NoError(t, err)

	_, err = e.Infer(context.Background(), []byte(`{"data": 1}`))
	assert.True(t, errors.Is(err, ErrSelect))
}

func TestEngine_Select(t *testing.T) {
	e, err := New(nil, Options{Select: ".results[]"})
	require.NoError(t, err)

	res, err := e.Infer(context.Background(), []byte(`{"results": [{"z": 1, "a": "x"}, {"z": 2}]}`))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Samples)
	assert.Equal(t, "{a?: ?string, z: integer}", res.Shape.String())
	assert.Equal(t, []string{"a", "z"}, res.Shape.Keys(), "jq sorts object keys")

	_, err = New(nil, Options{Select: ".results["})
	assert.Error(t, err)
}

func TestEngine_SelectRuntimeError(t *testing.T) {
	e, err := New(nil, Options{Select: ".results[]"})
	require.NoError(t, err)

	_, err = e.Infer(context.Background(), []byte(`{"results": 5}`))
	var inferErr *Error
	require.True(t, errors.As(err, &inferErr))
	assert.Equal(t, ErrorKindSelect, inferErr.Kind)
}

func TestEngine_YAML(t *testing.T) {
	e, err := New(nil, Options{Format: FormatYAML})
	require.NoError(t, err)

	res, err := e.Infer(context.Background(), []byte("name: x\nsize: 1.5\n---\nname: y\n"))
	require.NoError(t, err)
	assert.Equal(t, "{name: string, size?: ?float}", res.Shape.String())
}

func TestEngine_MaxSamples(t *testing.T) {
	e, err := New(nil, Options{MaxSamples: 2})
	require.NoError(t, err)

	_, err = e.Infer(context.Background(), []byte("1 2 3"))
	assert.True(t, errors.Is(err, ErrLimit))
}

func TestEngine_InferValues(t *testing.T) {
	e, err := New(nil, Options{})
	require.NoError(t, err)

	res, err := e.InferValues(
		value.Object(value.Member{Key: "id", Value: value.Int(1)}),
		value.Object(value.Member{Key: "id", Value: value.Float(1.5)}),
	)
	require.NoError(t, err)
	assert.Equal(t, "{id: float}", res.Shape.String())

	assert.Equal(t, "?any", InferValues(nil, value.Null()).String())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
