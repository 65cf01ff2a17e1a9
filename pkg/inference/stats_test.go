package inference

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/shapegen/pkg/hints"
	"github.com/usestring/shapegen/pkg/shape"
)

func statsByPath(stats []FieldStat) map[string]FieldStat {
	out := make(map[string]FieldStat, len(stats))
	for _, s := range stats {
		out[s.Path] = s
	}
	return out
}

func TestStats(t *testing.T) {
	e, err := New(nil, Options{Stats: true})
	require.NoError(t, err)

	res, err := e.Infer(context.Background(),
		[]byte(`{"id": 1, "name": "a", "user": {"email": null}}`),
		[]byte(`{"id": 2, "user": {"email": "x@y.io"}}`),
		[]byte(`{"id": 3, "name": "c", "user": null}`),
	)
	require.NoError(t, err)

	stats := statsByPath(res.Stats)
	assert.Equal(t, "/id", res.Stats[0].Path, "first-seen order")

	id := stats["/id"]
	assert.Equal(t, 1.0, id.Frequency)
	assert.True(t, id.Required)
	assert.Equal(t, 3, id.DistinctCount)
	assert.Equal(t, "integer", id.Shape)
	assert.Len(t, id.Examples, maxExamples)

	name := stats["/name"]
	assert.InDelta(t, 2.0/3.0, name.Frequency, 1e-9)
	assert.False(t, name.Required)

	user := stats["/user"]
	assert.True(t, user.Nullable)
	assert.False(t, user.Required)

	email := stats["/user/email"]
	assert.Equal(t, 1.0, email.Frequency, "only samples with a non-null user count")
	assert.True(t, email.Nullable)
}

func TestStats_ArrayElementsAndFormats(t *testing.T) {
	var inputs [][]byte
	for i := 0; i < 6; i++ {
		inputs = append(inputs, []byte(fmt.Sprintf(`{"tags": [{"kind": "k%d"}], "site": "https://example.com/%d"}`, i%2, i)))
	}

	e, err := New(nil, Options{Stats: true})
	require.NoError(t, err)
	res, err := e.Infer(context.Background(), inputs...)
	require.NoError(t, err)

	stats := statsByPath(res.Stats)
	assert.Equal(t, "url", stats["/site"].Format)

	kind := stats["/tags/-/kind"]
	assert.Equal(t, "enum", kind.Format)
	assert.Equal(t, []string{"k0", "k1"}, kind.EnumValues)
	assert.Equal(t, "string", kind.Shape)
}

func TestStats_DisabledByDefault(t *testing.T) {
	e, err := New(nil, Options{})
	require.NoError(t, err)
	res, err := e.Infer(context.Background(), []byte(`{"a": 1}`))
	require.NoError(t, err)
	assert.Nil(t, res.Stats)
}

func TestShapeAt(t *testing.T) {
	s := shape.MustParse("{items?: ?[]{id: integer}, labels: map<string>}")

	got, ok := ShapeAt(s, "/items/-/id")
	require.True(t, ok)
	assert.Equal(t, shape.KindInteger, got.Kind())

	got, ok = ShapeAt(s, hints.Root.Field("labels").Elem())
	require.True(t, ok)
	assert.Equal(t, shape.KindString, got.Kind())

	_, ok = ShapeAt(s, "/items/id")
	assert.False(t, ok)

	got, ok = ShapeAt(s, hints.Root)
	require.True(t, ok)
	assert.Equal(t, shape.KindRecord, got.Kind())
}
