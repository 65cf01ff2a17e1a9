package hints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/shapegen/pkg/shape"
)

func TestPath_Build(t *testing.T) {
	p := Root.Field("items").Elem().Field("a/b~c")
	assert.Equal(t, Path("/items/-/a~1b~0c"), p)
	assert.Equal(t, []string{"items", "-", "a/b~c"}, p.Segments())
	assert.Nil(t, Root.Segments())
	assert.Equal(t, []string{""}, Root.Field("").Segments())
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want Path
	}{
		{"", Root},
		{"/", Root},
		{"#", Root},
		{"#/a/-", "/a/-"},
		{"a/b", "/a/b"},
		{" /a ", "/a"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePath(tt.in))
		})
	}
}

func TestDirectory_LaterOverridesSameKind(t *testing.T) {
	d := New(
		Pair{Path: "/a", Directive: Rename("First")},
		Pair{Path: "/a", Directive: Force(shape.Integer())},
		Pair{Path: "a", Directive: Rename("Second")},
		Pair{Path: "/b", Directive: ForceOptional()},
	)

	got, ok := d.Lookup("/a")
	require.True(t, ok)
	assert.Equal(t, "Second", got.Rename)
	assert.True(t, got.Forced)
	assert.True(t, got.Replaces())
	assert.Equal(t, shape.KindInteger, got.Replacement().Kind())

	b, ok := d.Lookup("/b")
	require.True(t, ok)
	assert.True(t, b.Optional)
	assert.False(t, b.Replaces())

	_, ok = d.Lookup("/c")
	assert.False(t, ok)
	assert.Equal(t, []Path{"/a", "/b"}, d.Paths())
	assert.Equal(t, 2, d.Len())
}

func TestDirectory_OpaqueBeatsForce(t *testing.T) {
	d := New(
		Pair{Path: "/id", Directive: MarkOpaque("uuid.UUID")},
		Pair{Path: "/id", Directive: Force(shape.StringT())},
	)

	got, _ := d.Lookup("/id")
	r := got.Replacement()
	assert.Equal(t, shape.KindOpaque, r.Kind())
	assert.Equal(t, "uuid.UUID", r.OpaqueName())
}

func TestDirectory_Nil(t *testing.T) {
	var d *Directory
	_, ok := d.Lookup(Root)
	assert.False(t, ok)
	assert.Zero(t, d.Len())
	assert.Nil(t, d.Paths())
}

func TestForceDescription(t *testing.T) {
	d, err := ForceDescription("[]{id: integer}")
	require.NoError(t, err)
	assert.Equal(t, KindForce, d.Kind)
	assert.Equal(t, "[]{id: integer}", d.Shape.String())

	_, err = ForceDescription("[]{id integer}")
	assert.Error(t, err)
}

func TestParseFile_Array(t *testing.T) {
	data := []byte(`[
		{"path": "/labels", "use_type": "map"},
		{"path": "#/items/-", "type_name": "Entry"},
		{"path": "items/-/id", "opaque_type": "uuid.UUID"},
		{"path": "/count", "use_type": "opt"},
		{"path": "/size", "use_type": "float"}
	]`)

	pairs, err := ParseFile(data)
	require.NoError(t, err)
	require.Len(t, pairs, 5)

	d := New(pairs...)
	labels, _ := d.Lookup("/labels")
	assert.True(t, labels.Map)

	entry, _ := d.Lookup("/items/-")
	assert.Equal(t, "Entry", entry.Rename)

	id, _ := d.Lookup("/items/-/id")
	assert.Equal(t, "uuid.UUID", id.Opaque)

	count, _ := d.Lookup("/count")
	assert.True(t, count.Optional)

	size, _ := d.Lookup("/size")
	assert.Equal(t, shape.KindFloat, size.Shape.Kind())
}

func TestParseFile_ObjectKeepsOrder(t *testing.T) {
	data := []byte(`{
		"/z": {"type_name": "Zed"},
		"/a": {"use_type": "string", "type_name": "Label"}
	}`)

	pairs, err := ParseFile(data)
	require.NoError(t, err)
	require.Len(t, pairs, 3)
	assert.Equal(t, Path("/z"), pairs[0].Path)
	assert.Equal(t, Path("/a"), pairs[1].Path)
	assert.Equal(t, KindForce, pairs[1].Directive.Kind)
	assert.Equal(t, KindRename, pairs[2].Directive.Kind)
}

func TestParseFile_Errors(t *testing.T) {
	for name, data := range map[string]string{
		"not json":         `nope`,
		"bad description":  `[{"path": "/a", "use_type": "[]"}]`,
		"non-object value": `{"/a": "map"}`,
		"bad array":        `[{"path": 1}]`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFile([]byte(data))
			assert.Error(t, err)
		})
	}

	pairs, err := ParseFile([]byte("  "))
	require.NoError(t, err)
	assert.Empty(t, pairs)
}
