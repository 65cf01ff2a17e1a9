package contenttype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        Category
	}{
		// JSON
		{"application/json", "application/json", JSON},
		{"vendor json", "application/vnd.api+json", JSON},
		{"json with charset", "application/json; charset=utf-8", JSON},
		{"ndjson", "application/x-ndjson", JSON},

		// YAML
		{"application/yaml", "application/yaml", YAML},
		{"text/yaml", "text/yaml", YAML},
		{"application/x-yaml", "application/x-yaml", YAML},
		{"yml", "text/x-yml", YAML},

		// Other
		{"text/html", "text/html", Unknown},
		{"octet-stream", "application/octet-stream", Unknown},

		// Edge cases
		{"empty", "", Unknown},
		{"uppercase", "Application/JSON", JSON},
		{"malformed", "json;;;", JSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.contentType))
		})
	}
}

func TestFromPath(t *testing.T) {
	tests := map[string]Category{
		"samples/users.json":  JSON,
		"events.NDJSON":       JSON,
		"config.yml":          YAML,
		"/abs/path/data.yaml": YAML,
		"notes.txt":           Unknown,
		"-":                   Unknown,
	}
	for path, want := range tests {
		assert.Equal(t, want, FromPath(path), path)
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, YAML, Resolve("application/yaml", "data.json"), "content type wins")
	assert.Equal(t, YAML, Resolve("", "data.yml"))
	assert.Equal(t, JSON, Resolve("text/plain", "data.txt"), "JSON is the fallback")
}

func TestIsJSON(t *testing.T) {
	assert.True(t, IsJSON("application/JSON"))
	assert.False(t, IsJSON("text/yaml"))
}
