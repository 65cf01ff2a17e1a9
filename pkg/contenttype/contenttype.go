// Package contenttype classifies sample inputs by media type or file name.
package contenttype

import (
	"mime"
	"path/filepath"
	"strings"
)

// Category represents a broad content-type classification.
type Category string

const (
	JSON    Category = "json"
	YAML    Category = "yaml"
	Unknown Category = ""
)

// Classify returns the category for a content-type header value. Parameters
// such as charset are ignored. Anything neither JSON nor YAML is Unknown.
func Classify(contentType string) Category {
	if contentType == "" {
		return Unknown
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	// application/json, application/vnd.*+json, application/x-ndjson
	if strings.Contains(mediaType, "json") {
		return JSON
	}
	// application/yaml, text/yaml, application/x-yaml
	if strings.Contains(mediaType, "yaml") || strings.Contains(mediaType, "yml") {
		return YAML
	}
	return Unknown
}

// FromPath classifies a file by its extension.
func FromPath(path string) Category {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonl", ".ndjson", ".geojson":
		return JSON
	case ".yaml", ".yml":
		return YAML
	}
	return Unknown
}

// Resolve picks the category for an input: an explicit content type wins
// over the file extension, and JSON is the fallback.
func Resolve(contentType, path string) Category {
	if c := Classify(contentType); c != Unknown {
		return c
	}
	if c := FromPath(path); c != Unknown {
		return c
	}
	return JSON
}

// IsJSON returns true if the content type indicates JSON (case-insensitive).
func IsJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "json")
}
