// Package tools contains the shapegen MCP tool implementations.
package tools

import (
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/shapegen/pkg/types"
)

// MIME type constant.
const MimeJSON = "application/json"

// ShapeURIPrefix prefixes the resource URI of a cached shape.
const ShapeURIPrefix = "shapegen://shape/"

// MakeJSONToolResult creates a CallToolResult with JSON text content.
func MakeJSONToolResult(v any) (*sdkmcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: string(b)},
		},
	}, nil
}

// ShapeResource returns the resource reference of a cached shape.
func ShapeResource(id string) *types.ResourceRef {
	return &types.ResourceRef{
		URI:  ShapeURIPrefix + id,
		MIME: MimeJSON,
		Hint: fmt.Sprintf("Read this resource to fetch shape %s again with its field statistics", id),
	}
}

// toBytes converts sample text to the byte slices inference consumes.
func toBytes(samples []string) [][]byte {
	out := make([][]byte, len(samples))
	for i, s := range samples {
		out[i] = []byte(s)
	}
	return out
}
