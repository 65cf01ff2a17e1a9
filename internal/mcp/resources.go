package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/shapegen/internal/mcp/tools"
	"github.com/usestring/shapegen/pkg/inference"
)

// Resource URI scheme: shapegen://
// Supported URIs:
//   shapegen://shape/{id}

func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: tools.ShapeURIPrefix + "{id}",
		Name:        "Inferred Shape",
		Description: "A cached shape with its description, JSON tree and field statistics. shapegen_infer already returns the same data; fetch this to recover a shape by ID later in a session.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.4,
		},
	}, s.handleResourceShape)
}

type shapeResource struct {
	ShapeID     string                `json:"shape_id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Shape       json.RawMessage       `json:"shape"`
	Samples     int                   `json:"samples"`
	Stats       []inference.FieldStat `json:"stats,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

func (s *Server) handleResourceShape(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	id, err := parseShapeURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	entry, ok := s.deps.Cache.Get(id)
	if !ok {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}

	tree, err := entry.Shape.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encoding shape: %w", err)
	}
	name := entry.Name
	if name == "" {
		name = entry.Shape.Name()
	}
	return toResourceResult(req.Params.URI, shapeResource{
		ShapeID:     entry.ID,
		Name:        name,
		Description: entry.Shape.String(),
		Shape:       tree,
		Samples:     entry.Samples,
		Stats:       entry.Stats,
		CreatedAt:   entry.CreatedAt,
	})
}

// parseShapeURI extracts the shape ID from a shapegen://shape/{id} URI.
func parseShapeURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, "shapegen://") {
		return "", tools.ErrInvalidInput("invalid URI scheme: expected shapegen://")
	}
	id, ok := strings.CutPrefix(uri, tools.ShapeURIPrefix)
	if !ok {
		return "", tools.ErrInvalidInput(fmt.Sprintf("unknown resource: %s", uri))
	}
	if id == "" || strings.Contains(id, "/") {
		return "", tools.ErrInvalidInput("shape URI requires exactly one shape ID")
	}
	return id, nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
