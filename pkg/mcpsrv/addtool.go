package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/shapegen/internal/mcp/tools"
)

// AddTool registers a tool after checking that the zero value of Out passes
// the output schema the SDK infers. A slice field without omitzero marshals
// as null and would fail that schema on every empty result.
//
// Panics with the offending type when the check fails.
//
// Use this instead of [sdkmcp.AddTool] to get the additional check.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}
