package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "generate_types",
		Description: "RECOMMENDED: Generate type declarations from sample payloads. Walks through inference, hint tuning and code generation with the shapegen tools.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "language",
				Description: "Target output mode: go, typescript, typescript/typealias, python or json_schema",
				Required:    false,
			},
			{
				Name:        "type_name",
				Description: "Name of the root type (e.g., 'Order', 'SearchResponse')",
				Required:    false,
			},
		},
	}, HandleGenerateTypes(cfg))

	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "usage_guide",
		Description: "Reference for the shape description language, hint entries and tool parameters.",
	}, HandleUsageGuide(cfg))
}
