package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleUsageGuide serves the reference for shapes, hints and output modes.
func HandleUsageGuide(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var sb strings.Builder

		sb.WriteString("# shapegen Reference\n\n")

		sb.WriteString("## Shape Descriptions\n\n")
		sb.WriteString("| Form | Meaning |\n")
		sb.WriteString("|------|---------|\n")
		sb.WriteString("| `bool` `integer` `float` `string` | Scalars; integer and float merge to float |\n")
		sb.WriteString("| `any` | Values of conflicting kinds, or never observed |\n")
		sb.WriteString("| `?T` | T or null |\n")
		sb.WriteString("| `[]T` | Array of T |\n")
		sb.WriteString("| `map<T>` | Object with arbitrary keys, from a `map` hint |\n")
		sb.WriteString("| `opaque<Name>` | Existing type referenced by name, from an `opaque_type` hint |\n")
		sb.WriteString("| `{a: T, b?: U}` | Record; `b?` is missing from at least one sample |\n")

		sb.WriteString("\n## Hint Entries\n")
		sb.WriteString("- `path` is a JSON pointer; `-` selects every array element (`/items/-/price`)\n")
		sb.WriteString("- `use_type`: `map`, `opt`, or a shape description that replaces the inferred shape\n")
		sb.WriteString("- `type_name`: name for the type generated at the path\n")
		sb.WriteString("- `opaque_type`: `module.Name` of an existing type; the module drives imports\n")

		sb.WriteString("\n## Output Modes\n")
		sb.WriteString(fmt.Sprintf("Default: `%s`\n", cfg.DefaultOutputMode))
		sb.WriteString("- `go`: structs with json tags; optional fields are pointers with omitempty\n")
		sb.WriteString("- `typescript` / `typescript/typealias`: interfaces or type aliases\n")
		sb.WriteString("- `python`: TypedDict classes\n")
		sb.WriteString("- `json_schema`: Draft 2020-12 schema; named records go to `$defs`\n")

		sb.WriteString("\n## Limits\n")
		sb.WriteString(fmt.Sprintf("- At most %d samples per call after select and unwrap\n", cfg.MaxSamples))
		sb.WriteString("- Cached shapes are evicted least recently used first; re-run `shapegen_infer` on NOT_FOUND\n")

		return &sdkmcp.GetPromptResult{
			Description: "shapegen reference",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
