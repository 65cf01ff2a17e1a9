package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleGenerateTypes implements the type generation workflow.
func HandleGenerateTypes(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		language := cfg.DefaultOutputMode
		typeName := "Root"
		if args := req.Params.Arguments; args != nil {
			if v, ok := args["language"]; ok && v != "" {
				language = v
			}
			if v, ok := args["type_name"]; ok && v != "" {
				typeName = v
			}
		}

		var sb strings.Builder

		sb.WriteString("# Generate Types From Samples\n\n")
		sb.WriteString(fmt.Sprintf("- **Target**: `%s`\n", language))
		sb.WriteString(fmt.Sprintf("- **Root type**: `%s`\n", typeName))
		sb.WriteString(fmt.Sprintf("- **Sample limit**: %d documents per call\n\n", cfg.MaxSamples))

		sb.WriteString("## Phase 1: Collect Samples\n")
		sb.WriteString("Gather several real payloads of the same kind. More samples give better optionality:\n")
		sb.WriteString("a field missing from any sample becomes optional, a field that is ever null becomes nullable.\n\n")

		sb.WriteString("## Phase 2: Infer\n")
		sb.WriteString(fmt.Sprintf("`shapegen_infer(samples=[...], name=\"%s\", stats=true)`\n", typeName))
		sb.WriteString("- Read `description` first; it is the whole shape in one line.\n")
		sb.WriteString("- If the payload wraps the interesting part, add `unwrap: \"/data/items/-\"` or a jq `select`.\n")
		sb.WriteString("- Check `stats` for fields with low `frequency` or a detected `format`.\n\n")

		sb.WriteString("## Phase 3: Tune With Hints\n")
		sb.WriteString("Re-run `shapegen_infer` with `hints` when the inferred shape is too literal:\n")
		sb.WriteString("| Symptom | Hint |\n")
		sb.WriteString("|---------|------|\n")
		sb.WriteString("| Object keyed by IDs became a record with many fields | `{\"path\": \"/by_id\", \"use_type\": \"map\"}` |\n")
		sb.WriteString("| Field should be optional even though every sample has it | `{\"path\": \"/note\", \"use_type\": \"opt\"}` |\n")
		sb.WriteString("| Value should use an existing type | `{\"path\": \"/created\", \"opaque_type\": \"time.Time\"}` |\n")
		sb.WriteString("| Generated name is poor | `{\"path\": \"/items/-\", \"type_name\": \"LineItem\"}` |\n\n")

		sb.WriteString("## Phase 4: Generate\n")
		sb.WriteString(fmt.Sprintf("`shapegen_codegen(shape_id=\"...\", output_mode=\"%s\")`\n", language))
		sb.WriteString("- Use `property_name_format` to rename properties for TypeScript, Python or JSON Schema.\n")
		sb.WriteString("- Use `use_default_for_missing_fields` when absent fields should decode to zero values.\n\n")

		sb.WriteString("## Phase 5: Verify\n")
		sb.WriteString("Run `shapegen_validate(shape_id=\"...\", samples=[...])` with payloads that were not used for inference.\n")
		sb.WriteString("Failures in `common_errors` point at fields that need a hint or more samples.\n")

		return &sdkmcp.GetPromptResult{
			Description: "Type generation workflow",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
