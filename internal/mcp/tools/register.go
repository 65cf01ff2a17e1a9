package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	AddTool(srv, &sdkmcp.Tool{
		Name:        "shapegen_infer",
		Description: "Infer one merged shape from sample JSON or YAML documents. Returns {shape_id, name, description, shape, samples, stats?, resource, hint}. description is a compact type expression such as {id: integer, tags?: ?[]string} where ? marks nullable and key? marks fields missing from some samples. Use select (jq) or unwrap (JSON pointer) to infer a nested part of each document, and hints to force maps, optional fields, opaque types or type names. Pass the shape_id to shapegen_codegen or shapegen_validate.",
	}, ToolInfer(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "shapegen_codegen",
		Description: "Render type declarations for a shape as Go structs, TypeScript interfaces or aliases, Python TypedDicts, or a JSON Schema. Requires shape_id (from shapegen_infer) or samples. Returns {shape_id, output_mode, code}.",
	}, ToolCodegen(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "shapegen_case",
		Description: "Show how names are re-cased by the generators: every property_name_format form, the generated type name and the singular form. Use this to preview identifiers before calling shapegen_codegen.",
	}, ToolCase(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "shapegen_validate",
		Description: "Validate documents against the JSON Schema of a cached shape. Returns {summary: {total_samples, matching_count, failed_count, all_match}, results, common_errors}. Requires shape_id from shapegen_infer. Use this to check whether new payloads still fit an inferred shape.",
	}, ToolValidate(d))
}
