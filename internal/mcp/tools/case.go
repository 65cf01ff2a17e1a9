package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/shapegen/pkg/naming"
	"github.com/usestring/shapegen/pkg/types"
	"github.com/usestring/shapegen/pkg/wordcase"
)

// CaseInput is the input for shapegen_case.
type CaseInput struct {
	Names []string `json:"names" jsonschema:"Field or type names to convert, e.g. userID or HTTP_status"`
}

// ToolCase shows how names are split into words and re-cased by the
// generators.
func ToolCase(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input CaseInput) (*sdkmcp.CallToolResult, types.CaseOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input CaseInput) (*sdkmcp.CallToolResult, types.CaseOutput, error) {
		if len(input.Names) == 0 {
			return nil, types.CaseOutput{}, ErrInvalidInput("names must contain at least one name")
		}

		output := types.CaseOutput{Results: make([]types.CaseResult, 0, len(input.Names))}
		for _, name := range input.Names {
			forms := make(map[string]string, int(wordcase.ScreamingKebab))
			for t := wordcase.Lower; t <= wordcase.ScreamingKebab; t++ {
				forms[t.String()] = t.Apply(name)
			}
			output.Results = append(output.Results, types.CaseResult{
				Input:    name,
				Forms:    forms,
				TypeName: naming.TypeIdent(name),
				Singular: wordcase.ToSingular(name),
			})
		}
		return nil, output, nil
	}
}
