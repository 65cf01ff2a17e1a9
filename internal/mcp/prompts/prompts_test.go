package prompts

import (
	"context"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptText(t *testing.T, res *sdkmcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, res.Messages, 1)
	text, ok := res.Messages[0].Content.(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleGenerateTypes(t *testing.T) {
	cfg := &Config{DefaultOutputMode: "go", MaxSamples: 50}
	h := HandleGenerateTypes(cfg)

	tests := []struct {
		name string
		args map[string]string
		want []string
	}{
		{
			name: "defaults",
			want: []string{"`go`", "`Root`", "50 documents", `output_mode="go"`},
		},
		{
			name: "arguments",
			args: map[string]string{"language": "python", "type_name": "Order"},
			want: []string{"`python`", `name="Order"`, `output_mode="python"`},
		},
		{
			name: "empty arguments keep defaults",
			args: map[string]string{"language": ""},
			want: []string{"`go`"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := h(context.Background(), &sdkmcp.GetPromptRequest{
				Params: &sdkmcp.GetPromptParams{Name: "generate_types", Arguments: tt.args},
			})
			require.NoError(t, err)
			text := promptText(t, res)
			for _, w := range tt.want {
				assert.Contains(t, text, w)
			}
		})
	}
}

func TestHandleUsageGuide(t *testing.T) {
	res, err := HandleUsageGuide(&Config{DefaultOutputMode: "typescript", MaxSamples: 7})(
		context.Background(), &sdkmcp.GetPromptRequest{Params: &sdkmcp.GetPromptParams{Name: "usage_guide"}})
	require.NoError(t, err)

	text := promptText(t, res)
	assert.Contains(t, text, "Default: `typescript`")
	assert.Contains(t, text, "At most 7 samples")
	assert.Contains(t, text, "`map<T>`")
}
