package mcpsrv

import (
	"context"

	"github.com/usestring/shapegen/internal/cache"
	"github.com/usestring/shapegen/internal/config"
	"github.com/usestring/shapegen/internal/mcp/tools"
	"github.com/usestring/shapegen/pkg/inference"
)

// InferRequest is the sample-related part of a tool input.
type InferRequest = tools.InferRequest

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Config *config.Config
	Cache  *cache.ShapeCache

	tools *tools.Deps
}

// Infer runs inference with the server's limits, exactly as shapegen_infer
// does. Errors are *tools.CodedError values.
func (d *Deps) Infer(ctx context.Context, req InferRequest) (*inference.Result, error) {
	return d.tools.Infer(ctx, req)
}
