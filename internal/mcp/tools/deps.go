package tools

import (
	"context"
	"fmt"

	"github.com/usestring/shapegen/internal/cache"
	"github.com/usestring/shapegen/internal/config"
	"github.com/usestring/shapegen/pkg/contenttype"
	"github.com/usestring/shapegen/pkg/hints"
	"github.com/usestring/shapegen/pkg/inference"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config *config.Config
	Cache  *cache.ShapeCache
}

// InferRequest is the sample-related part of a tool input.
type InferRequest struct {
	Samples     []string
	Format      string
	ContentType string
	Select      string
	Unwrap      string
	Hints       []hints.FileHint
	Stats       bool
}

// Infer validates req against the configured limits and runs inference.
// Input problems are returned as INVALID_INPUT and inference failures are
// wrapped with WrapInferenceError.
func (d *Deps) Infer(ctx context.Context, req InferRequest) (*inference.Result, error) {
	if len(req.Samples) == 0 {
		return nil, ErrInvalidInput("samples must contain at least one document")
	}
	for i, s := range req.Samples {
		if len(s) > d.Config.MaxSampleBytes {
			return nil, ErrInvalidInput(fmt.Sprintf("sample %d is %d bytes, limit is %d", i, len(s), d.Config.MaxSampleBytes))
		}
	}

	format, err := resolveFormat(req.Format, req.ContentType)
	if err != nil {
		return nil, invalidInput(err)
	}

	var pairs []hints.Pair
	for _, h := range req.Hints {
		p, err := h.Pairs()
		if err != nil {
			return nil, invalidInput(err)
		}
		pairs = append(pairs, p...)
	}

	engine, err := inference.New(hints.New(pairs...), inference.Options{
		Format:     format,
		Unwrap:     req.Unwrap,
		Select:     req.Select,
		Workers:    d.Config.InferWorkers,
		MaxSamples: d.Config.MaxSamples,
		Stats:      req.Stats,
	})
	if err != nil {
		return nil, invalidInput(err)
	}

	res, err := engine.Infer(ctx, toBytes(req.Samples)...)
	if err != nil {
		return nil, WrapInferenceError(err)
	}
	return res, nil
}

// resolveFormat prefers an explicit format over the content type.
func resolveFormat(format, contentType string) (inference.Format, error) {
	if format != "" {
		return inference.ParseFormat(format)
	}
	if contenttype.Resolve(contentType, "") == contenttype.YAML {
		return inference.FormatYAML, nil
	}
	return inference.FormatJSON, nil
}
