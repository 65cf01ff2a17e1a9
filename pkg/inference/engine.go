// Package inference derives one Shape from sample documents.
//
// Each sample is converted to a shape bottom-up, consulting a hint directory
// at every visited path, and the per-sample shapes are folded with
// shape.Merge strictly in input order so record fields keep first-appearance
// order across samples.
package inference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/usestring/shapegen/pkg/hints"
	"github.com/usestring/shapegen/pkg/shape"
	"github.com/usestring/shapegen/pkg/value"
)

// Format is the syntax of raw samples.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json" or "yaml". The empty string means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown input format %q (valid: json, yaml)", s)
}

// Options tune an Engine. The zero value infers JSON with every document of
// every input as one sample.
type Options struct {
	Format Format
	// Unwrap is a pointer applied to every document; the values it reaches
	// become the samples. "-" fans out over array elements.
	Unwrap string
	// Select is a jq expression applied to every document; its outputs
	// become the samples. It runs before Unwrap. jq does not keep object
	// key order, so selected objects have their keys sorted.
	Select string
	// Workers bounds concurrent decoding. Zero means GOMAXPROCS.
	Workers int
	// MaxSamples rejects inputs yielding more samples. Zero means no limit.
	MaxSamples int
	// Stats enables per-path statistics in the result.
	Stats bool
}

// Result is the outcome of an inference call.
type Result struct {
	Shape   shape.Shape
	Samples int
	Stats   []FieldStat
}

// Engine infers shapes with fixed hints and options. It holds no mutable
// state and may be used concurrently.
type Engine struct {
	opts   Options
	dir    *hints.Directory
	unwrap []string
	sel    *selector
}

// New returns an engine. It fails only on an invalid Format or Select.
func New(dir *hints.Directory, opts Options) (*Engine, error) {
	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}
	opts.Format = format
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}

	e := &Engine{
		opts:   opts,
		dir:    dir,
		unwrap: hints.ParsePath(opts.Unwrap).Segments(),
	}
	if opts.Select != "" {
		e.sel, err = compileSelector(opts.Select)
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Infer parses raw with no options and returns its finalized shape. raw may
// hold several concatenated JSON documents, each of which is a sample.
func Infer(raw []byte, dir *hints.Directory) (shape.Shape, error) {
	return InferSamples([][]byte{raw}, dir)
}

// InferSamples is Infer over several inputs, folded in order.
func InferSamples(samples [][]byte, dir *hints.Directory) (shape.Shape, error) {
	e, err := New(dir, Options{})
	if err != nil {
		return shape.Shape{}, err
	}
	res, err := e.Infer(context.Background(), samples...)
	if err != nil {
		return shape.Shape{}, err
	}
	return res.Shape, nil
}

// InferValues folds already parsed documents. It cannot fail.
func InferValues(dir *hints.Directory, docs ...value.Value) shape.Shape {
	w := newWalker(dir)
	acc := shape.Unknown()
	for _, doc := range docs {
		acc = shape.Merge(acc, w.shapeOf(doc, hints.Root))
	}
	return shape.Finalize(acc)
}

// part is the decoded and converted form of one input.
type part struct {
	samples []value.Value
	shapes  []shape.Shape
	matched map[hints.Path]struct{}
	err     *Error
}

// Infer decodes inputs concurrently and folds their samples in order. When
// several inputs are malformed the error of the lowest one is returned.
func (e *Engine) Infer(ctx context.Context, inputs ...[]byte) (*Result, error) {
	start := time.Now()
	if len(inputs) == 0 {
		return nil, &Error{Kind: ErrorKindParse, Sample: -1, Offset: -1, Cause: errNoDocuments}
	}
	parts := make([]part, len(inputs))

	var g errgroup.Group
	g.SetLimit(e.opts.Workers)
	for i, raw := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parts[i] = e.prepare(i, raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range parts {
		if parts[i].err != nil {
			return nil, parts[i].err
		}
	}

	res, err := e.fold(parts)
	if err != nil {
		return nil, err
	}
	slog.Debug("inferred shape",
		slog.Int("inputs", len(inputs)),
		slog.Int("samples", res.Samples),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return res, nil
}

// InferValues is Infer over already parsed documents.
func (e *Engine) InferValues(docs ...value.Value) (*Result, error) {
	if len(docs) == 0 {
		return nil, &Error{Kind: ErrorKindParse, Sample: -1, Offset: -1, Cause: errNoDocuments}
	}
	var p part
	w := newWalker(e.dir)
	for i, doc := range docs {
		samples, err := e.expand(doc)
		if err != nil {
			return nil, &Error{Kind: ErrorKindSelect, Sample: 0, Document: i, Offset: -1, Cause: err}
		}
		for _, s := range samples {
			p.samples = append(p.samples, s)
			p.shapes = append(p.shapes, w.shapeOf(s, hints.Root))
		}
	}
	p.matched = w.matched
	return e.fold([]part{p})
}

func (e *Engine) decode(raw []byte) ([]value.Value, error) {
	if e.opts.Format == FormatYAML {
		return value.DecodeYAML(raw)
	}
	return value.DecodeJSON(raw)
}

func (e *Engine) prepare(index int, raw []byte) part {
	docs, err := e.decode(raw)
	if err != nil {
		perr := &Error{Kind: ErrorKindParse, Sample: index, Offset: -1, Cause: err}
		var de *value.DecodeError
		if errors.As(err, &de) {
			perr.Document, perr.Offset, perr.Cause = de.Document, de.Offset, de.Err
		}
		return part{err: perr}
	}
	if len(docs) == 0 {
		return part{err: &Error{Kind: ErrorKindParse, Sample: index, Offset: 0, Cause: errNoDocuments}}
	}

	w := newWalker(e.dir)
	var p part
	for d, doc := range docs {
		samples, err := e.expand(doc)
		if err != nil {
			return part{err: &Error{Kind: ErrorKindSelect, Sample: index, Document: d, Offset: -1, Cause: err}}
		}
		for _, s := range samples {
			p.samples = append(p.samples, s)
			p.shapes = append(p.shapes, w.shapeOf(s, hints.Root))
		}
	}
	p.matched = w.matched
	return p
}

// expand maps a document to its samples through Select and Unwrap.
func (e *Engine) expand(doc value.Value) ([]value.Value, error) {
	samples := []value.Value{doc}
	if e.sel != nil {
		out, err := e.sel.run(doc)
		if err != nil {
			return nil, err
		}
		samples = out
	}
	if len(e.unwrap) == 0 {
		return samples, nil
	}
	var unwrapped []value.Value
	for _, s := range samples {
		unwrapped = append(unwrapped, value.Lookup(s, e.unwrap)...)
	}
	return unwrapped, nil
}

func (e *Engine) fold(parts []part) (*Result, error) {
	total := 0
	for _, p := range parts {
		total += len(p.shapes)
	}
	if total == 0 {
		return nil, &Error{Kind: ErrorKindSelect, Sample: -1, Offset: -1,
			Cause: fmt.Errorf("select %q and unwrap %q produced no samples", e.opts.Select, e.opts.Unwrap)}
	}
	if e.opts.MaxSamples > 0 && total > e.opts.MaxSamples {
		return nil, &Error{Kind: ErrorKindLimit, Sample: -1, Offset: -1,
			Cause: fmt.Errorf("%d samples exceed the limit of %d", total, e.opts.MaxSamples)}
	}

	var stats *statsCollector
	if e.opts.Stats {
		stats = newStatsCollector()
	}

	acc := shape.Unknown()
	matched := make(map[hints.Path]struct{})
	for _, p := range parts {
		for i, s := range p.shapes {
			acc = shape.Merge(acc, s)
			if stats != nil {
				stats.add(p.samples[i])
			}
		}
		for path := range p.matched {
			matched[path] = struct{}{}
		}
	}
	e.logInertHints(matched)

	res := &Result{Shape: shape.Finalize(acc), Samples: total}
	if stats != nil {
		res.Stats = stats.finish(res.Shape)
	}
	return res, nil
}

// logInertHints reports hints whose path never occurred. They are not an
// error.
func (e *Engine) logInertHints(matched map[hints.Path]struct{}) {
	for _, path := range e.dir.Paths() {
		if _, ok := matched[path]; !ok {
			slog.Debug("hint matched no value", slog.String("path", path.String()))
		}
	}
}
