package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/usestring/shapegen/internal/config"
	"github.com/usestring/shapegen/internal/logging"
	"github.com/usestring/shapegen/pkg/codegen"
	"github.com/usestring/shapegen/pkg/hints"
	"github.com/usestring/shapegen/pkg/inference"
	"github.com/usestring/shapegen/pkg/wordcase"
)

var version = "dev"

// inferFlags are shared by every command that infers a shape.
type inferFlags struct {
	format    string
	hintsFile string
	selectExp string
	unwrap    string
}

func (f *inferFlags) register(cmd *cobra.Command) {
	f.registerSource(cmd)
	cmd.Flags().StringVar(&f.selectExp, "select", "", "jq expression applied to every document")
	cmd.Flags().StringVar(&f.unwrap, "unwrap", "", "JSON pointer applied to every document, e.g. /data/-")
}

// registerSource registers the flags that do not reshape documents.
func (f *inferFlags) registerSource(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "", "Input syntax: json or yaml (default: from file extension, else json)")
	cmd.Flags().StringVar(&f.hintsFile, "hints", "", "Hint file (JSON array or object keyed by path)")
}

// engine builds an inference engine from the flags and the environment.
func (f *inferFlags) engine(cfg *config.Config, paths []string, stats bool) (*inference.Engine, error) {
	format, err := resolveFormat(f.format, paths)
	if err != nil {
		return nil, err
	}
	pairs, err := loadHints(f.hintsFile)
	if err != nil {
		return nil, err
	}
	return inference.New(hints.New(pairs...), inference.Options{
		Format:     format,
		Unwrap:     f.unwrap,
		Select:     f.selectExp,
		Workers:    cfg.InferWorkers,
		MaxSamples: cfg.MaxSamples,
		Stats:      stats,
	})
}

// infer reads the inputs named by args and folds them into one result.
func (f *inferFlags) infer(cmd *cobra.Command, cfg *config.Config, args []string, stats bool) (*inference.Result, error) {
	engine, err := f.engine(cfg, args, stats)
	if err != nil {
		return nil, err
	}
	inputs, err := readInputs(cmd.InOrStdin(), args, cfg.MaxSampleBytes)
	if err != nil {
		return nil, err
	}
	res, err := engine.Infer(cmd.Context(), inputs...)
	if err != nil {
		return nil, err
	}
	slog.Debug("inferred shape", slog.Int("samples", res.Samples), slog.String("shape", res.Shape.String()))
	return res, nil
}

type genOptions struct {
	inferFlags
	name           string
	mode           string
	propertyFormat string
	importStyle    string
	denyUnknown    bool
	useDefault     bool
	goPackage      string
	collectExtra   bool
}

func newRootCmd() *cobra.Command {
	var (
		opts     genOptions
		logLevel string
		cfg      *config.Config
		cleanup  func() error
	)

	root := &cobra.Command{
		Use:   "shapegen [file...]",
		Short: "Generate type declarations from sample JSON or YAML",
		Long: `shapegen infers one shape from sample documents and prints it as Go structs,
TypeScript interfaces or aliases, Python TypedDicts, or a JSON Schema.

Each file is one input; an input may hold several concatenated documents, and
every document is one sample. With no files, or "-", stdin is read.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			logCfg := cfg.Logging()
			logCfg.Output = cmd.ErrOrStderr()
			if logLevel != "" {
				logCfg.Level = logLevel
			}
			cleanup, err = logging.Setup(logCfg)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cleanup != nil {
				return cleanup()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, cfg, &opts, args)
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Logging level (debug, info, warn, error); overrides LOG_LEVEL")

	opts.inferFlags.register(root)
	root.Flags().StringVarP(&opts.name, "name", "n", "", "Root type name (default: Root)")
	root.Flags().StringVarP(&opts.mode, "mode", "m", "", fmt.Sprintf("Output mode: %s (default: DEFAULT_OUTPUT_MODE)", joinModes()))
	root.Flags().StringVar(&opts.propertyFormat, "property-format", "", "Rename properties: camelCase, snake_case, PascalCase, kebab-case, ...")
	root.Flags().StringVar(&opts.importStyle, "import-style", string(codegen.ImportAdd), "Opaque type references: add_imports, assume_existing, qualified_paths")
	root.Flags().BoolVar(&opts.denyUnknown, "deny-unknown", false, "Close JSON Schema records to unknown properties")
	root.Flags().BoolVar(&opts.useDefault, "use-default", false, "Render fields missing from some samples as their plain type")
	root.Flags().StringVar(&opts.goPackage, "package", "model", "Package clause for Go output")
	root.Flags().BoolVar(&opts.collectExtra, "collect-additional", false, "Add an index signature for unknown properties to TypeScript records")

	root.AddCommand(newShapeCmd(&cfg))
	root.AddCommand(newCheckCmd(&cfg))
	root.AddCommand(newCaseCmd())

	return root
}

func runGenerate(cmd *cobra.Command, cfg *config.Config, opts *genOptions, args []string) error {
	copts, err := opts.codegenOptions(cfg)
	if err != nil {
		return err
	}
	res, err := opts.infer(cmd, cfg, args, false)
	if err != nil {
		return err
	}
	out, err := codegen.CodegenFromShape(opts.name, res.Shape, copts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

func (o *genOptions) codegenOptions(cfg *config.Config) (codegen.Options, error) {
	copts := codegen.DefaultOptions()

	mode := o.mode
	if mode == "" {
		mode = cfg.DefaultOutputMode
	}
	m, err := codegen.ParseOutputMode(mode)
	if err != nil {
		return copts, err
	}
	copts.OutputMode = m

	if o.propertyFormat != "" {
		t, err := wordcase.ParseTransform(o.propertyFormat)
		if err != nil {
			return copts, err
		}
		copts.PropertyNameFormat = t
	}
	style, err := codegen.ParseImportStyle(o.importStyle)
	if err != nil {
		return copts, err
	}
	copts.ImportStyle = style
	copts.DenyUnknownFields = o.denyUnknown
	copts.UseDefaultForMissingFields = o.useDefault
	copts.GoPackage = o.goPackage
	copts.CollectAdditional = o.collectExtra
	return copts, nil
}

func joinModes() string {
	names := make([]string, len(codegen.OutputModes))
	for i, m := range codegen.OutputModes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
