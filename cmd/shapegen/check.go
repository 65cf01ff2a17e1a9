package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/usestring/shapegen/internal/config"
	"github.com/usestring/shapegen/pkg/inference"
	"github.com/usestring/shapegen/pkg/jsonschema"
	"github.com/usestring/shapegen/pkg/value"
)

func newCheckCmd(cfg **config.Config) *cobra.Command {
	var (
		flags       inferFlags
		samples     []string
		denyUnknown bool
	)
	cmd := &cobra.Command{
		Use:   "check --samples file[,file...] file...",
		Short: "Check documents against the shape inferred from samples",
		Long: `Infer a shape from --samples, render it as JSON Schema and validate every
document of the remaining files against it. Exits non-zero when any document
does not match.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(samples) == 0 {
				return fmt.Errorf("--samples is required")
			}
			res, err := flags.infer(cmd, *cfg, samples, false)
			if err != nil {
				return err
			}
			validator, err := jsonschema.NewValidator(jsonschema.Render(res.Shape, jsonschema.Options{
				DenyUnknownFields: denyUnknown,
			}))
			if err != nil {
				return err
			}

			format, err := resolveFormat(flags.format, args)
			if err != nil {
				return err
			}
			decode := value.DecodeJSON
			if format == inference.FormatYAML {
				decode = value.DecodeYAML
			}

			inputs, err := readInputs(cmd.InOrStdin(), args, (*cfg).MaxSampleBytes)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			total, failed := 0, 0
			for i, input := range inputs {
				docs, err := decode(input)
				if err != nil {
					return fmt.Errorf("%s: %w", displayPath(args[i]), err)
				}
				for d, doc := range docs {
					total++
					data, err := json.Marshal(doc.Interface())
					if err != nil {
						return err
					}
					r := validator.ValidateJSON(data)
					if r.Valid {
						continue
					}
					failed++
					fmt.Fprintf(out, "%s#%d: %s\n", displayPath(args[i]), d, strings.Join(r.Errors, "; "))
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents do not match", failed, total)
			}
			fmt.Fprintf(out, "all %d documents match\n", total)
			return nil
		},
	}
	flags.registerSource(cmd)
	cmd.Flags().StringSliceVar(&samples, "samples", nil, "Files to infer the reference shape from")
	cmd.Flags().BoolVar(&denyUnknown, "deny-unknown", false, "Report properties the shape does not know")
	return cmd
}
