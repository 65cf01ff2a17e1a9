package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/usestring/shapegen/internal/config"
)

func newShapeCmd(cfg **config.Config) *cobra.Command {
	var (
		flags  inferFlags
		stats  bool
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "shape [file...]",
		Short: "Print the inferred shape without generating code",
		Long: `Print the inferred shape in the description language, e.g.

  {id: integer, tags?: ?[]string}

"?T" is T or null; "key?" is missing from at least one sample.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := flags.infer(cmd, *cfg, args, stats)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"description": res.Shape.String(),
					"shape":       res.Shape,
					"samples":     res.Samples,
					"stats":       res.Stats,
				})
			}

			fmt.Fprintln(out, res.Shape.String())
			if !stats {
				return nil
			}
			fmt.Fprintf(out, "\n%d samples\n", res.Samples)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PATH\tSHAPE\tFREQ\tREQUIRED\tNULLABLE\tDISTINCT\tFORMAT")
			for _, st := range res.Stats {
				format := st.Format
				if len(st.EnumValues) > 0 {
					format += " [" + strings.Join(st.EnumValues, "|") + "]"
				}
				fmt.Fprintf(tw, "%s\t%s\t%.2f\t%t\t%t\t%d\t%s\n",
					displayStatPath(st.Path), st.Shape, st.Frequency, st.Required, st.Nullable, st.DistinctCount, format)
			}
			return tw.Flush()
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&stats, "stats", false, "Print per-path statistics")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the shape and statistics as JSON")
	return cmd
}

func displayStatPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
