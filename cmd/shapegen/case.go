package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/usestring/shapegen/pkg/naming"
	"github.com/usestring/shapegen/pkg/wordcase"
)

func newCaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "case name...",
		Short: "Show how names are re-cased by the generators",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for i, name := range args {
				if i > 0 {
					fmt.Fprintln(tw)
				}
				fmt.Fprintf(tw, "%s\n", name)
				for t := wordcase.Lower; t <= wordcase.ScreamingKebab; t++ {
					fmt.Fprintf(tw, "  %s\t%s\n", t, t.Apply(name))
				}
				fmt.Fprintf(tw, "  type name\t%s\n", naming.TypeIdent(name))
				fmt.Fprintf(tw, "  singular\t%s\n", wordcase.ToSingular(name))
			}
			return tw.Flush()
		},
	}
}
