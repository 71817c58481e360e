package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graphlet"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the graphlet kinds and their ordinals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ORDINAL\tKIND\tNODES\tDERIVED\tREDUCED")
		for _, k := range graphlet.Kinds() {
			fmt.Fprintf(w, "%d\t%s\t%d\t%t\t%s\n", k, k, k.Nodes(), k.Derived(), k.Reduced())
		}
		return w.Flush()
	},
}
