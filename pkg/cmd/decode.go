package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graphlet"
)

var decodeLabels int

var decodeCmd = &cobra.Command{
	Use:   "decode <key>...",
	Short: "Decode graphlet keys into kind and labels",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := graphlet.NewPerfectHashWidth(decodeLabels, config.KeyBits())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, arg := range args {
			key, err := strconv.ParseUint(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid key %q: %w", arg, err)
			}
			t, err := h.Decode(graphlet.Key(key))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d\t%s\n", key, t)
		}
		return nil
	},
}

func init() {
	decodeCmd.Flags().IntVarP(&decodeLabels, "labels", "l", 1, "number of node labels the keys were encoded with")
}
