package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/random"
)

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Count the graphlets of a reproducible random typed graph",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := random.Params{
			Seed:      config.RandomSeed(),
			Nodes:     config.RandomNodes(),
			MaxDegree: config.RandomMaxDegree(),
			Labels:    config.RandomLabels(),
		}
		g, err := random.Generate(params)
		if err != nil {
			return err
		}
		log.Info().
			Uint64("seed", params.Seed).
			Int("nodes", g.NumberOfNodes()).
			Int("edges", g.NumberOfEdges()).
			Int("max_degree", g.MaxDegree()).
			Ints("label_histogram", g.LabelHistogram()).
			Msg("Random graph generated")
		return runAndReport(cmd, g)
	},
}

func init() {
	flags := randomCmd.Flags()
	flags.Uint64("seed", 42, "generator seed")
	flags.Int("nodes", 1000, "number of nodes")
	flags.Int("max-degree", 8, "candidate neighbours drawn per node")
	flags.Int("labels", 3, "number of node labels")
	addRunFlags(randomCmd)
}
