package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/counter"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graph"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/hetero"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/report"
)

var edgeVerify bool

var edgeCmd = &cobra.Command{
	Use:   "edge [nodes.csv edges.csv] <src> <dst>",
	Short: "Classify the graphlets of a single edge",
	Args:  cobra.RangeArgs(2, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, rest, err := loadGraph(args)
		if err != nil {
			return err
		}
		if len(rest) != 2 {
			return fmt.Errorf("expected <src> <dst>, got %d arguments", len(rest))
		}
		src, dst, err := parseEdge(g, rest[0], rest[1])
		if err != nil {
			return err
		}

		classifier, err := newClassifier(g)
		if err != nil {
			return err
		}
		c := classifier.Classify(src, dst)
		if edgeVerify {
			if err := classifier.Verify(src, dst); err != nil {
				return err
			}
		}

		format, err := report.ParseFormat(config.OutputFormat())
		if err != nil {
			return err
		}
		rep, err := report.Build(c, classifier.Hash())
		if err != nil {
			return err
		}
		return report.Write(cmd.OutOrStdout(), rep, format)
	},
}

func init() {
	addGraphFlags(edgeCmd)
	edgeCmd.Flags().BoolVar(&edgeVerify, "verify", false, "cross-check against set operations and brute force")
	edgeCmd.Flags().String("format", "text", "report format: text, json, yaml or csv")
}

func parseEdge(g graph.Graph, srcArg, dstArg string) (int, int, error) {
	src, err := strconv.Atoi(srcArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid src %q: %w", srcArg, err)
	}
	dst, err := strconv.Atoi(dstArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid dst %q: %w", dstArg, err)
	}
	if src < 0 || dst < 0 || src >= g.NumberOfNodes() || dst >= g.NumberOfNodes() {
		return 0, 0, fmt.Errorf("nodes must be in [0, %d): %w", g.NumberOfNodes(), graph.ErrNodeOutOfRange)
	}
	if !graph.HasEdge(g, src, dst) {
		return 0, 0, fmt.Errorf("(%d, %d) is not an edge", src, dst)
	}
	return src, dst, nil
}

// newClassifier builds a classifier configured from the algorithm keys.
func newClassifier(g graph.TypedGraph) (*hetero.Classifier, error) {
	strategy, err := counter.ParseStrategy(config.CounterStrategy())
	if err != nil {
		return nil, err
	}
	return hetero.New(g,
		hetero.WithCounterStrategy(strategy, config.DenseLimit()),
		hetero.WithKeyBits(config.KeyBits()),
	)
}
