// Package cmd implements the graphlets command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graph"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/parser"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/pipeline"
)

var (
	cfgFile   string
	config    = pipeline.NewConfig()
	graphExpr string
	csvOpts   struct {
		delimiter string
		header    bool
	}
)

// flagKeys maps command line flags onto configuration keys. Only flags set
// on the command line override the config file.
var flagKeys = map[string]string{
	"strategy":    "algorithm.counter_strategy",
	"dense-limit": "algorithm.dense_limit",
	"key-bits":    "algorithm.key_bits",
	"verify":      "algorithm.verify",
	"canonical":   "algorithm.canonical_edges",
	"parallel":    "performance.parallel",
	"workers":     "performance.num_workers",
	"chunk-size":  "performance.chunk_size",
	"log-level":   "logging.level",
	"progress":    "logging.enable_progress",
	"output-dir":  "output.dir",
	"prefix":      "output.prefix",
	"format":      "output.format",
	"store":       "store.path",
	"addr":        "server.address",
	"seed":        "random.seed",
	"nodes":       "random.nodes",
	"max-degree":  "random.max_degree",
	"labels":      "random.labels",
}

var rootCmd = &cobra.Command{
	Use:   "graphlets",
	Short: "Per-edge heterogeneous graphlet counts",
	Long: `graphlets classifies every 3- and 4-node graphlet an edge of a typed
graph participates in, keyed by graphlet kind and node labels.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			if err := config.LoadFromFile(cfgFile); err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
		}
		for name, key := range flagKeys {
			if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
				config.Set(key, f.Value.String())
			}
		}
		log.Logger = config.CreateLogger()
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.String("log-level", "info", "log level")
	flags.String("strategy", "auto", "counter strategy: auto, sparse or dense")
	flags.Int("dense-limit", 8192, "largest key domain served by dense counters under auto")
	flags.Int("key-bits", 64, "key width: 8, 16, 32 or 64")

	rootCmd.AddCommand(countCmd, edgeCmd, randomCmd, decodeCmd, kindsCmd, serveCmd)
}

// addGraphFlags registers the flags of commands that read a graph.
func addGraphFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&graphExpr, "expr", "", `graph expression such as "0-1-2, 1:1-3" instead of CSV files`)
	cmd.Flags().StringVar(&csvOpts.delimiter, "delimiter", ",", "CSV column delimiter")
	cmd.Flags().BoolVar(&csvOpts.header, "header", false, "CSV files start with a header record")
}

// loadGraph reads the graph from --expr or from the node and edge lists in
// the leading two arguments, returning the remaining arguments.
func loadGraph(args []string) (*graph.CSR, []string, error) {
	if graphExpr != "" {
		g, err := graph.ParseExpr(graphExpr)
		return g, args, err
	}
	if len(args) < 2 {
		return nil, nil, fmt.Errorf("expected <nodes.csv> <edges.csv> or --expr")
	}

	opts := parser.Options{Header: csvOpts.header}
	if csvOpts.delimiter != "" {
		opts.Delimiter = []rune(csvOpts.delimiter)[0]
	}
	g, err := parser.LoadTypedGraph(args[0], args[1], opts)
	if err != nil {
		return nil, nil, err
	}
	if err := graph.Validate(g); err != nil {
		return nil, nil, fmt.Errorf("invalid graph: %w", err)
	}
	return g, args[2:], nil
}
