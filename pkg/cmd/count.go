package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graph"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/pipeline"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/report"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/store"
)

var writeFiles bool

var countCmd = &cobra.Command{
	Use:   "count [nodes.csv edges.csv]",
	Short: "Count the graphlets of every edge and print the totals",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, _, err := loadGraph(args)
		if err != nil {
			return err
		}
		return runAndReport(cmd, g)
	},
}

func init() {
	addGraphFlags(countCmd)
	addRunFlags(countCmd)
}

// addRunFlags registers the flags of commands that run the pipeline.
func addRunFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Bool("verify", false, "cross-check every edge against set operations and brute force")
	flags.Bool("canonical", true, "classify only src < dst; otherwise both directions")
	flags.Bool("parallel", true, "classify chunks in parallel")
	flags.Int("workers", runtime.NumCPU(), "number of workers")
	flags.Int("chunk-size", 1024, "source nodes per work unit")
	flags.Bool("progress", true, "log progress")
	flags.String("format", "text", "report format: text, json, yaml or csv")
	flags.String("output-dir", "output", "directory for --write")
	flags.String("prefix", "graphlets", "file name prefix for --write")
	flags.String("store", "", "badger directory receiving per-edge counters")
	flags.BoolVar(&writeFiles, "write", false, "write the report in every format plus a summary")
}

// runAndReport runs the pipeline over g, printing the totals to stdout and
// optionally persisting files and per-edge counters.
func runAndReport(cmd *cobra.Command, g graph.TypedGraph) error {
	format, err := report.ParseFormat(config.OutputFormat())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var sink pipeline.EdgeSink
	var s *store.Store
	if path := config.StorePath(); path != "" {
		if s, err = store.Open(store.Options{Path: path}); err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer s.Close()
		sink = s
	}

	result, err := pipeline.Run(ctx, g, config, sink)
	if err != nil {
		return err
	}

	if s != nil {
		meta := store.Meta{
			RunID:          result.RunID,
			NumberOfLabels: result.Statistics.Labels,
			Edges:          result.Statistics.Classified,
		}
		if err := s.PutMeta(meta); err != nil {
			return fmt.Errorf("failed to store run metadata: %w", err)
		}
	}

	rep, err := report.Build(result.Totals, result.Hash)
	if err != nil {
		return err
	}
	if writeFiles {
		err := report.NewFileWriter().WriteAll(rep, result.RunID, result.Statistics, config.OutputDir(), config.OutputPrefix())
		if err != nil {
			return err
		}
	}
	return report.Write(cmd.OutOrStdout(), rep, format)
}

