// Package pipeline classifies every edge of a typed graph in parallel and
// reduces the per-edge counters into run totals.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/counter"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graph"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graphlet"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/hetero"
)

// EdgeSink receives the counter of every classified edge. The counter is
// reused after PutEdge returns. Implementations must be safe for concurrent
// use when the run is parallel.
type EdgeSink interface {
	PutEdge(src, dst int, c counter.Counter) error
}

// Result represents the run output
type Result struct {
	RunID      string                `json:"run_id"`
	Totals     counter.Counter       `json:"-"`
	Hash       *graphlet.PerfectHash `json:"-"`
	Statistics Statistics            `json:"statistics"`
}

// Statistics contains run metrics
type Statistics struct {
	Nodes        int   `json:"nodes"`
	Edges        int   `json:"edges"`
	Labels       int   `json:"labels"`
	Classified   int64 `json:"classified_edges"`
	DistinctKeys int   `json:"distinct_keys"`
	Workers      int   `json:"workers"`
	Chunks       int   `json:"chunks"`
	RuntimeMS    int64 `json:"runtime_ms"`
}

type nodeRange struct {
	from, to int
}

// Run classifies the edges of g and merges the results. With canonical
// edges only src < dst is visited, otherwise both directions are.
// Cancelling ctx stops the run between edges.
func Run(ctx context.Context, g graph.TypedGraph, config *Config, sink EdgeSink) (*Result, error) {
	startTime := time.Now()
	logger := config.CreateLogger()
	runID := uuid.New().String()

	logger.Info().
		Str("run_id", runID).
		Int("nodes", g.NumberOfNodes()).
		Int("edges", g.NumberOfEdges()).
		Int("labels", g.NumberOfNodeLabels()).
		Msg("Starting graphlet classification")

	if err := graph.Validate(g); err != nil {
		return nil, fmt.Errorf("invalid graph: %w", err)
	}

	strategy, err := counter.ParseStrategy(config.CounterStrategy())
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	classifier, err := hetero.New(g,
		hetero.WithCounterStrategy(strategy, config.DenseLimit()),
		hetero.WithKeyBits(config.KeyBits()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare classifier: %w", err)
	}

	workers := 1
	if config.Parallel() && config.NumWorkers() > 1 {
		workers = config.NumWorkers()
	}
	chunks := splitNodes(g.NumberOfNodes(), config.ChunkSize())

	expected := int64(g.NumberOfEdges())
	if !config.CanonicalEdges() {
		expected *= 2
	}
	progress := newProgress(logger, expected, config.EnableProgress(), config.ProgressIntervalMS())
	stopProgress := progress.start()

	partials := make([]counter.Counter, len(chunks))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, chunk := range chunks {
		group.Go(func() error {
			partial, err := classifyChunk(groupCtx, classifier, chunk, config, sink, progress)
			partials[i] = partial
			return err
		})
	}
	err = group.Wait()
	stopProgress()
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}

	totals := classifier.NewCounter()
	for _, partial := range partials {
		totals.Merge(partial)
	}

	result := &Result{
		RunID:  runID,
		Totals: totals,
		Hash:   classifier.Hash(),
		Statistics: Statistics{
			Nodes:        g.NumberOfNodes(),
			Edges:        g.NumberOfEdges(),
			Labels:       g.NumberOfNodeLabels(),
			Classified:   progress.done.Load(),
			DistinctKeys: totals.Len(),
			Workers:      workers,
			Chunks:       len(chunks),
			RuntimeMS:    time.Since(startTime).Milliseconds(),
		},
	}

	logger.Info().
		Str("run_id", runID).
		Int64("classified_edges", result.Statistics.Classified).
		Int("distinct_keys", result.Statistics.DistinctKeys).
		Int64("runtime_ms", result.Statistics.RuntimeMS).
		Msg("Graphlet classification completed")

	return result, nil
}

// classifyChunk classifies the edges whose source lies in chunk and returns
// their merged counts.
func classifyChunk(ctx context.Context, c *hetero.Classifier, chunk nodeRange, config *Config, sink EdgeSink, progress *progress) (counter.Counter, error) {
	partial := c.NewCounter()
	scratch := c.NewCounter()
	verify := config.Verify()

	var err error
	visit := func(src, dst int) bool {
		if err = ctx.Err(); err != nil {
			return false
		}
		scratch.Reset()
		c.ClassifyInto(src, dst, scratch)
		if verify {
			if err = c.Verify(src, dst); err != nil {
				return false
			}
		}
		if sink != nil {
			if err = sink.PutEdge(src, dst, scratch); err != nil {
				err = fmt.Errorf("failed to store edge (%d, %d): %w", src, dst, err)
				return false
			}
		}
		partial.Merge(scratch)
		progress.add()
		return true
	}

	g := c.Graph()
	if config.CanonicalEdges() {
		graph.ForEachEdgeInRange(g, chunk.from, chunk.to, visit)
		return partial, err
	}
	for src := chunk.from; src < chunk.to; src++ {
		for _, dst := range g.Neighbours(src) {
			if !visit(src, dst) {
				return partial, err
			}
		}
	}
	return partial, err
}

func splitNodes(n, chunkSize int) []nodeRange {
	if chunkSize <= 0 {
		chunkSize = n
	}
	var chunks []nodeRange
	for from := 0; from < n; from += chunkSize {
		chunks = append(chunks, nodeRange{from: from, to: min(from+chunkSize, n)})
	}
	return chunks
}
