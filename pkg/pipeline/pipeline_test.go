package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/counter"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graph"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/random"
)

func testConfig() *Config {
	config := NewConfig()
	config.Set("logging.level", "disabled")
	config.Set("logging.enable_progress", false)
	return config
}

func testGraph(t *testing.T) *graph.CSR {
	t.Helper()
	g, err := random.Generate(random.Params{Seed: 7, Nodes: 120, MaxDegree: 4, Labels: 3})
	require.NoError(t, err)
	return g
}

type memorySink struct {
	mu    sync.Mutex
	edges map[[2]int]counter.Counter
}

func (s *memorySink) PutEdge(src, dst int, c counter.Counter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges[[2]int{src, dst}] = counter.Sum(c)
	return nil
}

func TestRunParallelMatchesSequential(t *testing.T) {
	g := testGraph(t)

	sequentialConfig := testConfig()
	sequentialConfig.Set("performance.parallel", false)
	sequential, err := Run(context.Background(), g, sequentialConfig, nil)
	require.NoError(t, err)

	tests := []struct {
		name      string
		workers   int
		chunkSize int
		strategy  string
	}{
		{"many small chunks", 8, 3, "sparse"},
		{"one chunk", 4, 0, "sparse"},
		{"dense counters", 3, 17, "dense"},
		{"auto counters", 2, 50, "auto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig()
			config.Set("performance.num_workers", tt.workers)
			config.Set("performance.chunk_size", tt.chunkSize)
			config.Set("algorithm.counter_strategy", tt.strategy)

			result, err := Run(context.Background(), g, config, nil)
			require.NoError(t, err)
			assert.True(t, counter.Equal(sequential.Totals, result.Totals))
			assert.Equal(t, int64(g.NumberOfEdges()), result.Statistics.Classified)
			assert.Equal(t, tt.workers, result.Statistics.Workers)
			assert.NotEmpty(t, result.RunID)
		})
	}
}

func TestRunBothDirections(t *testing.T) {
	g := testGraph(t)

	canonical, err := Run(context.Background(), g, testConfig(), nil)
	require.NoError(t, err)

	config := testConfig()
	config.Set("algorithm.canonical_edges", false)
	both, err := Run(context.Background(), g, config, nil)
	require.NoError(t, err)

	assert.Equal(t, 2*canonical.Statistics.Classified, both.Statistics.Classified)

	once, err := counter.KindTotals(canonical.Totals, canonical.Hash)
	require.NoError(t, err)
	twice, err := counter.KindTotals(both.Totals, both.Hash)
	require.NoError(t, err)
	for kind := range once {
		assert.Equal(t, 2*once[kind], twice[kind], "kind %d", kind)
	}
}

func TestRunFeedsSink(t *testing.T) {
	g := testGraph(t)
	sink := &memorySink{edges: map[[2]int]counter.Counter{}}

	result, err := Run(context.Background(), g, testConfig(), sink)
	require.NoError(t, err)
	require.Len(t, sink.edges, g.NumberOfEdges())

	stored := make([]counter.Counter, 0, len(sink.edges))
	for edge, c := range sink.edges {
		assert.Less(t, edge[0], edge[1])
		stored = append(stored, c)
	}
	assert.True(t, counter.Equal(result.Totals, counter.Sum(stored...)))
}

func TestRunWithVerification(t *testing.T) {
	config := testConfig()
	config.Set("algorithm.verify", true)

	_, err := Run(context.Background(), testGraph(t), config, nil)
	require.NoError(t, err)
}

func TestRunErrors(t *testing.T) {
	g := testGraph(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, g, testConfig(), nil)
	require.ErrorIs(t, err, context.Canceled)

	config := testConfig()
	config.Set("algorithm.counter_strategy", "btree")
	_, err = Run(context.Background(), g, config, nil)
	require.ErrorIs(t, err, counter.ErrUnknownStrategy)

	config = testConfig()
	config.Set("algorithm.key_bits", 8)
	_, err = Run(context.Background(), g, config, nil)
	require.Error(t, err)
}

func TestSplitNodes(t *testing.T) {
	assert.Equal(t, []nodeRange{{0, 4}, {4, 8}, {8, 10}}, splitNodes(10, 4))
	assert.Equal(t, []nodeRange{{0, 10}}, splitNodes(10, 0))
	assert.Empty(t, splitNodes(0, 4))
}

func TestConfig(t *testing.T) {
	config := NewConfig()
	assert.Equal(t, "auto", config.CounterStrategy())
	assert.Equal(t, 64, config.KeyBits())
	assert.True(t, config.CanonicalEdges())
	assert.False(t, config.Verify())
	assert.Positive(t, config.NumWorkers())

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
algorithm:
  counter_strategy: dense
  verify: true
performance:
  num_workers: 3
output:
  format: json
`), 0o644))
	require.NoError(t, config.LoadFromFile(path))

	assert.Equal(t, "dense", config.CounterStrategy())
	assert.True(t, config.Verify())
	assert.Equal(t, 3, config.NumWorkers())
	assert.Equal(t, "json", config.OutputFormat())
	assert.Equal(t, 8192, config.DenseLimit())

	config.Set("logging.level", "not-a-level")
	logger := config.CreateLogger()
	assert.Equal(t, "info", logger.GetLevel().String())
}
