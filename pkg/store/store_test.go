package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/counter"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graphlet"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/pipeline"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/random"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Options{})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetEdge(t *testing.T) {
	s := openMemory(t)
	h, err := graphlet.NewPerfectHash(3)
	require.NoError(t, err)

	c := counter.NewSparse()
	c.InsertCount(h.Encode(0, 2, 1, h.Dummy(), graphlet.Triad), 4)
	c.InsertCount(h.Encode(0, 2, 1, 2, graphlet.FourCycle), 1)
	c.InsertCount(h.MaximalHash(), 1<<40)

	require.NoError(t, s.PutEdge(3, 9, c))

	got, err := s.GetEdge(3, 9)
	require.NoError(t, err)
	assert.True(t, counter.Equal(c, got))

	_, err = s.GetEdge(9, 3)
	assert.ErrorIs(t, err, ErrEdgeNotFound)

	empty := counter.NewSparse()
	require.NoError(t, s.PutEdge(1, 2, empty))
	got, err = s.GetEdge(1, 2)
	require.NoError(t, err)
	assert.Zero(t, got.Len())
}

func TestForEachEdgeIsOrdered(t *testing.T) {
	s := openMemory(t)
	edges := [][2]int{{5, 6}, {0, 300}, {0, 2}, {257, 1}}
	for i, e := range edges {
		c := counter.NewSparse()
		c.InsertCount(graphlet.Key(i), uint64(i+1))
		require.NoError(t, s.PutEdge(e[0], e[1], c))
	}

	var visited [][2]int
	require.NoError(t, s.ForEachEdge(func(src, dst int, c counter.Counter) error {
		visited = append(visited, [2]int{src, dst})
		assert.Equal(t, 1, c.Len())
		return nil
	}))
	assert.Equal(t, [][2]int{{0, 2}, {0, 300}, {5, 6}, {257, 1}}, visited)

	n, err := s.CountEdges()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestMeta(t *testing.T) {
	s := openMemory(t)

	_, err := s.GetMeta()
	assert.ErrorIs(t, err, ErrMetaNotFound)

	want := Meta{RunID: "3b241101-e2bb-4255-8caf-4136c566a962", NumberOfLabels: 4, Edges: 1234}
	require.NoError(t, s.PutMeta(want))
	got, err := s.GetMeta()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeCorruptValue(t *testing.T) {
	_, err := decodeCounter([]byte{0x03, 0x01})
	assert.ErrorIs(t, err, ErrCorruptValue)

	_, _, err = parseEdgeKey([]byte{edgePrefix, 1})
	assert.ErrorIs(t, err, ErrCorruptValue)
}

func TestReadOnlyNeedsPath(t *testing.T) {
	_, err := Open(Options{ReadOnly: true})
	assert.ErrorIs(t, err, ErrBadStoreParam)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(Options{Path: dir})
	require.NoError(t, err)

	c := counter.NewSparse()
	c.InsertCount(7, 3)
	require.NoError(t, s.PutEdge(1, 2, c))
	require.NoError(t, s.Close())

	s, err = Open(Options{Path: dir})
	require.NoError(t, err)
	defer s.Close()
	got, err := s.GetEdge(1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got.Count(7))
}

func TestStoreAsPipelineSink(t *testing.T) {
	g, err := random.Generate(random.Params{Seed: 5, Nodes: 60, MaxDegree: 3, Labels: 2})
	require.NoError(t, err)

	config := pipeline.NewConfig()
	config.Set("logging.level", "disabled")
	config.Set("performance.num_workers", 4)
	config.Set("performance.chunk_size", 7)

	s := openMemory(t)
	result, err := pipeline.Run(context.Background(), g, config, s)
	require.NoError(t, err)

	n, err := s.CountEdges()
	require.NoError(t, err)
	assert.Equal(t, g.NumberOfEdges(), n)

	var stored []counter.Counter
	require.NoError(t, s.ForEachEdge(func(_, _ int, c counter.Counter) error {
		stored = append(stored, c)
		return nil
	}))
	assert.True(t, counter.Equal(result.Totals, counter.Sum(stored...)))
}
