package hetero

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/counter"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graph"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graphlet"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/random"
)

// uniform builds the expected counter of a single-label graph.
func uniform(h *graphlet.PerfectHash, counts map[graphlet.Kind]uint64) counter.Counter {
	out := counter.NewSparse()
	for kind, n := range counts {
		fourth := graph.Label(0)
		if kind.Nodes() == 3 {
			fourth = h.Dummy()
		}
		out.InsertCount(h.Encode(0, 0, 0, fourth, kind), n)
	}
	return out
}

func TestClassifySingleLabelScenarios(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		src, dst int
		want     map[graphlet.Kind]uint64
	}{
		{
			name: "path centre edge",
			expr: "0-1-2-3-4",
			src:  1, dst: 2,
			want: map[graphlet.Kind]uint64{graphlet.Triad: 2, graphlet.FourPathEdge: 1, graphlet.FourPathCenter: 1},
		},
		{
			name: "four clique",
			expr: "0-1-2-3-0-2, 1-3",
			src:  0, dst: 1,
			want: map[graphlet.Kind]uint64{graphlet.Triangle: 2, graphlet.FourClique: 1},
		},
		{
			name: "four cycle",
			expr: "0-1-2-3-0",
			src:  0, dst: 1,
			want: map[graphlet.Kind]uint64{graphlet.Triad: 2, graphlet.FourCycle: 1},
		},
		{
			name: "four cycle reversed",
			expr: "0-1-2-3-0",
			src:  1, dst: 0,
			want: map[graphlet.Kind]uint64{graphlet.Triad: 2, graphlet.FourCycle: 1},
		},
		{
			name: "star",
			expr: "0-1, 0-2, 0-3",
			src:  0, dst: 1,
			want: map[graphlet.Kind]uint64{graphlet.Triad: 2, graphlet.FourStar: 1},
		},
		{
			name: "tailed triangle opposite the tail",
			expr: "0-1-2-0, 2-3",
			src:  0, dst: 1,
			want: map[graphlet.Kind]uint64{graphlet.Triangle: 1, graphlet.TailedTriCenter: 1},
		},
		{
			name: "tailed triangle next to the tail",
			expr: "0-1-2-0, 2-3",
			src:  0, dst: 2,
			want: map[graphlet.Kind]uint64{graphlet.Triangle: 1, graphlet.Triad: 1, graphlet.TailedTriEdge: 1},
		},
		{
			name: "tailed triangle tail",
			expr: "0-1-2-0, 2-3",
			src:  2, dst: 3,
			want: map[graphlet.Kind]uint64{graphlet.Triad: 2, graphlet.TailedTriTail: 1},
		},
		{
			name: "diamond chord",
			expr: "0-1-2-3-0, 0-2",
			src:  0, dst: 2,
			want: map[graphlet.Kind]uint64{graphlet.Triangle: 2, graphlet.ChordalCycleCenter: 1},
		},
		{
			name: "diamond rim",
			expr: "0-1-2-3-0, 0-2",
			src:  0, dst: 1,
			want: map[graphlet.Kind]uint64{graphlet.Triangle: 1, graphlet.Triad: 1, graphlet.ChordalCycleEdge: 1},
		},
		{
			name: "isolated edge",
			expr: "0-1, 2-3",
			src:  0, dst: 1,
			want: map[graphlet.Kind]uint64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.MustParseExpr(tt.expr)
			c, err := New(g)
			require.NoError(t, err)

			got := c.Classify(tt.src, tt.dst)
			want := uniform(c.Hash(), tt.want)
			assert.True(t, counter.Equal(got, want), describeDiff(c.Hash(), got, want))
			require.NoError(t, c.Verify(tt.src, tt.dst))
		})
	}
}

func TestClassifyMixedLabels(t *testing.T) {
	// 4-cycle 0-1-2-3 with labels 0,1,0,2 plus a pendant 4 (label 1) on 3.
	g := graph.MustParseExpr("0:0-1:1-2:0-3:2-0, 3-4:1")
	c, err := New(g)
	require.NoError(t, err)
	h := c.Hash()

	got := c.Classify(0, 1)
	want := counter.NewSparse()
	want.Insert(h.Encode(0, 1, 2, h.Dummy(), graphlet.Triad))
	want.Insert(h.Encode(0, 1, 0, h.Dummy(), graphlet.Triad))
	// Node 2 (label 0) on the dst side meets node 3 (label 2) on the src side.
	want.Insert(h.Encode(0, 1, 0, 2, graphlet.FourCycle))
	// 4-3-0-1.
	want.Insert(h.Encode(0, 1, 1, 2, graphlet.FourPathEdge))

	assert.True(t, counter.Equal(got, want), describeDiff(h, got, want))
	require.NoError(t, c.Verify(0, 1))
}

func TestClassifyMatchesBruteForceOnRandomGraphs(t *testing.T) {
	for _, p := range []random.Params{
		{Seed: 1, Nodes: 30, MaxDegree: 3, Labels: 1},
		{Seed: 2, Nodes: 40, MaxDegree: 4, Labels: 2},
		{Seed: 3, Nodes: 25, MaxDegree: 6, Labels: 3},
		{Seed: 4, Nodes: 12, MaxDegree: 8, Labels: 2},
		{Seed: 5, Nodes: 60, MaxDegree: 3, Labels: 5},
	} {
		g, err := random.Generate(p)
		require.NoError(t, err)
		c, err := New(g)
		require.NoError(t, err)

		graph.ForEachEdge(g, func(src, dst int) bool {
			require.NoError(t, c.Verify(src, dst))
			require.NoError(t, c.Verify(dst, src))
			return true
		})
	}
}

func TestCounterStrategiesAgree(t *testing.T) {
	g, err := random.Generate(random.Params{Seed: 11, Nodes: 30, MaxDegree: 5, Labels: 3})
	require.NoError(t, err)

	sparse, err := New(g, WithCounterStrategy(counter.Sparse, 0))
	require.NoError(t, err)
	dense, err := New(g, WithCounterStrategy(counter.Dense, 0))
	require.NoError(t, err)

	graph.ForEachEdge(g, func(src, dst int) bool {
		a := sparse.Classify(src, dst)
		b := dense.Classify(src, dst)
		_, isDense := b.(*counter.DenseCounter)
		require.True(t, isDense)
		require.True(t, counter.Equal(a, b), "edge (%d, %d)", src, dst)
		return true
	})
}

func TestClassifyConcurrently(t *testing.T) {
	g, err := random.Generate(random.Params{Seed: 21, Nodes: 80, MaxDegree: 4, Labels: 2})
	require.NoError(t, err)
	c, err := New(g)
	require.NoError(t, err)

	var edges [][2]int
	graph.ForEachEdge(g, func(src, dst int) bool {
		edges = append(edges, [2]int{src, dst})
		return true
	})

	sequential := counter.NewSparse()
	for _, e := range edges {
		sequential.Merge(c.Classify(e[0], e[1]))
	}

	const workers = 4
	partials := make([]counter.Counter, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			partial := counter.NewSparse()
			for i := w; i < len(edges); i += workers {
				partial.Merge(c.Classify(edges[i][0], edges[i][1]))
			}
			partials[w] = partial
		}(w)
	}
	wg.Wait()

	assert.True(t, counter.Equal(sequential, counter.Sum(partials...)))
}

func TestNewRejectsOversizedLabelDomain(t *testing.T) {
	g, err := random.Generate(random.Params{Seed: 1, Nodes: 10, MaxDegree: 2, Labels: 2})
	require.NoError(t, err)

	_, err = New(g, WithKeyBits(8))
	require.ErrorIs(t, err, graphlet.ErrKeyOverflow)

	_, err = New(g, WithCounterStrategy("trie", 0))
	require.ErrorIs(t, err, counter.ErrUnknownStrategy)
}

func TestClassifySelfLoopPanics(t *testing.T) {
	c, err := New(graph.MustParseExpr("0-1"))
	require.NoError(t, err)
	assert.Panics(t, func() { c.Classify(1, 1) })
}
