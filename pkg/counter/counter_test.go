package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graph"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graphlet"
)

func newHash(t *testing.T, numLabels int) *graphlet.PerfectHash {
	t.Helper()
	h, err := graphlet.NewPerfectHash(numLabels)
	require.NoError(t, err)
	return h
}

func TestCounterContract(t *testing.T) {
	h := newHash(t, 2)
	implementations := []struct {
		name string
		new  func() Counter
	}{
		{"sparse", func() Counter { return NewSparse() }},
		{"dense", func() Counter { return NewDense(h) }},
	}

	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			c := impl.new()
			a := h.Encode(0, 1, 1, h.Dummy(), graphlet.Triad)
			b := h.Encode(1, 1, 0, 1, graphlet.FourCycle)

			assert.Zero(t, c.Count(a))
			assert.Zero(t, c.Len())

			c.Insert(a)
			c.Insert(a)
			c.InsertCount(b, 5)
			c.InsertCount(h.MaximalHash(), 0)

			assert.Equal(t, uint64(2), c.Count(a))
			assert.Equal(t, uint64(5), c.Count(b))
			assert.Zero(t, c.Count(h.MaximalHash()))
			assert.Equal(t, 2, c.Len())
			assert.Equal(t, uint64(7), Total(c))
			assert.Equal(t, []graphlet.Key{a, b}, Keys(c))

			visited := 0
			c.ForEach(func(graphlet.Key, uint64) bool {
				visited++
				return false
			})
			assert.Equal(t, 1, visited)

			c.Reset()
			assert.Zero(t, c.Len())
			assert.Zero(t, c.Count(a))
		})
	}
}

func TestDenseCountOutsideKeySpace(t *testing.T) {
	h := newHash(t, 1)
	assert.Zero(t, NewDense(h).Count(h.MaximalHash()+1))
}

func TestMergeIsAssociativeAndCommutative(t *testing.T) {
	h := newHash(t, 3)

	parts := make([]Counter, 4)
	for i := range parts {
		if i%2 == 0 {
			parts[i] = NewSparse()
		} else {
			parts[i] = NewDense(h)
		}
		for j := 0; j <= i*3; j++ {
			kind := graphlet.Kind(j % graphlet.NumberOfKinds)
			parts[i].InsertCount(h.Encode(graph.Label(j%3), graph.Label(i%3), 0, 2, kind), uint64(j+1))
		}
	}

	sequential := NewSparse()
	for _, p := range parts {
		sequential.Merge(p)
	}

	left := Sum(Sum(parts[0], parts[1]), Sum(parts[2], parts[3]))
	right := Sum(parts[3], parts[1], parts[2], parts[0])

	dense := NewDense(h)
	for i := len(parts) - 1; i >= 0; i-- {
		dense.Merge(parts[i])
	}

	assert.True(t, Equal(sequential, left))
	assert.True(t, Equal(sequential, right))
	assert.True(t, Equal(sequential, dense))
	assert.True(t, Equal(dense, sequential))

	dense.Insert(h.Encode(0, 0, 0, 0, graphlet.Triad))
	assert.False(t, Equal(sequential, dense))
}

func TestFactory(t *testing.T) {
	h := newHash(t, 2)

	tests := []struct {
		strategy   Strategy
		denseLimit int
		wantDense  bool
	}{
		{Sparse, 1 << 20, false},
		{Dense, 0, true},
		{Auto, 1 << 20, true},
		{Auto, 10, false},
		{Auto, 0, false},
	}

	for _, tt := range tests {
		factory, err := NewFactory(tt.strategy, h, tt.denseLimit)
		require.NoError(t, err)
		_, isDense := factory().(*DenseCounter)
		assert.Equal(t, tt.wantDense, isDense, "strategy %s limit %d", tt.strategy, tt.denseLimit)
	}

	_, err := NewFactory("btree", h, 0)
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	s, err := ParseStrategy("Dense")
	require.NoError(t, err)
	assert.Equal(t, Dense, s)
	_, err = ParseStrategy("dense-ish")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestKindTotals(t *testing.T) {
	h := newHash(t, 2)
	c := NewSparse()
	c.InsertCount(h.Encode(0, 0, 1, h.Dummy(), graphlet.Triad), 2)
	c.InsertCount(h.Encode(0, 0, 0, h.Dummy(), graphlet.Triad), 1)
	c.InsertCount(h.Encode(0, 0, 0, 1, graphlet.FourPathEdge), 4)
	c.InsertCount(h.Encode(0, 0, 0, 1, graphlet.FourPathCenter), 3)

	totals, err := KindTotals(c, h)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), totals[graphlet.Triad])
	assert.Equal(t, uint64(4), totals[graphlet.FourPathEdge])
	assert.Equal(t, uint64(3), totals[graphlet.FourPathCenter])

	reduced, err := ReducedTotals(c, h)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), reduced[graphlet.ReducedTriad])
	assert.Equal(t, uint64(7), reduced[graphlet.ReducedFourPath])

	c.Insert(h.MaximalHash() + 1)
	_, err = KindTotals(c, h)
	assert.ErrorIs(t, err, graphlet.ErrUnknownKind)
}
