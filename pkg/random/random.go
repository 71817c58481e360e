// Package random generates reproducible typed graphs for tests and benchmarks.
package random

import (
	"github.com/pkg/errors"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graph"
)

const (
	multiplier = 1103515245
	increment  = 12345
	// Mixes the node id into each node's stream.
	golden = 0x9E3779B97F4A7C15
)

var ErrBadParameters = errors.New("invalid random graph parameters")

// Params describe a random graph. Every node draws MaxDegree candidate
// neighbours; self loops are dropped and duplicates collapse, so degrees are
// at most 2*MaxDegree after symmetrisation.
type Params struct {
	Seed      uint64
	Nodes     int
	MaxDegree int
	Labels    int
}

// Generate builds the graph described by p. Equal parameters give equal graphs.
func Generate(p Params) (*graph.CSR, error) {
	if p.Nodes <= 0 || p.MaxDegree < 0 || p.Labels <= 0 {
		return nil, errors.Wrapf(ErrBadParameters, "%+v", p)
	}

	b := graph.NewBuilder(p.Nodes)
	b.SetLabelCount(p.Labels)

	n := uint64(p.Nodes)
	for node := 0; node < p.Nodes; node++ {
		state := lcg{state: p.Seed ^ (uint64(node)+1)*golden}
		if err := b.SetLabel(node, graph.Label(state.next()%uint64(p.Labels))); err != nil {
			return nil, err
		}
		for i := 0; i < p.MaxDegree; i++ {
			dst := int(state.next() % n)
			if dst == node {
				continue
			}
			if err := b.AddEdge(node, dst); err != nil {
				return nil, err
			}
		}
	}
	return b.Build()
}

type lcg struct {
	state uint64
}

// next advances the generator and returns its upper bits; the low bits of a
// power-of-two LCG have short periods.
func (g *lcg) next() uint64 {
	g.state = g.state*multiplier + increment
	return g.state >> 16
}
