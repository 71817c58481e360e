package graph

import (
	gonumgraph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// ToGonum copies the topology of g into a gonum undirected graph.
func ToGonum(g Graph) *simple.UndirectedGraph {
	u := simple.NewUndirectedGraph()
	for node := 0; node < g.NumberOfNodes(); node++ {
		u.AddNode(simple.Node(int64(node)))
	}
	ForEachEdge(g, func(src, dst int) bool {
		u.SetEdge(simple.Edge{F: simple.Node(int64(src)), T: simple.Node(int64(dst))})
		return true
	})
	return u
}

// FromGonum builds a CSR graph from a gonum undirected graph whose node ids
// are 0..len(labels)-1. Labels are indexed by node id.
func FromGonum(u gonumgraph.Undirected, labels []Label) (*CSR, error) {
	b := NewBuilder(len(labels))
	for node, l := range labels {
		if err := b.SetLabel(node, l); err != nil {
			return nil, err
		}
	}

	edges := u.Edges()
	for edges.Next() {
		e := edges.Edge()
		if err := b.AddEdge(int(e.From().ID()), int(e.To().ID())); err != nil {
			return nil, err
		}
	}
	return b.Build()
}
