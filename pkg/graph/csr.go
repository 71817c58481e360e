package graph

// CSR is an immutable typed graph in compressed sparse row form. Each
// undirected edge is stored in both directions.
type CSR struct {
	offsets   []int
	targets   []int
	labels    []Label
	numLabels int
}

// NumberOfNodes returns N.
func (g *CSR) NumberOfNodes() int { return len(g.labels) }

// NumberOfEdges returns the number of undirected edges.
func (g *CSR) NumberOfEdges() int { return len(g.targets) / 2 }

// Neighbours returns the sorted adjacency of node.
func (g *CSR) Neighbours(node int) []int {
	return g.targets[g.offsets[node]:g.offsets[node+1]]
}

// NodeLabel returns the label of node.
func (g *CSR) NodeLabel(node int) Label { return g.labels[node] }

// NumberOfNodeLabels returns the label domain size.
func (g *CSR) NumberOfNodeLabels() int { return g.numLabels }

// Labels returns a copy of the node labels indexed by node id.
func (g *CSR) Labels() []Label {
	out := make([]Label, len(g.labels))
	copy(out, g.labels)
	return out
}

// MaxDegree returns the largest adjacency list length.
func (g *CSR) MaxDegree() int {
	maxDegree := 0
	for node := 0; node < g.NumberOfNodes(); node++ {
		if d := g.offsets[node+1] - g.offsets[node]; d > maxDegree {
			maxDegree = d
		}
	}
	return maxDegree
}

// LabelHistogram returns the number of nodes per label.
func (g *CSR) LabelHistogram() []int {
	histogram := make([]int, g.numLabels)
	for _, l := range g.labels {
		histogram[l]++
	}
	return histogram
}
