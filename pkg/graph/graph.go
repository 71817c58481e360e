// Package graph defines the read-only graph abstractions consumed by the
// graphlet classifier together with a compressed sparse row implementation.
package graph

// Label is a node type. Labels are densely indexed from zero.
type Label uint32

// Index returns the label as a slice index.
func (l Label) Index() int { return int(l) }

// LabelFromIndex converts a slice index back into a label.
func LabelFromIndex(i int) Label { return Label(i) }

// Graph is a simple undirected graph over nodes 0..N-1.
//
// Neighbours must return the adjacency of node in strictly ascending order,
// never containing node itself. The returned slice is shared and must not be
// modified by the caller.
type Graph interface {
	NumberOfNodes() int
	NumberOfEdges() int
	Neighbours(node int) []int
}

// TypedGraph is a Graph whose nodes carry one label each.
type TypedGraph interface {
	Graph
	NodeLabel(node int) Label
	// NumberOfNodeLabels is the size L of the label domain 0..L-1.
	NumberOfNodeLabels() int
}

// LabelCount returns the label domain size of g as a Label.
func LabelCount(g TypedGraph) Label {
	return LabelFromIndex(g.NumberOfNodeLabels())
}

// Degree returns the number of neighbours of node.
func Degree(g Graph, node int) int {
	return len(g.Neighbours(node))
}

// HasEdge reports whether u and v are adjacent.
func HasEdge(g Graph, u, v int) bool {
	if u == v {
		return false
	}
	_, ok := searchSorted(g.Neighbours(u), v)
	return ok
}

// ForEachEdge calls fn once per undirected edge with src < dst, in ascending
// order of src. Iteration stops when fn returns false.
func ForEachEdge(g Graph, fn func(src, dst int) bool) {
	ForEachEdgeInRange(g, 0, g.NumberOfNodes(), fn)
}

// ForEachEdgeInRange is ForEachEdge restricted to sources in [from, to).
// It returns false if fn stopped the iteration.
func ForEachEdgeInRange(g Graph, from, to int, fn func(src, dst int) bool) bool {
	for src := from; src < to; src++ {
		neighbours := g.Neighbours(src)
		start, _ := searchSorted(neighbours, src)
		for _, dst := range neighbours[start:] {
			if !fn(src, dst) {
				return false
			}
		}
	}
	return true
}

// searchSorted returns the position of the first element >= target and
// whether it equals target.
func searchSorted(list []int, target int) (int, bool) {
	lo, hi := 0, len(list)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if list[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, lo < len(list) && list[lo] == target
}
