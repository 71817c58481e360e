package graph

// The helpers below are linear two-pointer merges over sorted neighbour
// lists. The classifier does not use them on its hot path; they back the
// verification oracle and tests.

// NeighboursOfLabel returns the neighbours of node carrying label.
func NeighboursOfLabel(g TypedGraph, node int, label Label) []int {
	var out []int
	for _, n := range g.Neighbours(node) {
		if g.NodeLabel(n) == label {
			out = append(out, n)
		}
	}
	return out
}

// SubtractNeighbours returns N(first) \ N(second), excluding first and second.
func SubtractNeighbours(g Graph, first, second int) []int {
	return subtract(g.Neighbours(first), g.Neighbours(second), first, second, func(int) bool { return true })
}

// SubtractNeighboursOfLabel is SubtractNeighbours restricted to nodes with label.
func SubtractNeighboursOfLabel(g TypedGraph, first, second int, label Label) []int {
	return subtract(g.Neighbours(first), g.Neighbours(second), first, second, func(n int) bool {
		return g.NodeLabel(n) == label
	})
}

// IntersectNeighbours returns N(first) ∩ N(second).
func IntersectNeighbours(g Graph, first, second int) []int {
	return intersect(g.Neighbours(first), g.Neighbours(second), func(int) bool { return true })
}

// IntersectNeighboursOfLabel is IntersectNeighbours restricted to nodes with label.
func IntersectNeighboursOfLabel(g TypedGraph, first, second int, label Label) []int {
	return intersect(g.Neighbours(first), g.Neighbours(second), func(n int) bool {
		return g.NodeLabel(n) == label
	})
}

func subtract(a, b []int, first, second int, keep func(int) bool) []int {
	var out []int
	j := 0
	for _, n := range a {
		for j < len(b) && b[j] < n {
			j++
		}
		if j < len(b) && b[j] == n {
			continue
		}
		if n == first || n == second || !keep(n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func intersect(a, b []int, keep func(int) bool) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			if keep(a[i]) {
				out = append(out, a[i])
			}
			i++
			j++
		}
	}
	return out
}
