package graph

import "github.com/pkg/errors"

// Validate checks the invariants the classifier relies on: strictly ascending
// adjacency without self loops, in-range node ids, symmetric edges and labels
// inside the declared domain.
func Validate(g TypedGraph) error {
	n := g.NumberOfNodes()
	numLabels := g.NumberOfNodeLabels()
	if n > 0 && numLabels <= 0 {
		return ErrNoLabels
	}

	for node := 0; node < n; node++ {
		if l := g.NodeLabel(node); l.Index() >= numLabels {
			return errors.Wrapf(ErrLabelOutOfRange, "node %d has label %d (labels: %d)", node, l, numLabels)
		}

		previous := -1
		for _, neighbour := range g.Neighbours(node) {
			if neighbour < 0 || neighbour >= n {
				return errors.Wrapf(ErrNodeOutOfRange, "neighbour %d of node %d", neighbour, node)
			}
			if neighbour == node {
				return errors.Wrapf(ErrSelfLoop, "node %d", node)
			}
			if neighbour <= previous {
				return errors.Wrapf(ErrUnsortedAdjacency, "node %d: %d after %d", node, neighbour, previous)
			}
			previous = neighbour
			if !HasEdge(g, neighbour, node) {
				return errors.Wrapf(ErrAsymmetricEdge, "(%d, %d)", node, neighbour)
			}
		}
	}
	return nil
}
