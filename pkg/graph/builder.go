package graph

import (
	"sort"

	"github.com/pkg/errors"
)

// Builder accumulates labelled nodes and undirected edges and produces a
// validated CSR graph. Duplicate edges are collapsed.
type Builder struct {
	labels     []Label
	adjacency  [][]int
	labelCount int
}

// NewBuilder creates a builder for nodes 0..numNodes-1, all labelled 0.
func NewBuilder(numNodes int) *Builder {
	return &Builder{
		labels:    make([]Label, numNodes),
		adjacency: make([][]int, numNodes),
	}
}

// SetLabelCount fixes the label domain size instead of inferring it from the
// largest label. Labels that are never used are then allowed.
func (b *Builder) SetLabelCount(n int) {
	b.labelCount = n
}

// SetLabel assigns label to node.
func (b *Builder) SetLabel(node int, label Label) error {
	if node < 0 || node >= len(b.labels) {
		return errors.Wrapf(ErrNodeOutOfRange, "node %d (nodes: %d)", node, len(b.labels))
	}
	b.labels[node] = label
	return nil
}

// AddEdge records the undirected edge {u, v}.
func (b *Builder) AddEdge(u, v int) error {
	n := len(b.adjacency)
	if u < 0 || u >= n || v < 0 || v >= n {
		return errors.Wrapf(ErrNodeOutOfRange, "edge (%d, %d) (nodes: %d)", u, v, n)
	}
	if u == v {
		return errors.Wrapf(ErrSelfLoop, "node %d", u)
	}
	b.adjacency[u] = append(b.adjacency[u], v)
	b.adjacency[v] = append(b.adjacency[v], u)
	return nil
}

// Build sorts and de-duplicates the adjacency lists and returns the graph.
func (b *Builder) Build() (*CSR, error) {
	numLabels, err := b.resolveLabelCount()
	if err != nil {
		return nil, err
	}

	offsets := make([]int, len(b.adjacency)+1)
	for node, neighbours := range b.adjacency {
		neighbours = removeDuplicatesAndSort(neighbours)
		b.adjacency[node] = neighbours
		offsets[node+1] = offsets[node] + len(neighbours)
	}

	targets := make([]int, 0, offsets[len(b.adjacency)])
	for _, neighbours := range b.adjacency {
		targets = append(targets, neighbours...)
	}

	labels := make([]Label, len(b.labels))
	copy(labels, b.labels)

	return &CSR{
		offsets:   offsets,
		targets:   targets,
		labels:    labels,
		numLabels: numLabels,
	}, nil
}

func (b *Builder) resolveLabelCount() (int, error) {
	if len(b.labels) == 0 {
		return b.labelCount, nil
	}
	if b.labelCount > 0 {
		for node, l := range b.labels {
			if l.Index() >= b.labelCount {
				return 0, errors.Wrapf(ErrLabelOutOfRange, "node %d has label %d (labels: %d)", node, l, b.labelCount)
			}
		}
		return b.labelCount, nil
	}

	var maxLabel Label
	for _, l := range b.labels {
		if l > maxLabel {
			maxLabel = l
		}
	}
	// A dense domain has at most one label per node.
	if maxLabel.Index() >= len(b.labels) {
		return 0, errors.Wrapf(ErrNonDenseLabels, "max label %d exceeds node count %d", maxLabel, len(b.labels))
	}
	seen := make([]bool, maxLabel.Index()+1)
	for _, l := range b.labels {
		seen[l] = true
	}
	for l, ok := range seen {
		if !ok {
			return 0, errors.Wrapf(ErrNonDenseLabels, "label %d is unused (max label: %d)", l, maxLabel)
		}
	}
	return len(seen), nil
}

func removeDuplicatesAndSort(neighbours []int) []int {
	if len(neighbours) <= 1 {
		return neighbours
	}
	sort.Ints(neighbours)
	j := 1
	for i := 1; i < len(neighbours); i++ {
		if neighbours[i] != neighbours[j-1] {
			neighbours[j] = neighbours[i]
			j++
		}
	}
	return neighbours[:j]
}
