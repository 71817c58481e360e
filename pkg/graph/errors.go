package graph

import "github.com/pkg/errors"

var (
	ErrNodeOutOfRange    = errors.New("node id out of range")
	ErrSelfLoop          = errors.New("self loop")
	ErrUnsortedAdjacency = errors.New("adjacency not strictly ascending")
	ErrAsymmetricEdge    = errors.New("edge missing its reverse direction")
	ErrLabelOutOfRange   = errors.New("node label out of range")
	ErrNonDenseLabels    = errors.New("node labels are not densely indexed")
	ErrConflictingLabel  = errors.New("conflicting labels for node")
	ErrNoLabels          = errors.New("graph has no node labels")
)
