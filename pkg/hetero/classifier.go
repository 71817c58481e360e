// Package hetero classifies, for a single edge of a typed graph, every 3- and
// 4-node graphlet the edge belongs to, keyed by the labels of the nodes
// involved and the orbit the edge occupies.
package hetero

import (
	"fmt"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/counter"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graph"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graphlet"
)

// Classifier is safe for concurrent use: the graph is read only and every
// call works on its own counter and tallies.
type Classifier struct {
	graph      graph.TypedGraph
	hash       *graphlet.PerfectHash
	newCounter counter.Factory
}

type options struct {
	strategy   counter.Strategy
	denseLimit int
	keyBits    int
}

// Option configures a Classifier.
type Option func(*options)

// WithCounterStrategy selects the counter storage. denseLimit is the largest
// key space for which Auto picks dense storage.
func WithCounterStrategy(strategy counter.Strategy, denseLimit int) Option {
	return func(o *options) {
		o.strategy = strategy
		o.denseLimit = denseLimit
	}
}

// WithKeyBits bounds the encoded key width. Construction fails if the graph
// has too many labels for it.
func WithKeyBits(bits int) Option {
	return func(o *options) { o.keyBits = bits }
}

// New prepares a classifier for g. It fails when the label count cannot be
// encoded in the configured key width.
func New(g graph.TypedGraph, opts ...Option) (*Classifier, error) {
	o := options{strategy: counter.Sparse, keyBits: 64}
	for _, opt := range opts {
		opt(&o)
	}

	h, err := graphlet.NewPerfectHashWidth(g.NumberOfNodeLabels(), o.keyBits)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare key encoding: %w", err)
	}
	factory, err := counter.NewFactory(o.strategy, h, o.denseLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare counters: %w", err)
	}

	return &Classifier{graph: g, hash: h, newCounter: factory}, nil
}

func (c *Classifier) Hash() *graphlet.PerfectHash { return c.hash }

func (c *Classifier) Graph() graph.TypedGraph { return c.graph }

// NewCounter returns an empty counter of the configured storage.
func (c *Classifier) NewCounter() counter.Counter { return c.newCounter() }

// Classify returns the graphlet counts of edge (src, dst).
func (c *Classifier) Classify(src, dst int) counter.Counter {
	out := c.newCounter()
	c.ClassifyInto(src, dst, out)
	return out
}

// ClassifyInto writes the graphlet counts of edge (src, dst) into out, which
// must be empty. Node ids must be valid and distinct.
func (c *Classifier) ClassifyInto(src, dst int, out counter.Counter) {
	c.scan(src, dst, out)
}

func (c *Classifier) scan(src, dst int, out counter.Counter) *edgeScan {
	if src == dst {
		panic(fmt.Sprintf("hetero: self loop (%d, %d) cannot be classified", src, dst))
	}
	s := newEdgeScan(c.graph, c.hash, src, dst, out)
	s.run()
	s.derive()
	return s
}
