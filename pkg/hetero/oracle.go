package hetero

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/counter"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graph"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graphlet"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/orbits"
)

var ErrMismatch = errors.New("classification disagrees with brute force")

// Verify classifies (src, dst) and cross-checks the result: the per-label
// tallies against labelled set intersection and subtraction of the two
// neighbour lists, and every count against BruteForce.
func (c *Classifier) Verify(src, dst int) error {
	out := c.newCounter()
	s := c.scan(src, dst, out)

	if err := verifyTallies(c.graph, src, dst, s.tallies); err != nil {
		return err
	}

	want := BruteForce(c.graph, c.hash, src, dst)
	if !counter.Equal(out, want) {
		return errors.Wrapf(ErrMismatch, "edge (%d, %d): %s", src, dst, describeDiff(c.hash, out, want))
	}
	return nil
}

func verifyTallies(g graph.TypedGraph, src, dst int, tallies []orbits.Tally) error {
	for l, tally := range tallies {
		label := graph.LabelFromIndex(l)
		triangles := int64(len(graph.IntersectNeighboursOfLabel(g, src, dst, label)))
		srcExclusive := int64(len(graph.SubtractNeighboursOfLabel(g, src, dst, label)))
		dstExclusive := int64(len(graph.SubtractNeighboursOfLabel(g, dst, src, label)))

		want := orbits.Tally{Triangles: triangles, SrcExclusive: srcExclusive, DstExclusive: dstExclusive}
		if tally != want {
			return errors.Wrapf(ErrMismatch, "edge (%d, %d) label %d: tally %+v, want %+v", src, dst, l, tally, want)
		}

		if got, total := triangles+srcExclusive, labelledDegreeWithout(g, src, dst, label); got != total {
			return errors.Wrapf(ErrMismatch, "edge (%d, %d) label %d: src has %d neighbours, tallies cover %d", src, dst, l, total, got)
		}
		if got, total := triangles+dstExclusive, labelledDegreeWithout(g, dst, src, label); got != total {
			return errors.Wrapf(ErrMismatch, "edge (%d, %d) label %d: dst has %d neighbours, tallies cover %d", src, dst, l, total, got)
		}
	}
	return nil
}

func labelledDegreeWithout(g graph.TypedGraph, node, other int, label graph.Label) int64 {
	var n int64
	for _, m := range graph.NeighboursOfLabel(g, node, label) {
		if m != other {
			n++
		}
	}
	return n
}

func describeDiff(h *graphlet.PerfectHash, got, want counter.Counter) string {
	var diffs []string
	for _, key := range counter.Keys(counter.Sum(got, want)) {
		g, w := got.Count(key), want.Count(key)
		if g == w {
			continue
		}
		name := fmt.Sprintf("key %d", key)
		if t, err := h.Decode(key); err == nil {
			name = t.String()
		}
		diffs = append(diffs, fmt.Sprintf("%s got %d want %d", name, g, w))
	}
	return strings.Join(diffs, "; ")
}
