package hetero

import (
	"fmt"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/counter"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graph"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graphlet"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/orbits"
)

// endpoint identifies which side of the edge roots an exclusive neighbour.
type endpoint int

const (
	srcRooted endpoint = iota
	dstRooted
)

// edgeScan is the state of one edge classification.
type edgeScan struct {
	g   graph.TypedGraph
	h   *graphlet.PerfectHash
	out counter.Counter
	src int
	dst int

	srcLabel, dstLabel graph.Label
	srcNeighbours      []int
	dstNeighbours      []int

	// Indexed by label.
	tallies []orbits.Tally
	active  []bool
}

func newEdgeScan(g graph.TypedGraph, h *graphlet.PerfectHash, src, dst int, out counter.Counter) *edgeScan {
	return &edgeScan{
		g:             g,
		h:             h,
		out:           out,
		src:           src,
		dst:           dst,
		srcLabel:      g.NodeLabel(src),
		dstLabel:      g.NodeLabel(dst),
		srcNeighbours: g.Neighbours(src),
		dstNeighbours: g.Neighbours(dst),
		tallies:       make([]orbits.Tally, g.NumberOfNodeLabels()),
		active:        make([]bool, g.NumberOfNodeLabels()),
	}
}

// run merges the two first-order neighbour lists. Common neighbours close a
// triangle; the rest are exclusive to the endpoint that produced them.
func (s *edgeScan) run() {
	i, j := 0, 0
	for i < len(s.srcNeighbours) && j < len(s.dstNeighbours) {
		a, b := s.srcNeighbours[i], s.dstNeighbours[j]
		if s.isEndpoint(a) {
			i++
			continue
		}
		if s.isEndpoint(b) {
			j++
			continue
		}
		switch {
		case a == b:
			s.triangle(a)
			i++
			j++
		case a < b:
			s.exclusive(a, srcRooted)
			i++
		default:
			s.exclusive(b, dstRooted)
			j++
		}
	}

	for ; i < len(s.srcNeighbours); i++ {
		if n := s.srcNeighbours[i]; !s.isEndpoint(n) {
			s.exclusive(n, srcRooted)
		}
	}
	for ; j < len(s.dstNeighbours); j++ {
		if n := s.dstNeighbours[j]; !s.isEndpoint(n) {
			s.exclusive(n, dstRooted)
		}
	}
}

func (s *edgeScan) isEndpoint(n int) bool { return n == s.src || n == s.dst }

// triangle records {src, dst, n} and classifies the second-order neighbours
// of n. Pairs of common neighbours are counted from the larger one.
func (s *edgeScan) triangle(n int) {
	label := s.g.NodeLabel(n)
	s.tallies[label].Triangles++
	s.active[label] = true
	s.insert3(label, graphlet.Triangle)

	srcCursor := cursor{list: s.srcNeighbours}
	dstCursor := cursor{list: s.dstNeighbours}
	for _, m := range s.g.Neighbours(n) {
		if s.isEndpoint(m) {
			continue
		}
		inSrc, inDst := srcCursor.contains(m), dstCursor.contains(m)
		switch {
		case inSrc && inDst:
			if m < n {
				s.insert4(label, s.g.NodeLabel(m), graphlet.FourClique)
			}
		case inSrc || inDst:
			s.insert4(label, s.g.NodeLabel(m), graphlet.ChordalCycleEdge)
		default:
			s.insert4(label, s.g.NodeLabel(m), graphlet.TailedTriCenter)
		}
	}
}

// exclusive records the open triad {src, dst, r} and classifies the
// second-order neighbours of r. root is the endpoint adjacent to r.
func (s *edgeScan) exclusive(r int, root endpoint) {
	label := s.g.NodeLabel(r)
	if root == srcRooted {
		s.tallies[label].SrcExclusive++
	} else {
		s.tallies[label].DstExclusive++
	}
	s.active[label] = true
	s.insert3(label, graphlet.Triad)

	srcCursor := cursor{list: s.srcNeighbours}
	dstCursor := cursor{list: s.dstNeighbours}
	for _, m := range s.g.Neighbours(r) {
		if s.isEndpoint(m) {
			continue
		}
		inSrc, inDst := srcCursor.contains(m), dstCursor.contains(m)
		sameSide := (root == srcRooted && inSrc) || (root == dstRooted && inDst)
		switch {
		case !inSrc && !inDst:
			s.insert4(label, s.g.NodeLabel(m), graphlet.FourPathEdge)
		case inSrc && inDst:
			// m closes a triangle with the edge; seen from its side.
		case sameSide:
			if m < r {
				s.insert4(label, s.g.NodeLabel(m), graphlet.TailedTriTail)
			}
		case root == dstRooted:
			// r is exclusive to dst and m exclusive to src.
			s.insert4(label, s.g.NodeLabel(m), graphlet.FourCycle)
		}
	}
}

// derive adds the closed-form orbits for every label pair seen by the scan.
// Pairs involving an unseen label contribute nothing.
func (s *edgeScan) derive() {
	labels := make([]graph.Label, 0, len(s.active))
	for l, ok := range s.active {
		if ok {
			labels = append(labels, graph.LabelFromIndex(l))
		}
	}

	for i, row := range labels {
		for _, col := range labels[i:] {
			observed := orbits.Observed{
				FourCycle:        s.observed(row, col, graphlet.FourCycle),
				TailedTriTail:    s.observed(row, col, graphlet.TailedTriTail),
				ChordalCycleEdge: s.observed(row, col, graphlet.ChordalCycleEdge),
				FourClique:       s.observed(row, col, graphlet.FourClique),
			}
			d := orbits.Derive(s.tallies[row], s.tallies[col], row == col, observed)
			if !d.NonNegative() {
				panic(fmt.Sprintf("hetero: negative orbit count for edge (%d, %d), labels (%d, %d): %+v",
					s.src, s.dst, row, col, d))
			}
			s.out.InsertCount(s.key4(row, col, graphlet.FourPathCenter), uint64(d.FourPathCenter))
			s.out.InsertCount(s.key4(row, col, graphlet.FourStar), uint64(d.FourStar))
			s.out.InsertCount(s.key4(row, col, graphlet.TailedTriEdge), uint64(d.TailedTriEdge))
			s.out.InsertCount(s.key4(row, col, graphlet.ChordalCycleCenter), uint64(d.ChordalCycleCenter))
		}
	}
}

func (s *edgeScan) observed(row, col graph.Label, kind graphlet.Kind) int64 {
	return int64(s.out.Count(s.key4(row, col, kind)))
}

func (s *edgeScan) insert3(third graph.Label, kind graphlet.Kind) {
	s.out.Insert(s.h.Encode(s.srcLabel, s.dstLabel, third, s.h.Dummy(), kind))
}

func (s *edgeScan) insert4(third, fourth graph.Label, kind graphlet.Kind) {
	s.out.Insert(s.key4(third, fourth, kind))
}

// key4 orders the two non-edge labels so that both orientations of a label
// pair share one key.
func (s *edgeScan) key4(third, fourth graph.Label, kind graphlet.Kind) graphlet.Key {
	if third > fourth {
		third, fourth = fourth, third
	}
	return s.h.Encode(s.srcLabel, s.dstLabel, third, fourth, kind)
}

// cursor answers membership queries against a sorted list for queries in
// non-decreasing order. An exhausted list contains nothing further.
type cursor struct {
	list []int
	pos  int
}

func (c *cursor) contains(node int) bool {
	for c.pos < len(c.list) && c.list[c.pos] < node {
		c.pos++
	}
	return c.pos < len(c.list) && c.list[c.pos] == node
}
