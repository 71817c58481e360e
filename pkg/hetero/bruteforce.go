package hetero

import (
	"sort"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/counter"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graph"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graphlet"
)

// BruteForce classifies edge (src, dst) by inspecting the induced subgraph
// of every node pair within two hops of the edge. It is quadratic in the
// size of that neighbourhood and serves as a reference for the merge scan.
func BruteForce(g graph.TypedGraph, h *graphlet.PerfectHash, src, dst int) counter.Counter {
	out := counter.NewSparse()
	srcLabel, dstLabel := g.NodeLabel(src), g.NodeLabel(dst)

	firstHop := map[int]bool{}
	for _, n := range g.Neighbours(src) {
		firstHop[n] = true
	}
	for _, n := range g.Neighbours(dst) {
		firstHop[n] = true
	}
	delete(firstHop, src)
	delete(firstHop, dst)

	reach := map[int]bool{}
	for n := range firstHop {
		reach[n] = true
		kind := graphlet.Triad
		if graph.HasEdge(g, src, n) && graph.HasEdge(g, dst, n) {
			kind = graphlet.Triangle
		}
		out.Insert(h.Encode(srcLabel, dstLabel, g.NodeLabel(n), h.Dummy(), kind))

		for _, m := range g.Neighbours(n) {
			reach[m] = true
		}
	}
	delete(reach, src)
	delete(reach, dst)

	candidates := make([]int, 0, len(reach))
	for n := range reach {
		candidates = append(candidates, n)
	}
	sort.Ints(candidates)

	for i, x := range candidates {
		for _, y := range candidates[i+1:] {
			kind, ok := classifyQuad(g, src, dst, x, y)
			if !ok {
				continue
			}
			third, fourth := g.NodeLabel(x), g.NodeLabel(y)
			if third > fourth {
				third, fourth = fourth, third
			}
			out.Insert(h.Encode(srcLabel, dstLabel, third, fourth, kind))
		}
	}
	return out
}

// classifyQuad returns the orbit of edge (s, d) in the subgraph induced by
// {s, d, x, y}, or false if that subgraph is disconnected.
func classifyQuad(g graph.Graph, s, d, x, y int) (graphlet.Kind, bool) {
	sx, sy := graph.HasEdge(g, s, x), graph.HasEdge(g, s, y)
	dx, dy := graph.HasEdge(g, d, x), graph.HasEdge(g, d, y)
	xy := graph.HasEdge(g, x, y)

	xAttached := sx || dx || (xy && (sy || dy))
	yAttached := sy || dy || (xy && (sx || dx))
	if !xAttached || !yAttached {
		return 0, false
	}

	degS := 1 + b2i(sx) + b2i(sy)
	degD := 1 + b2i(dx) + b2i(dy)
	degX := b2i(sx) + b2i(dx) + b2i(xy)
	degY := b2i(sy) + b2i(dy) + b2i(xy)
	edges := (degS + degD + degX + degY) / 2

	switch edges {
	case 6:
		return graphlet.FourClique, true
	case 5:
		if !xy {
			return graphlet.ChordalCycleCenter, true
		}
		return graphlet.ChordalCycleEdge, true
	case 4:
		switch {
		case degS == 2 && degD == 2 && degX == 2 && degY == 2:
			return graphlet.FourCycle, true
		case degS == 1 || degD == 1:
			return graphlet.TailedTriTail, true
		case degS == 3 || degD == 3:
			return graphlet.TailedTriEdge, true
		default:
			return graphlet.TailedTriCenter, true
		}
	default:
		switch {
		case degS == 3 || degD == 3 || degX == 3 || degY == 3:
			return graphlet.FourStar, true
		case degS == 2 && degD == 2:
			return graphlet.FourPathCenter, true
		default:
			return graphlet.FourPathEdge, true
		}
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
