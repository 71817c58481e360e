// Package orbits derives the edge orbit counts a single merge scan cannot
// observe directly from per-label neighbour tallies.
//
// For an edge (src, dst) and a label pair (row, col), the inputs are the
// number of common neighbours (triangles), the neighbours exclusive to src
// and those exclusive to dst, each per label, plus the directly counted
// FourCycle, TailedTriTail, ChordalCycleEdge and FourClique totals for the
// pair. Same-label formulas apply when row == col.
package orbits

import "gonum.org/v1/gonum/stat/combin"

// Tally holds the per-label neighbour counts of one edge.
type Tally struct {
	Triangles    int64
	SrcExclusive int64
	DstExclusive int64
}

// Observed holds the directly counted orbits for one label pair.
type Observed struct {
	FourCycle        int64
	TailedTriTail    int64
	ChordalCycleEdge int64
	FourClique       int64
}

// Derived holds the four closed-form orbit counts for one label pair.
type Derived struct {
	FourPathCenter     int64
	FourStar           int64
	TailedTriEdge      int64
	ChordalCycleCenter int64
}

// Binomial2 returns n choose 2, zero for n < 2.
func Binomial2(n int64) int64 {
	if n < 2 {
		return 0
	}
	return int64(combin.Binomial(int(n), 2))
}

func FourPathCenter(srcExclusive, dstExclusive, fourCycles int64) int64 {
	return srcExclusive*dstExclusive - fourCycles
}

func FourPathCenterMixed(row, col Tally, fourCycles int64) int64 {
	return row.SrcExclusive*col.DstExclusive + col.SrcExclusive*row.DstExclusive - fourCycles
}

func FourStar(srcExclusive, dstExclusive, tailedTriTails int64) int64 {
	return Binomial2(srcExclusive) + Binomial2(dstExclusive) - tailedTriTails
}

func FourStarMixed(row, col Tally, tailedTriTails int64) int64 {
	return row.SrcExclusive*col.SrcExclusive + row.DstExclusive*col.DstExclusive - tailedTriTails
}

func TailedTriEdge(triangles, srcExclusive, dstExclusive, chordalCycleEdges int64) int64 {
	return triangles*(srcExclusive+dstExclusive) - chordalCycleEdges
}

func TailedTriEdgeMixed(row, col Tally, chordalCycleEdges int64) int64 {
	return row.Triangles*(col.SrcExclusive+col.DstExclusive) +
		col.Triangles*(row.SrcExclusive+row.DstExclusive) - chordalCycleEdges
}

func ChordalCycleCenter(triangles, fourCliques int64) int64 {
	return Binomial2(triangles) - fourCliques
}

func ChordalCycleCenterMixed(row, col Tally, fourCliques int64) int64 {
	return row.Triangles*col.Triangles - fourCliques
}

// Derive applies the same-label formulas when sameLabel is set and the
// cross-label ones otherwise. For same-label pairs col is ignored.
func Derive(row, col Tally, sameLabel bool, observed Observed) Derived {
	if sameLabel {
		return Derived{
			FourPathCenter:     FourPathCenter(row.SrcExclusive, row.DstExclusive, observed.FourCycle),
			FourStar:           FourStar(row.SrcExclusive, row.DstExclusive, observed.TailedTriTail),
			TailedTriEdge:      TailedTriEdge(row.Triangles, row.SrcExclusive, row.DstExclusive, observed.ChordalCycleEdge),
			ChordalCycleCenter: ChordalCycleCenter(row.Triangles, observed.FourClique),
		}
	}
	return Derived{
		FourPathCenter:     FourPathCenterMixed(row, col, observed.FourCycle),
		FourStar:           FourStarMixed(row, col, observed.TailedTriTail),
		TailedTriEdge:      TailedTriEdgeMixed(row, col, observed.ChordalCycleEdge),
		ChordalCycleCenter: ChordalCycleCenterMixed(row, col, observed.FourClique),
	}
}

// NonNegative reports whether every derived count is >= 0.
func (d Derived) NonNegative() bool {
	return d.FourPathCenter >= 0 && d.FourStar >= 0 && d.TailedTriEdge >= 0 && d.ChordalCycleCenter >= 0
}
