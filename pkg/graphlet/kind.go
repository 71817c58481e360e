// Package graphlet enumerates the graphlet orbits an edge can occupy and
// packs (label, label, label, label, kind) tuples into integer keys.
package graphlet

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind is an edge orbit within a 3- or 4-node graphlet. Ordinals are stable
// and are part of the key encoding.
type Kind uint8

const (
	Triad Kind = iota
	Triangle
	FourPathEdge
	FourPathCenter
	FourStar
	FourCycle
	TailedTriTail
	TailedTriCenter
	TailedTriEdge
	ChordalCycleEdge
	ChordalCycleCenter
	FourClique
)

// NumberOfKinds is the size of the extended registry.
const NumberOfKinds = 12

var kindNames = [NumberOfKinds]string{
	"Triad",
	"Triangle",
	"FourPathEdge",
	"FourPathCenter",
	"FourStar",
	"FourCycle",
	"TailedTriTail",
	"TailedTriCenter",
	"TailedTriEdge",
	"ChordalCycleEdge",
	"ChordalCycleCenter",
	"FourClique",
}

// Kinds returns every registered kind in ordinal order.
func Kinds() []Kind {
	out := make([]Kind, NumberOfKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Valid reports whether k is a registered kind.
func (k Kind) Valid() bool { return k < NumberOfKinds }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Nodes returns the graphlet order: 3 for Triad and Triangle, 4 otherwise.
func (k Kind) Nodes() int {
	if k <= Triangle {
		return 3
	}
	return 4
}

// Derived reports whether the classifier obtains k from closed-form formulas
// rather than by direct observation.
func (k Kind) Derived() bool {
	switch k {
	case FourPathCenter, FourStar, TailedTriEdge, ChordalCycleCenter:
		return true
	}
	return false
}

// ParseKind looks a kind up by name, ignoring case.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownKind, "name %q", name)
}

// ReducedKind is the coarser 8-category registry that ignores the orbit of
// the edge inside 4-node graphlets.
type ReducedKind uint8

const (
	ReducedTriad ReducedKind = iota
	ReducedTriangle
	ReducedFourPath
	ReducedFourStar
	ReducedFourCycle
	ReducedTailedTri
	ReducedChordalCycle
	ReducedFourClique
)

const NumberOfReducedKinds = 8

var reducedKindNames = [NumberOfReducedKinds]string{
	"Triad",
	"Triangle",
	"FourPath",
	"FourStar",
	"FourCycle",
	"TailedTri",
	"ChordalCycle",
	"FourClique",
}

var reductions = [NumberOfKinds]ReducedKind{
	Triad:              ReducedTriad,
	Triangle:           ReducedTriangle,
	FourPathEdge:       ReducedFourPath,
	FourPathCenter:     ReducedFourPath,
	FourStar:           ReducedFourStar,
	FourCycle:          ReducedFourCycle,
	TailedTriTail:      ReducedTailedTri,
	TailedTriCenter:    ReducedTailedTri,
	TailedTriEdge:      ReducedTailedTri,
	ChordalCycleEdge:   ReducedChordalCycle,
	ChordalCycleCenter: ReducedChordalCycle,
	FourClique:         ReducedFourClique,
}

// ReducedKinds returns every reduced kind in ordinal order.
func ReducedKinds() []ReducedKind {
	out := make([]ReducedKind, NumberOfReducedKinds)
	for i := range out {
		out[i] = ReducedKind(i)
	}
	return out
}

// Reduced maps k onto the reduced registry. k must be valid.
func (k Kind) Reduced() ReducedKind { return reductions[k] }

func (k ReducedKind) Valid() bool { return k < NumberOfReducedKinds }

func (k ReducedKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("ReducedKind(%d)", uint8(k))
	}
	return reducedKindNames[k]
}
