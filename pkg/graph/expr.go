package graph

import (
	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
)

// GraphExpr is a compact notation for small typed graphs: a comma separated
// list of edge runs such as "0-1-2-3-0, 1:2-4". A vertex is written id or
// id:label; vertices without a label get label 0.
type GraphExpr struct {
	Runs []*EdgeRun `(@@ ("," @@)*)?`
}

type EdgeRun struct {
	Start *Vtx   `@@`
	Next  []*Vtx `("-" @@)*`
}

type Vtx struct {
	ID    int          `@Int`
	Label *LabelSuffix `@@?`
}

type LabelSuffix struct {
	Value int `":" @Int`
}

var parseGraphExpr = participle.MustBuild[GraphExpr]()

// ParseExpr parses a graph expression into a CSR graph with N = max id + 1.
// The label domain is inferred and must be dense.
func ParseExpr(expr string) (*CSR, error) {
	parsed, err := parseGraphExpr.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrapf(err, "graph expression %q", expr)
	}

	labels := map[int]Label{}
	maxID := -1
	tally := func(v *Vtx) error {
		if v.ID > maxID {
			maxID = v.ID
		}
		if v.Label == nil {
			return nil
		}
		label := LabelFromIndex(v.Label.Value)
		if prev, ok := labels[v.ID]; ok && prev != label {
			return errors.Wrapf(ErrConflictingLabel, "node %d: %d and %d", v.ID, prev, label)
		}
		labels[v.ID] = label
		return nil
	}

	for _, run := range parsed.Runs {
		if err := tally(run.Start); err != nil {
			return nil, err
		}
		for _, v := range run.Next {
			if err := tally(v); err != nil {
				return nil, err
			}
		}
	}

	b := NewBuilder(maxID + 1)
	for node, label := range labels {
		if err := b.SetLabel(node, label); err != nil {
			return nil, err
		}
	}
	for _, run := range parsed.Runs {
		from := run.Start
		for _, to := range run.Next {
			if err := b.AddEdge(from.ID, to.ID); err != nil {
				return nil, err
			}
			from = to
		}
	}
	return b.Build()
}

// MustParseExpr is ParseExpr for fixtures known to be valid.
func MustParseExpr(expr string) *CSR {
	g, err := ParseExpr(expr)
	if err != nil {
		panic(err)
	}
	return g
}
