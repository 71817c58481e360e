// Package report decodes graphlet counters and renders them.
package report

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/counter"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graphlet"
)

// Row is one decoded counter entry.
type Row struct {
	Key    uint64   `json:"key" yaml:"key"`
	Kind   string   `json:"kind" yaml:"kind"`
	Labels []uint32 `json:"labels" yaml:"labels"`
	Count  uint64   `json:"count" yaml:"count"`
}

// Report lists the entries of a counter in key order.
type Report struct {
	NumberOfLabels int    `json:"number_of_labels" yaml:"number_of_labels"`
	Total          uint64 `json:"total" yaml:"total"`
	Graphlets      []Row  `json:"graphlets" yaml:"graphlets"`
}

// KindTotal is the count of one kind over all label combinations.
type KindTotal struct {
	Kind  string `json:"kind" yaml:"kind"`
	Count uint64 `json:"count" yaml:"count"`
}

// Build decodes every key of c. It fails on the first key whose kind is not
// registered.
func Build(c counter.Counter, h *graphlet.PerfectHash) (*Report, error) {
	ordered := treemap.NewWith(utils.UInt64Comparator)
	c.ForEach(func(key graphlet.Key, count uint64) bool {
		ordered.Put(uint64(key), count)
		return true
	})

	r := &Report{
		NumberOfLabels: h.NumberOfLabels(),
		Graphlets:      make([]Row, 0, ordered.Size()),
	}
	it := ordered.Iterator()
	for it.Next() {
		key := it.Key().(uint64)
		count := it.Value().(uint64)

		t, err := h.Decode(graphlet.Key(key))
		if err != nil {
			return nil, err
		}
		labels := make([]uint32, 0, 4)
		for _, l := range t.NodeLabels() {
			labels = append(labels, uint32(l))
		}

		r.Graphlets = append(r.Graphlets, Row{Key: key, Kind: t.Kind.String(), Labels: labels, Count: count})
		r.Total += count
	}
	return r, nil
}

// KindTotals returns the per-kind totals of r in ordinal order, omitting
// kinds that never occur. Kinds are taken from the row keys.
func (r *Report) KindTotals() ([]KindTotal, error) {
	totals, err := r.tally(func(kind graphlet.Kind) int { return int(kind) })
	if err != nil {
		return nil, err
	}
	var out []KindTotal
	for kind, count := range totals[:graphlet.NumberOfKinds] {
		if count > 0 {
			out = append(out, KindTotal{Kind: graphlet.Kind(kind).String(), Count: count})
		}
	}
	return out, nil
}

// ReducedTotals is KindTotals over the reduced registry.
func (r *Report) ReducedTotals() ([]KindTotal, error) {
	totals, err := r.tally(func(kind graphlet.Kind) int { return int(kind.Reduced()) })
	if err != nil {
		return nil, err
	}
	var out []KindTotal
	for kind, count := range totals[:graphlet.NumberOfReducedKinds] {
		if count > 0 {
			out = append(out, KindTotal{Kind: graphlet.ReducedKind(kind).String(), Count: count})
		}
	}
	return out, nil
}

func (r *Report) tally(bucket func(graphlet.Kind) int) ([graphlet.NumberOfKinds]uint64, error) {
	var totals [graphlet.NumberOfKinds]uint64
	h, err := graphlet.NewPerfectHash(r.NumberOfLabels)
	if err != nil {
		return totals, err
	}
	for _, row := range r.Graphlets {
		kind, err := h.KindOf(graphlet.Key(row.Key))
		if err != nil {
			return totals, err
		}
		totals[bucket(kind)] += row.Count
	}
	return totals, nil
}
