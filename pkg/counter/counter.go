// Package counter stores graphlet occurrence counts keyed by encoded
// graphlet keys.
package counter

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graphlet"
)

// Counter maps keys to non-negative counts. Absent keys count zero.
// A Counter is not safe for concurrent mutation.
type Counter interface {
	// Insert adds one occurrence of key.
	Insert(key graphlet.Key)
	// InsertCount adds n occurrences of key; n == 0 is a no-op.
	InsertCount(key graphlet.Key, n uint64)
	// Count returns the number of occurrences of key.
	Count(key graphlet.Key) uint64
	// ForEach visits every key with a non-zero count until fn returns false.
	ForEach(fn func(key graphlet.Key, count uint64) bool)
	// Len returns the number of keys with a non-zero count.
	Len() int
	// Merge adds every count of other into the receiver.
	Merge(other Counter)
	Reset()
}

// Strategy selects the storage backing new counters.
type Strategy string

const (
	Auto   Strategy = "auto"
	Sparse Strategy = "sparse"
	Dense  Strategy = "dense"
)

var ErrUnknownStrategy = errors.New("unknown counter strategy")

// ParseStrategy parses a strategy name.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(name)); s {
	case Auto, Sparse, Dense:
		return s, nil
	}
	return "", errors.Wrapf(ErrUnknownStrategy, "%q", name)
}

// Factory creates empty counters.
type Factory func() Counter

// NewFactory returns a factory for strategy. Auto picks dense storage when
// the key space has at most denseLimit entries.
func NewFactory(strategy Strategy, h *graphlet.PerfectHash, denseLimit int) (Factory, error) {
	switch strategy {
	case Sparse:
		return func() Counter { return NewSparse() }, nil
	case Dense:
		return func() Counter { return NewDense(h) }, nil
	case Auto:
		if denseLimit > 0 && uint64(h.MaximalHash()) < uint64(denseLimit) {
			return func() Counter { return NewDense(h) }, nil
		}
		return func() Counter { return NewSparse() }, nil
	}
	return nil, errors.Wrapf(ErrUnknownStrategy, "%q", strategy)
}

// Sum merges counters into a new sparse counter.
func Sum(counters ...Counter) Counter {
	out := NewSparse()
	for _, c := range counters {
		out.Merge(c)
	}
	return out
}

// Equal reports whether a and b hold the same non-zero counts.
func Equal(a, b Counter) bool {
	if a.Len() != b.Len() {
		return false
	}
	equal := true
	a.ForEach(func(key graphlet.Key, count uint64) bool {
		equal = b.Count(key) == count
		return equal
	})
	return equal
}

// Keys returns the keys with a non-zero count in ascending order.
func Keys(c Counter) []graphlet.Key {
	keys := make([]graphlet.Key, 0, c.Len())
	c.ForEach(func(key graphlet.Key, _ uint64) bool {
		keys = append(keys, key)
		return true
	})
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Total returns the sum of all counts.
func Total(c Counter) uint64 {
	var total uint64
	c.ForEach(func(_ graphlet.Key, count uint64) bool {
		total += count
		return true
	})
	return total
}

// KindTotals sums counts per graphlet kind, ignoring labels.
func KindTotals(c Counter, h *graphlet.PerfectHash) ([graphlet.NumberOfKinds]uint64, error) {
	var totals [graphlet.NumberOfKinds]uint64
	var err error
	c.ForEach(func(key graphlet.Key, count uint64) bool {
		var kind graphlet.Kind
		kind, err = h.KindOf(key)
		if err != nil {
			return false
		}
		totals[kind] += count
		return true
	})
	return totals, err
}

// ReducedTotals sums counts per reduced graphlet kind, ignoring labels.
func ReducedTotals(c Counter, h *graphlet.PerfectHash) ([graphlet.NumberOfReducedKinds]uint64, error) {
	var reduced [graphlet.NumberOfReducedKinds]uint64
	totals, err := KindTotals(c, h)
	if err != nil {
		return reduced, err
	}
	for kind, count := range totals {
		reduced[graphlet.Kind(kind).Reduced()] += count
	}
	return reduced, nil
}
