package counter

import "github.com/gilchrisn/heterogeneous-graphlets/pkg/graphlet"

// DenseCounter is a flat array indexed by key, sized MaximalHash+1. It avoids
// hashing when the label count is small.
type DenseCounter struct {
	counts  []uint64
	nonZero int
}

func NewDense(h *graphlet.PerfectHash) *DenseCounter {
	return &DenseCounter{counts: make([]uint64, uint64(h.MaximalHash())+1)}
}

func (d *DenseCounter) Insert(key graphlet.Key) { d.InsertCount(key, 1) }

func (d *DenseCounter) InsertCount(key graphlet.Key, n uint64) {
	if n == 0 {
		return
	}
	if d.counts[key] == 0 {
		d.nonZero++
	}
	d.counts[key] += n
}

func (d *DenseCounter) Count(key graphlet.Key) uint64 {
	if uint64(key) >= uint64(len(d.counts)) {
		return 0
	}
	return d.counts[key]
}

// ForEach visits keys in ascending order.
func (d *DenseCounter) ForEach(fn func(key graphlet.Key, count uint64) bool) {
	for key, count := range d.counts {
		if count != 0 && !fn(graphlet.Key(key), count) {
			return
		}
	}
}

func (d *DenseCounter) Len() int { return d.nonZero }

func (d *DenseCounter) Merge(other Counter) {
	if o, ok := other.(*DenseCounter); ok && len(o.counts) == len(d.counts) {
		for key, count := range o.counts {
			d.InsertCount(graphlet.Key(key), count)
		}
		return
	}
	other.ForEach(func(key graphlet.Key, count uint64) bool {
		d.InsertCount(key, count)
		return true
	})
}

func (d *DenseCounter) Reset() {
	clear(d.counts)
	d.nonZero = 0
}
