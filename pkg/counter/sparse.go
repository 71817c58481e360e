package counter

import "github.com/gilchrisn/heterogeneous-graphlets/pkg/graphlet"

// SparseCounter is map-backed and cheap to allocate per edge.
type SparseCounter struct {
	counts map[graphlet.Key]uint64
}

func NewSparse() *SparseCounter {
	return &SparseCounter{counts: make(map[graphlet.Key]uint64)}
}

func (s *SparseCounter) Insert(key graphlet.Key) { s.counts[key]++ }

func (s *SparseCounter) InsertCount(key graphlet.Key, n uint64) {
	if n == 0 {
		return
	}
	s.counts[key] += n
}

func (s *SparseCounter) Count(key graphlet.Key) uint64 { return s.counts[key] }

func (s *SparseCounter) ForEach(fn func(key graphlet.Key, count uint64) bool) {
	for key, count := range s.counts {
		if !fn(key, count) {
			return
		}
	}
}

func (s *SparseCounter) Len() int { return len(s.counts) }

func (s *SparseCounter) Merge(other Counter) {
	other.ForEach(func(key graphlet.Key, count uint64) bool {
		s.InsertCount(key, count)
		return true
	})
}

func (s *SparseCounter) Reset() { clear(s.counts) }
