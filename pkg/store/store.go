// Package store persists per-edge graphlet counters in badger so they can be
// served or exported after a run.
package store

import (
	"encoding/binary"
	"runtime"

	"github.com/dgraph-io/badger/v3"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/counter"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graphlet"
)

var (
	ErrEdgeNotFound  = errors.New("edge not found in store")
	ErrMetaNotFound  = errors.New("store has no run metadata")
	ErrCorruptValue  = errors.New("corrupt stored value")
	ErrBadStoreParam = errors.New("bad store parameter")
)

const (
	edgePrefix byte = 'e'
	metaPrefix byte = 'm'
)

// Options configure Open. An empty Path keeps the store in memory.
type Options struct {
	Path     string
	ReadOnly bool
}

// Meta describes the run that filled the store.
type Meta struct {
	RunID          string
	NumberOfLabels int
	Edges          int64
}

// Store maps edges to graphlet counters. It is safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open opens or creates a store.
func Open(opts Options) (*Store, error) {
	dbOpts := badger.DefaultOptions(opts.Path)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.Path) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(ErrBadStoreParam, "Path must be specified for a read-only store")
		}
		dbOpts.InMemory = true
	}

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrap(err, "open store")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// PutEdge stores the counter of edge (src, dst), replacing any previous one.
func (s *Store) PutEdge(src, dst int, c counter.Counter) error {
	value, err := encodeCounter(c)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(edgeKey(src, dst), value)
	})
}

// GetEdge loads the counter of edge (src, dst).
func (s *Store) GetEdge(src, dst int) (counter.Counter, error) {
	var c counter.Counter
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(edgeKey(src, dst))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			c, err = decodeCounter(val)
			return err
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, errors.Wrapf(ErrEdgeNotFound, "(%d, %d)", src, dst)
	}
	return c, err
}

// ForEachEdge visits the stored edges in (src, dst) order until fn fails.
func (s *Store) ForEachEdge(fn func(src, dst int, c counter.Counter) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: true,
			PrefetchSize:   100,
			Prefix:         []byte{edgePrefix},
		})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			src, dst, err := parseEdgeKey(item.Key())
			if err != nil {
				return err
			}
			var c counter.Counter
			err = item.Value(func(val []byte) error {
				c, err = decodeCounter(val)
				return err
			})
			if err != nil {
				return err
			}
			if err := fn(src, dst, c); err != nil {
				return err
			}
		}
		return nil
	})
}

// CountEdges returns the number of stored edges.
func (s *Store) CountEdges() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte{edgePrefix}})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// PutMeta records the run metadata.
func (s *Store) PutMeta(meta Meta) error {
	buf := proto.NewBuffer(nil)
	if err := buf.EncodeStringBytes(meta.RunID); err != nil {
		return err
	}
	if err := buf.EncodeVarint(uint64(meta.NumberOfLabels)); err != nil {
		return err
	}
	if err := buf.EncodeVarint(uint64(meta.Edges)); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte{metaPrefix}, buf.Bytes())
	})
}

// GetMeta loads the run metadata.
func (s *Store) GetMeta() (Meta, error) {
	var meta Meta
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte{metaPrefix})
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			buf := proto.NewBuffer(val)
			runID, err := buf.DecodeStringBytes()
			if err != nil {
				return errors.Wrap(ErrCorruptValue, err.Error())
			}
			labels, err := buf.DecodeVarint()
			if err != nil {
				return errors.Wrap(ErrCorruptValue, err.Error())
			}
			edges, err := buf.DecodeVarint()
			if err != nil {
				return errors.Wrap(ErrCorruptValue, err.Error())
			}
			meta = Meta{RunID: runID, NumberOfLabels: int(labels), Edges: int64(edges)}
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return meta, ErrMetaNotFound
	}
	return meta, err
}

func edgeKey(src, dst int) []byte {
	key := make([]byte, 17)
	key[0] = edgePrefix
	binary.BigEndian.PutUint64(key[1:], uint64(src))
	binary.BigEndian.PutUint64(key[9:], uint64(dst))
	return key
}

func parseEdgeKey(key []byte) (int, int, error) {
	if len(key) != 17 || key[0] != edgePrefix {
		return 0, 0, errors.Wrapf(ErrCorruptValue, "edge key %x", key)
	}
	return int(binary.BigEndian.Uint64(key[1:])), int(binary.BigEndian.Uint64(key[9:])), nil
}

// encodeCounter writes the entry count followed by (key delta, count)
// varint pairs in ascending key order.
func encodeCounter(c counter.Counter) ([]byte, error) {
	keys := counter.Keys(c)
	buf := proto.NewBuffer(make([]byte, 0, 1+4*len(keys)))
	if err := buf.EncodeVarint(uint64(len(keys))); err != nil {
		return nil, err
	}
	var previous graphlet.Key
	for _, key := range keys {
		if err := buf.EncodeVarint(uint64(key - previous)); err != nil {
			return nil, err
		}
		if err := buf.EncodeVarint(c.Count(key)); err != nil {
			return nil, err
		}
		previous = key
	}
	return buf.Bytes(), nil
}

func decodeCounter(val []byte) (counter.Counter, error) {
	buf := proto.NewBuffer(val)
	n, err := buf.DecodeVarint()
	if err != nil {
		return nil, errors.Wrap(ErrCorruptValue, err.Error())
	}

	c := counter.NewSparse()
	var key graphlet.Key
	for i := uint64(0); i < n; i++ {
		delta, err := buf.DecodeVarint()
		if err != nil {
			return nil, errors.Wrap(ErrCorruptValue, err.Error())
		}
		count, err := buf.DecodeVarint()
		if err != nil {
			return nil, errors.Wrap(ErrCorruptValue, err.Error())
		}
		key += graphlet.Key(delta)
		c.InsertCount(key, count)
	}
	return c, nil
}
