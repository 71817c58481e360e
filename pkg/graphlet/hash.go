package graphlet

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/pkg/errors"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/graph"
)

// Key is an encoded (label, label, label, label, kind) tuple.
type Key uint64

// Tuple is a decoded key. For 3-node kinds the fourth label is the dummy
// label returned by PerfectHash.Dummy.
type Tuple struct {
	Labels [4]graph.Label
	Kind   Kind
}

// NodeLabels returns the labels of the graphlet's nodes, without the dummy
// slot for 3-node kinds.
func (t Tuple) NodeLabels() []graph.Label {
	return append([]graph.Label(nil), t.Labels[:t.Kind.Nodes()]...)
}

func (t Tuple) String() string {
	parts := make([]string, 0, 4)
	for _, l := range t.NodeLabels() {
		parts = append(parts, fmt.Sprint(uint32(l)))
	}
	return fmt.Sprintf("%s(%s)", t.Kind, strings.Join(parts, ", "))
}

// PerfectHash is a mixed-radix bijection between tuples and 0..MaximalHash.
//
// Labels range over 0..L where L itself is the dummy label used to fill
// unused slots, so the radix is L+1:
//
//	key = kind*R^4 + a*R^3 + b*R^2 + c*R + d,  R = L+1
//
// These keys differ from radix-L encodings of the same tuples, so they must
// not be mixed with keys produced by radix-L tools.
type PerfectHash struct {
	numLabels int
	powers    [5]uint64
	maximal   Key
}

// NewPerfectHash returns the encoder for numberOfLabels labels and 64-bit keys.
func NewPerfectHash(numberOfLabels int) (*PerfectHash, error) {
	return NewPerfectHashWidth(numberOfLabels, 64)
}

// NewPerfectHashWidth returns the encoder for numberOfLabels labels and fails
// if some key would not fit into keyBits bits.
func NewPerfectHashWidth(numberOfLabels int, keyBits int) (*PerfectHash, error) {
	if numberOfLabels <= 0 {
		return nil, errors.Wrapf(ErrNoLabels, "got %d", numberOfLabels)
	}
	switch keyBits {
	case 8, 16, 32, 64:
	default:
		return nil, errors.Wrapf(ErrBadKeyWidth, "%d bits", keyBits)
	}

	h := &PerfectHash{numLabels: numberOfLabels}
	radix := uint64(numberOfLabels) + 1
	h.powers[0] = 1
	for i := 1; i < len(h.powers); i++ {
		hi, lo := bits.Mul64(h.powers[i-1], radix)
		if hi != 0 {
			return nil, errors.Wrapf(ErrKeyOverflow, "%d labels", numberOfLabels)
		}
		h.powers[i] = lo
	}

	// Keys span [0, kinds*R^4).
	hi, span := bits.Mul64(NumberOfKinds, h.powers[4])
	if hi != 0 {
		return nil, errors.Wrapf(ErrKeyOverflow, "%d labels", numberOfLabels)
	}
	h.maximal = Key(span - 1)
	if keyBits < 64 && uint64(h.maximal) > uint64(1)<<keyBits-1 {
		return nil, errors.Wrapf(ErrKeyOverflow, "%d labels need key %d, width is %d bits", numberOfLabels, h.maximal, keyBits)
	}
	return h, nil
}

// NumberOfLabels returns L.
func (h *PerfectHash) NumberOfLabels() int { return h.numLabels }

// Dummy is the "one past max" label that fills unused slots.
func (h *PerfectHash) Dummy() graph.Label { return graph.LabelFromIndex(h.numLabels) }

// MaximalHash is the largest key, Encode(L, L, L, L, FourClique).
func (h *PerfectHash) MaximalHash() Key { return h.maximal }

// Encode packs a tuple. Labels must lie in 0..L and kind must be valid.
func (h *PerfectHash) Encode(a, b, c, d graph.Label, kind Kind) Key {
	return h.WithKind(h.EncodeLabels(a, b, c, d), kind)
}

// EncodeLabels packs the label digits only; the kind digit is zero.
func (h *PerfectHash) EncodeLabels(a, b, c, d graph.Label) Key {
	return Key(uint64(a)*h.powers[3] + uint64(b)*h.powers[2] + uint64(c)*h.powers[1] + uint64(d))
}

// WithKind sets the kind digit of a key produced by EncodeLabels.
func (h *PerfectHash) WithKind(labels Key, kind Kind) Key {
	return labels + Key(uint64(kind)*h.powers[4])
}

// KindOf extracts the kind digit.
func (h *PerfectHash) KindOf(key Key) (Kind, error) {
	kind := uint64(key) / h.powers[4]
	if kind >= NumberOfKinds {
		return 0, errors.Wrapf(ErrUnknownKind, "key %d has kind digit %d", key, kind)
	}
	return Kind(kind), nil
}

// Decode inverts Encode.
func (h *PerfectHash) Decode(key Key) (Tuple, error) {
	kind, err := h.KindOf(key)
	if err != nil {
		return Tuple{}, err
	}

	rest := uint64(key) % h.powers[4]
	var t Tuple
	t.Kind = kind
	for i := 0; i < 4; i++ {
		p := h.powers[3-i]
		t.Labels[i] = graph.Label(rest / p)
		rest %= p
	}
	return t, nil
}
