// Package hyperloglog implements the HyperLogLog cardinality estimation
// algorithm over 32-bit hashes.
// The algorithm estimates the number of distinct elements of a multiset
// using constant memory, and two estimators of the same precision can be
// merged to estimate the cardinality of the union of their inputs.
//
// HyperLogLog is described here:
// http://algo.inria.fr/flajolet/Publications/FlFuGaMe07.pdf
//
// A HyperLogLog is not safe for concurrent use. To count from several
// goroutines, give each one its own estimator of the same precision and
// Merge the results.
package hyperloglog

import "fmt"

const (
	minPrecision = 4
	maxPrecision = 16
	hashBits     = 32
)

// HyperLogLog is a 32-bit HyperLogLog estimator. The zero value holds no
// registers: it counts 0 and is only a target for the decoders. Use New or
// FromRegisters to get an estimator that accepts elements.
type HyperLogLog struct {
	reg     []uint8
	alphaMM float64
	m       uint32
	p       uint8
}

// New returns a new initialized HyperLogLog with 2^precision registers.
// Precision must be between 4 and 16.
func New(precision uint8) (*HyperLogLog, error) {
	if precision > maxPrecision || precision < minPrecision {
		return nil, fmt.Errorf("%w: precision %d not in [%d, %d]",
			ErrInvalidParameter, precision, minPrecision, maxPrecision)
	}

	h := &HyperLogLog{}
	h.p = precision
	h.m = 1 << precision
	h.reg = make([]uint8, h.m)
	h.alphaMM = alpha(h.m) * float64(h.m) * float64(h.m)
	return h, nil
}

// Clear sets HyperLogLog h back to its initial state.
func (h *HyperLogLog) Clear() {
	clear(h.reg)
}

// Add hashes data and adds it to HyperLogLog h.
func (h *HyperLogLog) Add(data []byte) {
	h.AddHash(Sum32(data))
}

// AddString hashes s and adds it to HyperLogLog h.
func (h *HyperLogLog) AddString(s string) {
	h.AddHash(SumString(s))
}

// AddHash adds an already hashed element to HyperLogLog h. The low
// precision bits select the register, the remaining bits give the rank.
func (h *HyperLogLog) AddHash(x uint32) {
	i := x & (h.m - 1)
	w := x >> h.p

	r := rank(w, hashBits-h.p)
	if r > h.reg[i] {
		h.reg[i] = r
	}
}

// Merge takes another HyperLogLog and combines it with HyperLogLog h.
// other is not modified. On error neither estimator is modified.
func (h *HyperLogLog) Merge(other *HyperLogLog) error {
	if other == nil {
		return fmt.Errorf("%w: nil estimator", ErrIncompatibleState)
	}
	if h.p != other.p {
		return fmt.Errorf("%w: precision %d != %d", ErrIncompatibleState, h.p, other.p)
	}

	for i, v := range other.reg {
		if v > h.reg[i] {
			h.reg[i] = v
		}
	}
	return nil
}

// Count returns the cardinality estimate.
func (h *HyperLogLog) Count() uint64 {
	if len(h.reg) == 0 {
		return 0
	}
	est := calculateEstimate(h.reg, h.alphaMM)
	if est <= float64(h.m)*2.5 {
		if v := countZeros(h.reg); v != 0 {
			return uint64(linearCounting(h.m, v))
		}
		return uint64(est)
	} else if est <= two32/30 {
		return uint64(est)
	}
	return uint64(largeRangeCorrection(est))
}

// Precision returns the number of index bits p.
func (h *HyperLogLog) Precision() uint8 {
	return h.p
}

// RegisterCount returns the number of registers (2^p).
func (h *HyperLogLog) RegisterCount() uint32 {
	return h.m
}

// Registers returns a copy of the register array.
func (h *HyperLogLog) Registers() []uint8 {
	out := make([]uint8, len(h.reg))
	copy(out, h.reg)
	return out
}

// Clone returns a deep copy of h.
func (h *HyperLogLog) Clone() *HyperLogLog {
	c := *h
	c.reg = h.Registers()
	return &c
}
