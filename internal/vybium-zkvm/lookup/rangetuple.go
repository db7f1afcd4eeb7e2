package lookup

import (
	"fmt"
	"sync"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/arch"
)

// RangeTupleChecker range checks tuples jointly: a request (v0, .., vk) proves
// each vi < sizes[i] in a single lookup. The multiplication chip uses it for
// its (limb, carry) pairs, where the carry bound differs from the limb bound.
// Trace layout: one multiplicity column over the preprocessed tuple
// enumeration.
type RangeTupleChecker struct {
	sizes []uint32

	mu     sync.Mutex
	counts []uint32
}

// NewRangeTupleChecker builds a checker over the given per-coordinate bounds.
// The product of the bounds is the table height and must stay small enough to
// enumerate.
func NewRangeTupleChecker(sizes []uint32) *RangeTupleChecker {
	height := uint64(1)
	for _, s := range sizes {
		height *= uint64(s)
	}
	return &RangeTupleChecker{
		sizes:  append([]uint32(nil), sizes...),
		counts: make([]uint32, height),
	}
}

// Sizes returns the per-coordinate bounds.
func (r *RangeTupleChecker) Sizes() []uint32 {
	return r.sizes
}

// Request records one range check of the tuple. Tuples outside the configured
// bounds are a contract violation.
func (r *RangeTupleChecker) Request(tuple ...uint32) {
	if len(tuple) != len(r.sizes) {
		panic(fmt.Sprintf("lookup: tuple arity %d, checker expects %d", len(tuple), len(r.sizes)))
	}
	index := uint64(0)
	for i, v := range tuple {
		if v >= r.sizes[i] {
			panic(fmt.Sprintf("lookup: tuple coordinate %d = %d exceeds bound %d", i, v, r.sizes[i]))
		}
		index = index*uint64(r.sizes[i]) + uint64(v)
	}
	r.mu.Lock()
	r.counts[index]++
	r.mu.Unlock()
}

// FinalizeTrace emits the multiplicity column over the full tuple enumeration
// and resets the counts. The height is the product of the bounds, padded to a
// power of two.
func (r *RangeTupleChecker) FinalizeTrace() *arch.TraceMatrix {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]field.Element, len(r.counts))
	for i, mult := range r.counts {
		rows[i] = field.New(uint64(mult))
	}
	for i := range r.counts {
		r.counts[i] = 0
	}
	return arch.NewTraceMatrix(1, rows)
}
