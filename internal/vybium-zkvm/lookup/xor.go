// Package lookup provides the lookup-argument chips shared by the execution
// chips: an xor table and a tuple range checker. Both accumulate request
// multiplicities during execution and emit their own trace at segment end.
package lookup

import (
	"sync"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/arch"
)

// XorLookup is the xor lookup table chip over bits-wide limbs. ALU chips send
// (x, y, x^y) triples: bitwise opcodes to prove the operation itself, ADD/SUB
// with (a, a) pairs to range check result limbs. The table row layout is
// (x, y, x^y, multiplicity).
type XorLookup struct {
	bits int

	mu     sync.Mutex
	counts map[uint32]uint32
}

// NewXorLookup builds a table over [0, 2^bits) x [0, 2^bits).
func NewXorLookup(bits int) *XorLookup {
	return &XorLookup{
		bits:   bits,
		counts: make(map[uint32]uint32),
	}
}

// Bits returns the limb width of the table.
func (x *XorLookup) Bits() int {
	return x.bits
}

// Request records one lookup of (a, b) and returns a ^ b.
func (x *XorLookup) Request(a, b uint32) uint32 {
	x.mu.Lock()
	x.counts[a<<uint(x.bits)|b]++
	x.mu.Unlock()
	return a ^ b
}

// FinalizeTrace emits one row per requested pair, padded to a power-of-two
// height, and resets the multiplicities.
func (x *XorLookup) FinalizeTrace() *arch.TraceMatrix {
	x.mu.Lock()
	defer x.mu.Unlock()

	rows := make([]field.Element, 0, 4*len(x.counts))
	mask := uint32(1)<<uint(x.bits) - 1
	for key, mult := range x.counts {
		a := key >> uint(x.bits)
		b := key & mask
		rows = append(rows,
			field.New(uint64(a)),
			field.New(uint64(b)),
			field.New(uint64(a^b)),
			field.New(uint64(mult)),
		)
	}
	x.counts = make(map[uint32]uint32)
	return arch.NewTraceMatrix(4, rows)
}
