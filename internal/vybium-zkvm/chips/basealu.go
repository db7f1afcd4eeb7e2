// Package chips provides the core halves of the instruction chips: the
// opcode-specific arithmetic and the auxiliary values (carries, flags, lookup
// requests) that make each computation provable. Memory plumbing lives in
// package adapters.
package chips

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/arch"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/lookup"
)

// LimbConfig parametrizes a multi-precision core: operands are NumLimbs limbs
// of LimbBits each, little-endian. The same cores serve 32-bit and 256-bit
// opcode families by varying NumLimbs.
type LimbConfig struct {
	NumLimbs int
	LimbBits int
}

// DefaultLimbConfig is the machine-word shape: 4 limbs of 8 bits.
func DefaultLimbConfig() LimbConfig {
	return LimbConfig{NumLimbs: arch.RegisterNumLimbs, LimbBits: arch.CellBits}
}

// Int256LimbConfig is the wide-arithmetic shape: 32 limbs of 8 bits.
func Int256LimbConfig() LimbConfig {
	return LimbConfig{NumLimbs: 32, LimbBits: arch.CellBits}
}

// BaseALUCore computes ADD, SUB, XOR, OR, AND over limb vectors. ADD and SUB
// propagate a boolean carry/borrow per limb; that carry being boolean together
// with result limbs being in range is exactly what the constraint system
// checks later. Bitwise opcodes are computed per limb and proven through the
// xor lookup; ADD/SUB results are range checked through the same table with
// (a, a) requests.
type BaseALUCore struct {
	cfg LimbConfig
	xor *lookup.XorLookup
}

// NewBaseALUCore composes the core with the xor lookup table it sends
// requests to. The table limb width must match the core's.
func NewBaseALUCore(cfg LimbConfig, xor *lookup.XorLookup) *BaseALUCore {
	if xor.Bits() != cfg.LimbBits {
		panic(fmt.Sprintf("chips: xor table is %d-bit, core limbs are %d-bit", xor.Bits(), cfg.LimbBits))
	}
	return &BaseALUCore{cfg: cfg, xor: xor}
}

// BaseALURecord is one executed ALU instruction: opcode plus the three limb
// vectors (a = result, b and c = operands).
type BaseALURecord struct {
	Opcode arch.Opcode
	A      []uint32
	B      []uint32
	C      []uint32
}

func (c *BaseALUCore) Shape() arch.AccessShape {
	return arch.AccessShape{
		NumReads:  2,
		ReadSize:  c.cfg.NumLimbs,
		NumWrites: 1,
		WriteSize: c.cfg.NumLimbs,
	}
}

// Columns: a, b, c limb vectors plus one selector flag per opcode.
func (c *BaseALUCore) Width() int {
	return 3*c.cfg.NumLimbs + 5
}

func (c *BaseALUCore) OpcodeName(op arch.Opcode) string {
	return op.String()
}

func (c *BaseALUCore) ExecuteInstruction(inst *arch.Instruction, fromPC uint32, reads [][]field.Element) (arch.AdapterRuntimeContext, BaseALURecord, error) {
	b := limbsToUint(reads[0])
	co := limbsToUint(reads[1])

	var a []uint32
	switch inst.Opcode {
	case arch.Add:
		a = solveAdd(c.cfg, b, co)
	case arch.Sub:
		a = solveSub(c.cfg, b, co)
	case arch.Xor:
		a = solveBitwise(b, co, func(x, y uint32) uint32 { return x ^ y })
	case arch.Or:
		a = solveBitwise(b, co, func(x, y uint32) uint32 { return x | y })
	case arch.And:
		a = solveBitwise(b, co, func(x, y uint32) uint32 { return x & y })
	default:
		return arch.AdapterRuntimeContext{}, BaseALURecord{}, fmt.Errorf("chips: opcode %s is not a base ALU opcode", inst.Opcode)
	}

	if inst.Opcode == arch.Add || inst.Opcode == arch.Sub {
		for _, limb := range a {
			c.xor.Request(limb, limb)
		}
	} else {
		for i := range b {
			c.xor.Request(b[i], co[i])
		}
	}

	record := BaseALURecord{Opcode: inst.Opcode, A: a, B: b, C: co}
	output := arch.WithoutPC([][]field.Element{uintToLimbs(a)})
	return output, record, nil
}

func (c *BaseALUCore) GenerateTraceRow(row []field.Element, record BaseALURecord) {
	n := c.cfg.NumLimbs
	copy(row[:n], uintToLimbs(record.A))
	copy(row[n:2*n], uintToLimbs(record.B))
	copy(row[2*n:3*n], uintToLimbs(record.C))

	flags := [5]arch.Opcode{arch.Add, arch.Sub, arch.Xor, arch.Or, arch.And}
	for i, op := range flags {
		row[3*n+i] = boolColumn(record.Opcode == op)
	}
}

func solveAdd(cfg LimbConfig, x, y []uint32) []uint32 {
	z := make([]uint32, len(x))
	carry := uint32(0)
	for i := range x {
		sum := x[i] + y[i] + carry
		carry = sum >> uint(cfg.LimbBits)
		z[i] = sum & (1<<uint(cfg.LimbBits) - 1)
	}
	return z
}

func solveSub(cfg LimbConfig, x, y []uint32) []uint32 {
	z := make([]uint32, len(x))
	borrow := uint32(0)
	for i := range x {
		rhs := y[i] + borrow
		if x[i] >= rhs {
			z[i] = x[i] - rhs
			borrow = 0
		} else {
			z[i] = x[i] + (1 << uint(cfg.LimbBits)) - rhs
			borrow = 1
		}
	}
	return z
}

func solveBitwise(x, y []uint32, op func(uint32, uint32) uint32) []uint32 {
	z := make([]uint32, len(x))
	for i := range x {
		z[i] = op(x[i], y[i])
	}
	return z
}

func limbsToUint(limbs []field.Element) []uint32 {
	out := make([]uint32, len(limbs))
	for i, limb := range limbs {
		out[i] = uint32(limb.Value())
	}
	return out
}

func uintToLimbs(limbs []uint32) []field.Element {
	out := make([]field.Element, len(limbs))
	for i, limb := range limbs {
		out[i] = field.New(uint64(limb))
	}
	return out
}

func boolColumn(b bool) field.Element {
	if b {
		return field.One
	}
	return field.Zero
}
