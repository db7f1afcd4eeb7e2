package chips

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/arch"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/lookup"
)

// MultiplicationCore computes the low NumLimbs limbs of a schoolbook
// multi-precision product. Each output limb's carry is kept as an auxiliary
// value and range checked jointly with the limb through the range tuple
// checker; together they witness that z[i] is the reduced convolution sum.
type MultiplicationCore struct {
	cfg        LimbConfig
	rangeTuple *lookup.RangeTupleChecker
}

// NewMultiplicationCore composes the core with its range tuple checker. The
// checker's first bound must cover a limb, the second the worst-case carry:
// carry < NumLimbs * 2^LimbBits for this convolution.
func NewMultiplicationCore(cfg LimbConfig, rangeTuple *lookup.RangeTupleChecker) *MultiplicationCore {
	sizes := rangeTuple.Sizes()
	if len(sizes) != 2 {
		panic(fmt.Sprintf("chips: multiplication needs a (limb, carry) tuple checker, got arity %d", len(sizes)))
	}
	return &MultiplicationCore{cfg: cfg, rangeTuple: rangeTuple}
}

// CarryBound is the exclusive upper bound of multiplication carries for the
// given limb shape, for sizing the range tuple checker.
func CarryBound(cfg LimbConfig) uint32 {
	return uint32(cfg.NumLimbs) << uint(cfg.LimbBits)
}

// MultiplicationRecord is one executed multiply: result, operands, and the
// per-limb carries.
type MultiplicationRecord struct {
	A     []uint32
	B     []uint32
	C     []uint32
	Carry []uint32
}

func (c *MultiplicationCore) Shape() arch.AccessShape {
	return arch.AccessShape{
		NumReads:  2,
		ReadSize:  c.cfg.NumLimbs,
		NumWrites: 1,
		WriteSize: c.cfg.NumLimbs,
	}
}

// Columns: a, b, c limb vectors, the carry vector, and a validity flag.
func (c *MultiplicationCore) Width() int {
	return 4*c.cfg.NumLimbs + 1
}

func (c *MultiplicationCore) OpcodeName(op arch.Opcode) string {
	return op.String()
}

func (c *MultiplicationCore) ExecuteInstruction(inst *arch.Instruction, fromPC uint32, reads [][]field.Element) (arch.AdapterRuntimeContext, MultiplicationRecord, error) {
	if inst.Opcode != arch.Mul {
		return arch.AdapterRuntimeContext{}, MultiplicationRecord{}, fmt.Errorf("chips: opcode %s is not a multiplication opcode", inst.Opcode)
	}

	b := limbsToUint(reads[0])
	co := limbsToUint(reads[1])
	a, carry := solveMul(c.cfg, b, co)

	for i := range a {
		c.rangeTuple.Request(a[i], carry[i])
	}

	record := MultiplicationRecord{A: a, B: b, C: co, Carry: carry}
	output := arch.WithoutPC([][]field.Element{uintToLimbs(a)})
	return output, record, nil
}

func (c *MultiplicationCore) GenerateTraceRow(row []field.Element, record MultiplicationRecord) {
	n := c.cfg.NumLimbs
	copy(row[:n], uintToLimbs(record.A))
	copy(row[n:2*n], uintToLimbs(record.B))
	copy(row[2*n:3*n], uintToLimbs(record.C))
	copy(row[3*n:4*n], uintToLimbs(record.Carry))
	row[4*n] = field.One
}

// solveMul is the schoolbook algorithm: z[i] is the convolution sum of limb
// products plus the previous carry, reduced mod 2^LimbBits.
func solveMul(cfg LimbConfig, x, y []uint32) (z, carry []uint32) {
	z = make([]uint32, len(x))
	carry = make([]uint32, len(x))
	prev := uint64(0)
	for i := range x {
		sum := prev
		for j := 0; j <= i; j++ {
			sum += uint64(x[j]) * uint64(y[i-j])
		}
		z[i] = uint32(sum & (1<<uint(cfg.LimbBits) - 1))
		prev = sum >> uint(cfg.LimbBits)
		carry[i] = uint32(prev)
	}
	return z, carry
}
