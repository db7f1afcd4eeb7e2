// Package arch defines the instruction set surface and the chip dispatch
// contract of the Vybium zkVM: instructions and programs, execution state, the
// adapter/core split every instruction executor is built from, the shared
// hint/input streams, and the VM configuration.
package arch

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// Opcode identifies an instruction. Opcodes are grouped into families; every
// family is served by one chip instance.
type Opcode uint32

const (
	// Terminate halts execution of the current program.
	Terminate Opcode = 0

	// ========== Base ALU family ==========

	// Add computes limb-wise addition with carry propagation.
	Add Opcode = 0x10

	// Sub computes limb-wise subtraction with borrow propagation.
	Sub Opcode = 0x11

	// Xor computes limb-wise exclusive or.
	Xor Opcode = 0x12

	// Or computes limb-wise inclusive or.
	Or Opcode = 0x13

	// And computes limb-wise conjunction.
	And Opcode = 0x14

	// ========== Multiplication family ==========

	// Mul computes the low limbs of a schoolbook multi-precision product.
	Mul Opcode = 0x20

	// ========== Control flow ==========

	// Jal jumps by an immediate offset and writes the return address.
	Jal Opcode = 0x30

	// ========== I/O ==========

	// HintStoreW pops one register-width word from the hint stream and
	// stores it to memory.
	HintStoreW Opcode = 0x40
)

// String returns the mnemonic for diagnostics.
func (op Opcode) String() string {
	switch op {
	case Terminate:
		return "TERMINATE"
	case Add:
		return "ADD"
	case Sub:
		return "SUB"
	case Xor:
		return "XOR"
	case Or:
		return "OR"
	case And:
		return "AND"
	case Mul:
		return "MUL"
	case Jal:
		return "JAL"
	case HintStoreW:
		return "HINT_STOREW"
	}
	return fmt.Sprintf("UNKNOWN(0x%x)", uint32(op))
}

// Register file and heap conventions shared by adapters and chips.
const (
	// RegisterAddressSpace holds the register file.
	RegisterAddressSpace uint32 = 1

	// HeapAddressSpace holds program data.
	HeapAddressSpace uint32 = 2

	// RegisterNumLimbs is the number of cells one register occupies.
	RegisterNumLimbs = 4

	// CellBits is the value range of one cell/limb.
	CellBits = 8

	// DefaultPCStep is the program counter increment of a non-branching
	// instruction.
	DefaultPCStep uint32 = 4
)

// Instruction is one decoded instruction: an opcode plus six field-element
// operands whose meaning is fixed per opcode family. Instructions come from an
// external transpiler; the core only requires that the opcode resolves to a
// chip.
type Instruction struct {
	Opcode Opcode
	A      field.Element
	B      field.Element
	C      field.Element
	D      field.Element
	E      field.Element
	F      field.Element
}

// Program is a pc-indexed instruction list. Instruction i sits at
// PCBase + i*DefaultPCStep.
type Program struct {
	Instructions []Instruction
	PCBase       uint32
}

// NewProgram returns an empty program based at pc 0.
func NewProgram() *Program {
	return &Program{}
}

// AddInstruction appends an instruction at the next program counter slot.
func (p *Program) AddInstruction(inst Instruction) {
	p.Instructions = append(p.Instructions, inst)
}

// InstructionAt resolves the instruction at the given program counter, or
// false if pc falls outside the program.
func (p *Program) InstructionAt(pc uint32) (*Instruction, bool) {
	if pc < p.PCBase || (pc-p.PCBase)%DefaultPCStep != 0 {
		return nil, false
	}
	index := (pc - p.PCBase) / DefaultPCStep
	if index >= uint32(len(p.Instructions)) {
		return nil, false
	}
	return &p.Instructions[index], true
}
