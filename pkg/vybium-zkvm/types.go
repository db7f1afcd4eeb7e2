package vybiumzkvm

import (
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/arch"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/executor"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/memory"
)

// FieldElement is the base field element type used throughout the VM.
type FieldElement = field.Element

// Digest is a Merkle commitment root.
type Digest = hash.Digest

// Opcode identifies an instruction.
type Opcode = arch.Opcode

// Instruction opcodes by family.
const (
	Terminate  = arch.Terminate
	Add        = arch.Add
	Sub        = arch.Sub
	Xor        = arch.Xor
	Or         = arch.Or
	And        = arch.And
	Mul        = arch.Mul
	Jal        = arch.Jal
	HintStoreW = arch.HintStoreW
)

// Instruction is one decoded instruction: an opcode plus six operands.
type Instruction = arch.Instruction

// Program is a pc-indexed instruction list.
type Program = arch.Program

// NewProgram returns an empty program based at pc 0.
func NewProgram() *Program {
	return arch.NewProgram()
}

// Operand builds an instruction operand from an integer.
func Operand(v uint64) FieldElement {
	return field.New(v)
}

// Config is the VM configuration: memory geometry, segment bound, and the
// enabled opcode families.
type Config = arch.VmConfig

// DefaultConfig enables every opcode family with production bounds.
func DefaultConfig() Config {
	return arch.DefaultVmConfig()
}

// ReadConfigFile loads and validates a Config from a TOML file.
func ReadConfigFile(path string) (Config, error) {
	return arch.ReadConfigFile(path)
}

// TraceMatrix is one chip's trace: a row-major matrix of field elements.
type TraceMatrix = arch.TraceMatrix

// ChipTrace is one chip's named trace within a segment.
type ChipTrace = executor.ChipTrace

// SegmentResult holds one segment's traces and instruction count.
type SegmentResult = executor.SegmentResult

// ExecutionResult is the outcome of running a program to termination.
type ExecutionResult = executor.ExecutionResult

// MemoryImage is a sparse snapshot of VM memory.
type MemoryImage = memory.Image

// MemoryAddress identifies one memory cell.
type MemoryAddress = memory.Address

// Memory address space conventions.
const (
	RegisterAddressSpace = arch.RegisterAddressSpace
	HeapAddressSpace     = arch.HeapAddressSpace
)
