package arch

import (
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/memory"
)

// AccessShape is the reads/writes shape contract between an adapter and a
// core: how many operand blocks flow each way and how wide each block is. An
// adapter and a core compose only if their shapes agree; the mismatch is a
// construction-time contract violation.
type AccessShape struct {
	NumReads  int
	ReadSize  int
	NumWrites int
	WriteSize int
}

// AdapterRuntimeContext is the core's output handed back to the adapter: the
// operand blocks to write and an optional program counter redirect for
// control-flow opcodes.
type AdapterRuntimeContext struct {
	// ToPC, when non-nil, overrides the adapter's default pc advance.
	ToPC *uint32

	// Writes holds NumWrites blocks of WriteSize elements each.
	Writes [][]field.Element
}

// WithoutPC wraps writes with no pc redirect.
func WithoutPC(writes [][]field.Element) AdapterRuntimeContext {
	return AdapterRuntimeContext{Writes: writes}
}

// AdapterChip handles the opcode-class-independent mechanics of one
// instruction class: fetching pointer operands from registers, performing the
// class's memory reads and writes, and advancing pc and timestamp. RR and WR
// are the adapter's read and write record types, produced during execution and
// consumed once to generate the adapter's portion of the trace row.
type AdapterChip[RR, WR any] interface {
	// Preprocess performs the class's reads and returns the operand blocks
	// for the core together with the read record.
	Preprocess(mem *memory.Memory, inst *Instruction) ([][]field.Element, RR, error)

	// Postprocess performs the class's writes and advances the execution
	// state.
	Postprocess(mem *memory.Memory, inst *Instruction, from ExecutionState,
		output AdapterRuntimeContext, readRecord RR) (ExecutionState, WR, error)

	// GenerateTraceRow converts one instruction's records into the adapter
	// columns of one trace row.
	GenerateTraceRow(row []field.Element, readRecord RR, writeRecord WR)

	// Width is the number of adapter columns.
	Width() int

	// Shape is the adapter's reads/writes shape.
	Shape() AccessShape
}

// CoreChip computes the opcode-specific result of one instruction class from
// already-fetched operands. It never touches memory or the program counter
// directly; control-flow cores request a redirect through the runtime context.
// CR is the core's record type.
type CoreChip[CR any] interface {
	// ExecuteInstruction computes output operands and auxiliary proof values
	// from the adapter's reads.
	ExecuteInstruction(inst *Instruction, fromPC uint32, reads [][]field.Element) (AdapterRuntimeContext, CR, error)

	// GenerateTraceRow converts one record into the core columns of one row.
	GenerateTraceRow(row []field.Element, record CR)

	// Width is the number of core columns.
	Width() int

	// Shape is the core's expected reads/writes shape.
	Shape() AccessShape

	// OpcodeName resolves an opcode of this family to a diagnostic name.
	OpcodeName(op Opcode) string
}

// InstructionExecutor is the uniform dispatch contract the execution loop sees:
// run one full instruction cycle and, at segment end, surrender the
// accumulated trace.
type InstructionExecutor interface {
	// Execute runs Preprocess -> ExecuteInstruction -> Postprocess and
	// records one trace row. It returns the successor state.
	Execute(mem *memory.Memory, inst *Instruction, from ExecutionState) (ExecutionState, error)

	// OpcodeName resolves an opcode handled by this executor.
	OpcodeName(op Opcode) string

	// Width is the total trace row width (adapter + core columns).
	Width() int

	// FinalizeTrace pads the accumulated rows to a power-of-two height and
	// resets the accumulator.
	FinalizeTrace() *TraceMatrix
}
