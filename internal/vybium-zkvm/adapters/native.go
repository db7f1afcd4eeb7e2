package adapters

import (
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/arch"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/memory"
)

// NativeAdapter serves control-flow opcodes that fetch nothing and write one
// cell to a register-space address named by operand A (the return address for
// JAL). The core decides the pc redirect; without one, pc advances by
// DefaultPCStep.
type NativeAdapter struct{}

func NewNativeAdapter() *NativeAdapter {
	return &NativeAdapter{}
}

// NativeReadRecord is empty: the class performs no reads.
type NativeReadRecord struct{}

// NativeWriteRecord captures the starting state and the single-cell write.
type NativeWriteRecord struct {
	FromState arch.ExecutionState
	Ptr       uint32
	Record    memory.RecordID
	Data      field.Element
}

func (a *NativeAdapter) Shape() arch.AccessShape {
	return arch.AccessShape{NumWrites: 1, WriteSize: 1}
}

// Columns: from_state (2), write pointer, written value, write record handle.
func (a *NativeAdapter) Width() int {
	return 5
}

func (a *NativeAdapter) Preprocess(mem *memory.Memory, inst *arch.Instruction) ([][]field.Element, NativeReadRecord, error) {
	return nil, NativeReadRecord{}, nil
}

func (a *NativeAdapter) Postprocess(
	mem *memory.Memory,
	inst *arch.Instruction,
	from arch.ExecutionState,
	output arch.AdapterRuntimeContext,
	_ NativeReadRecord,
) (arch.ExecutionState, NativeWriteRecord, error) {
	ptr := uint32(inst.A.Value())
	id, _ := mem.Write(arch.RegisterAddressSpace, ptr, output.Writes[0])

	toPC := from.PC + arch.DefaultPCStep
	if output.ToPC != nil {
		toPC = *output.ToPC
	}

	record := NativeWriteRecord{
		FromState: from,
		Ptr:       ptr,
		Record:    id,
		Data:      output.Writes[0][0],
	}
	next := arch.ExecutionState{PC: toPC, Timestamp: mem.Timestamp()}
	return next, record, nil
}

func (a *NativeAdapter) GenerateTraceRow(row []field.Element, _ NativeReadRecord, writeRecord NativeWriteRecord) {
	row[0] = field.New(uint64(writeRecord.FromState.PC))
	row[1] = field.New(uint64(writeRecord.FromState.Timestamp))
	row[2] = field.New(uint64(writeRecord.Ptr))
	row[3] = writeRecord.Data
	row[4] = recordColumn(writeRecord.Record)
}
