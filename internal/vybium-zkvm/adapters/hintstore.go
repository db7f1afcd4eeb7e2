package adapters

import (
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/arch"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/memory"
)

// HintStoreAdapter serves the hint-store opcode class: the destination pointer
// is read from the register named by operand A, and the core's output word
// (one register width of cells, produced from the hint stream) is written to
// the heap at that pointer. The core performs no reads through the adapter.
type HintStoreAdapter struct{}

func NewHintStoreAdapter() *HintStoreAdapter {
	return &HintStoreAdapter{}
}

// HintStoreReadRecord captures the destination register fetch.
type HintStoreReadRecord struct {
	Rd RegisterRead
}

// HintStoreWriteRecord captures the starting state and the heap write.
type HintStoreWriteRecord struct {
	FromState arch.ExecutionState
	Write     HeapAccess
}

func (a *HintStoreAdapter) Shape() arch.AccessShape {
	return arch.AccessShape{NumWrites: 1, WriteSize: arch.RegisterNumLimbs}
}

// Columns: from_state (2), rd pointer, rd limbs, register-read and heap-write
// record handles (2).
func (a *HintStoreAdapter) Width() int {
	return 2 + 1 + arch.RegisterNumLimbs + 2
}

func (a *HintStoreAdapter) Preprocess(mem *memory.Memory, inst *arch.Instruction) ([][]field.Element, HintStoreReadRecord, error) {
	rd := readRegister(mem, uint32(inst.A.Value()))
	return nil, HintStoreReadRecord{Rd: rd}, nil
}

func (a *HintStoreAdapter) Postprocess(
	mem *memory.Memory,
	inst *arch.Instruction,
	from arch.ExecutionState,
	output arch.AdapterRuntimeContext,
	readRecord HintStoreReadRecord,
) (arch.ExecutionState, HintStoreWriteRecord, error) {
	id, _ := mem.Write(arch.HeapAddressSpace, readRecord.Rd.Value, output.Writes[0])

	record := HintStoreWriteRecord{
		FromState: from,
		Write:     HeapAccess{Record: id, Ptr: readRecord.Rd.Value, Data: output.Writes[0]},
	}
	next := arch.ExecutionState{PC: from.PC + arch.DefaultPCStep, Timestamp: mem.Timestamp()}
	return next, record, nil
}

func (a *HintStoreAdapter) GenerateTraceRow(row []field.Element, readRecord HintStoreReadRecord, writeRecord HintStoreWriteRecord) {
	row[0] = field.New(uint64(writeRecord.FromState.PC))
	row[1] = field.New(uint64(writeRecord.FromState.Timestamp))
	row[2] = field.New(uint64(readRecord.Rd.Ptr))
	copy(row[3:3+arch.RegisterNumLimbs], readRecord.Rd.Data[:])
	row[3+arch.RegisterNumLimbs] = recordColumn(readRecord.Rd.Record)
	row[4+arch.RegisterNumLimbs] = recordColumn(writeRecord.Write.Record)
}
