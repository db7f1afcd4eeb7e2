package adapters

import (
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/arch"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/memory"
)

// VecHeapAdapter serves the register-indirect heap opcode class: two operand
// blocks are read from the heap at the addresses held in rs1 and rs2, and one
// result block is written to the heap at the address held in rd. Operands A,
// B, C of the instruction are the rd, rs1, rs2 register pointers. Per
// instruction the adapter performs three register reads, two heap reads, and
// one heap write; pc advances by DefaultPCStep unless the core redirects it.
type VecHeapAdapter struct {
	readSize       int
	writeSize      int
	pointerMaxBits int
}

// NewVecHeapAdapter builds the adapter for block sizes matching the core it
// will be composed with. pointerMaxBits documents the upstream-validated
// address budget; composed register values are assumed to fit it.
func NewVecHeapAdapter(readSize, writeSize, pointerMaxBits int) *VecHeapAdapter {
	return &VecHeapAdapter{
		readSize:       readSize,
		writeSize:      writeSize,
		pointerMaxBits: pointerMaxBits,
	}
}

// VecHeapReadRecord captures the register fetches and heap reads of one
// instruction.
type VecHeapReadRecord struct {
	Rd  RegisterRead
	Rs1 RegisterRead
	Rs2 RegisterRead

	Reads [2]HeapAccess
}

// VecHeapWriteRecord captures the starting state and the heap write of one
// instruction.
type VecHeapWriteRecord struct {
	FromState arch.ExecutionState
	Write     HeapAccess
	PrevData  []field.Element
}

func (a *VecHeapAdapter) Shape() arch.AccessShape {
	return arch.AccessShape{
		NumReads:  2,
		ReadSize:  a.readSize,
		NumWrites: 1,
		WriteSize: a.writeSize,
	}
}

// Columns: from_state (2), rd/rs1/rs2 pointers (3), rd/rs1/rs2 limbs (3*4),
// record handles for the three register reads, two heap reads, one heap
// write (6).
func (a *VecHeapAdapter) Width() int {
	return 2 + 3 + 3*arch.RegisterNumLimbs + 6
}

func (a *VecHeapAdapter) Preprocess(mem *memory.Memory, inst *arch.Instruction) ([][]field.Element, VecHeapReadRecord, error) {
	rd := readRegister(mem, uint32(inst.A.Value()))
	rs1 := readRegister(mem, uint32(inst.B.Value()))
	rs2 := readRegister(mem, uint32(inst.C.Value()))

	var record VecHeapReadRecord
	record.Rd = rd
	record.Rs1 = rs1
	record.Rs2 = rs2

	reads := make([][]field.Element, 2)
	for i, source := range [2]RegisterRead{rs1, rs2} {
		id, data := mem.Read(arch.HeapAddressSpace, source.Value, a.readSize)
		record.Reads[i] = HeapAccess{Record: id, Ptr: source.Value, Data: data}
		reads[i] = data
	}

	return reads, record, nil
}

func (a *VecHeapAdapter) Postprocess(
	mem *memory.Memory,
	inst *arch.Instruction,
	from arch.ExecutionState,
	output arch.AdapterRuntimeContext,
	readRecord VecHeapReadRecord,
) (arch.ExecutionState, VecHeapWriteRecord, error) {
	id, prev := mem.Write(arch.HeapAddressSpace, readRecord.Rd.Value, output.Writes[0])

	toPC := from.PC + arch.DefaultPCStep
	if output.ToPC != nil {
		toPC = *output.ToPC
	}

	record := VecHeapWriteRecord{
		FromState: from,
		Write:     HeapAccess{Record: id, Ptr: readRecord.Rd.Value, Data: output.Writes[0]},
		PrevData:  prev,
	}
	next := arch.ExecutionState{PC: toPC, Timestamp: mem.Timestamp()}
	return next, record, nil
}

func (a *VecHeapAdapter) GenerateTraceRow(row []field.Element, readRecord VecHeapReadRecord, writeRecord VecHeapWriteRecord) {
	row[0] = field.New(uint64(writeRecord.FromState.PC))
	row[1] = field.New(uint64(writeRecord.FromState.Timestamp))
	row[2] = field.New(uint64(readRecord.Rd.Ptr))
	row[3] = field.New(uint64(readRecord.Rs1.Ptr))
	row[4] = field.New(uint64(readRecord.Rs2.Ptr))

	col := 5
	for _, reg := range [3]RegisterRead{readRecord.Rd, readRecord.Rs1, readRecord.Rs2} {
		copy(row[col:col+arch.RegisterNumLimbs], reg.Data[:])
		col += arch.RegisterNumLimbs
	}

	row[col] = recordColumn(readRecord.Rd.Record)
	row[col+1] = recordColumn(readRecord.Rs1.Record)
	row[col+2] = recordColumn(readRecord.Rs2.Record)
	row[col+3] = recordColumn(readRecord.Reads[0].Record)
	row[col+4] = recordColumn(readRecord.Reads[1].Record)
	row[col+5] = recordColumn(writeRecord.Write.Record)
}
