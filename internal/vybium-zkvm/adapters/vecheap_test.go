package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/arch"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/memory"
)

func elems(values ...uint64) []field.Element {
	out := make([]field.Element, len(values))
	for i, v := range values {
		out[i] = field.New(v)
	}
	return out
}

// setRegister writes value into the register at ptr as little-endian limbs.
func setRegister(mem *memory.Memory, ptr, value uint32) {
	limbs := make([]field.Element, arch.RegisterNumLimbs)
	for i := range limbs {
		limbs[i] = field.New(uint64(value & (1<<arch.CellBits - 1)))
		value >>= arch.CellBits
	}
	mem.Write(arch.RegisterAddressSpace, ptr, limbs)
}

func TestReadRegisterComposesLittleEndian(t *testing.T) {
	mem := memory.NewMemory()
	mem.Write(arch.RegisterAddressSpace, 12, elems(0x78, 0x56, 0x34, 0x12))

	reg := readRegister(mem, 12)
	assert.Equal(t, uint32(0x12345678), reg.Value)
	assert.Equal(t, uint32(12), reg.Ptr)
	assert.True(t, reg.Data[0].Equal(field.New(0x78)))
}

func TestVecHeapAdapterRoundTrip(t *testing.T) {
	mem := memory.NewMemory()
	setRegister(mem, 0, 100) // rd -> heap[100]
	setRegister(mem, 4, 200) // rs1 -> heap[200]
	setRegister(mem, 8, 300) // rs2 -> heap[300]
	mem.Write(arch.HeapAddressSpace, 200, elems(1, 2, 3, 4))
	mem.Write(arch.HeapAddressSpace, 300, elems(5, 6, 7, 8))

	a := NewVecHeapAdapter(4, 4, 29)
	inst := &arch.Instruction{Opcode: arch.Add, A: field.New(0), B: field.New(4), C: field.New(8)}

	reads, readRecord, err := a.Preprocess(mem, inst)
	require.NoError(t, err)
	require.Len(t, reads, 2)
	assert.True(t, reads[0][0].Equal(field.New(1)))
	assert.True(t, reads[1][3].Equal(field.New(8)))
	assert.Equal(t, uint32(100), readRecord.Rd.Value)
	assert.Equal(t, uint32(200), readRecord.Reads[0].Ptr)

	from := arch.ExecutionState{PC: 40, Timestamp: mem.Timestamp()}
	output := arch.WithoutPC([][]field.Element{elems(6, 8, 10, 12)})
	next, writeRecord, err := a.Postprocess(mem, inst, from, output, readRecord)
	require.NoError(t, err)

	assert.Equal(t, uint32(40+arch.DefaultPCStep), next.PC)
	assert.Equal(t, mem.Timestamp(), next.Timestamp)
	assert.Equal(t, uint32(100), writeRecord.Write.Ptr)
	assert.True(t, mem.Get(arch.HeapAddressSpace, 102).Equal(field.New(10)))

	row := make([]field.Element, a.Width())
	a.GenerateTraceRow(row, readRecord, writeRecord)
	assert.True(t, row[0].Equal(field.New(40)))  // from pc
	assert.True(t, row[2].Equal(field.New(0)))   // rd ptr
	assert.True(t, row[3].Equal(field.New(4)))   // rs1 ptr
	assert.True(t, row[4].Equal(field.New(8)))   // rs2 ptr
	assert.True(t, row[5].Equal(field.New(100))) // rd limb 0
}

func TestVecHeapAdapterHonorsPCRedirect(t *testing.T) {
	mem := memory.NewMemory()
	setRegister(mem, 0, 50)

	a := NewVecHeapAdapter(4, 4, 29)
	inst := &arch.Instruction{Opcode: arch.Add, A: field.New(0), B: field.New(0), C: field.New(0)}
	_, readRecord, err := a.Preprocess(mem, inst)
	require.NoError(t, err)

	toPC := uint32(4096)
	output := arch.AdapterRuntimeContext{ToPC: &toPC, Writes: [][]field.Element{elems(0, 0, 0, 0)}}
	next, _, err := a.Postprocess(mem, inst, arch.ExecutionState{PC: 40}, output, readRecord)
	require.NoError(t, err)
	assert.Equal(t, uint32(4096), next.PC)
}

func TestNativeAdapterWritesRegisterCell(t *testing.T) {
	mem := memory.NewMemory()
	a := NewNativeAdapter()
	inst := &arch.Instruction{Opcode: arch.Jal, A: field.New(16)}

	_, readRecord, err := a.Preprocess(mem, inst)
	require.NoError(t, err)

	toPC := uint32(88)
	output := arch.AdapterRuntimeContext{ToPC: &toPC, Writes: [][]field.Element{elems(44)}}
	next, writeRecord, err := a.Postprocess(mem, inst, arch.ExecutionState{PC: 40, Timestamp: 1}, output, readRecord)
	require.NoError(t, err)

	assert.Equal(t, uint32(88), next.PC)
	assert.True(t, mem.Get(arch.RegisterAddressSpace, 16).Equal(field.New(44)))

	row := make([]field.Element, a.Width())
	a.GenerateTraceRow(row, readRecord, writeRecord)
	assert.True(t, row[2].Equal(field.New(16)))
	assert.True(t, row[3].Equal(field.New(44)))
}

func TestHintStoreAdapterWritesWordToHeap(t *testing.T) {
	mem := memory.NewMemory()
	setRegister(mem, 20, 500)

	a := NewHintStoreAdapter()
	inst := &arch.Instruction{Opcode: arch.HintStoreW, A: field.New(20)}

	reads, readRecord, err := a.Preprocess(mem, inst)
	require.NoError(t, err)
	assert.Nil(t, reads)
	assert.Equal(t, uint32(500), readRecord.Rd.Value)

	output := arch.WithoutPC([][]field.Element{elems(9, 8, 7, 6)})
	next, writeRecord, err := a.Postprocess(mem, inst, arch.ExecutionState{PC: 0}, output, readRecord)
	require.NoError(t, err)

	assert.Equal(t, arch.DefaultPCStep, next.PC)
	assert.Equal(t, uint32(500), writeRecord.Write.Ptr)
	assert.True(t, mem.Get(arch.HeapAddressSpace, 503).Equal(field.New(6)))
}
