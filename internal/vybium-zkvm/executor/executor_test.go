package executor

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/arch"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/memory"
)

func quietExecutor(t *testing.T, config arch.VmConfig) *VmExecutor {
	t.Helper()
	e, err := NewVmExecutor(config)
	require.NoError(t, err)
	e.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return e
}

// setImageRegister stores value at the register ptr as little-endian limbs.
func setImageRegister(img memory.Image, ptr, value uint32) {
	for i := 0; i < arch.RegisterNumLimbs; i++ {
		img[memory.Address{AddressSpace: arch.RegisterAddressSpace, Pointer: ptr + uint32(i)}] =
			field.New(uint64(value & (1<<arch.CellBits - 1)))
		value >>= arch.CellBits
	}
}

func setImageHeap(img memory.Image, ptr uint32, values ...uint64) {
	for i, v := range values {
		img[memory.Address{AddressSpace: arch.HeapAddressSpace, Pointer: ptr + uint32(i)}] = field.New(v)
	}
}

func inst(op arch.Opcode, a, b, c uint64) arch.Instruction {
	return arch.Instruction{Opcode: op, A: field.New(a), B: field.New(b), C: field.New(c)}
}

// aluFixture seeds registers r0 -> heap[100], r1 -> heap[200], r2 -> heap[300]
// with operand words at the read pointers.
func aluFixture() memory.Image {
	img := make(memory.Image)
	setImageRegister(img, 0, 100)
	setImageRegister(img, 4, 200)
	setImageRegister(img, 8, 300)
	setImageHeap(img, 200, 1, 2, 3, 4)
	setImageHeap(img, 300, 5, 6, 7, 8)
	return img
}

func TestExecuteAddEndToEnd(t *testing.T) {
	e := quietExecutor(t, arch.DefaultVmConfig())

	p := arch.NewProgram()
	p.AddInstruction(inst(arch.Add, 0, 4, 8))
	p.AddInstruction(inst(arch.Terminate, 0, 0, 0))

	result, err := e.ExecuteFromImage(p, nil, nil, aluFixture())
	require.NoError(t, err)

	require.Len(t, result.Segments, 1)
	assert.Equal(t, 2, result.Segments[0].Instret)
	assert.Equal(t, arch.DefaultPCStep, result.FinalState.PC)

	want := []uint64{6, 8, 10, 12}
	for i, v := range want {
		cell := result.FinalMemory.Get(memory.Address{AddressSpace: arch.HeapAddressSpace, Pointer: 100 + uint32(i)})
		assert.Equal(t, v, cell.Value(), "limb %d", i)
	}
}

func TestExecuteEmitsTracesPerChip(t *testing.T) {
	e := quietExecutor(t, arch.DefaultVmConfig())

	p := arch.NewProgram()
	p.AddInstruction(inst(arch.Add, 0, 4, 8))
	p.AddInstruction(inst(arch.Mul, 0, 4, 8))
	p.AddInstruction(inst(arch.Terminate, 0, 0, 0))

	result, err := e.ExecuteFromImage(p, nil, nil, aluFixture())
	require.NoError(t, err)

	byName := map[string]*arch.TraceMatrix{}
	for _, ct := range result.Segments[0].Traces {
		byName[ct.Name] = ct.Trace
	}
	for _, name := range []string{"base_alu", "multiplication", "jal", "hint_store", "xor_lookup", "range_tuple"} {
		require.Contains(t, byName, name)
	}

	assert.Equal(t, 1, byName["base_alu"].Height)
	assert.Equal(t, 1, byName["multiplication"].Height)
	// untouched chips still contribute a blank padded trace
	assert.Equal(t, 1, byName["jal"].Height)
}

func TestSegmentationPreservesSemantics(t *testing.T) {
	p := arch.NewProgram()
	p.AddInstruction(inst(arch.Add, 0, 4, 8))
	p.AddInstruction(inst(arch.Add, 0, 0, 8))
	p.AddInstruction(inst(arch.Add, 0, 0, 8))
	p.AddInstruction(inst(arch.Terminate, 0, 0, 0))

	single, err := quietExecutor(t, arch.DefaultVmConfig()).ExecuteFromImage(p, nil, nil, aluFixture())
	require.NoError(t, err)
	require.Len(t, single.Segments, 1)

	short := arch.DefaultVmConfig()
	short.MaxSegmentLen = 2
	split, err := quietExecutor(t, short).ExecuteFromImage(p, nil, nil, aluFixture())
	require.NoError(t, err)
	require.Len(t, split.Segments, 2)
	assert.Equal(t, 2, split.Segments[0].Instret)
	assert.Equal(t, 2, split.Segments[1].Instret)

	assert.Equal(t, single.FinalState.PC, split.FinalState.PC)
	require.Equal(t, len(single.FinalMemory), len(split.FinalMemory))
	for addr, v := range single.FinalMemory {
		assert.True(t, split.FinalMemory.Get(addr).Equal(v))
	}

	dims := arch.DefaultVmConfig().Dimensions()
	assert.Equal(t, single.CommitMemory(dims), split.CommitMemory(dims))
}

func TestJalSkipsAndLinks(t *testing.T) {
	e := quietExecutor(t, arch.DefaultVmConfig())

	// jal r16, +8 skips over the next slot
	p := arch.NewProgram()
	p.AddInstruction(inst(arch.Jal, 16, 8, 0))
	p.AddInstruction(inst(arch.Add, 0, 4, 8)) // skipped
	p.AddInstruction(inst(arch.Terminate, 0, 0, 0))

	result, err := e.ExecuteFromImage(p, nil, nil, aluFixture())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Segments[0].Instret)

	// link register holds pc + step
	link := uint64(0)
	for i := arch.RegisterNumLimbs - 1; i >= 0; i-- {
		cell := result.FinalMemory.Get(memory.Address{AddressSpace: arch.RegisterAddressSpace, Pointer: 16 + uint32(i)})
		link = link<<arch.CellBits | cell.Value()
	}
	assert.Equal(t, uint64(arch.DefaultPCStep), link)
}

func TestHintStoreWritesHintWord(t *testing.T) {
	e := quietExecutor(t, arch.DefaultVmConfig())

	img := make(memory.Image)
	setImageRegister(img, 0, 64)

	p := arch.NewProgram()
	p.AddInstruction(inst(arch.HintStoreW, 0, 0, 0))
	p.AddInstruction(inst(arch.Terminate, 0, 0, 0))

	result, err := e.ExecuteFromImage(p, nil, []uint64{11, 22, 33, 44}, img)
	require.NoError(t, err)

	for i, v := range []uint64{11, 22, 33, 44} {
		cell := result.FinalMemory.Get(memory.Address{AddressSpace: arch.HeapAddressSpace, Pointer: 64 + uint32(i)})
		assert.Equal(t, v, cell.Value())
	}
}

func TestHintUnderflowSurfacesTypedError(t *testing.T) {
	e := quietExecutor(t, arch.DefaultVmConfig())

	img := make(memory.Image)
	setImageRegister(img, 0, 64)

	p := arch.NewProgram()
	p.AddInstruction(inst(arch.HintStoreW, 0, 0, 0))
	p.AddInstruction(inst(arch.Terminate, 0, 0, 0))

	_, err := e.ExecuteFromImage(p, nil, []uint64{1, 2}, img)
	require.Error(t, err)

	var execErr *arch.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, arch.ErrHintOutOfBounds, execErr.Code)
	assert.Equal(t, uint32(0), execErr.PC)
}

func TestDisabledOpcodeFamily(t *testing.T) {
	config := arch.DefaultVmConfig()
	config.EnabledFamilies = []string{"jal"}
	e := quietExecutor(t, config)

	p := arch.NewProgram()
	p.AddInstruction(inst(arch.Add, 0, 4, 8))
	p.AddInstruction(inst(arch.Terminate, 0, 0, 0))

	_, err := e.ExecuteFromImage(p, nil, nil, aluFixture())
	require.Error(t, err)

	var execErr *arch.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, arch.ErrDisabledOpcode, execErr.Code)
}

func TestPCOutOfBounds(t *testing.T) {
	e := quietExecutor(t, arch.DefaultVmConfig())

	// jump past the end of the program, never terminate
	p := arch.NewProgram()
	p.AddInstruction(inst(arch.Jal, 16, 100, 0))

	_, err := e.Execute(p, nil, nil)
	require.Error(t, err)

	var execErr *arch.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, arch.ErrPCOutOfBounds, execErr.Code)
	assert.Equal(t, uint32(100), execErr.PC)
}

func TestEmptyProgramRejected(t *testing.T) {
	e := quietExecutor(t, arch.DefaultVmConfig())
	_, err := e.Execute(arch.NewProgram(), nil, nil)
	assert.Error(t, err)
}

func TestProgramIDIsContentSensitive(t *testing.T) {
	p1 := arch.NewProgram()
	p1.AddInstruction(inst(arch.Add, 0, 4, 8))

	p2 := arch.NewProgram()
	p2.AddInstruction(inst(arch.Add, 0, 4, 9))

	assert.NotEqual(t, ProgramID(p1), ProgramID(p2))
	assert.Equal(t, ProgramID(p1), ProgramID(p1))
}
