package chips

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/arch"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/lookup"
)

func elems(values ...uint64) []field.Element {
	out := make([]field.Element, len(values))
	for i, v := range values {
		out[i] = field.New(v)
	}
	return out
}

func runALU(t *testing.T, op arch.Opcode, b, c []field.Element) []uint32 {
	t.Helper()
	core := NewBaseALUCore(DefaultLimbConfig(), lookup.NewXorLookup(arch.CellBits))
	inst := &arch.Instruction{Opcode: op}

	output, record, err := core.ExecuteInstruction(inst, 0, [][]field.Element{b, c})
	require.NoError(t, err)
	require.Len(t, output.Writes, 1)
	assert.Nil(t, output.ToPC)

	for i, limb := range record.A {
		assert.Equal(t, uint64(limb), output.Writes[0][i].Value())
	}
	return record.A
}

func TestAddPropagatesCarry(t *testing.T) {
	a := runALU(t, arch.Add, elems(255, 0, 0, 0), elems(1, 0, 0, 0))
	assert.Equal(t, []uint32{0, 1, 0, 0}, a)

	a = runALU(t, arch.Add, elems(255, 255, 255, 255), elems(1, 0, 0, 0))
	assert.Equal(t, []uint32{0, 0, 0, 0}, a)
}

func TestSubPropagatesBorrow(t *testing.T) {
	a := runALU(t, arch.Sub, elems(0, 1, 0, 0), elems(1, 0, 0, 0))
	assert.Equal(t, []uint32{255, 0, 0, 0}, a)

	// 0 - 1 wraps to all-ones
	a = runALU(t, arch.Sub, elems(0, 0, 0, 0), elems(1, 0, 0, 0))
	assert.Equal(t, []uint32{255, 255, 255, 255}, a)
}

func TestAddSubRoundTrip(t *testing.T) {
	b := elems(0x12, 0x34, 0x56, 0x78)
	c := elems(0xfe, 0xdc, 0xba, 0x98)

	sum := runALU(t, arch.Add, b, c)
	back := runALU(t, arch.Sub, uintToLimbs(sum), c)
	for i, limb := range back {
		assert.Equal(t, b[i].Value(), uint64(limb))
	}
}

func TestBitwiseOpcodes(t *testing.T) {
	b := elems(0b1010, 0, 0, 0)
	c := elems(0b0110, 0, 0, 0)

	assert.Equal(t, uint32(0b1100), runALU(t, arch.Xor, b, c)[0])
	assert.Equal(t, uint32(0b1110), runALU(t, arch.Or, b, c)[0])
	assert.Equal(t, uint32(0b0010), runALU(t, arch.And, b, c)[0])
}

func TestALURejectsForeignOpcode(t *testing.T) {
	core := NewBaseALUCore(DefaultLimbConfig(), lookup.NewXorLookup(arch.CellBits))
	inst := &arch.Instruction{Opcode: arch.Mul}

	_, _, err := core.ExecuteInstruction(inst, 0, [][]field.Element{elems(0, 0, 0, 0), elems(0, 0, 0, 0)})
	assert.Error(t, err)
}

func TestALUTraceRowFlags(t *testing.T) {
	core := NewBaseALUCore(DefaultLimbConfig(), lookup.NewXorLookup(arch.CellBits))
	inst := &arch.Instruction{Opcode: arch.Xor}
	_, record, err := core.ExecuteInstruction(inst, 0, [][]field.Element{elems(3, 0, 0, 0), elems(5, 0, 0, 0)})
	require.NoError(t, err)

	row := make([]field.Element, core.Width())
	core.GenerateTraceRow(row, record)

	n := DefaultLimbConfig().NumLimbs
	assert.True(t, row[0].Equal(field.New(6)))          // a limb 0
	assert.True(t, row[3*n].Equal(field.Zero))          // add flag
	assert.True(t, row[3*n+2].Equal(field.One))         // xor flag
	assert.True(t, row[3*n+4].Equal(field.Zero))        // and flag
	assert.True(t, row[n].Equal(field.New(3)))          // b limb 0
	assert.True(t, row[2*n].Equal(field.New(5)))        // c limb 0
}

func TestALURangeChecksResultsThroughXorTable(t *testing.T) {
	xor := lookup.NewXorLookup(arch.CellBits)
	core := NewBaseALUCore(DefaultLimbConfig(), xor)
	inst := &arch.Instruction{Opcode: arch.Add}
	_, _, err := core.ExecuteInstruction(inst, 0, [][]field.Element{elems(10, 0, 0, 0), elems(20, 0, 0, 0)})
	require.NoError(t, err)

	m := xor.FinalizeTrace()
	found := false
	for i := 0; i < m.Height; i++ {
		row := m.Row(i)
		if row[0].Value() == 30 && row[1].Value() == 30 {
			found = true
			assert.Equal(t, uint64(0), row[2].Value())
		}
	}
	assert.True(t, found, "result limb should be range checked as (a, a)")
}

func TestALURejectsMismatchedXorTable(t *testing.T) {
	assert.Panics(t, func() {
		NewBaseALUCore(DefaultLimbConfig(), lookup.NewXorLookup(4))
	})
}
