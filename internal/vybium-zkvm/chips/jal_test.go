package chips

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/arch"
)

func TestJalRedirectsAndLinksReturnAddress(t *testing.T) {
	core := NewJalCore()
	inst := &arch.Instruction{Opcode: arch.Jal, A: field.New(16), B: field.New(100)}

	output, record, err := core.ExecuteInstruction(inst, 40, nil)
	require.NoError(t, err)

	require.NotNil(t, output.ToPC)
	assert.Equal(t, uint32(140), *output.ToPC)
	require.Len(t, output.Writes, 1)
	assert.Equal(t, uint64(40+arch.DefaultPCStep), output.Writes[0][0].Value())
	assert.True(t, record.Imm.Equal(field.New(100)))
}

func TestJalRejectsForeignOpcode(t *testing.T) {
	core := NewJalCore()
	_, _, err := core.ExecuteInstruction(&arch.Instruction{Opcode: arch.Add}, 0, nil)
	assert.Error(t, err)
}

func TestJalTraceRow(t *testing.T) {
	core := NewJalCore()
	row := make([]field.Element, core.Width())
	core.GenerateTraceRow(row, JalRecord{Imm: field.New(100)})

	assert.True(t, row[0].Equal(field.New(100)))
	assert.True(t, row[1].Equal(field.One))
}
