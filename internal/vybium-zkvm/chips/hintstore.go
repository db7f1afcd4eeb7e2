package chips

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/arch"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/lookup"
)

// HintStoreCore pops one register-width word from the shared hint stream and
// hands it to the adapter as the write data. The popped limbs are range
// checked pairwise through the xor table since hints are prover-supplied and
// otherwise unconstrained. Stream underflow is a runtime execution error, not
// a contract violation: it carries the pc so callers can report "program ran
// out of input".
type HintStoreCore struct {
	streams *arch.Streams
	xor     *lookup.XorLookup
}

func NewHintStoreCore(streams *arch.Streams, xor *lookup.XorLookup) *HintStoreCore {
	if xor.Bits() != arch.CellBits {
		panic(fmt.Sprintf("chips: xor table is %d-bit, hint cells are %d-bit", xor.Bits(), arch.CellBits))
	}
	return &HintStoreCore{streams: streams, xor: xor}
}

// HintStoreRecord is one executed hint store: the popped word.
type HintStoreRecord struct {
	Data [arch.RegisterNumLimbs]field.Element
}

func (c *HintStoreCore) Shape() arch.AccessShape {
	return arch.AccessShape{NumWrites: 1, WriteSize: arch.RegisterNumLimbs}
}

// Columns: validity flag plus the word limbs.
func (c *HintStoreCore) Width() int {
	return 1 + arch.RegisterNumLimbs
}

func (c *HintStoreCore) OpcodeName(op arch.Opcode) string {
	return op.String()
}

func (c *HintStoreCore) ExecuteInstruction(inst *arch.Instruction, fromPC uint32, reads [][]field.Element) (arch.AdapterRuntimeContext, HintStoreRecord, error) {
	data, ok := c.streams.PopHint(arch.RegisterNumLimbs)
	if !ok {
		return arch.AdapterRuntimeContext{}, HintStoreRecord{}, arch.NewHintOutOfBounds(fromPC)
	}

	for i := 0; i < arch.RegisterNumLimbs/2; i++ {
		c.xor.Request(uint32(data[2*i].Value()), uint32(data[2*i+1].Value()))
	}

	var record HintStoreRecord
	copy(record.Data[:], data)
	output := arch.WithoutPC([][]field.Element{data})
	return output, record, nil
}

func (c *HintStoreCore) GenerateTraceRow(row []field.Element, record HintStoreRecord) {
	row[0] = field.One
	copy(row[1:], record.Data[:])
}
