package chips

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/arch"
)

// JalCore is the jump-and-link core: it redirects the program counter by the
// immediate in operand B and hands the return address (pc + DefaultPCStep)
// back to the adapter as the single write.
type JalCore struct{}

func NewJalCore() *JalCore {
	return &JalCore{}
}

// JalRecord is one executed jump: the immediate offset.
type JalRecord struct {
	Imm field.Element
}

func (c *JalCore) Shape() arch.AccessShape {
	return arch.AccessShape{NumWrites: 1, WriteSize: 1}
}

// Columns: immediate and validity flag.
func (c *JalCore) Width() int {
	return 2
}

func (c *JalCore) OpcodeName(op arch.Opcode) string {
	return op.String()
}

func (c *JalCore) ExecuteInstruction(inst *arch.Instruction, fromPC uint32, reads [][]field.Element) (arch.AdapterRuntimeContext, JalRecord, error) {
	if inst.Opcode != arch.Jal {
		return arch.AdapterRuntimeContext{}, JalRecord{}, fmt.Errorf("chips: opcode %s is not a jump opcode", inst.Opcode)
	}

	toPC := fromPC + uint32(inst.B.Value())
	output := arch.AdapterRuntimeContext{
		ToPC:   &toPC,
		Writes: [][]field.Element{{field.New(uint64(fromPC + arch.DefaultPCStep))}},
	}
	return output, JalRecord{Imm: inst.B}, nil
}

func (c *JalCore) GenerateTraceRow(row []field.Element, record JalRecord) {
	row[0] = record.Imm
	row[1] = field.One
}
