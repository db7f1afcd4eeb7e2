package arch

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/memory"
)

// ChipWrapper composes an adapter and a core into one InstructionExecutor.
// The wrapper owns the trace accumulator; records are created and destroyed
// within a single Execute call.
type ChipWrapper[RR, WR, CR any] struct {
	adapter AdapterChip[RR, WR]
	core    CoreChip[CR]
	rows    []field.Element
}

// NewChipWrapper composes adapter and core, verifying their access shapes
// agree.
func NewChipWrapper[RR, WR, CR any](adapter AdapterChip[RR, WR], core CoreChip[CR]) (*ChipWrapper[RR, WR, CR], error) {
	if adapter.Shape() != core.Shape() {
		return nil, fmt.Errorf("chip shape mismatch: adapter %+v, core %+v", adapter.Shape(), core.Shape())
	}
	return &ChipWrapper[RR, WR, CR]{adapter: adapter, core: core}, nil
}

// MustChipWrapper is NewChipWrapper for statically known-good compositions.
func MustChipWrapper[RR, WR, CR any](adapter AdapterChip[RR, WR], core CoreChip[CR]) *ChipWrapper[RR, WR, CR] {
	w, err := NewChipWrapper(adapter, core)
	if err != nil {
		panic(err)
	}
	return w
}

// Execute runs one full dispatch cycle:
// preprocess (reads) -> core execute -> postprocess (writes, state advance),
// then emits one trace row from the records.
func (w *ChipWrapper[RR, WR, CR]) Execute(mem *memory.Memory, inst *Instruction, from ExecutionState) (ExecutionState, error) {
	reads, readRecord, err := w.adapter.Preprocess(mem, inst)
	if err != nil {
		return from, err
	}

	output, coreRecord, err := w.core.ExecuteInstruction(inst, from.PC, reads)
	if err != nil {
		return from, err
	}

	next, writeRecord, err := w.adapter.Postprocess(mem, inst, from, output, readRecord)
	if err != nil {
		return from, err
	}

	row := make([]field.Element, w.Width())
	for i := range row {
		row[i] = field.Zero
	}
	w.adapter.GenerateTraceRow(row[:w.adapter.Width()], readRecord, writeRecord)
	w.core.GenerateTraceRow(row[w.adapter.Width():], coreRecord)
	w.rows = append(w.rows, row...)

	return next, nil
}

// OpcodeName resolves an opcode via the core.
func (w *ChipWrapper[RR, WR, CR]) OpcodeName(op Opcode) string {
	return w.core.OpcodeName(op)
}

// Width is the combined adapter plus core row width.
func (w *ChipWrapper[RR, WR, CR]) Width() int {
	return w.adapter.Width() + w.core.Width()
}

// RowCount reports the number of rows accumulated so far.
func (w *ChipWrapper[RR, WR, CR]) RowCount() int {
	return len(w.rows) / w.Width()
}

// FinalizeTrace pads the accumulated rows to a power-of-two height with blank
// rows and resets the accumulator for the next segment.
func (w *ChipWrapper[RR, WR, CR]) FinalizeTrace() *TraceMatrix {
	m := NewTraceMatrix(w.Width(), w.rows)
	w.rows = nil
	return m
}
