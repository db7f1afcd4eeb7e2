package executor

import (
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/adapters"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/arch"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/chips"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/lookup"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/memory"
)

// ChipTrace is one chip's finalized trace for a segment, name included for the
// proving engine's keygen bookkeeping.
type ChipTrace struct {
	Name  string
	Trace *arch.TraceMatrix
}

// Segment executes a bounded slice of the program: at most maxLen instructions
// over one chip set. Reaching the bound is a control event, not a failure; the
// caller checkpoints memory and opens the next segment.
type Segment struct {
	chips      map[arch.Opcode]arch.InstructionExecutor
	executors  []namedExecutor
	xor        *lookup.XorLookup
	rangeTuple *lookup.RangeTupleChecker
	maxLen     int

	// InstretEnd is the number of instructions executed in this segment.
	InstretEnd int
}

type namedExecutor struct {
	name string
	exec arch.InstructionExecutor
}

// segment run outcomes
type runOutcome int

const (
	outcomeTerminated runOutcome = iota
	outcomeSegmentFull
)

// NewSegment builds a fresh chip set for one segment. Chips accumulate trace
// rows privately; lookups are shared across the segment's chips only, since
// every segment is proved independently.
func NewSegment(config arch.VmConfig, streams *arch.Streams) *Segment {
	wordShape := chips.DefaultLimbConfig()

	xor := lookup.NewXorLookup(arch.CellBits)
	rangeTuple := lookup.NewRangeTupleChecker([]uint32{
		1 << uint(wordShape.LimbBits),
		chips.CarryBound(wordShape),
	})

	s := &Segment{
		chips:      make(map[arch.Opcode]arch.InstructionExecutor),
		xor:        xor,
		rangeTuple: rangeTuple,
		maxLen:     config.MaxSegmentLen,
	}

	pointerBits := config.Memory.PointerMaxBits
	aluChip := arch.MustChipWrapper(
		adapters.NewVecHeapAdapter(wordShape.NumLimbs, wordShape.NumLimbs, pointerBits),
		chips.NewBaseALUCore(wordShape, xor),
	)
	mulChip := arch.MustChipWrapper(
		adapters.NewVecHeapAdapter(wordShape.NumLimbs, wordShape.NumLimbs, pointerBits),
		chips.NewMultiplicationCore(wordShape, rangeTuple),
	)
	jalChip := arch.MustChipWrapper(
		adapters.NewNativeAdapter(),
		chips.NewJalCore(),
	)
	hintChip := arch.MustChipWrapper(
		adapters.NewHintStoreAdapter(),
		chips.NewHintStoreCore(streams, xor),
	)

	s.register("base_alu", aluChip, arch.Add, arch.Sub, arch.Xor, arch.Or, arch.And)
	s.register("multiplication", mulChip, arch.Mul)
	s.register("jal", jalChip, arch.Jal)
	s.register("hint_store", hintChip, arch.HintStoreW)

	if len(config.EnabledFamilies) > 0 {
		s.restrict(config.EnabledFamilies)
	}
	return s
}

func (s *Segment) register(name string, exec arch.InstructionExecutor, ops ...arch.Opcode) {
	s.executors = append(s.executors, namedExecutor{name: name, exec: exec})
	for _, op := range ops {
		s.chips[op] = exec
	}
}

func (s *Segment) restrict(families []string) {
	enabled := make(map[string]bool, len(families))
	for _, f := range families {
		enabled[f] = true
	}
	kept := s.executors[:0]
	for _, ne := range s.executors {
		if enabled[ne.name] {
			kept = append(kept, ne)
			continue
		}
		for op, exec := range s.chips {
			if exec == ne.exec {
				delete(s.chips, op)
			}
		}
	}
	s.executors = kept
}

// Run dispatches instructions starting at state until a terminate opcode, the
// segment bound, or an execution error. It returns the state to resume from.
func (s *Segment) Run(mem *memory.Memory, program *arch.Program, state arch.ExecutionState) (arch.ExecutionState, runOutcome, error) {
	for {
		if s.InstretEnd >= s.maxLen {
			return state, outcomeSegmentFull, nil
		}

		inst, ok := program.InstructionAt(state.PC)
		if !ok {
			return state, outcomeTerminated, arch.NewPCOutOfBounds(state.PC)
		}
		if inst.Opcode == arch.Terminate {
			s.InstretEnd++
			return state, outcomeTerminated, nil
		}

		chip, ok := s.chips[inst.Opcode]
		if !ok {
			return state, outcomeTerminated, arch.NewDisabledOpcode(state.PC, inst.Opcode)
		}

		next, err := chip.Execute(mem, inst, state)
		if err != nil {
			return state, outcomeTerminated, err
		}
		state = next
		s.InstretEnd++
	}
}

// FinalizeTraces surrenders every chip's padded trace plus the lookup tables.
func (s *Segment) FinalizeTraces() []ChipTrace {
	traces := make([]ChipTrace, 0, len(s.executors)+2)
	for _, ne := range s.executors {
		traces = append(traces, ChipTrace{Name: ne.name, Trace: ne.exec.FinalizeTrace()})
	}
	traces = append(traces,
		ChipTrace{Name: "xor_lookup", Trace: s.xor.FinalizeTrace()},
		ChipTrace{Name: "range_tuple", Trace: s.rangeTuple.FinalizeTrace()},
	)
	return traces
}
