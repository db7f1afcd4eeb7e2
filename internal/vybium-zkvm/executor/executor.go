package executor

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"
	"golang.org/x/crypto/blake2b"

	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/arch"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/memory"
)

// SegmentResult holds everything proved about one segment: its traces and the
// instruction count, which the caller can feed to the proving engine.
type SegmentResult struct {
	Traces  []ChipTrace
	Instret int
}

// ExecutionResult is the outcome of running a program to termination.
type ExecutionResult struct {
	Segments    []SegmentResult
	FinalMemory memory.Image
	FinalState  arch.ExecutionState
	ProgramID   [32]byte
}

// CommitMemory merkleizes the final memory image and returns the root digest.
func (r *ExecutionResult) CommitMemory(dims memory.Dimensions) hash.Digest {
	tree := memory.TreeFromImage(dims, r.FinalMemory, memory.PoseidonHasher{})
	return tree.Hash()
}

// VmExecutor runs programs segment by segment. Each segment gets a fresh chip
// set; memory state persists across the boundary through its image snapshot.
type VmExecutor struct {
	config arch.VmConfig
	logger *slog.Logger
}

func NewVmExecutor(config arch.VmConfig) (*VmExecutor, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("executor: %w", err)
	}
	return &VmExecutor{config: config, logger: slog.Default()}, nil
}

// SetLogger replaces the executor's logger. Nil restores the default.
func (e *VmExecutor) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	e.logger = logger
}

// Execute runs program to termination, starting from an empty memory image.
func (e *VmExecutor) Execute(program *arch.Program, input, hints []uint64) (*ExecutionResult, error) {
	return e.ExecuteFromImage(program, input, hints, nil)
}

// ExecuteFromImage runs program to termination starting from a prior memory
// image, as when resuming a checkpointed run.
func (e *VmExecutor) ExecuteFromImage(program *arch.Program, input, hints []uint64, image memory.Image) (*ExecutionResult, error) {
	if len(program.Instructions) == 0 {
		return nil, fmt.Errorf("executor: empty program")
	}

	streams := arch.NewStreams(toElements(input), toElements(hints))
	mem := memory.MemoryFromImage(image)
	state := arch.ExecutionState{PC: program.PCBase, Timestamp: mem.Timestamp()}

	result := &ExecutionResult{ProgramID: ProgramID(program)}
	e.logger.Info("execution started",
		"program_id", fmt.Sprintf("%x", result.ProgramID[:8]),
		"instructions", len(program.Instructions),
		"pc_base", program.PCBase)

	for {
		segment := NewSegment(e.config, streams)
		next, outcome, err := segment.Run(mem, program, state)
		if err != nil {
			return nil, err
		}

		result.Segments = append(result.Segments, SegmentResult{
			Traces:  segment.FinalizeTraces(),
			Instret: segment.InstretEnd,
		})
		e.logger.Info("segment finished",
			"segment", len(result.Segments)-1,
			"instret", segment.InstretEnd,
			"pc", next.PC,
			"timestamp", mem.Timestamp())

		if outcome == outcomeTerminated {
			result.FinalMemory = mem.Image()
			result.FinalState = arch.ExecutionState{PC: next.PC, Timestamp: mem.Timestamp()}
			return result, nil
		}

		// Segment full: restart memory from its image so the next segment
		// begins with an empty access log and the initial timestamp.
		mem = memory.MemoryFromImage(mem.Image())
		state = arch.ExecutionState{PC: next.PC, Timestamp: mem.Timestamp()}
	}
}

// ProgramID is a content hash of the instruction stream, used to tie logs and
// results back to the exact program that produced them.
func ProgramID(program *arch.Program) [32]byte {
	h, _ := blake2b.New256(nil)
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], program.PCBase)
	h.Write(buf[:4])
	for _, inst := range program.Instructions {
		binary.LittleEndian.PutUint64(buf[:], uint64(inst.Opcode))
		h.Write(buf[:])
		for _, operand := range [...]uint64{
			inst.A.Value(), inst.B.Value(), inst.C.Value(),
			inst.D.Value(), inst.E.Value(), inst.F.Value(),
		} {
			binary.LittleEndian.PutUint64(buf[:], operand)
			h.Write(buf[:])
		}
	}
	var id [32]byte
	copy(id[:], h.Sum(nil))
	return id
}

func toElements(values []uint64) []field.Element {
	out := make([]field.Element, len(values))
	for i, v := range values {
		out[i] = field.New(v)
	}
	return out
}
