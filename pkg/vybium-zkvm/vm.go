package vybiumzkvm

import (
	"log/slog"

	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/executor"
)

// VM is the public interface for the Vybium zkVM.
type VM interface {
	// Execute runs a program to termination and returns the per-segment
	// traces and the final memory image.
	Execute(program *Program, input, hints []uint64) (*ExecutionResult, error)

	// ExecuteFromImage runs a program starting from a prior memory image.
	ExecuteFromImage(program *Program, input, hints []uint64, image MemoryImage) (*ExecutionResult, error)

	// CommitMemory merkleizes a result's final memory image under the
	// configured geometry and returns the root digest.
	CommitMemory(result *ExecutionResult) Digest

	// SetLogger replaces the VM's structured logger.
	SetLogger(logger *slog.Logger)
}

// vmImpl is the internal implementation of VM.
type vmImpl struct {
	config Config
	exec   *executor.VmExecutor
}

// NewVM creates a new Vybium zkVM with the given configuration.
func NewVM(config Config) (VM, error) {
	exec, err := executor.NewVmExecutor(config)
	if err != nil {
		return nil, err
	}
	return &vmImpl{config: config, exec: exec}, nil
}

func (v *vmImpl) Execute(program *Program, input, hints []uint64) (*ExecutionResult, error) {
	return v.exec.Execute(program, input, hints)
}

func (v *vmImpl) ExecuteFromImage(program *Program, input, hints []uint64, image MemoryImage) (*ExecutionResult, error) {
	return v.exec.ExecuteFromImage(program, input, hints, image)
}

func (v *vmImpl) CommitMemory(result *ExecutionResult) Digest {
	return result.CommitMemory(v.config.Dimensions())
}

func (v *vmImpl) SetLogger(logger *slog.Logger) {
	v.exec.SetLogger(logger)
}

// Run is a convenience helper: execute program under config and return the
// result together with the memory commitment root.
func Run(config Config, program *Program, input, hints []uint64) (*ExecutionResult, Digest, error) {
	vm, err := NewVM(config)
	if err != nil {
		return nil, Digest{}, err
	}
	result, err := vm.Execute(program, input, hints)
	if err != nil {
		return nil, Digest{}, err
	}
	return result, vm.CommitMemory(result), nil
}
