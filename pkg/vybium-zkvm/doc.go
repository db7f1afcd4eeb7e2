// Package vybiumzkvm provides the public API of the Vybium zkVM: a modular
// virtual machine that executes programs while generating the algebraic
// execution traces consumed by a STARK proving engine.
//
// # Features
//
// - Chip-based instruction execution with an adapter/core split
// - Access-logged memory for offline memory-consistency checking
// - Segmented execution with checkpoint/resume at a configurable bound
// - Merkle commitment of the final memory image
// - Base ALU, multiplication, jump, and hint-store opcode families
// - Lookup-argument chips (xor table, range tuple checker)
//
// # Quick Start
//
// Executing a program and committing its final memory:
//
//	vm, err := vybiumzkvm.NewVM(vybiumzkvm.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	program := vybiumzkvm.NewProgram()
//	program.AddInstruction(vybiumzkvm.Instruction{
//		Opcode: vybiumzkvm.Add,
//		A:      vybiumzkvm.Operand(0),
//		B:      vybiumzkvm.Operand(4),
//		C:      vybiumzkvm.Operand(8),
//	})
//	program.AddInstruction(vybiumzkvm.Instruction{Opcode: vybiumzkvm.Terminate})
//
//	result, err := vm.Execute(program, nil, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	root := vm.CommitMemory(result)
//	fmt.Printf("segments=%d root=%v\n", len(result.Segments), root)
//
// # Architecture
//
// Vybium zkVM uses a hybrid public/private architecture:
//
// - pkg/vybium-zkvm/: Public API (this package)
// - internal/vybium-zkvm/: Private implementation (not importable)
//
// The public API provides stable interfaces for:
// - Program construction and execution
// - Configuration loading
// - Trace and commitment access
//
// Implementation details in internal/ can be refactored without breaking the
// public API.
//
// # Proving
//
// The VM produces traces and commitments; proving and verification are
// performed by an external STARK engine that consumes the per-chip trace
// matrices in ExecutionResult.
//
// # License
//
// See LICENSE file in the repository root.
package vybiumzkvm
