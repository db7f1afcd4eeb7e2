// Package adapters provides the adapter halves of the instruction chips: the
// register/pointer/memory plumbing shared by whole classes of opcodes. Cores
// (package chips) supply the opcode-specific arithmetic.
package adapters

import (
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/arch"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/memory"
)

// RegisterRead is the record of one register fetch: the log handle, the
// register pointer, its limbs, and the composed machine word.
type RegisterRead struct {
	Record memory.RecordID
	Ptr    uint32
	Data   [arch.RegisterNumLimbs]field.Element
	Value  uint32
}

// HeapAccess is the record of one batched heap read or write.
type HeapAccess struct {
	Record memory.RecordID
	Ptr    uint32
	Data   []field.Element
}

// readRegister reads one register (RegisterNumLimbs cells from the register
// address space) and composes the little-endian limbs into a machine word.
// Limb range is guaranteed by the write path; composition here assumes it.
func readRegister(mem *memory.Memory, ptr uint32) RegisterRead {
	record, data := mem.Read(arch.RegisterAddressSpace, ptr, arch.RegisterNumLimbs)

	var limbs [arch.RegisterNumLimbs]field.Element
	copy(limbs[:], data)

	value := uint32(0)
	for i := arch.RegisterNumLimbs - 1; i >= 0; i-- {
		value = value<<arch.CellBits | uint32(data[i].Value())
	}

	return RegisterRead{
		Record: record,
		Ptr:    ptr,
		Data:   limbs,
		Value:  value,
	}
}

// recordColumn encodes a log handle as a trace cell.
func recordColumn(id memory.RecordID) field.Element {
	return field.New(uint64(id))
}
