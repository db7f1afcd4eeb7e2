package memory

// Dimensions fixes the geometry of the memory Merkle tree. It is validated by
// configuration outside this package; addresses beyond the bit budgets are an
// upstream contract violation and are not re-checked here.
type Dimensions struct {
	// AddressSpaceHeight is the number of tree levels spent addressing the
	// address spaces; 2^AddressSpaceHeight spaces fit in the tree.
	AddressSpaceHeight int

	// AddressHeight is the number of tree levels spent addressing chunks
	// within one address space; each space holds 2^AddressHeight chunks of
	// Chunk cells.
	AddressHeight int

	// AddressSpaceOffset is the first address space represented in the tree.
	// Address space 0 holds immediates and is never merkleized, so this is
	// normally 1.
	AddressSpaceOffset uint32
}

// OverallHeight is the height of the full tree over all address spaces.
func (d Dimensions) OverallHeight() int {
	return d.AddressSpaceHeight + d.AddressHeight
}

// LabelToIndex maps a chunk label (address space, pointer/Chunk) to its global
// leaf index: address spaces are the high bits, chunk labels the low bits.
func (d Dimensions) LabelToIndex(addressSpace, chunkLabel uint32) uint64 {
	return uint64(addressSpace-d.AddressSpaceOffset)<<uint(d.AddressHeight) | uint64(chunkLabel)
}
