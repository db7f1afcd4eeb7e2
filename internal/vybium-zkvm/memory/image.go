package memory

import "github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

// Image is a finalized memory snapshot: the last value written per address,
// with absent addresses implicitly zero. It is produced once per segment and
// consumed by Merkle commitment.
type Image map[Address]field.Element

// Get returns the value at addr, or zero if the address was never written.
func (img Image) Get(addr Address) field.Element {
	if v, ok := img[addr]; ok {
		return v
	}
	return field.Zero
}
