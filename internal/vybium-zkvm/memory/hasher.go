package memory

import (
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"
)

// Hasher turns leaf chunks into digests and compresses two child digests into
// a parent digest. Implementations must be deterministic and safe for
// concurrent use; tree construction may hash independent subtrees in parallel.
type Hasher interface {
	HashChunk(values []field.Element) hash.Digest
	Compress(left, right hash.Digest) hash.Digest
}

// PoseidonHasher is the production hasher: Poseidon over the base field, with
// two-digest compression via the fixed-width permutation.
type PoseidonHasher struct{}

func (PoseidonHasher) HashChunk(values []field.Element) hash.Digest {
	return hash.HashVarlen(values)
}

func (PoseidonHasher) Compress(left, right hash.Digest) hash.Digest {
	var input [2 * hash.DigestLen]field.Element
	copy(input[:hash.DigestLen], left[:])
	copy(input[hash.DigestLen:], right[:])
	return hash.Hash10(input)
}
