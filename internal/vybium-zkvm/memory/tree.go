package memory

import (
	"sort"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"
)

// Chunk is the number of memory cells hashed into one Merkle leaf.
const Chunk = 8

// ChunkBits is log2(Chunk), the tree levels a chunk spans in pointer space.
const ChunkBits = 3

// MemoryNode is one node of the binary Merkle tree over a finalized memory
// image. Nodes are immutable once built; identical subtrees (in particular the
// all-zero regions of sparse memory) are shared by pointer rather than
// rebuilt, so commitment cost scales with populated chunks, not address space.
type MemoryNode interface {
	// Hash returns the node's summary digest.
	Hash() hash.Digest
}

// Leaf holds one chunk of raw cell values; its digest is the chunk hash.
type Leaf struct {
	Values [Chunk]field.Element

	digest hash.Digest
}

// NonLeaf stores the compression of its two children. Children may be shared
// with other parents.
type NonLeaf struct {
	Left  MemoryNode
	Right MemoryNode

	digest hash.Digest
}

func (l *Leaf) Hash() hash.Digest    { return l.digest }
func (n *NonLeaf) Hash() hash.Digest { return n.digest }

// NewLeaf builds a leaf and hashes its values.
func NewLeaf(values [Chunk]field.Element, hasher Hasher) *Leaf {
	return &Leaf{
		Values: values,
		digest: hasher.HashChunk(values[:]),
	}
}

// NewNonLeaf builds a parent over two (possibly aliased) children.
func NewNonLeaf(left, right MemoryNode, hasher Hasher) *NonLeaf {
	return &NonLeaf{
		Left:   left,
		Right:  right,
		digest: hasher.Compress(left.Hash(), right.Hash()),
	}
}

// ConstructUniform returns a tree of the given height in which every leaf
// holds leafValue. Each level compresses one shared child with itself, so the
// whole tree is a single allocation per level.
func ConstructUniform(height int, leafValue [Chunk]field.Element, hasher Hasher) MemoryNode {
	if height == 0 {
		return NewLeaf(leafValue, hasher)
	}
	child := ConstructUniform(height-1, leafValue, hasher)
	return NewNonLeaf(child, child, hasher)
}

// TreeFromImage merkleizes a finalized memory image under the given geometry.
// The image is partitioned into Chunk-sized chunks keyed by their global leaf
// index; index ranges with no populated chunks short-circuit into shared
// uniform zero subtrees.
func TreeFromImage(dims Dimensions, image Image, hasher Hasher) MemoryNode {
	chunks := make(map[uint64][Chunk]field.Element)
	for addr, value := range image {
		index := dims.LabelToIndex(addr.AddressSpace, addr.Pointer/Chunk)
		chunk, ok := chunks[index]
		if !ok {
			chunk = zeroChunk()
		}
		chunk[addr.Pointer%Chunk] = value
		chunks[index] = chunk
	}

	indices := make([]uint64, 0, len(chunks))
	for index := range chunks {
		indices = append(indices, index)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	return fromChunks(chunks, indices, dims.OverallHeight(), 0, hasher)
}

// fromChunks builds the subtree of the given height covering leaf indices
// [from, from+2^height). indices is the sorted list of populated leaf indices
// restricted to that range.
func fromChunks(
	chunks map[uint64][Chunk]field.Element,
	indices []uint64,
	height int,
	from uint64,
	hasher Hasher,
) MemoryNode {
	if len(indices) == 0 {
		return ConstructUniform(height, zeroChunk(), hasher)
	}
	if height == 0 {
		return NewLeaf(chunks[from], hasher)
	}

	midpoint := from + 1<<uint(height-1)
	split := sort.Search(len(indices), func(i int) bool { return indices[i] >= midpoint })
	left := fromChunks(chunks, indices[:split], height-1, from, hasher)
	right := fromChunks(chunks, indices[split:], height-1, midpoint, hasher)
	return NewNonLeaf(left, right, hasher)
}

func zeroChunk() [Chunk]field.Element {
	var chunk [Chunk]field.Element
	for i := range chunk {
		chunk[i] = field.Zero
	}
	return chunk
}
