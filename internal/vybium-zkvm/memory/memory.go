// Package memory provides the provable memory model for the Vybium zkVM.
//
// Memory is a sparse mapping from (address space, pointer) to field elements
// with an append-only access log. Every read and write is logged with the
// logical timestamp it happened at so that an offline memory checker can later
// verify, in batch, that every read returned the most recent write to the same
// address. Absent addresses read as zero.
package memory

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// InitialTimestamp is the reserved timestamp value that precedes all accesses.
// A fresh Memory starts at InitialTimestamp+1.
const InitialTimestamp uint32 = 0

// Address identifies one memory cell: an address space plus an offset in it.
//
// Address space 0 is reserved for immediates: reads return the pointer value
// itself and the space has no backing storage.
type Address struct {
	AddressSpace uint32
	Pointer      uint32
}

// RecordID is a back-reference into the access log, returned by every read and
// write. It is an indexing handle used to look up auxiliary proof data for the
// access later; it carries no ownership.
type RecordID int

// LogEntry is one event in the access log.
type LogEntry interface {
	logEntry()
}

// ReadEntry records a batched read of Len cells.
type ReadEntry struct {
	AddressSpace uint32
	Pointer      uint32
	Len          int
}

// WriteEntry records a batched write together with the written data.
type WriteEntry struct {
	AddressSpace uint32
	Pointer      uint32
	Data         []field.Element
}

// IncrementTimestampEntry records an explicit timestamp jump with no access.
type IncrementTimestampEntry struct {
	Amount uint32
}

func (ReadEntry) logEntry()               {}
func (WriteEntry) logEntry()              {}
func (IncrementTimestampEntry) logEntry() {}

// Memory owns the sparse cell map, the access log, and the logical timestamp.
// It is not safe for concurrent use; execution is strictly sequential so the
// log order equals timestamp order.
type Memory struct {
	data      Image
	log       []LogEntry
	timestamp uint32
}

// NewMemory returns an empty Memory with the timestamp at InitialTimestamp+1.
func NewMemory() *Memory {
	return &Memory{
		data:      make(Image),
		timestamp: InitialTimestamp + 1,
	}
}

// MemoryFromImage resumes from a finalized image, e.g. at a segment boundary.
// The log starts fresh and the timestamp is reset; the image is used directly,
// not copied.
func MemoryFromImage(image Image) *Memory {
	if image == nil {
		image = make(Image)
	}
	return &Memory{
		data:      image,
		timestamp: InitialTimestamp + 1,
	}
}

func (m *Memory) lastRecordID() RecordID {
	return RecordID(len(m.log) - 1)
}

// Write stores len(values) consecutive cells starting at pointer and returns
// the previous contents (zero-filled where absent) together with the log
// handle. The length must be a power of two. Advances the timestamp by 1.
func (m *Memory) Write(addressSpace, pointer uint32, values []field.Element) (RecordID, []field.Element) {
	if !isPowerOfTwo(len(values)) {
		panic(fmt.Sprintf("memory: write length %d is not a power of two", len(values)))
	}

	prev := make([]field.Element, len(values))
	for i, v := range values {
		addr := Address{addressSpace, pointer + uint32(i)}
		prev[i] = m.data.Get(addr)
		m.data[addr] = v
	}

	logged := make([]field.Element, len(values))
	copy(logged, values)
	m.log = append(m.log, WriteEntry{
		AddressSpace: addressSpace,
		Pointer:      pointer,
		Data:         logged,
	})
	m.timestamp++

	return m.lastRecordID(), prev
}

// Read returns n consecutive cells starting at pointer and the log handle for
// the access. n must be a power of two. Reads from address space 0 return the
// pointer value itself and must have n == 1; batching immediates is a contract
// violation. Advances the timestamp by 1.
func (m *Memory) Read(addressSpace, pointer uint32, n int) (RecordID, []field.Element) {
	if !isPowerOfTwo(n) {
		panic(fmt.Sprintf("memory: read length %d is not a power of two", n))
	}

	m.log = append(m.log, ReadEntry{
		AddressSpace: addressSpace,
		Pointer:      pointer,
		Len:          n,
	})

	var values []field.Element
	if addressSpace == 0 {
		if n != 1 {
			panic("memory: cannot batch read from address space 0")
		}
		values = []field.Element{field.New(uint64(pointer))}
	} else {
		values = m.rangeValues(addressSpace, pointer, n)
	}
	m.timestamp++

	return m.lastRecordID(), values
}

// IncrementTimestampBy advances the timestamp without a memory access. The
// jump is logged so the offline checker can reconcile timestamps.
func (m *Memory) IncrementTimestampBy(amount uint32) {
	m.timestamp += amount
	m.log = append(m.log, IncrementTimestampEntry{Amount: amount})
}

// Timestamp returns the current logical timestamp.
func (m *Memory) Timestamp() uint32 {
	return m.timestamp
}

// Get looks up a single cell without logging or advancing the timestamp. It is
// for inspection and state export only, never for provable accesses.
func (m *Memory) Get(addressSpace, pointer uint32) field.Element {
	return m.data.Get(Address{addressSpace, pointer})
}

// Log returns the access log in timestamp order.
func (m *Memory) Log() []LogEntry {
	return m.log
}

// Image snapshots the current cell map. The snapshot is independent of the
// Memory and is the input to Merkle commitment at a segment boundary.
func (m *Memory) Image() Image {
	img := make(Image, len(m.data))
	for addr, v := range m.data {
		img[addr] = v
	}
	return img
}

func (m *Memory) rangeValues(addressSpace, pointer uint32, n int) []field.Element {
	values := make([]field.Element, n)
	for i := range values {
		values[i] = m.data.Get(Address{addressSpace, pointer + uint32(i)})
	}
	return values
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
