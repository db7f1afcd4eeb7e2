package arch

import (
	"sync"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// Streams holds the external input sources of one execution: the public input
// stream and the hint stream, both consumed strictly FIFO. The hint stream is
// shared process-wide state reachable from inside chips, so access is
// mutex-guarded even though dispatch itself is single-threaded.
type Streams struct {
	mu    sync.Mutex
	input []field.Element
	hint  []field.Element
}

// NewStreams supplies both streams up front, before execution starts.
func NewStreams(input, hint []field.Element) *Streams {
	s := &Streams{
		input: make([]field.Element, len(input)),
		hint:  make([]field.Element, len(hint)),
	}
	copy(s.input, input)
	copy(s.hint, hint)
	return s
}

// PopHint removes and returns the next n hint elements, or false if fewer than
// n remain. Underflow does not consume anything.
func (s *Streams) PopHint(n int) ([]field.Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.hint) < n {
		return nil, false
	}
	out := s.hint[:n:n]
	s.hint = s.hint[n:]
	return out, true
}

// PopInput removes and returns the next public input element.
func (s *Streams) PopInput() (field.Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.input) == 0 {
		return field.Zero, false
	}
	out := s.input[0]
	s.input = s.input[1:]
	return out, true
}

// HintLen reports the number of hint elements remaining.
func (s *Streams) HintLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hint)
}
