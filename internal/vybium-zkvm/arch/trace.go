package arch

import "github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

// TraceMatrix is a row-major matrix of field elements handed to the external
// proving engine. Heights are padded to powers of two with blank (all-zero)
// rows before proving.
type TraceMatrix struct {
	Width  int
	Height int
	Values []field.Element
}

// NewTraceMatrix wraps accumulated row-major values, padding the height up to
// the next power of two with blank rows. A zero-height trace pads to a single
// blank row so every chip contributes a well-formed matrix.
func NewTraceMatrix(width int, values []field.Element) *TraceMatrix {
	height := len(values) / width
	padded := NextPowerOfTwo(height)

	out := make([]field.Element, padded*width)
	for i := range out {
		out[i] = field.Zero
	}
	copy(out, values)

	return &TraceMatrix{
		Width:  width,
		Height: padded,
		Values: out,
	}
}

// Row returns a view of row i.
func (m *TraceMatrix) Row(i int) []field.Element {
	return m.Values[i*m.Width : (i+1)*m.Width]
}

// NextPowerOfTwo returns the least power of two >= n, and 1 for n <= 1.
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
