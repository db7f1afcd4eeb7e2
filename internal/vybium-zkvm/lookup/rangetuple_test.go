package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

func TestRangeTupleMultiplicityPlacement(t *testing.T) {
	r := NewRangeTupleChecker([]uint32{4, 8})
	require.Equal(t, []uint32{4, 8}, r.Sizes())

	r.Request(2, 5)
	r.Request(2, 5)
	r.Request(0, 0)
	r.Request(3, 7)

	m := r.FinalizeTrace()
	require.Equal(t, 1, m.Width)
	assert.Equal(t, 32, m.Height)

	// index = v0*8 + v1
	assert.True(t, m.Values[2*8+5].Equal(field.New(2)))
	assert.True(t, m.Values[0].Equal(field.New(1)))
	assert.True(t, m.Values[3*8+7].Equal(field.New(1)))
	assert.True(t, m.Values[1].Equal(field.Zero))
}

func TestRangeTupleRejectsBadRequests(t *testing.T) {
	r := NewRangeTupleChecker([]uint32{4, 8})

	assert.Panics(t, func() { r.Request(1) })
	assert.Panics(t, func() { r.Request(1, 2, 3) })
	assert.Panics(t, func() { r.Request(4, 0) })
	assert.Panics(t, func() { r.Request(0, 8) })
}

func TestRangeTupleFinalizeResets(t *testing.T) {
	r := NewRangeTupleChecker([]uint32{2, 2})
	r.Request(1, 1)
	r.FinalizeTrace()

	m := r.FinalizeTrace()
	for _, v := range m.Values {
		assert.True(t, v.Equal(field.Zero))
	}
}
