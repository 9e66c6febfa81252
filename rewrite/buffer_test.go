package rewrite

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferPatchTranslatesOffsets(t *testing.T) {
	src := "0123456789"
	b := newBuffer(src, 2, 9) // "2345678"

	require.NoError(t, b.patch(3, 5, "abcd")) // "34" -> "abcd"
	assert.Equal(t, "2abcd5678", b.String())

	require.NoError(t, b.patch(7, 8, "")) // "7" -> ""
	assert.Equal(t, "2abcd568", b.String())

	got, err := b.slice(2, 9)
	require.NoError(t, err)
	assert.Equal(t, "2abcd568", got)

	got, err = b.slice(5, 7)
	require.NoError(t, err)
	assert.Equal(t, "56", got)

	got, err = b.slice(3, 5)
	require.NoError(t, err)
	assert.Equal(t, "abcd", got, "a span equal to a replacement yields the new text")
}

func TestBufferPatchOrderIndependent(t *testing.T) {
	src := "aaaa bbbb cccc"
	left := newBuffer(src, 0, len(src))
	require.NoError(t, left.patch(0, 4, "A"))
	require.NoError(t, left.patch(10, 14, "C"))

	right := newBuffer(src, 0, len(src))
	require.NoError(t, right.patch(10, 14, "C"))
	require.NoError(t, right.patch(0, 4, "A"))

	assert.Equal(t, "A bbbb C", left.String())
	assert.Equal(t, left.String(), right.String())
}

func TestBufferConsistencyErrors(t *testing.T) {
	src := "0123456789"
	b := newBuffer(src, 0, len(src))
	require.NoError(t, b.patch(2, 6, "x"))

	var cerr *ConsistencyError

	_, err := b.offset(4)
	require.Error(t, err)
	assert.True(t, errors.As(err, &cerr), "offset inside a replacement")

	err = b.patch(5, 8, "y")
	assert.True(t, errors.As(err, &cerr), "partial overlap")

	err = b.patch(1, 7, "y")
	assert.True(t, errors.As(err, &cerr), "containing an earlier replacement")

	err = b.patch(8, 12, "y")
	assert.True(t, errors.As(err, &cerr), "outside the buffer")

	_, err = b.offset(-1)
	assert.True(t, errors.As(err, &cerr))
}
