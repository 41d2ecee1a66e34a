package otp

import (
	"bytes"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNumeric(t *testing.T) {
	t.Parallel()

	for _, d := range []int{0, 3, 11} {
		_, err := NewNumeric(d)
		assert.ErrorIs(t, err, ErrInvalidDigits)
	}
}

func TestNumeric_GenerateRange(t *testing.T) {
	t.Parallel()

	gen, err := NewNumeric(5)
	require.NoError(t, err)

	for range 2000 {
		code, err := gen.Generate()
		require.NoError(t, err)
		require.Len(t, code, 5)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 10000)
		assert.LessOrEqual(t, n, 99999)
	}
}

func TestNumeric_GenerateBounds(t *testing.T) {
	t.Parallel()

	gen, err := NewNumeric(5)
	require.NoError(t, err)

	// all-zero entropy maps to the lowest code
	gen.reader = bytes.NewReader(make([]byte, 64))
	code, err := gen.Generate()
	require.NoError(t, err)
	assert.Equal(t, "10000", code)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestNumeric_GenerateReaderError(t *testing.T) {
	t.Parallel()

	gen, err := NewNumeric(5)
	require.NoError(t, err)
	gen.reader = failingReader{}

	_, err = gen.Generate()
	assert.Error(t, err)
}
