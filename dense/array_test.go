package dense

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/visionbuf/visionbuf/buffer"
	"github.com/visionbuf/visionbuf/errs"
)

func TestNew_ShapeMatches(t *testing.T) {
	buf := buffer.FromUint8(make([]uint8, 24))

	arr, err := New(buf, []int{2, 4, 3})
	require.NoError(t, err)
	require.Equal(t, 3, arr.Rank())
	require.Equal(t, 4, arr.Dim(1))
	require.Equal(t, buf.AsPtr(), arr.AsPtr())
}

func TestNew_ShapeMismatch(t *testing.T) {
	buf := buffer.FromUint8(make([]uint8, 24))

	_, err := New(buf, []int{2, 4})
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestNew_NegativeDimension(t *testing.T) {
	buf := buffer.FromUint8(make([]uint8, 24))

	_, err := New(buf, []int{-2, -12})
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestNew_EmptyBuffer(t *testing.T) {
	buf := buffer.FromUint8(nil)

	arr, err := New(buf, []int{0, 4, 3})
	require.NoError(t, err)
	require.Equal(t, 0, arr.Dim(0))
}
