package frame

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/visionbuf/visionbuf/buffer"
	"github.com/visionbuf/visionbuf/columnar"
	"github.com/visionbuf/visionbuf/dense"
	"github.com/visionbuf/visionbuf/errs"
	"github.com/visionbuf/visionbuf/format"
)

func TestNewRGB8(t *testing.T) {
	name := "camera.front"
	img, err := NewRGB8([]uint8{10, 20, 30, 40, 50, 60}, 2, 1, &name)
	require.NoError(t, err)

	require.Equal(t, uint32(2), img.Width())
	require.Equal(t, uint32(1), img.Height())
	require.Equal(t, format.PixelRGB8, img.Encoding())

	got, ok := img.Name()
	require.True(t, ok)
	require.Equal(t, "camera.front", got)
}

func TestNewRGB8_ShapeMismatch(t *testing.T) {
	_, err := NewRGB8([]uint8{0, 0, 0}, 2, 1, nil)
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestNewGray8_ShapeMismatch(t *testing.T) {
	// GRAY8 needs width*height bytes, not width*height*3.
	_, err := NewGray8(make([]uint8, 6), 2, 1, nil)
	require.ErrorIs(t, err, errs.ErrShapeMismatch)

	img, err := NewGray8([]uint8{7, 8}, 2, 1, nil)
	require.NoError(t, err)
	require.Equal(t, format.PixelGRAY8, img.Encoding())
}

func TestIntoBGR8_ReordersChannels(t *testing.T) {
	img, err := NewRGB8([]uint8{10, 20, 30, 40, 50, 60}, 2, 1, nil)
	require.NoError(t, err)

	bgr, err := img.IntoBGR8()
	require.NoError(t, err)
	require.Equal(t, format.PixelBGR8, bgr.Encoding())

	pixels, err := bgr.Data().Uint8s()
	require.NoError(t, err)
	require.Equal(t, []uint8{30, 20, 10, 60, 50, 40}, pixels)

	// Round trip restores the original channel order.
	rgb, err := bgr.IntoRGB8()
	require.NoError(t, err)

	pixels, err = rgb.Data().Uint8s()
	require.NoError(t, err)
	require.Equal(t, []uint8{10, 20, 30, 40, 50, 60}, pixels)
}

func TestIntoRGB8_Identity(t *testing.T) {
	img, err := NewRGB8(make([]uint8, 6), 2, 1, nil)
	require.NoError(t, err)

	ptr := img.AsPtr()
	same, err := img.IntoRGB8()
	require.NoError(t, err)
	require.Same(t, img, same)
	require.Equal(t, ptr, same.AsPtr())
}

func TestIntoBGR8_UniquelyOwnedInPlace(t *testing.T) {
	img, err := NewRGB8([]uint8{10, 20, 30, 40, 50, 60}, 2, 1, nil)
	require.NoError(t, err)

	ptr := img.AsPtr()
	bgr, err := img.IntoBGR8()
	require.NoError(t, err)
	require.Equal(t, ptr, bgr.AsPtr())
}

func TestIntoBGR8_SharedCopies(t *testing.T) {
	img, err := NewRGB8([]uint8{10, 20, 30, 40, 50, 60}, 2, 1, nil)
	require.NoError(t, err)

	shared := img.Data().Retain()
	defer shared.Release()

	bgr, err := img.IntoBGR8()
	require.NoError(t, err)
	require.NotEqual(t, shared.AsPtr(), bgr.AsPtr())

	// The retained view still sees the original channel order.
	original, err := shared.Uint8s()
	require.NoError(t, err)
	require.Equal(t, []uint8{10, 20, 30, 40, 50, 60}, original)

	converted, err := bgr.Data().Uint8s()
	require.NoError(t, err)
	require.Equal(t, []uint8{30, 20, 10, 60, 50, 40}, converted)
}

func TestIntoRGB8_Gray8Incompatible(t *testing.T) {
	img, err := NewGray8([]uint8{7, 8}, 2, 1, nil)
	require.NoError(t, err)

	_, err = img.IntoRGB8()
	require.ErrorIs(t, err, errs.ErrIncompatibleLayout)

	_, err = img.IntoBGR8()
	require.ErrorIs(t, err, errs.ErrIncompatibleLayout)
}

func TestImage_ColumnarRoundTrip(t *testing.T) {
	name := "camera.front"
	img, err := NewRGB8([]uint8{10, 20, 30, 40, 50, 60}, 2, 1, &name)
	require.NoError(t, err)

	ptr := img.AsPtr()
	rec := img.IntoColumnar()
	require.Equal(t, ImageTypeName, rec.TypeName())

	back, err := ImageFromColumnar(rec)
	require.NoError(t, err)

	require.Equal(t, uint32(2), back.Width())
	require.Equal(t, uint32(1), back.Height())
	require.Equal(t, format.PixelRGB8, back.Encoding())
	require.Equal(t, ptr, back.AsPtr())

	got, ok := back.Name()
	require.True(t, ok)
	require.Equal(t, "camera.front", got)
}

func TestImage_ColumnarRoundTrip_NoName(t *testing.T) {
	img, err := NewGray8([]uint8{7, 8}, 2, 1, nil)
	require.NoError(t, err)

	back, err := ImageFromColumnar(img.IntoColumnar())
	require.NoError(t, err)

	_, ok := back.Name()
	require.False(t, ok)
}

func TestImageFromColumnar_WrongType(t *testing.T) {
	rec := columnar.NewBuilder("BBox").Build()

	_, err := ImageFromColumnar(rec)
	require.ErrorIs(t, err, errs.ErrTypeMismatch)
}

func TestImageFromColumnar_UnknownEncoding(t *testing.T) {
	rec := columnar.NewBuilder(ImageTypeName).
		PushUint32Singleton("width", 2).
		PushUint32Singleton("height", 1).
		PushStringSingleton("encoding", "YUV444").
		PushOptionalString("name", nil).
		PushPrimitiveArray("data", buffer.FromUint8(make([]uint8, 6))).
		Build()

	_, err := ImageFromColumnar(rec)
	require.ErrorIs(t, err, errs.ErrUnknownEncoding)
}

func TestImageFromColumnar_MissingField(t *testing.T) {
	rec := columnar.NewBuilder(ImageTypeName).
		PushUint32Singleton("width", 2).
		Build()

	_, err := ImageFromColumnar(rec)
	require.ErrorIs(t, err, errs.ErrMissingField)
}

func TestImageFromColumnarView_CopyOnWrite(t *testing.T) {
	img, err := NewRGB8([]uint8{10, 20, 30, 40, 50, 60}, 2, 1, nil)
	require.NoError(t, err)

	rec := img.IntoColumnar()

	view, err := ImageFromColumnarView(rec)
	require.NoError(t, err)

	// Converting the view must not mutate the record's buffer.
	bgr, err := view.IntoBGR8()
	require.NoError(t, err)

	recBuf, err := columnar.NewViewer(rec).PrimitiveArray("data", format.ElementUint8)
	require.NoError(t, err)
	defer recBuf.Release()

	require.NotEqual(t, recBuf.AsPtr(), bgr.AsPtr())

	original, err := recBuf.Uint8s()
	require.NoError(t, err)
	require.Equal(t, []uint8{10, 20, 30, 40, 50, 60}, original)
}

func TestImage_DenseRoundTrip(t *testing.T) {
	name := "camera.front"
	img, err := NewRGB8(make([]uint8, 24), 4, 2, &name)
	require.NoError(t, err)

	ptr := img.AsPtr()
	arr, err := img.IntoDense()
	require.NoError(t, err)
	require.Equal(t, []int{2, 4, 3}, arr.Shape)
	require.Equal(t, ptr, arr.AsPtr())

	back, err := ImageFromDense(arr, format.PixelRGB8, &name)
	require.NoError(t, err)
	require.Equal(t, uint32(4), back.Width())
	require.Equal(t, uint32(2), back.Height())
	require.Equal(t, ptr, back.AsPtr())
}

func TestImage_DenseRoundTrip_Gray8(t *testing.T) {
	img, err := NewGray8(make([]uint8, 8), 4, 2, nil)
	require.NoError(t, err)

	arr, err := img.IntoDense()
	require.NoError(t, err)
	require.Equal(t, []int{2, 4}, arr.Shape)

	back, err := ImageFromDense(arr, format.PixelGRAY8, nil)
	require.NoError(t, err)
	require.Equal(t, format.PixelGRAY8, back.Encoding())
}

func TestImageFromDense_RankMismatch(t *testing.T) {
	buf := buffer.FromUint8(make([]uint8, 24))
	arr, err := dense.New(buf, []int{2, 12})
	require.NoError(t, err)

	_, err = ImageFromDense(arr, format.PixelRGB8, nil)
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestImageFromDense_ElementMismatch(t *testing.T) {
	buf := buffer.FromFloat32(make([]float32, 24))
	arr, err := dense.New(buf, []int{2, 4, 3})
	require.NoError(t, err)

	_, err = ImageFromDense(arr, format.PixelRGB8, nil)
	require.ErrorIs(t, err, errs.ErrElementTypeMismatch)
}

func TestImage_ConcurrentReads(t *testing.T) {
	img, err := NewRGB8(make([]uint8, 640*480*3), 640, 480, nil)
	require.NoError(t, err)

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 1000; j++ {
				_ = img.Width()
				_ = img.Height()
				_ = img.Encoding()
				_, _ = img.Data().Uint8s()
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
}
