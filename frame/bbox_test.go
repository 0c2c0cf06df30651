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

func TestNewXYXY(t *testing.T) {
	box, err := NewXYXY(
		[]float32{0, 0, 10, 10, 5, 5, 15, 25},
		[]float32{0.9, 0.5},
		[]string{"person", "bike"},
	)
	require.NoError(t, err)

	require.Equal(t, 2, box.Count())
	require.Equal(t, format.BoxXYXY, box.Encoding())
	require.Equal(t, []string{"person", "bike"}, box.Labels())
}

func TestNewXYXY_ShapeMismatch(t *testing.T) {
	// 8 coordinates describe 2 boxes, but only 1 confidence.
	_, err := NewXYXY(
		[]float32{0, 0, 10, 10, 5, 5, 15, 25},
		[]float32{0.9},
		[]string{"person"},
	)
	require.ErrorIs(t, err, errs.ErrShapeMismatch)

	// Label count disagrees with confidence count.
	_, err = NewXYXY(
		[]float32{0, 0, 10, 10},
		[]float32{0.9},
		[]string{"person", "bike"},
	)
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestIntoXYWH_CenterForm(t *testing.T) {
	box, err := NewXYXY([]float32{0, 0, 10, 10}, []float32{0.9}, []string{"person"})
	require.NoError(t, err)

	xywh, err := box.IntoXYWH()
	require.NoError(t, err)
	require.Equal(t, format.BoxXYWH, xywh.Encoding())

	coords, err := xywh.Data().Float32s()
	require.NoError(t, err)
	require.Equal(t, []float32{5, 5, 10, 10}, coords)
}

func TestIntoXYXY_Inverse(t *testing.T) {
	box, err := NewXYWH([]float32{5, 5, 10, 10}, []float32{0.9}, []string{"person"})
	require.NoError(t, err)

	xyxy, err := box.IntoXYXY()
	require.NoError(t, err)
	require.Equal(t, format.BoxXYXY, xyxy.Encoding())

	coords, err := xyxy.Data().Float32s()
	require.NoError(t, err)
	require.Equal(t, []float32{0, 0, 10, 10}, coords)
}

func TestIntoXYWH_Identity(t *testing.T) {
	box, err := NewXYWH([]float32{5, 5, 10, 10}, []float32{0.9}, []string{"person"})
	require.NoError(t, err)

	same, err := box.IntoXYWH()
	require.NoError(t, err)
	require.Same(t, box, same)
}

func TestIntoXYWH_SharesConfidenceAndLabels(t *testing.T) {
	box, err := NewXYXY([]float32{0, 0, 10, 10}, []float32{0.9}, []string{"person"})
	require.NoError(t, err)

	confidence := box.Confidence()
	labels := box.Labels()

	xywh, err := box.IntoXYWH()
	require.NoError(t, err)
	require.Same(t, confidence, xywh.Confidence())
	require.Equal(t, &labels[0], &xywh.Labels()[0])
}

func TestIntoXYWH_SharedCopies(t *testing.T) {
	box, err := NewXYXY([]float32{0, 0, 10, 10}, []float32{0.9}, []string{"person"})
	require.NoError(t, err)

	shared := box.Data().Retain()
	defer shared.Release()

	xywh, err := box.IntoXYWH()
	require.NoError(t, err)
	require.NotEqual(t, shared.AsPtr(), xywh.AsPtr())

	original, err := shared.Float32s()
	require.NoError(t, err)
	require.Equal(t, []float32{0, 0, 10, 10}, original)
}

func TestBBox_ColumnarRoundTrip(t *testing.T) {
	box, err := NewXYXY(
		[]float32{0, 0, 10, 10, 5, 5, 15, 25},
		[]float32{0.9, 0.5},
		[]string{"person", "bike"},
	)
	require.NoError(t, err)

	dataPtr := box.Data().AsPtr()
	confPtr := box.Confidence().AsPtr()

	rec := box.IntoColumnar()
	require.Equal(t, BBoxTypeName, rec.TypeName())

	back, err := BBoxFromColumnar(rec)
	require.NoError(t, err)

	require.Equal(t, 2, back.Count())
	require.Equal(t, format.BoxXYXY, back.Encoding())
	require.Equal(t, []string{"person", "bike"}, back.Labels())
	require.Equal(t, dataPtr, back.Data().AsPtr())
	require.Equal(t, confPtr, back.Confidence().AsPtr())
}

func TestBBoxFromColumnar_FieldShapeMismatch(t *testing.T) {
	rec := columnar.NewBuilder(BBoxTypeName).
		PushPrimitiveArray("data", buffer.FromFloat32([]float32{0, 0, 10, 10})).
		PushPrimitiveArray("confidence", buffer.FromFloat32([]float32{0.9, 0.5})).
		PushStringArray("label", []string{"person", "bike"}).
		PushStringSingleton("encoding", "XYXY").
		Build()

	_, err := BBoxFromColumnar(rec)
	require.ErrorIs(t, err, errs.ErrFieldShapeMismatch)
}

func TestBBoxFromColumnar_UnknownEncoding(t *testing.T) {
	rec := columnar.NewBuilder(BBoxTypeName).
		PushPrimitiveArray("data", buffer.FromFloat32([]float32{0, 0, 10, 10})).
		PushPrimitiveArray("confidence", buffer.FromFloat32([]float32{0.9})).
		PushStringArray("label", []string{"person"}).
		PushStringSingleton("encoding", "CXCYWH").
		Build()

	_, err := BBoxFromColumnar(rec)
	require.ErrorIs(t, err, errs.ErrUnknownEncoding)
}

func TestBBoxFromColumnar_WrongType(t *testing.T) {
	rec := columnar.NewBuilder("Image").Build()

	_, err := BBoxFromColumnar(rec)
	require.ErrorIs(t, err, errs.ErrTypeMismatch)
}

func TestBBoxFromColumnarView_CopyOnWrite(t *testing.T) {
	box, err := NewXYXY([]float32{0, 0, 10, 10}, []float32{0.9}, []string{"person"})
	require.NoError(t, err)

	rec := box.IntoColumnar()

	view, err := BBoxFromColumnarView(rec)
	require.NoError(t, err)

	xywh, err := view.IntoXYWH()
	require.NoError(t, err)

	recBuf, err := columnar.NewViewer(rec).PrimitiveArray("data", format.ElementFloat32)
	require.NoError(t, err)
	defer recBuf.Release()

	require.NotEqual(t, recBuf.AsPtr(), xywh.AsPtr())

	original, err := recBuf.Float32s()
	require.NoError(t, err)
	require.Equal(t, []float32{0, 0, 10, 10}, original)
}

func TestBBox_DenseRoundTrip(t *testing.T) {
	box, err := NewXYXY(
		[]float32{0, 0, 10, 10, 5, 5, 15, 25},
		[]float32{0.9, 0.5},
		[]string{"person", "bike"},
	)
	require.NoError(t, err)

	ptr := box.AsPtr()
	arr, err := box.IntoDense()
	require.NoError(t, err)
	require.Equal(t, []int{2, 4}, arr.Shape)
	require.Equal(t, ptr, arr.AsPtr())

	back, err := BBoxFromDense(arr, format.BoxXYXY, []float32{0.9, 0.5}, []string{"person", "bike"})
	require.NoError(t, err)
	require.Equal(t, 2, back.Count())
	require.Equal(t, ptr, back.AsPtr())
}

func TestBBoxFromDense_ShapeMismatch(t *testing.T) {
	buf := buffer.FromFloat32(make([]float32, 8))
	arr, err := dense.New(buf, []int{4, 2})
	require.NoError(t, err)

	_, err = BBoxFromDense(arr, format.BoxXYXY, make([]float32, 4), make([]string, 4))
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestBBoxFromDense_ElementMismatch(t *testing.T) {
	buf := buffer.FromUint32(make([]uint32, 8))
	arr, err := dense.New(buf, []int{2, 4})
	require.NoError(t, err)

	_, err = BBoxFromDense(arr, format.BoxXYXY, []float32{0.9, 0.5}, []string{"a", "b"})
	require.ErrorIs(t, err, errs.ErrElementTypeMismatch)
}
