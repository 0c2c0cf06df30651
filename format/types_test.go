package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/visionbuf/visionbuf/errs"
)

func TestParsePixelEncoding_Valid(t *testing.T) {
	for _, tag := range []string{"RGB8", "BGR8", "GRAY8"} {
		enc, err := ParsePixelEncoding(tag)
		require.NoError(t, err)
		require.Equal(t, tag, enc.String())
	}
}

func TestParsePixelEncoding_Unknown(t *testing.T) {
	_, err := ParsePixelEncoding("YUV444")
	require.ErrorIs(t, err, errs.ErrUnknownEncoding)
}

func TestParseBoxEncoding_Valid(t *testing.T) {
	for _, tag := range []string{"XYXY", "XYWH"} {
		enc, err := ParseBoxEncoding(tag)
		require.NoError(t, err)
		require.Equal(t, tag, enc.String())
	}
}

func TestParseBoxEncoding_Unknown(t *testing.T) {
	_, err := ParseBoxEncoding("CXCYWH")
	require.ErrorIs(t, err, errs.ErrUnknownEncoding)
}

func TestChannels(t *testing.T) {
	tests := []struct {
		encoding PixelEncoding
		want     uint32
	}{
		{PixelRGB8, 3},
		{PixelBGR8, 3},
		{PixelGRAY8, 1},
	}
	for _, tt := range tests {
		got, err := Channels(tt.encoding)
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}

	_, err := Channels(PixelEncoding(0xFF))
	require.ErrorIs(t, err, errs.ErrUnknownEncoding)
}

func TestElementSize(t *testing.T) {
	tests := []struct {
		elem ElementType
		want uint32
	}{
		{ElementUint8, 1},
		{ElementUint16, 2},
		{ElementUint32, 4},
		{ElementFloat32, 4},
	}
	for _, tt := range tests {
		got, err := ElementSize(tt.elem)
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}

	_, err := ElementSize(ElementType(0))
	require.ErrorIs(t, err, errs.ErrUnknownEncoding)
}

func TestIsReorderCompatible(t *testing.T) {
	compatible, err := IsReorderCompatible(PixelRGB8, PixelBGR8)
	require.NoError(t, err)
	require.True(t, compatible)

	compatible, err = IsReorderCompatible(PixelRGB8, PixelGRAY8)
	require.NoError(t, err)
	require.False(t, compatible)

	compatible, err = IsReorderCompatible(PixelGRAY8, PixelGRAY8)
	require.NoError(t, err)
	require.True(t, compatible)

	_, err = IsReorderCompatible(PixelRGB8, PixelEncoding(0xFF))
	require.ErrorIs(t, err, errs.ErrUnknownEncoding)
}

func TestCompressionType_String(t *testing.T) {
	require.Equal(t, "None", CompressionNone.String())
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "S2", CompressionS2.String())
	require.Equal(t, "LZ4", CompressionLZ4.String())
	require.Equal(t, "Unknown", CompressionType(0xFF).String())
}
