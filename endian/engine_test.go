package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNative_MatchesStdlibProbe(t *testing.T) {
	var buf [2]byte
	Native().PutUint16(buf[:], 0x0102)

	if IsNativeLittleEndian() {
		require.Equal(t, [2]byte{0x02, 0x01}, buf)
	} else {
		require.Equal(t, [2]byte{0x01, 0x02}, buf)
	}
}

func TestEngines(t *testing.T) {
	le := GetLittleEndianEngine()
	be := GetBigEndianEngine()

	require.Equal(t, binary.LittleEndian, le)
	require.Equal(t, binary.BigEndian, be)

	leBytes := le.AppendUint32(nil, 0x56424631)
	beBytes := be.AppendUint32(nil, 0x56424631)

	require.Equal(t, []byte{0x31, 0x46, 0x42, 0x56}, leBytes)
	require.Equal(t, []byte{0x56, 0x42, 0x46, 0x31}, beBytes)

	require.Equal(t, uint32(0x56424631), le.Uint32(leBytes))
	require.Equal(t, uint32(0x56424631), be.Uint32(beBytes))
}
