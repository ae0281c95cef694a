package endian

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEngine(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetEngine(false))
	require.Equal(t, binary.BigEndian, GetEngine(true))
	require.False(t, IsBigEndian(GetLittleEndianEngine()))
	require.True(t, IsBigEndian(GetBigEndianEngine()))
}

func TestEngine_AppendAndRead(t *testing.T) {
	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		bits := math.Float64bits(12.5)
		buf := engine.AppendUint64(nil, bits)
		buf = engine.AppendUint32(buf, 7)
		require.Len(t, buf, 12)
		require.Equal(t, bits, engine.Uint64(buf))
		require.Equal(t, uint32(7), engine.Uint32(buf[8:]))
	}

	require.Equal(t, []byte{0x00, 0x01}, GetBigEndianEngine().AppendUint16(nil, 1))
	require.Equal(t, []byte{0x01, 0x00}, GetLittleEndianEngine().AppendUint16(nil, 1))
}

func TestNativeEngine(t *testing.T) {
	engine := NativeEngine()
	require.True(t, engine == binary.LittleEndian || engine == binary.BigEndian)
}
