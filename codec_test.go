package emgsf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksumAccumulates(t *testing.T) {
	var c Checksum
	c.AddBytes([]byte{0x01, 0x02, 0x03})
	require.Equal(t, uint16(6), c.Value())

	c.Reset()
	require.Equal(t, uint16(0), c.Value())
}

func TestChecksumWrapsModulo16Bit(t *testing.T) {
	var c Checksum
	for i := 0; i < 300; i++ {
		c.Add(0xFF)
	}
	require.Equal(t, uint16((0xFF*300)%65536), c.Value())
}

func TestByteOrderRoundTrip(t *testing.T) {
	for _, order := range []ByteOrder{BigEndian, LittleEndian} {
		b := make([]byte, 4)
		PutU32(order, b, 0xDEADBEEF)
		require.Equal(t, uint32(0xDEADBEEF), GetU32(order, b))

		b16 := make([]byte, 2)
		PutI16(order, b16, -1234)
		require.Equal(t, int16(-1234), GetI16(order, b16))
	}
}
