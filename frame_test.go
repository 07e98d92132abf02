package emgsf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func label(recordSize uint32, order ByteOrder, t DatagramType, sonar uint16) []byte {
	b := make([]byte, 8)
	putU32(order, b[0:4], recordSize)
	b[4] = startByte
	b[5] = byte(t)
	if order == BigEndian {
		b[6] = byte(sonar >> 8)
		b[7] = byte(sonar)
	} else {
		b[6] = byte(sonar)
		b[7] = byte(sonar >> 8)
	}
	return b
}

func TestScannerDetectsBigEndianFromFirstFrame(t *testing.T) {
	raw := label(100, BigEndian, DatagramBath, 300)
	var sc Scanner
	lbl, err := sc.Next(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, BigEndian, sc.Order())
	require.Equal(t, DatagramBath, lbl.Type)
	require.Equal(t, uint16(300), lbl.SonarID)
	require.Equal(t, uint32(100), lbl.RecordSize)
}

func TestScannerDetectsLittleEndianFromFirstFrame(t *testing.T) {
	raw := label(100, LittleEndian, DatagramBath, 3002)
	var sc Scanner
	lbl, err := sc.Next(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, LittleEndian, sc.Order())
	require.Equal(t, uint16(3002), lbl.SonarID)
}

func TestScannerResyncsPastCorruptBytes(t *testing.T) {
	garbage := []byte{0xFF, 0xAB, 0x00, 0x11, 0x22}
	raw := append(garbage, label(50, BigEndian, DatagramBath, 300)...)
	var sc Scanner
	lbl, err := sc.Next(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, DatagramBath, lbl.Type)
	require.Greater(t, sc.Resyncs(), uint64(0))
}

func TestScannerAcceptsZeroSonarIDForSVPOnceOrderKnown(t *testing.T) {
	var sc Scanner
	first := label(50, BigEndian, DatagramBath, 300)
	_, err := sc.Next(bytes.NewReader(first))
	require.NoError(t, err)

	svp := label(60, BigEndian, DatagramSVP, 0)
	lbl, err := sc.Next(bytes.NewReader(svp))
	require.NoError(t, err)
	require.Equal(t, DatagramSVP, lbl.Type)
	require.Equal(t, uint16(300), lbl.SonarID)
}

func TestScannerReturnsEofOnShortStream(t *testing.T) {
	var sc Scanner
	_, err := sc.Next(bytes.NewReader([]byte{1, 2, 3}))
	require.ErrorIs(t, err, ErrEof)
}
