package imagenex

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReaderDecodesCommentThenPing(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(EncodeComment("survey start", HeaderSize))

	h := Header{Magic: magic83P, Version: versionV100, NumBeams: 3}
	buf.Write(EncodeHeader(h))
	for _, r := range []uint16{10, 20, 30} {
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], r)
		buf.Write(b[:])
	}

	rd := NewReader(&buf)

	rec, err := rd.Next()
	require.NoError(t, err)
	require.Equal(t, "survey start", rec.Comment)
	require.Nil(t, rec.Ping)

	rec, err = rd.Next()
	require.NoError(t, err)
	require.NotNil(t, rec.Ping)
	require.Equal(t, []uint16{10, 20, 30}, rec.Ping.Range)

	_, err = rd.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestReaderDecodes83MPingWithExtension(t *testing.T) {
	var buf bytes.Buffer

	h := Header{Magic: magic83M, Version: versionV110, NumBeams: 2}
	buf.Write(EncodeHeader(h))
	for _, r := range []uint16{5, 6} {
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], r)
		buf.Write(b[:])
	}
	buf.Write(make([]byte, beamExtensionSize*2))

	rd := NewReader(&buf)
	rec, err := rd.Next()
	require.NoError(t, err)
	require.NotNil(t, rec.Ping)
	require.Len(t, rec.Ping.Extension, 2)
}

func TestReaderReturnsEofOnEmptyStream(t *testing.T) {
	rd := NewReader(bytes.NewReader(nil))
	_, err := rd.Next()
	require.ErrorIs(t, err, io.EOF)
}
