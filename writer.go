package emgsf

import (
	"encoding/binary"
	"io"
)

// ChecksumWriter wraps a sink and accumulates the 16-bit additive checksum
// over every byte written through it (C1's checksum accumulator, exposed
// for the encoders in the encode subpackage).
type ChecksumWriter struct {
	w   io.Writer
	Sum Checksum
}

// NewChecksumWriter wraps w, starting from a zeroed checksum.
func NewChecksumWriter(w io.Writer) *ChecksumWriter {
	return &ChecksumWriter{w: w}
}

func (c *ChecksumWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.Sum.AddBytes(p[:n])
	if err != nil {
		return n, ErrWriteFail
	}
	return n, nil
}

// WriteFrame assembles and writes one complete datagram: the size prefix,
// the four label bytes, the body (as returned by an Encode* call), the end
// byte, and the two checksum bytes, which WriteFrame computes itself.
//
// Per §6/§3, the checksum covers every byte from the type byte through the
// end byte inclusive, and — unlike the rest of the frame — is always
// written little-endian regardless of the stream's overall byte order.
func WriteFrame(w io.Writer, o ByteOrder, t DatagramType, sonar uint16, body []byte) error {
	cw := NewChecksumWriter(io.Discard)
	cw.Write([]byte{byte(t)})
	sonarBytes := make([]byte, 2)
	putU16(o, sonarBytes, sonar)
	cw.Write(sonarBytes)
	cw.Write(body)
	cw.Write([]byte{endByte})
	checksum := cw.Sum.Value()

	size := uint32(len(body) + 5) // start+type+sonar(2)+end, excludes the size field itself and the trailing checksum
	header := make([]byte, 8)
	putU32(o, header[0:4], size)
	header[4] = startByte
	header[5] = byte(t)
	putU16(o, header[6:8], sonar)

	if _, err := w.Write(header); err != nil {
		return ErrWriteFail
	}
	if _, err := w.Write(body); err != nil {
		return ErrWriteFail
	}
	if _, err := w.Write([]byte{endByte}); err != nil {
		return ErrWriteFail
	}
	checksumBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(checksumBytes, checksum)
	if _, err := w.Write(checksumBytes); err != nil {
		return ErrWriteFail
	}
	return nil
}
