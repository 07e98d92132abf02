package encode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterEncoder(emgsf.DatagramPosition, EncodePosition)
}

// EncodePosition is the inverse of decode.DecodePosition.
func EncodePosition(o emgsf.ByteOrder, s *emgsf.Store, head int) ([]byte, error) {
	rec := s.Position
	if rec == nil {
		return nil, emgsf.ErrBadKind
	}

	b := make([]byte, positionHeaderSize)
	putU32(o, b[0:4], rec.Timestamp.Date)
	putU32(o, b[4:8], rec.Timestamp.Msec)
	putI32(o, b[8:12], int32(rec.Latitude*20000000.0))
	putI32(o, b[12:16], int32(rec.Longitude*10000000.0))
	putU16(o, b[16:18], uint16(rec.Quality*100))
	putU16(o, b[18:20], uint16(rec.Course*100))
	putU16(o, b[20:22], uint16(rec.Speed*100))
	putU16(o, b[22:24], uint16(rec.Heading*100))
	putU16(o, b[26:28], uint16(len(rec.InputMessage)))
	b[28] = rec.System

	out := append(b, []byte(rec.InputMessage)...)
	return out, nil
}

const positionHeaderSize = 30
