package decode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterDecoder(emgsf.DatagramHeight, DecodeHeight)
}

const heightBodySize = 17

// DecodeHeight decodes the Height datagram: header timestamp, count,
// serial, a cm-scaled height, and a height-type byte distinguishing
// waterline-relative from RTK/ellipsoidal height sources (§4.4).
func DecodeHeight(o emgsf.ByteOrder, body []byte, s *emgsf.Store, head int) error {
	if len(body) < heightBodySize {
		return emgsf.ErrEof
	}
	rec := &emgsf.HeightRecord{
		Timestamp: emgsf.Timestamp{
			Date: getU32(o, body[0:4]),
			Msec: getU32(o, body[4:8]),
		},
		Count:      getU16(o, body[8:10]),
		Serial:     getU16(o, body[10:12]),
		Height:     float32(getI32(o, body[12:16])) / 100,
		HeightType: body[16],
	}
	s.Height = rec
	return nil
}
