package decode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterDecoder(emgsf.DatagramTide, DecodeTide)
}

const tideBodySize = 14

// DecodeTide decodes the Tide datagram: header timestamp, count, serial,
// and a cm-scaled tide offset (§4.4).
func DecodeTide(o emgsf.ByteOrder, body []byte, s *emgsf.Store, head int) error {
	if len(body) < tideBodySize {
		return emgsf.ErrEof
	}
	rec := &emgsf.TideRecord{
		Timestamp: emgsf.Timestamp{
			Date: getU32(o, body[0:4]),
			Msec: getU32(o, body[4:8]),
		},
		Count:      getU16(o, body[8:10]),
		Serial:     getU16(o, body[10:12]),
		TideOffset: float32(getI16(o, body[12:14])) / 100,
	}
	s.Tide = rec
	return nil
}
