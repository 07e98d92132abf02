package decode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterDecoder(emgsf.DatagramClock, DecodeClock)
}

const clockBodySize = 21

// DecodeClock decodes the Clock datagram: header timestamp, count, serial,
// an external-clock timestamp (the clock's own idea of the time) and a
// 1-bit PPS-in-use flag (§4.4).
func DecodeClock(o emgsf.ByteOrder, body []byte, s *emgsf.Store, head int) error {
	if len(body) < clockBodySize {
		return emgsf.ErrEof
	}
	rec := &emgsf.ClockRecord{
		Timestamp: emgsf.Timestamp{
			Date: getU32(o, body[0:4]),
			Msec: getU32(o, body[4:8]),
		},
		Count:  getU16(o, body[8:10]),
		Serial: getU16(o, body[10:12]),
		ExternalTimestamp: emgsf.Timestamp{
			Date: getU32(o, body[12:16]),
			Msec: getU32(o, body[16:20]),
		},
		PPSInUse: body[20]&0x01 != 0,
	}
	s.Clock = rec
	return nil
}
