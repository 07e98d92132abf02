package encode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterEncoder(emgsf.DatagramClock, EncodeClock)
}

// EncodeClock is the inverse of decode.DecodeClock.
func EncodeClock(o emgsf.ByteOrder, s *emgsf.Store, head int) ([]byte, error) {
	rec := s.Clock
	if rec == nil {
		return nil, emgsf.ErrBadKind
	}

	b := make([]byte, 21)
	putU32(o, b[0:4], rec.Timestamp.Date)
	putU32(o, b[4:8], rec.Timestamp.Msec)
	putU16(o, b[8:10], rec.Count)
	putU16(o, b[10:12], rec.Serial)
	putU32(o, b[12:16], rec.ExternalTimestamp.Date)
	putU32(o, b[16:20], rec.ExternalTimestamp.Msec)
	if rec.PPSInUse {
		b[20] = 0x01
	}
	return b, nil
}
