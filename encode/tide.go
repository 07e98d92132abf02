package encode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterEncoder(emgsf.DatagramTide, EncodeTide)
}

// EncodeTide is the inverse of decode.DecodeTide.
func EncodeTide(o emgsf.ByteOrder, s *emgsf.Store, head int) ([]byte, error) {
	rec := s.Tide
	if rec == nil {
		return nil, emgsf.ErrBadKind
	}

	b := make([]byte, 14)
	putU32(o, b[0:4], rec.Timestamp.Date)
	putU32(o, b[4:8], rec.Timestamp.Msec)
	putU16(o, b[8:10], rec.Count)
	putU16(o, b[10:12], rec.Serial)
	putI16(o, b[12:14], int16(rec.TideOffset*100))
	return b, nil
}
