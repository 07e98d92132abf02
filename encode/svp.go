package encode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterEncoder(emgsf.DatagramSVP, EncodeSVP)
	emgsf.RegisterEncoder(emgsf.DatagramSVP2, EncodeSVP)
}

// EncodeSVP is the inverse of decode.DecodeSVP.
func EncodeSVP(o emgsf.ByteOrder, s *emgsf.Store, head int) ([]byte, error) {
	rec := s.SVP
	if rec == nil {
		return nil, emgsf.ErrBadKind
	}

	b := make([]byte, 24)
	putU32(o, b[0:4], rec.Timestamp.Date)
	putU32(o, b[4:8], rec.Timestamp.Msec)
	putU32(o, b[8:12], rec.ProfileTime.Date)
	putU32(o, b[12:16], rec.ProfileTime.Msec)
	putI32(o, b[16:20], int32(rec.Latitude*20000000.0))
	putI32(o, b[20:24], int32(rec.Longitude*10000000.0))

	out := b
	for _, e := range rec.Entries {
		eb := make([]byte, 4)
		putU16(o, eb[0:2], uint16(e.Depth*10))
		putU16(o, eb[2:4], uint16(e.Speed*10))
		out = append(out, eb...)
	}
	return out, nil
}
