package encode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterEncoder(emgsf.DatagramHeight, EncodeHeight)
}

// EncodeHeight is the inverse of decode.DecodeHeight.
func EncodeHeight(o emgsf.ByteOrder, s *emgsf.Store, head int) ([]byte, error) {
	rec := s.Height
	if rec == nil {
		return nil, emgsf.ErrBadKind
	}

	b := make([]byte, 17)
	putU32(o, b[0:4], rec.Timestamp.Date)
	putU32(o, b[4:8], rec.Timestamp.Msec)
	putU16(o, b[8:10], rec.Count)
	putU16(o, b[10:12], rec.Serial)
	putI32(o, b[12:16], int32(rec.Height*100))
	b[16] = rec.HeightType
	return b, nil
}
