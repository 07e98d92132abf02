package encode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterEncoder(emgsf.DatagramRunParameter, EncodeRunParameter)
}

// EncodeRunParameter is the inverse of decode.DecodeRunParameter. It mirrors
// that decoder's partial coverage: only the fields decoded there
// (OperatorStation through TxPower) round-trip, the remainder of the
// datagram is zero-filled.
func EncodeRunParameter(o emgsf.ByteOrder, s *emgsf.Store, head int) ([]byte, error) {
	rec := s.RunParameter
	if rec == nil {
		return nil, emgsf.ErrBadKind
	}

	b := make([]byte, 26)
	putU32(o, b[0:4], rec.Timestamp.Date)
	putU32(o, b[4:8], rec.Timestamp.Msec)
	putU16(o, b[8:10], rec.Count)
	putU16(o, b[10:12], rec.Serial)
	b[12] = rec.OperatorStation
	b[13] = rec.Mode
	b[14] = rec.FilterID
	putU16(o, b[15:17], uint16(rec.MinDepth))
	putU16(o, b[17:19], uint16(rec.MaxDepth))
	putU16(o, b[19:21], uint16(rec.AbsorptionCoef*100))
	putU16(o, b[21:23], uint16(rec.TxPulseLength))
	putU16(o, b[23:25], uint16(rec.TxBeamWidth*10))
	b[25] = byte(rec.TxPower)
	return b, nil
}
