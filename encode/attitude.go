package encode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterEncoder(emgsf.DatagramAttitude, EncodeAttitude)
	emgsf.RegisterEncoder(emgsf.DatagramHeading, EncodeHeading)
	emgsf.RegisterEncoder(emgsf.DatagramSSV, EncodeSSV)
	emgsf.RegisterEncoder(emgsf.DatagramTilt, EncodeTilt)
}

func encodeSamplesHeader(o emgsf.ByteOrder, date, msec uint32, count, serial, n uint16) []byte {
	b := make([]byte, 14)
	putU32(o, b[0:4], date)
	putU32(o, b[4:8], msec)
	putU16(o, b[8:10], count)
	putU16(o, b[10:12], serial)
	putU16(o, b[12:14], n)
	return b
}

// EncodeAttitude is the inverse of decode.DecodeAttitude.
func EncodeAttitude(o emgsf.ByteOrder, s *emgsf.Store, head int) ([]byte, error) {
	rec := s.Attitude
	if rec == nil {
		return nil, emgsf.ErrBadKind
	}
	n := len(rec.Samples)
	out := encodeSamplesHeader(o, rec.Base.Date, rec.Base.Msec, rec.Count, rec.Serial, uint16(n))
	for _, smp := range rec.Samples {
		b := make([]byte, 12)
		putI16(o, b[0:2], smp.OffsetMsec)
		putI16(o, b[2:4], int16(smp.Roll*100))
		putI16(o, b[4:6], int16(smp.Pitch*100))
		putI16(o, b[6:8], int16(smp.Heave*100))
		putU16(o, b[8:10], uint16(smp.Heading*100))
		out = append(out, b...)
	}
	out = append(out, rec.SensorStatus)
	return out, nil
}

// EncodeHeading is the inverse of decode.DecodeHeading.
func EncodeHeading(o emgsf.ByteOrder, s *emgsf.Store, head int) ([]byte, error) {
	rec := s.Heading
	if rec == nil {
		return nil, emgsf.ErrBadKind
	}
	out := encodeSamplesHeader(o, rec.Base.Date, rec.Base.Msec, rec.Count, rec.Serial, uint16(len(rec.Offsets)))
	for i := range rec.Offsets {
		b := make([]byte, 4)
		putI16(o, b[0:2], rec.Offsets[i])
		putU16(o, b[2:4], uint16(rec.Values[i]*100))
		out = append(out, b...)
	}
	out = append(out, rec.Status)
	return out, nil
}

// EncodeSSV is the inverse of decode.DecodeSSV.
func EncodeSSV(o emgsf.ByteOrder, s *emgsf.Store, head int) ([]byte, error) {
	rec := s.SSV
	if rec == nil {
		return nil, emgsf.ErrBadKind
	}
	out := encodeSamplesHeader(o, rec.Base.Date, rec.Base.Msec, rec.Count, rec.Serial, uint16(len(rec.Offsets)))
	for i := range rec.Offsets {
		b := make([]byte, 4)
		putI16(o, b[0:2], rec.Offsets[i])
		putU16(o, b[2:4], uint16(rec.Values[i]*10))
		out = append(out, b...)
	}
	return out, nil
}

// EncodeTilt is the inverse of decode.DecodeTilt.
func EncodeTilt(o emgsf.ByteOrder, s *emgsf.Store, head int) ([]byte, error) {
	rec := s.Tilt
	if rec == nil {
		return nil, emgsf.ErrBadKind
	}
	out := encodeSamplesHeader(o, rec.Base.Date, rec.Base.Msec, rec.Count, rec.Serial, uint16(len(rec.Offsets)))
	for i := range rec.Offsets {
		b := make([]byte, 4)
		putI16(o, b[0:2], rec.Offsets[i])
		putI16(o, b[2:4], int16(rec.Values[i]*100))
		out = append(out, b...)
	}
	return out, nil
}
