package encode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterEncoder(emgsf.DatagramWaterColumn, EncodeWaterColumn)
}

const (
	waterColumnHeaderSize = 28
	waterColumnTxSize     = 6
	waterColumnBeamHeader = 6
)

// EncodeWaterColumn is the inverse of decode.DecodeWaterColumn, reproducing
// the even-byte-boundary padding after each beam's amplitude run.
func EncodeWaterColumn(o emgsf.ByteOrder, s *emgsf.Store, head int) ([]byte, error) {
	rec := s.WaterColumn
	if rec == nil {
		return nil, emgsf.ErrBadKind
	}

	b := make([]byte, waterColumnHeaderSize)
	putU32(o, b[0:4], rec.Timestamp.Date)
	putU32(o, b[4:8], rec.Timestamp.Msec)
	putU16(o, b[8:10], rec.Count)
	putU16(o, b[10:12], rec.Serial)
	b[16] = byte(len(rec.Tx))
	putU16(o, b[17:19], uint16(len(rec.Beams)))

	out := b
	for _, tx := range rec.Tx {
		tb := make([]byte, waterColumnTxSize)
		putI16(o, tb[0:2], int16(tx.TiltAngle*100))
		putU16(o, tb[2:4], uint16(tx.CenterFreq))
		putU16(o, tb[4:6], uint16(tx.BandWidth/10))
		out = append(out, tb...)
	}

	for _, beam := range rec.Beams {
		hb := make([]byte, waterColumnBeamHeader)
		putI16(o, hb[0:2], int16(beam.BeamAngle*100))
		putU16(o, hb[2:4], beam.StartRange)
		putU16(o, hb[4:6], uint16(len(beam.Amplitudes)))
		out = append(out, hb...)

		for _, a := range beam.Amplitudes {
			out = append(out, byte(a))
		}
		if len(beam.Amplitudes)%2 != 0 {
			out = append(out, 0)
		}
	}

	return out, nil
}
