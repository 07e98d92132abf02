package decode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterDecoder(emgsf.DatagramRunParameter, DecodeRunParameter)
}

const runParameterBodySize = 26

// DecodeRunParameter decodes the RunParameter datagram: the fixed set of
// acquisition-time operator settings that accompany a survey line (§4.4).
// Only the fields from OperatorStation through TxPower (the first 26 body
// bytes) are decoded; the record's remaining fields, such as beam spacing,
// are left zero.
func DecodeRunParameter(o emgsf.ByteOrder, body []byte, s *emgsf.Store, head int) error {
	if len(body) < runParameterBodySize {
		return emgsf.ErrEof
	}
	rec := &emgsf.RunParameterRecord{
		Timestamp: emgsf.Timestamp{
			Date: getU32(o, body[0:4]),
			Msec: getU32(o, body[4:8]),
		},
		Count:             getU16(o, body[8:10]),
		Serial:            getU16(o, body[10:12]),
		OperatorStation:   body[12],
		Mode:              body[13],
		FilterID:          body[14],
		MinDepth:          float32(getU16(o, body[15:17])),
		MaxDepth:          float32(getU16(o, body[17:19])),
		AbsorptionCoef:    float32(getU16(o, body[19:21])) / 100,
		TxPulseLength:     float32(getU16(o, body[21:23])),
		TxBeamWidth:       float32(getU16(o, body[23:25])) / 10,
		TxPower:           int8(body[25]),
	}
	s.RunParameter = rec
	return nil
}
