package decode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterDecoder(emgsf.DatagramWaterColumn, DecodeWaterColumn)
}

const (
	waterColumnHeaderSize = 28
	waterColumnTxSize     = 6
	waterColumnBeamHeader = 6
)

// DecodeWaterColumn decodes the water column datagram: a header, ntx
// transmit slices, then nbeam beam slices each followed by n_samples
// signed-byte amplitudes, the whole record padded to an even byte boundary
// (§4.4 "Water column"). Datagrams carrying more samples than fit in the
// body are simply truncated to what was actually delivered.
func DecodeWaterColumn(o emgsf.ByteOrder, body []byte, s *emgsf.Store, head int) error {
	if len(body) < waterColumnHeaderSize {
		return emgsf.ErrEof
	}

	rec := &emgsf.WaterColumnRecord{
		Timestamp: emgsf.Timestamp{Date: getU32(o, body[0:4]), Msec: getU32(o, body[4:8])},
		Count:     getU16(o, body[8:10]),
		Serial:    getU16(o, body[10:12]),
	}
	nTx := int(body[16])
	nBeams := int(getU16(o, body[17:19]))

	off := waterColumnHeaderSize
	for i := 0; i < nTx && off+waterColumnTxSize <= len(body); i++ {
		rec.Tx = append(rec.Tx, emgsf.WaterColumnTx{
			TiltAngle:  float32(getI16(o, body[off:off+2])) / 100,
			CenterFreq: float32(getU16(o, body[off+2:off+4])),
			BandWidth:  float32(getU16(o, body[off+4:off+6])) * 10,
		})
		off += waterColumnTxSize
	}

	for i := 0; i < nBeams && off+waterColumnBeamHeader <= len(body); i++ {
		beamAngle := float32(getI16(o, body[off:off+2])) / 100
		startRange := getU16(o, body[off+2:off+4])
		nSamples := int(getU16(o, body[off+4:off+6]))
		off += waterColumnBeamHeader

		if off+nSamples > len(body) {
			nSamples = len(body) - off
		}
		amps := make([]int8, nSamples)
		for j := 0; j < nSamples; j++ {
			amps[j] = int8(body[off+j])
		}
		off += nSamples
		if nSamples%2 != 0 && off < len(body) {
			off++ // even-byte-boundary padding
		}

		rec.Beams = append(rec.Beams, emgsf.WaterColumnBeam{
			BeamAngle:  beamAngle,
			StartRange: startRange,
			Amplitudes: amps,
		})
	}

	s.WaterColumn = rec
	return nil
}
