package encode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterEncoder(emgsf.DatagramSidescan, EncodeSidescan)
	emgsf.RegisterEncoder(emgsf.DatagramSidescanExt, EncodeSidescanExtended)
}

const sidescanHeaderSize = 28

// EncodeSidescan is the inverse of decode.DecodeSidescan.
func EncodeSidescan(o emgsf.ByteOrder, s *emgsf.Store, head int) ([]byte, error) {
	ping := s.Ping(head)

	b := make([]byte, sidescanHeaderSize)
	putU32(o, b[0:4], ping.SSTimestamp.Date)
	putU32(o, b[4:8], ping.SSTimestamp.Msec)
	putU16(o, b[22:24], uint16(ping.NBeamsSS))

	out := b
	for i := range ping.BeamIndex {
		beam := make([]byte, 6)
		beam[0] = byte(ping.BeamIndex[i])
		beam[1] = byte(ping.SortDirection[i])
		putU16(o, beam[2:4], ping.BeamSamples[i])
		putU16(o, beam[4:6], ping.StartSample[i])
		out = append(out, beam...)
	}

	for _, a := range ping.RawSidescan {
		out = append(out, byte(a))
	}
	return out, nil
}

const sidescanExtHeaderSize = 32

// EncodeSidescanExtended is the inverse of decode.DecodeSidescanExtended.
func EncodeSidescanExtended(o emgsf.ByteOrder, s *emgsf.Store, head int) ([]byte, error) {
	ping := s.Ping(head)

	b := make([]byte, sidescanExtHeaderSize)
	putU32(o, b[0:4], ping.SSTimestamp.Date)
	putU32(o, b[4:8], ping.SSTimestamp.Msec)
	putU16(o, b[22:24], uint16(ping.NBeamsSS))
	putU16(o, b[24:26], uint16(ping.NPixels))

	out := b
	for i := range ping.BeamIndex {
		beam := make([]byte, 8)
		beam[0] = byte(ping.BeamIndex[i])
		beam[1] = byte(ping.SortDirection[i])
		putU16(o, beam[2:4], ping.BeamSamples[i])
		putU16(o, beam[4:6], ping.CenterSample[i])
		out = append(out, beam...)
	}

	pixels := make([]byte, 2*ping.NPixels)
	for i := 0; i < ping.NPixels && i < len(ping.ProcessedSS); i++ {
		putI16(o, pixels[2*i:2*i+2], ping.ProcessedSS[i])
	}
	out = append(out, pixels...)

	track := make([]byte, 2*ping.NPixels)
	for i := 0; i < ping.NPixels && i < len(ping.SSAlongTrack); i++ {
		putI16(o, track[2*i:2*i+2], ping.SSAlongTrack[i])
	}
	out = append(out, track...)

	return out, nil
}
