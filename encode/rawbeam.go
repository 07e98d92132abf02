package encode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterEncoder(emgsf.DatagramRawBeam, EncodeRawBeam1)
	emgsf.RegisterEncoder(emgsf.DatagramRawBeam2, EncodeRawBeam2)
	emgsf.RegisterEncoder(emgsf.DatagramRawBeam3, EncodeRawBeam3)
}

const rawBeamHeaderSize = 24

// EncodeRawBeam1 is the inverse of decode.DecodeRawBeam1.
func EncodeRawBeam1(o emgsf.ByteOrder, s *emgsf.Store, head int) ([]byte, error) {
	ping := s.Ping(head)

	b := make([]byte, rawBeamHeaderSize)
	putU16(o, b[18:20], uint16(len(ping.Azimuth)))

	out := b
	for i := range ping.Azimuth {
		beam := make([]byte, 8)
		putI16(o, beam[0:2], int16(ping.Azimuth[i]*100))
		putU16(o, beam[2:4], uint16(ping.Range[i]))
		beam[4] = byte(ping.Amplitude[i])
		beam[5] = ping.Quality[i]
		putU16(o, beam[6:8], ping.Window[i])
		out = append(out, beam...)
	}
	return out, nil
}

const (
	rawBeam2HeaderSize = 26
	sectorSize2        = 8
)

// EncodeRawBeam2 is the inverse of decode.DecodeRawBeam2.
func EncodeRawBeam2(o emgsf.ByteOrder, s *emgsf.Store, head int) ([]byte, error) {
	ping := s.Ping(head)

	b := make([]byte, rawBeam2HeaderSize)
	b[16] = byte(len(ping.Sectors))
	putU16(o, b[20:22], uint16(len(ping.Azimuth)))

	out := b
	for _, sec := range ping.Sectors {
		sb := make([]byte, sectorSize2)
		putI16(o, sb[0:2], int16(sec.TiltAngle*100))
		putU16(o, sb[2:4], uint16(sec.Heading*100))
		putI16(o, sb[4:6], int16(sec.Roll*100))
		putI16(o, sb[6:8], int16(sec.Pitch*100))
		out = append(out, sb...)
	}
	for i := range ping.Azimuth {
		beam := make([]byte, 8)
		putI16(o, beam[0:2], int16(ping.Azimuth[i]*100))
		putU16(o, beam[2:4], uint16(ping.Range[i]))
		beam[4] = byte(ping.Amplitude[i])
		beam[5] = ping.Quality[i]
		putU16(o, beam[6:8], ping.Window[i])
		out = append(out, beam...)
	}
	return out, nil
}

const (
	rawBeam3HeaderSize = 28
	sectorSize3        = 16
)

// EncodeRawBeam3 is the inverse of decode.DecodeRawBeam3.
func EncodeRawBeam3(o emgsf.ByteOrder, s *emgsf.Store, head int) ([]byte, error) {
	ping := s.Ping(head)

	b := make([]byte, rawBeam3HeaderSize)
	b[16] = byte(len(ping.Sectors))
	putU16(o, b[20:22], uint16(len(ping.Azimuth)))

	out := b
	for _, sec := range ping.Sectors {
		sb := make([]byte, sectorSize3)
		putI16(o, sb[0:2], int16(sec.TiltAngle*100))
		putU16(o, sb[2:4], uint16(sec.Focus*10))
		putU32(o, sb[4:8], uint32(sec.SignalLength*1000000))
		putU32(o, sb[8:12], uint32(sec.CenterFreq))
		putU16(o, sb[12:14], uint16(sec.Bandwidth/10))
		sb[14] = sec.Waveform
		sb[15] = sec.SectorID
		out = append(out, sb...)
	}
	for i := range ping.Azimuth {
		beam := make([]byte, 12)
		putI16(o, beam[0:2], int16(ping.Azimuth[i]*100))
		putU16(o, beam[2:4], uint16(ping.Range[i]))
		beam[4] = ping.Quality[i]
		beam[5] = byte(ping.Amplitude[i])
		putU16(o, beam[6:8], ping.Window[i])
		putU16(o, beam[8:10], ping.BeamNumber[i])
		out = append(out, beam...)
	}
	return out, nil
}
