package decode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterDecoder(emgsf.DatagramPosition, DecodePosition)
}

const positionHeaderSize = 30

// DecodePosition decodes the Position datagram: a 30-byte header (lat,
// lon, quality, speed, course, heading, system, input_len) followed by the
// original ASCII navigation sentence (§4.4).
func DecodePosition(o emgsf.ByteOrder, body []byte, s *emgsf.Store, head int) error {
	if len(body) < positionHeaderSize {
		return emgsf.ErrEof
	}

	date := getU32(o, body[0:4])
	msec := getU32(o, body[4:8])
	lat := float64(getI32(o, body[8:12])) / 20000000.0
	lon := float64(getI32(o, body[12:16])) / 10000000.0
	quality := float32(getU16(o, body[16:18])) / 100
	course := float32(getU16(o, body[18:20])) / 100
	speed := float32(getU16(o, body[20:22])) / 100
	heading := float32(getU16(o, body[22:24])) / 100
	inputLen := int(getU16(o, body[26:28]))
	system := body[28]

	rec := &emgsf.PositionRecord{
		Timestamp: emgsf.Timestamp{Date: date, Msec: msec},
		Latitude:  lat,
		Longitude: lon,
		Quality:   quality,
		Speed:     speed,
		Course:    course,
		Heading:   heading,
		System:    system,
		Kind:      navKind(system),
	}

	start := positionHeaderSize
	end := start + inputLen
	if end > len(body) {
		end = len(body)
	}
	rec.InputMessage = string(body[start:end])

	s.Position = rec
	return nil
}

// navKind decodes the active flag (bit 7) and channel bits (0..1) of the
// system byte into the matching RecordKind variant (§3).
func navKind(system byte) emgsf.RecordKind {
	if system&0x80 == 0 {
		return emgsf.KindNav
	}
	switch system & 0x03 {
	case 1:
		return emgsf.KindNav1
	case 2:
		return emgsf.KindNav2
	case 3:
		return emgsf.KindNav3
	default:
		return emgsf.KindNav
	}
}
