package decode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterDecoder(emgsf.DatagramAttitude, DecodeAttitude)
	emgsf.RegisterDecoder(emgsf.DatagramHeading, DecodeHeading)
	emgsf.RegisterDecoder(emgsf.DatagramSSV, DecodeSSV)
	emgsf.RegisterDecoder(emgsf.DatagramTilt, DecodeTilt)
}

const (
	samplesHeaderSize = 14
	attitudeSliceSize = 12
	headingSliceSize  = 4
	ssvSliceSize      = 4
	tiltSliceSize     = 4
)

type samplesHeader struct {
	Date    uint32
	Msec    uint32
	Count   uint16
	Serial  uint16
	NData   uint16
}

func decodeSamplesHeader(o emgsf.ByteOrder, body []byte) samplesHeader {
	return samplesHeader{
		Date:   getU32(o, body[0:4]),
		Msec:   getU32(o, body[4:8]),
		Count:  getU16(o, body[8:10]),
		Serial: getU16(o, body[10:12]),
		NData:  getU16(o, body[12:14]),
	}
}

// DecodeAttitude decodes the Attitude datagram: fixed header + n_samples *
// 12-byte slices + a status/padding tail (§4.4). n_samples is clamped to
// the compile-time maximum; any remaining bytes are still consumed from
// body by the caller's record_size-based framing, so no extra seek is
// needed here (§9 "silently clamps").
func DecodeAttitude(o emgsf.ByteOrder, body []byte, s *emgsf.Store, head int) error {
	if len(body) < samplesHeaderSize {
		return emgsf.ErrEof
	}
	hdr := decodeSamplesHeader(o, body)
	n := int(hdr.NData)
	if n > emgsf.MaxAttitudeSamples {
		n = emgsf.MaxAttitudeSamples
	}

	rec := &emgsf.AttitudeRecord{
		Base:    emgsf.Timestamp{Date: hdr.Date, Msec: hdr.Msec},
		Count:   hdr.Count,
		Serial:  hdr.Serial,
		Samples: make([]emgsf.AttitudeSample, 0, n),
	}

	off := samplesHeaderSize
	for i := 0; i < n && off+attitudeSliceSize <= len(body); i++ {
		rec.Samples = append(rec.Samples, emgsf.AttitudeSample{
			OffsetMsec: getI16(o, body[off:off+2]),
			Roll:       float32(getI16(o, body[off+2:off+4])) / 100,
			Pitch:      float32(getI16(o, body[off+4:off+6])) / 100,
			Heave:      float32(getI16(o, body[off+6:off+8])) / 100,
			Heading:    float32(getU16(o, body[off+8:off+10])) / 100,
		})
		off += attitudeSliceSize
	}
	if off < len(body) {
		rec.SensorStatus = body[len(body)-1]
	}

	s.Attitude = rec
	s.AttitudeCache.Add(rec)
	return nil
}

// DecodeHeading decodes the Heading datagram: fixed header + n_samples *
// 4-byte (offset, heading) slices.
func DecodeHeading(o emgsf.ByteOrder, body []byte, s *emgsf.Store, head int) error {
	if len(body) < samplesHeaderSize {
		return emgsf.ErrEof
	}
	hdr := decodeSamplesHeader(o, body)
	n := int(hdr.NData)
	if n > emgsf.MaxHeadingSamples {
		n = emgsf.MaxHeadingSamples
	}

	rec := &emgsf.HeadingRecord{
		Base:   emgsf.Timestamp{Date: hdr.Date, Msec: hdr.Msec},
		Count:  hdr.Count,
		Serial: hdr.Serial,
	}
	off := samplesHeaderSize
	for i := 0; i < n && off+headingSliceSize <= len(body); i++ {
		rec.Offsets = append(rec.Offsets, getI16(o, body[off:off+2]))
		rec.Values = append(rec.Values, float32(getU16(o, body[off+2:off+4]))/100)
		off += headingSliceSize
	}
	if off < len(body) {
		rec.Status = body[len(body)-1]
	}
	s.Heading = rec
	return nil
}

// DecodeSSV decodes the surface-sound-speed datagram.
func DecodeSSV(o emgsf.ByteOrder, body []byte, s *emgsf.Store, head int) error {
	if len(body) < samplesHeaderSize {
		return emgsf.ErrEof
	}
	hdr := decodeSamplesHeader(o, body)
	n := int(hdr.NData)
	if n > emgsf.MaxSSVSamples {
		n = emgsf.MaxSSVSamples
	}

	rec := &emgsf.SSVRecord{
		Base:   emgsf.Timestamp{Date: hdr.Date, Msec: hdr.Msec},
		Count:  hdr.Count,
		Serial: hdr.Serial,
	}
	off := samplesHeaderSize
	for i := 0; i < n && off+ssvSliceSize <= len(body); i++ {
		rec.Offsets = append(rec.Offsets, getI16(o, body[off:off+2]))
		rec.Values = append(rec.Values, float32(getU16(o, body[off+2:off+4]))/10)
		off += ssvSliceSize
	}
	s.SSV = rec
	return nil
}

// DecodeTilt decodes the mechanical transducer tilt datagram.
func DecodeTilt(o emgsf.ByteOrder, body []byte, s *emgsf.Store, head int) error {
	if len(body) < samplesHeaderSize {
		return emgsf.ErrEof
	}
	hdr := decodeSamplesHeader(o, body)
	n := int(hdr.NData)
	if n > emgsf.MaxTiltSamples {
		n = emgsf.MaxTiltSamples
	}

	rec := &emgsf.TiltRecord{
		Base:   emgsf.Timestamp{Date: hdr.Date, Msec: hdr.Msec},
		Count:  hdr.Count,
		Serial: hdr.Serial,
	}
	off := samplesHeaderSize
	for i := 0; i < n && off+tiltSliceSize <= len(body); i++ {
		rec.Offsets = append(rec.Offsets, getI16(o, body[off:off+2]))
		rec.Values = append(rec.Values, float32(getI16(o, body[off+2:off+4]))/100)
		off += tiltSliceSize
	}
	s.Tilt = rec
	return nil
}
