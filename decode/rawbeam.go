package decode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterDecoder(emgsf.DatagramRawBeam, DecodeRawBeam1)
	emgsf.RegisterDecoder(emgsf.DatagramRawBeam2, DecodeRawBeam2)
	emgsf.RegisterDecoder(emgsf.DatagramRawBeam3, DecodeRawBeam3)
}

const rawBeamHeaderSize = 24

// DecodeRawBeam1 decodes the original (v1) raw range/angle datagram: no
// per-sector transmit structures, just a flat per-beam amplitude/angle/
// range/window array contributing to the in-progress ping (§4.4, §4.5).
func DecodeRawBeam1(o emgsf.ByteOrder, body []byte, s *emgsf.Store, head int) error {
	if len(body) < rawBeamHeaderSize {
		return emgsf.ErrEof
	}
	ping := s.Ping(head)
	nBeams := int(getU16(o, body[18:20]))

	const beamSize = 8
	off := rawBeamHeaderSize
	for i := 0; i < nBeams && off+beamSize <= len(body); i++ {
		ping.Azimuth = append(ping.Azimuth, float32(getI16(o, body[off:off+2]))/100)
		ping.Range = append(ping.Range, uint32(getU16(o, body[off+2:off+4])))
		ping.Amplitude = append(ping.Amplitude, int8(body[off+4]))
		ping.Quality = append(ping.Quality, body[off+5])
		ping.Window = append(ping.Window, getU16(o, body[off+6:off+8]))
		off += beamSize
	}
	ping.ReadFlags["RawBeam"] = true
	ping.RawBeamVariant = 1
	return nil
}

const (
	rawBeam2HeaderSize = 26
	sectorSize2        = 8
)

// DecodeRawBeam2 decodes the v2 raw range/angle datagram, restoring the
// per-sector attitude-at-transmit sample (Heading/Roll/Pitch on TxSector)
// the distilled spec's data model omits (SPEC_FULL.md §3). The 8-byte v2
// sector carries no heave, so TxSector.Heave stays zero.
func DecodeRawBeam2(o emgsf.ByteOrder, body []byte, s *emgsf.Store, head int) error {
	if len(body) < rawBeam2HeaderSize {
		return emgsf.ErrEof
	}
	ping := s.Ping(head)
	nSectors := int(body[16])
	nBeams := int(getU16(o, body[20:22]))

	off := rawBeam2HeaderSize
	for i := 0; i < nSectors && off+sectorSize2 <= len(body); i++ {
		ping.Sectors = append(ping.Sectors, emgsf.TxSector{
			TiltAngle:    float32(getI16(o, body[off:off+2])) / 100,
			Heading:      float32(getU16(o, body[off+2:off+4])) / 100,
			Roll:         float32(getI16(o, body[off+4:off+6])) / 100,
			Pitch:        float32(getI16(o, body[off+6:off+8])) / 100,
			SectorID:     uint8(i),
		})
		off += sectorSize2
	}

	const beamSize = 8
	for i := 0; i < nBeams && off+beamSize <= len(body); i++ {
		ping.Azimuth = append(ping.Azimuth, float32(getI16(o, body[off:off+2]))/100)
		ping.Range = append(ping.Range, uint32(getU16(o, body[off+2:off+4])))
		ping.Amplitude = append(ping.Amplitude, int8(body[off+4]))
		ping.Quality = append(ping.Quality, body[off+5])
		ping.Window = append(ping.Window, getU16(o, body[off+6:off+8]))
		off += beamSize
	}
	ping.ReadFlags["RawBeam"] = true
	ping.RawBeamVariant = 2
	return nil
}

const (
	rawBeam3HeaderSize = 28
	sectorSize3        = 16
)

// DecodeRawBeam3 decodes the v3 raw range/angle datagram: full per-sector
// transmit parameters (focus, signal length, center frequency, bandwidth,
// waveform) plus the per-beam array, the highest-detail raw range/angle
// variant (§4.4, §4.5).
func DecodeRawBeam3(o emgsf.ByteOrder, body []byte, s *emgsf.Store, head int) error {
	if len(body) < rawBeam3HeaderSize {
		return emgsf.ErrEof
	}
	ping := s.Ping(head)
	nSectors := int(body[16])
	nBeams := int(getU16(o, body[20:22]))

	off := rawBeam3HeaderSize
	for i := 0; i < nSectors && off+sectorSize3 <= len(body); i++ {
		ping.Sectors = append(ping.Sectors, emgsf.TxSector{
			TiltAngle:    float32(getI16(o, body[off:off+2])) / 100,
			Focus:        float32(getU16(o, body[off+2:off+4])) / 10,
			SignalLength: float32(getU32(o, body[off+4:off+8])) / 1000000,
			CenterFreq:   float32(getU32(o, body[off+8:off+12])),
			Bandwidth:    float32(getU16(o, body[off+12:off+14])) * 10,
			Waveform:     body[off+14],
			SectorID:     body[off+15],
		})
		off += sectorSize3
	}

	const beamSize = 12
	for i := 0; i < nBeams && off+beamSize <= len(body); i++ {
		ping.Azimuth = append(ping.Azimuth, float32(getI16(o, body[off:off+2]))/100)
		ping.Range = append(ping.Range, uint32(getU16(o, body[off+2:off+4])))
		ping.Quality = append(ping.Quality, body[off+4])
		ping.Amplitude = append(ping.Amplitude, int8(body[off+5]))
		ping.Window = append(ping.Window, getU16(o, body[off+6:off+8]))
		ping.BeamNumber = append(ping.BeamNumber, getU16(o, body[off+8:off+10]))
		off += beamSize
	}
	ping.ReadFlags["RawBeam"] = true
	ping.RawBeamVariant = 3
	return nil
}
