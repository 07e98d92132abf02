package decode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterDecoder(emgsf.DatagramSidescan, DecodeSidescan)
	emgsf.RegisterDecoder(emgsf.DatagramSidescanExt, DecodeSidescanExtended)
}

const sidescanHeaderSize = 28

// DecodeSidescan decodes the vendor-format sidescan datagram (0x53): a
// header plus, per beam, a (start_sample, n_samples) indirection into a
// shared raw-amplitude pool (§4.4, §4.5).
func DecodeSidescan(o emgsf.ByteOrder, body []byte, s *emgsf.Store, head int) error {
	if len(body) < sidescanHeaderSize {
		return emgsf.ErrEof
	}
	ping := s.Ping(head)
	ping.SSTimestamp = emgsf.Timestamp{Date: getU32(o, body[0:4]), Msec: getU32(o, body[4:8])}
	nBeams := int(getU16(o, body[22:24]))
	ping.NBeamsSS = nBeams

	const beamSize = 6
	off := sidescanHeaderSize
	total := 0
	for i := 0; i < nBeams && off+beamSize <= len(body); i++ {
		ping.BeamIndex = append(ping.BeamIndex, uint16(body[off]))
		ping.SortDirection = append(ping.SortDirection, int8(body[off+1]))
		n := getU16(o, body[off+2:off+4])
		ping.BeamSamples = append(ping.BeamSamples, n)
		ping.StartSample = append(ping.StartSample, getU16(o, body[off+4:off+6]))
		total += int(n)
		off += beamSize
	}

	ping.NPixels = total
	for i := 0; i < total && off+i < len(body); i++ {
		ping.RawSidescan = append(ping.RawSidescan, int8(body[off+i]))
	}
	ping.ReadFlags["Sidescan"] = true
	return nil
}

const sidescanExtHeaderSize = 32

// DecodeSidescanExtended decodes the extended sidescan datagram (0xE2): the
// processed, fixed-width-per-ping pixel variant that pairs with
// BathExtended in ping assembly (§4.5), and carries a center_sample
// indirection and along-track position per pixel column.
func DecodeSidescanExtended(o emgsf.ByteOrder, body []byte, s *emgsf.Store, head int) error {
	if len(body) < sidescanExtHeaderSize {
		return emgsf.ErrEof
	}
	ping := s.Ping(head)
	ping.SSTimestamp = emgsf.Timestamp{Date: getU32(o, body[0:4]), Msec: getU32(o, body[4:8])}
	nBeams := int(getU16(o, body[22:24]))
	nPixels := int(getU16(o, body[24:26]))
	ping.NBeamsSS = nBeams
	ping.NPixels = nPixels
	if ping.NPixels > emgsf.MaxPixels {
		ping.NPixels = emgsf.MaxPixels
	}

	const beamSize = 8
	off := sidescanExtHeaderSize
	for i := 0; i < nBeams && off+beamSize <= len(body); i++ {
		ping.BeamIndex = append(ping.BeamIndex, uint16(body[off]))
		ping.SortDirection = append(ping.SortDirection, int8(body[off+1]))
		ping.BeamSamples = append(ping.BeamSamples, getU16(o, body[off+2:off+4]))
		ping.CenterSample = append(ping.CenterSample, getU16(o, body[off+4:off+6]))
		off += beamSize
	}

	for i := 0; i < ping.NPixels && off+2*i+1 < len(body); i++ {
		ping.ProcessedSS[i] = getI16(o, body[off+2*i:off+2*i+2])
	}
	trackOff := off + 2*ping.NPixels
	for i := 0; i < ping.NPixels && trackOff+2*i+1 < len(body); i++ {
		ping.SSAlongTrack[i] = getI16(o, body[trackOff+2*i:trackOff+2*i+2])
	}

	ping.ReadFlags["SidescanExt"] = true
	return nil
}
