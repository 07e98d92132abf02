package decode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterDecoder(emgsf.DatagramBath, DecodeBath)
	emgsf.RegisterDecoder(emgsf.DatagramBathExt, DecodeBathExtended)
}

const bathHeaderSize = 24

// DecodeBath decodes the vendor-format bathymetry datagram (type 0x44): a
// 24-byte header (timestamp, ping count, serial, heading/attitude-at-ping,
// transducer depth, beam geometry basis) followed by n_beams 16-byte beam
// records (§4.4, §4.5). Per-beam depth sign follows SonarModel's convention
// (§3 design note): most EM models report unsigned depth, the EM3000
// family and EM2000 may report signed depth for upward-looking beams on a
// mounted vehicle.
func DecodeBath(o emgsf.ByteOrder, body []byte, s *emgsf.Store, head int) error {
	if len(body) < bathHeaderSize {
		return emgsf.ErrEof
	}

	ping := s.Ping(head)
	ping.Timestamp = emgsf.Timestamp{Date: getU32(o, body[0:4]), Msec: getU32(o, body[4:8])}
	ping.Count = getU16(o, body[8:10])
	ping.Serial = getU16(o, body[10:12])
	ping.SoundSpeed = float32(getU16(o, body[12:14])) / 10
	ping.TransducerDepth = float32(getU16(o, body[14:16])) / 100
	nBeamsMax := int(body[16])
	nBeams := int(body[17])
	ping.NBeamsMax = nBeamsMax
	ping.NBeams = nBeams
	ping.DepthOffsetMultiplier = int8(body[18])
	ping.Heading = float32(getU16(o, body[20:22])) / 100

	model := ping.SonarModel
	signed := model.SignedDepth()

	const beamSize = 16
	off := bathHeaderSize
	for i := 0; i < nBeams && off+beamSize <= len(body); i++ {
		var depth float32
		if signed {
			depth = float32(getI16(o, body[off:off+2])) / 100
		} else {
			depth = float32(getU16(o, body[off:off+2])) / 100
		}
		ping.Depth = append(ping.Depth, depth)
		ping.AcrossTrack = append(ping.AcrossTrack, float32(getI16(o, body[off+2:off+4]))/100)
		ping.AlongTrack = append(ping.AlongTrack, float32(getI16(o, body[off+4:off+6]))/100)
		ping.Window = append(ping.Window, getU16(o, body[off+6:off+8]))
		ping.Quality = append(ping.Quality, body[off+8])
		ping.Amplitude = append(ping.Amplitude, int8(body[off+9]))
		ping.BeamNumber = append(ping.BeamNumber, uint16(body[off+10]))
		off += beamSize
	}

	ping.ReadFlags["Bath"] = true
	return nil
}

const bathExtHeaderSize = 48

// DecodeBathExtended decodes the "MBA" extended bathymetry datagram (0xE1):
// the processed-depth, recomputed-geometry variant carrying per-beam flags
// and the sector/angle fields the geo subpackage recomposes from (§4.4, §4.7).
// This is the datagram that opens ping assembly (§4.5).
func DecodeBathExtended(o emgsf.ByteOrder, body []byte, s *emgsf.Store, head int) error {
	if len(body) < bathExtHeaderSize {
		return emgsf.ErrEof
	}

	ping := s.Ping(head)
	ping.Timestamp = emgsf.Timestamp{Date: getU32(o, body[0:4]), Msec: getU32(o, body[4:8])}
	ping.Count = getU16(o, body[8:10])
	ping.Serial = getU16(o, body[10:12])
	ping.Heading = float32(getU16(o, body[12:14])) / 100
	ping.SoundSpeed = float32(getU16(o, body[14:16])) / 10
	ping.TransducerDepth = float32(getI32(o, body[16:20])) / 20000
	nBeamsMax := int(getU16(o, body[20:22]))
	nBeams := int(getU16(o, body[22:24]))
	ping.NBeamsMax = nBeamsMax
	ping.NBeams = nBeams
	ping.SampleRate = float32(getU32(o, body[24:28]))
	ping.RangeResolution = float32(getU16(o, body[28:30])) / 1000
	ping.Roll = float32(getI16(o, body[30:32])) / 100
	ping.Pitch = float32(getI16(o, body[32:34])) / 100
	ping.Heave = float32(getI16(o, body[34:36])) / 100
	ping.SoundSpeed = float32(getU16(o, body[36:38])) / 10
	ping.Latitude = float64(getI32(o, body[38:42])) / 20000000.0
	ping.Longitude = float64(getI32(o, body[42:46])) / 10000000.0

	const beamSize = 16
	off := bathExtHeaderSize
	for i := 0; i < nBeams && off+beamSize <= len(body); i++ {
		ping.Depression = append(ping.Depression, float32(getI16(o, body[off:off+2]))/100)
		ping.Range = append(ping.Range, getU32(o, body[off+2:off+6]))
		ping.Quality = append(ping.Quality, body[off+6])
		ping.BeamFlags = append(ping.BeamFlags, body[off+7])
		ping.AcrossTrack = append(ping.AcrossTrack, float32(getI32(o, body[off+8:off+12]))/1000)
		ping.AlongTrack = append(ping.AlongTrack, float32(getI16(o, body[off+12:off+14]))/100)
		ping.BeamNumber = append(ping.BeamNumber, uint16(body[off+15]))
		off += beamSize
	}

	ping.ReadFlags["BathExt"] = true
	return nil
}
