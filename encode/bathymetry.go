package encode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterEncoder(emgsf.DatagramBath, EncodeBath)
	emgsf.RegisterEncoder(emgsf.DatagramBathExt, EncodeBathExtended)
}

// EncodeBath is the inverse of decode.DecodeBath.
func EncodeBath(o emgsf.ByteOrder, s *emgsf.Store, head int) ([]byte, error) {
	ping := s.Ping(head)

	b := make([]byte, bathHeaderSize)
	putU32(o, b[0:4], ping.Timestamp.Date)
	putU32(o, b[4:8], ping.Timestamp.Msec)
	putU16(o, b[8:10], ping.Count)
	putU16(o, b[10:12], ping.Serial)
	putU16(o, b[12:14], uint16(ping.SoundSpeed*10))
	putU16(o, b[14:16], uint16(ping.TransducerDepth*100))
	b[16] = byte(ping.NBeamsMax)
	b[17] = byte(ping.NBeams)
	b[18] = byte(ping.DepthOffsetMultiplier)
	putU16(o, b[20:22], uint16(ping.Heading*100))

	signed := ping.SonarModel.SignedDepth()

	out := b
	for i := range ping.Depth {
		beam := make([]byte, 16)
		if signed {
			putI16(o, beam[0:2], int16(ping.Depth[i]*100))
		} else {
			putU16(o, beam[0:2], uint16(ping.Depth[i]*100))
		}
		putI16(o, beam[2:4], int16(ping.AcrossTrack[i]*100))
		putI16(o, beam[4:6], int16(ping.AlongTrack[i]*100))
		putU16(o, beam[6:8], ping.Window[i])
		beam[8] = ping.Quality[i]
		beam[9] = byte(ping.Amplitude[i])
		beam[10] = byte(ping.BeamNumber[i])
		out = append(out, beam...)
	}
	return out, nil
}

const bathHeaderSize = 24

// EncodeBathExtended is the inverse of decode.DecodeBathExtended.
func EncodeBathExtended(o emgsf.ByteOrder, s *emgsf.Store, head int) ([]byte, error) {
	ping := s.Ping(head)

	b := make([]byte, bathExtHeaderSize)
	putU32(o, b[0:4], ping.Timestamp.Date)
	putU32(o, b[4:8], ping.Timestamp.Msec)
	putU16(o, b[8:10], ping.Count)
	putU16(o, b[10:12], ping.Serial)
	putU16(o, b[12:14], uint16(ping.Heading*100))
	putU16(o, b[14:16], uint16(ping.SoundSpeed*10))
	putI32(o, b[16:20], int32(ping.TransducerDepth*20000))
	putU16(o, b[20:22], uint16(ping.NBeamsMax))
	putU16(o, b[22:24], uint16(ping.NBeams))
	putU32(o, b[24:28], uint32(ping.SampleRate))
	putU16(o, b[28:30], uint16(ping.RangeResolution*1000))
	putI16(o, b[30:32], int16(ping.Roll*100))
	putI16(o, b[32:34], int16(ping.Pitch*100))
	putI16(o, b[34:36], int16(ping.Heave*100))
	putU16(o, b[36:38], uint16(ping.SoundSpeed*10))
	putI32(o, b[38:42], int32(ping.Latitude*20000000.0))
	putI32(o, b[42:46], int32(ping.Longitude*10000000.0))

	out := b
	for i := range ping.Depression {
		beam := make([]byte, 16)
		putI16(o, beam[0:2], int16(ping.Depression[i]*100))
		putU32(o, beam[2:6], ping.Range[i])
		beam[6] = ping.Quality[i]
		beam[7] = ping.BeamFlags[i]
		putI32(o, beam[8:12], int32(ping.AcrossTrack[i]*1000))
		putI16(o, beam[12:14], int16(ping.AlongTrack[i]*100))
		beam[15] = byte(ping.BeamNumber[i])
		out = append(out, beam...)
	}
	return out, nil
}

const bathExtHeaderSize = 48
