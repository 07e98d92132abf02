package decode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oceansensing/emgsf"
	"github.com/oceansensing/emgsf/encode"
)

func TestClockRoundTrip(t *testing.T) {
	s := emgsf.NewStore()
	s.Clock = &emgsf.ClockRecord{
		Timestamp:         emgsf.Timestamp{Date: 20230101, Msec: 12345},
		Count:             7,
		Serial:            100,
		ExternalTimestamp: emgsf.Timestamp{Date: 20230101, Msec: 12340},
		PPSInUse:          true,
	}

	body, err := encode.EncodeClock(emgsf.BigEndian, s, 0)
	require.NoError(t, err)

	out := emgsf.NewStore()
	require.NoError(t, DecodeClock(emgsf.BigEndian, body, out, 0))

	require.Equal(t, s.Clock.Timestamp, out.Clock.Timestamp)
	require.Equal(t, s.Clock.Count, out.Clock.Count)
	require.Equal(t, s.Clock.Serial, out.Clock.Serial)
	require.Equal(t, s.Clock.ExternalTimestamp, out.Clock.ExternalTimestamp)
	require.True(t, out.Clock.PPSInUse)
}

func TestTideRoundTrip(t *testing.T) {
	s := emgsf.NewStore()
	s.Tide = &emgsf.TideRecord{
		Timestamp:  emgsf.Timestamp{Date: 20230101, Msec: 500},
		Count:      1,
		Serial:     2,
		TideOffset: 1.23,
	}

	body, err := encode.EncodeTide(emgsf.LittleEndian, s, 0)
	require.NoError(t, err)

	out := emgsf.NewStore()
	require.NoError(t, DecodeTide(emgsf.LittleEndian, body, out, 0))
	require.InDelta(t, 1.23, out.Tide.TideOffset, 0.01)
}

func TestHeightRoundTrip(t *testing.T) {
	s := emgsf.NewStore()
	s.Height = &emgsf.HeightRecord{
		Timestamp:  emgsf.Timestamp{Date: 20230101, Msec: 500},
		Count:      3,
		Serial:     4,
		Height:     -2.5,
		HeightType: 1,
	}

	body, err := encode.EncodeHeight(emgsf.BigEndian, s, 0)
	require.NoError(t, err)

	out := emgsf.NewStore()
	require.NoError(t, DecodeHeight(emgsf.BigEndian, body, out, 0))
	require.InDelta(t, -2.5, out.Height.Height, 0.01)
	require.Equal(t, uint8(1), out.Height.HeightType)
}

func TestPositionRoundTrip(t *testing.T) {
	s := emgsf.NewStore()
	s.Position = &emgsf.PositionRecord{
		Timestamp:    emgsf.Timestamp{Date: 20230101, Msec: 500},
		Latitude:     -33.5,
		Longitude:    151.2,
		Quality:      1.5,
		Speed:        5.2,
		Course:       90.1,
		Heading:      91.2,
		System:       0x81,
		InputMessage: "$GPGGA,test*00",
	}

	body, err := encode.EncodePosition(emgsf.BigEndian, s, 0)
	require.NoError(t, err)

	out := emgsf.NewStore()
	require.NoError(t, DecodePosition(emgsf.BigEndian, body, out, 0))
	require.InDelta(t, -33.5, out.Position.Latitude, 1e-6)
	require.InDelta(t, 151.2, out.Position.Longitude, 1e-6)
	require.Equal(t, "$GPGGA,test*00", out.Position.InputMessage)
	require.Equal(t, emgsf.KindNav1, out.Position.Kind)
}

func TestBathRoundTrip(t *testing.T) {
	s := emgsf.NewStore()
	ping := s.Ping(0)
	ping.Timestamp = emgsf.Timestamp{Date: 20230101, Msec: 999}
	ping.Count = 42
	ping.Serial = 3020
	ping.SonarModel = emgsf.ModelEM3002
	ping.SoundSpeed = 1500
	ping.TransducerDepth = 5.5
	ping.NBeamsMax = 2
	ping.NBeams = 2
	ping.Heading = 123.45
	ping.Depth = []float32{10.5, -2.25}
	ping.AcrossTrack = []float32{1.1, -1.1}
	ping.AlongTrack = []float32{0.5, 0.25}
	ping.Window = []uint16{10, 20}
	ping.Quality = []uint8{1, 2}
	ping.Amplitude = []int8{5, -5}
	ping.BeamNumber = []uint16{0, 1}

	body, err := encode.EncodeBath(emgsf.BigEndian, s, 0)
	require.NoError(t, err)

	out := emgsf.NewStore()
	outPing := out.Ping(0)
	outPing.SonarModel = emgsf.ModelEM3002
	require.NoError(t, DecodeBath(emgsf.BigEndian, body, out, 0))

	require.Equal(t, ping.Count, outPing.Count)
	require.InDelta(t, 10.5, outPing.Depth[0], 0.01)
	require.InDelta(t, -2.25, outPing.Depth[1], 0.01)
	require.Equal(t, ping.BeamNumber, outPing.BeamNumber)
}

func TestBathExtendedRoundTrip(t *testing.T) {
	s := emgsf.NewStore()
	ping := s.Ping(0)
	ping.Timestamp = emgsf.Timestamp{Date: 20230101, Msec: 1000}
	ping.Count = 7
	ping.Serial = 101
	ping.Heading = 45.5
	ping.SoundSpeed = 1502.3
	ping.TransducerDepth = 3.25
	ping.NBeamsMax = 1
	ping.NBeams = 1
	ping.SampleRate = 20000
	ping.RangeResolution = 0.015
	ping.Roll = 1.1
	ping.Pitch = -0.8
	ping.Heave = 0.05
	ping.Latitude = -33.8
	ping.Longitude = 151.1
	ping.Depression = []float32{75.0}
	ping.Range = []uint32{1200}
	ping.Quality = []uint8{9}
	ping.BeamFlags = []uint8{0}
	ping.AcrossTrack = []float32{5.5}
	ping.AlongTrack = []float32{-1.2}
	ping.BeamNumber = []uint16{3}

	body, err := encode.EncodeBathExtended(emgsf.BigEndian, s, 0)
	require.NoError(t, err)

	out := emgsf.NewStore()
	require.NoError(t, DecodeBathExtended(emgsf.BigEndian, body, out, 0))

	outPing := out.Ping(0)
	require.Equal(t, ping.Count, outPing.Count)
	require.InDelta(t, 45.5, outPing.Heading, 0.01)
	require.InDelta(t, 3.25, outPing.TransducerDepth, 0.01)
	require.InDelta(t, -33.8, outPing.Latitude, 1e-4)
	require.InDelta(t, 151.1, outPing.Longitude, 1e-4)
	require.InDelta(t, 75.0, outPing.Depression[0], 0.01)
	require.Equal(t, []uint32{1200}, outPing.Range)
	require.True(t, outPing.ReadFlags["BathExt"])
}
