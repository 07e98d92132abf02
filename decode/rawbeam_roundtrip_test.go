package decode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oceansensing/emgsf"
	"github.com/oceansensing/emgsf/encode"
)

func TestRawBeam1RoundTrip(t *testing.T) {
	s := emgsf.NewStore()
	ping := s.Ping(0)
	ping.Azimuth = []float32{-10.5, 0, 10.5}
	ping.Range = []uint32{100, 200, 300}
	ping.Amplitude = []int8{1, -1, 2}
	ping.Quality = []uint8{10, 20, 30}
	ping.Window = []uint16{5, 6, 7}

	body, err := encode.EncodeRawBeam1(emgsf.BigEndian, s, 0)
	require.NoError(t, err)

	out := emgsf.NewStore()
	require.NoError(t, DecodeRawBeam1(emgsf.BigEndian, body, out, 0))

	outPing := out.Ping(0)
	require.InDelta(t, -10.5, outPing.Azimuth[0], 0.01)
	require.Equal(t, []uint32{100, 200, 300}, outPing.Range)
	require.True(t, outPing.ReadFlags["RawBeam"])
	require.Equal(t, uint8(1), outPing.RawBeamVariant)
}

func TestRawBeam2RoundTripWithSectors(t *testing.T) {
	s := emgsf.NewStore()
	ping := s.Ping(0)
	ping.Sectors = []emgsf.TxSector{
		{TiltAngle: 1.5, Heading: 90.25, Roll: -0.5, Pitch: 0.25},
	}
	ping.Azimuth = []float32{5.0}
	ping.Range = []uint32{150}
	ping.Amplitude = []int8{3}
	ping.Quality = []uint8{15}
	ping.Window = []uint16{8}

	body, err := encode.EncodeRawBeam2(emgsf.LittleEndian, s, 0)
	require.NoError(t, err)

	out := emgsf.NewStore()
	require.NoError(t, DecodeRawBeam2(emgsf.LittleEndian, body, out, 0))

	outPing := out.Ping(0)
	require.Len(t, outPing.Sectors, 1)
	require.InDelta(t, 90.25, outPing.Sectors[0].Heading, 0.01)
	require.Equal(t, uint8(2), outPing.RawBeamVariant)
}

func TestRawBeam3RoundTripWithFullSectors(t *testing.T) {
	s := emgsf.NewStore()
	ping := s.Ping(0)
	ping.Sectors = []emgsf.TxSector{
		{TiltAngle: -2.0, Focus: 50.5, SignalLength: 0.002, CenterFreq: 300000, Bandwidth: 2000, Waveform: 1, SectorID: 0},
	}
	ping.Azimuth = []float32{3.0}
	ping.Range = []uint32{250}
	ping.Quality = []uint8{25}
	ping.Amplitude = []int8{4}
	ping.Window = []uint16{9}
	ping.BeamNumber = []uint16{42}

	body, err := encode.EncodeRawBeam3(emgsf.BigEndian, s, 0)
	require.NoError(t, err)

	out := emgsf.NewStore()
	require.NoError(t, DecodeRawBeam3(emgsf.BigEndian, body, out, 0))

	outPing := out.Ping(0)
	require.Len(t, outPing.Sectors, 1)
	require.InDelta(t, 300000, outPing.Sectors[0].CenterFreq, 1)
	require.Equal(t, []uint16{42}, outPing.BeamNumber)
	require.Equal(t, uint8(3), outPing.RawBeamVariant)
}
