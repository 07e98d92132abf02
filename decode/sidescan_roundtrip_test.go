package decode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oceansensing/emgsf"
	"github.com/oceansensing/emgsf/encode"
)

func TestSidescanRoundTrip(t *testing.T) {
	s := emgsf.NewStore()
	ping := s.Ping(0)
	ping.SSTimestamp = emgsf.Timestamp{Date: 20230101, Msec: 555}
	ping.NBeamsSS = 2
	ping.BeamIndex = []uint16{0, 1}
	ping.SortDirection = []int8{-1, 1}
	ping.BeamSamples = []uint16{3, 2}
	ping.StartSample = []uint16{0, 3}
	ping.RawSidescan = []int8{1, 2, 3, -4, -5}

	body, err := encode.EncodeSidescan(emgsf.BigEndian, s, 0)
	require.NoError(t, err)

	out := emgsf.NewStore()
	require.NoError(t, DecodeSidescan(emgsf.BigEndian, body, out, 0))

	outPing := out.Ping(0)
	require.Equal(t, 2, outPing.NBeamsSS)
	require.Equal(t, []uint16{0, 1}, outPing.BeamIndex)
	require.Equal(t, []int8{1, 2, 3, -4, -5}, outPing.RawSidescan)
	require.True(t, outPing.ReadFlags["Sidescan"])
}

func TestSidescanExtendedRoundTrip(t *testing.T) {
	s := emgsf.NewStore()
	ping := s.Ping(0)
	ping.SSTimestamp = emgsf.Timestamp{Date: 20230101, Msec: 556}
	ping.NBeamsSS = 1
	ping.NPixels = 4
	ping.BeamIndex = []uint16{0}
	ping.SortDirection = []int8{1}
	ping.BeamSamples = []uint16{4}
	ping.CenterSample = []uint16{2}
	ping.ProcessedSS[0] = 100
	ping.ProcessedSS[1] = -100
	ping.ProcessedSS[2] = 200
	ping.ProcessedSS[3] = -200
	ping.SSAlongTrack[0] = 10
	ping.SSAlongTrack[1] = 20

	body, err := encode.EncodeSidescanExtended(emgsf.BigEndian, s, 0)
	require.NoError(t, err)

	out := emgsf.NewStore()
	require.NoError(t, DecodeSidescanExtended(emgsf.BigEndian, body, out, 0))

	outPing := out.Ping(0)
	require.Equal(t, 4, outPing.NPixels)
	require.Equal(t, int16(100), outPing.ProcessedSS[0])
	require.Equal(t, int16(-200), outPing.ProcessedSS[3])
	require.Equal(t, int16(20), outPing.SSAlongTrack[1])
	require.True(t, outPing.ReadFlags["SidescanExt"])
}
