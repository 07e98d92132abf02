package archive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oceansensing/emgsf"
)

func TestFlattenAttitudeResolvesAbsoluteTimestamps(t *testing.T) {
	base := time.Date(2023, time.June, 1, 12, 0, 0, 0, time.UTC)
	records := []*emgsf.AttitudeRecord{
		{
			Base: emgsf.FromTime(base),
			Samples: []emgsf.AttitudeSample{
				{OffsetMsec: 0, Roll: 1, Pitch: 2, Heave: 0.1, Heading: 10},
				{OffsetMsec: 500, Roll: 1.5, Pitch: 2.5, Heave: 0.2, Heading: 11},
			},
		},
		{
			Base: emgsf.FromTime(base.Add(time.Second)),
			Samples: []emgsf.AttitudeSample{
				{OffsetMsec: 0, Roll: 2, Pitch: 3, Heave: 0.3, Heading: 12},
			},
		},
	}

	out := FlattenAttitude(records)

	require.Len(t, out.Timestamp, 3)
	require.Len(t, out.Roll, 3)
	require.Equal(t, base, out.Timestamp[0])
	require.Equal(t, base.Add(500*time.Millisecond), out.Timestamp[1])
	require.Equal(t, base.Add(time.Second), out.Timestamp[2])

	require.InDelta(t, float32(1), out.Roll[0], 1e-6)
	require.InDelta(t, float32(1.5), out.Roll[1], 1e-6)
	require.InDelta(t, float32(2), out.Roll[2], 1e-6)
	require.InDelta(t, float32(12), out.Heading[2], 1e-6)
}

func TestFlattenAttitudeEmptyInput(t *testing.T) {
	out := FlattenAttitude(nil)
	require.Empty(t, out.Timestamp)
	require.Empty(t, out.Roll)
}

func TestFlattenSVPConcatenatesEntriesWithProfileIndex(t *testing.T) {
	profiles := []*emgsf.SVPRecord{
		{
			Entries: []emgsf.SVPEntry{
				{Depth: 0, Speed: 1500},
				{Depth: 10, Speed: 1498},
			},
		},
		{
			Entries: []emgsf.SVPEntry{
				{Depth: 0, Speed: 1501},
			},
		},
	}

	out := FlattenSVP(profiles)

	require.Equal(t, []uint32{0, 0, 1}, out.ProfileIndex)
	require.Equal(t, []float32{0, 10, 0}, out.Depth)
	require.Equal(t, []float32{1500, 1498, 1501}, out.Speed)
}

func TestFlattenSVPSkipsEmptyProfiles(t *testing.T) {
	profiles := []*emgsf.SVPRecord{
		{Entries: nil},
		{Entries: []emgsf.SVPEntry{{Depth: 5, Speed: 1500}}},
	}

	out := FlattenSVP(profiles)

	require.Equal(t, []uint32{1}, out.ProfileIndex)
	require.Equal(t, []float32{5}, out.Depth)
}

func TestFlattenPingsBuildsHeaderAndFlattenedSoundings(t *testing.T) {
	base := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	pings := []*emgsf.PingRecord{
		{
			Timestamp: emgsf.FromTime(base),
			Latitude:  -33.1,
			Longitude: 151.2,
			Heading:   45,
			NBeams:    2,
			Bath:       []float32{10, 11},
			BathAcross: []float32{-1, 1},
			BathAlong:  []float32{0.1, 0.2},
		},
		{
			Timestamp: emgsf.FromTime(base.Add(time.Second)),
			Latitude:  -33.2,
			Longitude: 151.3,
			Heading:   46,
			NBeams:    1,
			Bath:       []float32{12},
			BathAcross: []float32{0},
			BathAlong:  []float32{0.3},
		},
	}

	hdr, snd := FlattenPings(pings)

	require.Len(t, hdr.Timestamp, 2)
	require.Equal(t, []uint32{2, 1}, hdr.NBeams)
	require.InDelta(t, -33.1, hdr.Latitude[0], 1e-6)
	require.InDelta(t, 46, hdr.Heading[1], 1e-6)

	require.Equal(t, []uint32{0, 0, 1}, snd.PingIndex)
	require.Equal(t, []float32{10, 11, 12}, snd.Bath)
	require.Equal(t, []float32{-1, 1, 0}, snd.BathAcross)
	require.Equal(t, []float32{0.1, 0.2, 0.3}, snd.BathAlong)

	require.Len(t, snd.Lon, 3)
	require.Len(t, snd.Lat, 3)
	// first ping's beams stay close to its own fix; heading/offsets bend
	// lon/lat away from the raw ping position by less than a hundredth of a
	// degree for metre-scale across/along offsets.
	require.InDelta(t, 151.2, snd.Lon[0], 0.01)
	require.InDelta(t, -33.1, snd.Lat[0], 0.01)
}

func TestFlattenPingsEmptyInput(t *testing.T) {
	hdr, snd := FlattenPings(nil)
	require.Empty(t, hdr.Timestamp)
	require.Empty(t, snd.Bath)
	require.Empty(t, snd.Lon)
	require.Empty(t, snd.Lat)
}

func TestTileSizeForClampsToRowCountAndCeiling(t *testing.T) {
	require.Equal(t, uint64(1), tileSizeFor(0))
	require.Equal(t, uint64(500), tileSizeFor(500))
	require.Equal(t, uint64(10000), tileSizeFor(50000))
}
