package archive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oceansensing/emgsf/imagenex"
)

func TestParsePingTimestampParsesDateAndTime(t *testing.T) {
	h := imagenex.Header{Date: "15-JUN-2023", Time: "14:05:09"}
	ts := parsePingTimestamp(h)
	require.Equal(t, time.Date(2023, time.June, 15, 14, 5, 9, 0, time.UTC), ts)
}

func TestParsePingTimestampZeroOnBadDate(t *testing.T) {
	h := imagenex.Header{Date: "not-a-date", Time: "14:05:09"}
	ts := parsePingTimestamp(h)
	require.True(t, ts.IsZero())
}

func TestFlattenPingsBuildsHeaderAndBeamTables(t *testing.T) {
	pings := []*imagenex.Ping{
		{
			Header: imagenex.Header{
				Date: "01-JAN-2023", Time: "00:00:00",
				Latitude: -33.5, Longitude: 151.2, Heading: 90,
				NumBeams: 2, PingNumber: 7,
			},
			Range:     []uint16{100, 110},
			Intensity: []uint16{5, 6},
		},
		{
			Header: imagenex.Header{
				Date: "01-JAN-2023", Time: "00:00:01",
				Latitude: -33.6, Longitude: 151.3, Heading: 91,
				NumBeams: 1, PingNumber: 8,
			},
			Range: []uint16{120},
		},
	}

	hdr, beams := FlattenPings(pings)

	require.Len(t, hdr.Timestamp, 2)
	require.Equal(t, []uint32{2, 1}, hdr.NumBeams)
	require.Equal(t, []uint32{7, 8}, hdr.PingNumber)
	require.InDelta(t, -33.5, hdr.Latitude[0], 1e-6)

	require.Equal(t, []uint32{0, 0, 1}, beams.PingIndex)
	require.Equal(t, []uint32{100, 110, 120}, beams.Range)
	require.Equal(t, []uint32{5, 6, 0}, beams.Intensity)
}

func TestFlattenPingsEmptyInput(t *testing.T) {
	hdr, beams := FlattenPings(nil)
	require.Empty(t, hdr.Timestamp)
	require.Empty(t, beams.Range)
}

func TestTileSizeForClampsToRowCountAndCeiling(t *testing.T) {
	require.Equal(t, uint64(1), tileSizeFor(0))
	require.Equal(t, uint64(500), tileSizeFor(500))
	require.Equal(t, uint64(10000), tileSizeFor(50000))
}
