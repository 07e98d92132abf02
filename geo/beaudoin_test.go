package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComposeNadirBeamWithNoAttitude(t *testing.T) {
	flat := Orientation{Roll: 0, Pitch: 0, Heading: 0}
	azimuth, depression := Compose(flat, 0, flat, 0, 0)

	require.InDelta(t, 90, depression, 1e-6)
	require.InDelta(t, 0, azimuth, 1e-6)
}

func TestComposeRxSteerProducesAcrossTrackDeflection(t *testing.T) {
	flat := Orientation{Roll: 0, Pitch: 0, Heading: 0}
	_, depression := Compose(flat, 0, flat, 30, 0)

	require.Less(t, depression, 90.0)
	require.Greater(t, depression, 0.0)
}

func TestComposeReferenceHeadingRotatesAzimuth(t *testing.T) {
	flat := Orientation{Roll: 0, Pitch: 0, Heading: 0}
	az1, _ := Compose(flat, 0, flat, 20, 0)
	az2, _ := Compose(flat, 0, flat, 20, 45)

	diff := az1 - az2
	for diff < -180 {
		diff += 360
	}
	for diff > 180 {
		diff -= 360
	}
	require.InDelta(t, 45, diff, 1e-6)
}

func TestComposeDegenerateParallelFansReturnsZero(t *testing.T) {
	flat := Orientation{Roll: 0, Pitch: 0, Heading: 0}
	azimuth, depression := Compose(flat, 90, flat, 90, 0)
	require.Equal(t, 0.0, azimuth)
	require.Equal(t, 0.0, depression)
}
