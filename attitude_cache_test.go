package emgsf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAttitudeCacheEmptyReturnsZeroValue(t *testing.T) {
	c := NewAttitudeCache()
	got := c.At(time.Now())
	require.Equal(t, Interpolated{}, got)
}

func TestAttitudeCacheInterpolatesBetweenSamples(t *testing.T) {
	c := NewAttitudeCache()
	base := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	rec := &AttitudeRecord{
		Base: FromTime(base),
		Samples: []AttitudeSample{
			{OffsetMsec: 0, Roll: 0, Pitch: 0, Heave: 0, Heading: 10},
			{OffsetMsec: 1000, Roll: 10, Pitch: 4, Heave: 1, Heading: 20},
		},
	}
	c.Add(rec)

	mid := base.Add(500 * time.Millisecond)
	got := c.At(mid)
	require.False(t, got.Extrapolated)
	require.InDelta(t, 5, got.Roll, 0.01)
	require.InDelta(t, 2, got.Pitch, 0.01)
	require.InDelta(t, 0.5, got.Heave, 0.01)
	require.InDelta(t, 15, got.Heading, 0.01)
}

func TestAttitudeCacheClampsBeforeFirstSample(t *testing.T) {
	c := NewAttitudeCache()
	base := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	rec := &AttitudeRecord{
		Base: FromTime(base),
		Samples: []AttitudeSample{
			{OffsetMsec: 0, Roll: 3, Pitch: 1, Heave: 0, Heading: 100},
		},
	}
	c.Add(rec)

	earlier := base.Add(-time.Minute)
	got := c.At(earlier)
	require.True(t, got.Extrapolated)
	require.Equal(t, float32(3), got.Roll)
}

func TestAttitudeCacheClampsAfterLastSample(t *testing.T) {
	c := NewAttitudeCache()
	base := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	rec := &AttitudeRecord{
		Base: FromTime(base),
		Samples: []AttitudeSample{
			{OffsetMsec: 0, Roll: 3, Pitch: 1, Heave: 0, Heading: 100},
		},
	}
	c.Add(rec)

	later := base.Add(time.Hour)
	got := c.At(later)
	require.True(t, got.Extrapolated)
	require.Equal(t, float32(3), got.Roll)
}

func TestAttitudeCacheHeadingWrapsShortestArc(t *testing.T) {
	c := NewAttitudeCache()
	base := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	rec := &AttitudeRecord{
		Base: FromTime(base),
		Samples: []AttitudeSample{
			{OffsetMsec: 0, Heading: 350},
			{OffsetMsec: 1000, Heading: 10},
		},
	}
	c.Add(rec)

	mid := base.Add(500 * time.Millisecond)
	got := c.At(mid)
	require.InDelta(t, 0, got.Heading, 0.5)
}

func TestAttitudeCacheEvictsBeyondCapacity(t *testing.T) {
	c := NewAttitudeCache()
	base := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < cacheCapacity+100; i++ {
		c.Add(&AttitudeRecord{
			Base: FromTime(base.Add(time.Duration(i) * time.Second)),
			Samples: []AttitudeSample{
				{OffsetMsec: 0, Roll: float32(i)},
			},
		})
	}
	require.Len(t, c.ring, cacheCapacity)
}
