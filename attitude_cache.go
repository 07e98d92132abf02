package emgsf

import (
	"math"
	"time"
)

// attitudeEntry is one absolute-time sample kept by the cache.
type attitudeEntry struct {
	at      time.Time
	roll    float32
	pitch   float32
	heave   float32
	heading float32
}

// cacheCapacity bounds the ring so a long-running reader does not grow the
// cache unbounded; one attitude datagram contributes up to
// MaxAttitudeSamples (256) samples, so at least four datagrams' worth is kept.
const cacheCapacity = 1024

// AttitudeCache holds recent attitude samples and interpolates roll, pitch,
// heave and heading at an arbitrary timestamp (C6). It lives inside the
// Store and is updated every time an Attitude datagram is decoded.
type AttitudeCache struct {
	ring []attitudeEntry
}

// NewAttitudeCache returns an empty cache.
func NewAttitudeCache() *AttitudeCache {
	return &AttitudeCache{ring: make([]attitudeEntry, 0, cacheCapacity)}
}

// Add appends a decoded AttitudeRecord's samples to the cache, evicting the
// oldest entries once capacity is exceeded.
func (c *AttitudeCache) Add(rec *AttitudeRecord) {
	base := rec.Base.ToTime()
	for _, s := range rec.Samples {
		t := base.Add(time.Duration(s.OffsetMsec) * time.Millisecond)
		c.ring = append(c.ring, attitudeEntry{
			at:      t,
			roll:    s.Roll,
			pitch:   s.Pitch,
			heave:   s.Heave,
			heading: s.Heading,
		})
	}
	if len(c.ring) > cacheCapacity {
		c.ring = c.ring[len(c.ring)-cacheCapacity:]
	}
}

// Interpolated is the result of a cache query: the four attitude values at
// the requested timestamp, and whether the query fell outside the cache's
// time span (clamped to the nearest endpoint rather than failing).
type Interpolated struct {
	Roll, Pitch, Heave, Heading float32
	Extrapolated                bool
}

// At linearly interpolates roll/pitch/heave and circularly interpolates
// heading (shortest arc) at the given instant. Queries outside the cache's
// bounds return the nearest endpoint with Extrapolated set.
func (c *AttitudeCache) At(when time.Time) Interpolated {
	n := len(c.ring)
	if n == 0 {
		return Interpolated{}
	}
	if !when.After(c.ring[0].at) {
		e := c.ring[0]
		return Interpolated{Roll: e.roll, Pitch: e.pitch, Heave: e.heave, Heading: e.heading, Extrapolated: when.Before(e.at)}
	}
	if !when.Before(c.ring[n-1].at) {
		e := c.ring[n-1]
		return Interpolated{Roll: e.roll, Pitch: e.pitch, Heave: e.heave, Heading: e.heading, Extrapolated: when.After(e.at)}
	}

	// binary search for the bracketing pair
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if !c.ring[mid].at.After(when) {
			lo = mid
		} else {
			hi = mid
		}
	}
	a, b := c.ring[lo], c.ring[hi]
	span := b.at.Sub(a.at).Seconds()
	frac := 0.0
	if span > 0 {
		frac = when.Sub(a.at).Seconds() / span
	}

	return Interpolated{
		Roll:    lerp(a.roll, b.roll, frac),
		Pitch:   lerp(a.pitch, b.pitch, frac),
		Heave:   lerp(a.heave, b.heave, frac),
		Heading: lerpCircular(a.heading, b.heading, frac),
	}
}

func lerp(a, b float32, frac float64) float32 {
	return a + float32(frac)*(b-a)
}

// lerpCircular interpolates an angle in degrees along the shortest arc.
func lerpCircular(a, b float32, frac float64) float32 {
	diff := math.Mod(float64(b-a)+540, 360) - 180
	v := float64(a) + diff*frac
	v = math.Mod(v, 360)
	if v < 0 {
		v += 360
	}
	return float32(v)
}
