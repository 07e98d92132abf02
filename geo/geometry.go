package geo

import (
	"math"

	"github.com/oceansensing/emgsf"
)

// AttitudeAt is the subset of AttitudeCache's interpolation result the
// geometry recomputer needs; Reader callers pass emgsf.Interpolated values
// directly (this indirection keeps geo free of a dependency cycle on the
// cache's own query API beyond the plain float fields).
type AttitudeAt struct {
	Roll, Pitch, Heave, Heading float32
}

// RecomputeGeometry fills Depression, Azimuth, Bath, BathAcross, BathAlong
// for every beam of an extended-format ping record, following §4.7's
// seven-step procedure. atPing is the vessel attitude at ping transmit
// time; atEcho is looked up per-beam by the caller (typically via
// AttitudeCache queried at ping_time + beam_range/1500) and passed
// parallel to the beam arrays.
//
// Idempotent: calling this twice on an unmodified ping produces identical
// output, since every field it writes is derived from inputs it does not
// itself write (Range, StartAngle, AngleIncrement, Sectors[0].TiltAngle,
// SoundSpeed, RangeResolution, TransducerDepth and the attitude arguments).
func RecomputeGeometry(p *emgsf.PingRecord, atPing AttitudeAt, atEcho []AttitudeAt, referenceHeading float64, rxReverseMount, txReverseMount bool) error {
	n := len(p.Range)
	p.Bath = make([]float32, n)
	p.BathAcross = make([]float32, n)
	p.BathAlong = make([]float32, n)
	if cap(p.Depression) < n {
		p.Depression = make([]float32, n)
	} else {
		p.Depression = p.Depression[:n]
	}
	if cap(p.Azimuth) < n {
		p.Azimuth = make([]float32, n)
	} else {
		p.Azimuth = p.Azimuth[:n]
	}
	if len(p.BeamFlags) < n {
		p.BeamFlags = make([]uint8, n)
	}

	profileTilt := float64(0)
	if len(p.Sectors) > 0 {
		profileTilt = float64(p.Sectors[0].TiltAngle)
	}

	txSign := 1.0
	if txReverseMount {
		txSign = -1.0
	}
	rxSign := 1.0
	if rxReverseMount {
		rxSign = -1.0
	}

	txOrient := Orientation{
		Roll:    float64(atPing.Roll),
		Pitch:   float64(atPing.Pitch) + profileTilt - 180,
		Heading: float64(atPing.Heading),
	}
	txSteer := txSign * 0.0

	soundSpeed := float64(p.SoundSpeed)
	if soundSpeed < 1300 || soundSpeed > 1700 {
		soundSpeed = 1500
	}

	for i := 0; i < n; i++ {
		rng := p.Range[i]
		if rng == 0 {
			p.BeamFlags[i] |= uint8(emgsf.BeamFlagNull)
			continue
		}

		var at AttitudeAt
		if i < len(atEcho) {
			at = atEcho[i]
		} else {
			at = atPing
		}
		rxOrient := Orientation{
			Roll:    float64(at.Roll),
			Pitch:   float64(at.Pitch) + profileTilt - 180,
			Heading: float64(at.Heading),
		}

		rxSteerAngle := rxSign * (180 - float64(p.AngleIncrement)*float64(i) - float64(p.StartAngle))

		azimuth, depression := Compose(txOrient, txSteer, rxOrient, rxSteerAngle, referenceHeading)
		p.Depression[i] = float32(depression)
		p.Azimuth[i] = float32(azimuth)

		theta := degToRad(90 - depression)
		phi := degToRad(90 - azimuth)

		r := (soundSpeed / 1500) * 1e-3 * float64(p.RangeResolution) * float64(rng)
		x := r * math.Sin(theta)
		z := r * math.Cos(theta)

		if math.IsNaN(x) || math.IsNaN(z) {
			p.BeamFlags[i] |= uint8(emgsf.BeamFlagNull)
			continue
		}

		p.Bath[i] = float32(z) + p.TransducerDepth - at.Heave
		p.BathAcross[i] = float32(x * math.Cos(phi))
		p.BathAlong[i] = float32(x * math.Sin(phi))
	}

	return nil
}
