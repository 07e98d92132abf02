package geo

import "math"

// Compose implements the Beaudoin transmit/receive orientation-composition
// procedure (§4.7): the transmitted beam sweeps a fan in the tx array's
// along-track plane (tilted fore-aft by txSteer); the received beam sweeps
// a fan in the rx array's across-track plane (tilted athwartship by
// rxSteer). The true 3D beam direction is the line where the two fans
// intersect, found as the cross product of the two fan-plane normals. The
// result is reported as (azimuth, depression) in degrees, both measured in
// the earth frame relative to referenceHeading.
func Compose(txOrient Orientation, txSteer float64, rxOrient Orientation, rxSteer float64, referenceHeading float64) (azimuth, depression float64) {
	// Local-frame fan-plane normals: the tx fan lies in the along-track
	// (Y-Z) plane, so its un-steered normal is the across-track axis X;
	// txSteer tilts that normal about Y. The rx fan lies in the
	// across-track (X-Z) plane, un-steered normal along-track Y, tilted
	// about X by rxSteer.
	txNormalLocal := rotY(txSteer).apply(Vec3{X: 1, Y: 0, Z: 0})
	rxNormalLocal := rotX(rxSteer).apply(Vec3{X: 0, Y: 1, Z: 0})

	txNormal := txOrient.matrix().apply(txNormalLocal)
	rxNormal := rxOrient.matrix().apply(rxNormalLocal)

	beam := cross(txNormal, rxNormal)
	if norm(beam) < 1e-9 {
		return 0, 0
	}
	beam = normalize(beam)
	// The intersection line has two antiparallel solutions; the physically
	// meaningful one points into the water column (positive Z, down).
	if beam.Z < 0 {
		beam = Vec3{-beam.X, -beam.Y, -beam.Z}
	}

	depression = 90 - radToDeg(math.Acos(clamp(beam.Z, -1, 1)))
	az := radToDeg(math.Atan2(beam.X, beam.Y)) - referenceHeading
	azimuth = math.Mod(az+360, 360)
	return azimuth, depression
}

func radToDeg(r float64) float64 { return r * 180 / math.Pi }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
