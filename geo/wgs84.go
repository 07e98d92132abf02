package geo

import "math"

// Coefficients holds the empirical scale-factor constants used to convert
// metre offsets to longitude/latitude degrees at a given latitude,
// grounded on the original ping-georeferencing helper's WGS84 table.
type Coefficients struct {
	A, B, C, D float64 // latitude scale factor terms
	E, F, G    float64 // longitude scale factor terms
}

// WGS84 returns the standard coefficient set.
func WGS84() Coefficients {
	return Coefficients{
		A: 111132.92, B: 559.82, C: 1.175, D: 0.0023,
		E: 111412.84, F: 93.5, G: 0.118,
	}
}

// BeamPositions computes longitude/latitude for a ping's across-track/
// along-track beam offsets, given the ping's navigated position and
// heading (§4.7 step 7 feeds acrosstrack/alongtrack in metres; this turns
// those into absolute coordinates for archival).
func BeamPositions(lon, lat float64, heading float32, across, along []float32, c Coefficients) (lons, lats []float64) {
	deg2rad := math.Pi / 180.0
	latRad := deg2rad * lat
	headRad := deg2rad * float64(heading)

	latSF := c.A - c.B*math.Cos(2*latRad) + c.C*math.Cos(4*latRad) - c.D*math.Cos(6*latRad)
	lonSF := c.E*math.Cos(latRad) - c.F*math.Cos(3*latRad) + c.G*math.Cos(5*latRad)

	dx := math.Sin(headRad)
	dy := math.Cos(headRad)

	n := len(along)
	lons = make([]float64, n)
	lats = make([]float64, n)
	for i := 0; i < n; i++ {
		a := float64(across[i])
		b := float64(along[i])
		lons[i] = lon + dy/lonSF*a + dx/lonSF*b
		lats[i] = lat - dx/latSF*a + dy/latSF*b
	}
	return lons, lats
}
