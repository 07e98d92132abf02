// Package imagenex decodes and encodes the Imagenex DeltaT ".83P"/".83M"
// multibeam record format: a fixed 256-byte ASCII+binary header followed
// by per-beam range (and, from v1.10, intensity) arrays, grounded on
// mbsys_image83p.h/mbr_image83p.c.
package imagenex

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	HeaderSize = 256
	MaxBeams   = 480

	magic83P = "83P"
	magic83M = "83M"

	versionV100 = 0
	versionV110 = 10
)

// Header is the fixed 256-byte record header common to every .83P/.83M
// ping (byte offsets noted per field; see mbsys_image83p.h).
type Header struct {
	Magic   string // bytes 0-2: "83P" or, for the extended variant, "83M"
	Version int    // byte 3: 0 = v1.00, 10 = v1.10

	Date string // bytes 8-19  "DD-MMM-YYYY"
	Time string // bytes 20-28 "HH:MM:SS"
	Hundredths string // bytes 29-32 ".hh"

	Latitude  float64 // bytes 33-46, degrees, +N/-S
	Longitude float64 // bytes 47-60, degrees, +E/-W

	Speed   float32 // byte 61 / 10, knots
	Course  float32 // bytes 62-63 / 10, degrees

	Pitch        float32 // bytes 64-65, internal sensor, degrees
	Roll         float32 // bytes 66-67, internal sensor, degrees
	Heading      float32 // bytes 68-69, internal sensor, degrees
	PitchPresent bool
	RollPresent  bool
	HeadingPresent bool

	NumBeams         int     // bytes 70-71
	SamplesPerBeam   int     // bytes 72-73
	SectorSize       int     // bytes 74-75, degrees
	StartAngle       float32 // bytes 76-77: value/100 - 180, degrees
	AngleIncrement   float32 // byte 78 / 100, degrees
	AcousticRange    int     // bytes 79-80, meters
	AcousticFreqKHz  int     // bytes 81-82
	SoundVelocity    float32 // bytes 83-84: bit15 flag, value/10 m/s (1500 if unset)
	SoundVelocitySet bool
	RangeResolution  float32 // bytes 85-86, mm -> meters
	ProfileTiltAngle float32 // bytes 89-90: value - 180, degrees
	RepRateMsec      int     // bytes 91-92
	PingNumber       uint32  // bytes 93-96

	// v1.10 extension
	SonarXOffset, SonarYOffset, SonarZOffset float32 // bytes 100-111
	MillisecondsStr                          string  // bytes 112-116 ".mmm"
	HasIntensity                             bool    // byte 117
	PingLatency, DataLatency                 int     // bytes 118-121, units of 100us
	SampleRateHigh                           bool    // byte 122
	OptionFlags                             uint8   // byte 123
	PingsAveraged                           int     // byte 125
	CenterTimeOffset                        uint16  // bytes 126-127

	HeaveExternal   float32 // bytes 128-131
	UserDefinedByte uint8   // byte 132
	Altitude        float32 // bytes 133-136

	ExternalSensorFlags uint8   // byte 137
	PitchExternal       float32 // bytes 138-141
	RollExternal        float32 // bytes 142-145
	HeadingExternal     float32 // bytes 146-149

	TransmitScanFlag bool    // byte 150
	TransmitScanAngle float32 // bytes 151-154

	// Suspect marks a header whose external-sensor floats failed every
	// range-check attempt (§9 Open Question: the v1.10 byte-order bug is a
	// known, preserved defect rather than something this decoder corrects
	// beyond one swap-and-retry).
	Suspect bool
}

var monthAbbrev = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

var monthName = [...]string{"", "JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

// ParseCalendar parses the "DD-MMM-YYYY" date string into (year, month, day).
func ParseCalendar(s string) (year, month, day int, err error) {
	parts := strings.SplitN(strings.TrimRight(s, "\x00 "), "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("imagenex: malformed calendar date %q", s)
	}
	d, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, err
	}
	m, ok := monthAbbrev[strings.ToUpper(parts[1])]
	if !ok {
		return 0, 0, 0, fmt.Errorf("imagenex: unknown month abbreviation %q", parts[1])
	}
	y, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, err
	}
	return y, m, d, nil
}

// FormatCalendar is ParseCalendar's inverse.
func FormatCalendar(year, month, day int) string {
	return fmt.Sprintf("%02d-%s-%04d", day, monthName[month], year)
}

// ParseLatLon parses the "_DD.MM.XXXXX_N" / "DDD.MM.XXXXX_E" fixed-width
// position strings into signed decimal degrees.
func ParseLatLon(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimRight(s, "\x00"))
	if len(s) < 2 {
		return 0, fmt.Errorf("imagenex: malformed position %q", s)
	}
	hemi := s[len(s)-1]
	body := strings.TrimSpace(s[:len(s)-1])
	fields := strings.SplitN(body, ".", 2)
	if len(fields) != 2 {
		return 0, fmt.Errorf("imagenex: malformed position %q", s)
	}
	deg, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, err
	}
	// fields[1] is "MM XXXXX" condensed without a separating dot in the
	// on-wire form "dd.mm.xxxxx"; reconstruct minutes.decimal from the two
	// remaining dot-delimited groups position-for-position.
	minPart := fields[1]
	var minutes float64
	if len(minPart) >= 2 {
		mm, _ := strconv.Atoi(minPart[:2])
		frac := "0." + strings.TrimLeft(minPart[2:], ".")
		f, _ := strconv.ParseFloat(frac, 64)
		minutes = float64(mm) + f
	}
	val := float64(deg) + minutes/60
	switch hemi {
	case 'S', 's', 'W', 'w':
		val = -val
	}
	return val, nil
}

// FormatLatLon is ParseLatLon's inverse for a given field width (14 for
// both lat and lon in this format) and hemisphere letters.
func FormatLatLon(v float64, width int, pos, neg byte) string {
	hemi := pos
	if v < 0 {
		hemi = neg
		v = -v
	}
	deg := int(v)
	minutes := (v - float64(deg)) * 60
	s := fmt.Sprintf("%03d.%08.5f %c", deg, minutes, hemi)
	if len(s) > width {
		s = s[:width]
	}
	return s
}

// swapF32 reverses the byte order of a raw 4-byte IEEE-754 float.
func swapF32(b []byte) []byte {
	return []byte{b[3], b[2], b[1], b[0]}
}

// readExternalFloat decodes a 4-byte little-endian float and range-checks
// it; if out of range it retries with bytes byte-swapped (§4.4 Imagenex:
// "if out of range, swap and retry"), flagging the header Suspect if
// neither interpretation is plausible.
func readExternalFloat(b []byte, lo, hi float32) (float32, bool) {
	v := decodeF32LE(b)
	if v >= lo && v <= hi {
		return v, false
	}
	v2 := decodeF32LE(swapF32(b))
	if v2 >= lo && v2 <= hi {
		return v2, false
	}
	return v, true
}

func decodeF32LE(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func encodeF32LE(v float32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	return b
}

func cstr(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
