package emgsf

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// Timestamp is the vendor's native date/time representation: a decimal
// YYYYMMDD date plus milliseconds since midnight. All ping-assembly time
// math (§4.5's equality/ordering checks) operates on this pair directly;
// conversion to absolute seconds goes through meeus, the same julian-date
// library the teacher uses for its reference-time parsing.
type Timestamp struct {
	Date uint32 // YYYYMMDD
	Msec uint32
}

// Year, Month, Day split the packed decimal date.
func (t Timestamp) Year() int  { return int(t.Date / 10000) }
func (t Timestamp) Month() int { return int((t.Date / 100) % 100) }
func (t Timestamp) Day() int   { return int(t.Date % 100) }

// Before reports pure chronological ordering of (date, msec) pairs, the
// comparison the ping assembler uses to decide whether sidescan arrived
// before or after its matching bathymetry record.
func (t Timestamp) Before(other Timestamp) bool {
	if t.Date != other.Date {
		return t.Date < other.Date
	}
	return t.Msec < other.Msec
}

// Equal reports the exact equality the assembler requires for pairing bath
// and sidescan records (SPEC_FULL.md §8 invariant 4).
func (t Timestamp) Equal(other Timestamp) bool {
	return t.Date == other.Date && t.Msec == other.Msec
}

// ToTime converts the packed representation to an absolute UTC instant.
// The julian-calendar round trip through meeus mirrors the teacher's own
// "reference time" parsing in decode/params.go, generalized from a day-of-
// year string to a packed YYYYMMDD integer.
func (t Timestamp) ToTime() time.Time {
	year, month, day := t.Year(), t.Month(), t.Day()
	jd := julian.CalendarGregorianToJD(year, month, float64(day))
	y, m, dFloat := julian.JDToCalendar(jd)
	whole := int(dFloat)
	return time.Date(y, time.Month(m), whole, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(t.Msec) * time.Millisecond)
}

// FromTime packs an absolute instant back into the vendor's (date, msec)
// pair, the inverse used by the encoders.
func FromTime(ts time.Time) Timestamp {
	ts = ts.UTC()
	date := uint32(ts.Year())*10000 + uint32(ts.Month())*100 + uint32(ts.Day())
	midnight := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	return Timestamp{Date: date, Msec: uint32(ts.Sub(midnight).Milliseconds())}
}
