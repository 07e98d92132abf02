package imagenex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFormatCalendarRoundTrip(t *testing.T) {
	y, m, d, err := ParseCalendar("15-JUN-2023")
	require.NoError(t, err)
	require.Equal(t, 2023, y)
	require.Equal(t, 6, m)
	require.Equal(t, 15, d)

	require.Equal(t, "15-JUN-2023", FormatCalendar(y, m, d))
}

func TestParseCalendarRejectsUnknownMonth(t *testing.T) {
	_, _, _, err := ParseCalendar("15-XXX-2023")
	require.Error(t, err)
}

func TestParseFormatLatLonRoundTrip(t *testing.T) {
	v, err := ParseLatLon(FormatLatLon(33.5, 14, 'N', 'S'))
	require.NoError(t, err)
	require.InDelta(t, 33.5, v, 1e-4)

	v2, err := ParseLatLon(FormatLatLon(-151.25, 14, 'E', 'W'))
	require.NoError(t, err)
	require.InDelta(t, -151.25, v2, 1e-4)
}

func TestDecodeHeaderRejectsBadMagic(t *testing.T) {
	raw := make([]byte, HeaderSize)
	copy(raw[0:3], "XXX")
	_, err := DecodeHeader(raw)
	require.Error(t, err)
}

func TestDecodeHeaderRejectsShortBuffer(t *testing.T) {
	_, err := DecodeHeader(make([]byte, 10))
	require.Error(t, err)
}

func TestHeaderEncodeDecodeRoundTripV100(t *testing.T) {
	h := Header{
		Magic:          magic83P,
		Version:        versionV100,
		Date:           "15-JUN-2023",
		Time:           "12:30:00",
		Hundredths:     ".50",
		Latitude:       -33.5,
		Longitude:      151.25,
		Speed:          5.0,
		Course:         90.0,
		PitchPresent:   true,
		Pitch:          1.5,
		RollPresent:    true,
		Roll:           -2.5,
		HeadingPresent: true,
		Heading:        270.0,
		NumBeams:       120,
		SamplesPerBeam: 500,
		SectorSize:     120,
		StartAngle:     -60,
		AngleIncrement: 1,
		AcousticRange:  50,
		AcousticFreqKHz: 260,
		RangeResolution: 0.01,
		PingNumber:      42,
	}

	raw := EncodeHeader(h)
	require.Len(t, raw, HeaderSize)

	out, err := DecodeHeader(raw)
	require.NoError(t, err)

	require.Equal(t, h.Magic, out.Magic)
	require.Equal(t, h.NumBeams, out.NumBeams)
	require.Equal(t, h.SamplesPerBeam, out.SamplesPerBeam)
	require.InDelta(t, h.Pitch, out.Pitch, 0.2)
	require.InDelta(t, h.Roll, out.Roll, 0.2)
	require.InDelta(t, h.Heading, out.Heading, 0.2)
	require.InDelta(t, h.StartAngle, out.StartAngle, 0.1)
	require.Equal(t, h.PingNumber, out.PingNumber)
	require.False(t, out.Suspect)
}

func TestHeaderEncodeDecodeRoundTripV110ExternalSensors(t *testing.T) {
	h := Header{
		Magic:               magic83M,
		Version:             versionV110,
		Date:                "01-JAN-2024",
		Time:                "00:00:00",
		NumBeams:            10,
		ExternalSensorFlags: 0x07,
		PitchExternal:       3.3,
		RollExternal:        -1.1,
		HeadingExternal:     180.5,
		HeaveExternal:       0.4,
		Altitude:            100.0,
		TransmitScanAngle:   15.0,
	}

	raw := EncodeHeader(h)
	out, err := DecodeHeader(raw)
	require.NoError(t, err)

	require.False(t, out.Suspect)
	require.InDelta(t, 3.3, out.PitchExternal, 0.01)
	require.InDelta(t, -1.1, out.RollExternal, 0.01)
	require.InDelta(t, 180.5, out.HeadingExternal, 0.01)
	require.InDelta(t, 0.4, out.HeaveExternal, 0.01)
	require.InDelta(t, 100.0, out.Altitude, 0.01)
}

func TestDecodeBeamsWithoutIntensity(t *testing.T) {
	h := Header{NumBeams: 3}
	raw := []byte{0, 10, 0, 20, 0, 30}
	ranges, intensity, consumed, err := DecodeBeams(raw, h)
	require.NoError(t, err)
	require.Equal(t, []uint16{10, 20, 30}, ranges)
	require.Nil(t, intensity)
	require.Equal(t, 6, consumed)
}

func TestDecodeBeamsWithIntensity(t *testing.T) {
	h := Header{NumBeams: 2, HasIntensity: true}
	raw := []byte{0, 10, 0, 20, 0, 100, 0, 200}
	ranges, intensity, consumed, err := DecodeBeams(raw, h)
	require.NoError(t, err)
	require.Equal(t, []uint16{10, 20}, ranges)
	require.Equal(t, []uint16{100, 200}, intensity)
	require.Equal(t, 8, consumed)
}

func TestDecodeBeamsShortBufferErrors(t *testing.T) {
	h := Header{NumBeams: 5}
	_, _, _, err := DecodeBeams([]byte{0, 1}, h)
	require.Error(t, err)
}

func TestDecode83MExtensionRecords(t *testing.T) {
	raw := make([]byte, beamExtensionSize*2)
	out, err := Decode83M(raw, 2)
	require.NoError(t, err)
	require.Len(t, out, 2)
}

func TestDecode83MShortBufferErrors(t *testing.T) {
	_, err := Decode83M(make([]byte, 10), 2)
	require.Error(t, err)
}
