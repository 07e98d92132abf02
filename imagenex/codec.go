package imagenex

import (
	"encoding/binary"
	"fmt"
)

// DecodeHeader parses a 256-byte .83P/.83M record header.
func DecodeHeader(raw []byte) (Header, error) {
	if len(raw) < HeaderSize {
		return Header{}, fmt.Errorf("imagenex: short header, got %d bytes", len(raw))
	}
	magic := string(raw[0:3])
	if magic != magic83P && magic != magic83M {
		return Header{}, fmt.Errorf("imagenex: bad magic %q", raw[0:3])
	}

	var h Header
	h.Magic = magic
	h.Version = int(raw[3])
	h.Date = cstr(raw[8:20])
	h.Time = cstr(raw[20:29])
	h.Hundredths = cstr(raw[29:33])

	lat, err := ParseLatLon(string(raw[33:47]))
	if err == nil {
		h.Latitude = lat
	}
	lon, err := ParseLatLon(string(raw[47:61]))
	if err == nil {
		h.Longitude = lon
	}

	h.Speed = float32(raw[61]) / 10
	h.Course = float32(binary.BigEndian.Uint16(raw[62:64])) / 10

	pitchRaw := binary.BigEndian.Uint16(raw[64:66])
	h.PitchPresent = pitchRaw&0x8000 != 0
	if h.PitchPresent {
		h.Pitch = (float32(pitchRaw&0x7FFF) - 900) / 10
	}
	rollRaw := binary.BigEndian.Uint16(raw[66:68])
	h.RollPresent = rollRaw&0x8000 != 0
	if h.RollPresent {
		h.Roll = (float32(rollRaw&0x7FFF) - 900) / 10
	}
	headingRaw := binary.BigEndian.Uint16(raw[68:70])
	h.HeadingPresent = headingRaw&0x8000 != 0
	if h.HeadingPresent {
		h.Heading = float32(headingRaw&0x7FFF) / 10
	}

	h.NumBeams = int(binary.BigEndian.Uint16(raw[70:72]))
	h.SamplesPerBeam = int(binary.BigEndian.Uint16(raw[72:74]))
	h.SectorSize = int(binary.BigEndian.Uint16(raw[74:76]))
	h.StartAngle = float32(binary.BigEndian.Uint16(raw[76:78]))/100 - 180
	h.AngleIncrement = float32(raw[78]) / 100
	h.AcousticRange = int(binary.BigEndian.Uint16(raw[79:81]))
	h.AcousticFreqKHz = int(binary.BigEndian.Uint16(raw[81:83]))

	svRaw := binary.BigEndian.Uint16(raw[83:85])
	h.SoundVelocitySet = svRaw&0x8000 != 0
	if h.SoundVelocitySet {
		h.SoundVelocity = float32(svRaw&0x7FFF) / 10
	} else {
		h.SoundVelocity = 1500.0
	}

	h.RangeResolution = float32(binary.BigEndian.Uint16(raw[85:87])) / 1000
	h.ProfileTiltAngle = float32(binary.BigEndian.Uint16(raw[89:91])) - 180
	h.RepRateMsec = int(binary.BigEndian.Uint16(raw[91:93]))
	h.PingNumber = binary.BigEndian.Uint32(raw[93:97])

	if h.Version >= versionV110 {
		h.SonarXOffset = decodeF32LE(raw[100:104])
		h.SonarYOffset = decodeF32LE(raw[104:108])
		h.SonarZOffset = decodeF32LE(raw[108:112])
		h.MillisecondsStr = cstr(raw[112:117])
		h.HasIntensity = raw[117] != 0
		h.PingLatency = int(binary.BigEndian.Uint16(raw[118:120]))
		h.DataLatency = int(binary.BigEndian.Uint16(raw[120:122]))
		h.SampleRateHigh = raw[122] != 0
		h.OptionFlags = raw[123]
		h.PingsAveraged = int(raw[125])
		h.CenterTimeOffset = binary.BigEndian.Uint16(raw[126:128])

		var suspect bool
		h.HeaveExternal, suspect = readExternalFloat(raw[128:132], -20, 20)
		h.Suspect = h.Suspect || suspect
		h.UserDefinedByte = raw[132]
		h.Altitude, suspect = readExternalFloat(raw[133:137], -20000, 20000)
		h.Suspect = h.Suspect || suspect

		h.ExternalSensorFlags = raw[137]
		h.PitchExternal, suspect = readExternalFloat(raw[138:142], -90, 90)
		h.Suspect = h.Suspect || suspect
		h.RollExternal, suspect = readExternalFloat(raw[142:146], -90, 90)
		h.Suspect = h.Suspect || suspect
		h.HeadingExternal, suspect = readExternalFloat(raw[146:150], 0, 360)
		h.Suspect = h.Suspect || suspect

		h.TransmitScanFlag = raw[150] != 0
		h.TransmitScanAngle, suspect = readExternalFloat(raw[151:155], -180, 180)
		h.Suspect = h.Suspect || suspect

		// Note 7: when the internal integer attitude is nonzero and the
		// external float fields are unavailable, MB-System copies the
		// internal values across; mirrored here so downstream consumers can
		// always read the External fields as the attitude source of truth.
		if h.ExternalSensorFlags&0x01 == 0 && h.HeadingPresent {
			h.HeadingExternal = h.Heading
		}
		if h.ExternalSensorFlags&0x02 == 0 && h.RollPresent {
			h.RollExternal = h.Roll
		}
		if h.ExternalSensorFlags&0x04 == 0 && h.PitchPresent {
			h.PitchExternal = h.Pitch
		}
	}

	return h, nil
}

// EncodeHeader writes a Header back out as a 256-byte block.
func EncodeHeader(h Header) []byte {
	raw := make([]byte, HeaderSize)
	magic := h.Magic
	if magic == "" {
		magic = magic83P
	}
	copy(raw[0:3], magic)
	raw[3] = byte(h.Version)

	copy(raw[8:20], padCstr(h.Date, 12))
	copy(raw[20:29], padCstr(h.Time, 9))
	copy(raw[29:33], padCstr(h.Hundredths, 4))

	copy(raw[33:47], padCstr(FormatLatLon(h.Latitude, 14, 'N', 'S'), 14))
	copy(raw[47:61], padCstr(FormatLatLon(h.Longitude, 14, 'E', 'W'), 14))

	raw[61] = byte(h.Speed * 10)
	binary.BigEndian.PutUint16(raw[62:64], uint16(h.Course*10))

	if h.PitchPresent {
		binary.BigEndian.PutUint16(raw[64:66], uint16(h.Pitch*10+900)|0x8000)
	}
	if h.RollPresent {
		binary.BigEndian.PutUint16(raw[66:68], uint16(h.Roll*10+900)|0x8000)
	}
	if h.HeadingPresent {
		binary.BigEndian.PutUint16(raw[68:70], uint16(h.Heading*10)|0x8000)
	}

	binary.BigEndian.PutUint16(raw[70:72], uint16(h.NumBeams))
	binary.BigEndian.PutUint16(raw[72:74], uint16(h.SamplesPerBeam))
	binary.BigEndian.PutUint16(raw[74:76], uint16(h.SectorSize))
	binary.BigEndian.PutUint16(raw[76:78], uint16((h.StartAngle+180)*100))
	raw[78] = byte(h.AngleIncrement * 100)
	binary.BigEndian.PutUint16(raw[79:81], uint16(h.AcousticRange))
	binary.BigEndian.PutUint16(raw[81:83], uint16(h.AcousticFreqKHz))

	if h.SoundVelocitySet {
		binary.BigEndian.PutUint16(raw[83:85], uint16(h.SoundVelocity*10)|0x8000)
	}
	binary.BigEndian.PutUint16(raw[85:87], uint16(h.RangeResolution*1000))
	binary.BigEndian.PutUint16(raw[89:91], uint16(h.ProfileTiltAngle+180))
	binary.BigEndian.PutUint16(raw[91:93], uint16(h.RepRateMsec))
	binary.BigEndian.PutUint32(raw[93:97], h.PingNumber)

	if h.Version >= versionV110 {
		copy(raw[100:104], encodeF32LE(h.SonarXOffset))
		copy(raw[104:108], encodeF32LE(h.SonarYOffset))
		copy(raw[108:112], encodeF32LE(h.SonarZOffset))
		copy(raw[112:117], padCstr(h.MillisecondsStr, 5))
		if h.HasIntensity {
			raw[117] = 1
		}
		binary.BigEndian.PutUint16(raw[118:120], uint16(h.PingLatency))
		binary.BigEndian.PutUint16(raw[120:122], uint16(h.DataLatency))
		if h.SampleRateHigh {
			raw[122] = 1
		}
		raw[123] = h.OptionFlags
		raw[125] = byte(h.PingsAveraged)
		binary.BigEndian.PutUint16(raw[126:128], h.CenterTimeOffset)

		copy(raw[128:132], encodeF32LE(h.HeaveExternal))
		raw[132] = h.UserDefinedByte
		copy(raw[133:137], encodeF32LE(h.Altitude))

		raw[137] = h.ExternalSensorFlags
		copy(raw[138:142], encodeF32LE(h.PitchExternal))
		copy(raw[142:146], encodeF32LE(h.RollExternal))
		copy(raw[146:150], encodeF32LE(h.HeadingExternal))

		if h.TransmitScanFlag {
			raw[150] = 1
		}
		copy(raw[151:155], encodeF32LE(h.TransmitScanAngle))
	}

	return raw
}

func padCstr(s string, n int) []byte {
	b := make([]byte, n)
	copy(b, s)
	return b
}

// Ping is a decoded .83P/.83M record: header plus per-beam arrays.
type Ping struct {
	Header     Header
	Range      []uint16 // units of RangeResolution
	Intensity  []uint16 // present only if Header.HasIntensity
	Extension  []BeamExtension // present only for .83M records (83M magic)
}

// BeamExtension is one 33-byte 83M per-beam extension record.
type BeamExtension struct {
	Range       uint16
	Intensity   uint16
	BeamRange   float32
	Angle       float32
	AngleForward float32
	Bath        float32
	AcrossTrack float32
	AlongTrack  float32
	Amplitude   float32
	Flag        uint8
}

// DecodeBeams reads the per-beam range (and, if present, intensity) arrays
// following the header, per §4.4's "present-flag-gated range+intensity
// arrays".
func DecodeBeams(raw []byte, h Header) (ranges, intensity []uint16, consumed int, err error) {
	n := h.NumBeams
	if n > MaxBeams {
		n = MaxBeams
	}
	need := n * 2
	if h.HasIntensity {
		need += n * 2
	}
	if len(raw) < need {
		return nil, nil, 0, fmt.Errorf("imagenex: short beam data, need %d got %d", need, len(raw))
	}

	ranges = make([]uint16, n)
	for i := 0; i < n; i++ {
		ranges[i] = binary.BigEndian.Uint16(raw[i*2 : i*2+2])
	}
	off := n * 2
	if h.HasIntensity {
		intensity = make([]uint16, n)
		for i := 0; i < n; i++ {
			intensity[i] = binary.BigEndian.Uint16(raw[off+i*2 : off+i*2+2])
		}
		off += n * 2
	}
	return ranges, intensity, off, nil
}

const beamExtensionSize = 33

// Decode83M decodes the 33-byte per-beam extension records the .83M
// variant appends after the beam range/intensity arrays (§4.4).
func Decode83M(raw []byte, n int) ([]BeamExtension, error) {
	if n > MaxBeams {
		n = MaxBeams
	}
	need := n * beamExtensionSize
	if len(raw) < need {
		return nil, fmt.Errorf("imagenex: short 83M extension, need %d got %d", need, len(raw))
	}
	out := make([]BeamExtension, n)
	for i := 0; i < n; i++ {
		b := raw[i*beamExtensionSize : (i+1)*beamExtensionSize]
		out[i] = BeamExtension{
			Range:        binary.BigEndian.Uint16(b[0:2]),
			Intensity:    binary.BigEndian.Uint16(b[2:4]),
			BeamRange:    decodeF32LE(b[4:8]),
			Angle:        decodeF32LE(b[8:12]),
			AngleForward: decodeF32LE(b[12:16]),
			Bath:         decodeF32LE(b[16:20]),
			AcrossTrack:  decodeF32LE(b[20:24]),
			AlongTrack:   decodeF32LE(b[24:28]),
			Amplitude:    decodeF32LE(b[28:32]),
			Flag:         b[32],
		}
	}
	return out, nil
}
