// Package emgsf reads and writes the Kongsberg Simrad "EM series" processed
// multibeam datagram stream: frame scanning and resynchronization, runtime
// byte-order detection, the multi-datagram ping-assembly state machine, and
// ping geometry recomputation via the geo subpackage.
package emgsf

// ByteOrder is resolved once per stream by the endianness oracle (C3) and
// threaded explicitly through every codec call; it is never held in a
// package-level variable.
type ByteOrder bool

const (
	LittleEndian ByteOrder = false
	BigEndian    ByteOrder = true
)

// RecordKind is the tagged variant every decoded datagram collapses to.
type RecordKind int

const (
	KindNone RecordKind = iota
	KindData
	KindNav
	KindNav1
	KindNav2
	KindNav3
	KindComment
	KindVelocityProfile
	KindClock
	KindTide
	KindHeight
	KindHeading
	KindAttitude
	KindSSV
	KindTilt
	KindStart
	KindStop
	KindStatus
	KindRunParameter
	KindWaterColumn
)

// DatagramType is the 8-bit identifier carried in the second byte of every
// frame label, grounded on mbsys_simrad2.h's EM2_ID_* constants.
type DatagramType uint8

const (
	DatagramStop2        DatagramType = 0x30
	DatagramOff          DatagramType = 0x31
	DatagramOn           DatagramType = 0x32
	DatagramAttitude     DatagramType = 0x41
	DatagramClock        DatagramType = 0x43
	DatagramBath         DatagramType = 0x44
	DatagramSBDepth      DatagramType = 0x45
	DatagramRawBeam      DatagramType = 0x46
	DatagramSSV          DatagramType = 0x47
	DatagramHeading      DatagramType = 0x48
	DatagramStart        DatagramType = 0x49
	DatagramTilt         DatagramType = 0x4A
	DatagramCBEcho       DatagramType = 0x4B
	DatagramPosition     DatagramType = 0x50
	DatagramRunParameter DatagramType = 0x52
	DatagramSidescan     DatagramType = 0x53
	DatagramTide         DatagramType = 0x54
	DatagramSVP2         DatagramType = 0x55
	DatagramSVP          DatagramType = 0x56
	DatagramRawBeam2     DatagramType = 0x65
	DatagramRawBeam3     DatagramType = 0x66
	DatagramHeight       DatagramType = 0x68
	DatagramStop         DatagramType = 0x69
	DatagramBathExt      DatagramType = 0xE1
	DatagramSidescanExt  DatagramType = 0xE2
	DatagramWaterColumn  DatagramType = 0x6B
)

// DatagramSBDepth, DatagramCBEcho, DatagramRemote, DatagramSSP,
// DatagramSSPInput round out the full set of Kongsberg type bytes the frame
// scanner must recognize as validly-framed even though this library has no
// decoder for them (§4.2: "Unknown type with otherwise valid framing ⇒
// skip ... not a failure").
const (
	DatagramRemote   DatagramType = 0x70
	DatagramSSP      DatagramType = 0x73
	DatagramSSPInput DatagramType = 0x57
)

// TypeKind maps a datagram type byte to its RecordKind for every type byte
// this library interprets. KnownDatagramTypes (below) is the broader set
// used purely for frame validity.
var TypeKind = map[DatagramType]RecordKind{
	DatagramStop2:        KindStop,
	DatagramOff:          KindStop,
	DatagramOn:           KindStart,
	DatagramAttitude:     KindAttitude,
	DatagramClock:        KindClock,
	DatagramBath:         KindData,
	DatagramRawBeam:      KindData,
	DatagramSSV:          KindSSV,
	DatagramHeading:      KindHeading,
	DatagramStart:        KindStart,
	DatagramTilt:         KindTilt,
	DatagramPosition:     KindNav,
	DatagramRunParameter: KindRunParameter,
	DatagramSidescan:     KindData,
	DatagramTide:         KindTide,
	DatagramSVP2:         KindVelocityProfile,
	DatagramSVP:          KindVelocityProfile,
	DatagramRawBeam2:     KindData,
	DatagramRawBeam3:     KindData,
	DatagramHeight:       KindHeight,
	DatagramStop:         KindStop,
	DatagramBathExt:      KindData,
	DatagramSidescanExt:  KindData,
	DatagramWaterColumn:  KindWaterColumn,
}

// KnownDatagramTypes is every type byte the Kongsberg datagram manual
// defines, decoded or not. A type byte outside this set fails frame
// validity (§4.2) and triggers resync; a type byte inside this set but
// without a registered decoder is skipped (§4.2 "unknown type" case, not a
// failure).
var KnownDatagramTypes = func() map[DatagramType]bool {
	m := map[DatagramType]bool{
		DatagramSBDepth:  true,
		DatagramCBEcho:   true,
		DatagramRemote:   true,
		DatagramSSP:      true,
		DatagramSSPInput: true,
	}
	for t := range TypeKind {
		m[t] = true
	}
	return m
}()

// BeamFlag is the per-beam quality bit set the extended ("MBA") bathymetry
// format carries and the geometry recomputer (C7) sets on failure (§4.7).
type BeamFlag uint8

const (
	BeamFlagGood    BeamFlag = 0
	BeamFlagNull    BeamFlag = 0x80 // no usable range/angle; zeros emitted
	BeamFlagManual  BeamFlag = 0x40 // manually edited, preserved across rewrite
)

// SonarModel selects the sign convention for vendor bathymetry depths and
// the EM3000D dual-meaning sample-rate field (see design note in SPEC_FULL.md).
type SonarModel int

const (
	ModelUnknown  SonarModel = 0
	ModelEM120    SonarModel = 120
	ModelEM300    SonarModel = 300
	ModelEM1002   SonarModel = 1002
	ModelEM2000   SonarModel = 2000
	ModelEM3000   SonarModel = 3000
	ModelEM3000D1 SonarModel = 3001
	ModelEM3000D2 SonarModel = 3002
	ModelEM3000D3 SonarModel = 3003
	ModelEM3000D4 SonarModel = 3004
	ModelEM3000D5 SonarModel = 3005
	ModelEM3000D6 SonarModel = 3006
	ModelEM3000D7 SonarModel = 3007
	ModelEM3000D8 SonarModel = 3008
	ModelEM3002   SonarModel = 3020
	ModelEM12S    SonarModel = 9901
	ModelEM12D    SonarModel = 9902
	ModelEM121    SonarModel = 9903
	ModelEM100    SonarModel = 9904
	ModelEM1000   SonarModel = 9905
)

// ValidSonarIDs is the finite enumerated set the endianness oracle (C3) and
// frame scanner (C2) check candidate sonar ids against.
var ValidSonarIDs = map[uint16]SonarModel{
	120:  ModelEM120,
	300:  ModelEM300,
	1002: ModelEM1002,
	2000: ModelEM2000,
	3000: ModelEM3000,
	3001: ModelEM3000D1,
	3002: ModelEM3000D2,
	3003: ModelEM3000D3,
	3004: ModelEM3000D4,
	3005: ModelEM3000D5,
	3006: ModelEM3000D6,
	3007: ModelEM3000D7,
	3008: ModelEM3000D8,
	3020: ModelEM3002,
	9901: ModelEM12S,
	9902: ModelEM12D,
	9903: ModelEM121,
	9904: ModelEM100,
	9905: ModelEM1000,
}

// IsDualHead reports whether a sonar model is one of the EM3000D1-D8
// dual-head variants or the EM3002.
func (m SonarModel) IsDualHead() bool {
	return m == ModelEM3000D1 || m == ModelEM3000D2 || m == ModelEM3000D3 ||
		m == ModelEM3000D4 || m == ModelEM3000D5 || m == ModelEM3000D6 ||
		m == ModelEM3000D7 || m == ModelEM3000D8 || m == ModelEM3002
}

// SignedDepth reports whether a sonar model reports beam depths as signed
// values (EM3000-family heads mounted on a vehicle may report upward beams).
func (m SonarModel) SignedDepth() bool {
	switch m {
	case ModelEM3000, ModelEM3000D1, ModelEM3000D2, ModelEM3000D3, ModelEM3000D4,
		ModelEM3000D5, ModelEM3000D6, ModelEM3000D7, ModelEM3000D8, ModelEM3002, ModelEM2000:
		return true
	default:
		return false
	}
}
