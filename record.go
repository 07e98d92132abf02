package emgsf

// MaxBeams, MaxTx, MaxRawPixels, MaxPixels are the compile-time maxima the
// assembler's integrity checks (§4.5) and the per-ping buffer allocation
// (§5 "Allocation discipline") are built around, grounded on
// mbsys_simrad2.h's MBSYS_SIMRAD2_MAXBEAMS/MAXTX/MAXRAWPIXELS/MAXPIXELS.
const (
	MaxBeams     = 254
	MaxTx        = 19
	MaxRawPixels = 32000
	MaxPixels    = 1024

	MaxAttitudeSamples = 256
	MaxHeadingSamples  = 256
	MaxSSVSamples      = 256
	MaxTiltSamples     = 256
)

// TxSector carries the per-sector transmit parameters the v3 (and, for the
// attitude-at-echo-time fields, v2) raw range/angle datagrams report.
type TxSector struct {
	TiltAngle    float32 // degrees
	Focus        float32 // meters, 0 = no focus
	SignalLength float32 // seconds
	CenterFreq   float32 // Hz
	Bandwidth    float32 // Hz
	Waveform     uint8
	SectorID     uint8
	// Heading, Roll, Pitch restore the per-sector attitude sample the v2
	// schema carries that the distilled spec omits (SPEC_FULL.md §3). The v2
	// sector layout has no heave field, so Heave is left zero by the decoders.
	Heading float32
	Roll    float32
	Pitch   float32
	Heave   float32
}

// PingRecord is the assembled survey record for one acoustic transmit/
// receive cycle on one head.
type PingRecord struct {
	Timestamp  Timestamp
	Count      uint16 // ping counter
	Serial     uint16
	Head       int // 0 or 1; second head for dual-transducer systems
	SonarModel SonarModel

	Latitude, Longitude float64
	Speed                float32 // m/s
	Heading              float32 // degrees
	Heave                float32 // meters
	Roll, Pitch          float32 // degrees
	SoundSpeed           float32 // m/s at the transducer
	TransducerDepth      float32 // meters
	// DepthOffsetMultiplier restores the "x65536 cm" dual-head offset from
	// mbsys_simrad2.h note 7; zero in the common case.
	DepthOffsetMultiplier int8
	SampleRate            float32 // Hz, or inter-head depth difference for EM3000D (see SonarModel)
	RangeResolution       float32 // meters
	StartAngle            float32 // degrees
	AngleIncrement        float32 // degrees

	NBeams    int
	NBeamsMax int

	BeamNumber    []uint16
	Range         []uint32 // sample units, one-way
	Quality       []uint8
	Window        []uint16
	Amplitude     []int8
	Depression    []float32 // degrees, derived
	Azimuth       []float32 // degrees, derived
	Depth         []float32 // meters, vendor-supplied (signed or unsigned per SonarModel)
	AcrossTrack   []float32
	AlongTrack    []float32
	BeamFlags     []uint8 // extended ("MBA") format only
	Bath          []float32 // recomputed
	BathAcross    []float32
	BathAlong     []float32

	Sectors        []TxSector // up to MaxTx
	RawBeamVariant uint8      // 1, 2, or 3; which raw range/angle datagram contributed, 0 if none

	// Sidescan
	SSTimestamp    Timestamp
	NBeamsSS       int
	NPixels        int
	BeamIndex      []uint16
	SortDirection  []int8
	BeamSamples    []uint16
	StartSample    []uint16
	CenterSample   []uint16
	RawSidescan    []int8    // up to MaxRawPixels
	ProcessedSS    []int16   // fixed MaxPixels width
	SSAlongTrack   []int16

	// ReadFlags tracks which sub-datagrams have contributed to this ping so
	// far: "Bath", "BathExt", "RawBeam", "Sidescan", "SidescanExt".
	ReadFlags map[string]bool
}

// NewPingRecord allocates a PingRecord with its max-sized per-ping arrays
// pre-allocated once, per §5's "allocated eagerly ... to avoid reallocation
// on each ping".
func NewPingRecord() *PingRecord {
	return &PingRecord{
		BeamNumber:   make([]uint16, 0, MaxBeams),
		Range:        make([]uint32, 0, MaxBeams),
		Quality:      make([]uint8, 0, MaxBeams),
		Window:       make([]uint16, 0, MaxBeams),
		Amplitude:    make([]int8, 0, MaxBeams),
		Depression:   make([]float32, 0, MaxBeams),
		Azimuth:      make([]float32, 0, MaxBeams),
		Depth:        make([]float32, 0, MaxBeams),
		AcrossTrack:  make([]float32, 0, MaxBeams),
		AlongTrack:   make([]float32, 0, MaxBeams),
		BeamFlags:    make([]uint8, 0, MaxBeams),
		Bath:         make([]float32, 0, MaxBeams),
		BathAcross:   make([]float32, 0, MaxBeams),
		BathAlong:    make([]float32, 0, MaxBeams),
		Sectors:      make([]TxSector, 0, MaxTx),
		ProcessedSS:  make([]int16, MaxPixels),
		SSAlongTrack: make([]int16, MaxPixels),
		ReadFlags:    make(map[string]bool, 4),
	}
}

// Reset clears a PingRecord's slices (retaining capacity) so the assembler
// can reuse the buffer for the next ping on the same head.
func (p *PingRecord) Reset() {
	p.BeamNumber = p.BeamNumber[:0]
	p.Range = p.Range[:0]
	p.Quality = p.Quality[:0]
	p.Window = p.Window[:0]
	p.Amplitude = p.Amplitude[:0]
	p.Depression = p.Depression[:0]
	p.Azimuth = p.Azimuth[:0]
	p.Depth = p.Depth[:0]
	p.AcrossTrack = p.AcrossTrack[:0]
	p.AlongTrack = p.AlongTrack[:0]
	p.BeamFlags = p.BeamFlags[:0]
	p.Bath = p.Bath[:0]
	p.BathAcross = p.BathAcross[:0]
	p.BathAlong = p.BathAlong[:0]
	p.Sectors = p.Sectors[:0]
	p.NBeams, p.NBeamsMax, p.NBeamsSS, p.NPixels = 0, 0, 0, 0
	p.RawBeamVariant = 0
	for k := range p.ReadFlags {
		delete(p.ReadFlags, k)
	}
	for i := range p.ProcessedSS {
		p.ProcessedSS[i] = 0
		p.SSAlongTrack[i] = 0
	}
}

// AttitudeSample is one (t_offset, roll, pitch, heave, heading) tuple.
type AttitudeSample struct {
	OffsetMsec int16
	Roll       float32 // degrees
	Pitch      float32
	Heave      float32 // meters
	Heading    float32 // degrees
}

// AttitudeRecord, HeadingRecord, SSVRecord, TiltRecord share the same
// header+samples shape (§3); they are kept as distinct types because each
// datagram has its own sensor-status convention and sample encoding.
type AttitudeRecord struct {
	Base         Timestamp
	Count        uint16
	Serial       uint16
	Samples      []AttitudeSample
	SensorStatus uint8
}

type HeadingRecord struct {
	Base    Timestamp
	Count   uint16
	Serial  uint16
	Offsets []int16
	Values  []float32 // degrees
	Status  uint8
}

type SSVRecord struct {
	Base    Timestamp
	Count   uint16
	Serial  uint16
	Offsets []int16
	Values  []float32 // m/s
}

type TiltRecord struct {
	Base    Timestamp
	Count   uint16
	Serial  uint16
	Offsets []int16
	Values  []float32 // degrees
}

// InstallationRecord holds the parsed KEY=value ASCII parameter set from a
// Start/Stop/Status/On datagram (§4.4). Unknown keys are preserved verbatim
// in Extra so round-tripping does not silently drop vendor fields this
// library does not interpret.
type InstallationRecord struct {
	Kind       RecordKind
	Timestamp  Timestamp
	SystemSerial uint16
	Params     map[string]string
	Extra      map[string]string
	// ProcessorVersion is PSV="i1.i2.i3" condensed to i3+100*i2+10000*i1,
	// used by decoders to vary parsing across firmware revisions.
	ProcessorVersion int
}

type RunParameterRecord struct {
	Timestamp      Timestamp
	Count          uint16
	Serial         uint16
	OperatorStation uint8
	Mode           uint8
	FilterID       uint8
	MinDepth       float32
	MaxDepth       float32
	AbsorptionCoef float32
	TxPulseLength  float32
	TxBeamWidth    float32
	TxPower        int8
	RxBeamWidth    float32
	RxBandwidth    float32
	RxFixedGain    uint8
	TvgCrossover   uint8
	SSV            float32
	SlexMode       uint8
	SwathWidth     uint16
	BeamSpacing    uint8
	CoverageSector uint8
	StabilizationMode uint8
}

type ClockRecord struct {
	Timestamp      Timestamp
	Count          uint16
	Serial         uint16
	ExternalTimestamp Timestamp
	PPSInUse       bool
}

type TideRecord struct {
	Timestamp Timestamp
	Count     uint16
	Serial    uint16
	TideOffset float32 // meters
}

type HeightRecord struct {
	Timestamp Timestamp
	Count     uint16
	Serial    uint16
	Height    float32 // meters
	HeightType uint8
}

type SVPEntry struct {
	Depth float32 // meters
	Speed float32 // m/s
}

type SVPRecord struct {
	Timestamp      Timestamp
	ProfileTime    Timestamp
	Latitude       float64
	Longitude      float64
	Entries        []SVPEntry
}

type PositionRecord struct {
	Timestamp    Timestamp
	Latitude     float64
	Longitude    float64
	Quality      float32 // meters, measure of fix quality
	Speed        float32 // m/s
	Course       float32 // degrees
	Heading      float32 // degrees
	System       uint8
	Kind         RecordKind // Nav, Nav1, Nav2, or Nav3 decoded from System bits
	InputMessage string     // original ASCII (e.g. NMEA) sentence
}

// WaterColumnTx is one transmit sector slice of a water column datagram.
type WaterColumnTx struct {
	TiltAngle float32 // degrees
	CenterFreq float32 // Hz
	BandWidth  float32 // Hz
}

// WaterColumnBeam is one receive beam slice of a water column datagram: the
// beam's pointing angle, start range, and its raw per-sample amplitudes.
type WaterColumnBeam struct {
	BeamAngle  float32 // degrees
	StartRange uint16
	Amplitudes []int8
}

// WaterColumnRecord holds the raw per-sample backscatter time series used
// for water-column imaging and gas-seep/midwater-target detection, absent
// from the distilled bathymetry-only data model (SPEC_FULL.md §3).
type WaterColumnRecord struct {
	Timestamp Timestamp
	Count     uint16
	Serial    uint16
	Tx        []WaterColumnTx
	Beams     []WaterColumnBeam
}

// Comment is a free-text MB-System style annotation (C9).
type Comment struct {
	Timestamp Timestamp
	Value     string
}

// Store is the root, typed, in-memory record set a Reader decodes into
// (C8). It owns every sub-buffer exclusively; nothing else holds a
// reference to them.
type Store struct {
	Installation *InstallationRecord
	RunParameter *RunParameterRecord
	Clock        *ClockRecord
	Tide         *TideRecord
	Height       *HeightRecord
	SVP          *SVPRecord
	Position     *PositionRecord
	WaterColumn  *WaterColumnRecord
	Comments     []Comment

	Attitude *AttitudeRecord
	Heading  *HeadingRecord
	SSV      *SSVRecord
	Tilt     *TiltRecord

	// Heads[0] and Heads[1] are the in-progress or most recently completed
	// ping for each transducer head; single-head systems only ever use [0].
	Heads [2]*PingRecord

	// AttitudeCache backs §4.6's interpolation queries; lazily populated as
	// Attitude datagrams arrive.
	AttitudeCache *AttitudeCache
}

// NewStore allocates an empty Store. Ping and attitude/heading/SSV/tilt
// sub-buffers are left nil and created lazily on first encounter of their
// datagram kind, per §3's lifecycle rule.
func NewStore() *Store {
	return &Store{
		AttitudeCache: NewAttitudeCache(),
	}
}

// Ping returns the in-progress PingRecord for a head, allocating it on
// first use.
func (s *Store) Ping(head int) *PingRecord {
	if s.Heads[head] == nil {
		s.Heads[head] = NewPingRecord()
	}
	return s.Heads[head]
}
