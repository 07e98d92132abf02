package emgsf

import (
	"io"
	"log"
)

// Stream is the surface the frame scanner and Reader read from. Both read
// sequentially, including through payloads they do not decode; neither
// calls Seek.
type Stream interface {
	io.Reader
	Seek(offset int64, whence int) (int64, error)
}

const startByte = 0x02
const endByte = 0x03

// FrameLabel is the 8-byte prefix of every datagram: the size field and the
// four label bytes (start, type, sonar_lo, sonar_hi).
type FrameLabel struct {
	RecordSize uint32
	Type       DatagramType
	SonarID    uint16
	// Offset is a slot for the byte position of the start byte in the
	// stream; Scanner.Next leaves it zero.
	Offset int64
}

func validType(t DatagramType) bool {
	return KnownDatagramTypes[t]
}

// labelValid checks a candidate interpretation of the 4 label bytes against
// the enumerated valid sets for start byte, datagram type, and sonar id.
func labelValid(raw [4]byte, o ByteOrder) (DatagramType, uint16, bool) {
	if raw[0] != startByte {
		return 0, 0, false
	}
	t := DatagramType(raw[1])
	if !validType(t) {
		return 0, 0, false
	}
	var sonar uint16
	if o == BigEndian {
		sonar = uint16(raw[2])<<8 | uint16(raw[3])
	} else {
		sonar = uint16(raw[3])<<8 | uint16(raw[2])
	}
	if _, ok := ValidSonarIDs[sonar]; !ok {
		return 0, 0, false
	}
	return t, sonar, true
}

// Scanner locates datagram boundaries in a byte stream (C2) and resolves
// the stream's byte order on the first successful label (C3). It is owned
// exclusively by one Reader; it holds no shared state.
type Scanner struct {
	order        ByteOrder
	orderKnown   bool
	lastSonar    uint16
	lastSonarSet bool
	resyncs      uint64
	warnedOnce   bool
}

// Resyncs reports how many bytes were discarded across the life of the
// scanner while recovering from corrupt framing.
func (s *Scanner) Resyncs() uint64 { return s.resyncs }

// Order reports the byte order fixed by the first successful frame, or
// LittleEndian before one has been seen.
func (s *Scanner) Order() ByteOrder { return s.order }

// Next scans forward from the stream's current position for the next valid
// frame label, resynchronizing byte-by-byte across corrupt data.
func (s *Scanner) Next(r Stream) (FrameLabel, error) {
	var win [8]byte
	if _, err := io.ReadFull(r, win[:]); err != nil {
		return FrameLabel{}, ErrEof
	}

	for {
		var raw [4]byte
		copy(raw[:], win[4:8])

		if !s.orderKnown {
			// First frame: disambiguate byte order from the candidate sonar id.
			tBE, sonarBE, okBE := labelValid(raw, BigEndian)
			tLE, sonarLE, okLE := labelValid(raw, LittleEndian)
			switch {
			case okBE && !okLE:
				s.order, s.orderKnown = BigEndian, true
				s.lastSonar, s.lastSonarSet = sonarBE, true
				return s.finish(win, tBE, sonarBE), nil
			case okLE && !okBE:
				s.order, s.orderKnown = LittleEndian, true
				s.lastSonar, s.lastSonarSet = sonarLE, true
				return s.finish(win, tLE, sonarLE), nil
			}
			// both or neither matched: fall through to resync
		} else {
			if t, sonar, ok := labelValid(raw, s.order); ok {
				s.lastSonar, s.lastSonarSet = sonar, true
				return s.finish(win, t, sonar), nil
			}
			// Vendor bug: SVP/SSV may carry a zero sonar id. Accept the frame
			// under the already-resolved byte order, falling back to the last
			// known good sonar id.
			if raw[0] == startByte {
				t2 := DatagramType(raw[1])
				sonarRaw := getU16(s.order, raw[2:4])
				if sonarRaw == 0 && s.lastSonarSet && (t2 == DatagramSVP || t2 == DatagramSVP2 || t2 == DatagramSSV) {
					return s.finish(win, t2, s.lastSonar), nil
				}
			}
		}

		// resync: shift left one byte, read one more
		copy(win[0:7], win[1:8])
		var nextByte [1]byte
		if _, err := io.ReadFull(r, nextByte[:]); err != nil {
			return FrameLabel{}, ErrEof
		}
		win[7] = nextByte[0]
		s.resyncs++
		if !s.warnedOnce {
			s.warnedOnce = true
			log.Printf("emgsf: frame resync in progress, skipping corrupt bytes")
		}
	}
}

func (s *Scanner) finish(win [8]byte, t DatagramType, sonar uint16) FrameLabel {
	return FrameLabel{RecordSize: getU32(s.order, win[0:4]), Type: t, SonarID: sonar}
}
