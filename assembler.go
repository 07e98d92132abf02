package emgsf

import "log"

// Completed is one fully assembled output from the read loop: either a
// finished ping (possibly dual-head) or a non-ping record, surfaced in the
// order the assembler completes them (§5 "Ordering guarantees").
type Completed struct {
	Kind RecordKind
	Ping *PingRecord // set when Kind == KindData
}

// assembler holds the cross-call state design note §9 asks to be captured
// explicitly rather than scattered across "save slot" fields on the stream:
// what sub-record is expected next per head, what started the current ping
// per head, and a label that was read but belongs to the next ping
// (pending_label). expect/firstType are indexed by head so a dual-head
// EM3002 stream tracks each head's own bath→sidescan pairing independently;
// sharing one pair of pointers across both heads would let head 1's bath
// datagram be mistaken for head 0's next bath (§4.5 "Dual-head EM3002").
type assembler struct {
	expect       [2]*DatagramType
	firstType    [2]*DatagramType
	pendingLabel *FrameLabel
	dualHead     bool
	serials      [2]uint16
	serialsSeen  int
	verbose      int
}

// feedPing is called once a BathExtended, RawBeam, or SidescanExtended
// datagram has decoded into a ping record; it drives the state machine in
// §4.5 and returns a completed ping when assembly finishes, or (false) if
// more frames are still expected.
func (a *assembler) feedPing(s *Store, t DatagramType, head int) (*PingRecord, bool, error) {
	ping := s.Heads[head]
	extType := DatagramBathExt

	switch {
	case t == DatagramBathExt && a.expect[head] == nil:
		a.firstType[head] = &extType
		ssType := DatagramSidescanExt
		a.expect[head] = &ssType
		return nil, false, nil

	case t == DatagramSidescanExt && a.expect[head] == nil:
		// sidescan with no preceding bath: emit immediately, nothing to pair.
		return a.emit(s, ping, head)

	case t == DatagramBathExt && a.expect[head] != nil && *a.expect[head] == DatagramSidescanExt:
		// bath after bath: previous ping lacked sidescan.
		out, ok, err := a.emit(s, s.Heads[head], head)
		extType2 := DatagramBathExt
		a.firstType[head] = &extType2
		ssType := DatagramSidescanExt
		a.expect[head] = &ssType
		return out, ok, err

	case t == DatagramSidescanExt && a.expect[head] != nil && *a.expect[head] == DatagramSidescanExt:
		if ping.SSTimestamp.Equal(ping.Timestamp) {
			a.expect[head] = nil
			return a.emit(s, ping, head)
		}
		if ping.Timestamp.Before(ping.SSTimestamp) {
			// bath earlier than sidescan: reject the mismatched sidescan,
			// emit bath-only.
			ping.SSTimestamp = Timestamp{}
			a.expect[head] = nil
			return a.emit(s, ping, head)
		}
		// sidescan earlier than bath: unintelligible, drop the ping.
		a.expect[head] = nil
		ping.Reset()
		return nil, false, ErrUnintelligible

	default:
		// RawBeam variants and any other ping-contributing datagram simply
		// add data to the in-progress ping without changing expect.
		return nil, false, nil
	}
}

// emit finalizes a ping, validating the integrity checks in §4.5, and
// resets the buffer for reuse.
func (a *assembler) emit(s *Store, p *PingRecord, head int) (*PingRecord, bool, error) {
	if p == nil {
		return nil, false, nil
	}
	if p.NBeams > p.NBeamsMax || p.NBeamsMax > MaxBeams {
		p.Reset()
		return nil, false, ErrUnintelligible
	}
	if len(p.Sectors) > MaxTx {
		p.Reset()
		return nil, false, ErrUnintelligible
	}
	if p.NPixels > MaxRawPixels {
		// excess bytes are still consumed by the decoder before this point;
		// here we only reject the record.
		p.Reset()
		return nil, false, ErrUnintelligible
	}
	for i := 1; i < len(p.BeamNumber); i++ {
		if p.BeamNumber[i] <= p.BeamNumber[i-1] {
			p.Reset()
			return nil, false, ErrUnintelligible
		}
	}
	// Dual-head EM3002 (§4.5 "Dual-head EM3002"): a ping is only complete
	// when its count matches the sibling head's in-progress count, in
	// addition to this head having its own bath+SS pair. The
	// sibling is considered not yet relevant if it hasn't started a ping
	// (NBeams == 0, including just after its own emit's Reset).
	if a.dualHead {
		sibling := s.Heads[1-head]
		if sibling != nil && sibling.NBeams > 0 && sibling.Count != p.Count {
			p.Reset()
			return nil, false, ErrUnintelligible
		}
	}

	a.checkBeamIndex(p)

	p.Head = head
	out := *p
	p.Reset()
	return &out, true, nil
}

// checkBeamIndex implements §4.5 "Beam-index matching": for a ping whose
// bath and sidescan beam counts agree, each png_beam_num[i] must equal
// png_beam_index[i] ± 1. A mismatch is a diagnostic, not a failure, and is
// only logged at WithVerbose(level >= 1).
func (a *assembler) checkBeamIndex(p *PingRecord) {
	if a.verbose < 1 {
		return
	}
	if p.NBeams == 0 || p.NBeams != p.NBeamsSS {
		return
	}
	if len(p.BeamNumber) != len(p.BeamIndex) {
		return
	}
	for i := range p.BeamNumber {
		diff := int(p.BeamNumber[i]) - int(p.BeamIndex[i])
		if diff != 1 && diff != -1 {
			log.Printf("emgsf: beam-index mismatch at beam %d: png_beam_num=%d png_beam_index=%d", i, p.BeamNumber[i], p.BeamIndex[i])
		}
	}
}

// interrupt is called when a Start/Stop/meta datagram arrives while a ping
// is in progress (§4.5 "ping broken by meta"): the in-progress partial ping
// is emitted as complete and expectation resets.
func (a *assembler) interrupt(s *Store, head int) (*PingRecord, bool, error) {
	if a.expect[head] == nil {
		return nil, false, nil
	}
	a.expect[head] = nil
	return a.emit(s, s.Heads[head], head)
}

// resolveHead derives which of the two transducer heads a dual-head EM3002
// datagram belongs to, from the serial-number mismatch on the second head's
// record (§4.5 "Dual-head EM3002").
func (a *assembler) resolveHead(serial uint16) int {
	if a.serialsSeen == 0 {
		a.serials[0] = serial
		a.serialsSeen = 1
		return 0
	}
	if serial == a.serials[0] {
		return 0
	}
	if a.serialsSeen == 1 {
		a.serials[1] = serial
		a.serialsSeen = 2
		a.dualHead = true
	}
	if serial == a.serials[1] {
		return 1
	}
	return 0
}
