package emgsf

import "log"

// Reader drives the read loop described in §4.5: C2 finds a frame, C3
// fixes byte order on the first frame, C4 (via the decoder registry)
// decodes the payload into the Store, and C5 (the assembler) decides
// whether a ping is complete. It owns its Store exclusively.
type Reader struct {
	stream    Stream
	scanner   Scanner
	asm       assembler
	store     *Store
	verbose   int
	maxBeams  int
}

// Option configures a Reader at construction time.
type Option func(*Reader)

// WithVerbose sets the diagnostic verbosity used by beam-index-mismatch
// logging (§4.5 "Beam-index matching").
func WithVerbose(level int) Option {
	return func(r *Reader) { r.verbose = level }
}

// WithMaxBeams records a beam ceiling on the Reader (default MaxBeams). The
// assembler's integrity checks compare against the MaxBeams constant and do
// not consult this value.
func WithMaxBeams(n int) Option {
	return func(r *Reader) { r.maxBeams = n }
}

// NewReader wraps a Stream with a fresh Store.
func NewReader(s Stream, opts ...Option) *Reader {
	r := &Reader{stream: s, store: NewStore(), maxBeams: MaxBeams}
	for _, o := range opts {
		o(r)
	}
	r.asm.verbose = r.verbose
	return r
}

// Store exposes the Reader's record store.
func (r *Reader) Store() *Store { return r.store }

// ByteOrder reports the stream's resolved byte order (valid after the
// first successful Read call).
func (r *Reader) ByteOrder() ByteOrder { return r.scanner.Order() }

// Resyncs reports the number of bytes discarded while recovering from
// corrupt framing so far.
func (r *Reader) Resyncs() uint64 { return r.scanner.Resyncs() }

// peekSerial reads the serial-number field shared by bath/raw-beam/
// sidescan headers (offset 10, after date, msec and count; 2 bytes) to
// resolve which head a dual-head EM3002 datagram belongs to, ahead of full
// decode.
func peekSerial(o ByteOrder, body []byte) uint16 {
	if len(body) < 12 {
		return 0
	}
	return getU16(o, body[10:12])
}

// Read advances the stream until one record is fully assembled and
// returns it; frames that complete no record are consumed and the loop
// goes on. It returns a non-nil error only for conditions the taxonomy
// marks non-recoverable.
func (r *Reader) Read() (*Completed, error) {
	for {
		if r.asm.pendingLabel != nil {
			// The interrupting datagram was already read and decoded before
			// the partial ping was returned; report it without consuming
			// another frame.
			kind := TypeKind[r.asm.pendingLabel.Type]
			r.asm.pendingLabel = nil
			return &Completed{Kind: kind}, nil
		}
		label, err := r.scanner.Next(r.stream)
		if err != nil {
			return nil, err
		}

		order := r.scanner.Order()
		kind, known := TypeKind[label.Type]

		bodyLen := int(label.RecordSize) - 5
		if bodyLen < 0 {
			return nil, newDecodeError(ErrUnintelligible, label.Type, 0)
		}
		body := make([]byte, bodyLen)
		if _, err := readFull(r.stream, body); err != nil {
			return nil, ErrEof
		}
		// consume the trailing end byte + 2 checksum bytes
		var tail [3]byte
		if _, err := readFull(r.stream, tail[:]); err != nil {
			return nil, ErrEof
		}

		dec, hasDecoder := Decoder(label.Type)
		if !hasDecoder {
			// Known but uninterpreted datagram: already consumed above, so
			// simply loop for the next frame (§4.2 "skip, not a failure").
			continue
		}

		if IsComment(body) {
			ts := Timestamp{} // comment bodies carry their own timestamp fields
			r.store.Comments = append(r.store.Comments, DecodeComment(ts, body))
			continue
		}

		head := 0
		if known && kind == KindData {
			serial := peekSerial(order, body)
			head = r.asm.resolveHead(serial)
		}

		if err := dec(order, body, r.store, head); err != nil {
			if r.verbose > 0 {
				log.Printf("emgsf: decode error for type 0x%02x: %v", label.Type, err)
			}
			continue
		}

		switch kind {
		case KindStart, KindStop, KindStatus:
			if ping, ok, err := r.asm.interrupt(r.store, head); err != nil {
				return nil, err
			} else if ok {
				r.asm.pendingLabel = &label
				return &Completed{Kind: KindData, Ping: ping}, nil
			}
			return &Completed{Kind: kind}, nil

		case KindData:
			ping, ok, err := r.asm.feedPing(r.store, label.Type, head)
			if err != nil {
				if err == ErrUnintelligible {
					continue
				}
				return nil, err
			}
			if ok {
				return &Completed{Kind: KindData, Ping: ping}, nil
			}
			// more frames needed before this ping is complete

		default:
			// Attitude/Heading/SSV/Tilt/Position/Clock/Tide/Height/
			// RunParameter/SVP: emitted immediately; any in-progress ping's
			// expectation persists across this call since assembler state
			// lives on r.asm, not on the loop's stack.
			return &Completed{Kind: kind}, nil
		}
	}
}

func readFull(s Stream, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := s.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, ErrEof
		}
	}
	return total, nil
}
