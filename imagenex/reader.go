package imagenex

import (
	"errors"
	"io"
)

// ErrEof mirrors the root package's end-of-stream sentinel so callers can
// use errors.Is across both codecs uniformly.
var ErrEof = errors.New("imagenex: unexpected end of stream")

// Reader sequentially decodes .83P/.83M pings (or comments) from a stream.
// Unlike the Simrad codec, Imagenex records carry their own total length in
// the header (bytes 4-5), so there is no separate frame-scanning stage.
type Reader struct {
	r io.Reader
}

// NewReader wraps a plain io.Reader; Imagenex files have no seek-based
// resync behavior to support (§4.2 applies only to the Simrad codec).
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Record is one decoded .83P/.83M unit: either a Ping or, if Comment is
// non-empty, a comment record.
type Record struct {
	Ping    *Ping
	Comment string
}

// Next reads and decodes one record.
func (rd *Reader) Next() (*Record, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(rd.r, hdr[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, err
	}

	if IsComment(hdr[:]) {
		return &Record{Comment: DecodeComment(hdr[:])}, nil
	}

	h, err := DecodeHeader(hdr[:])
	if err != nil {
		return nil, err
	}

	n := h.NumBeams
	if n > MaxBeams {
		n = MaxBeams
	}
	beamBytes := n * 2
	if h.HasIntensity {
		beamBytes += n * 2
	}
	body := make([]byte, beamBytes)
	if _, err := io.ReadFull(rd.r, body); err != nil {
		return nil, ErrEof
	}

	ranges, intensity, _, err := DecodeBeams(body, h)
	if err != nil {
		return nil, err
	}

	ping := &Ping{Header: h, Range: ranges, Intensity: intensity}

	if h.Magic == magic83M {
		ext := make([]byte, n*beamExtensionSize)
		if _, err := io.ReadFull(rd.r, ext); err == nil {
			if beams, err := Decode83M(ext, n); err == nil {
				ping.Extension = beams
			}
		}
	}

	return &Record{Ping: ping}, nil
}
