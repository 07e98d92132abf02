package emgsf

import (
	"errors"
	"fmt"
)

// Sentinel errors matching the error taxonomy: Eof is never recoverable,
// Unintelligible and BadDatagram cause the current record to be skipped,
// WriteFail and BadKind abort the writer.
var (
	ErrEof            = errors.New("stream ended inside a field")
	ErrUnintelligible = errors.New("structural invariant violated")
	ErrBadDatagram    = errors.New("datagram type not in the valid set")
	ErrWriteFail      = errors.New("short write to sink")
	ErrBadKind        = errors.New("writer asked to emit a record kind with no data present")
	ErrComment        = errors.New("record is a comment, not survey data")
)

// DecodeError wraps one of the sentinel kinds above with the datagram type
// and byte offset it occurred at, so callers can both errors.Is against the
// taxonomy and log a precise location.
type DecodeError struct {
	Kind   error
	Type   DatagramType
	Offset int64
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: datagram type 0x%02x at offset %d", e.Kind, byte(e.Type), e.Offset)
}

func (e *DecodeError) Unwrap() error {
	return e.Kind
}

func newDecodeError(kind error, t DatagramType, offset int64) *DecodeError {
	return &DecodeError{Kind: kind, Type: t, Offset: offset}
}
