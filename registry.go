package emgsf

// DecodeFunc parses one datagram body into the Store (C4's decode side).
// Decoders live in the emgsf/decode subpackage and register themselves
// here from an init() function — the registry exists so the root package
// can dispatch on datagram type without importing emgsf/decode, which
// itself must import emgsf for the Store/record types; a direct import
// the other way would be a cycle. This is the same driver-registration
// shape as database/sql's driver registry.
// head selects which of Store.Heads[0]/Heads[1] a ping-contributing
// datagram belongs to; it is ignored by decoders for non-ping record kinds.
type DecodeFunc func(o ByteOrder, body []byte, s *Store, head int) error

// EncodeFunc is the inverse: it serializes a Store's current record of the
// given kind into a body (to be wrapped by WriteFrame), returning the
// datagram body bytes.
type EncodeFunc func(o ByteOrder, s *Store, head int) ([]byte, error)

var (
	decoders = map[DatagramType]DecodeFunc{}
	encoders = map[DatagramType]EncodeFunc{}
)

// RegisterDecoder installs the decode function for a datagram type.
// Intended to be called from emgsf/decode's init().
func RegisterDecoder(t DatagramType, fn DecodeFunc) {
	decoders[t] = fn
}

// RegisterEncoder installs the encode function for a datagram type.
// Intended to be called from emgsf/encode's init().
func RegisterEncoder(t DatagramType, fn EncodeFunc) {
	encoders[t] = fn
}

// Decoder looks up the registered decoder for a datagram type, if any.
func Decoder(t DatagramType) (DecodeFunc, bool) {
	fn, ok := decoders[t]
	return fn, ok
}

// Encoder looks up the registered encoder for a datagram type, if any.
func Encoder(t DatagramType) (EncodeFunc, bool) {
	fn, ok := encoders[t]
	return fn, ok
}
