package emgsf

import "encoding/binary"

// order returns the concrete encoding/binary.ByteOrder for a resolved
// stream byte order. C1 holds no state of its own; every call site threads
// the resolved order explicitly.
func order(o ByteOrder) binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func getU16(o ByteOrder, b []byte) uint16 { return order(o).Uint16(b) }
func getU32(o ByteOrder, b []byte) uint32 { return order(o).Uint32(b) }
func getI16(o ByteOrder, b []byte) int16  { return int16(order(o).Uint16(b)) }
func getI32(o ByteOrder, b []byte) int32  { return int32(order(o).Uint32(b)) }

func putU16(o ByteOrder, b []byte, v uint16) { order(o).PutUint16(b, v) }
func putU32(o ByteOrder, b []byte, v uint32) { order(o).PutUint32(b, v) }
func putI16(o ByteOrder, b []byte, v int16)  { order(o).PutUint16(b, uint16(v)) }
func putI32(o ByteOrder, b []byte, v int32)  { order(o).PutUint32(b, uint32(v)) }

// GetU16, GetU32, GetI16, GetI32, PutU16, PutU32, PutI16, PutI32 are the
// exported forms of the C1 byte codec, used by the decode/encode
// subpackages so the resolved ByteOrder never needs a second
// interpretation of encoding/binary.ByteOrder outside this file.
func GetU16(o ByteOrder, b []byte) uint16    { return getU16(o, b) }
func GetU32(o ByteOrder, b []byte) uint32    { return getU32(o, b) }
func GetI16(o ByteOrder, b []byte) int16     { return getI16(o, b) }
func GetI32(o ByteOrder, b []byte) int32     { return getI32(o, b) }
func PutU16(o ByteOrder, b []byte, v uint16) { putU16(o, b, v) }
func PutU32(o ByteOrder, b []byte, v uint32) { putU32(o, b, v) }
func PutI16(o ByteOrder, b []byte, v int16)  { putI16(o, b, v) }
func PutI32(o ByteOrder, b []byte, v int32)  { putI32(o, b, v) }

// Checksum is the mutable 16-bit additive accumulator folded over every
// byte written (or read) inside a datagram body, from the type byte through
// the end-of-record byte inclusive.
type Checksum struct {
	sum uint16
}

// Add folds one byte into the running sum.
func (c *Checksum) Add(b byte) {
	c.sum += uint16(b)
}

// AddBytes folds a run of bytes into the running sum.
func (c *Checksum) AddBytes(bs []byte) {
	for _, b := range bs {
		c.sum += uint16(b)
	}
}

// Value returns the accumulated 16-bit sum.
func (c *Checksum) Value() uint16 {
	return c.sum
}

// Reset zeros the accumulator for reuse across frames.
func (c *Checksum) Reset() {
	c.sum = 0
}
