package decode

import "github.com/oceansensing/emgsf"

// Local aliases for the root package's exported byte-codec functions, kept
// short since every decoder in this package calls them constantly.
func getU16(o emgsf.ByteOrder, b []byte) uint16 { return emgsf.GetU16(o, b) }
func getU32(o emgsf.ByteOrder, b []byte) uint32 { return emgsf.GetU32(o, b) }
func getI16(o emgsf.ByteOrder, b []byte) int16  { return emgsf.GetI16(o, b) }
func getI32(o emgsf.ByteOrder, b []byte) int32  { return emgsf.GetI32(o, b) }
