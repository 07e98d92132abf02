// Package encode serializes Store records back into datagram bodies, the
// strict inverse of the emgsf/decode subpackage (§4.8 "writer driver"). As
// with decode, each file registers its Encode* functions into emgsf's
// driver registry from init() to avoid an emgsf <-> encode import cycle.
package encode

import "github.com/oceansensing/emgsf"

func putU16(o emgsf.ByteOrder, b []byte, v uint16) { emgsf.PutU16(o, b, v) }
func putU32(o emgsf.ByteOrder, b []byte, v uint32) { emgsf.PutU32(o, b, v) }
func putI16(o emgsf.ByteOrder, b []byte, v int16)  { emgsf.PutI16(o, b, v) }
func putI32(o emgsf.ByteOrder, b []byte, v int32)  { emgsf.PutI32(o, b, v) }
