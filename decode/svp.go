package decode

import "github.com/oceansensing/emgsf"

func init() {
	emgsf.RegisterDecoder(emgsf.DatagramSVP, DecodeSVP)
	emgsf.RegisterDecoder(emgsf.DatagramSVP2, DecodeSVP)
}

const (
	svpHeaderSize = 24
	svpEntrySize  = 4
)

// DecodeSVP decodes the sound velocity profile datagram: a header (record
// timestamp, profile timestamp, origin lat/lon) followed by (depth_dm,
// speed_dms) pairs whose count is taken from the body length (§4.4). Both
// the vendor (0x56) and
// "new" (0x55) SVP variants share this layout closely enough to route
// through one decoder.
func DecodeSVP(o emgsf.ByteOrder, body []byte, s *emgsf.Store, head int) error {
	if len(body) < svpHeaderSize {
		return emgsf.ErrEof
	}
	rec := &emgsf.SVPRecord{
		Timestamp: emgsf.Timestamp{
			Date: getU32(o, body[0:4]),
			Msec: getU32(o, body[4:8]),
		},
		ProfileTime: emgsf.Timestamp{
			Date: getU32(o, body[8:12]),
			Msec: getU32(o, body[12:16]),
		},
		Latitude:  float64(getI32(o, body[16:20])) / 20000000.0,
		Longitude: float64(getI32(o, body[20:24])) / 10000000.0,
	}

	n := (len(body) - svpHeaderSize) / svpEntrySize
	rec.Entries = make([]emgsf.SVPEntry, 0, n)
	off := svpHeaderSize
	for i := 0; i < n && off+svpEntrySize <= len(body); i++ {
		rec.Entries = append(rec.Entries, emgsf.SVPEntry{
			Depth: float32(getU16(o, body[off:off+2])) / 10,
			Speed: float32(getU16(o, body[off+2:off+4])) / 10,
		})
		off += svpEntrySize
	}

	s.SVP = rec
	return nil
}
