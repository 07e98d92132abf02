package encode

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oceansensing/emgsf"
)

func init() {
	emgsf.RegisterEncoder(emgsf.DatagramStart, EncodeInstallation)
	emgsf.RegisterEncoder(emgsf.DatagramStop, EncodeInstallation)
	emgsf.RegisterEncoder(emgsf.DatagramStop2, EncodeInstallation)
	emgsf.RegisterEncoder(emgsf.DatagramOn, EncodeInstallation)
	emgsf.RegisterEncoder(emgsf.DatagramOff, EncodeInstallation)
}

// EncodeInstallation is the strict inverse of decode.DecodeInstallation: a
// 14-byte binary prefix followed by the ASCII KEY=value,... payload, with
// COM='s commas re-escaped to '^' (§4.4).
func EncodeInstallation(o emgsf.ByteOrder, s *emgsf.Store, head int) ([]byte, error) {
	rec := s.Installation
	if rec == nil {
		return nil, emgsf.ErrBadKind
	}

	prefix := make([]byte, 14)
	putU32(o, prefix[0:4], rec.Timestamp.Date)
	putU32(o, prefix[4:8], rec.Timestamp.Msec)
	putU16(o, prefix[12:14], rec.SystemSerial)

	_, havePSV := rec.Params["PSV"]

	keys := make([]string, 0, len(rec.Params)+len(rec.Extra))
	for k := range rec.Params {
		keys = append(keys, k)
	}
	for k := range rec.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		v := rec.Params[k]
		if v == "" {
			v = rec.Extra[k]
		}
		if k == "COM" {
			v = strings.ReplaceAll(v, ",", "^")
		}
		fmt.Fprintf(&sb, "%s=%s", k, v)
	}
	// ProcessorVersion is parsed from PSV on decode; only synthesize a PSV
	// field here when the caller set ProcessorVersion directly without also
	// populating Params["PSV"], otherwise this would duplicate the key.
	if rec.ProcessorVersion != 0 && !havePSV {
		i1 := rec.ProcessorVersion / 10000
		i2 := (rec.ProcessorVersion / 100) % 100
		i3 := rec.ProcessorVersion % 100
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "PSV=%d.%d.%d", i1, i2, i3)
	}

	payload := append(prefix, []byte(sb.String())...)
	return payload, nil
}
