// Package decode implements the per-datagram decoders (C4's read side) for
// every Simrad EM record kind, registering each into the emgsf package's
// decoder registry the way a database/sql driver registers itself: the
// dispatch table lives in emgsf (so the root package never imports this
// one), and this package's init() populates it on import.
package decode

import (
	"strconv"
	"strings"

	"github.com/oceansensing/emgsf"
)

func init() {
	emgsf.RegisterDecoder(emgsf.DatagramStart, DecodeInstallation)
	emgsf.RegisterDecoder(emgsf.DatagramStop, DecodeInstallation)
	emgsf.RegisterDecoder(emgsf.DatagramOn, DecodeInstallation)
	emgsf.RegisterDecoder(emgsf.DatagramOff, DecodeInstallation)
	emgsf.RegisterDecoder(emgsf.DatagramStop2, DecodeInstallation)
}

// installationHeaderSize is the fixed binary prefix before the ASCII
// KEY=value sequence (§4.4).
const installationHeaderSize = 14

// DecodeInstallation parses a Start/Stop/Status/On datagram: a 14-byte
// binary prefix then a comma-separated ASCII KEY=value payload, following
// the teacher's own "read fixed header, then walk a delimited string"
// idiom from its PROCESSING_PARAMETERS decoder.
func DecodeInstallation(o emgsf.ByteOrder, body []byte, s *emgsf.Store, head int) error {
	if len(body) < installationHeaderSize {
		return emgsf.ErrEof
	}

	date := getU32(o, body[0:4])
	msec := getU32(o, body[4:8])
	serial := getU16(o, body[12:14])

	rec := &emgsf.InstallationRecord{
		Timestamp:    emgsf.Timestamp{Date: date, Msec: msec},
		SystemSerial: serial,
		Params:       make(map[string]string),
		Extra:        make(map[string]string),
	}

	ascii := strings.TrimRight(string(body[installationHeaderSize:]), "\x00")
	// COM= values may contain commas encoded as '^', so the top-level comma
	// split leaves an embedded comment whole; the '^' is turned back into a
	// comma per field after the split.
	for _, field := range strings.Split(ascii, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		kv := strings.SplitN(field, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key, val := kv[0], kv[1]
		if key == "COM" {
			val = strings.ReplaceAll(val, "^", ",")
		}
		if knownInstallationKeys[key] {
			rec.Params[key] = val
		} else {
			rec.Extra[key] = val
		}
		if key == "PSV" {
			rec.ProcessorVersion = parseProcessorVersion(val)
		}
	}

	s.Installation = rec
	return nil
}

// parseProcessorVersion condenses "i1.i2.i3" to i3+100*i2+10000*i1 (§4.4).
func parseProcessorVersion(v string) int {
	parts := strings.SplitN(v, ".", 3)
	if len(parts) != 3 {
		return 0
	}
	i1, _ := strconv.Atoi(parts[0])
	i2, _ := strconv.Atoi(parts[1])
	i3, _ := strconv.Atoi(parts[2])
	return i3 + 100*i2 + 10000*i1
}

// knownInstallationKeys is the fixed enumerated key set from §4.4.
var knownInstallationKeys = func() map[string]bool {
	keys := []string{
		"WLZ", "SMH", "S1Z", "S1X", "S1Y", "S1H", "S1R", "S1P", "S1N",
		"S2Z", "S2X", "S2Y", "S2H", "S2R", "S2P", "S2N",
		"GO1", "GO2", "TSV", "RSV", "BSV", "PSV", "OSV",
		"DSD", "DSO", "DSF", "DSH", "APS",
		"P1M", "P2M", "P3M", "P1T", "P2T", "P3T", "P1Z", "P2Z", "P3Z",
		"P1X", "P2X", "P3X", "P1Y", "P2Y", "P3Y", "P1D", "P2D", "P3D",
		"P1G", "P2G", "P3G",
		"MSZ", "MSX", "MSY", "MRP", "MSD", "MSR", "MSP", "MSG",
		"GCG", "CPR", "ROP", "SID", "PLL", "COM",
	}
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}()
