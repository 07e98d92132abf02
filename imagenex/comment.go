package imagenex

import "bytes"

// commentMarkerOffset is where the Imagenex codec signals a comment
// record, distinct from the Simrad codec's "#" at body offset 0 (§4.4
// "Comment").
const commentMarkerOffset = 7

// IsComment reports whether a raw 256-byte header block is actually a
// comment record rather than a survey ping.
func IsComment(raw []byte) bool {
	return len(raw) > commentMarkerOffset+1 &&
		raw[commentMarkerOffset] == '#' && raw[commentMarkerOffset+1] == '#'
}

// DecodeComment extracts the null-terminated ASCII comment payload
// following the "##" marker.
func DecodeComment(raw []byte) string {
	if len(raw) <= commentMarkerOffset+2 {
		return ""
	}
	body := raw[commentMarkerOffset+2:]
	if i := bytes.IndexByte(body, 0); i >= 0 {
		body = body[:i]
	}
	return string(body)
}

// EncodeComment produces a comment record of the given total length,
// padding with NUL bytes.
func EncodeComment(value string, length int) []byte {
	raw := make([]byte, length)
	raw[commentMarkerOffset] = '#'
	raw[commentMarkerOffset+1] = '#'
	copy(raw[commentMarkerOffset+2:], value)
	return raw
}
