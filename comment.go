package emgsf

import "strings"

// commentMarker is the leading byte that signals a comment body rather than
// a datagram payload proper, per §4.4's "Comment" bullet.
const commentMarker = '#'

// IsComment reports whether a decoded datagram body is a comment record.
func IsComment(body []byte) bool {
	return len(body) > 0 && body[0] == commentMarker
}

// DecodeComment strips the marker and trailing NUL padding from a comment
// body, matching the teacher's own trim-and-store idiom in its comment
// decoder.
func DecodeComment(ts Timestamp, body []byte) Comment {
	value := strings.TrimRight(string(body[1:]), "\x00")
	return Comment{Timestamp: ts, Value: value}
}

// EncodeComment is the inverse of DecodeComment.
func EncodeComment(c Comment) []byte {
	body := make([]byte, 0, len(c.Value)+1)
	body = append(body, commentMarker)
	body = append(body, []byte(c.Value)...)
	return body
}
