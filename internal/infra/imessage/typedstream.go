package imessage

import (
	"encoding/binary"
	"strings"
	"unicode/utf8"
)

// attributedBody blobs use Apple's typedstream archive format. This does
// not fully parse the archive: the plain text payload sits behind a
// 0x01 0x2B marker followed by a variable-width length prefix, and the
// first marker yielding an in-bounds, non-empty UTF-8 string wins.
const (
	markerFirst  = 0x01
	markerSecond = 0x2B

	lenDirectMax = 0x80 // single byte below this is the length itself
	lenEscape2   = 0x81 // next 2 bytes are a big-endian length
	lenEscape4   = 0x82 // next 4 bytes are a big-endian length
)

// ExtractText decodes plain text out of an attributedBody blob. Returns
// ("", false) when the blob is empty, malformed, or holds no text. Never
// panics on malformed input.
func ExtractText(blob []byte) (string, bool) {
	for i := 0; i+2 < len(blob); i++ {
		if blob[i] != markerFirst || blob[i+1] != markerSecond {
			continue
		}

		offset := i + 2
		first := blob[offset]
		var textLen int

		switch {
		case first < lenDirectMax:
			textLen = int(first)
			offset++
		case first == lenEscape2 && offset+2 < len(blob):
			textLen = int(binary.BigEndian.Uint16(blob[offset+1 : offset+3]))
			offset += 3
		case first == lenEscape4 && offset+4 < len(blob):
			textLen = int(binary.BigEndian.Uint32(blob[offset+1 : offset+5]))
			offset += 5
		default:
			continue
		}

		// A zero length is a stray marker, not empty text; a declared
		// length past the buffer end means a truncated blob.
		if textLen <= 0 || offset+textLen > len(blob) {
			continue
		}

		text := strings.TrimSpace(string(blob[offset : offset+textLen]))
		if text != "" && utf8.ValidString(text) {
			return text, true
		}
	}

	return "", false
}
