// Package codec converts between EncodedBlob strings and raw bytes.
//
// An EncodedBlob is either a data URL ("data:application/pdf;base64,....") or a
// bare base64 payload. Decoding never fails: malformed input yields an empty
// buffer so that a missing decoration degrades instead of aborting a render.
package codec

import (
	"encoding/base64"
	"strings"
	"unicode"
)

const defaultMediaType = "application/octet-stream"

var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// Decode returns the bytes carried by text, or an empty buffer if text is not
// a valid blob. A type prefix up to the first comma is dropped and whitespace
// anywhere in the payload is ignored.
func Decode(text string) []byte {
	payload := text
	if i := strings.IndexByte(payload, ','); i >= 0 {
		payload = payload[i+1:]
	}
	payload = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, payload)
	if payload == "" {
		return []byte{}
	}

	for _, enc := range encodings {
		if b, err := enc.DecodeString(payload); err == nil {
			return b
		}
	}
	return []byte{}
}

// Encode returns a self-describing data URL carrying b.
func Encode(b []byte, mediaType string) string {
	if mediaType == "" {
		mediaType = defaultMediaType
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(b)
}

// MediaType returns the media type declared by a data URL, or "" for a bare payload.
func MediaType(text string) string {
	rest, ok := strings.CutPrefix(strings.TrimSpace(text), "data:")
	if !ok {
		return ""
	}
	end := strings.IndexAny(rest, ";,")
	if end < 0 {
		return ""
	}
	return rest[:end]
}
