package core

import (
	"fmt"
	"unicode/utf16"

	"github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/utils"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// utf16LEDecoder decodes UTF-16LE with an explicit (non-BOM-sensing) byte
// order, substituting U+FFFD for unpaired surrogates rather than failing -
// this matches how MessageBin payloads have been observed to tolerate
// encoder quirks in the wild.
var utf16LEDecoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

// DecodeUTF16LE decodes a null-terminated UTF-16LE byte slice into a Go
// string. The terminating double-zero is not included in the result. data
// must have even length; an odd-length slot is a malformed file.
func DecodeUTF16LE(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", utils.WrapError("decode utf-16 string",
			fmt.Errorf("%w: odd byte length %d", utils.ErrTruncatedPayload, len(data)))
	}

	trimmed := data
	for len(trimmed) >= 2 && trimmed[len(trimmed)-2] == 0 && trimmed[len(trimmed)-1] == 0 {
		trimmed = trimmed[:len(trimmed)-2]
	}

	out, _, err := transform.Bytes(utf16LEDecoder, trimmed)
	if err != nil {
		return "", utils.WrapError("decode utf-16 string", err)
	}
	return string(out), nil
}

// EncodeUTF16LE encodes s to UTF-16LE and appends a null terminator. The
// encode path uses the standard library's unicode/utf16 directly instead
// of a transform.Transformer pipeline, because TruncateUTF16LE below needs
// byte-exact control over where a surrogate pair gets cut - something a
// streaming Transformer does not expose.
func EncodeUTF16LE(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, len(units)*2+2)
	for i, u := range units {
		out[i*2] = byte(u)
		out[i*2+1] = byte(u >> 8)
	}
	// trailing null terminator already zero from make()
	return out
}

// TruncateUTF16LE truncates an encoded (but not yet null-terminated)
// UTF-16LE byte sequence to at most maxBytes bytes, rounding down to an
// even boundary and never splitting a surrogate pair. It returns the
// truncated bytes with a null terminator appended.
func TruncateUTF16LE(encoded []byte, maxBytes int) []byte {
	limit := maxBytes
	if limit%2 != 0 {
		limit--
	}
	if limit < 0 {
		limit = 0
	}
	if limit > len(encoded) {
		limit = len(encoded) - (len(encoded) % 2)
	}

	cut := limit
	if cut >= 2 {
		unit := uint16(encoded[cut-2]) | uint16(encoded[cut-1])<<8
		if utf16.IsSurrogate(rune(unit)) && isHighSurrogateUnit(unit) {
			// Cutting right after a high surrogate would leave it unpaired;
			// drop the whole pair.
			cut -= 2
		}
	}

	out := make([]byte, cut+2)
	copy(out, encoded[:cut])
	return out
}

func isHighSurrogateUnit(u uint16) bool {
	return u >= 0xD800 && u <= 0xDBFF
}
