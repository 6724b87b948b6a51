// Package textenc turns raw tag bytes into trimmed strings.
//
// All decoding is strict: a byte sequence that is invalid for its encoding
// yields an *types.EncodingError and no text, never a partially decoded
// string.
package textenc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/simonhull/id3meta/internal/types"
)

// ID3v2 text encoding selectors (first byte of every text frame).
const (
	SelectorLegacy  byte = 0 // ISO-8859-1 per the standard; read with the legacy charset
	SelectorUTF16   byte = 1 // UTF-16 with byte order mark
	SelectorUTF16BE byte = 2 // UTF-16BE without BOM (v2.4)
	SelectorUTF8    byte = 3 // UTF-8 (v2.4)
)

var (
	// A missing BOM falls back to big-endian, as most readers do.
	utf16BOM = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	utf16BE  = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
)

// Decoder decodes tag text using a configured legacy single-byte charset.
// A Decoder holds no mutable state and is safe for concurrent use.
type Decoder struct {
	legacy encoding.Encoding
}

// NewDecoder returns a Decoder using legacy for selector-0 frames and as
// the ID3v1 fallback. A nil legacy selects DefaultLegacy.
func NewDecoder(legacy encoding.Encoding) *Decoder {
	if legacy == nil {
		legacy = DefaultLegacy
	}
	return &Decoder{legacy: legacy}
}

// Legacy returns the configured legacy encoding.
func (d *Decoder) Legacy() encoding.Encoding {
	return d.legacy
}

// Frame decodes an ID3v2 text frame payload: one selector byte followed by
// the encoded text. It returns "" with a nil error for empty text, and ""
// with an error for an unknown selector or undecodable bytes.
func (d *Decoder) Frame(payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", nil
	}

	selector, text := payload[0], payload[1:]
	var s string
	var err error
	switch selector {
	case SelectorLegacy:
		s, err = Decode(d.legacy, text)
	case SelectorUTF16:
		s, err = Decode(utf16BOM, text)
	case SelectorUTF16BE:
		s, err = Decode(utf16BE, text)
	case SelectorUTF8:
		s, err = DecodeUTF8(text)
	default:
		return "", &types.EncodingError{
			Encoding: fmt.Sprintf("selector %d", selector),
			Reason:   "unknown text encoding",
		}
	}
	if err != nil {
		return "", err
	}
	return Trim(s), nil
}

// Fixed decodes a fixed-width ID3v1 field: UTF-8 first, then the legacy
// charset. Both failing yields the legacy error.
func (d *Decoder) Fixed(field []byte) (string, error) {
	if s, err := DecodeUTF8(field); err == nil {
		return Trim(s), nil
	}
	s, err := Decode(d.legacy, field)
	if err != nil {
		return "", err
	}
	return Trim(s), nil
}

// Decode decodes b with enc. x/text substitutes U+FFFD for bytes it cannot
// map; any substitution is reported as an error.
func Decode(enc encoding.Encoding, b []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", &types.EncodingError{Encoding: Name(enc), Reason: err.Error()}
	}
	if i := strings.IndexRune(string(out), utf8.RuneError); i >= 0 {
		return "", &types.EncodingError{
			Encoding: Name(enc),
			Reason:   fmt.Sprintf("invalid byte sequence near output offset %d", i),
		}
	}
	return string(out), nil
}

// DecodeUTF8 validates b as UTF-8.
func DecodeUTF8(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", &types.EncodingError{Encoding: "UTF-8", Reason: "invalid byte sequence"}
	}
	return string(b), nil
}

// Trim strips NUL padding and surrounding whitespace/control characters.
func Trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}
