package textenc

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultLegacyName is the charset assumed for selector-0 and ID3v1 text
// when the caller does not configure one. Encoders in the Russian-speaking
// world wrote cp1251 into "ISO-8859-1" frames far more often than Latin-1.
const DefaultLegacyName = "windows-1251"

// DefaultLegacy is the x/text table behind DefaultLegacyName.
var DefaultLegacy encoding.Encoding = charmap.Windows1251

// Lookup resolves a charset name (WHATWG label or IANA name, case-insensitive)
// to a single-byte x/text encoding.
//
// Multi-byte charsets are rejected: the legacy assumption must map every
// byte independently so a fixed-width field always has a candidate decoding.
func Lookup(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("empty charset name")
	}

	enc, err := htmlindex.Get(name)
	if err != nil || enc == nil {
		enc, err = ianaindex.IANA.Encoding(name)
	}
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q is not supported", name)
	}

	if _, ok := enc.(*charmap.Charmap); !ok {
		return nil, fmt.Errorf("charset %q is not a single-byte charset", name)
	}
	return enc, nil
}

// Name returns a printable name for enc.
func Name(enc encoding.Encoding) string {
	if enc == nil {
		return "<nil>"
	}
	if s, ok := enc.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", enc)
}
