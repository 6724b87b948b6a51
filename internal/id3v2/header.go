// Package id3v2 reads artist, album and title from ID3v2.2, 2.3 and 2.4 tags.
//
// The parser loads the whole tag (bounded by a size cap) into memory, undoes
// tag-level unsynchronization, skips the extended header and walks the frame
// list with a version-specific layout. Any structural inconsistency aborts
// the tag: callers get an error and no fields, and fall back to ID3v1.
package id3v2

import (
	"fmt"

	binutil "github.com/simonhull/id3meta/internal/binary"
	"github.com/simonhull/id3meta/internal/types"
)

// HeaderSize is the size of the ID3v2 header (and of the v2.4 footer).
const HeaderSize = 10

// DefaultMaxTagSize caps the declared tag size read into memory.
const DefaultMaxTagSize = 3 * 1024 * 1024

// Tag header flags.
const (
	FlagUnsync       byte = 0x80
	FlagExtended     byte = 0x40 // v2.3/v2.4; compression in v2.2
	FlagExperimental byte = 0x20
	FlagFooter       byte = 0x10 // v2.4 only
)

// Header is the 10-byte ID3v2 tag header.
type Header struct {
	Version  byte   // Major version: 2, 3 or 4
	Revision byte   // Minor version
	Flags    byte   // Tag-level flags
	Size     uint32 // Tag size excluding the header, synchsafe-decoded
}

// ParseHeader validates the marker and version of a 10-byte header.
// It returns types.ErrNoTag when the "ID3" marker is missing.
func ParseHeader(b []byte, path string) (Header, error) {
	if len(b) < HeaderSize || string(b[0:3]) != "ID3" {
		return Header{}, types.ErrNoTag
	}

	h := Header{
		Version:  b[3],
		Revision: b[4],
		Flags:    b[5],
		Size:     binutil.Synchsafe(b[6:10]),
	}

	if h.Version != 2 && h.Version != 3 && h.Version != 4 {
		return Header{}, &types.UnsupportedTagError{
			Path:   path,
			Reason: fmt.Sprintf("unsupported ID3v2 version: 2.%d", h.Version),
		}
	}

	return h, nil
}

// TagSize returns the number of bytes the tag occupies at the start of the
// file, including header and footer.
func (h Header) TagSize() int64 {
	n := int64(HeaderSize) + int64(h.Size)
	if h.Version == 4 && h.Flags&FlagFooter != 0 {
		n += HeaderSize
	}
	return n
}

// String returns e.g. "ID3v2.3.0".
func (h Header) String() string {
	return fmt.Sprintf("ID3v2.%d.%d", h.Version, h.Revision)
}
