package binary

import (
	"encoding/binary"

	"github.com/simonhull/id3meta/internal/types"
)

// Span is a bounds-checked view over an in-memory tag buffer.
//
// Every accessor validates offset and length against the span before
// indexing, so corrupt size fields produce *types.OutOfBoundsError instead
// of a panic.
type Span struct {
	buf  []byte
	path string
}

// NewSpan wraps buf. path is only used in error messages.
func NewSpan(buf []byte, path string) Span {
	return Span{buf: buf, path: path}
}

// Len returns the logical length of the span.
func (s Span) Len() int {
	return len(s.buf)
}

// Bytes returns the backing slice. Writes through it are visible to the span.
func (s Span) Bytes() []byte {
	return s.buf
}

// Truncate returns the span shortened to n bytes. n larger than Len is
// clamped.
func (s Span) Truncate(n int) Span {
	if n < 0 {
		n = 0
	}
	if n > len(s.buf) {
		n = len(s.buf)
	}
	return Span{buf: s.buf[:n], path: s.path}
}

// Slice returns n bytes at off.
func (s Span) Slice(off, n int, what string) ([]byte, error) {
	if off < 0 || n < 0 || off > len(s.buf) || n > len(s.buf)-off {
		return nil, &types.OutOfBoundsError{
			Path:   s.path,
			What:   what,
			Offset: int64(off),
			Length: n,
			Size:   int64(len(s.buf)),
		}
	}
	return s.buf[off : off+n], nil
}

// Uint16 reads a big-endian uint16 at off.
func (s Span) Uint16(off int, what string) (uint16, error) {
	b, err := s.Slice(off, 2, what)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// Uint24 reads a big-endian 24-bit integer at off.
func (s Span) Uint24(off int, what string) (uint32, error) {
	b, err := s.Slice(off, 3, what)
	if err != nil {
		return 0, err
	}
	return Uint24(b), nil
}

// Uint32 reads a big-endian uint32 at off.
func (s Span) Uint32(off int, what string) (uint32, error) {
	b, err := s.Slice(off, 4, what)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Synchsafe reads a 4-byte synchsafe integer at off.
func (s Span) Synchsafe(off int, what string) (uint32, error) {
	b, err := s.Slice(off, 4, what)
	if err != nil {
		return 0, err
	}
	return Synchsafe(b), nil
}
