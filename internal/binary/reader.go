// Package binary provides bounds-checked binary reading primitives for
// untrusted tag data.
package binary

import (
	"fmt"
	"io"

	"github.com/simonhull/id3meta/internal/types"
)

// SafeReader wraps io.ReaderAt with bounds checking and helpful error messages.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the size of the underlying source.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadAt fills b from offset off. A read that would cross the end of the
// source fails with *types.OutOfBoundsError before touching the reader.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if err := sr.check(off, len(b), what); err != nil {
		return err
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}

	if n < len(b) {
		return fmt.Errorf("%s: short read for %s at offset %d: got %d bytes, expected %d",
			sr.path, what, off, n, len(b))
	}

	return nil
}

// ReadFull allocates and reads n bytes at off. The range is checked against
// the source size before anything is allocated.
func (sr *SafeReader) ReadFull(off int64, n int, what string) ([]byte, error) {
	if err := sr.check(off, n, what); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := sr.ReadAt(buf, off, what); err != nil {
		return nil, err
	}
	return buf, nil
}

func (sr *SafeReader) check(off int64, n int, what string) error {
	if off < 0 || n < 0 || off >= sr.size || off+int64(n) > sr.size {
		return &types.OutOfBoundsError{
			Path:   sr.path,
			What:   what,
			Offset: off,
			Length: n,
			Size:   sr.size,
		}
	}
	return nil
}
