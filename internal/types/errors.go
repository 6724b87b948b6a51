package types

import (
	"errors"
	"fmt"
)

// ErrNoTag is returned when the expected tag marker is not present.
var ErrNoTag = errors.New("no tag present")

// OutOfBoundsError is returned when attempting to read beyond a buffer or file.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

// UnsupportedTagError is returned when a tag is recognized but uses a
// version or feature this package does not read (e.g. ID3v2.2 compression).
type UnsupportedTagError struct {
	Path   string
	Reason string
}

func (e *UnsupportedTagError) Error() string {
	return fmt.Sprintf("%s: unsupported tag: %s", e.Path, e.Reason)
}

// CorruptedTagError is returned when tag structure is inconsistent.
type CorruptedTagError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedTagError) Error() string {
	return fmt.Sprintf("%s: corrupted tag at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// EncodingError is returned when text bytes cannot be decoded with the
// encoding they declare.
type EncodingError struct {
	Encoding string
	Reason   string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot decode %s text: %s", e.Encoding, e.Reason)
}

// Warning represents a non-fatal issue encountered during extraction.
//
// Every failure inside the extractor is absorbed and recorded as a Warning:
//   - I/O errors (stage "io")
//   - Structural ID3v2/ID3v1 errors (stages "id3v2", "id3v1")
//   - Undecodable text in a single field (stage "text")
//   - Secondary inspector failures (stage "inspect")
type Warning struct {
	// Stage where the warning occurred
	Stage string

	// Warning message
	Message string

	// Offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

// WarningFrom converts an absorbed error into a Warning, picking up the
// offset from corrupted-tag and out-of-bounds errors.
func WarningFrom(stage string, err error) Warning {
	w := Warning{Stage: stage, Message: err.Error()}

	var corrupt *CorruptedTagError
	var bounds *OutOfBoundsError
	switch {
	case errors.As(err, &corrupt):
		w.Offset = corrupt.Offset
	case errors.As(err, &bounds):
		w.Offset = bounds.Offset
	}
	return w
}
