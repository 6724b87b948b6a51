package id3v2

import (
	"fmt"
	"iter"

	"github.com/simonhull/id3meta/internal/types"
)

// Frame is a single frame of a loaded tag. It is only valid during the
// iteration step that produced it.
type Frame struct {
	ID     string // 3-character (v2.2) or 4-character frame ID
	Size   uint32 // Declared payload size
	Flags  uint16 // Frame flags (always 0 for v2.2)
	Offset int    // Offset of the frame header within the tag body

	// Payload after data-length-indicator removal and per-frame resync.
	// Nil for skipped frames.
	Payload []byte

	// Skipped is set for compressed or encrypted frames.
	Skipped bool
}

// Frames iterates over the frames of t in order.
//
// Iteration ends at zero padding or when no room for another frame header
// remains. A frame whose declared size runs past the end of the tag yields
// a *types.CorruptedTagError and ends the iteration.
func (t *Tag) Frames() iter.Seq2[Frame, error] {
	return func(yield func(Frame, error) bool) {
		l := t.layout
		size := t.body.Len()
		hw := l.headerWidth

		for offset := t.first; offset+hw < size; {
			hdr, err := t.body.Slice(offset, hw, "frame header")
			if err != nil {
				yield(Frame{}, t.corrupt(err.Error(), offset))
				return
			}

			id := hdr[:l.idWidth]
			frameSize, err := l.frameSize(t.body, offset)
			if err != nil {
				yield(Frame{}, t.corrupt(err.Error(), offset))
				return
			}
			end := uint64(offset) + uint64(hw) + uint64(frameSize)
			if end > uint64(size) {
				yield(Frame{}, t.corrupt(
					fmt.Sprintf("frame %q size %d exceeds tag size %d", id, frameSize, size), offset))
				return
			}

			flags, err := l.flags(t.body, offset)
			if err != nil {
				yield(Frame{}, t.corrupt(err.Error(), offset))
				return
			}
			frame := Frame{
				ID:     string(id),
				Size:   frameSize,
				Flags:  flags,
				Offset: offset,
			}
			offset = int(end)

			if l.skip(flags) {
				frame.Skipped = true
				if !yield(frame, nil) {
					return
				}
				continue
			}

			if isPadding(id) {
				return
			}

			payload := t.body.Bytes()[frame.Offset+hw : offset]
			frame.Payload = l.payload(flags, payload)
			if !yield(frame, nil) {
				return
			}
		}
	}
}

func (t *Tag) corrupt(reason string, offset int) error {
	return &types.CorruptedTagError{
		Path:   t.path,
		Reason: reason,
		Offset: int64(HeaderSize + offset),
	}
}

func isPadding(id []byte) bool {
	for _, b := range id {
		if b != 0 {
			return false
		}
	}
	return true
}
