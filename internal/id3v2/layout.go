package id3v2

import (
	"fmt"

	binutil "github.com/simonhull/id3meta/internal/binary"
	"github.com/simonhull/id3meta/internal/types"
)

// layout describes one ID3v2 version's binary format. Exactly one layout is
// selected per tag and threaded through the frame loop.
type layout struct {
	version     byte
	idWidth     int
	headerWidth int

	// ids maps the frame identifiers this package reads to fields.
	ids map[string]types.Field

	// prepare checks tag flags, undoes tag-level unsynchronization and
	// skips the extended header. It returns the usable body and the offset
	// of the first frame.
	prepare func(h Header, body binutil.Span) (binutil.Span, int, error)

	// frameSize reads the payload size of the frame whose header starts at off.
	frameSize func(body binutil.Span, off int) (uint32, error)

	// flags reads the flags of the frame whose header starts at off; zero for v2.2.
	flags func(body binutil.Span, off int) (uint16, error)

	// skip reports frames that are compressed or encrypted.
	skip func(flags uint16) bool

	// payload undoes per-frame transformations in place.
	payload func(flags uint16, p []byte) []byte
}

var (
	v22 = &layout{
		version:     2,
		idWidth:     3,
		headerWidth: 6,
		ids: map[string]types.Field{
			"TP1": types.FieldArtist,
			"TAL": types.FieldAlbum,
			"TT2": types.FieldTitle,
		},
		prepare:   prepareV22,
		frameSize: sizeV22,
		flags:     func(binutil.Span, int) (uint16, error) { return 0, nil },
		skip:      func(uint16) bool { return false },
		payload:   func(_ uint16, p []byte) []byte { return p },
	}

	v23 = &layout{
		version:     3,
		idWidth:     4,
		headerWidth: 10,
		ids: map[string]types.Field{
			"TPE1": types.FieldArtist,
			"TALB": types.FieldAlbum,
			"TIT2": types.FieldTitle,
		},
		prepare:   prepareV23,
		frameSize: sizeV23,
		flags:     frameFlags,
		skip:      func(f uint16) bool { return f&(v23FlagCompressed|v23FlagEncrypted) != 0 },
		payload:   func(_ uint16, p []byte) []byte { return p },
	}

	v24 = &layout{
		version:     4,
		idWidth:     4,
		headerWidth: 10,
		ids:         v23.ids,
		prepare:     prepareV24,
		frameSize:   sizeV24,
		flags:       frameFlags,
		skip:        func(f uint16) bool { return f&(v24FlagCompressed|v24FlagEncrypted) != 0 },
		payload:     payloadV24,
	}
)

// Frame format flags.
const (
	v23FlagCompressed uint16 = 0x0080
	v23FlagEncrypted  uint16 = 0x0040

	v24FlagCompressed    uint16 = 0x0008
	v24FlagEncrypted     uint16 = 0x0004
	v24FlagUnsync        uint16 = 0x0002
	v24FlagDataLengthInd uint16 = 0x0001
)

func layoutFor(version byte) *layout {
	switch version {
	case 2:
		return v22
	case 3:
		return v23
	case 4:
		return v24
	}
	return nil
}

func sizeV22(body binutil.Span, off int) (uint32, error) {
	return body.Uint24(off+3, "frame size")
}

func sizeV23(body binutil.Span, off int) (uint32, error) {
	return body.Uint32(off+4, "frame size")
}

func sizeV24(body binutil.Span, off int) (uint32, error) {
	return body.Synchsafe(off+4, "frame size")
}

func frameFlags(body binutil.Span, off int) (uint16, error) {
	return body.Uint16(off+8, "frame flags")
}

func prepareV22(h Header, body binutil.Span) (binutil.Span, int, error) {
	// Bit 6 is compression, which no reader implements; bits 5-0 are undefined.
	if h.Flags&^FlagUnsync != 0 {
		return body, 0, &types.UnsupportedTagError{
			Reason: fmt.Sprintf("ID3v2.2 compression or unknown flags (0x%02x)", h.Flags),
		}
	}
	if h.Flags&FlagUnsync != 0 {
		body = body.Truncate(Resync(body.Bytes()))
	}
	return body, 0, nil
}

func prepareV23(h Header, body binutil.Span) (binutil.Span, int, error) {
	if h.Flags&0x1F != 0 {
		return body, 0, &types.UnsupportedTagError{
			Reason: fmt.Sprintf("undefined ID3v2.3 header flags (0x%02x)", h.Flags),
		}
	}
	if h.Flags&FlagUnsync != 0 {
		body = body.Truncate(Resync(body.Bytes()))
	}
	if h.Flags&FlagExtended == 0 {
		return body, 0, nil
	}

	// Extended header: size(4, excluding itself), flags(2), padding size(4), [CRC(4)].
	n, err := body.Uint32(0, "extended header size")
	if err != nil {
		return body, 0, &types.CorruptedTagError{Reason: err.Error(), Offset: HeaderSize}
	}
	extSize := uint64(n) + 4
	if extSize > uint64(body.Len()) {
		return body, 0, &types.CorruptedTagError{
			Reason: fmt.Sprintf("extended header size %d exceeds tag size %d", extSize, body.Len()),
			Offset: HeaderSize,
		}
	}

	first := int(extSize)
	if extSize >= 10 {
		padding, err := body.Uint32(6, "padding size")
		if err != nil {
			return body, 0, &types.CorruptedTagError{Reason: err.Error(), Offset: HeaderSize + 6}
		}
		if uint64(first)+uint64(padding) > uint64(body.Len()) {
			return body, 0, &types.CorruptedTagError{
				Reason: fmt.Sprintf("padding size %d exceeds tag size %d", padding, body.Len()),
				Offset: HeaderSize + 6,
			}
		}
		body = body.Truncate(body.Len() - int(padding))
	}
	return body, first, nil
}

// prepareV24 never resyncs the whole tag: v2.4 unsynchronization is per frame.
// The footer, if flagged, lies past the declared size and is not read.
func prepareV24(h Header, body binutil.Span) (binutil.Span, int, error) {
	if h.Flags&FlagExtended == 0 {
		return body, 0, nil
	}

	extSize, err := body.Synchsafe(0, "extended header size")
	if err != nil {
		return body, 0, &types.CorruptedTagError{Reason: err.Error(), Offset: HeaderSize}
	}
	if extSize < 6 || uint64(extSize) > uint64(body.Len()) {
		return body, 0, &types.CorruptedTagError{
			Reason: fmt.Sprintf("invalid extended header size %d (tag size %d)", extSize, body.Len()),
			Offset: HeaderSize,
		}
	}
	return body, int(extSize), nil
}

// payloadV24 strips the data length indicator first, then resyncs what is left.
func payloadV24(flags uint16, p []byte) []byte {
	if flags&v24FlagDataLengthInd != 0 && len(p) >= 4 {
		p = p[4:]
	}
	if flags&v24FlagUnsync == 0 {
		return p
	}
	return p[:Resync(p)]
}
