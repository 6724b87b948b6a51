package id3v2

import (
	"errors"
	"fmt"

	binutil "github.com/simonhull/id3meta/internal/binary"
	"github.com/simonhull/id3meta/internal/textenc"
	"github.com/simonhull/id3meta/internal/types"
)

// Tag is an ID3v2 tag loaded into memory and ready for frame iteration.
type Tag struct {
	Header Header

	path   string
	layout *layout
	body   binutil.Span
	first  int
}

// Options configures Parse.
type Options struct {
	// MaxTagSize rejects tags whose declared size is larger (0 = DefaultMaxTagSize).
	MaxTagSize int

	// Decoder decodes text frames (nil = textenc.NewDecoder(nil)).
	Decoder *textenc.Decoder
}

// Read loads the ID3v2 tag at the start of sr.
//
// It returns types.ErrNoTag when the source does not start with an ID3v2
// header, *types.UnsupportedTagError for versions and flags it cannot
// read, and *types.CorruptedTagError or a read error when the tag is
// oversized, truncated or internally inconsistent.
func Read(sr *binutil.SafeReader, maxTagSize int) (*Tag, error) {
	if maxTagSize <= 0 {
		maxTagSize = DefaultMaxTagSize
	}
	if sr.Size() < HeaderSize {
		return nil, types.ErrNoTag
	}

	buf, err := sr.ReadFull(0, HeaderSize, "ID3v2 header")
	if err != nil {
		return nil, err
	}
	h, err := ParseHeader(buf, sr.Path())
	if err != nil {
		return nil, err
	}

	if uint64(h.Size) > uint64(maxTagSize) {
		return nil, &types.CorruptedTagError{
			Path:   sr.Path(),
			Reason: fmt.Sprintf("declared tag size %d exceeds limit %d", h.Size, maxTagSize),
			Offset: 6,
		}
	}

	var body []byte
	if h.Size > 0 {
		body, err = sr.ReadFull(HeaderSize, int(h.Size), "ID3v2 tag body")
		if err != nil {
			return nil, err
		}
	}

	l := layoutFor(h.Version)
	span, first, err := l.prepare(h, binutil.NewSpan(body, sr.Path()))
	if err != nil {
		return nil, withPath(err, sr.Path())
	}

	return &Tag{
		Header: h,
		path:   sr.Path(),
		layout: l,
		body:   span,
		first:  first,
	}, nil
}

// Parse reads the tag from sr and resolves artist, album and title.
//
// On any structural error Parse returns the error and no fields, even if
// some frames decoded before the problem was found. Undecodable text in a
// single frame only drops that frame; it is reported in the warnings.
func Parse(sr *binutil.SafeReader, opts Options) (types.Fields, []types.Warning, error) {
	tag, err := Read(sr, opts.MaxTagSize)
	if err != nil {
		return types.Fields{}, nil, err
	}
	return tag.Fields(opts.Decoder)
}

// Fields walks the frames and resolves artist, album and title. The first
// frame of each kind that decodes to non-empty text wins.
func (t *Tag) Fields(d *textenc.Decoder) (types.Fields, []types.Warning, error) {
	if d == nil {
		d = textenc.NewDecoder(nil)
	}

	var fields types.Fields
	var warnings []types.Warning
	for frame, err := range t.Frames() {
		if err != nil {
			return types.Fields{}, warnings, err
		}
		if frame.Skipped {
			continue
		}

		field, ok := t.layout.ids[frame.ID]
		if !ok || fields.Has(field) {
			continue
		}

		text, err := d.Frame(frame.Payload)
		if err != nil {
			warnings = append(warnings, types.Warning{
				Stage:   "text",
				Message: fmt.Sprintf("frame %s: %v", frame.ID, err),
				Offset:  int64(HeaderSize + frame.Offset),
			})
			continue
		}
		fields.Set(field, text)

		if fields.Complete() {
			break
		}
	}
	return fields, warnings, nil
}

// FieldFor reports which field a frame ID maps to in this tag's version.
func (t *Tag) FieldFor(id string) (types.Field, bool) {
	f, ok := t.layout.ids[id]
	return f, ok
}

// Len returns the usable body length after resync and padding removal.
func (t *Tag) Len() int {
	return t.body.Len()
}

// FirstFrame returns the body offset of the first frame.
func (t *Tag) FirstFrame() int {
	return t.first
}

func withPath(err error, path string) error {
	var unsupported *types.UnsupportedTagError
	var corrupt *types.CorruptedTagError
	switch {
	case errors.As(err, &unsupported):
		if unsupported.Path == "" {
			unsupported.Path = path
		}
	case errors.As(err, &corrupt):
		if corrupt.Path == "" {
			corrupt.Path = path
		}
	}
	return err
}
