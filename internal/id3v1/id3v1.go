// Package id3v1 reads the fixed 128-byte ID3v1 trailer.
package id3v1

import (
	"fmt"

	binutil "github.com/simonhull/id3meta/internal/binary"
	"github.com/simonhull/id3meta/internal/textenc"
	"github.com/simonhull/id3meta/internal/types"
)

// TagSize is the size of an ID3v1 tag at the end of a file.
const TagSize = 128

// Field layout within the tag.
const (
	titleOffset  = 3
	artistOffset = 33
	albumOffset  = 63
	yearOffset   = 93
	fieldWidth   = 30
)

// Tag is a raw ID3v1 tag.
type Tag struct {
	raw [TagSize]byte
}

// Read loads the last TagSize bytes of sr. It returns types.ErrNoTag when
// the source is too small or the "TAG" marker is missing.
func Read(sr *binutil.SafeReader) (*Tag, error) {
	if sr.Size() < TagSize {
		return nil, types.ErrNoTag
	}

	t := &Tag{}
	if err := sr.ReadAt(t.raw[:], sr.Size()-TagSize, "ID3v1 tag"); err != nil {
		return nil, err
	}
	if string(t.raw[:3]) != "TAG" {
		return nil, types.ErrNoTag
	}
	return t, nil
}

// Raw returns the bytes of field f.
func (t *Tag) Raw(f types.Field) []byte {
	switch f {
	case types.FieldTitle:
		return t.raw[titleOffset : titleOffset+fieldWidth]
	case types.FieldArtist:
		return t.raw[artistOffset : artistOffset+fieldWidth]
	case types.FieldAlbum:
		return t.raw[albumOffset : albumOffset+fieldWidth]
	}
	return nil
}

// Year returns the 4-byte year field as-is, trimmed.
func (t *Tag) Year() string {
	return textenc.Trim(string(t.raw[yearOffset : yearOffset+4]))
}

// Track returns the ID3v1.1 track number, or 0 when the comment field uses
// all 30 bytes.
func (t *Tag) Track() int {
	if t.raw[125] == 0 {
		return int(t.raw[126])
	}
	return 0
}

// Genre returns the genre index byte.
func (t *Tag) Genre() int {
	return int(t.raw[127])
}

// Fields decodes the fields listed in want. A field that fails both UTF-8
// and the legacy charset is left absent and reported as a warning.
func (t *Tag) Fields(d *textenc.Decoder, want []types.Field) (types.Fields, []types.Warning) {
	if d == nil {
		d = textenc.NewDecoder(nil)
	}

	var fields types.Fields
	var warnings []types.Warning
	for _, f := range want {
		s, err := d.Fixed(t.Raw(f))
		if err != nil {
			warnings = append(warnings, types.Warning{
				Stage:   "text",
				Message: fmt.Sprintf("ID3v1 %s: %v", f, err),
			})
			continue
		}
		fields.Set(f, s)
	}
	return fields, warnings
}

// Parse reads the ID3v1 tag from sr and decodes the fields in want
// (all fields when want is empty).
func Parse(sr *binutil.SafeReader, d *textenc.Decoder, want ...types.Field) (types.Fields, []types.Warning, error) {
	t, err := Read(sr)
	if err != nil {
		return types.Fields{}, nil, err
	}
	if len(want) == 0 {
		want = types.AllFields[:]
	}
	fields, warnings := t.Fields(d, want)
	return fields, warnings, nil
}
