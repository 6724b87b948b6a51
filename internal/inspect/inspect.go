// Package inspect reads metadata through a general-purpose tag library.
//
// It is the secondary source for fields the ID3 parsers could not resolve.
// Strings coming out of it were decoded by code that does not know about
// legacy charsets, so every value passes through mojibake repair.
package inspect

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dhowden/tag"

	binutil "github.com/simonhull/id3meta/internal/binary"
	"github.com/simonhull/id3meta/internal/id3v1"
	"github.com/simonhull/id3meta/internal/id3v2"
	"github.com/simonhull/id3meta/internal/mojibake"
	"github.com/simonhull/id3meta/internal/mpeg"
	"github.com/simonhull/id3meta/internal/types"
)

// Report is what an Inspector found in a file.
type Report struct {
	Fields types.Fields

	// Format is the tag format, e.g. "ID3v2.3" or "VORBIS"; empty when no
	// tag was found.
	Format string

	// Duration of the audio stream; 0 when unknown.
	Duration time.Duration

	// Audio is set for MPEG audio streams.
	Audio *mpeg.Info

	Warnings []types.Warning
}

// Inspector reads fallback metadata and duration from a file.
type Inspector interface {
	Inspect(r io.ReaderAt, size int64, path string) (Report, error)
}

// TagInspector is the default Inspector, backed by github.com/dhowden/tag.
type TagInspector struct {
	policy *mojibake.Policy
}

// New returns a TagInspector that repairs strings with policy
// (nil = mojibake.DefaultPolicy(nil)).
func New(policy *mojibake.Policy) *TagInspector {
	if policy == nil {
		policy = mojibake.DefaultPolicy(nil)
	}
	return &TagInspector{policy: policy}
}

// Inspect reads tags and duration. It fails only when neither is available.
func (ti *TagInspector) Inspect(r io.ReaderAt, size int64, path string) (Report, error) {
	var rep Report

	m, tagErr := tag.ReadFrom(io.NewSectionReader(r, 0, size))
	switch {
	case tagErr == nil:
		rep.Format = string(m.Format())
		rep.Fields = ti.fields(m)
	case errors.Is(tagErr, tag.ErrNoTagsFound):
		tagErr = nil
	default:
		rep.Warnings = append(rep.Warnings, types.Warning{
			Stage:   "inspect",
			Message: fmt.Sprintf("tag reader: %v", tagErr),
		})
	}

	if m == nil || isMPEGCandidate(m.FileType()) {
		info, err := probe(binutil.NewSafeReader(r, size, path))
		switch {
		case err == nil:
			rep.Audio = &info
			rep.Duration = info.Duration
		case !errors.Is(err, mpeg.ErrNoFrame):
			rep.Warnings = append(rep.Warnings, types.WarningFrom("inspect", err))
		}
	}

	if tagErr != nil && rep.Audio == nil {
		return rep, fmt.Errorf("%s: %w", path, tagErr)
	}
	return rep, nil
}

// Repair applies the inspector's mojibake policy to s.
func (ti *TagInspector) Repair(s string) string {
	return ti.policy.Repair(s)
}

func (ti *TagInspector) fields(m tag.Metadata) types.Fields {
	artist := ti.policy.Repair(m.Artist())
	if artist == "" {
		artist = ti.policy.Repair(m.AlbumArtist())
	}
	return types.Fields{
		Artist: artist,
		Album:  ti.policy.Repair(m.Album()),
		Title:  ti.policy.Repair(m.Title()),
	}
}

func isMPEGCandidate(ft tag.FileType) bool {
	return ft == tag.MP3 || ft == tag.UnknownFileType
}

// probe looks for audio between the ID3v2 tag and the ID3v1 trailer.
func probe(sr *binutil.SafeReader) (mpeg.Info, error) {
	var start int64
	if buf, err := sr.ReadFull(0, id3v2.HeaderSize, "ID3v2 header"); err == nil {
		if h, err := id3v2.ParseHeader(buf, sr.Path()); err == nil {
			start = h.TagSize()
		}
	}

	end := sr.Size()
	if _, err := id3v1.Read(sr); err == nil {
		end -= id3v1.TagSize
	}

	if start >= end {
		return mpeg.Info{}, mpeg.ErrNoFrame
	}
	return mpeg.Probe(sr, start, end)
}
