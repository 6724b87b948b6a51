package id3meta

import (
	"context"
	"io"
	"time"

	"github.com/simonhull/id3meta/internal/types"
)

// Track is a Result completed from the secondary inspector, plus the
// audio duration.
type Track struct {
	Result

	// Duration of the audio stream; 0 when unknown
	Duration time.Duration

	// Format is the tag format the inspector recognized (e.g. "ID3v2.3",
	// "VORBIS", "MP4"); empty when it found none
	Format string
}

// ReadTrack extracts fields like Extract, then fills whatever is still
// missing from the inspector (see WithInspector) and reads the duration.
//
// Inspector values never replace fields the ID3 parsers found. Like
// Extract, ReadTrack never fails; problems are recorded as warnings.
//
// Example:
//
//	track := id3meta.ReadTrack("song.mp3")
//	fmt.Printf("%s - %s (%s)\n", track.Artist, track.Title, track.Duration)
func ReadTrack(path string, opts ...Option) Track {
	o := newOptions(opts)

	f, size, err := openFile(path)
	if err != nil {
		t := Track{Result: Result{Path: path}}
		o.absorb(&t.Result, "io", err)
		t.Result = o.finish(t.Result)
		return t
	}
	defer f.Close()

	return o.readTrack(f, size, path)
}

// ReadTrackReader is ReadTrack for data that is already open.
func ReadTrackReader(r io.ReaderAt, size int64, path string, opts ...Option) Track {
	return newOptions(opts).readTrack(r, size, path)
}

// ReadTracks reads multiple tracks concurrently, in the order of paths.
func ReadTracks(ctx context.Context, paths []string, opts ...Option) ([]Track, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	o := newOptions(opts)
	tracks := make([]Track, len(paths))
	err := forEach(ctx, o, paths, func(i int, path string) {
		tracks[i] = ReadTrack(path, opts...)
	})
	if err != nil {
		return nil, err
	}
	return tracks, nil
}

func (o *extractOptions) readTrack(r io.ReaderAt, size int64, path string) Track {
	t := Track{Result: o.extract(r, size, path)}

	rep, err := o.trackInspector().Inspect(r, size, path)
	o.record(&t.Result, rep.Warnings)
	if err != nil {
		o.absorb(&t.Result, "inspect", err)
	} else {
		t.Fill(rep.Fields, types.SourceInspector)
		t.Duration = rep.Duration
		t.Format = rep.Format
	}

	t.Result = o.finish(t.Result)
	return t
}
