package id3meta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	binutil "github.com/simonhull/id3meta/internal/binary"
	"github.com/simonhull/id3meta/internal/id3v1"
	"github.com/simonhull/id3meta/internal/id3v2"
	"github.com/simonhull/id3meta/internal/textenc"
	"github.com/simonhull/id3meta/internal/types"
)

// Extract reads artist, album and title from the file at path.
//
// ID3v2 is read first; any field it does not provide is looked up in the
// ID3v1 trailer. Fields that neither tag provides are "".
//
// Extract never fails. Unreadable files, malformed tags and undecodable
// text are recorded in Result.Warnings and the affected fields stay empty.
// The file is closed before Extract returns.
//
// Example:
//
//	res := id3meta.Extract("song.mp3")
//	fmt.Printf("%s - %s\n", res.Artist, res.Title)
func Extract(path string, opts ...Option) Result {
	o := newOptions(opts)

	f, size, err := openFile(path)
	if err != nil {
		res := Result{Path: path}
		o.absorb(&res, "io", err)
		return o.finish(res)
	}
	defer f.Close()

	return o.finish(o.extract(f, size, path))
}

// ExtractReader is Extract for data that is already open. path is only
// used in warnings and log fields.
func ExtractReader(r io.ReaderAt, size int64, path string, opts ...Option) Result {
	o := newOptions(opts)
	return o.finish(o.extract(r, size, path))
}

// ExtractMany extracts metadata from multiple files concurrently.
//
// Files are processed by up to runtime.NumCPU() goroutines (see
// WithWorkers). Results are returned in the same order as paths. Individual
// files never fail; the only error is the context's, when it is cancelled
// before all files were read.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	results, err := id3meta.ExtractMany(ctx, paths)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, r := range results {
//		fmt.Printf("%s: %s - %s\n", r.Path, r.Artist, r.Title)
//	}
func ExtractMany(ctx context.Context, paths []string, opts ...Option) ([]Result, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	o := newOptions(opts)
	results := make([]Result, len(paths))
	err := forEach(ctx, o, paths, func(i int, path string) {
		results[i] = Extract(path, opts...)
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// forEach runs fn for every path with the configured concurrency limit.
func forEach(ctx context.Context, o *extractOptions, paths []string, fn func(i int, path string)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency())

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			fn(i, path)
			return nil
		})
	}
	return g.Wait()
}

func openFile(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat file: %w", err)
	}
	return f, stat.Size(), nil
}

// extract runs the ID3v2 and ID3v1 stages. Each stage's error is absorbed
// here; nothing propagates to the caller.
func (o *extractOptions) extract(r io.ReaderAt, size int64, path string) Result {
	res := Result{Path: path}
	sr := binutil.NewSafeReader(r, size, path)
	dec := textenc.NewDecoder(o.legacy)

	fields, warnings, err := id3v2.Parse(sr, id3v2.Options{MaxTagSize: o.maxTagSize, Decoder: dec})
	o.record(&res, warnings)
	if err != nil {
		o.absorb(&res, "id3v2", err)
	} else {
		res.Fill(fields, types.SourceID3v2)
	}

	missing := res.Missing()
	if len(missing) == 0 {
		return res
	}

	fields, warnings, err = id3v1.Parse(sr, dec, missing...)
	o.record(&res, warnings)
	if err != nil {
		o.absorb(&res, "id3v1", err)
		return res
	}
	res.Fill(fields, types.SourceID3v1)
	return res
}

// absorb turns err into a warning on res. A missing tag is normal and is
// only logged.
func (o *extractOptions) absorb(res *Result, stage string, err error) {
	if errors.Is(err, types.ErrNoTag) {
		o.logger.Trace().Str("path", res.Path).Str("stage", stage).Msg("no tag")
		return
	}
	o.record(res, []types.Warning{types.WarningFrom(stage, err)})
}

func (o *extractOptions) record(res *Result, warnings []types.Warning) {
	for _, w := range warnings {
		o.logger.Debug().
			Str("path", res.Path).
			Str("stage", w.Stage).
			Int64("offset", w.Offset).
			Msg(w.Message)
		res.Warn(w)
	}
}

func (o *extractOptions) finish(res Result) Result {
	if o.ignoreWarnings {
		res.Warnings = nil
	}
	return res
}
