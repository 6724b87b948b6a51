package id3meta

import (
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/simonhull/id3meta/internal/id3v2"
	"github.com/simonhull/id3meta/internal/inspect"
	"github.com/simonhull/id3meta/internal/mojibake"
	"github.com/simonhull/id3meta/internal/textenc"
)

// Option configures extraction.
//
// Options use the functional options pattern:
//
//	res := id3meta.Extract("song.mp3",
//	    id3meta.WithLegacyEncoding(charmap.Windows1252),
//	    id3meta.WithLogger(logger),
//	)
type Option func(*extractOptions)

// extractOptions holds configuration for one extraction call.
type extractOptions struct {
	legacy         encoding.Encoding // Legacy single-byte charset
	maxTagSize     int               // Largest ID3v2 tag read into memory
	logger         zerolog.Logger    // Receives absorbed failures at debug level
	inspector      Inspector         // Secondary source for ReadTrack (nil = default)
	policy         *RepairPolicy     // Mojibake repair table (nil = default)
	ignoreWarnings bool              // Drop warnings from results
	workers        int               // ExtractMany concurrency (0 = NumCPU)
}

// defaultOptions returns the default configuration.
func defaultOptions() *extractOptions {
	return &extractOptions{
		legacy:     textenc.DefaultLegacy,
		maxTagSize: id3v2.DefaultMaxTagSize,
		logger:     zerolog.Nop(),
	}
}

func newOptions(opts []Option) *extractOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLegacyEncoding sets the charset assumed for ID3v2 frames with text
// encoding 0 and for ID3v1 fields that are not valid UTF-8.
//
// The ID3 standard says ISO-8859-1, but real files are usually written in
// the local ANSI code page. Default is windows-1251. Use Charset to look
// an encoding up by name.
//
// Only single-byte charsets (*charmap.Charmap) are accepted. A nil enc or
// any other encoding, such as UTF-16 or Shift_JIS, keeps the current one.
//
// Example:
//
//	res := id3meta.Extract("song.mp3", id3meta.WithLegacyEncoding(charmap.Windows1252))
func WithLegacyEncoding(enc encoding.Encoding) Option {
	return func(o *extractOptions) {
		if cm, ok := enc.(*charmap.Charmap); ok && cm != nil {
			o.legacy = cm
		}
	}
}

// WithMaxTagSize caps the declared ID3v2 tag size that is read into memory.
// Larger tags are treated as corrupt and ID3v1 is used instead.
//
// Default is 3 MiB. Values <= 0 keep the default.
func WithMaxTagSize(bytes int) Option {
	return func(o *extractOptions) {
		if bytes > 0 {
			o.maxTagSize = bytes
		}
	}
}

// WithLogger sets the logger that receives absorbed failures.
//
// Every problem that ends up in Result.Warnings is also logged at debug
// level with "path" and "stage" fields. Default is zerolog.Nop().
func WithLogger(logger zerolog.Logger) Option {
	return func(o *extractOptions) {
		o.logger = logger
	}
}

// WithInspector replaces the secondary metadata source used by ReadTrack.
//
// The default reads tags with github.com/dhowden/tag, repairs mojibake and
// estimates MPEG duration.
func WithInspector(i Inspector) Option {
	return func(o *extractOptions) {
		o.inspector = i
	}
}

// WithRepairPolicy replaces the mojibake repair table used by Repair and by
// the default inspector.
//
// Example:
//
//	policy := id3meta.DefaultRepairPolicy(nil)
//	policy.MaxBad = 0
//	track := id3meta.ReadTrack("song.flac", id3meta.WithRepairPolicy(policy))
func WithRepairPolicy(p *RepairPolicy) Option {
	return func(o *extractOptions) {
		o.policy = p
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// Failures are still absorbed and logged; Result.Warnings stays empty.
func WithIgnoreWarnings() Option {
	return func(o *extractOptions) {
		o.ignoreWarnings = true
	}
}

// WithWorkers sets how many files ExtractMany and ReadTracks process at once.
// Values <= 0 use runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *extractOptions) {
		o.workers = n
	}
}

func (o *extractOptions) concurrency() int {
	if o.workers > 0 {
		return o.workers
	}
	return runtime.NumCPU()
}

func (o *extractOptions) repairPolicy() *RepairPolicy {
	if o.policy != nil {
		return o.policy
	}
	return mojibake.DefaultPolicy(o.legacy)
}

func (o *extractOptions) trackInspector() Inspector {
	if o.inspector != nil {
		return o.inspector
	}
	return inspect.New(o.repairPolicy())
}
