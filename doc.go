// Package id3meta extracts artist, album and title from audio files whose
// tags may be malformed, truncated or written in an unexpected charset.
//
// # Quick Start
//
// Reading the three fields from a file:
//
//	res := id3meta.Extract("song.mp3")
//	fmt.Printf("%s - %s (%s)\n", res.Artist, res.Title, res.Album)
//
// A field nobody could resolve is the empty string. Extract never returns
// an error: unreadable files and broken tags end up in res.Warnings.
//
// # Sources
//
// Fields are resolved from, in order:
//
//   - ID3v2.2, 2.3 and 2.4 tags at the start of the file, including
//     unsynchronization, extended headers and per-frame flags
//   - The ID3v1 trailer, for fields ID3v2 did not provide
//   - With ReadTrack, a general-purpose tag reader (FLAC, MP4, Ogg and ID3)
//     whose strings pass through mojibake repair
//
// The first source that yields a non-empty value wins; later sources never
// replace a field.
//
// # Legacy Charsets
//
// Text frames marked as ISO-8859-1 and ID3v1 fields were in practice
// written in whatever code page the tagger used. id3meta decodes them with
// a configurable single-byte charset, windows-1251 by default:
//
//	enc, err := id3meta.Charset("windows-1252")
//	if err != nil {
//		log.Fatal(err)
//	}
//	res := id3meta.Extract("song.mp3", id3meta.WithLegacyEncoding(enc))
//
// # Mojibake Repair
//
// Repair undoes common double decodings such as UTF-8 shown as
// windows-1251 or windows-1251 shown as KOI8-R:
//
//	id3meta.Repair("РљРёРЅРѕ") // "Кино"
//
// The repair table is an ordered list of steps and can be replaced with
// WithRepairPolicy.
//
// # Batch Processing
//
// Extract many files concurrently:
//
//	ctx := context.Background()
//	results, err := id3meta.ExtractMany(ctx, paths, id3meta.WithWorkers(8))
//	if err != nil {
//		log.Fatal(err) // only on cancellation
//	}
//
// # Warnings and Logging
//
// Every absorbed failure is recorded as a Warning with the stage it came
// from ("io", "id3v2", "id3v1", "text", "inspect"):
//
//	for _, w := range res.Warnings {
//		log.Printf("warning: %s", w)
//	}
//
// Pass a zerolog logger with WithLogger to see them as they happen.
package id3meta
