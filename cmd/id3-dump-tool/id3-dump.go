package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	binutil "github.com/simonhull/id3meta/internal/binary"
	"github.com/simonhull/id3meta/internal/id3v1"
	"github.com/simonhull/id3meta/internal/id3v2"
	"github.com/simonhull/id3meta/internal/textenc"
	"github.com/simonhull/id3meta/internal/types"
)

// Prints every frame of the ID3v2 tag and the ID3v1 trailer, to see what the
// parser actually walks over in a problem file.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: id3-dump <file.mp3> [legacy-charset]")
		os.Exit(1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	d := textenc.NewDecoder(nil)
	if len(os.Args) > 2 {
		enc, err := textenc.Lookup(os.Args[2])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		d = textenc.NewDecoder(enc)
	}
	fmt.Printf("legacy charset: %s\n\n", textenc.Name(d.Legacy()))

	sr := binutil.NewSafeReader(f, stat.Size(), os.Args[1])
	dumpV2(sr, d)
	fmt.Println()
	dumpV1(sr, d)
}

func dumpV2(sr *binutil.SafeReader, d *textenc.Decoder) {
	tag, err := id3v2.Read(sr, id3v2.DefaultMaxTagSize)
	if errors.Is(err, types.ErrNoTag) {
		fmt.Println("no ID3v2 tag")
		return
	}
	if err != nil {
		fmt.Printf("ID3v2: %v\n", err)
		return
	}

	h := tag.Header
	fmt.Printf("%s (flags: 0x%02X, size: %d, on disk: %d, usable: %d, first frame: %d)\n",
		h, h.Flags, h.Size, h.TagSize(), tag.Len(), tag.FirstFrame())

	for frame, err := range tag.Frames() {
		if err != nil {
			fmt.Printf("  %v\n", err)
			return
		}

		fmt.Printf("  %s (size: %d, flags: 0x%04X, offset: %d)", frame.ID, frame.Size, frame.Flags, frame.Offset)
		if frame.Skipped {
			fmt.Println(" skipped")
			continue
		}
		if field, ok := tag.FieldFor(frame.ID); ok {
			fmt.Printf(" -> %s", field)
		}
		if strings.HasPrefix(frame.ID, "T") && len(frame.Payload) > 0 {
			text, err := d.Frame(frame.Payload)
			if err != nil {
				fmt.Printf(" [%v]", err)
			} else {
				fmt.Printf(" %q", text)
			}
		}
		fmt.Println()

		if removed := removedBytes(frame); removed > 0 {
			fmt.Printf("    %d bytes removed by data length indicator and resync\n", removed)
		}
	}
}

// removedBytes is how much the data length indicator and per-frame resync
// took out of a frame.
func removedBytes(frame id3v2.Frame) int {
	if frame.Skipped {
		return 0
	}
	return int(frame.Size) - len(frame.Payload)
}

func dumpV1(sr *binutil.SafeReader, d *textenc.Decoder) {
	tag, err := id3v1.Read(sr)
	if errors.Is(err, types.ErrNoTag) {
		fmt.Println("no ID3v1 tag")
		return
	}
	if err != nil {
		fmt.Printf("ID3v1: %v\n", err)
		return
	}

	fmt.Printf("ID3v1 (year: %q, track: %d, genre: %d)\n", tag.Year(), tag.Track(), tag.Genre())
	fields, warnings := tag.Fields(d, types.AllFields[:])
	for _, f := range types.AllFields {
		fmt.Printf("  %-6s % X\n", f, bytes.TrimRight(tag.Raw(f), "\x00"))
		fmt.Printf("         %q\n", fields.Get(f))
	}
	for _, w := range warnings {
		fmt.Printf("  %s\n", w)
	}
}
