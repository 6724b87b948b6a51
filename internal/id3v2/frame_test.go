package id3v2

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	bogem "github.com/bogem/id3v2/v2"

	binutil "github.com/simonhull/id3meta/internal/binary"
	"github.com/simonhull/id3meta/internal/textenc"
	"github.com/simonhull/id3meta/internal/types"
)

func readTag(t *testing.T, data []byte) *Tag {
	t.Helper()
	sr := binutil.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.mp3")
	tag, err := Read(sr, 0)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	return tag
}

func TestFrames_ListsIDs(t *testing.T) {
	body := concat(
		frame23("TXXX", 0, text(textenc.SelectorUTF8, "desc\x00value")),
		frame23("TPE1", v23FlagCompressed, []byte{1, 2, 3}),
		frame23("TIT2", 0, text(textenc.SelectorUTF8, "Title")),
		make([]byte, 20),
	)
	tag := readTag(t, buildTag(3, 0, body))

	var ids []string
	var skipped []string
	for frame, err := range tag.Frames() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids = append(ids, frame.ID)
		if frame.Skipped {
			skipped = append(skipped, frame.ID)
			if frame.Payload != nil {
				t.Errorf("skipped frame %s should have no payload", frame.ID)
			}
		}
	}

	if want := []string{"TXXX", "TPE1", "TIT2"}; !slices.Equal(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
	if want := []string{"TPE1"}; !slices.Equal(skipped, want) {
		t.Errorf("skipped = %v, want %v", skipped, want)
	}
}

func TestFrames_SizeAndFlagsPerVersion(t *testing.T) {
	payload := text(textenc.SelectorUTF8, string(bytes.Repeat([]byte{'a'}, 299)))

	tests := []struct {
		name    string
		version byte
		frame   []byte
		flags   uint16
	}{
		{"v2.2 24-bit size", 2, frame22("TT2", payload), 0},
		{"v2.3 32-bit size", 3, frame23("TIT2", 0x4000, payload), 0x4000},
		{"v2.4 synchsafe size", 4, frame24("TIT2", 0x4000, payload), 0x4000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag := readTag(t, buildTag(tt.version, 0, tt.frame))

			n := 0
			for frame, err := range tag.Frames() {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				n++
				if frame.Size != 300 {
					t.Errorf("Size = %d, want 300", frame.Size)
				}
				if frame.Flags != tt.flags {
					t.Errorf("Flags = 0x%04x, want 0x%04x", frame.Flags, tt.flags)
				}
				if len(frame.Payload) != 300 {
					t.Errorf("len(Payload) = %d, want 300", len(frame.Payload))
				}
			}
			if n != 1 {
				t.Errorf("got %d frames, want 1", n)
			}
		})
	}
}

func TestFrames_Offsets(t *testing.T) {
	first := frame22("TT2", text(textenc.SelectorLegacy, "abc"))
	second := frame22("TP1", text(textenc.SelectorLegacy, "de"))
	tag := readTag(t, buildTag(2, 0, concat(first, second)))

	var offsets []int
	var sizes []uint32
	for frame, err := range tag.Frames() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		offsets = append(offsets, frame.Offset)
		sizes = append(sizes, frame.Size)
	}

	if want := []int{0, len(first)}; !slices.Equal(offsets, want) {
		t.Errorf("offsets = %v, want %v", offsets, want)
	}
	if want := []uint32{4, 3}; !slices.Equal(sizes, want) {
		t.Errorf("sizes = %v, want %v", sizes, want)
	}
}

func TestFrames_StopsWhenTooSmallForHeader(t *testing.T) {
	// Six trailing bytes cannot hold a v2.3 frame header: normal end, no error.
	body := concat(
		frame23("TIT2", 0, text(textenc.SelectorUTF8, "T")),
		[]byte("TPE1\x00\x00"),
	)
	tag := readTag(t, buildTag(3, 0, body))

	count := 0
	for _, err := range tag.Frames() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		count++
	}
	if count != 1 {
		t.Errorf("got %d frames, want 1", count)
	}
}

func TestFrames_CorruptErrorOffset(t *testing.T) {
	good := frame24("TIT2", 0, text(textenc.SelectorUTF8, "T"))
	bad := append([]byte("TPE1"), 0x00, 0x00, 0x7F, 0x7F, 0x00, 0x00)
	tag := readTag(t, buildTag(4, 0, concat(good, bad, make([]byte, 4))))

	var got error
	for _, err := range tag.Frames() {
		if err != nil {
			got = err
		}
	}

	var corrupt *types.CorruptedTagError
	if !errors.As(got, &corrupt) {
		t.Fatalf("expected *types.CorruptedTagError, got %v", got)
	}
	if want := int64(HeaderSize + len(good)); corrupt.Offset != want {
		t.Errorf("Offset = %d, want %d", corrupt.Offset, want)
	}
	if corrupt.Path != "test.mp3" {
		t.Errorf("Path = %q, want test.mp3", corrupt.Path)
	}
}

func TestFrames_EarlyBreak(t *testing.T) {
	body := concat(
		frame23("TIT2", 0, text(textenc.SelectorUTF8, "A")),
		frame23("TPE1", 0, text(textenc.SelectorUTF8, "B")),
	)
	tag := readTag(t, buildTag(3, 0, body))

	for frame := range tag.Frames() {
		if frame.ID != "TIT2" {
			t.Fatalf("first frame = %s, want TIT2", frame.ID)
		}
		break
	}
}

func TestTag_FieldFor(t *testing.T) {
	tests := []struct {
		version byte
		id      string
		want    types.Field
		ok      bool
	}{
		{2, "TP1", types.FieldArtist, true},
		{2, "TPE1", 0, false},
		{3, "TALB", types.FieldAlbum, true},
		{4, "TIT2", types.FieldTitle, true},
		{4, "TT2", 0, false},
		{3, "TXXX", 0, false},
	}

	for _, tt := range tests {
		tag := readTag(t, buildTag(tt.version, 0, nil))
		got, ok := tag.FieldFor(tt.id)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("v2.%d FieldFor(%q) = %v, %v; want %v, %v", tt.version, tt.id, got, ok, tt.want, tt.ok)
		}
	}
}

func TestHeader_TagSize(t *testing.T) {
	tests := []struct {
		name string
		h    Header
		want int64
	}{
		{"v2.3", Header{Version: 3, Size: 100}, 110},
		{"v2.3 footer bit ignored", Header{Version: 3, Flags: FlagFooter, Size: 100}, 110},
		{"v2.4", Header{Version: 4, Size: 100}, 110},
		{"v2.4 with footer", Header{Version: 4, Flags: FlagFooter, Size: 100}, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.h.TagSize(); got != tt.want {
				t.Errorf("TagSize() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHeader_String(t *testing.T) {
	h := Header{Version: 4, Revision: 0}
	if got := h.String(); got != "ID3v2.4.0" {
		t.Errorf("String() = %q, want ID3v2.4.0", got)
	}
}

// Tags written by an independent ID3 writer.
func TestParse_WrittenByBogem(t *testing.T) {
	tests := []struct {
		name     string
		version  byte
		encoding bogem.Encoding
	}{
		{"v2.3 UTF-16", 3, bogem.EncodingUTF16},
		{"v2.4 UTF-8", 4, bogem.EncodingUTF8},
		{"v2.4 UTF-16", 4, bogem.EncodingUTF16},
	}

	want := types.Fields{Artist: "Кино", Album: "Группа крови", Title: "Звезда по имени Солнце"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag := bogem.NewEmptyTag()
			tag.SetVersion(tt.version)
			tag.SetDefaultEncoding(tt.encoding)
			tag.SetArtist(want.Artist)
			tag.SetAlbum(want.Album)
			tag.SetTitle(want.Title)

			var buf bytes.Buffer
			if _, err := tag.WriteTo(&buf); err != nil {
				t.Fatalf("WriteTo failed: %v", err)
			}
			buf.Write(make([]byte, 256)) // stand-in for audio

			fields, warnings, err := parseBytes(t, buf.Bytes(), Options{})
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if fields != want {
				t.Errorf("fields = %+v, want %+v", fields, want)
			}
			if len(warnings) != 0 {
				t.Errorf("unexpected warnings: %v", warnings)
			}
		})
	}
}
