package inspect

import (
	"bytes"
	"testing"
	"time"

	bogem "github.com/bogem/id3v2/v2"

	"github.com/simonhull/id3meta/internal/types"
)

// CBR MPEG-1 Layer III, 128 kbps, 44.1 kHz: 16000 bytes of audio is 1s.
func audio() []byte {
	data := make([]byte, 16000)
	copy(data, []byte{0xFF, 0xFB, 0x90, 0x00})
	return data
}

func id3Tag(t *testing.T, frames map[string]string) []byte {
	t.Helper()

	tag := bogem.NewEmptyTag()
	tag.SetVersion(4)
	tag.SetDefaultEncoding(bogem.EncodingUTF8)
	for id, v := range frames {
		tag.AddTextFrame(id, bogem.EncodingUTF8, v)
	}

	var buf bytes.Buffer
	if _, err := tag.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	return buf.Bytes()
}

func inspectBytes(t *testing.T, data []byte) Report {
	t.Helper()
	rep, err := New(nil).Inspect(bytes.NewReader(data), int64(len(data)), "test.mp3")
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	return rep
}

func TestInspect_TagsAndDuration(t *testing.T) {
	data := append(id3Tag(t, map[string]string{
		"TPE1": "Кино",
		"TALB": "Группа крови",
		"TIT2": " Кукушка ",
	}), audio()...)

	rep := inspectBytes(t, data)

	want := types.Fields{Artist: "Кино", Album: "Группа крови", Title: "Кукушка"}
	if rep.Fields != want {
		t.Errorf("Fields = %+v, want %+v", rep.Fields, want)
	}
	if rep.Format != "ID3v2.4" {
		t.Errorf("Format = %q, want ID3v2.4", rep.Format)
	}
	if rep.Audio == nil {
		t.Fatal("expected audio info")
	}
	if rep.Duration != time.Second {
		t.Errorf("Duration = %v, want 1s", rep.Duration)
	}
}

func TestInspect_RepairsMojibake(t *testing.T) {
	data := append(id3Tag(t, map[string]string{
		"TPE1": "РљРёРЅРѕ",
		"TIT2": "서울시",
	}), audio()...)

	rep := inspectBytes(t, data)

	if rep.Artist != "Кино" {
		t.Errorf("Artist = %q, want Кино", rep.Artist)
	}
	if rep.Title != "" {
		t.Errorf("Title = %q, want rejection", rep.Title)
	}
}

func TestInspect_AlbumArtistFallback(t *testing.T) {
	data := append(id3Tag(t, map[string]string{
		"TPE2": "Various Artists",
		"TALB": "Compilation",
	}), audio()...)

	rep := inspectBytes(t, data)

	if rep.Artist != "Various Artists" {
		t.Errorf("Artist = %q, want Various Artists", rep.Artist)
	}
}

func TestInspect_NoTags(t *testing.T) {
	rep := inspectBytes(t, audio())

	if rep.Fields != (types.Fields{}) {
		t.Errorf("expected no fields, got %+v", rep.Fields)
	}
	if rep.Format != "" {
		t.Errorf("Format = %q, want empty", rep.Format)
	}
	if rep.Duration != time.Second {
		t.Errorf("Duration = %v, want 1s", rep.Duration)
	}
}

func TestInspect_ID3v1TrailerExcluded(t *testing.T) {
	trailer := make([]byte, 128)
	copy(trailer, "TAG")
	copy(trailer[3:], "Title")
	data := append(audio(), trailer...)

	rep := inspectBytes(t, data)

	if rep.Title != "Title" {
		t.Errorf("Title = %q, want Title", rep.Title)
	}
	if rep.Duration != time.Second {
		t.Errorf("Duration = %v, want 1s (trailer excluded)", rep.Duration)
	}
}

func TestInspect_Nothing(t *testing.T) {
	data := []byte("tiny")
	if _, err := New(nil).Inspect(bytes.NewReader(data), int64(len(data)), "tiny.bin"); err == nil {
		t.Fatal("expected error when neither tags nor audio are found")
	}
}
