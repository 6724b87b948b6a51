package display

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/simonhull/id3meta/internal/types"
)

func TestFields(t *testing.T) {
	path := filepath.Join("music", "Kino", "Gruppa_krovi", "01_Gruppa_krovi.mp3")

	tests := []struct {
		name string
		in   types.Fields
		opts Options
		want types.Fields
	}{
		{
			name: "tags shown",
			in:   types.Fields{Artist: "Кино", Album: "Группа крови", Title: "Группа_крови"},
			opts: DefaultOptions,
			want: types.Fields{Artist: "Кино", Album: "Группа крови", Title: "Группа крови"},
		},
		{
			name: "missing fields from path",
			in:   types.Fields{Title: "Song"},
			opts: DefaultOptions,
			want: types.Fields{Artist: "Kino", Album: "Gruppa krovi", Title: "Song"},
		},
		{
			name: "underscores kept",
			in:   types.Fields{},
			opts: Options{ShowMetadata: true},
			want: types.Fields{Artist: "Kino", Album: "Gruppa_krovi", Title: "01_Gruppa_krovi.mp3"},
		},
		{
			name: "metadata hidden",
			in:   types.Fields{Artist: "A", Album: "B", Title: "C"},
			opts: Options{Underscores: true},
			want: types.Fields{Artist: "Kino", Album: "Gruppa krovi", Title: "01 Gruppa krovi.mp3"},
		},
		{
			name: "transliterated",
			in:   types.Fields{Artist: "Кино", Album: "Группа крови", Title: "Звезда"},
			opts: Options{ShowMetadata: true, Transliterate: true},
			want: types.Fields{Artist: "Kino", Album: "Gruppa krovi", Title: "Zvezda"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fields(path, tt.in, tt.opts); got != tt.want {
				t.Errorf("Fields() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFields_ShallowPath(t *testing.T) {
	got := Fields("song.mp3", types.Fields{}, DefaultOptions)
	want := types.Fields{Title: "song.mp3"}
	if got != want {
		t.Errorf("Fields() = %+v, want %+v", got, want)
	}
}

func TestArtistAndAlbum(t *testing.T) {
	if got := ArtistAndAlbum(types.Fields{Artist: "Queen", Album: "Jazz"}); got != "Queen - Jazz" {
		t.Errorf("ArtistAndAlbum() = %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{time.Millisecond, "00:01"},
		{time.Second, "00:01"},
		{1001 * time.Millisecond, "00:02"},
		{59 * time.Second, "00:59"},
		{3*time.Minute + 5*time.Second, "03:05"},
		{59*time.Minute + 59*time.Second + time.Millisecond, "1:00:00"},
		{2*time.Hour + 3*time.Minute + 4*time.Second, "2:03:04"},
		{-time.Second, "00:00"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTransliterate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Жуки", "Zhuki"},
		{"ЩИТ", "Sh'IT"},
		{"подъезд", "podezd"},
		{"Юрий Їжак", "Yuriy Yizhak"},
		{"Queen", "Queen"},
		{"Ёлка", "Elka"},
	}

	for _, tt := range tests {
		if got := Transliterate(tt.in); got != tt.want {
			t.Errorf("Transliterate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
