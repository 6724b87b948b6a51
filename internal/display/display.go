// Package display turns extracted fields into strings for listings.
package display

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/simonhull/id3meta/internal/types"
)

// Options controls how fields are rendered.
type Options struct {
	// ShowMetadata uses tag values; when false, names always come from the path.
	ShowMetadata bool
	// Underscores replaces '_' with ' '.
	Underscores bool
	// Transliterate converts Cyrillic letters to Latin.
	Transliterate bool
}

// DefaultOptions matches a fresh install: tags shown, underscores replaced.
var DefaultOptions = Options{ShowMetadata: true, Underscores: true}

// Fields returns the display form of f for the file at path. Missing
// fields fall back to the path: title to the file name, album to the
// parent directory and artist to the grandparent directory.
func Fields(path string, f types.Fields, o Options) types.Fields {
	var out types.Fields
	for _, field := range types.AllFields {
		s := f.Get(field)
		if s == "" || !o.ShowMetadata {
			s = fromPath(path, field)
		}
		if o.Underscores {
			s = strings.ReplaceAll(s, "_", " ")
		}
		if o.Transliterate {
			s = Transliterate(s)
		}
		out.Set(field, s)
	}
	return out
}

// ArtistAndAlbum joins artist and album as "artist - album".
func ArtistAndAlbum(f types.Fields) string {
	return f.Artist + " - " + f.Album
}

func fromPath(path string, f types.Field) string {
	switch f {
	case types.FieldTitle:
		return filepath.Base(path)
	case types.FieldAlbum:
		return dirName(filepath.Dir(path))
	case types.FieldArtist:
		return dirName(filepath.Dir(filepath.Dir(path)))
	}
	return ""
}

func dirName(dir string) string {
	if dir == "." || dir == string(filepath.Separator) {
		return ""
	}
	return filepath.Base(dir)
}

// FormatDuration renders d rounded up to whole seconds as "mm:ss", or
// "h:mm:ss" from one hour on.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64((d + time.Second - 1) / time.Second)

	h, m, s := secs/3600, secs/60%60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

var lowerTranslit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sh'", 'ъ': "",
	'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
	'ґ': "g", 'є': "ye", 'і': "i", 'ї': "yi",
}

var translit = make(map[rune]string, 2*len(lowerTranslit))

func init() {
	for r, s := range lowerTranslit {
		translit[r] = s
		if s != "" {
			s = strings.ToUpper(s[:1]) + s[1:]
		}
		translit[unicode.ToUpper(r)] = s
	}
}

// Transliterate replaces Russian and Ukrainian letters with Latin ones.
func Transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if repl, ok := translit[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
