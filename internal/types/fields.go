package types

// Field identifies one of the three extracted text fields.
type Field int

const (
	// FieldArtist is the lead performer (TPE1/TP1, ID3v1 artist).
	FieldArtist Field = iota
	// FieldAlbum is the album title (TALB/TAL, ID3v1 album).
	FieldAlbum
	// FieldTitle is the track title (TIT2/TT2, ID3v1 title).
	FieldTitle
)

// AllFields lists every field in a fixed order.
var AllFields = [...]Field{FieldArtist, FieldAlbum, FieldTitle}

func (f Field) String() string {
	switch f {
	case FieldArtist:
		return "artist"
	case FieldAlbum:
		return "album"
	case FieldTitle:
		return "title"
	default:
		return "unknown"
	}
}

// Source records where a field value came from.
type Source int

const (
	SourceNone Source = iota // none
	SourceID3v2              // ID3v2
	SourceID3v1              // ID3v1
	SourceInspector          // inspector
)

func (s Source) String() string {
	switch s {
	case SourceID3v2:
		return "ID3v2"
	case SourceID3v1:
		return "ID3v1"
	case SourceInspector:
		return "inspector"
	default:
		return "none"
	}
}

// Fields holds artist, album and title. The empty string means absent:
// extractors never store an empty or whitespace-only value.
type Fields struct {
	Artist string
	Album  string
	Title  string
}

// Get returns the value of f.
func (fs *Fields) Get(f Field) string {
	switch f {
	case FieldArtist:
		return fs.Artist
	case FieldAlbum:
		return fs.Album
	case FieldTitle:
		return fs.Title
	}
	return ""
}

// Set stores v into f.
func (fs *Fields) Set(f Field, v string) {
	switch f {
	case FieldArtist:
		fs.Artist = v
	case FieldAlbum:
		fs.Album = v
	case FieldTitle:
		fs.Title = v
	}
}

// Has reports whether f is resolved.
func (fs *Fields) Has(f Field) bool {
	return fs.Get(f) != ""
}

// Complete reports whether all three fields are resolved.
func (fs *Fields) Complete() bool {
	return fs.Artist != "" && fs.Album != "" && fs.Title != ""
}

// Missing returns the unresolved fields in AllFields order.
func (fs *Fields) Missing() []Field {
	var missing []Field
	for _, f := range AllFields {
		if !fs.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}
