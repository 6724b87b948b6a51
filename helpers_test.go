package id3meta_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func synchsafe(n int) []byte {
	return []byte{byte(n>>21) & 0x7F, byte(n>>14) & 0x7F, byte(n>>7) & 0x7F, byte(n) & 0x7F}
}

func id3v2Tag(version byte, frames ...[]byte) []byte {
	body := bytes.Join(frames, nil)
	data := append([]byte{'I', 'D', '3', version, 0, 0}, synchsafe(len(body))...)
	return append(data, body...)
}

func frameV22(id string, payload []byte) []byte {
	n := len(payload)
	return append(append([]byte(id), byte(n>>16), byte(n>>8), byte(n)), payload...)
}

func frameV23(id string, payload []byte) []byte {
	data := binary.BigEndian.AppendUint32([]byte(id), uint32(len(payload)))
	data = append(data, 0, 0)
	return append(data, payload...)
}

func textUTF8(s string) []byte {
	return append([]byte{3}, s...)
}

func textLegacy(b []byte) []byte {
	return append([]byte{0}, b...)
}

func id3v1Tag(title, artist, album string) []byte {
	tag := make([]byte, 128)
	copy(tag, "TAG")
	copy(tag[3:33], title)
	copy(tag[33:63], artist)
	copy(tag[63:93], album)
	return tag
}

// mpegAudio is one second of 128 kbps MPEG-1 Layer III at 44.1 kHz.
func mpegAudio() []byte {
	data := make([]byte, 16000)
	copy(data, []byte{0xFF, 0xFB, 0x90, 0x00})
	return data
}

func join(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func writeFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
