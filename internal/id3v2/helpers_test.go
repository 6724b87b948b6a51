package id3v2

import (
	"bytes"
	"encoding/binary"
	"testing"

	binutil "github.com/simonhull/id3meta/internal/binary"
	"github.com/simonhull/id3meta/internal/types"
)

// synchsafeBytes encodes n as a 4-byte synchsafe integer.
func synchsafeBytes(n int) []byte {
	return []byte{
		byte(n>>21) & 0x7F,
		byte(n>>14) & 0x7F,
		byte(n>>7) & 0x7F,
		byte(n) & 0x7F,
	}
}

// buildTag prepends a 10-byte ID3v2 header to body.
func buildTag(version, flags byte, body []byte) []byte {
	data := []byte{'I', 'D', '3', version, 0x00, flags}
	data = append(data, synchsafeBytes(len(body))...)
	return append(data, body...)
}

// frame22 builds an ID3v2.2 frame (3-byte ID, 24-bit size).
func frame22(id string, payload []byte) []byte {
	n := len(payload)
	data := append([]byte(id), byte(n>>16), byte(n>>8), byte(n))
	return append(data, payload...)
}

// frame23 builds an ID3v2.3 frame (plain 32-bit size).
func frame23(id string, flags uint16, payload []byte) []byte {
	data := []byte(id)
	data = binary.BigEndian.AppendUint32(data, uint32(len(payload)))
	data = binary.BigEndian.AppendUint16(data, flags)
	return append(data, payload...)
}

// frame24 builds an ID3v2.4 frame (synchsafe size).
func frame24(id string, flags uint16, payload []byte) []byte {
	data := append([]byte(id), synchsafeBytes(len(payload))...)
	data = binary.BigEndian.AppendUint16(data, flags)
	return append(data, payload...)
}

// text builds a text frame payload with the given selector.
func text(selector byte, s string) []byte {
	return append([]byte{selector}, s...)
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func parseBytes(t *testing.T, data []byte, opts Options) (types.Fields, []types.Warning, error) {
	t.Helper()
	sr := binutil.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.mp3")
	return Parse(sr, opts)
}
