// Package mpeg estimates the duration of MPEG audio Layer III streams.
package mpeg

import (
	"encoding/binary"
	"errors"
	"time"

	binutil "github.com/simonhull/id3meta/internal/binary"
)

// ScanLimit bounds how far past the tag the first frame sync is searched for.
const ScanLimit = 64 * 1024

// ErrNoFrame is returned when no Layer III frame header is found.
var ErrNoFrame = errors.New("no MPEG audio frame found")

// Version is the MPEG audio version of a stream.
type Version int

const (
	MPEG1  Version = 1
	MPEG2  Version = 2
	MPEG25 Version = 25
)

func (v Version) String() string {
	switch v {
	case MPEG1:
		return "MPEG-1"
	case MPEG2:
		return "MPEG-2"
	case MPEG25:
		return "MPEG-2.5"
	}
	return "unknown"
}

// Info describes the first frame of a stream and the estimated duration.
type Info struct {
	Version    Version
	Bitrate    int // bits per second of the first frame
	SampleRate int // Hz
	Channels   int
	Duration   time.Duration
	VBR        bool // duration taken from a Xing or VBRI frame count
	Offset     int64
}

// Layer III bitrates in kbps, by MPEG-1 and MPEG-2/2.5.
var bitrates = [2][16]int{
	{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0},
	{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
}

var sampleRates = map[Version][3]int{
	MPEG1:  {44100, 48000, 32000},
	MPEG2:  {22050, 24000, 16000},
	MPEG25: {11025, 12000, 8000},
}

type header struct {
	version    Version
	bitrate    int
	sampleRate int
	mono       bool
}

func (h header) samplesPerFrame() int {
	if h.version == MPEG1 {
		return 1152
	}
	return 576
}

// sideInfo is the size of the Layer III side information that precedes a
// Xing header inside the first frame.
func (h header) sideInfo() int {
	switch {
	case h.version == MPEG1 && !h.mono:
		return 32
	case h.version == MPEG1 || !h.mono:
		return 17
	}
	return 9
}

func parseHeader(b []byte) (header, bool) {
	v := binary.BigEndian.Uint32(b)
	if v&0xFFE00000 != 0xFFE00000 {
		return header{}, false
	}

	var h header
	switch (v >> 19) & 0x3 {
	case 3:
		h.version = MPEG1
	case 2:
		h.version = MPEG2
	case 0:
		h.version = MPEG25
	default:
		return header{}, false
	}

	// Layer III only.
	if (v>>17)&0x3 != 1 {
		return header{}, false
	}

	table := 0
	if h.version != MPEG1 {
		table = 1
	}
	h.bitrate = bitrates[table][(v>>12)&0xF] * 1000

	rateIdx := (v >> 10) & 0x3
	if rateIdx == 3 || h.bitrate == 0 {
		return header{}, false
	}
	h.sampleRate = sampleRates[h.version][rateIdx]
	h.mono = (v>>6)&0x3 == 3
	return h, true
}

// Probe finds the first Layer III frame at or after start and estimates the
// stream duration. end is the offset where audio data stops (the file size,
// minus an ID3v1 trailer if there is one).
func Probe(sr *binutil.SafeReader, start, end int64) (Info, error) {
	window := min(end-start, ScanLimit)
	if window < 4 {
		return Info{}, ErrNoFrame
	}

	buf, err := sr.ReadFull(start, int(window), "MPEG frame search")
	if err != nil {
		return Info{}, err
	}

	for i := 0; i+4 <= len(buf); i++ {
		if buf[i] != 0xFF {
			continue
		}
		h, ok := parseHeader(buf[i:])
		if !ok {
			continue
		}

		offset := start + int64(i)
		info := Info{
			Version:    h.version,
			Bitrate:    h.bitrate,
			SampleRate: h.sampleRate,
			Channels:   2,
			Offset:     offset,
		}
		if h.mono {
			info.Channels = 1
		}

		if frames, ok := vbrFrames(sr, offset, h); ok {
			info.VBR = true
			info.Duration = framesDuration(frames, h)
		} else {
			info.Duration = cbrDuration(h.bitrate, end-offset)
		}
		return info, nil
	}
	return Info{}, ErrNoFrame
}

// vbrFrames reads the frame count from a Xing/Info or VBRI header in the
// first frame.
func vbrFrames(sr *binutil.SafeReader, offset int64, h header) (uint32, bool) {
	buf := make([]byte, 12)
	if err := sr.ReadAt(buf, offset+4+int64(h.sideInfo()), "Xing header"); err == nil {
		tag := string(buf[:4])
		if (tag == "Xing" || tag == "Info") && binary.BigEndian.Uint32(buf[4:8])&0x1 != 0 {
			return binary.BigEndian.Uint32(buf[8:12]), true
		}
	}

	// VBRI always sits 32 bytes after the frame header.
	vbri := make([]byte, 18)
	if err := sr.ReadAt(vbri, offset+36, "VBRI header"); err == nil && string(vbri[:4]) == "VBRI" {
		return binary.BigEndian.Uint32(vbri[14:18]), true
	}
	return 0, false
}

func framesDuration(frames uint32, h header) time.Duration {
	samples := float64(frames) * float64(h.samplesPerFrame())
	return time.Duration(samples / float64(h.sampleRate) * float64(time.Second))
}

func cbrDuration(bitrate int, audioBytes int64) time.Duration {
	if bitrate <= 0 || audioBytes <= 0 {
		return 0
	}
	return time.Duration(float64(audioBytes*8) / float64(bitrate) * float64(time.Second))
}
