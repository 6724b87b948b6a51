package id3v2

// Resync undoes unsynchronization in place: every 0x00 that directly
// follows 0xFF is dropped. The write cursor never passes the read cursor,
// so the compaction is safe on the live buffer. It returns the new length;
// bytes past it are stale and must not be used.
func Resync(buf []byte) int {
	w := 0
	for r := 0; r < len(buf); r++ {
		buf[w] = buf[r]
		w++
		if buf[r] == 0xFF && r+1 < len(buf) && buf[r+1] == 0x00 {
			r++
		}
	}
	return w
}

// Unsynchronize returns a copy of src with 0x00 inserted after every 0xFF.
// Resync(Unsynchronize(b)) yields b for any b.
func Unsynchronize(src []byte) []byte {
	out := make([]byte, 0, len(src)+len(src)/8)
	for _, b := range src {
		out = append(out, b)
		if b == 0xFF {
			out = append(out, 0x00)
		}
	}
	return out
}
