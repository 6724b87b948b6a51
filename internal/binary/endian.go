package binary

// Uint24 decodes a 24-bit big-endian integer (ID3v2.2 frame sizes).
func Uint24(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// Synchsafe decodes a synchsafe integer (7 bits per byte, big-endian).
// The top bit of every byte is ignored, giving a 28-bit value.
func Synchsafe(b []byte) uint32 {
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}
