package hal

func rgb565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// rgb888From565 expands a 565 pixel back to 8 bits per channel.
func rgb888From565(p uint16) (r, g, b uint8) {
	r5 := (p >> 11) & 0x1F
	g6 := (p >> 5) & 0x3F
	b5 := p & 0x1F
	return uint8(r5 * 255 / 31), uint8(g6 * 255 / 63), uint8(b5 * 255 / 31)
}
