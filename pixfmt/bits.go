package pixfmt

// ReadBits reads n bits (0 <= n <= 64) from data starting at bit address
// start. Bit p of the buffer is bit p%8 of data[p/8] counted from the most
// significant bit of that byte.
//
// With MSBFirst the first bit read becomes the most significant bit of the
// result; with LSBFirst it becomes the least significant bit. Bits at or past
// the end of data read as zero, so reading past the end is never an error.
func ReadBits(data []byte, start int64, n int, order BitOrder) uint64 {
	if n <= 0 {
		return 0
	}
	if n > 64 {
		n = 64
	}
	total := int64(len(data)) * 8
	var v uint64
	for i := 0; i < n; i++ {
		p := start + int64(i)
		var bit uint64
		if p >= 0 && p < total {
			bit = uint64(data[p>>3]>>(7-uint(p&7))) & 1
		}
		if order == LSBFirst {
			v |= bit << uint(i)
		} else {
			v = v<<1 | bit
		}
	}
	return v
}

// AdjustByteOrder reorders the whole bytes of a decoded pixel value.
//
// For bpp <= 8 or BigEndian the value is only masked to bpp bits. Otherwise
// the value is split into ceil(bpp/8) bytes (most significant first), the
// byte sequence is reversed and reassembled, and the result is masked to bpp
// bits. Field packing inside the value is not affected.
func AdjustByteOrder(v uint64, bpp int, order ByteOrder) uint64 {
	if bpp <= 8 || order != LittleEndian {
		return v & mask(bpp)
	}
	n := (bpp + 7) / 8
	var out uint64
	for i := 0; i < n; i++ {
		out = out<<8 | (v>>(8*uint(i)))&0xFF
	}
	return out & mask(bpp)
}

// mask returns a value with the low n bits set.
func mask(n int) uint64 {
	switch {
	case n <= 0:
		return 0
	case n >= 64:
		return ^uint64(0)
	}
	return 1<<uint(n) - 1
}
