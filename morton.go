package cajal

// Z-order (Morton) indexing of a 2-D coordinate within a page. Interleaves
// the low 16 bits of x and y, with x occupying the even bit positions and y
// the odd ones, giving cells that are close in 2-D space a good chance of
// being close in linear index too.
//
// Credit: the bit-interleave trick below follows the classic Morton-decoding
// approach described at https://fgiesen.wordpress.com/2009/12/13/decoding-morton-codes/

// xyToZ maps a page-local (x, y) coordinate to its Morton linear index.
func xyToZ(x, y uint32) uint32 {
	return (splitBy2(y) << 1) + splitBy2(x)
}

// zToXY inverts xyToZ.
func zToXY(z uint32) (x, y uint32) {
	return compactBy2(z), compactBy2(z >> 1)
}

func splitBy2(x uint32) uint32 {
	x &= 0x0000ffff
	x = (x ^ (x << 8)) & 0x00ff00ff
	x = (x ^ (x << 4)) & 0x0f0f0f0f
	x = (x ^ (x << 2)) & 0x33333333
	x = (x ^ (x << 1)) & 0x55555555
	return x
}

func compactBy2(z uint32) uint32 {
	x := z & 0x55555555
	x = (x ^ (x >> 1)) & 0x33333333
	x = (x ^ (x >> 2)) & 0x0f0f0f0f
	x = (x ^ (x >> 4)) & 0x00ff00ff
	x = (x ^ (x >> 8)) & 0x0000ffff
	return x
}
