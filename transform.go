package ici

// remap moves every index of a w by h pixel buffer into a new buffer of
// equal size, with f mapping source coordinates to destination
// coordinates in a buffer nw wide. All transform coordinate arithmetic
// funnels through here so the math lives in one place.
func remap(pixels []byte, w, h, nw int, f func(x, y int) (nx, ny int)) []byte {
	out := make([]byte, len(pixels))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			nx, ny := f(x, y)
			out[ny*nw+nx] = pixels[y*w+x]
		}
	}
	return out
}

// flipHorizontalPixels mirrors a frame left to right.
func flipHorizontalPixels(pixels []byte, w, h int) []byte {
	return remap(pixels, w, h, w, func(x, y int) (int, int) {
		return w - 1 - x, y
	})
}

// flipVerticalPixels mirrors a frame top to bottom.
func flipVerticalPixels(pixels []byte, w, h int) []byte {
	return remap(pixels, w, h, w, func(x, y int) (int, int) {
		return x, h - 1 - y
	})
}

// rotate90Pixels rotates a frame a quarter turn, moving (x, y) to
// (y, w-1-x). The resulting frame is h wide and w high; both stay within
// the uint8 dimension bound because they merely swap.
func rotate90Pixels(pixels []byte, w, h int) []byte {
	return remap(pixels, w, h, h, func(x, y int) (int, int) {
		return y, w - 1 - x
	})
}

// rotate180Pixels rotates a frame a half turn. Dimensions are unchanged.
func rotate180Pixels(pixels []byte, w, h int) []byte {
	return remap(pixels, w, h, w, func(x, y int) (int, int) {
		return w - 1 - x, h - 1 - y
	})
}

// rotate270Pixels rotates a frame three quarter turns, moving (x, y) to
// (h-1-y, x). The resulting frame is h wide and w high.
func rotate270Pixels(pixels []byte, w, h int) []byte {
	return remap(pixels, w, h, h, func(x, y int) (int, int) {
		return h - 1 - y, x
	})
}

// replaceIndexPixels rewrites every occurrence of old with new in place.
func replaceIndexPixels(pixels []byte, old, new uint8) {
	for i, p := range pixels {
		if p == old {
			pixels[i] = new
		}
	}
}

func highestIndex(pixels []byte) uint8 {
	var highest byte
	for _, i := range pixels {
		if i > highest {
			highest = i
		}
	}
	return highest
}
