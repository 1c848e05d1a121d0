package lattice

import (
	"image"

	"github.com/disintegration/imaging"
)

// Binarize converts a page image into an inverted binary ink mask using
// adaptive mean thresholding: each pixel is compared against the mean of
// its blockSize x blockSize neighborhood on the inverted grayscale image,
// so dark ink becomes foreground. The offset follows the OpenCV
// adaptive-threshold C convention (threshold = mean - offset), with the
// default offset of -2 requiring pixels to exceed the local mean by 2.
func Binarize(img image.Image, blockSize, offset int) *BinaryMask {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()

	// Inverted luminance so ink is high-valued.
	inv := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w*4]
		for x := 0; x < w; x++ {
			inv[y*w+x] = 255 - row[x*4]
		}
	}

	// Summed-area table for O(1) window means.
	integral := make([]int64, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		var rowSum int64
		for x := 0; x < w; x++ {
			rowSum += int64(inv[y*w+x])
			integral[(y+1)*(w+1)+x+1] = integral[y*(w+1)+x+1] + rowSum
		}
	}

	if blockSize < 3 {
		blockSize = 3
	}
	half := blockSize / 2

	mask := NewBinaryMask(w, h)
	for y := 0; y < h; y++ {
		y0 := max(0, y-half)
		y1 := min(h, y-half+blockSize)
		for x := 0; x < w; x++ {
			x0 := max(0, x-half)
			x1 := min(w, x-half+blockSize)
			sum := integral[y1*(w+1)+x1] - integral[y0*(w+1)+x1] -
				integral[y1*(w+1)+x0] + integral[y0*(w+1)+x0]
			count := int64((x1 - x0) * (y1 - y0))
			mean := float64(sum) / float64(count)
			if float64(inv[y*w+x]) > mean-float64(offset) {
				mask.Pix[y*w+x] = true
			}
		}
	}
	return mask
}
