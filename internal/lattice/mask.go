package lattice

import "image"

// BinaryMask is a flat, row-major binary ink mask. True pixels are
// foreground (ink).
type BinaryMask struct {
	Pix []bool
	W   int
	H   int
}

// NewBinaryMask allocates an all-background mask of the given size.
func NewBinaryMask(w, h int) *BinaryMask {
	return &BinaryMask{Pix: make([]bool, w*h), W: w, H: h}
}

// At reports the pixel at (x, y). Out-of-bounds reads are background.
func (m *BinaryMask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.Pix[y*m.W+x]
}

// Set sets the pixel at (x, y). Out-of-bounds writes are ignored.
func (m *BinaryMask) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.Pix[y*m.W+x] = v
}

// Count returns the number of foreground pixels.
func (m *BinaryMask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v {
			n++
		}
	}
	return n
}

// Or returns the pixel-wise union of two equally sized masks.
func Or(a, b *BinaryMask) *BinaryMask {
	out := NewBinaryMask(a.W, a.H)
	for i := range a.Pix {
		out.Pix[i] = a.Pix[i] || b.Pix[i]
	}
	return out
}

// And returns the pixel-wise intersection of two equally sized masks.
func And(a, b *BinaryMask) *BinaryMask {
	out := NewBinaryMask(a.W, a.H)
	for i := range a.Pix {
		out.Pix[i] = a.Pix[i] && b.Pix[i]
	}
	return out
}

// Crop returns a copy of the mask restricted to r, which is clamped to the
// mask bounds.
func (m *BinaryMask) Crop(r image.Rectangle) *BinaryMask {
	r = r.Intersect(image.Rect(0, 0, m.W, m.H))
	out := NewBinaryMask(r.Dx(), r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		copy(out.Pix[(y-r.Min.Y)*out.W:(y-r.Min.Y+1)*out.W], m.Pix[y*m.W+r.Min.X:y*m.W+r.Max.X])
	}
	return out
}
