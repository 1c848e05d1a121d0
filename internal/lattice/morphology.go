package lattice

// Directional morphological filtering for ruling-line extraction. Erosion
// followed by dilation with a 1-pixel-thick line element removes every
// stroke shorter than the element while preserving long straight lines,
// which is what separates ruling lines from text glyphs.

// ExtractRuleLines isolates long horizontal and vertical strokes from a
// binary ink mask. The structuring element length adapts to the image
// size: width/scale for horizontal lines, height/scale for vertical ones.
func ExtractRuleLines(m *BinaryMask, scale int) (horizontal, vertical *BinaryMask) {
	if scale < 1 {
		scale = 1
	}
	kh := max(1, m.W/scale)
	kv := max(1, m.H/scale)
	horizontal = openLines(m, kh, true)
	vertical = openLines(m, kv, false)
	return horizontal, vertical
}

// openLines applies a morphological opening with a 1xk (horizontal) or
// kx1 (vertical) structuring element anchored at its center.
func openLines(m *BinaryMask, k int, horizontal bool) *BinaryMask {
	if k <= 1 {
		out := NewBinaryMask(m.W, m.H)
		copy(out.Pix, m.Pix)
		return out
	}
	eroded := erodeLine(m, k, horizontal)
	return dilateLine(eroded, k, horizontal)
}

// erodeLine keeps a pixel only if every pixel under the line element is
// foreground. Pixels outside the mask count as background, so strokes
// touching the border lose up to half an element at each end; the
// following dilation restores the extent.
func erodeLine(m *BinaryMask, k int, horizontal bool) *BinaryMask {
	out := NewBinaryMask(m.W, m.H)
	half := k / 2
	if horizontal {
		for y := 0; y < m.H; y++ {
			row := m.Pix[y*m.W : (y+1)*m.W]
			for x := 0; x < m.W; x++ {
				out.Pix[y*m.W+x] = runAllTrue(row, x-half, k)
			}
		}
		return out
	}
	col := make([]bool, m.H)
	for x := 0; x < m.W; x++ {
		for y := 0; y < m.H; y++ {
			col[y] = m.Pix[y*m.W+x]
		}
		for y := 0; y < m.H; y++ {
			out.Pix[y*m.W+x] = runAllTrue(col, y-half, k)
		}
	}
	return out
}

// dilateLine sets a pixel if any pixel under the line element is foreground.
func dilateLine(m *BinaryMask, k int, horizontal bool) *BinaryMask {
	out := NewBinaryMask(m.W, m.H)
	half := k / 2
	if horizontal {
		for y := 0; y < m.H; y++ {
			row := m.Pix[y*m.W : (y+1)*m.W]
			for x := 0; x < m.W; x++ {
				out.Pix[y*m.W+x] = runAnyTrue(row, x-half, k)
			}
		}
		return out
	}
	col := make([]bool, m.H)
	for x := 0; x < m.W; x++ {
		for y := 0; y < m.H; y++ {
			col[y] = m.Pix[y*m.W+x]
		}
		for y := 0; y < m.H; y++ {
			out.Pix[y*m.W+x] = runAnyTrue(col, y-half, k)
		}
	}
	return out
}

func runAllTrue(buf []bool, start, k int) bool {
	if start < 0 || start+k > len(buf) {
		return false
	}
	for i := start; i < start+k; i++ {
		if !buf[i] {
			return false
		}
	}
	return true
}

func runAnyTrue(buf []bool, start, k int) bool {
	if start < 0 {
		start = 0
	}
	end := min(start+k, len(buf))
	for i := start; i < end; i++ {
		if buf[i] {
			return true
		}
	}
	return false
}
