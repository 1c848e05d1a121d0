package layout

import "math"

// FitBaseline converts a baseline's endpoints into the coefficients of
// y = p1*x + p0, expressed relative to the bottom-left corner of the
// enclosing line box and rounded to three decimals. Degenerate input with
// equal x endpoints has no defined slope; ok is false and the caller
// omits the attribute.
func FitBaseline(bl Baseline, lineBox Box) (p1, p0 float64, ok bool) {
	x1 := bl.X1 - lineBox.Left
	x2 := bl.X2 - lineBox.Left
	y1 := bl.Y1 - lineBox.Bottom
	y2 := bl.Y2 - lineBox.Bottom
	if x1 == x2 {
		return 0, 0, false
	}
	p1 = float64(y2-y1) / float64(x2-x1)
	p0 = float64(y1) - p1*float64(x1)
	return round3(p1), round3(p0), true
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
