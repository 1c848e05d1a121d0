package lattice

import (
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// maskFromRows builds a mask from equal-length strings where '#' marks
// foreground.
func maskFromRows(t *testing.T, rows ...string) *BinaryMask {
	t.Helper()
	require.NotEmpty(t, rows)
	m := NewBinaryMask(len(rows[0]), len(rows))
	for y, row := range rows {
		require.Len(t, row, m.W, "row %d", y)
		for x, c := range row {
			if c == '#' {
				m.Pix[y*m.W+x] = true
			}
		}
	}
	return m
}

// maskRows renders a mask back into strings for readable comparisons.
func maskRows(m *BinaryMask) []string {
	rows := make([]string, m.H)
	for y := 0; y < m.H; y++ {
		var b strings.Builder
		for x := 0; x < m.W; x++ {
			if m.Pix[y*m.W+x] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		rows[y] = b.String()
	}
	return rows
}

func TestMaskAtSetBounds(t *testing.T) {
	m := NewBinaryMask(4, 3)

	m.Set(2, 1, true)
	assert.True(t, m.At(2, 1))
	assert.Equal(t, 1, m.Count())

	// Out-of-bounds accesses are background and ignored.
	assert.False(t, m.At(-1, 0))
	assert.False(t, m.At(4, 0))
	m.Set(-1, 0, true)
	m.Set(0, 3, true)
	assert.Equal(t, 1, m.Count())
}

func TestMaskOrAnd(t *testing.T) {
	a := maskFromRows(t,
		"##..",
		"....",
	)
	b := maskFromRows(t,
		".##.",
		"...#",
	)

	assert.Equal(t, []string{"###.", "...#"}, maskRows(Or(a, b)))
	assert.Equal(t, []string{".#..", "...."}, maskRows(And(a, b)))
}

func TestMaskCrop(t *testing.T) {
	m := maskFromRows(t,
		"....",
		".##.",
		".##.",
		"....",
	)

	sub := m.Crop(image.Rect(1, 1, 3, 3))
	assert.Equal(t, []string{"##", "##"}, maskRows(sub))

	// Rectangle clamped to mask bounds.
	sub = m.Crop(image.Rect(2, 2, 10, 10))
	assert.Equal(t, []string{"#.", ".."}, maskRows(sub))
}
