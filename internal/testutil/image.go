package testutil

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// GridSpec describes a synthetic ruled table for test pages: full
// horizontal lines at each Rows coordinate and full vertical lines at
// each Cols coordinate, drawn across the spanned rectangle.
type GridSpec struct {
	Cols      []int // x coordinates of vertical ruling lines, ascending
	Rows      []int // y coordinates of horizontal ruling lines, ascending
	Thickness int   // line thickness in pixels, minimum 1
}

// NewPageImage creates a white page of the given size.
func NewPageImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	return img
}

// DrawGrid renders the ruled grid in black onto img.
func DrawGrid(img *image.RGBA, spec GridSpec) {
	if len(spec.Cols) == 0 || len(spec.Rows) == 0 {
		return
	}
	th := spec.Thickness
	if th < 1 {
		th = 1
	}
	left := spec.Cols[0]
	right := spec.Cols[len(spec.Cols)-1]
	top := spec.Rows[0]
	bottom := spec.Rows[len(spec.Rows)-1]

	black := &image.Uniform{color.Black}
	for _, y := range spec.Rows {
		r := image.Rect(left, y, right+th, y+th)
		draw.Draw(img, r, black, image.Point{}, draw.Src)
	}
	for _, x := range spec.Cols {
		r := image.Rect(x, top, x+th, bottom+th)
		draw.Draw(img, r, black, image.Point{}, draw.Src)
	}
}

// DrawLabel renders short text at the given baseline origin, for cells
// that should carry visible content.
func DrawLabel(img *image.RGBA, text string, x, y int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{color.Black},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// SavePNG writes img into dir and returns the file path.
func SavePNG(t *testing.T, img image.Image, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	file, err := os.Create(path) //nolint:gosec // G304: test file creation with controlled path
	require.NoError(t, err, "create %s", path)
	defer func() {
		require.NoError(t, file.Close())
	}()

	require.NoError(t, png.Encode(file, img), "encode %s", path)
	return path
}

// GridPage creates a page image carrying a single ruled grid and saves
// it under t.TempDir, returning the image path.
func GridPage(t *testing.T, width, height int, spec GridSpec) string {
	t.Helper()

	img := NewPageImage(width, height)
	DrawGrid(img, spec)
	return SavePNG(t, img, t.TempDir(), "grid_page.png")
}
