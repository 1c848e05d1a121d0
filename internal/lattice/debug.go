package lattice

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

var overlayColor = color.NRGBA{R: 255, A: 255}

// OverlayGrid renders every table's grid boundaries onto a copy of the
// page image for visual inspection of detection results.
func OverlayGrid(img image.Image, loc *Locator) *image.NRGBA {
	clone := imaging.Clone(img)
	for i := 0; i < loc.TableCount(); i++ {
		box := loc.Region(i).Box
		g := loc.Grid(i)
		rect := box.ToRect(clone.Bounds())
		for _, x := range g.Cols {
			for y := rect.Min.Y; y < rect.Max.Y; y++ {
				clone.SetNRGBA(x, y, overlayColor)
			}
		}
		for _, y := range g.Rows {
			for x := rect.Min.X; x < rect.Max.X; x++ {
				clone.SetNRGBA(x, y, overlayColor)
			}
		}
	}
	return clone
}
