package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/lattice/internal/utils"
)

func TestConnectedComponentsSeparatesBlobs(t *testing.T) {
	m := maskFromRows(t,
		"##....#",
		"##....#",
		".......",
		"...##..",
	)

	comps, labels := connectedComponents(m)
	require.Len(t, comps, 3)

	// Row-major seed order.
	assert.Equal(t, component{count: 4, minX: 0, minY: 0, maxX: 1, maxY: 1}, comps[0])
	assert.Equal(t, component{count: 2, minX: 6, minY: 0, maxX: 6, maxY: 1}, comps[1])
	assert.Equal(t, component{count: 2, minX: 3, minY: 3, maxX: 4, maxY: 3}, comps[2])

	assert.Equal(t, 1, labels[0])
	assert.Equal(t, 2, labels[6])
	assert.Equal(t, 3, labels[3*m.W+3])
	assert.Equal(t, 0, labels[2*m.W])
}

func TestConnectedComponentsDiagonalIsSeparate(t *testing.T) {
	// 4-connectivity: diagonal neighbors are distinct components.
	m := maskFromRows(t,
		"#.",
		".#",
	)
	comps, _ := connectedComponents(m)
	assert.Len(t, comps, 2)
}

func TestConnectedComponentsEmptyMask(t *testing.T) {
	comps, labels := connectedComponents(NewBinaryMask(5, 5))
	assert.Empty(t, comps)
	assert.Len(t, labels, 25)
}

func TestTraceContourRectangle(t *testing.T) {
	m := maskFromRows(t,
		".....",
		".###.",
		".###.",
		".###.",
		".....",
	)
	comps, labels := connectedComponents(m)
	require.Len(t, comps, 1)

	contour := traceContour(labels, m.W, m.H, 1, comps[0])
	require.NotEmpty(t, contour)

	// The traced square spans inclusive bounds 1..3 and encloses 2x2
	// pixel-center area regardless of how many boundary vertices remain.
	assert.GreaterOrEqual(t, len(contour), 4)
	assert.InDelta(t, 4.0, utils.PolygonArea(contour), 1e-9)
	assert.Equal(t, utils.Box{MinX: 1, MinY: 1, MaxX: 3, MaxY: 3}, utils.BoundingBox(contour))
}

func TestTraceContourSinglePixel(t *testing.T) {
	m := maskFromRows(t,
		"...",
		".#.",
		"...",
	)
	comps, labels := connectedComponents(m)
	require.Len(t, comps, 1)

	contour := traceContour(labels, m.W, m.H, 1, comps[0])
	assert.Equal(t, []utils.Point{{X: 1, Y: 1}}, contour)
}

// componentPoints collects all pixel coordinates of the given label within
// the component's bounds.
func componentPoints(labels []int, w int, label int, st component) []utils.Point {
	pts := make([]utils.Point, 0, st.count)
	for y := st.minY; y <= st.maxY; y++ {
		for x := st.minX; x <= st.maxX; x++ {
			if labels[y*w+x] == label {
				pts = append(pts, utils.Point{X: float64(x), Y: float64(y)})
			}
		}
	}
	return pts
}

func TestComponentPoints(t *testing.T) {
	m := maskFromRows(t,
		"##",
		"#.",
	)
	comps, labels := connectedComponents(m)
	require.Len(t, comps, 1)

	pts := componentPoints(labels, m.W, 1, comps[0])
	assert.ElementsMatch(t, []utils.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, pts)
}
