package utils

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBoxOrdersCoordinates(t *testing.T) {
	b := NewBox(10, 20, 5, 2)
	assert.Equal(t, Box{MinX: 5, MinY: 2, MaxX: 10, MaxY: 20}, b)
}

func TestBoxContainsEdgesInclusive(t *testing.T) {
	b := NewBox(10, 10, 20, 20)

	assert.True(t, b.Contains(10, 10))
	assert.True(t, b.Contains(20, 20))
	assert.True(t, b.Contains(15, 15))
	assert.False(t, b.Contains(9.9, 15))
	assert.False(t, b.Contains(15, 20.1))
}

func TestBoxToRectClampsToBounds(t *testing.T) {
	b := NewBox(-5, -5, 120, 80)
	r := b.ToRect(image.Rect(0, 0, 100, 60))
	assert.Equal(t, image.Rect(0, 0, 100, 60), r)
}

func TestBoundingBox(t *testing.T) {
	pts := []Point{{X: 3, Y: 7}, {X: 1, Y: 9}, {X: 5, Y: 2}}
	b := BoundingBox(pts)
	assert.Equal(t, Box{MinX: 1, MinY: 2, MaxX: 5, MaxY: 9}, b)

	assert.Equal(t, Box{}, BoundingBox(nil))
}

func TestPolygonArea(t *testing.T) {
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	assert.InDelta(t, 100.0, PolygonArea(square), 1e-9)

	// Reversed winding gives the same magnitude.
	reversed := []Point{{0, 10}, {10, 10}, {10, 0}, {0, 0}}
	assert.InDelta(t, 100.0, PolygonArea(reversed), 1e-9)

	triangle := []Point{{0, 0}, {4, 0}, {0, 3}}
	assert.InDelta(t, 6.0, PolygonArea(triangle), 1e-9)

	assert.Zero(t, PolygonArea([]Point{{0, 0}, {1, 1}}))
}

func TestOffsetPoints(t *testing.T) {
	pts := []Point{{1, 2}, {3, 4}}
	out := OffsetPoints(pts, 10, 20)
	assert.Equal(t, []Point{{11, 22}, {13, 24}}, out)
	// Input untouched.
	assert.Equal(t, []Point{{1, 2}, {3, 4}}, pts)
}
