package lattice

import "github.com/MeKo-Tech/lattice/internal/utils"

// traceContour extracts the outer boundary polygon of a labeled component
// using Moore-Neighbor tracing, restricted to the component's bounds.
// Collinear intermediate points are dropped. Returned points are pixel
// coordinates; a single-pixel component yields a one-point polygon.
func traceContour(labels []int, w, h, label int, st component) []utils.Point {
	if label <= 0 || len(labels) != w*h {
		return nil
	}

	isLabel := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return labels[y*w+x] == label
	}

	// First boundary pixel in scan order.
	sx, sy := -1, -1
	for y := st.minY; y <= st.maxY && sx == -1; y++ {
		for x := st.minX; x <= st.maxX; x++ {
			if isLabel(x, y) {
				sx, sy = x, y
				break
			}
		}
	}
	if sx == -1 {
		return nil
	}

	pts := make([]utils.Point, 0, 32)
	addPoint := func(x, y int) {
		p := utils.Point{X: float64(x), Y: float64(y)}
		if n := len(pts); n >= 2 {
			a, b := pts[n-2], pts[n-1]
			cross := (b.X-a.X)*(p.Y-b.Y) - (b.Y-a.Y)*(p.X-b.X)
			if cross == 0 {
				pts = pts[:n-1]
			}
		}
		pts = append(pts, p)
	}
	addPoint(sx, sy)

	// 8-neighborhood in clockwise order: E, SE, S, SW, W, NW, N, NE.
	ndx := [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	ndy := [8]int{0, 1, 1, 1, 0, -1, -1, -1}
	dirIndex := func(dx, dy int) int {
		for i := 0; i < 8; i++ {
			if ndx[i] == dx && ndy[i] == dy {
				return i
			}
		}
		return 0
	}

	cx, cy := sx, sy
	bx, by := sx-1, sy // backtrack starts left of the seed
	maxSteps := 4*w*h + 8

	for _i := 0; _i < maxSteps; _i++ {
		// Scan the Moore neighborhood clockwise starting after the
		// backtrack direction.
		start := (dirIndex(bx-cx, by-cy) + 1) % 8
		nx, ny := -1, -1
		for k := 0; k < 8; k++ {
			i := (start + k) % 8
			tx, ty := cx+ndx[i], cy+ndy[i]
			if isLabel(tx, ty) {
				nx, ny = tx, ty
				break
			}
			bx, by = tx, ty
		}
		if nx == -1 {
			break // isolated pixel
		}
		bx, by = cx, cy
		cx, cy = nx, ny
		if cx == sx && cy == sy {
			break
		}
		if last := pts[len(pts)-1]; last.X != float64(cx) || last.Y != float64(cy) {
			addPoint(cx, cy)
		}
	}

	if len(pts) >= 2 {
		if first, last := pts[0], pts[len(pts)-1]; first == last {
			pts = pts[:len(pts)-1]
		}
	}
	return pts
}
