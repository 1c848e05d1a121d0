package lattice

import "container/list"

// component holds the pixel count and axis-aligned bounds of one
// 4-connected component.
type component struct {
	count int
	minX  int
	minY  int
	maxX  int
	maxY  int
}

// connectedComponents labels 4-connected components in the mask. Labels
// start at 1 in row-major seed order; the returned slice holds the stats
// for label i at index i-1.
func connectedComponents(m *BinaryMask) ([]component, []int) {
	labels := make([]int, m.W*m.H)
	var comps []component
	label := 1

	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			idx := y*m.W + x
			if m.Pix[idx] && labels[idx] == 0 {
				comps = append(comps, floodLabel(m, labels, x, y, label))
				label++
			}
		}
	}
	return comps, labels
}

// floodLabel performs BFS from a seed pixel, labeling the component and
// accumulating its stats.
func floodLabel(m *BinaryMask, labels []int, startX, startY, label int) component {
	st := component{minX: startX, minY: startY, maxX: startX, maxY: startY}
	q := list.New()
	startIdx := startY*m.W + startX
	labels[startIdx] = label
	q.PushBack(startIdx)

	dirs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

	for q.Len() > 0 {
		e := q.Front()
		q.Remove(e)
		ci, ok := e.Value.(int)
		if !ok {
			continue
		}
		cx, cy := ci%m.W, ci/m.W

		st.count++
		if cx < st.minX {
			st.minX = cx
		}
		if cy < st.minY {
			st.minY = cy
		}
		if cx > st.maxX {
			st.maxX = cx
		}
		if cy > st.maxY {
			st.maxY = cy
		}

		for _, d := range dirs {
			nx, ny := cx+d[0], cy+d[1]
			if nx < 0 || ny < 0 || nx >= m.W || ny >= m.H {
				continue
			}
			ni := ny*m.W + nx
			if m.Pix[ni] && labels[ni] == 0 {
				labels[ni] = label
				q.PushBack(ni)
			}
		}
	}
	return st
}
