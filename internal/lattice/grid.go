package lattice

import (
	"errors"
	"math"
	"sort"
)

// ErrDegenerateGrid indicates a table region whose joints do not form at
// least two boundaries on each axis. The joint-count filter makes this
// unreachable for detected regions, but hand-built regions can hit it.
var ErrDegenerateGrid = errors.New("table region joints do not form a grid")

// Grid holds the sorted boundary coordinates of one table: Cols are
// x-boundaries (column separators including the outer border), Rows are
// y-boundaries. Boundaries are strictly increasing and no two differ by
// less than the merge tolerance.
type Grid struct {
	Cols []int `json:"cols"`
	Rows []int `json:"rows"`
}

// CellCount returns the number of rows and columns the grid spans.
func (g Grid) CellCount() (rows, cols int) {
	return len(g.Rows) - 1, len(g.Cols) - 1
}

// BuildGrid reduces a region's joint groups to deduplicated boundary
// coordinates per axis. All joint points are pooled, sorted, and merged
// into runs whose adjacent gap is below the tolerance; each run is
// represented by its rounded mean. Deterministic for a fixed region and
// tolerance.
func BuildGrid(region TableRegion, tolerance int) (Grid, error) {
	if tolerance < 1 {
		tolerance = 1
	}
	xs := make([]int, 0, len(region.Joints)*4)
	ys := make([]int, 0, len(region.Joints)*4)
	for _, group := range region.Joints {
		for _, p := range group {
			xs = append(xs, int(math.Round(p.X)))
			ys = append(ys, int(math.Round(p.Y)))
		}
	}

	g := Grid{
		Cols: cluster1D(xs, tolerance),
		Rows: cluster1D(ys, tolerance),
	}
	if len(g.Cols) < 2 || len(g.Rows) < 2 {
		return Grid{}, ErrDegenerateGrid
	}
	return g, nil
}

// cluster1D merges sorted coordinates into runs: a value starts a new run
// when its gap to the previous value is at least tol. Each run collapses
// to its rounded mean, so thick joints contribute one boundary while
// distinct ruling lines stay separate.
func cluster1D(vals []int, tol int) []int {
	if len(vals) == 0 {
		return nil
	}
	sorted := make([]int, len(vals))
	copy(sorted, vals)
	sort.Ints(sorted)

	out := make([]int, 0, 8)
	runStart := 0
	flush := func(end int) {
		sum := 0
		for _, v := range sorted[runStart:end] {
			sum += v
		}
		out = append(out, int(math.Round(float64(sum)/float64(end-runStart))))
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i]-sorted[i-1] >= tol {
			flush(i)
			runStart = i
		}
	}
	flush(len(sorted))
	return out
}
