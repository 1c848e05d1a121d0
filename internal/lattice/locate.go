package lattice

import "log/slog"

// CellAddress is the (table, row, column) location assigned to a point.
// Table is -1 when the point lies outside every table region.
type CellAddress struct {
	Table int
	Row   int
	Col   int
}

// NoCell is the address of points outside every table.
var NoCell = CellAddress{Table: -1, Row: -1, Col: -1}

// InTable reports whether the address refers to a table cell.
func (a CellAddress) InTable() bool { return a.Table >= 0 }

// Locator answers table-membership queries against a page's detected
// regions and their grids. Regions whose joints fail to form a grid are
// dropped, so every retained region can answer cell queries.
type Locator struct {
	regions []TableRegion
	grids   []Grid
}

// NewLocator builds grids for the given regions. Safe for concurrent
// reads after construction.
func NewLocator(regions []TableRegion, tolerance int) *Locator {
	l := &Locator{
		regions: make([]TableRegion, 0, len(regions)),
		grids:   make([]Grid, 0, len(regions)),
	}
	for _, r := range regions {
		g, err := BuildGrid(r, tolerance)
		if err != nil {
			slog.Warn("dropping table region without usable grid",
				"joints", r.JointCount(), "error", err)
			continue
		}
		l.regions = append(l.regions, r)
		l.grids = append(l.grids, g)
	}
	return l
}

// TableCount returns the number of usable table regions.
func (l *Locator) TableCount() int { return len(l.regions) }

// Region returns the i-th region.
func (l *Locator) Region(i int) TableRegion { return l.regions[i] }

// Grid returns the i-th region's grid.
func (l *Locator) Grid(i int) Grid { return l.grids[i] }

// Locate returns the cell address for a point, or NoCell. Membership is
// decided by the first region whose bounding box contains the point,
// edges inclusive; valid pages have non-overlapping regions so order does
// not matter there.
func (l *Locator) Locate(x, y int) CellAddress {
	for i, r := range l.regions {
		if r.Box.Contains(float64(x), float64(y)) {
			return CellAddress{
				Table: i,
				Row:   intervalIndex(l.grids[i].Rows, y),
				Col:   intervalIndex(l.grids[i].Cols, x),
			}
		}
	}
	return NoCell
}

// intervalIndex maps a coordinate to its 0-based interval between sorted
// boundaries: the smallest i >= 1 with v < bounds[i], minus one. Points at
// or beyond the last boundary clamp to the last interval; the region box
// already contains them, and any overflow is bounded by ruling-line
// stroke width.
func intervalIndex(bounds []int, v int) int {
	for i := 1; i < len(bounds); i++ {
		if v < bounds[i] {
			return i - 1
		}
	}
	return len(bounds) - 2
}
