package lattice

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/MeKo-Tech/lattice/internal/utils"
)

// TableRegion is one detected full-ruled table: the bounding box of its
// outer boundary and one contour point group per ruling-line joint,
// in page coordinates. Immutable after detection.
type TableRegion struct {
	Box    utils.Box
	Joints [][]utils.Point
}

// JointCount returns the number of ruling-line crossings in the region.
func (r TableRegion) JointCount() int { return len(r.Joints) }

// Config holds table detection parameters.
type Config struct {
	// Scale divides the image dimension to get the minimum ruling-line
	// length; smaller values demand longer lines.
	Scale int `mapstructure:"scale" yaml:"scale" json:"scale"`
	// BlockSize is the adaptive threshold neighborhood size in pixels.
	BlockSize int `mapstructure:"block_size" yaml:"block_size" json:"block_size"`
	// ThresholdOffset is the adaptive threshold offset constant.
	ThresholdOffset int `mapstructure:"threshold_offset" yaml:"threshold_offset" json:"threshold_offset"`
	// MinRegionArea rejects candidate components enclosing less area, in
	// square pixels.
	MinRegionArea float64 `mapstructure:"min_region_area" yaml:"min_region_area" json:"min_region_area"`
	// MinJoints rejects candidates with fewer ruling-line crossings.
	MinJoints int `mapstructure:"min_joints" yaml:"min_joints" json:"min_joints"`
	// MergeTolerance collapses grid-line coordinates closer than this
	// many pixels into one boundary.
	MergeTolerance int `mapstructure:"merge_tolerance" yaml:"merge_tolerance" json:"merge_tolerance"`
}

// DefaultConfig returns the default detection parameters.
func DefaultConfig() Config {
	return Config{
		Scale:           30,
		BlockSize:       15,
		ThresholdOffset: -2,
		MinRegionArea:   50,
		MinJoints:       5,
		MergeTolerance:  3,
	}
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.Scale < 1 {
		return fmt.Errorf("invalid scale: %d (must be >= 1)", c.Scale)
	}
	if c.BlockSize < 3 || c.BlockSize%2 == 0 {
		return fmt.Errorf("invalid block size: %d (must be odd and >= 3)", c.BlockSize)
	}
	if c.MinRegionArea < 0 {
		return fmt.Errorf("invalid min region area: %g", c.MinRegionArea)
	}
	if c.MinJoints < 1 {
		return fmt.Errorf("invalid min joints: %d (must be >= 1)", c.MinJoints)
	}
	if c.MergeTolerance < 1 {
		return fmt.Errorf("invalid merge tolerance: %d (must be >= 1)", c.MergeTolerance)
	}
	return nil
}

// Detector finds full-ruled table regions in page images.
type Detector struct {
	cfg Config
}

// NewDetector creates a table detector with the given configuration.
func NewDetector(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Detector{cfg: cfg}, nil
}

// Config returns a copy of the detector's configuration.
func (d *Detector) Config() Config { return d.cfg }

// DetectTables runs the full detection chain on a page image: binarize,
// extract ruling lines, find candidate regions on the line union, and
// keep those with enough enclosed area and joints. Regions are returned
// in component-discovery order, which is not guaranteed to be reading
// order.
func (d *Detector) DetectTables(img image.Image) []TableRegion {
	bw := Binarize(img, d.cfg.BlockSize, d.cfg.ThresholdOffset)
	horizontal, vertical := ExtractRuleLines(bw, d.cfg.Scale)
	union := Or(horizontal, vertical)
	joints := And(horizontal, vertical)

	comps, labels := connectedComponents(union)
	regions := make([]TableRegion, 0, 4)

	for i, c := range comps {
		contour := traceContour(labels, union.W, union.H, i+1, c)
		area := utils.PolygonArea(contour)
		if area < d.cfg.MinRegionArea {
			continue
		}

		box := utils.NewBox(float64(c.minX), float64(c.minY), float64(c.maxX), float64(c.maxY))
		rect := image.Rect(c.minX, c.minY, c.maxX+1, c.maxY+1)
		region, ok := d.collectJoints(joints, rect, box)
		if !ok {
			continue
		}
		slog.Debug("accepted table region",
			"area", area,
			"joints", region.JointCount(),
			"box", fmt.Sprintf("%g,%g-%g,%g", box.MinX, box.MinY, box.MaxX, box.MaxY))
		regions = append(regions, region)
	}
	return regions
}

// collectJoints finds ruling-line crossings inside the candidate rectangle
// and translates their contours back to page coordinates. A candidate with
// fewer than MinJoints crossings is rejected as noise: a true grid needs
// at least a 2x3 or 3x2 arrangement of crossings.
func (d *Detector) collectJoints(joints *BinaryMask, rect image.Rectangle, box utils.Box) (TableRegion, bool) {
	sub := joints.Crop(rect)
	comps, labels := connectedComponents(sub)
	if len(comps) < d.cfg.MinJoints {
		return TableRegion{}, false
	}

	groups := make([][]utils.Point, 0, len(comps))
	for i, c := range comps {
		pts := traceContour(labels, sub.W, sub.H, i+1, c)
		if len(pts) == 0 {
			continue
		}
		groups = append(groups, utils.OffsetPoints(pts, float64(rect.Min.X), float64(rect.Min.Y)))
	}
	return TableRegion{Box: box, Joints: groups}, true
}
