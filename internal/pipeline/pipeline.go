package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/MeKo-Tech/lattice/internal/lattice"
	"github.com/MeKo-Tech/lattice/internal/layout"
	"github.com/MeKo-Tech/lattice/internal/utils"
)

// ErrNoRecognition signals that recognition results were never produced
// for the page. Distinct from an empty-but-valid result, which yields a
// minimal page wrapper.
var ErrNoRecognition = errors.New("no recognition results for page")

// Config holds configuration for the page pipeline and its components.
type Config struct {
	Detector   lattice.Config
	Serializer layout.Config
}

// DefaultConfig returns a default pipeline config with component defaults.
func DefaultConfig() Config {
	return Config{
		Detector:   lattice.DefaultConfig(),
		Serializer: layout.DefaultConfig(),
	}
}

// Pipeline fuses table detection with recognized-word serialization, one
// page at a time. A pipeline is safe for concurrent use across pages:
// each ProcessPage call owns its detection result and cursor state
// exclusively.
type Pipeline struct {
	cfg Config
	det *lattice.Detector
}

// New creates a pipeline from the given configuration.
func New(cfg Config) (*Pipeline, error) {
	det, err := lattice.NewDetector(cfg.Detector)
	if err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg, det: det}, nil
}

// Builder constructs a Pipeline with fluent configuration.
type Builder struct {
	cfg Config
}

// NewBuilder creates a new pipeline builder with defaults.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithScale sets the ruling-line length divisor.
func (b *Builder) WithScale(scale int) *Builder {
	if scale > 0 {
		b.cfg.Detector.Scale = scale
	}
	return b
}

// WithMergeTolerance sets the grid boundary merge tolerance in pixels.
func (b *Builder) WithMergeTolerance(tol int) *Builder {
	if tol > 0 {
		b.cfg.Detector.MergeTolerance = tol
	}
	return b
}

// WithMinJoints sets the minimum ruling-line crossings per table.
func (b *Builder) WithMinJoints(n int) *Builder {
	if n > 0 {
		b.cfg.Detector.MinJoints = n
	}
	return b
}

// WithFontInfo toggles font names on word spans.
func (b *Builder) WithFontInfo(v bool) *Builder {
	b.cfg.Serializer.FontInfo = v
	return b
}

// WithDebug toggles row/column assignment tracing.
func (b *Builder) WithDebug(v bool) *Builder {
	b.cfg.Serializer.Debug = v
	return b
}

// Build constructs the pipeline.
func (b *Builder) Build() (*Pipeline, error) { return New(b.cfg) }

// Config returns a copy of the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// DetectTables loads the page image and runs table detection. A missing
// or unreadable image degrades gracefully to a locator with zero tables:
// serialization then routes every word through the flow path.
func (p *Pipeline) DetectTables(ctx context.Context, imagePath string) (*lattice.Locator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := utils.LoadImage(imagePath)
	if err != nil {
		slog.Warn("page image unavailable, skipping table detection",
			"path", imagePath, "error", err)
		return lattice.NewLocator(nil, p.cfg.Detector.MergeTolerance), nil
	}
	regions := p.det.DetectTables(img)
	slog.Debug("table detection complete", "path", imagePath, "regions", len(regions))
	return lattice.NewLocator(regions, p.cfg.Detector.MergeTolerance), nil
}

// ProcessPage runs detection and serialization for one page. words must
// be in the recognizer's reading order; nil words means recognition was
// never run and is an error, while an empty slice yields the minimal
// page wrapper.
func (p *Pipeline) ProcessPage(ctx context.Context, page layout.Page, words []layout.Word) (string, error) {
	if words == nil {
		return "", ErrNoRecognition
	}
	loc, err := p.DetectTables(ctx, page.ImagePath)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ser := layout.NewSerializer(p.cfg.Serializer, loc)
	return ser.Page(page, words), nil
}
