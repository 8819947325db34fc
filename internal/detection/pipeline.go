package detection

import (
	"errors"
	"image"

	"github.com/ironsheep/wall-takeoff-mcp/internal/imaging"
)

// Pipeline runs wall extraction on plan images.
//
// A Pipeline holds only its immutable configuration and a logging callback, so
// one instance may analyze many images from many goroutines at once. Each
// call owns all of its intermediate data. Stages do not observe cancellation;
// callers that need to stop work should do so between calls.
type Pipeline struct {
	cfg  Config
	logf func(format string, args ...interface{})
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogf routes stage progress messages to f. Passing nil silences them.
func WithLogf(f func(format string, args ...interface{})) Option {
	return func(p *Pipeline) {
		if f == nil {
			f = func(string, ...interface{}) {}
		}
		p.logf = f
	}
}

// NewPipeline validates cfg and returns a pipeline using a private copy of it.
func NewPipeline(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{
		cfg:  cfg.clone(),
		logf: func(string, ...interface{}) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Config returns a copy of the pipeline's configuration.
func (p *Pipeline) Config() Config {
	return p.cfg.clone()
}

// Binarize reduces a decoded plan image to ink and paper using the pipeline's
// dark threshold. Images without pixels yield an *InvalidInputError.
func (p *Pipeline) Binarize(img image.Image) (*imaging.BinaryImage, error) {
	if img == nil {
		return nil, &InvalidInputError{Reason: "nil image"}
	}
	bin, err := imaging.Binarize(img, p.cfg.DarkThreshold)
	if err != nil {
		if errors.Is(err, imaging.ErrEmptyImage) {
			b := img.Bounds()
			return nil, &InvalidInputError{Reason: err.Error(), Width: b.Dx(), Height: b.Dy()}
		}
		return nil, err
	}
	return bin, nil
}

// AnalyzeImage binarizes img and runs wall extraction on it.
func (p *Pipeline) AnalyzeImage(img image.Image, scaleLabel string) (*Result, error) {
	bin, err := p.Binarize(img)
	if err != nil {
		return nil, err
	}
	return p.Analyze(bin, scaleLabel)
}

// CalibrateImage binarizes img and determines its drawing scale only.
func (p *Pipeline) CalibrateImage(img image.Image, scaleLabel string) (ScaleInfo, error) {
	bin, err := p.Binarize(img)
	if err != nil {
		return ScaleInfo{}, err
	}
	return Calibrate(bin, scaleLabel, p.cfg), nil
}

// Analyze runs scale calibration, scanning, merging, connection,
// classification, measurement and aggregation over buf, in that order.
//
// scaleLabel may name an entry of the scale table ("1:100"); an empty or
// unknown label makes the pipeline estimate the scale from the drawing.
// A buffer with zero width or height is rejected with *InvalidInputError
// before any stage runs. A plan without walls is not an error: the result has
// no walls and zeroed statistics.
func (p *Pipeline) Analyze(buf PixelBuffer, scaleLabel string) (*Result, error) {
	if buf == nil {
		return nil, &InvalidInputError{Reason: "nil pixel buffer"}
	}
	width, height := buf.Width(), buf.Height()
	if width <= 0 || height <= 0 {
		return nil, &InvalidInputError{Reason: "image has zero width or height", Width: width, Height: height}
	}

	scale := Calibrate(buf, scaleLabel, p.cfg)
	p.logf("scale %s (%.0f px/m, %s)", scale.RatioLabel, scale.PixelsPerMeter, scale.Source)

	segments := Scan(buf, p.cfg)
	p.logf("scanned %dx%d: %d segments", width, height, len(segments))

	merged := MergeAll(segments, p.cfg)
	p.logf("merged into %d segments", len(merged))

	connected := Connect(merged, p.cfg)
	p.logf("connected into %d walls", len(connected))

	walls := make([]MeasuredWall, 0, len(connected))
	for i, w := range connected {
		m := Measure(Classify(w, width, height, p.cfg), scale)
		m.ID = i + 1
		walls = append(walls, m)
	}

	stats := Aggregate(walls)
	summary := Summarize(walls)
	p.logf("measured %d walls, %.2f m total, %.2f m2", summary.WallCount, summary.TotalLengthMeters, summary.TotalAreaSquareMeters)

	return &Result{
		ImageWidth:  width,
		ImageHeight: height,
		Scale:       scale,
		Walls:       walls,
		Statistics:  stats,
		Summary:     summary,
	}, nil
}
