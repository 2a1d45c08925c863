package plan

import "github.com/ivlev/slideshow/internal/config"

// Segment is the full rendering plan for one input image.
type Segment struct {
	Index     int          `yaml:"index"`
	Source    string       `yaml:"source"`
	Duration  float64      `yaml:"duration"`
	FPS       int          `yaml:"fps"`
	StartZoom float64      `yaml:"start_zoom"`
	EndZoom   float64      `yaml:"end_zoom"`
	Motion    MotionFilter `yaml:"-"`
}

// ZoomsIn reports whether the segment zooms in rather than out.
func (s Segment) ZoomsIn() bool {
	return s.EndZoom >= s.StartZoom
}

// BuildSegments derives one Segment per image. The zoom direction
// alternates strictly by index parity: even indexes zoom in from 1.0 to the
// configured factor, odd indexes zoom back out.
func BuildSegments(paths []string, cfg *config.Config) []Segment {
	segments := make([]Segment, 0, len(paths))
	for i, path := range paths {
		startZoom, endZoom := 1.0, cfg.ZoomFactor
		if i%2 == 1 {
			startZoom, endZoom = cfg.ZoomFactor, 1.0
		}

		duration := cfg.SegmentDuration(i)
		segments = append(segments, Segment{
			Index:     i,
			Source:    path,
			Duration:  duration,
			FPS:       cfg.FPS,
			StartZoom: startZoom,
			EndZoom:   endZoom,
			Motion: NewMotionFilter(duration, cfg.FPS, startZoom, endZoom,
				cfg.BorderSize, cfg.BorderColor, cfg.Width, cfg.Height),
		})
	}
	return segments
}

// Durations extracts the nominal segment durations, in order.
func Durations(segments []Segment) []float64 {
	durations := make([]float64, len(segments))
	for i, seg := range segments {
		durations[i] = seg.Duration
	}
	return durations
}
