package plan

// MotionFilter is a structured description of the Ken Burns motion for one
// segment. It stays free of ffmpeg syntax; internal/video renders it to
// filter text when the engine is invoked.
//
// The zoom trajectory is linear over the frame index t in [0, TotalFrames):
// zoom(t) = StartZoom + (EndZoom-StartZoom) * t/TotalFrames, with the
// visible window always centered on the image. The motion output covers the
// inner area (canvas minus the border on each side); when BorderSize > 0 it
// is padded back to the full canvas with BorderColor.
type MotionFilter struct {
	TotalFrames  int
	FPS          int
	StartZoom    float64
	EndZoom      float64
	InnerWidth   int
	InnerHeight  int
	CanvasWidth  int
	CanvasHeight int
	BorderSize   int
	BorderColor  string
}

// NewMotionFilter derives the motion descriptor for one image segment. All
// inputs are validated upstream; this is a pure computation.
func NewMotionFilter(duration float64, fps int, startZoom, endZoom float64, borderSize int, borderColor string, canvasWidth, canvasHeight int) MotionFilter {
	return MotionFilter{
		TotalFrames:  int(duration * float64(fps)),
		FPS:          fps,
		StartZoom:    startZoom,
		EndZoom:      endZoom,
		InnerWidth:   canvasWidth - 2*borderSize,
		InnerHeight:  canvasHeight - 2*borderSize,
		CanvasWidth:  canvasWidth,
		CanvasHeight: canvasHeight,
		BorderSize:   borderSize,
		BorderColor:  borderColor,
	}
}

// Padded reports whether a pad stage is needed to fill the border.
func (m MotionFilter) Padded() bool {
	return m.BorderSize > 0
}

// ClipSeconds is the exact duration of the rendered clip.
func (m MotionFilter) ClipSeconds() float64 {
	return float64(m.TotalFrames) / float64(m.FPS)
}
