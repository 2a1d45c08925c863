package video

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ivlev/slideshow/internal/plan"
)

// motionFilterExpr renders a motion descriptor as an ffmpeg zoompan filter,
// optionally followed by a pad stage for the border.
func motionFilterExpr(m plan.MotionFilter) string {
	zoom := fmt.Sprintf("'%s + (%s - %s)*(on/%d)'",
		formatNumber(m.StartZoom), formatNumber(m.EndZoom), formatNumber(m.StartZoom), m.TotalFrames)

	// The crop window stays centered at every zoom level.
	expr := fmt.Sprintf("zoompan=z=%s:x='iw/2 - (iw/zoom/2)':y='ih/2 - (ih/zoom/2)':d=%d:s=%dx%d",
		zoom, m.TotalFrames, m.InnerWidth, m.InnerHeight)

	if m.Padded() {
		expr += fmt.Sprintf(",pad=%d:%d:%d:%d:%s",
			m.CanvasWidth, m.CanvasHeight, m.BorderSize, m.BorderSize, m.BorderColor)
	}
	return expr
}

// transitionGraphExpr renders the chained xfade graph for the merge
// invocation, one step per crossfade.
func transitionGraphExpr(p plan.TransitionPlan) string {
	parts := make([]string, 0, len(p.Steps))
	for _, s := range p.Steps {
		parts = append(parts, fmt.Sprintf("%s%sxfade=transition=%s:duration=%s:offset=%s%s",
			s.From, s.To, s.Style, formatNumber(s.Duration), formatNumber(s.Offset), s.Out))
	}
	return strings.Join(parts, ";")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
