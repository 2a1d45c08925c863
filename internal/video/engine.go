package video

import (
	"context"
	"fmt"

	"github.com/ivlev/slideshow/internal/plan"
)

// Engine abstracts the external rendering tool behind one method per
// invocation kind, so tests can substitute a fake without ffmpeg installed.
type Engine interface {
	// RenderSegment materializes one fixed-duration motion clip for a
	// single image.
	RenderSegment(ctx context.Context, seg plan.Segment, outPath string) error
	// Merge combines all segment clips into the final output per the
	// transition plan.
	Merge(ctx context.Context, segmentPaths []string, outPath string, transitions plan.TransitionPlan, opts MergeOptions) error
}

// MergeOptions carries the per-run extras of the merge invocation.
type MergeOptions struct {
	AudioPath string // optional soundtrack, muxed with -shortest
}

// EngineError reports a non-zero exit from the external rendering engine.
// It is fatal for the run; no retry is attempted.
type EngineError struct {
	Stage  string
	Err    error
	Output string // tail of the engine's combined output
}

func (e *EngineError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("rendering engine failed during %s: %v\n%s", e.Stage, e.Err, e.Output)
	}
	return fmt.Sprintf("rendering engine failed during %s: %v", e.Stage, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }
