package video

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ivlev/slideshow/internal/plan"
)

// FFmpeg drives the ffmpeg binary as an external process. Invocations block
// until the subprocess exits; no timeout is imposed.
type FFmpeg struct {
	Binary  string // defaults to "ffmpeg"
	Encoder string // defaults to "libx264"
	Quality int    // 0 = encoder default
	Log     *slog.Logger
}

func (f *FFmpeg) RenderSegment(ctx context.Context, seg plan.Segment, outPath string) error {
	return f.run(ctx, fmt.Sprintf("segment %d", seg.Index), f.renderArgs(seg, outPath))
}

func (f *FFmpeg) Merge(ctx context.Context, segmentPaths []string, outPath string, transitions plan.TransitionPlan, opts MergeOptions) error {
	return f.run(ctx, "merge", f.mergeArgs(segmentPaths, outPath, transitions, opts))
}

// renderArgs holds a single looped image for the segment duration while the
// motion filter runs, producing a clip with a pixel format the merge stage
// can blend.
func (f *FFmpeg) renderArgs(seg plan.Segment, outPath string) []string {
	args := []string{
		"-y",
		"-loop", "1",
		"-t", formatNumber(seg.Duration),
		"-i", seg.Source,
		"-vf", motionFilterExpr(seg.Motion),
		"-r", strconv.Itoa(seg.FPS),
		"-c:v", f.encoder(),
		"-pix_fmt", "yuv420p",
	}
	args = append(args, f.qualityArgs()...)
	return append(args, outPath)
}

func (f *FFmpeg) mergeArgs(segmentPaths []string, outPath string, transitions plan.TransitionPlan, opts MergeOptions) []string {
	args := []string{"-y"}
	for _, p := range segmentPaths {
		args = append(args, "-i", p)
	}
	if opts.AudioPath != "" {
		args = append(args, "-i", opts.AudioPath)
	}
	if len(transitions.Steps) > 0 {
		args = append(args, "-filter_complex", transitionGraphExpr(transitions))
	}
	args = append(args, "-map", transitions.FinalLabel())
	if opts.AudioPath != "" {
		args = append(args, "-map", fmt.Sprintf("%d:a", len(segmentPaths)), "-shortest")
	}
	args = append(args, "-c:v", f.encoder(), "-pix_fmt", "yuv420p")
	args = append(args, f.qualityArgs()...)
	if opts.AudioPath != "" {
		args = append(args, "-c:a", "aac")
	}
	return append(args, outPath)
}

func (f *FFmpeg) run(ctx context.Context, stage string, args []string) error {
	cmd := exec.CommandContext(ctx, f.binary(), args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if f.Log != nil {
		f.Log.Debug("invoking rendering engine", "stage", stage, "args", strings.Join(args, " "))
	}
	if err := cmd.Run(); err != nil {
		return &EngineError{Stage: stage, Err: err, Output: outputTail(out.String())}
	}
	return nil
}

func (f *FFmpeg) binary() string {
	if f.Binary != "" {
		return f.Binary
	}
	return "ffmpeg"
}

func (f *FFmpeg) encoder() string {
	if f.Encoder != "" {
		return f.Encoder
	}
	return "libx264"
}

// qualityArgs maps the quality knob onto whatever the active encoder
// understands: bitrate for VideoToolbox, constant quality for NVENC, CRF
// for x264.
func (f *FFmpeg) qualityArgs() []string {
	if f.Quality <= 0 {
		return nil
	}
	switch f.encoder() {
	case "h264_videotoolbox":
		return []string{"-b:v", fmt.Sprintf("%dk", f.Quality*100)}
	case "h264_nvenc":
		return []string{"-cq", strconv.Itoa(f.Quality)}
	default:
		return []string{"-crf", strconv.Itoa(f.Quality), "-preset", "medium"}
	}
}

// outputTail keeps the last part of the engine log; the useful error is at
// the end of ffmpeg's output.
func outputTail(s string) string {
	const limit = 2000
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return "..." + s[len(s)-limit:]
}
