package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/slideshow/internal/config"
	"github.com/ivlev/slideshow/internal/fileutil"
	"github.com/ivlev/slideshow/internal/plan"
	"github.com/ivlev/slideshow/internal/sequence"
	"github.com/ivlev/slideshow/internal/source"
	"github.com/ivlev/slideshow/internal/system"
	"github.com/ivlev/slideshow/internal/video"
)

// Project orchestrates one slideshow run: sequencing, planning, segment
// rendering, and the final merge. All intermediate clips live in a scoped
// temporary workspace that is removed on every exit path.
type Project struct {
	cfg    *config.Config
	source source.Source
	engine video.Engine
	log    *slog.Logger
}

func New(cfg *config.Config, src source.Source, eng video.Engine, log *slog.Logger) *Project {
	return &Project{cfg: cfg, source: src, engine: eng, log: log}
}

// ForConfig picks the input source matching the configuration. PDF pages
// are rasterized at most at twice the canvas size; the motion filter gains
// nothing from more resolution.
func ForConfig(cfg *config.Config) source.Source {
	return source.ForInput(cfg.InputPath, cfg.ManifestPath, cfg.DPI, cfg.Width*2, cfg.Height*2)
}

// Run executes the full pipeline. An empty input is reported and treated as
// a successful no-op; every other failure aborts without promoting partial
// output to the output path.
func (p *Project) Run(ctx context.Context) error {
	workDir, err := os.MkdirTemp("", "slideshow_")
	if err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	defer os.RemoveAll(workDir)

	segments, transitions, err := BuildPlan(ctx, p.cfg, p.source, workDir)
	if errors.Is(err, sequence.ErrNoImages) {
		p.log.Warn("no images found", "input", p.cfg.InputPath)
		return nil
	}
	if err != nil {
		return err
	}

	p.log.Info("slideshow planned",
		"segments", len(segments),
		"expected_duration", fmt.Sprintf("%.2fs", transitions.Total),
		"canvas", fmt.Sprintf("%dx%d", p.cfg.Width, p.cfg.Height))

	clips, err := p.renderSegments(ctx, workDir, segments)
	if err != nil {
		return fmt.Errorf("rendering segments: %w", err)
	}

	if len(clips) == 1 && p.cfg.AudioPath == "" {
		// Degenerate case: the sole clip is the final output, no merge.
		if err := fileutil.MoveFile(clips[0], p.cfg.OutputPath); err != nil {
			return fmt.Errorf("finalizing single segment: %w", err)
		}
		p.log.Info("slideshow created from a single image", "output", p.cfg.OutputPath)
		return nil
	}

	opts := video.MergeOptions{AudioPath: p.cfg.AudioPath}
	if err := p.engine.Merge(ctx, clips, p.cfg.OutputPath, transitions, opts); err != nil {
		return fmt.Errorf("merging segments: %w", err)
	}

	p.verifyOutput(ctx, transitions.Total)
	p.log.Info("slideshow created", "output", p.cfg.OutputPath, "segments", len(clips))
	return nil
}

// BuildPlan resolves the image sequence and computes the per-segment motion
// plans plus the crossfade timeline. No rendering happens here, so timing
// mistakes surface before any engine work is spent.
func BuildPlan(ctx context.Context, cfg *config.Config, src source.Source, workDir string) ([]plan.Segment, plan.TransitionPlan, error) {
	paths, err := src.Resolve(ctx, workDir)
	if err != nil {
		return nil, plan.TransitionPlan{}, fmt.Errorf("sequencing: %w", err)
	}

	if cfg.QRURL != "" {
		size := cfg.Height - 2*cfg.BorderSize
		qrPath, err := source.QRSlide(cfg.QRURL, size, workDir)
		if err != nil {
			return nil, plan.TransitionPlan{}, fmt.Errorf("sequencing: %w", err)
		}
		paths = append(paths, qrPath)
	}

	segments := plan.BuildSegments(paths, cfg)
	transitions, err := plan.BuildTransitions(plan.Durations(segments), cfg.Crossfade, cfg.Transition)
	if err != nil {
		return nil, plan.TransitionPlan{}, fmt.Errorf("planning transitions: %w", err)
	}
	return segments, transitions, nil
}

// renderSegments renders every segment clip, up to Workers in parallel.
// Results are keyed by segment index so parallel completion order cannot
// disturb the transition timeline. The first failure cancels the rest.
func (p *Project) renderSegments(ctx context.Context, workDir string, segments []plan.Segment) ([]string, error) {
	clips := make([]string, len(segments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())
	for _, seg := range segments {
		seg := seg
		outPath := filepath.Join(workDir, fmt.Sprintf("segment_%03d.mp4", seg.Index))
		clips[seg.Index] = outPath
		g.Go(func() error {
			if err := p.engine.RenderSegment(gctx, seg, outPath); err != nil {
				return fmt.Errorf("segment %d (%s): %w", seg.Index, filepath.Base(seg.Source), err)
			}
			p.log.Info("segment ready", "index", seg.Index, "source", filepath.Base(seg.Source))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return clips, nil
}

func (p *Project) workers() int {
	if p.cfg.Workers > 0 {
		return p.cfg.Workers
	}
	return 1
}

// verifyOutput probes the produced file and compares against the planned
// duration. Informational only; a probe failure is not a run failure.
func (p *Project) verifyOutput(ctx context.Context, expected float64) {
	actual, err := system.MediaDuration(ctx, p.cfg.OutputPath)
	if err != nil {
		p.log.Debug("output duration probe failed", "error", err)
		return
	}
	drift := math.Abs(actual - expected)
	p.log.Info("output verified",
		"expected", fmt.Sprintf("%.2fs", expected),
		"actual", fmt.Sprintf("%.2fs", actual),
		"drift", fmt.Sprintf("%.2fs", drift))
}
