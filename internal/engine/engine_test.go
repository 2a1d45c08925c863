package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ivlev/slideshow/internal/config"
	"github.com/ivlev/slideshow/internal/logging"
	"github.com/ivlev/slideshow/internal/plan"
	"github.com/ivlev/slideshow/internal/video"
)

// fakeEngine records invocations and writes placeholder clips, standing in
// for ffmpeg.
type fakeEngine struct {
	mu          sync.Mutex
	rendered    []plan.Segment
	mergedPaths []string
	mergedPlan  plan.TransitionPlan
	mergedOpts  video.MergeOptions
	failIndex   int // render of this segment index fails; -1 disables
	workDir     string
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{failIndex: -1}
}

func (f *fakeEngine) RenderSegment(ctx context.Context, seg plan.Segment, outPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workDir = filepath.Dir(outPath)
	if seg.Index == f.failIndex {
		return &video.EngineError{Stage: "segment", Err: errors.New("exit status 1")}
	}
	f.rendered = append(f.rendered, seg)
	return os.WriteFile(outPath, []byte("clip"), 0o644)
}

func (f *fakeEngine) Merge(ctx context.Context, segmentPaths []string, outPath string, transitions plan.TransitionPlan, opts video.MergeOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mergedPaths = append([]string(nil), segmentPaths...)
	f.mergedPlan = transitions
	f.mergedOpts = opts
	return os.WriteFile(outPath, []byte("merged"), 0o644)
}

func testProject(t *testing.T, imageCount int, eng *fakeEngine, mutate func(*config.Config)) *Project {
	t.Helper()
	imagesDir := t.TempDir()
	for i := 0; i < imageCount; i++ {
		name := filepath.Join(imagesDir, string(rune('a'+i))+".jpg")
		if err := os.WriteFile(name, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := config.Default()
	cfg.InputPath = imagesDir
	cfg.OutputPath = filepath.Join(t.TempDir(), "slideshow.mp4")
	if mutate != nil {
		mutate(&cfg)
	}

	src := ForConfig(&cfg)
	return New(&cfg, src, eng, logging.New("error"))
}

func TestRunMultiImage(t *testing.T) {
	eng := newFakeEngine()
	p := testProject(t, 3, eng, nil)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(eng.rendered) != 3 {
		t.Fatalf("rendered %d segments, want 3", len(eng.rendered))
	}
	if len(eng.mergedPaths) != 3 {
		t.Fatalf("merged %d clips, want 3", len(eng.mergedPaths))
	}
	if len(eng.mergedPlan.Steps) != 2 {
		t.Fatalf("got %d transition steps, want 2", len(eng.mergedPlan.Steps))
	}
	if eng.mergedPlan.Steps[0].Offset != 2.0 || eng.mergedPlan.Steps[1].Offset != 4.0 {
		t.Errorf("offsets: %v, %v; want 2.0, 4.0",
			eng.mergedPlan.Steps[0].Offset, eng.mergedPlan.Steps[1].Offset)
	}
	if eng.mergedPlan.Total != 7.0 {
		t.Errorf("merged duration: got %v, want 7.0", eng.mergedPlan.Total)
	}

	if _, err := os.Stat(p.cfg.OutputPath); err != nil {
		t.Errorf("final output missing: %v", err)
	}
	if _, err := os.Stat(eng.workDir); !os.IsNotExist(err) {
		t.Errorf("workspace %s should be removed after the run", eng.workDir)
	}
}

func TestRunSingleImageSkipsMerge(t *testing.T) {
	eng := newFakeEngine()
	p := testProject(t, 1, eng, nil)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(eng.mergedPaths) != 0 {
		t.Error("single segment must not trigger a merge")
	}
	data, err := os.ReadFile(p.cfg.OutputPath)
	if err != nil {
		t.Fatalf("final output missing: %v", err)
	}
	if string(data) != "clip" {
		t.Errorf("output should be the promoted segment clip, got %q", data)
	}
}

func TestRunSingleImageWithAudioMuxes(t *testing.T) {
	eng := newFakeEngine()
	p := testProject(t, 1, eng, func(c *config.Config) {
		c.AudioPath = "track.mp3"
	})

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(eng.mergedPaths) != 1 {
		t.Fatal("audio requires a mux invocation even for one segment")
	}
	if eng.mergedOpts.AudioPath != "track.mp3" {
		t.Errorf("audio path not passed through: %+v", eng.mergedOpts)
	}
	if len(eng.mergedPlan.Steps) != 0 {
		t.Error("one segment must not produce transition steps")
	}
}

func TestRunEmptyInputIsGracefulNoOp(t *testing.T) {
	eng := newFakeEngine()
	p := testProject(t, 0, eng, nil)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("empty input must not fail the run: %v", err)
	}
	if len(eng.rendered) != 0 {
		t.Error("nothing should be rendered")
	}
	if _, err := os.Stat(p.cfg.OutputPath); !os.IsNotExist(err) {
		t.Error("no output file should be written")
	}
}

func TestRunRenderFailureAbortsAndCleansUp(t *testing.T) {
	eng := newFakeEngine()
	eng.failIndex = 1
	p := testProject(t, 3, eng, nil)

	err := p.Run(context.Background())
	if err == nil {
		t.Fatal("a failing segment must abort the run")
	}
	var engineErr *video.EngineError
	if !errors.As(err, &engineErr) {
		t.Fatalf("expected the engine error to unwrap, got %v", err)
	}

	if len(eng.mergedPaths) != 0 {
		t.Error("merge must not run after a segment failure")
	}
	if _, err := os.Stat(p.cfg.OutputPath); !os.IsNotExist(err) {
		t.Error("no partial output may be promoted")
	}
	if _, err := os.Stat(eng.workDir); !os.IsNotExist(err) {
		t.Errorf("workspace %s should be removed after a failure", eng.workDir)
	}
}

func TestRunAppendsQRSlide(t *testing.T) {
	eng := newFakeEngine()
	p := testProject(t, 2, eng, func(c *config.Config) {
		c.QRURL = "https://example.com/album"
	})

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(eng.rendered) != 3 {
		t.Fatalf("rendered %d segments, want 2 images + 1 QR slide", len(eng.rendered))
	}
	last := eng.rendered[len(eng.rendered)-1]
	for _, seg := range eng.rendered {
		if seg.Index == 2 {
			last = seg
		}
	}
	if filepath.Base(last.Source) != "qr_outro.png" {
		t.Errorf("last slide should be the QR outro, got %s", last.Source)
	}
}

func TestRunParallelRenderingKeepsIndexOrder(t *testing.T) {
	eng := newFakeEngine()
	p := testProject(t, 5, eng, func(c *config.Config) {
		c.Workers = 4
	})

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Regardless of completion order, merge inputs follow segment indexes.
	for i, clip := range eng.mergedPaths {
		want := filepath.Join(eng.workDir, "segment_00"+string(rune('0'+i))+".mp4")
		if clip != want {
			t.Errorf("merge input %d: got %s, want %s", i, clip, want)
		}
	}
}
