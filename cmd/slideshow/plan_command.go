package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ivlev/slideshow/internal/config"
	"github.com/ivlev/slideshow/internal/engine"
	"github.com/ivlev/slideshow/internal/plan"
	"github.com/ivlev/slideshow/internal/sequence"
)

// newPlanCommand previews the computed segment and transition plan without
// invoking the rendering engine.
func newPlanCommand(cfg *config.Config, configPath *string) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "plan <images-dir|file.pdf>",
		Short: "Show the segment and crossfade plan without rendering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := finalizeConfig(cfg, cmd.Flags(), *configPath, args[0]); err != nil {
				return err
			}

			// PDF sources rasterize into the workspace even for a
			// preview; it is removed like any other run.
			workDir, err := os.MkdirTemp("", "slideshow_")
			if err != nil {
				return fmt.Errorf("create workspace: %w", err)
			}
			defer os.RemoveAll(workDir)

			segments, transitions, err := engine.BuildPlan(context.Background(), cfg, engine.ForConfig(cfg), workDir)
			if errors.Is(err, sequence.ErrNoImages) {
				fmt.Fprintf(cmd.OutOrStdout(), "no images found in %s\n", cfg.InputPath)
				return nil
			}
			if err != nil {
				return err
			}

			printPlan(cmd, segments, transitions)

			if outPath != "" {
				if err := plan.WritePlan(outPath, segments, transitions); err != nil {
					return fmt.Errorf("write plan: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "plan written to %s\n", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Write the plan as YAML to this path")
	return cmd
}

func printPlan(cmd *cobra.Command, segments []plan.Segment, transitions plan.TransitionPlan) {
	out := cmd.OutOrStdout()

	segRows := make([][]string, 0, len(segments))
	for _, seg := range segments {
		direction := "out"
		if seg.ZoomsIn() {
			direction = "in"
		}
		segRows = append(segRows, []string{
			fmt.Sprintf("%d", seg.Index),
			filepath.Base(seg.Source),
			fmt.Sprintf("%.2fs", seg.Duration),
			direction,
			fmt.Sprintf("%.2f → %.2f", seg.StartZoom, seg.EndZoom),
			fmt.Sprintf("%d", seg.Motion.TotalFrames),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Source", "Duration", "Zoom", "Trajectory", "Frames"},
		segRows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft, alignRight},
	))

	if len(transitions.Steps) == 0 {
		fmt.Fprintf(out, "single segment, no transitions; output duration %.2fs\n", transitions.Total)
		return
	}

	stepRows := make([][]string, 0, len(transitions.Steps))
	for i, step := range transitions.Steps {
		stepRows = append(stepRows, []string{
			fmt.Sprintf("%d", i+1),
			step.From,
			step.To,
			step.Style,
			fmt.Sprintf("%.2fs", step.Duration),
			fmt.Sprintf("%.2fs", step.Offset),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Step", "From", "To", "Style", "Duration", "Offset"},
		stepRows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	))
	fmt.Fprintf(out, "expected output duration: %.2fs\n", transitions.Total)
}
