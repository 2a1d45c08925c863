package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ivlev/slideshow/internal/config"
	"github.com/ivlev/slideshow/internal/engine"
	"github.com/ivlev/slideshow/internal/logging"
	"github.com/ivlev/slideshow/internal/system"
	"github.com/ivlev/slideshow/internal/video"
)

func newRootCommand() *cobra.Command {
	cfg := config.Default()
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "slideshow <images-dir|file.pdf>",
		Short: "Create a Ken Burns slideshow video with crossfade transitions",
		Long: `slideshow turns a directory of photos (or the pages of a PDF) into a
video: every image gets an alternating zoom-in/zoom-out motion effect and
consecutive clips are blended with a crossfade.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if err := finalizeConfig(&cfg, flags, configPath, args[0]); err != nil {
				return err
			}
			resolveRuntime(&cfg)

			log := logging.New(cfg.LogLevel)
			ffmpeg := &video.FFmpeg{Encoder: cfg.Encoder, Quality: cfg.Quality, Log: log}
			project := engine.New(&cfg, engine.ForConfig(&cfg), ffmpeg, log)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return project.Run(ctx)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file; explicit flags win over file values")
	flags.StringVarP(&cfg.OutputPath, "output", "o", cfg.OutputPath, "Output video path")
	flags.StringVarP(&cfg.ManifestPath, "manifest", "m", "", "Text file dictating image order, one filename per line")
	flags.Float64Var(&cfg.Duration, "duration", cfg.Duration, "Seconds each image is shown")
	flags.IntVar(&cfg.FPS, "fps", cfg.FPS, "Frames per second")
	flags.Float64Var(&cfg.ZoomFactor, "zoom", cfg.ZoomFactor, "Ken Burns zoom factor (1.0 = no zoom)")
	flags.IntVar(&cfg.BorderSize, "border", cfg.BorderSize, "Border thickness in pixels around each clip")
	flags.StringVar(&cfg.BorderColor, "border-color", cfg.BorderColor, "Border color, e.g. black or 0xFFFFFF")
	flags.IntVar(&cfg.Width, "width", cfg.Width, "Output width")
	flags.IntVar(&cfg.Height, "height", cfg.Height, "Output height")
	flags.Float64Var(&cfg.Crossfade, "crossfade", cfg.Crossfade, "Crossfade duration between clips in seconds")
	flags.StringVar(&cfg.Transition, "transition", cfg.Transition, "Crossfade style: fade, wipeleft, circlecrop, dissolve, ...")
	flags.StringVar(&cfg.AudioPath, "audio", "", "Soundtrack to mux into the output")
	flags.IntVar(&cfg.Workers, "workers", 0, "Parallel segment renders (0 = physical cores)")
	flags.StringVar(&cfg.Encoder, "encoder", "", "Video encoder (empty = autodetect)")
	flags.IntVar(&cfg.Quality, "quality", 0, "Encoder quality: CRF for x264, CQ for NVENC, bitrate/100k for VideoToolbox (0 = auto)")
	flags.IntVar(&cfg.DPI, "dpi", cfg.DPI, "Rasterization DPI for PDF input")
	flags.StringVar(&cfg.QRURL, "qr-url", "", "Append a QR code slide pointing at this URL")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newPlanCommand(&cfg, &configPath))
	rootCmd.AddCommand(newDoctorCommand())

	return rootCmd
}

// finalizeConfig settles the run configuration: positional input, optional
// config file (flags win), then validation. Invalid combinations are
// rejected here, before any rendering work.
func finalizeConfig(cfg *config.Config, flags *pflag.FlagSet, configPath, input string) error {
	cfg.InputPath = input
	if configPath != "" {
		if err := config.MergeFile(cfg, configPath, flags.Changed); err != nil {
			return err
		}
	}
	return cfg.Validate()
}

// resolveRuntime fills the knobs that depend on the host machine.
func resolveRuntime(cfg *config.Config) {
	if cfg.Workers <= 0 {
		cfg.Workers = system.DefaultWorkers()
	}
	if cfg.Encoder == "" {
		cfg.Encoder = system.BestH264Encoder()
	}
	if cfg.Quality <= 0 {
		cfg.Quality = system.DefaultQuality(cfg.Encoder)
	}
}
