package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"iconify/internal/config"
	"iconify/internal/generator"
	"iconify/internal/imageops"
	"iconify/internal/logger"
	"iconify/internal/statistics"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// newRootCmd builds the iconify command. Each call gets its own viper
// instance so flag bindings do not leak between invocations.
func newRootCmd() *cobra.Command {
	var cfgFile string
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "iconify [INPUT_DIR] [OUTPUT_DIR]",
		Short: "Batch-convert a directory of images into fixed-size icons",
		Long: `iconify reads every image directly inside INPUT_DIR (default: .), crops it
around its center to the aspect ratio of the requested size, resamples it to
exactly that size and writes it to OUTPUT_DIR (default: INPUT_DIR/icons) under
the same file name.

Files that are not images are ignored. Files that already have an icon are
skipped unless --force is given.`,
		Args:          cobra.MaximumNArgs(2),
		Version:       fmt.Sprintf("%s (built %s)", version, buildTime),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, v, cfgFile, args)
		},
	}

	flags := cmd.Flags()
	flags.CountP("verbose", "v", "increase logging verbosity (-v info, -vv debug)")
	flags.StringP("size", "s", "64x64", "the icon size to output, WxH or N for a square")
	flags.BoolP("force", "f", false, "overwrite existing icons if necessary")
	flags.StringP("method", "m", "lanczos", "resampling algorithm to use ("+strings.Join(imageops.ResamplerNames(), "|")+")")
	flags.Bool("auto-orient", false, "rotate images upright according to their EXIF orientation")
	flags.Bool("dry-run", false, "report the icons that would be generated without writing them")
	flags.Int("jpeg-quality", imageops.DefaultJPEGQuality, "quality of JPEG icons (1-100)")
	flags.String("log-file", "", "also write logs to this file, rotated by size")
	flags.String("log-format", "text", "log format (text|json)")
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./iconify.yaml)")

	return cmd
}

// runGenerate resolves the configuration and generates the icons.
func runGenerate(cmd *cobra.Command, v *viper.Viper, cfgFile string, args []string) error {
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	if len(args) > 0 {
		v.Set("input_dir", args[0])
	}
	if len(args) > 1 {
		v.Set("output_dir", args[1])
	}

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Arguments are valid; errors from here on are not usage errors.
	cmd.SilenceUsage = true

	log, err := setupLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	if cfg.File != "" {
		log.Debugf("Using config file: %s", cfg.File)
	}

	stats := statistics.NewStatistics()
	gen := generator.NewGenerator(log, stats, imageops.NewImagingProcessor(cfg.JPEGQuality))

	n, err := gen.Generate(cmd.Context(), generator.ParamsFromConfig(cfg))
	log.Debug(stats.GetSummary())
	if err != nil {
		return fmt.Errorf("icon generation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if cfg.DryRun {
		fmt.Fprintf(out, "%d icon(s) would be generated\n", n)
	} else {
		fmt.Fprintf(out, "%d icon(s) generated\n", n)
	}
	return nil
}

// setupLogger configures and returns a logger.
func setupLogger(cfg *config.Config, console io.Writer) (*logrus.Logger, error) {
	return logger.NewLogger(logger.LoggerConfig{
		Level:      logger.LevelFromVerbosity(cfg.Verbose),
		Format:     cfg.Logging.Format,
		FilePath:   cfg.Logging.FilePath,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
		Output:     console,
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
