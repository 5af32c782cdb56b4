package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"iconify/internal/config"
	"iconify/internal/imageops"
	"iconify/internal/logger"
	"iconify/internal/statistics"

	"github.com/sirupsen/logrus"
)

// ErrNotDirectory is returned when the input path exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Params describes one icon generation run.
type Params struct {
	InputDir       string
	OutputDir      string
	Size           config.Size
	IgnoreExisting bool
	Resampler      imageops.Resampler
	AutoOrient     bool
	DryRun         bool
}

// ParamsFromConfig builds run parameters from a resolved configuration.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		InputDir:       cfg.InputDir,
		OutputDir:      cfg.OutputDir,
		Size:           cfg.Size,
		IgnoreExisting: cfg.IgnoreExisting(),
		Resampler:      cfg.Resampler,
		AutoOrient:     cfg.AutoOrient,
		DryRun:         cfg.DryRun,
	}
}

// Generator turns the images of a directory into icons.
type Generator struct {
	logger    *logrus.Logger
	stats     *statistics.Statistics
	processor imageops.Processor
}

// NewGenerator returns a new Generator.
func NewGenerator(logger *logrus.Logger, stats *statistics.Statistics, processor imageops.Processor) *Generator {
	return &Generator{
		logger:    logger,
		stats:     stats,
		processor: processor,
	}
}

// Generate writes one icon per decodable regular file directly inside
// p.InputDir and returns how many were written. Entries that are not files,
// not images, or (with IgnoreExisting) already have an icon are skipped.
// Any other failure stops the run; icons written so far are kept.
func (g *Generator) Generate(ctx context.Context, p Params) (generated int, err error) {
	defer func() {
		g.stats.Finalize()
		entry := g.logger.WithFields(g.stats.Fields())
		if err != nil {
			entry.WithError(err).Info("Icon generation stopped")
			return
		}
		entry.Info("Icon generation completed")
	}()

	g.logger.WithFields(logrus.Fields{
		"input":  p.InputDir,
		"output": p.OutputDir,
		"size":   p.Size.String(),
		"method": p.Resampler.String(),
	}).Debug("Starting icon generation")

	info, err := os.Stat(p.InputDir)
	if err != nil {
		return 0, fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("input directory %s: %w", p.InputDir, ErrNotDirectory)
	}

	if p.DryRun {
		g.logger.Info("Running in dry-run mode - no icons will be written")
	} else if err := g.createDirectory(p.OutputDir); err != nil {
		return 0, fmt.Errorf("create output directory %s: %w", p.OutputDir, err)
	}

	entries, err := os.ReadDir(p.InputDir)
	if err != nil {
		return 0, fmt.Errorf("read input directory: %w", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return generated, err
		}

		ok, err := g.processEntry(p, entry.Name())
		if err != nil {
			return generated, err
		}
		if ok {
			generated++
		}
	}

	return generated, nil
}

// processEntry handles a single directory entry and reports whether an icon
// was produced for it.
func (g *Generator) processEntry(p Params, name string) (bool, error) {
	log := logger.WithFile(g.logger, name)
	g.stats.IncrementEntriesFound()

	sourcePath := filepath.Join(p.InputDir, name)
	regular, err := isRegularFile(sourcePath)
	if err != nil {
		return false, err
	}
	if !regular {
		log.Info("Ignoring entry, not a regular file")
		g.stats.IncrementNotRegularSkipped()
		return false, nil
	}

	outputPath := filepath.Join(p.OutputDir, name)
	if p.IgnoreExisting {
		exists, err := isRegularFile(outputPath)
		if err != nil {
			return false, err
		}
		if exists {
			log.Info("Ignoring file, icon already exists")
			g.stats.IncrementExistingSkipped()
			return false, nil
		}
	}

	img, err := g.processor.Open(sourcePath, imageops.OpenOptions{AutoOrient: p.AutoOrient})
	if err != nil {
		if imageops.IsUnrecognized(err) {
			log.Info("Ignoring file, not a recognized image")
			g.stats.IncrementUnrecognizedSkipped()
			return false, nil
		}
		return false, err
	}

	if p.DryRun {
		log.WithField("output", outputPath).Info("DRY-RUN: Would write icon")
		g.stats.IncrementIconsWritten()
		return true, nil
	}

	icon := g.processor.Fit(img, p.Size.Width, p.Size.Height, p.Resampler)
	save := logger.WithOperation(log, "save").WithField("output", outputPath)
	n, err := g.processor.Save(icon, outputPath)
	if err != nil {
		return false, err
	}

	g.stats.IncrementIconsWritten()
	g.stats.AddBytesWritten(n)
	save.WithField("bytes", n).Info("Written icon")
	return true, nil
}

// createDirectory creates a directory and its parents if they do not exist.
func (g *Generator) createDirectory(dirPath string) error {
	info, err := os.Stat(dirPath)
	if err == nil {
		if !info.IsDir() {
			return ErrNotDirectory
		}
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return err
	}
	g.stats.IncrementDirectoriesCreated()
	g.logger.Debugf("Created directory: %s", dirPath)
	return nil
}

// isRegularFile follows symlinks. Paths that cannot resolve to a file
// (missing, broken or looping links, a file used as a directory) are
// reported as false without an error.
func isRegularFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ELOOP) || errors.Is(err, syscall.ENOTDIR) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
