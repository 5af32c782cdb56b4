package imageops

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"

	"iconify/internal/orient"
)

// DefaultJPEGQuality matches the imaging encoder default.
const DefaultJPEGQuality = 95

// ImagingProcessor implements Processor on top of disintegration/imaging.
type ImagingProcessor struct {
	jpegQuality int
}

// NewImagingProcessor returns a processor that encodes JPEG icons with the
// given quality. Values outside 1..100 use DefaultJPEGQuality.
func NewImagingProcessor(jpegQuality int) *ImagingProcessor {
	if jpegQuality < 1 || jpegQuality > 100 {
		jpegQuality = DefaultJPEGQuality
	}
	return &ImagingProcessor{jpegQuality: jpegQuality}
}

// Open decodes the image at path.
func (p *ImagingProcessor) Open(path string, opts OpenOptions) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	orientation := orient.Normal
	if opts.AutoOrient {
		orientation = orient.Read(f)
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek %s: %w", path, err)
		}
	}

	img, err := imaging.Decode(f)
	if err != nil {
		if IsUnrecognized(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrUnrecognizedFormat)
		}
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return orient.Apply(img, orientation), nil
}

// Fit crops and resamples img to exactly width x height.
func (p *ImagingProcessor) Fit(img image.Image, width, height int, r Resampler) image.Image {
	return imaging.Fill(img, width, height, imaging.Center, r.Filter())
}

// Save writes img to a temporary file next to path and renames it into
// place, so a failed encode never leaves a truncated icon behind.
func (p *ImagingProcessor) Save(img image.Image, path string) (int64, error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, fmt.Errorf("save %s: %w", path, err)
	}

	tmp, err := createTemp(path)
	if err != nil {
		return 0, fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := imaging.Encode(tmp, img, format, imaging.JPEGQuality(p.jpegQuality)); err != nil {
		_ = tmp.Close()
		return 0, fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	if prev, err := os.Stat(path); err == nil && prev.Mode().IsRegular() {
		if err := os.Chmod(tmpPath, prev.Mode().Perm()); err != nil {
			return 0, fmt.Errorf("chmod %s: %w", tmpPath, err)
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return 0, fmt.Errorf("rename %s: %w", path, err)
	}
	renamed = true

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.Size(), nil
}

// createTemp opens a new hidden file next to path. Unlike os.CreateTemp it
// requests mode 0666, leaving the final permissions to the process umask.
func createTemp(path string) (*os.File, error) {
	dir, base := filepath.Split(path)
	for i := 0; i < 100; i++ {
		name := filepath.Join(dir, "."+base+"."+strconv.FormatUint(uint64(rand.Uint32()), 36)+".tmp")
		f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0666)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return f, err
	}
	return nil, &fs.PathError{Op: "createtemp", Path: path, Err: fs.ErrExist}
}
