package imageops

import (
	"errors"
	"fmt"
	"image"
)

// ErrUnrecognizedFormat is returned by Open when no registered decoder
// recognizes the file. It wraps image.ErrFormat.
var ErrUnrecognizedFormat = fmt.Errorf("cannot identify image file: %w", image.ErrFormat)

// OpenOptions controls how a source image is loaded.
type OpenOptions struct {
	// AutoOrient applies the EXIF orientation tag after decoding.
	AutoOrient bool
}

// Processor is the image collaborator used by the icon generator.
type Processor interface {
	// Open decodes the image at path. The file handle is released before
	// Open returns, on success and on failure.
	Open(path string, opts OpenOptions) (image.Image, error)

	// Fit crops img to the aspect ratio of width x height around its center
	// and resamples it to exactly that size.
	Fit(img image.Image, width, height int, r Resampler) image.Image

	// Save encodes img to path using the format implied by its extension and
	// returns the number of bytes written.
	Save(img image.Image, path string) (int64, error)
}

// IsUnrecognized reports whether err means the file is not a decodable image.
func IsUnrecognized(err error) bool {
	return errors.Is(err, image.ErrFormat)
}
