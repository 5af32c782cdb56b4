package imageops

import (
	"errors"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrInvalidResampler is returned when a resampling algorithm name is unknown.
var ErrInvalidResampler = errors.New("invalid resampling algorithm")

// Resampler selects the interpolation filter used when scaling an icon.
type Resampler int

const (
	ResamplerNearest Resampler = iota
	ResamplerBox
	ResamplerBilinear
	ResamplerHamming
	ResamplerBicubic
	ResamplerLanczos
)

var resamplerNames = map[string]Resampler{
	"nearest":  ResamplerNearest,
	"box":      ResamplerBox,
	"bilinear": ResamplerBilinear,
	"hamming":  ResamplerHamming,
	"bicubic":  ResamplerBicubic,
	"lanczos":  ResamplerLanczos,
}

// ResamplerNames lists the accepted algorithm names in enum order.
func ResamplerNames() []string {
	return []string{"nearest", "box", "bilinear", "hamming", "bicubic", "lanczos"}
}

// ParseResampler resolves an algorithm name, ignoring case and surrounding space.
func ParseResampler(s string) (Resampler, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	r, ok := resamplerNames[name]
	if !ok {
		return 0, fmt.Errorf("%w %q (valid: %s)", ErrInvalidResampler, name, strings.Join(ResamplerNames(), ", "))
	}
	return r, nil
}

// String returns the algorithm name.
func (r Resampler) String() string {
	switch r {
	case ResamplerNearest:
		return "nearest"
	case ResamplerBox:
		return "box"
	case ResamplerBilinear:
		return "bilinear"
	case ResamplerHamming:
		return "hamming"
	case ResamplerBicubic:
		return "bicubic"
	case ResamplerLanczos:
		return "lanczos"
	default:
		return "unknown"
	}
}

// Filter returns the imaging filter for the algorithm. Unknown values fall
// back to Lanczos.
func (r Resampler) Filter() imaging.ResampleFilter {
	switch r {
	case ResamplerNearest:
		return imaging.NearestNeighbor
	case ResamplerBox:
		return imaging.Box
	case ResamplerBilinear:
		return imaging.Linear
	case ResamplerHamming:
		return imaging.Hamming
	case ResamplerBicubic:
		return imaging.CatmullRom
	default:
		return imaging.Lanczos
	}
}
