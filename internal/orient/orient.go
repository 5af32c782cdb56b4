// Package orient reads the EXIF orientation tag and rotates decoded images
// upright.
package orient

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// Orientation is the value of the EXIF Orientation tag (1..8).
type Orientation int

const (
	Normal     Orientation = 1
	FlipH      Orientation = 2
	Rotate180  Orientation = 3
	FlipV      Orientation = 4
	Transpose  Orientation = 5
	Rotate270  Orientation = 6
	Transverse Orientation = 7
	Rotate90   Orientation = 8
)

// Read returns the orientation stored in r. Sources without EXIF data, or
// with an unreadable or out of range tag, report Normal.
func Read(r io.Reader) Orientation {
	x, err := exif.Decode(r)
	if err != nil {
		return Normal
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return Normal
	}
	v, err := tag.Int(0)
	if err != nil || v < int(Normal) || v > int(Rotate90) {
		return Normal
	}
	return Orientation(v)
}

// Apply returns img transformed so that it displays upright.
func Apply(img image.Image, o Orientation) image.Image {
	switch o {
	case FlipH:
		return imaging.FlipH(img)
	case Rotate180:
		return imaging.Rotate180(img)
	case FlipV:
		return imaging.FlipV(img)
	case Transpose:
		return imaging.Transpose(img)
	case Rotate270:
		return imaging.Rotate270(img)
	case Transverse:
		return imaging.Transverse(img)
	case Rotate90:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
