// Package imagetest builds image fixtures for tests.
package imagetest

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"os"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

// WriteImage writes a solid width x height image to path, encoded according
// to the path's extension.
func WriteImage(t testing.TB, path string, width, height int) {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 200, G: 80, B: 40, A: 255})
	require.NoError(t, imaging.Save(img, path))
}

// Edge and Center are the colors used by Banded.
var (
	Edge   = color.NRGBA{R: 255, A: 255}
	Center = color.NRGBA{B: 255, A: 255}
)

// Banded returns a width x height image whose leftmost and rightmost edge
// columns are Edge and whose remaining middle is Center.
func Banded(width, height, edge int) *image.NRGBA {
	img := imaging.New(width, height, Center)
	for y := 0; y < height; y++ {
		for x := 0; x < edge; x++ {
			img.SetNRGBA(x, y, Edge)
			img.SetNRGBA(width-1-x, y, Edge)
		}
	}
	return img
}

// WriteBandedImage writes Banded(width, height, edge) to path.
func WriteBandedImage(t testing.TB, path string, width, height, edge int) {
	t.Helper()
	require.NoError(t, imaging.Save(Banded(width, height, edge), path))
}

// IsCenter reports whether c is close to the Center color.
func IsCenter(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r>>8 < 50 && g>>8 < 50 && b>>8 > 200
}

// WriteFile writes raw bytes to path.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0644))
}

// Dimensions decodes the image at path and returns its size.
func Dimensions(t testing.TB, path string) (int, int) {
	t.Helper()
	img, err := imaging.Open(path)
	require.NoError(t, err)
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

// JPEGWithOrientation returns a width x height JPEG carrying an EXIF APP1
// segment whose Orientation tag is set to orientation.
func JPEGWithOrientation(t testing.TB, width, height, orientation int) []byte {
	t.Helper()

	var encoded bytes.Buffer
	img := imaging.New(width, height, color.NRGBA{R: 10, G: 120, B: 220, A: 255})
	require.NoError(t, imaging.Encode(&encoded, img, imaging.JPEG))

	// Little-endian TIFF with a single IFD holding one SHORT entry.
	var tiff bytes.Buffer
	tiff.WriteString("II*\x00")
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(8))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(1))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0x0112))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(3))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(1))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(orientation))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(0))

	payload := append([]byte("Exif\x00\x00"), tiff.Bytes()...)

	var out bytes.Buffer
	out.Write(encoded.Bytes()[:2]) // SOI
	out.Write([]byte{0xFF, 0xE1})
	_ = binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write(encoded.Bytes()[2:])
	return out.Bytes()
}
