package imageops

import (
	"errors"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iconify/internal/imagetest"
)

func TestOpenDecodesImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	imagetest.WriteImage(t, path, 100, 50)

	img, err := NewImagingProcessor(0).Open(path, OpenOptions{})
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestOpenUnrecognized(t *testing.T) {
	dir := t.TempDir()
	p := NewImagingProcessor(0)

	for name, data := range map[string][]byte{
		"garbage.txt": []byte("definitely not an image"),
		"empty.png":   nil,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			imagetest.WriteFile(t, path, data)

			_, err := p.Open(path, OpenOptions{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnrecognizedFormat)
			assert.ErrorIs(t, err, image.ErrFormat)
			assert.True(t, IsUnrecognized(err))
		})
	}
}

func TestOpenCorruptImageIsNotUnrecognized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	imagetest.WriteFile(t, path, []byte("\x89PNG\r\n\x1a\ntruncated"))

	_, err := NewImagingProcessor(0).Open(path, OpenOptions{})
	require.Error(t, err)
	assert.False(t, IsUnrecognized(err))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := NewImagingProcessor(0).Open(filepath.Join(t.TempDir(), "nope.png"), OpenOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.False(t, IsUnrecognized(err))
}

func TestOpenAutoOrient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rotated.jpg")
	imagetest.WriteFile(t, path, imagetest.JPEGWithOrientation(t, 40, 20, 6))
	p := NewImagingProcessor(0)

	img, err := p.Open(path, OpenOptions{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 20), img.Bounds())

	img, err = p.Open(path, OpenOptions{AutoOrient: true})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 40), img.Bounds())
}

func TestFit(t *testing.T) {
	src := imaging.New(100, 50, image.White)
	p := NewImagingProcessor(0)

	for _, r := range []Resampler{ResamplerNearest, ResamplerBox, ResamplerBilinear, ResamplerHamming, ResamplerBicubic, ResamplerLanczos} {
		t.Run(r.String(), func(t *testing.T) {
			icon := p.Fit(src, 64, 64, r)
			assert.Equal(t, image.Rect(0, 0, 64, 64), icon.Bounds())
		})
	}

	assert.Equal(t, image.Rect(0, 0, 10, 30), p.Fit(src, 10, 30, ResamplerLanczos).Bounds())
}

func TestFitCropsCenter(t *testing.T) {
	// Columns 25..74 survive a centered 50x50 crop; the red bands end at 20.
	src := imagetest.Banded(100, 50, 20)
	p := NewImagingProcessor(0)

	for _, r := range []Resampler{ResamplerNearest, ResamplerBilinear, ResamplerLanczos} {
		t.Run(r.String(), func(t *testing.T) {
			icon := p.Fit(src, 50, 50, r)
			require.Equal(t, image.Rect(0, 0, 50, 50), icon.Bounds())
			for _, x := range []int{0, 1, 24, 25, 48, 49} {
				for _, y := range []int{0, 25, 49} {
					assert.True(t, imagetest.IsCenter(icon.At(x, y)), "pixel (%d,%d) = %v", x, y, icon.At(x, y))
				}
			}
		})
	}
}

func TestSaveInfersFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	p := NewImagingProcessor(80)
	icon := imaging.New(16, 16, image.Black)

	for _, name := range []string{"a.png", "b.jpg", "c.gif", "d.bmp", "e.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			n, err := p.Save(icon, path)
			require.NoError(t, err)
			assert.Positive(t, n)

			w, h := imagetest.Dimensions(t, path)
			assert.Equal(t, 16, w)
			assert.Equal(t, 16, h)

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, n, info.Size())
		})
	}
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	imagetest.WriteImage(t, path, 100, 100)

	_, err := NewImagingProcessor(0).Save(imaging.New(8, 4, image.Black), path)
	require.NoError(t, err)

	w, h := imagetest.Dimensions(t, path)
	assert.Equal(t, 8, w)
	assert.Equal(t, 4, h)
}

func TestSaveKeepsExistingMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	imagetest.WriteImage(t, path, 10, 10)
	require.NoError(t, os.Chmod(path, 0600))

	_, err := NewImagingProcessor(0).Save(imaging.New(4, 4, image.Black), path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSaveUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	_, err := NewImagingProcessor(0).Save(imaging.New(8, 8, image.Black), filepath.Join(dir, "icon.dat"))
	require.ErrorIs(t, err, imaging.ErrUnsupportedFormat)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
