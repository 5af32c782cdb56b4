package orient

import (
	"bytes"
	"image"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"

	"iconify/internal/imagetest"
)

func TestReadOrientation(t *testing.T) {
	for _, o := range []Orientation{Normal, FlipH, Rotate180, FlipV, Transpose, Rotate270, Transverse, Rotate90} {
		data := imagetest.JPEGWithOrientation(t, 8, 4, int(o))
		assert.Equal(t, o, Read(bytes.NewReader(data)), "orientation %d", o)
	}
}

func TestReadWithoutExif(t *testing.T) {
	var png bytes.Buffer
	assert.NoError(t, imaging.Encode(&png, imaging.New(4, 4, image.Black), imaging.PNG))

	assert.Equal(t, Normal, Read(&png))
	assert.Equal(t, Normal, Read(bytes.NewReader([]byte("not an image"))))
	assert.Equal(t, Normal, Read(bytes.NewReader(imagetest.JPEGWithOrientation(t, 4, 4, 42))))
}

func TestApply(t *testing.T) {
	src := imaging.New(40, 20, image.White)
	landscape := image.Rect(0, 0, 40, 20)
	portrait := image.Rect(0, 0, 20, 40)

	tests := []struct {
		o    Orientation
		want image.Rectangle
	}{
		{Normal, landscape},
		{FlipH, landscape},
		{Rotate180, landscape},
		{FlipV, landscape},
		{Transpose, portrait},
		{Rotate270, portrait},
		{Transverse, portrait},
		{Rotate90, portrait},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Apply(src, tt.o).Bounds(), "orientation %d", tt.o)
	}
}

func TestApplyNormalReturnsSource(t *testing.T) {
	src := imaging.New(2, 2, image.White)
	assert.Same(t, src, Apply(src, Normal))
}
