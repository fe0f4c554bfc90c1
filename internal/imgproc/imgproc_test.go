package imgproc

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"path/filepath"
	"testing"

	"pictriage/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.png")
	testutil.WritePNG(t, good, 10, 6)
	img, err := Decode(good)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())

	bad := filepath.Join(dir, "bad.jpg")
	testutil.WriteGarbage(t, bad)
	_, err = Decode(bad)
	assert.Error(t, err)

	_, err = Decode(filepath.Join(dir, "missing.jpg"))
	assert.Error(t, err)
}

func TestRotateDimensions(t *testing.T) {
	img := testutil.TestImage(10, 6)

	for _, tc := range []struct {
		degrees int
		w, h    int
	}{
		{0, 10, 6},
		{90, 6, 10},
		{180, 10, 6},
		{270, 6, 10},
		{360, 10, 6},
		{-90, 6, 10},
		{450, 6, 10},
	} {
		out := Rotate(img, tc.degrees)
		assert.Equal(t, tc.w, out.Bounds().Dx(), "degrees=%d", tc.degrees)
		assert.Equal(t, tc.h, out.Bounds().Dy(), "degrees=%d", tc.degrees)
	}
}

func TestRotatePixels(t *testing.T) {
	// 2x1 image: red on the left, blue on the right.
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	img.Set(0, 0, red)
	img.Set(1, 0, blue)

	cw := Rotate(img, 90)
	assert.Equal(t, red, cw.At(0, 0), "clockwise puts the left edge on top")
	assert.Equal(t, blue, cw.At(0, 1))

	ccw := Rotate(img, -90)
	assert.Equal(t, blue, ccw.At(0, 0), "counterclockwise puts the right edge on top")
	assert.Equal(t, red, ccw.At(0, 1))
}

func TestRotateComposition(t *testing.T) {
	img := testutil.TestImage(7, 5)

	twice := Rotate(Rotate(img, 90), 90)
	once := Rotate(img, 180)

	require.Equal(t, once.Bounds(), twice.Bounds())
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			assert.Equal(t, once.At(x, y), twice.At(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestRotateZeroReturnsInput(t *testing.T) {
	img := testutil.TestImage(4, 4)
	assert.Same(t, image.Image(img), Rotate(img, 0))
	assert.Same(t, image.Image(img), Rotate(img, 720))
}

func TestNormalizeRGB(t *testing.T) {
	t.Run("opaque rgba passes through", func(t *testing.T) {
		img := testutil.TestImage(4, 4)
		assert.Same(t, img, NormalizeRGB(img))
	})

	t.Run("transparency composites over white", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
		img.Set(0, 0, color.NRGBA{R: 255, A: 255})
		img.Set(1, 0, color.NRGBA{A: 0})

		out := NormalizeRGB(img)
		assert.True(t, out.Opaque())
		assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, out.At(1, 0))
	})

	t.Run("offset bounds are rebased to origin", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(3, 3, 7, 9))
		out := NormalizeRGB(img)
		assert.Equal(t, image.Rect(0, 0, 4, 6), out.Bounds())
	})
}

func TestEncodeJPEG(t *testing.T) {
	data, err := EncodeJPEG(testutil.TestImage(12, 8))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 12, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}
