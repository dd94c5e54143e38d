package resource

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFSProvider_DecodesAndCaches(t *testing.T) {
	fsys := fstest.MapFS{
		"icons/pin.png": {Data: pngBytes(t, 4, 4, color.NRGBA{R: 255, A: 255})},
	}
	p := NewFSProvider(fsys)

	img, err := Icon(p, "pin.png")
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	// drop the file; the cached image is still served
	delete(fsys, "icons/pin.png")
	again, err := Icon(p, "pin.png")
	require.NoError(t, err)
	assert.Same(t, img, again)
}

func TestFSProvider_Missing(t *testing.T) {
	p := NewFSProvider(fstest.MapFS{})
	_, err := Gradient(p, "nope.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFSProvider_NotAnImage(t *testing.T) {
	p := NewFSProvider(fstest.MapFS{"icons/bad.png": {Data: []byte("not an image")}})
	_, err := Icon(p, "bad.png")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestMap(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	m := Map{"icons/a.png": img}

	got, err := Icon(m, "a.png")
	require.NoError(t, err)
	assert.Same(t, img, got)

	_, err = Icon(m, "b.png")
	assert.ErrorIs(t, err, ErrNotFound)
}
