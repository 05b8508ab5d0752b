package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageStore_WriteAndRemove(t *testing.T) {
	s := NewImageStore(t.TempDir())

	name, err := s.Write("shop.PNG", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"))

	_, err = os.Stat(s.Path(name))
	require.NoError(t, err)

	require.NoError(t, s.Remove(name))
	_, err = os.Stat(s.Path(name))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, s.Remove(name))
}

func TestImageStore_RejectsWrongContent(t *testing.T) {
	s := NewImageStore(t.TempDir())

	_, err := s.Write("shop.png", strings.NewReader("not really an image"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = s.Write("notes.txt", bytes.NewReader(pngBytes(t)))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestImageStore_RejectsLargeFiles(t *testing.T) {
	s := NewImageStore(t.TempDir())
	data := append(pngBytes(t), make([]byte, MaxImageSize)...)

	_, err := s.Write("big.png", bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestImageStore_SVG(t *testing.T) {
	s := NewImageStore(t.TempDir())
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"><rect width="1" height="1"/></svg>`

	_, err := s.Write("logo.svg", strings.NewReader(svg))
	assert.NoError(t, err)
}

func TestImageStore_PathRejectsTraversal(t *testing.T) {
	s := NewImageStore(t.TempDir())
	assert.Equal(t, "", s.Path("../etc/passwd"))
	assert.Equal(t, "", s.Path(""))
}
