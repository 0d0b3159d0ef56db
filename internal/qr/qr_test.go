package qr

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	data, err := Encode("https://example.com")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, bounds.Dx(), bounds.Dy())
	assert.Zero(t, bounds.Dx()%ModuleSize)
	// smallest symbol is 21 modules plus a 4-module border on each side
	assert.GreaterOrEqual(t, bounds.Dx(), (21+8)*ModuleSize)
}

func TestEncode_GrowsWithContent(t *testing.T) {
	short, err := Encode("https://a.com")
	require.NoError(t, err)

	long, err := Encode("https://example.com/" + strings.Repeat("path/", 40))
	require.NoError(t, err)

	shortImg, err := png.Decode(bytes.NewReader(short))
	require.NoError(t, err)
	longImg, err := png.Decode(bytes.NewReader(long))
	require.NoError(t, err)

	assert.Greater(t, longImg.Bounds().Dx(), shortImg.Bounds().Dx())
}

func TestEncode_TooLong(t *testing.T) {
	_, err := Encode(strings.Repeat("x", 8000))
	assert.Error(t, err)
}
