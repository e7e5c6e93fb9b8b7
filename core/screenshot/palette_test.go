package screenshot

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"regexp"
	"testing"

	"github.com/gaurav-prasanna/stylepipe/core"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradientPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 4), G: 90, B: uint8(y * 4), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPalette(t *testing.T) {
	log, _ := test.NewNullLogger()
	shots := []core.Screenshot{
		{URL: "https://acme.test/", Data: gradientPNG(t)},
		{URL: "https://acme.test/broken", Data: []byte("not an image")},
	}

	palette := Palette(shots, log)
	require.NotEmpty(t, palette)
	assert.LessOrEqual(t, len(palette), PaletteSize)

	hex := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	for i, e := range palette {
		assert.Regexp(t, hex, e.Value)
		assert.Positive(t, e.Count)
		if i > 0 {
			assert.GreaterOrEqual(t, palette[i-1].Count, e.Count)
		}
	}
}

func TestPaletteEmpty(t *testing.T) {
	assert.Empty(t, Palette(nil, nil))
	assert.Empty(t, Palette([]core.Screenshot{{URL: "x"}}, nil))
}
