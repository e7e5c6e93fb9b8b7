package screenshot

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"sort"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/gaurav-prasanna/stylepipe/core"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/webp"
)

// PaletteSize is the number of clusters taken from each screenshot.
const PaletteSize = 5

// Palette clusters the rendered pixels of every screenshot and returns the
// dominant colors as lowercase hex, heaviest first. Counts are summed
// across screenshots. Undecodable images are skipped.
func Palette(shots []core.Screenshot, log logrus.FieldLogger) []core.FrequencyEntry {
	if log == nil {
		log = logrus.StandardLogger()
	}

	counts := make(map[string]int)
	var order []string
	for _, shot := range shots {
		items, err := dominantColors(shot.Data)
		if err != nil {
			log.WithField("url", shot.URL).WithError(err).Debug("Skipping screenshot palette")
			continue
		}
		for _, item := range items {
			hex := fmt.Sprintf("#%02x%02x%02x", item.Color.R&0xff, item.Color.G&0xff, item.Color.B&0xff)
			if _, ok := counts[hex]; !ok {
				order = append(order, hex)
			}
			counts[hex] += item.Cnt
		}
	}

	out := make([]core.FrequencyEntry, len(order))
	for i, hex := range order {
		out[i] = core.FrequencyEntry{Value: hex, Count: counts[hex]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func dominantColors(data []byte) ([]prominentcolor.ColorItem, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image has empty bounds")
	}

	nrgba := image.NewNRGBA(bounds)
	draw.Draw(nrgba, bounds, img, bounds.Min, draw.Src)

	// Background masks first, then everything when the masks leave nothing.
	items, err := prominentcolor.KmeansWithAll(PaletteSize, nrgba, prominentcolor.ArgumentNoCropping, prominentcolor.DefaultSize, prominentcolor.GetDefaultMasks())
	if err != nil || len(items) == 0 {
		items, err = prominentcolor.KmeansWithAll(PaletteSize, nrgba, prominentcolor.ArgumentNoCropping, prominentcolor.DefaultSize, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("clustering colors: %w", err)
	}
	return items, nil
}
