package reportpdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png" // register the PNG decoder for DecodePNG
)

// ChartName identifies one of the charts a report can embed.
type ChartName int

const (
	SalesChart ChartName = iota
	MakeChart
	PriceChart
	InventoryChart

	chartCount
)

var chartKeys = [chartCount]string{
	SalesChart:     "salesChart",
	MakeChart:      "makeChart",
	PriceChart:     "priceChart",
	InventoryChart: "inventoryChart",
}

var chartCaptions = [chartCount]string{
	SalesChart:     "Sales & Revenue Trend",
	MakeChart:      "Inventory Distribution by Make",
	PriceChart:     "Price Range Distribution",
	InventoryChart: "Inventory Levels Over Time",
}

// ChartNames returns every chart in document order.
func ChartNames() []ChartName {
	return []ChartName{SalesChart, MakeChart, PriceChart, InventoryChart}
}

// ParseChartName maps a logical key such as "priceChart" to its ChartName.
func ParseChartName(key string) (ChartName, error) {
	for i, k := range chartKeys {
		if k == key {
			return ChartName(i), nil
		}
	}
	return 0, fmt.Errorf("reportpdf: unknown chart %q", key)
}

// Key returns the logical key of the chart, e.g. "salesChart".
func (c ChartName) Key() string {
	if !c.valid() {
		return fmt.Sprintf("chart(%d)", int(c))
	}
	return chartKeys[c]
}

// Caption returns the section heading printed above the chart.
func (c ChartName) Caption() string {
	if !c.valid() {
		return ""
	}
	return chartCaptions[c]
}

func (c ChartName) String() string { return c.Key() }

func (c ChartName) valid() bool { return c >= 0 && c < chartCount }

// ChartImage is a rendered chart snapshot.
type ChartImage struct {
	Width  int    // pixels
	Height int    // pixels
	PNG    []byte // encoded image data
}

// DecodePNG wraps PNG bytes in a ChartImage, reading the pixel size from the
// image header.
func DecodePNG(data []byte) (*ChartImage, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageCapture, err)
	}
	if format != "png" {
		return nil, fmt.Errorf("%w: unsupported image format %q", ErrImageCapture, format)
	}
	img := &ChartImage{Width: cfg.Width, Height: cfg.Height, PNG: data}
	if err := img.validate(); err != nil {
		return nil, err
	}
	return img, nil
}

func (img *ChartImage) validate() error {
	if img == nil || len(img.PNG) == 0 {
		return fmt.Errorf("%w: no pixel data", ErrImageCapture)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("%w: empty %dx%d region", ErrImageCapture, img.Width, img.Height)
	}
	return nil
}

// ChartSource supplies chart images during generation. CaptureChart returns
// (nil, nil) when the chart is not part of the report; any error is treated
// as a failed capture for that chart only.
type ChartSource interface {
	CaptureChart(ctx context.Context, name ChartName) (*ChartImage, error)
}

// ChartImageSet holds pre-captured charts, one optional slot per ChartName.
// The zero value is an empty set.
type ChartImageSet struct {
	slots [chartCount]chartSlot
}

type chartSlot struct {
	img *ChartImage
	err error
	set bool
}

// Put stores the image for name, replacing any previous entry.
func (s *ChartImageSet) Put(name ChartName, img *ChartImage) {
	if !name.valid() {
		return
	}
	s.slots[name] = chartSlot{img: img, set: img != nil}
}

// PutError records that capturing name failed. The chart section is still
// emitted, with a notice in place of the image.
func (s *ChartImageSet) PutError(name ChartName, err error) {
	if !name.valid() || err == nil {
		return
	}
	s.slots[name] = chartSlot{err: err, set: true}
}

// Has reports whether name has an entry, successful or not.
func (s ChartImageSet) Has(name ChartName) bool {
	return name.valid() && s.slots[name].set
}

// Len returns the number of present entries.
func (s ChartImageSet) Len() int {
	n := 0
	for _, slot := range s.slots {
		if slot.set {
			n++
		}
	}
	return n
}

// CaptureChart implements [ChartSource].
func (s ChartImageSet) CaptureChart(_ context.Context, name ChartName) (*ChartImage, error) {
	if !s.Has(name) {
		return nil, nil
	}
	slot := s.slots[name]
	if slot.err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageCapture, name, slot.err)
	}
	return slot.img, nil
}
