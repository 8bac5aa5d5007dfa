package reportpdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/porticus-lab/go-report-pdf/internal/pdftext"
)

var fixedTime = time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

// testPNG encodes a solid w x h image.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 59, G: 130, B: 246, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testChart(t *testing.T, w, h int) *ChartImage {
	t.Helper()
	img, err := DecodePNG(testPNG(t, w, h))
	require.NoError(t, err)
	return img
}

// allCharts returns a set with every chart present.
func allCharts(t *testing.T) ChartImageSet {
	t.Helper()
	var set ChartImageSet
	for _, name := range ChartNames() {
		set.Put(name, testChart(t, 80, 40))
	}
	return set
}

func sampleSnapshot() *Snapshot {
	return &Snapshot{
		Title:       "Fleet Performance Report",
		DateRange:   "Jan 2024 - Feb 2024",
		GeneratedAt: "3/1/2024, 2:30:00 PM",
		Metrics: Metrics{
			TotalRevenue:  2450000,
			TotalSales:    245,
			AvgInventory:  1200,
			AvgSalePrice:  24500,
			RevenueGrowth: 7.2,
		},
		Sales: []SalesPoint{
			{Month: "Jan", Sales: 120, Revenue: 1200000, Inventory: 1180},
			{Month: "Feb", Sales: 125, Revenue: 1250000, Inventory: 1220},
		},
		Makes: []MakeShare{
			{Make: "Toyota", Count: 320, Value: 7840000, Percentage: 26.7},
			{Make: "Ford", Count: 280, Value: 8120000, Percentage: 23.3},
		},
		Statuses: []StatusShare{
			{Status: "Available", Count: 900, Percentage: 75},
			{Status: "Sold", Count: 300, Percentage: 25},
		},
		TopPerformers: []Performer{
			{Model: "Camry", Sold: 42, Revenue: 1050000, AvgDays: 12},
		},
		Locations: []LocationStat{
			{Location: "Downtown", Vehicles: 400, Utilization: 82.5, Revenue: 980000},
		},
	}
}

// pdfLines returns the text lines of every page of a serialized PDF.
func pdfLines(t *testing.T, data []byte) [][]string {
	t.Helper()
	doc, err := pdftext.Load(data)
	require.NoError(t, err)
	pages := make([][]string, doc.PageCount())
	for i := range pages {
		pages[i], err = doc.PageLines(i)
		require.NoError(t, err)
	}
	return pages
}

// allText joins every line of every page, in order.
func allText(pages [][]string) string {
	var b strings.Builder
	for _, lines := range pages {
		for _, l := range lines {
			b.WriteString(l)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// newTestDocument returns a document ready for drawing.
func newTestDocument() (*Document, *Layout) {
	doc := newDocument(docMeta{Title: "test", Author: "test", Created: fixedTime})
	return doc, doc.begin()
}

// finish stamps footers and serializes doc.
func finish(t *testing.T, doc *Document) []byte {
	t.Helper()
	doc.stampFooters("footer")
	data, err := doc.Serialize()
	require.NoError(t, err)
	return data
}
