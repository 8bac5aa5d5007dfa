package reportpdf

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Lifecycle(t *testing.T) {
	doc := newDocument(docMeta{})
	assert.Equal(t, stateEmpty, doc.state)

	doc.begin()
	assert.Equal(t, stateBuilding, doc.state)
	assert.Equal(t, 1, doc.PageCount())

	doc.stampFooters("footer")
	assert.Equal(t, stateFinalizing, doc.state)

	_, err := doc.Serialize()
	require.NoError(t, err)
	assert.Equal(t, stateSealed, doc.state)
}

func TestDocument_SerializeBeforeFooters(t *testing.T) {
	doc, _ := newTestDocument()

	_, err := doc.Serialize()
	assert.ErrorIs(t, err, ErrSerialization)
	assert.Equal(t, stateBuilding, doc.state)
}

func TestDocument_SerializeIsIdempotent(t *testing.T) {
	doc, _ := newTestDocument()
	doc.DrawText(20, 30, "hello", TextStyle{})

	first := finish(t, doc)
	second, err := doc.Serialize()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second))
	assert.True(t, bytes.HasPrefix(first, []byte("%PDF-")))
}

func TestDocument_DrawingAfterFootersIsRejected(t *testing.T) {
	doc, cur := newTestDocument()
	doc.stampFooters("footer")

	doc.DrawText(20, 30, "late", TextStyle{})
	cur.NewPage()
	assert.ErrorIs(t, doc.Err(), ErrSealed)
	assert.Equal(t, 1, doc.PageCount())

	_, err := doc.Serialize()
	assert.ErrorIs(t, err, ErrSerialization)
}

func TestDocument_FootersTwice(t *testing.T) {
	doc, _ := newTestDocument()
	doc.stampFooters("footer")
	doc.stampFooters("footer")
	assert.ErrorIs(t, doc.Err(), ErrSealed)
}

func TestDocument_FooterOnEveryPage(t *testing.T) {
	doc, cur := newTestDocument()
	for i := 1; i <= 3; i++ {
		if i > 1 {
			cur.NewPage()
		}
		doc.DrawText(cur.Left(), cur.Y(), fmt.Sprintf("content %d", i), TextStyle{Bold: true, Size: 18})
	}
	doc.stampFooters("Generated by VINScan Pro Analytics")
	data, err := doc.Serialize()
	require.NoError(t, err)

	pages := pdfLines(t, data)
	require.Len(t, pages, 3)
	for i, lines := range pages {
		assert.Equal(t, []string{
			fmt.Sprintf("content %d", i+1),
			"Generated by VINScan Pro Analytics",
			fmt.Sprintf("Page %d of 3", i+1),
		}, lines)
	}
}

func TestDocument_EmbedImage(t *testing.T) {
	doc, _ := newTestDocument()

	h, err := doc.EmbedImage(20, 20, testChart(t, 200, 100), 170)
	require.NoError(t, err)
	assert.InDelta(t, 85.0, h, 1e-9)
	assert.NoError(t, doc.Err())
}

func TestDocument_EmbedImageRejectsBadData(t *testing.T) {
	tests := []struct {
		name string
		img  *ChartImage
	}{
		{"nil", nil},
		{"no data", &ChartImage{Width: 10, Height: 10}},
		{"zero size", &ChartImage{Width: 0, Height: 10, PNG: []byte{1}}},
		{"not a png", &ChartImage{Width: 10, Height: 10, PNG: []byte("definitely not a png")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _ := newTestDocument()

			_, err := doc.EmbedImage(20, 20, tt.img, 170)
			assert.ErrorIs(t, err, ErrImageCapture)
			assert.NoError(t, doc.Err(), "document stays usable")
			finish(t, doc)
		})
	}
}

func TestDocStateString(t *testing.T) {
	assert.Equal(t, "sealed", stateSealed.String())
	assert.Equal(t, "state(9)", docState(9).String())
}
