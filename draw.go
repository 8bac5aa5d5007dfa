package reportpdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// TextStyle selects the font used by DrawText.
type TextStyle struct {
	Bold bool
	Size float64 // points
}

// DrawText draws a single line of text with its baseline at y. Text is not
// wrapped; callers keep strings short enough for the space they draw into.
func (d *Document) DrawText(x, y float64, text string, style TextStyle) {
	if !d.drawable() {
		return
	}
	fontStyle := ""
	if style.Bold {
		fontStyle = "B"
	}
	size := style.Size
	if size <= 0 {
		size = 10
	}
	d.pdf.SetFont("Helvetica", fontStyle, size)
	d.setTextColor(colorText)
	d.pdf.Text(x, y, d.tr(text))
}

// DrawRule draws a horizontal line from x1 to x2 at y.
func (d *Document) DrawRule(x1, y, x2, width float64) {
	if !d.drawable() {
		return
	}
	d.pdf.SetLineWidth(width)
	d.pdf.SetDrawColor(colorRule.R, colorRule.G, colorRule.B)
	d.pdf.Line(x1, y, x2, y)
}

// DrawFilledRect fills a rectangle without a border.
func (d *Document) DrawFilledRect(x, y, w, h float64, c Color) {
	if !d.drawable() {
		return
	}
	d.pdf.SetFillColor(c.R, c.G, c.B)
	d.pdf.Rect(x, y, w, h, "F")
}

// DrawBorder strokes the outline of a rectangle.
func (d *Document) DrawBorder(x, y, w, h float64, c Color) {
	if !d.drawable() {
		return
	}
	d.pdf.SetLineWidth(0.2)
	d.pdf.SetDrawColor(c.R, c.G, c.B)
	d.pdf.Rect(x, y, w, h, "D")
}

// EmbedImage draws img at (x, y) scaled to targetWidth and returns the drawn
// height, which keeps the source aspect ratio. It fails with ErrImageCapture
// when img carries no usable pixel data; the document is left untouched.
func (d *Document) EmbedImage(x, y float64, img *ChartImage, targetWidth float64) (float64, error) {
	if !d.drawable() {
		return 0, d.err
	}
	if err := img.validate(); err != nil {
		return 0, err
	}
	if targetWidth <= 0 {
		return 0, fmt.Errorf("%w: image width %.2f", ErrPrecondition, targetWidth)
	}

	d.images++
	name := fmt.Sprintf("chart-%d", d.images)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.PNG))
	if d.pdf.Err() {
		err := d.pdf.Error()
		d.pdf.ClearError()
		return 0, fmt.Errorf("%w: %v", ErrImageCapture, err)
	}

	height := imageHeight(img, targetWidth)
	d.pdf.ImageOptions(name, x, y, targetWidth, height, false, opts, 0, "")
	return height, nil
}

// imageHeight scales the image height to targetWidth.
func imageHeight(img *ChartImage, targetWidth float64) float64 {
	return float64(img.Height) * targetWidth / float64(img.Width)
}

func (d *Document) setTextColor(c Color) {
	d.pdf.SetTextColor(c.R, c.G, c.B)
}
