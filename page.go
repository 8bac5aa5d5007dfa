package reportpdf

// pageFormat describes the single physical page format used for every
// document. All values are in millimetres.
type pageFormat struct {
	Name   string
	Width  float64
	Height float64
	Margin float64
}

// a4Portrait is the only page format reports are produced in.
var a4Portrait = pageFormat{Name: "A4", Width: 210, Height: 297, Margin: 20}

// contentWidth is the usable width between the left and right margins.
func (p pageFormat) contentWidth() float64 {
	return p.Width - 2*p.Margin
}

// bottomLimit is the lowest Y the cursor may reach on a page.
func (p pageFormat) bottomLimit() float64 {
	return p.Height - p.Margin
}

// footerY is the baseline of the footer line.
func (p pageFormat) footerY() float64 {
	return p.Height - 10
}

// Color is an RGB triple.
type Color struct {
	R, G, B int
}

// Palette used by the renderers.
var (
	colorText        = Color{0, 0, 0}
	colorHeaderBand  = Color{240, 240, 240}
	colorZebra       = Color{250, 250, 250}
	colorTableBorder = Color{200, 200, 200}
	colorRule        = Color{0, 0, 0}
)
