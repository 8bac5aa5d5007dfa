package reportpdf

import "fmt"

const (
	rowHeight     = 8.0 // mm per header or data row
	cellPadding   = 2.0 // mm from the column edge to the text
	textBaseline  = 5.0 // mm from the row top to the text baseline
	tablePadding  = 5.0 // mm left below a table
	tableFontSize = 10.0
)

// Table is a header row plus data rows of the same width.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Validate checks that the table has columns and that every row has exactly
// one cell per header.
func (t Table) Validate() error {
	if len(t.Headers) == 0 {
		return fmt.Errorf("%w: table has no columns", ErrPrecondition)
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return fmt.Errorf("%w: row %d has %d cells, want %d",
				ErrPrecondition, i, len(row), len(t.Headers))
		}
	}
	return nil
}

// Height is the vertical space the table needs when drawn on a single page,
// including the padding left below it.
func (t Table) Height() float64 {
	return float64(len(t.Rows)+1)*rowHeight + tablePadding
}

// DrawTable renders t at the cursor as a bordered table with a shaded header
// and zebra-striped rows, then moves the cursor below it.
//
// Rows that would cross the bottom margin continue on a new page with the
// header repeated; each page carries its own border. A row is never split.
func DrawTable(doc *Document, cur *Layout, t Table) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if !doc.drawable() {
		return doc.err
	}

	left := cur.Left()
	width := cur.ContentWidth()
	colWidth := width / float64(len(t.Headers))

	// Room for the header and at least one row.
	cur.EnsureSpace(2 * rowHeight)

	top := cur.Y()
	drawTableHeader(doc, left, top, width, colWidth, t.Headers)
	y := top + rowHeight

	for i, row := range t.Rows {
		if y+rowHeight > doc.format.bottomLimit() {
			doc.DrawBorder(left, top, width, y-top, colorTableBorder)
			cur.NewPage()
			top = cur.Y()
			drawTableHeader(doc, left, top, width, colWidth, t.Headers)
			y = top + rowHeight
		}
		if i%2 == 1 {
			doc.DrawFilledRect(left, y, width, rowHeight, colorZebra)
		}
		for col, cell := range row {
			doc.DrawText(left+float64(col)*colWidth+cellPadding, y+textBaseline, cell,
				TextStyle{Size: tableFontSize})
		}
		y += rowHeight
	}

	doc.DrawBorder(left, top, width, y-top, colorTableBorder)
	cur.Advance(y - cur.Y() + tablePadding)
	return doc.Err()
}

func drawTableHeader(doc *Document, left, y, width, colWidth float64, headers []string) {
	doc.DrawFilledRect(left, y, width, rowHeight, colorHeaderBand)
	for col, h := range headers {
		doc.DrawText(left+float64(col)*colWidth+cellPadding, y+textBaseline, h,
			TextStyle{Bold: true, Size: tableFontSize})
	}
}
