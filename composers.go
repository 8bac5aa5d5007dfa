package reportpdf

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

const (
	headingGap      = 10.0  // mm below a section heading
	chartMinSpace   = 100.0 // mm required before a chart section starts
	tableMinSpace   = 60.0  // mm required before a data table section starts
	chartFailNotice = "Chart could not be generated"
)

// composeHeader prints the product and report titles, the period and the
// generation time, followed by a separating rule.
func composeHeader(doc *Document, cur *Layout, product string, s *Snapshot) error {
	x, y := cur.Left(), cur.Y()
	doc.DrawText(x, y, product, TextStyle{Bold: true, Size: 24})
	doc.DrawText(x, y+10, s.Title, TextStyle{Size: 18})
	doc.DrawText(x, y+20, "Period: "+s.DateRange, TextStyle{Size: 10})
	doc.DrawText(x, y+25, "Generated: "+s.GeneratedAt, TextStyle{Size: 10})
	doc.DrawRule(x, y+30, x+cur.ContentWidth(), 0.5)
	cur.Advance(40)
	return doc.Err()
}

// composeMetrics prints the KPI table.
func composeMetrics(doc *Document, cur *Layout, m Metrics) error {
	t := metricsTable(m)
	if err := t.Validate(); err != nil {
		return err
	}
	drawHeading(doc, cur, "Key Performance Metrics", 16)
	if err := DrawTable(doc, cur, t); err != nil {
		return err
	}
	cur.Advance(10)
	return doc.Err()
}

func metricsTable(m Metrics) Table {
	return Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Revenue", FormatMillions(m.TotalRevenue)},
			{"Total Sales", FormatCount(m.TotalSales, unitLabel)},
			{"Average Inventory", FormatCount(m.AvgInventory, unitLabel)},
			{"Average Sale Price", FormatThousands(m.AvgSalePrice)},
			{"Revenue Growth", FormatGrowth(m.RevenueGrowth)},
		},
	}
}

// composeChart awaits one chart from src and embeds it under its caption.
// Absent charts produce nothing. A failed capture leaves the caption and a
// one-line notice so the rest of the report is still produced, unless ctx
// ended while waiting, which aborts the report.
func composeChart(ctx context.Context, doc *Document, cur *Layout, src ChartSource, name ChartName) error {
	logger := zerolog.Ctx(ctx).With().Str("chart", name.Key()).Logger()

	img, captureErr := src.CaptureChart(ctx, name)
	if err := ctx.Err(); err != nil {
		return interrupted(err)
	}
	if captureErr == nil && img == nil {
		logger.Debug().Msg("chart absent, section skipped")
		return nil
	}
	if captureErr == nil {
		captureErr = img.validate()
	}

	width := cur.ContentWidth()
	need := chartMinSpace
	if captureErr == nil {
		width = fitWidth(img, width, cur.contentHeight()-headingGap)
		if h := headingGap + imageHeight(img, width); h > need {
			need = h
		}
	}
	cur.EnsureSpace(need)
	drawHeading(doc, cur, name.Caption(), 14)

	if captureErr == nil {
		height, err := doc.EmbedImage(cur.Left(), cur.Y(), img, width)
		if err == nil {
			cur.Advance(height + 10)
			return doc.Err()
		}
		if !errors.Is(err, ErrImageCapture) {
			return err
		}
		captureErr = err
	}

	logger.Warn().Err(captureErr).Msg("chart could not be embedded")
	doc.DrawText(cur.Left(), cur.Y(), chartFailNotice, TextStyle{Size: 10})
	cur.Advance(10)
	return doc.Err()
}

// fitWidth returns the content width, narrowed only when an image of that
// width would be taller than maxHeight.
func fitWidth(img *ChartImage, width, maxHeight float64) float64 {
	if imageHeight(img, width) <= maxHeight {
		return width
	}
	return maxHeight * float64(img.Width) / float64(img.Height)
}

// composeTable prints a captioned data table. The table is validated before
// anything is drawn so a malformed table leaves no partial section behind.
func composeTable(doc *Document, cur *Layout, caption string, t Table) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%s: %w", caption, err)
	}
	cur.EnsureSpace(tableSectionSpace(cur, t))
	drawHeading(doc, cur, caption, 14)
	return DrawTable(doc, cur, t)
}

// tableSectionSpace is the space to reserve before a table section: the
// whole section when it fits on one page, otherwise the fixed minimum.
func tableSectionSpace(cur *Layout, t Table) float64 {
	est := headingGap + t.Height()
	if est > cur.contentHeight() || est < tableMinSpace {
		return tableMinSpace
	}
	return est
}

func drawHeading(doc *Document, cur *Layout, text string, size float64) {
	doc.DrawText(cur.Left(), cur.Y(), text, TextStyle{Bold: true, Size: size})
	cur.Advance(headingGap)
}

func salesTable(points []SalesPoint) Table {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.Month,
			FormatNumber(p.Sales),
			FormatThousands(p.Revenue),
			FormatNumber(p.Inventory),
		})
	}
	return Table{Headers: []string{"Month", "Sales", "Revenue", "Inventory"}, Rows: rows}
}

func makeTable(makes []MakeShare) Table {
	rows := make([][]string, 0, len(makes))
	for _, m := range makes {
		rows = append(rows, []string{
			m.Make,
			FormatNumber(m.Count),
			FormatThousands(m.Value),
			FormatPercent(m.Percentage),
		})
	}
	return Table{Headers: []string{"Make", "Count", "Total Value", "Market Share"}, Rows: rows}
}

func performersTable(performers []Performer) Table {
	rows := make([][]string, 0, len(performers))
	for _, p := range performers {
		rows = append(rows, []string{
			p.Model,
			FormatNumber(p.Sold),
			FormatThousands(p.Revenue),
			FormatNumber(p.AvgDays) + " days",
		})
	}
	return Table{Headers: []string{"Model", "Units Sold", "Revenue", "Avg Days to Sell"}, Rows: rows}
}

func statusTable(statuses []StatusShare) Table {
	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		rows = append(rows, []string{s.Status, FormatNumber(s.Count), FormatPercent(s.Percentage)})
	}
	return Table{Headers: []string{"Status", "Count", "Share"}, Rows: rows}
}

func locationTable(locations []LocationStat) Table {
	rows := make([][]string, 0, len(locations))
	for _, l := range locations {
		rows = append(rows, []string{
			l.Location,
			FormatNumber(l.Vehicles),
			FormatPercent(l.Utilization),
			FormatThousands(l.Revenue),
		})
	}
	return Table{Headers: []string{"Location", "Vehicles", "Utilization", "Revenue"}, Rows: rows}
}
