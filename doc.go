// Package reportpdf produces paginated A4 analytics reports as PDF documents.
//
// A report is assembled from a [Snapshot] of figures and an optional set of
// chart images. Layout is computed while the document is built: sections
// flow down the page, start a new page when they would not fit, and every
// page receives a "Page i of N" footer once the final page count is known.
//
// # Generating a report
//
// For one-off reports use the package-level helper:
//
//	res, err := reportpdf.Generate(ctx, snapshot, nil)
//
// Charts are supplied through a [ChartSource]. A [ChartImageSet] holds images
// captured beforehand; any subset of the four charts may be present:
//
//	var charts reportpdf.ChartImageSet
//	img, err := reportpdf.DecodePNG(salesPNG)
//	if err != nil {
//	    charts.PutError(reportpdf.SalesChart, err)
//	} else {
//	    charts.Put(reportpdf.SalesChart, img)
//	}
//
//	g := reportpdf.NewGenerator(
//	    reportpdf.WithKind(reportpdf.KindComprehensive),
//	    reportpdf.WithExtendedTables(),
//	)
//	res, err := g.Generate(ctx, snapshot, charts)
//
// Charts captured live from a rendered dashboard are available through the
// capture package, whose sessions also implement [ChartSource].
//
// # Sections
//
// Sections are emitted in a fixed order: header, key metrics, the sales,
// make, price and inventory charts, then the monthly sales, make
// distribution and top performers tables. Missing charts are skipped; a
// chart whose capture failed is replaced by a one-line notice.
//
// # Output
//
// A [Result] gives access to the generated PDF and its suggested file name:
//
//	res.Bytes()                       // []byte
//	res.Reader()                      // *bytes.Reader
//	res.WriteToFile("out.pdf", 0o644) // write to disk
//	res.Filename()                    // "VINScan-Report-2024-03-01.pdf"
//	res.PageCount()                   // number of pages
//
// # Errors
//
// Malformed data such as a table row with the wrong number of cells fails
// with [ErrPrecondition] before anything is drawn for that table. Failures
// to write the final PDF are reported as [ErrSerialization].
package reportpdf
