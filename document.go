package reportpdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// docState tracks where a Document is in its lifecycle.
type docState int

const (
	stateEmpty docState = iota
	stateBuilding
	stateFinalizing
	stateSealed
)

func (s docState) String() string {
	switch s {
	case stateEmpty:
		return "empty"
	case stateBuilding:
		return "building"
	case stateFinalizing:
		return "finalizing"
	case stateSealed:
		return "sealed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// docMeta is written into the PDF information dictionary.
type docMeta struct {
	Title   string
	Author  string
	Created time.Time
}

// Document is an in-memory paginated report. It is mutable while being
// built, gets its footers stamped once, and is then serialized exactly once.
//
// Drawing methods do not return errors. Misuse is recorded and reported by
// [Document.Err], in the same sticky style as the underlying fpdf writer.
type Document struct {
	pdf    *fpdf.Fpdf
	format pageFormat
	tr     func(string) string
	state  docState
	err    error
	images int
	data   []byte
}

func newDocument(meta docMeta) *Document {
	f := fpdf.New("P", "mm", a4Portrait.Name, "")
	f.SetMargins(a4Portrait.Margin, a4Portrait.Margin, a4Portrait.Margin)
	// Pagination is computed by Layout; fpdf must never insert pages itself.
	f.SetAutoPageBreak(false, 0)
	f.SetTitle(meta.Title, true)
	f.SetAuthor(meta.Author, true)
	f.SetCreator(meta.Author, true)
	if !meta.Created.IsZero() {
		f.SetCreationDate(meta.Created)
	}
	return &Document{
		pdf:    f,
		format: a4Portrait,
		tr:     f.UnicodeTranslatorFromDescriptor(""),
	}
}

// begin opens the first page and moves the document into the building state.
func (d *Document) begin() *Layout {
	if d.state != stateEmpty {
		d.fail(fmt.Errorf("%w: begin called while %s", ErrSealed, d.state))
		return &Layout{doc: d, y: d.format.Margin}
	}
	d.state = stateBuilding
	d.pdf.AddPage()
	return &Layout{doc: d, y: d.format.Margin}
}

// PageCount returns the number of pages appended so far.
func (d *Document) PageCount() int {
	return d.pdf.PageCount()
}

// Err returns the first error recorded while drawing, including errors
// raised by the PDF writer.
func (d *Document) Err() error {
	if d.err != nil {
		return d.err
	}
	if d.pdf.Err() {
		return d.pdf.Error()
	}
	return nil
}

func (d *Document) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *Document) drawable() bool {
	if d.state != stateBuilding {
		d.fail(fmt.Errorf("%w: cannot draw while %s", ErrSealed, d.state))
		return false
	}
	return true
}

func (d *Document) addPage() {
	if !d.drawable() {
		return
	}
	d.pdf.AddPage()
}

// stampFooters writes the attribution and "Page i of N" onto every page.
// It must run after the last content page exists so N is final.
func (d *Document) stampFooters(attribution string) {
	if d.state != stateBuilding {
		d.fail(fmt.Errorf("%w: footers already stamped", ErrSealed))
		return
	}
	d.state = stateFinalizing

	total := d.pdf.PageCount()
	y := d.format.footerY()
	right := d.format.Width - d.format.Margin
	d.setTextColor(colorText)
	for i := 1; i <= total; i++ {
		d.pdf.SetPage(i)
		// fpdf skips Tf when the font looks unchanged, but a revisited page
		// still carries the last font it was drawn with.
		d.pdf.SetFont("Helvetica", "B", 8)
		d.pdf.SetFont("Helvetica", "", 8)
		d.pdf.Text(d.format.Margin, y, d.tr(attribution))
		label := fmt.Sprintf("Page %d of %d", i, total)
		d.pdf.Text(right-d.pdf.GetStringWidth(label), y, label)
	}
	d.pdf.SetPage(total)
}

// Serialize writes the finished document to PDF bytes. The first call seals
// the document; later calls return the same bytes.
func (d *Document) Serialize() ([]byte, error) {
	switch d.state {
	case stateSealed:
		return d.data, nil
	case stateFinalizing:
	default:
		return nil, fmt.Errorf("%w: document is %s, footers not stamped", ErrSerialization, d.state)
	}
	if err := d.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrSerialization)
	}
	d.data = buf.Bytes()
	d.state = stateSealed
	return d.data, nil
}
