package reportpdf

// Layout is the write cursor for a Document. It is passed explicitly to every
// composer; nothing reads the cursor from shared state.
//
// Y grows downwards from the top edge and is always kept between the top
// margin and the bottom margin of the current page.
type Layout struct {
	doc *Document
	y   float64
}

// Y returns the current vertical position in millimetres.
func (l *Layout) Y() float64 { return l.y }

// Left returns the X of the left content edge.
func (l *Layout) Left() float64 { return l.doc.format.Margin }

// ContentWidth returns the usable width between the margins.
func (l *Layout) ContentWidth() float64 { return l.doc.format.contentWidth() }

// Remaining returns the space left above the bottom margin.
func (l *Layout) Remaining() float64 { return l.doc.format.bottomLimit() - l.y }

// PageCount returns the number of pages in the document so far.
func (l *Layout) PageCount() int { return l.doc.PageCount() }

// Advance moves the cursor down by mm, stopping at the bottom margin.
func (l *Layout) Advance(mm float64) {
	l.y += mm
	if limit := l.doc.format.bottomLimit(); l.y > limit {
		l.y = limit
	}
}

// EnsureSpace starts a new page when fewer than mm millimetres remain above
// the bottom margin. It reports whether a page was added. A page that has not
// been written to yet is never replaced by another blank one.
func (l *Layout) EnsureSpace(mm float64) bool {
	if l.y+mm <= l.doc.format.bottomLimit() || l.atTop() {
		return false
	}
	l.NewPage()
	return true
}

// NewPage appends a blank page and resets the cursor to the top margin.
func (l *Layout) NewPage() {
	l.doc.addPage()
	l.y = l.doc.format.Margin
}

func (l *Layout) atTop() bool {
	return l.y <= l.doc.format.Margin
}

// contentHeight is the full usable height of a fresh page.
func (l *Layout) contentHeight() float64 {
	return l.doc.format.bottomLimit() - l.doc.format.Margin
}
