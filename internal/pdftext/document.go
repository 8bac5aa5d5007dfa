// Package pdftext reads the text back out of simple PDF files such as the
// ones produced by reportpdf. It follows the page tree, decodes each page's
// content streams and collects the strings shown by text operators in
// drawing order.
//
// Cross-reference streams, object streams and encryption are not supported.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrNotPDF is returned when the input does not start with a PDF header.
	ErrNotPDF = errors.New("pdftext: not a PDF file")

	// ErrPageRange is returned for a page index outside the document.
	ErrPageRange = errors.New("pdftext: page out of range")
)

// maxTreeDepth bounds recursion through nested /Pages nodes.
const maxTreeDepth = 32

var (
	reObjHeader = regexp.MustCompile(`(\d+)\s+(\d+)\s+obj\b`)
	reRef       = regexp.MustCompile(`(\d+)\s+\d+\s+R`)
	reTypePage  = regexp.MustCompile(`/Type\s*/Page\b`)
	reTypePages = regexp.MustCompile(`/Type\s*/Pages\b`)
	reCatalog   = regexp.MustCompile(`/Type\s*/Catalog\b`)
	rePagesRef  = regexp.MustCompile(`/Pages\s+(\d+)\s+\d+\s+R`)
	reKids      = regexp.MustCompile(`/Kids\s*\[([^\]]*)\]`)
	reContents  = regexp.MustCompile(`/Contents\s*(\[[^\]]*\]|\d+\s+\d+\s+R)`)
	reLength    = regexp.MustCompile(`/Length\s+(\d+)(\s+\d+\s+R)?`)
	reFlate     = regexp.MustCompile(`/(FlateDecode|Fl)\b`)
	reVersion   = regexp.MustCompile(`^%PDF-(\d+\.\d+)`)
)

// Document is a parsed PDF with the text of every page extracted.
type Document struct {
	version string
	pages   [][]string
}

// Open reads and parses the PDF file at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pdftext: %w", err)
	}
	return Load(data)
}

// Load parses PDF bytes.
func Load(data []byte) (*Document, error) {
	m := reVersion.FindSubmatch(data)
	if m == nil {
		return nil, ErrNotPDF
	}
	f := &file{data: data, offsets: indexObjects(data)}

	nums, err := f.pageObjects()
	if err != nil {
		return nil, err
	}
	doc := &Document{version: string(m[1]), pages: make([][]string, len(nums))}
	for i, num := range nums {
		content, err := f.pageContent(num)
		if err != nil {
			return nil, fmt.Errorf("pdftext: page %d: %w", i+1, err)
		}
		doc.pages[i] = extractLines(content)
	}
	return doc, nil
}

// Version returns the header version, e.g. "1.3".
func (d *Document) Version() string { return d.version }

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return len(d.pages) }

// PageLines returns the text lines of the page at the 0-based index.
func (d *Document) PageLines(i int) ([]string, error) {
	if i < 0 || i >= len(d.pages) {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageRange, i+1, len(d.pages))
	}
	return d.pages[i], nil
}

// PageText returns the text of the page at the 0-based index, one line per
// text object.
func (d *Document) PageText(i int) (string, error) {
	lines, err := d.PageLines(i)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// file is the raw byte view used while loading.
type file struct {
	data    []byte
	offsets map[int]int
}

type object struct {
	dict   []byte
	stream []byte
}

// indexObjects maps object numbers to the offset just past "N G obj".
// Later definitions win so incremental updates are honoured.
func indexObjects(data []byte) map[int]int {
	offsets := make(map[int]int)
	for _, loc := range reObjHeader.FindAllSubmatchIndex(data, -1) {
		if loc[0] > 0 && !isWhitespace(data[loc[0]-1]) {
			continue
		}
		num, err := strconv.Atoi(string(data[loc[2]:loc[3]]))
		if err != nil {
			continue
		}
		offsets[num] = loc[1]
	}
	return offsets
}

func (f *file) object(num int) (*object, error) {
	off, ok := f.offsets[num]
	if !ok {
		return nil, fmt.Errorf("pdftext: object %d not found", num)
	}
	s := &scanner{data: f.data, pos: off}
	s.skipSpace()
	if !bytes.HasPrefix(f.data[s.pos:], []byte("<<")) {
		return &object{}, nil
	}
	start := s.pos
	end := s.dictEnd()
	if end < 0 {
		return nil, fmt.Errorf("pdftext: object %d: unterminated dictionary", num)
	}
	obj := &object{dict: f.data[start:end]}

	s.skipSpace()
	if !s.match("stream") {
		return obj, nil
	}
	if s.peek() == '\r' {
		s.pos++
	}
	if s.peek() == '\n' {
		s.pos++
	}
	begin := s.pos
	if n, ok := f.streamLength(obj.dict); ok && begin+n <= len(f.data) {
		obj.stream = f.data[begin : begin+n]
		return obj, nil
	}
	stop := bytes.Index(f.data[begin:], []byte("endstream"))
	if stop < 0 {
		return nil, fmt.Errorf("pdftext: object %d: unterminated stream", num)
	}
	obj.stream = bytes.TrimRight(f.data[begin:begin+stop], "\r\n")
	return obj, nil
}

// streamLength reads /Length, following one level of indirection.
func (f *file) streamLength(dict []byte) (int, bool) {
	m := reLength.FindSubmatch(dict)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return 0, false
	}
	if len(m[2]) == 0 {
		return n, true
	}
	off, ok := f.offsets[n]
	if !ok {
		return 0, false
	}
	s := &scanner{data: f.data, pos: off}
	s.skipSpace()
	v, err := strconv.Atoi(s.word())
	return v, err == nil
}

// pageObjects returns page object numbers in page order. The page tree is
// walked from the catalog when there is one; otherwise pages are taken in
// file order.
func (f *file) pageObjects() ([]int, error) {
	if root, ok := f.pageTreeRoot(); ok {
		var pages []int
		if err := f.walkPages(root, 0, &pages); err != nil {
			return nil, err
		}
		return pages, nil
	}

	type located struct{ num, off int }
	var found []located
	for num, off := range f.offsets {
		obj, err := f.object(num)
		if err != nil {
			continue
		}
		if reTypePage.Match(obj.dict) {
			found = append(found, located{num, off})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].off < found[j].off })
	pages := make([]int, len(found))
	for i, l := range found {
		pages[i] = l.num
	}
	return pages, nil
}

func (f *file) pageTreeRoot() (int, bool) {
	for num := range f.offsets {
		obj, err := f.object(num)
		if err != nil || !reCatalog.Match(obj.dict) {
			continue
		}
		if m := rePagesRef.FindSubmatch(obj.dict); m != nil {
			root, err := strconv.Atoi(string(m[1]))
			return root, err == nil
		}
	}
	return 0, false
}

func (f *file) walkPages(num, depth int, pages *[]int) error {
	if depth > maxTreeDepth {
		return errors.New("pdftext: page tree too deep")
	}
	obj, err := f.object(num)
	if err != nil {
		return err
	}
	switch {
	case reTypePages.Match(obj.dict):
		m := reKids.FindSubmatch(obj.dict)
		if m == nil {
			return nil
		}
		for _, kid := range refs(m[1]) {
			if err := f.walkPages(kid, depth+1, pages); err != nil {
				return err
			}
		}
	case reTypePage.Match(obj.dict):
		*pages = append(*pages, num)
	}
	return nil
}

// pageContent concatenates the decoded content streams of a page.
func (f *file) pageContent(num int) ([]byte, error) {
	page, err := f.object(num)
	if err != nil {
		return nil, err
	}
	m := reContents.FindSubmatch(page.dict)
	if m == nil {
		return nil, nil
	}
	var out []byte
	for _, ref := range refs(m[1]) {
		obj, err := f.object(ref)
		if err != nil {
			return nil, err
		}
		data := obj.stream
		if reFlate.Match(obj.dict) {
			if data, err = inflate(data); err != nil {
				return nil, fmt.Errorf("pdftext: object %d: %w", ref, err)
			}
		}
		out = append(out, data...)
		out = append(out, '\n')
	}
	return out, nil
}

func refs(b []byte) []int {
	var out []int
	for _, m := range reRef.FindAllSubmatch(b, -1) {
		if n, err := strconv.Atoi(string(m[1])); err == nil {
			out = append(out, n)
		}
	}
	return out
}
