package pdftext

import (
	"bytes"
	"strconv"

	"golang.org/x/text/encoding/charmap"
)

// tjWordGap is the TJ displacement, in thousandths of an em, beyond which
// two adjacent strings are treated as separate words.
const tjWordGap = -200

// extractLines runs the text operators of a content stream and returns one
// line per text object or explicit line move.
func extractLines(content []byte) []string {
	var (
		lines []string
		cur   bytes.Buffer
		args  [][]byte
	)
	flush := func() {
		if cur.Len() > 0 {
			lines = append(lines, decodeWinAnsi(cur.Bytes()))
			cur.Reset()
		}
	}
	last := func() []byte {
		if len(args) == 0 {
			return nil
		}
		return args[len(args)-1]
	}

	s := &scanner{data: content}
	for {
		s.skipSpace()
		if s.done() {
			break
		}
		switch c := s.peek(); {
		case c == '(':
			args = append(args, s.literal())
		case c == '<' && s.peekAt(1) == '<', c == '>' && s.peekAt(1) == '>':
			s.pos += 2
		case c == '<':
			args = append(args, s.hex())
		case c == '[':
			args = append(args, s.showArray())
		case c == '/':
			s.pos++
			s.word()
		case isDelim(c):
			s.pos++
		default:
			op := s.word()
			if op == "" {
				s.pos++
				continue
			}
			if isNumeric(op) {
				continue
			}
			switch op {
			case "BT", "ET", "T*", "Td", "TD", "Tm":
				flush()
			case "Tj", "TJ":
				cur.Write(last())
			case "'", `"`:
				flush()
				cur.Write(last())
			case "ID":
				s.skipInlineImage()
			}
			args = args[:0]
		}
	}
	flush()
	return lines
}

// showArray reads a TJ operand, joining its strings and inserting a space
// where the displacement amounts to a word break.
func (s *scanner) showArray() []byte {
	s.pos++
	var out []byte
	for {
		s.skipSpace()
		if s.done() {
			return out
		}
		switch c := s.peek(); {
		case c == ']':
			s.pos++
			return out
		case c == '(':
			out = append(out, s.literal()...)
		case c == '<':
			out = append(out, s.hex()...)
		default:
			w := s.word()
			if w == "" {
				s.pos++
				continue
			}
			if n, err := strconv.ParseFloat(w, 64); err == nil && n < tjWordGap && len(out) > 0 {
				out = append(out, ' ')
			}
		}
	}
}

// skipInlineImage moves past the binary data of a BI ... ID ... EI block.
func (s *scanner) skipInlineImage() {
	for !s.done() {
		i := bytes.Index(s.data[s.pos:], []byte("EI"))
		if i < 0 {
			s.pos = len(s.data)
			return
		}
		s.pos += i + 2
		if isWhitespace(s.data[s.pos-3]) && (s.done() || isWhitespace(s.peek())) {
			return
		}
	}
}

func isNumeric(w string) bool {
	_, err := strconv.ParseFloat(w, 64)
	return err == nil
}

// decodeWinAnsi converts the single-byte strings used with the standard
// fonts into UTF-8.
func decodeWinAnsi(b []byte) string {
	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
