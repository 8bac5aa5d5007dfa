package pdftext

import "bytes"

// scanner walks PDF syntax one token at a time. It understands just enough
// of the grammar to read dictionaries, strings and content-stream operators.
type scanner struct {
	data []byte
	pos  int
}

func (s *scanner) done() bool { return s.pos >= len(s.data) }

func (s *scanner) peek() byte {
	if s.done() {
		return 0
	}
	return s.data[s.pos]
}

func (s *scanner) peekAt(off int) byte {
	if s.pos+off >= len(s.data) {
		return 0
	}
	return s.data[s.pos+off]
}

// skipSpace skips whitespace and comments.
func (s *scanner) skipSpace() {
	for !s.done() {
		c := s.data[s.pos]
		switch {
		case c == '%':
			for !s.done() && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
		case isWhitespace(c):
			s.pos++
		default:
			return
		}
	}
}

// match advances past lit when the upcoming bytes equal it.
func (s *scanner) match(lit string) bool {
	if bytes.HasPrefix(s.data[s.pos:], []byte(lit)) {
		s.pos += len(lit)
		return true
	}
	return false
}

// literal reads a (...) string, resolving escapes and balanced parentheses.
func (s *scanner) literal() []byte {
	s.pos++
	var buf bytes.Buffer
	depth := 1
	for !s.done() {
		c := s.data[s.pos]
		s.pos++
		switch c {
		case '\\':
			if s.done() {
				return buf.Bytes()
			}
			s.escape(&buf)
		case '(':
			depth++
			buf.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				return buf.Bytes()
			}
			buf.WriteByte(c)
		default:
			buf.WriteByte(c)
		}
	}
	return buf.Bytes()
}

func (s *scanner) escape(buf *bytes.Buffer) {
	esc := s.data[s.pos]
	s.pos++
	switch esc {
	case 'n':
		buf.WriteByte('\n')
	case 'r':
		buf.WriteByte('\r')
	case 't':
		buf.WriteByte('\t')
	case 'b':
		buf.WriteByte('\b')
	case 'f':
		buf.WriteByte('\f')
	case '\r':
		if s.peek() == '\n' {
			s.pos++
		}
	case '\n':
	default:
		if esc < '0' || esc > '7' {
			buf.WriteByte(esc)
			return
		}
		oct := int(esc - '0')
		for i := 0; i < 2 && !s.done(); i++ {
			d := s.data[s.pos]
			if d < '0' || d > '7' {
				break
			}
			oct = oct*8 + int(d-'0')
			s.pos++
		}
		buf.WriteByte(byte(oct))
	}
}

// hex reads a <...> string.
func (s *scanner) hex() []byte {
	s.pos++
	var out []byte
	var hi byte
	half := false
	for !s.done() {
		c := s.data[s.pos]
		s.pos++
		if c == '>' {
			break
		}
		if isWhitespace(c) {
			continue
		}
		if half {
			out = append(out, hi<<4|hexVal(c))
		} else {
			hi = hexVal(c)
		}
		half = !half
	}
	if half {
		out = append(out, hi<<4)
	}
	return out
}

// word reads a run of regular characters: a name body, number or operator.
func (s *scanner) word() string {
	start := s.pos
	for !s.done() {
		c := s.data[s.pos]
		if isWhitespace(c) || isDelim(c) {
			break
		}
		s.pos++
	}
	return string(s.data[start:s.pos])
}

// dictEnd returns the offset just past the >> that closes the dictionary
// opening at s.pos, or -1 when it is unterminated.
func (s *scanner) dictEnd() int {
	depth := 0
	for !s.done() {
		switch {
		case s.match("<<"):
			depth++
		case s.match(">>"):
			depth--
			if depth == 0 {
				return s.pos
			}
		case s.peek() == '(':
			s.literal()
		default:
			s.pos++
		}
	}
	return -1
}

func isDelim(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func hexVal(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	}
	return 0
}
