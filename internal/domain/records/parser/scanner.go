package parser

import "strings"

// lineScanner is a cursor over the trimmed, non-empty lines of a table text.
// The Mercado Livre rules sometimes consume two lines per step (description
// continuation), which the explicit cursor keeps readable.
type lineScanner struct {
	lines []string
	pos   int
}

func newLineScanner(text string) *lineScanner {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return &lineScanner{lines: lines}
}

func (s *lineScanner) more() bool {
	return s.pos < len(s.lines)
}

// next returns the current line and advances the cursor.
func (s *lineScanner) next() string {
	line := s.lines[s.pos]
	s.pos++
	return line
}

// peek returns the upcoming line without consuming it.
func (s *lineScanner) peek() (string, bool) {
	if !s.more() {
		return "", false
	}
	return s.lines[s.pos], true
}
