package migrate

import "strings"

// SplitLines splits text into lines, keeping each line's terminator attached.
// Recognized terminators are "\n", "\r\n" and a lone "\r". The last line has
// no terminator when the text does not end with one.
func SplitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i+1])
			start = i + 1
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			lines = append(lines, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// JoinLines concatenates lines back into a single string.
func JoinLines(lines []string) string {
	return strings.Join(lines, "")
}

// stripTerminator removes a trailing "\n", "\r\n" or "\r".
func stripTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

func hasTerminator(line string) bool {
	return strings.HasSuffix(line, "\n") || strings.HasSuffix(line, "\r")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// cursor is a pull-based reader over a line sequence.
type cursor struct {
	lines []string
	pos   int
}

func newCursor(lines []string) *cursor {
	return &cursor{lines: lines}
}

func (c *cursor) done() bool {
	return c.pos >= len(c.lines)
}

// peek returns the current line without consuming it.
func (c *cursor) peek() (string, bool) {
	if c.done() {
		return "", false
	}
	return c.lines[c.pos], true
}

// advance consumes and returns the current line.
func (c *cursor) advance() string {
	line := c.lines[c.pos]
	c.pos++
	return line
}

// takeWhile consumes lines for as long as pred holds and returns them.
func (c *cursor) takeWhile(pred func(string) bool) []string {
	start := c.pos
	for !c.done() && pred(c.lines[c.pos]) {
		c.pos++
	}
	return c.lines[start:c.pos]
}
