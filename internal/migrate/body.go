package migrate

import "strings"

// MigrateBody rewrites every card heading in body into a heading followed by
// a question/answer card, and inserts deckTag near the top unless the body
// already contains it. It returns the migrated lines and the number of cards.
func (m *Migrator) MigrateBody(body []string, deckTag string) ([]string, int) {
	out := make([]string, 0, len(body)+8)
	c := newCursor(body)

	if deckTag != "" && !containsLine(body, deckTag) {
		out = append(out, c.takeWhile(isBlank)...)
		out = append(out, deckTag+"\n", "\n")
	}

	cards := 0
	for !c.done() {
		out = append(out, c.takeWhile(m.isNotCardHeading)...)
		line, ok := c.peek()
		if !ok {
			break
		}
		c.advance()
		heading, _ := m.heading.parse(line)

		answer := trimBlankLines(c.takeWhile(m.isNotCardHeading))
		out = append(out, heading.Line()+"\n", m.opts.Separator+"\n")
		out = append(out, answer...)
		if len(answer) > 0 && !hasTerminator(answer[len(answer)-1]) {
			out = append(out, "\n")
		}
		out = append(out, "\n")
		cards++
	}
	return out, cards
}

func (m *Migrator) isNotCardHeading(line string) bool {
	return !m.heading.match(line)
}

// containsLine reports whether any line equals want, ignoring surrounding
// whitespace.
func containsLine(lines []string, want string) bool {
	want = strings.TrimSpace(want)
	for _, line := range lines {
		if strings.TrimSpace(line) == want {
			return true
		}
	}
	return false
}

// trimBlankLines drops leading and trailing blank lines.
func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && isBlank(lines[start]) {
		start++
	}
	for end > start && isBlank(lines[end-1]) {
		end--
	}
	return lines[start:end]
}
