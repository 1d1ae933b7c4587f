package migrate

import "strings"

// ExtractFrontmatter splits lines into a leading frontmatter block and the
// remaining body. The block includes both "---" marker lines. When the first
// line is not a marker, or no closing marker follows, ok is false and body
// is the whole input.
func ExtractFrontmatter(lines []string) (header, body []string, ok bool) {
	if len(lines) == 0 || !isFrontmatterDelim(lines[0]) {
		return nil, lines, false
	}
	for i := 1; i < len(lines); i++ {
		if isFrontmatterDelim(lines[i]) {
			return lines[:i+1], lines[i+1:], true
		}
	}
	return nil, lines, false
}

// DeckTag converts a deck declaration such as "Japanese::Verbs" into a tag
// such as "#flashcards/Japanese/Verbs". Both "::" and "\" separate levels.
func DeckTag(prefix, deck string) string {
	deck = strings.TrimSpace(deck)
	deck = strings.ReplaceAll(deck, "::", "/")
	deck = strings.ReplaceAll(deck, `\`, "/")
	deck = strings.Trim(deck, "/")
	if deck == "" {
		return "#" + prefix
	}
	return "#" + prefix + "/" + deck
}

// RewriteFrontmatter removes the deck declaration and the card tag from a
// frontmatter block. It returns the rewritten block, every line terminated
// by "\n", and the deck tag derived from the declaration, if any. A block
// that is not delimited by markers on both ends is returned unchanged.
func (m *Migrator) RewriteFrontmatter(header []string) ([]string, string) {
	if len(header) < 2 || !isFrontmatterDelim(header[0]) || !isFrontmatterDelim(header[len(header)-1]) {
		return header, ""
	}

	var deckTag string
	out := []string{stripTerminator(header[0])}

	c := newCursor(header[1 : len(header)-1])
	for !c.done() {
		line := c.advance()

		if deck, ok := parseDeckField(line, m.opts.DeckKey); ok {
			// Last declaration wins.
			deckTag = DeckTag(m.opts.TagPrefix, deck)
			continue
		}

		if items, ok := parseInlineTags(line, m.opts.TagsKey); ok {
			out = append(out, m.opts.TagsKey+": ["+strings.Join(m.dropCardTag(items), ", ")+"]")
			continue
		}

		if isBlockTagsStart(line, m.opts.TagsKey) {
			out = append(out, stripTerminator(line))
			for _, item := range c.takeWhile(isBlockItem) {
				value, _ := parseBlockItem(item)
				if !m.isCardTag(value) {
					out = append(out, stripTerminator(item))
				}
			}
			continue
		}

		out = append(out, stripTerminator(line))
	}

	out = append(out, stripTerminator(header[len(header)-1]))
	for i := range out {
		out[i] += "\n"
	}
	return out, deckTag
}

func isBlockItem(line string) bool {
	_, ok := parseBlockItem(line)
	return ok
}

func (m *Migrator) isCardTag(tag string) bool {
	return strings.EqualFold(tag, m.opts.CardTag)
}

func (m *Migrator) dropCardTag(tags []string) []string {
	kept := make([]string, 0, len(tags))
	for _, tag := range tags {
		if !m.isCardTag(tag) {
			kept = append(kept, tag)
		}
	}
	return kept
}
