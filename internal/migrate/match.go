package migrate

import (
	"regexp"
	"strings"
)

const frontmatterDelim = "---"

var closingHashesRe = regexp.MustCompile(`\s+#+\s*$`)

// Heading is a card heading with its marker removed.
type Heading struct {
	Level int
	Text  string
}

// Line renders the heading as a markdown ATX heading without a terminator.
func (h Heading) Line() string {
	return strings.Repeat("#", h.Level) + " " + h.Text
}

// isFrontmatterDelim reports whether line is a "---" marker, ignoring
// surrounding whitespace.
func isFrontmatterDelim(line string) bool {
	return strings.TrimSpace(line) == frontmatterDelim
}

// splitField splits "key: value" and reports whether the key equals want,
// ignoring case and surrounding whitespace. The returned value is untrimmed.
func splitField(line, want string) (string, bool) {
	key, value, found := strings.Cut(stripTerminator(line), ":")
	if !found {
		return "", false
	}
	if !strings.EqualFold(strings.TrimSpace(key), want) {
		return "", false
	}
	return value, true
}

// parseDeckField extracts the value of a deck declaration line.
func parseDeckField(line, deckKey string) (string, bool) {
	value, ok := splitField(line, deckKey)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(value), true
}

// parseInlineTags extracts the raw items of "tags: [a, b]". Empty items
// are dropped.
func parseInlineTags(line, tagsKey string) ([]string, bool) {
	value, ok := splitField(line, tagsKey)
	if !ok {
		return nil, false
	}
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "[") || !strings.HasSuffix(value, "]") || len(value) < 2 {
		return nil, false
	}

	var items []string
	for _, item := range strings.Split(value[1:len(value)-1], ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items, true
}

// isBlockTagsStart reports whether line opens a block tag list ("tags:").
func isBlockTagsStart(line, tagsKey string) bool {
	value, ok := splitField(line, tagsKey)
	return ok && strings.TrimSpace(value) == ""
}

// parseBlockItem extracts the value of a "- value" list entry. Surrounding
// quotes are removed from the returned value.
func parseBlockItem(line string) (string, bool) {
	trimmed := strings.TrimLeft(stripTerminator(line), " \t")
	if !strings.HasPrefix(trimmed, "-") || len(trimmed) < 2 {
		return "", false
	}
	value := strings.TrimSpace(trimmed[1:])
	value = strings.Trim(value, `"`)
	value = strings.Trim(value, `'`)
	return value, true
}

// cardHeadingMatcher recognizes headings flagged with a card tag, such as
// "## Question #card".
type cardHeadingMatcher struct {
	re *regexp.Regexp
}

func newCardHeadingMatcher(cardTag string) cardHeadingMatcher {
	pattern := `^(#{1,6})\s+(.*?)\s*` + regexp.QuoteMeta("#"+cardTag) + `\s*$`
	return cardHeadingMatcher{re: regexp.MustCompile(pattern)}
}

func (m cardHeadingMatcher) match(line string) bool {
	return m.re.MatchString(stripTerminator(line))
}

// parse returns the heading with the card tag and any closing hash run
// removed.
func (m cardHeadingMatcher) parse(line string) (Heading, bool) {
	groups := m.re.FindStringSubmatch(stripTerminator(line))
	if groups == nil {
		return Heading{}, false
	}
	text := strings.TrimSpace(groups[2])
	text = strings.TrimSpace(closingHashesRe.ReplaceAllString(text, ""))
	return Heading{Level: len(groups[1]), Text: text}, true
}
