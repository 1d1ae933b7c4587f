package migrate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func migrateBody(t *testing.T, body, deckTag string) (string, int) {
	t.Helper()
	out, cards := New(DefaultOptions()).MigrateBody(SplitLines(body), deckTag)
	return JoinLines(out), cards
}

func TestMigrateBody(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		deckTag   string
		want      string
		wantCards int
	}{
		{
			name:      "single card",
			body:      "## Dog #card\nInu\n",
			want:      "## Dog\n?\nInu\n\n",
			wantCards: 1,
		},
		{
			name:      "answer trimmed and terminated",
			body:      "# Q #card\n\n\nline 1\n\nline 2",
			want:      "# Q\n?\nline 1\n\nline 2\n\n",
			wantCards: 1,
		},
		{
			name:      "empty answer",
			body:      "## A #card\n\n## B #card\nb\n",
			want:      "## A\n?\n\n## B\n?\nb\n\n",
			wantCards: 2,
		},
		{
			name:      "unmarked headings stay in answer",
			body:      "intro\n## Q #card\nanswer\n### Detail\nmore\n",
			want:      "intro\n## Q\n?\nanswer\n### Detail\nmore\n\n",
			wantCards: 1,
		},
		{
			name:      "terminators preserved",
			body:      "## Q #card\r\na\r\nb\r\n",
			want:      "## Q\n?\na\r\nb\r\n\n",
			wantCards: 1,
		},
		{
			name:      "deck tag after leading blanks",
			body:      "\n\n## Q #card\nA\n",
			deckTag:   "#flashcards/Lang",
			want:      "\n\n#flashcards/Lang\n\n## Q\n?\nA\n\n",
			wantCards: 1,
		},
		{
			name:    "deck tag already present",
			body:    "text\n  #flashcards/Lang  \n",
			deckTag: "#flashcards/Lang",
			want:    "text\n  #flashcards/Lang  \n",
		},
		{
			name:    "deck tag into empty body",
			body:    "",
			deckTag: "#flashcards",
			want:    "#flashcards\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cards := migrateBody(t, tt.body, tt.deckTag)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCards, cards)
		})
	}
}

func TestMigrateBodyTagInsertedOnce(t *testing.T) {
	const tag = "#flashcards/Lang/JP"

	once, _ := migrateBody(t, "## Dog #card\nInu\n", tag)
	twice, _ := migrateBody(t, once, tag)

	assert.Equal(t, once, twice)
	assert.Equal(t, 1, strings.Count(twice, tag))
}

func TestMigrateBodyPreservesHeadingsAndAnswers(t *testing.T) {
	body := "# One #card\nfirst\n\n## Two #card\n\nsecond a\nsecond b\n\n### Three ### #card\nthird\n"

	got, cards := migrateBody(t, body, "")
	assert.Equal(t, 3, cards)

	lines := SplitLines(got)
	var headings []string
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			headings = append(headings, strings.TrimSpace(line))
		}
	}
	assert.Equal(t, []string{"# One", "## Two", "### Three"}, headings)

	var answers []string
	for _, line := range lines {
		if line == "?\n" || strings.HasPrefix(line, "#") || isBlank(line) {
			continue
		}
		answers = append(answers, line)
	}
	assert.Equal(t, []string{"first\n", "second a\n", "second b\n", "third\n"}, answers)
}

func TestMigrateBodyCustomSeparator(t *testing.T) {
	m := New(Options{Separator: "??", CardTag: "flashcard"})

	out, cards := m.MigrateBody(SplitLines("## Q #flashcard\nA\n## R #card\n"), "")
	assert.Equal(t, 1, cards)
	assert.Equal(t, "## Q\n??\nA\n## R #card\n\n", JoinLines(out))
}
