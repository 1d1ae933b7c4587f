// Package migrate converts notes written for the Obsidian Flashcards plugin
// ("## Question #card" headings followed by an answer block) into the
// multi-line card format of the Spaced Repetition plugin, keeping the
// original headings.
//
// The transform is pure: it performs no I/O and a Migrator is safe for
// concurrent use.
package migrate

// Migrator applies the migration with a fixed vocabulary.
type Migrator struct {
	opts    Options
	heading cardHeadingMatcher
}

// Result describes one migrated document.
type Result struct {
	Text           string
	DeckTag        string
	Cards          int
	HadFrontmatter bool
}

var defaultMigrator = New(DefaultOptions())

// New creates a Migrator. Empty option fields take their default values.
func New(opts Options) *Migrator {
	opts = opts.withDefaults()
	return &Migrator{
		opts:    opts,
		heading: newCardHeadingMatcher(opts.CardTag),
	}
}

// Migrate converts a whole document using the default vocabulary.
func Migrate(text string) string {
	return defaultMigrator.Run(text).Text
}

// Options returns the vocabulary in use.
func (m *Migrator) Options() Options {
	return m.opts
}

// Run converts a whole document. The frontmatter, when present, is rewritten
// and followed by one blank line; the body is migrated with the deck tag the
// frontmatter declared.
func (m *Migrator) Run(text string) Result {
	header, body, ok := ExtractFrontmatter(SplitLines(text))

	var out []string
	var deckTag string
	if ok {
		header, deckTag = m.RewriteFrontmatter(header)
		out = append(out, header...)
		out = append(out, "\n")
	}

	migrated, cards := m.MigrateBody(body, deckTag)
	out = append(out, migrated...)

	return Result{
		Text:           JoinLines(out),
		DeckTag:        deckTag,
		Cards:          cards,
		HadFrontmatter: ok,
	}
}
