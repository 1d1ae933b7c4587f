package migrate

// Options describes the markup vocabulary of the source and target notes.
type Options struct {
	// CardTag is the tag that flags a heading as a card ("card" means a
	// heading ending in "#card"). It is also dropped from frontmatter tags.
	CardTag string
	// DeckKey is the frontmatter key holding the deck declaration.
	DeckKey string
	// TagsKey is the frontmatter key holding the tag list.
	TagsKey string
	// TagPrefix is the root of the derived deck tag, without the '#'.
	TagPrefix string
	// Separator is the line written between a card's question and answer.
	Separator string
}

// DefaultOptions returns the vocabulary of the Obsidian Flashcards plugin
// on the input side and the Spaced Repetition plugin on the output side.
func DefaultOptions() Options {
	return Options{
		CardTag:   "card",
		DeckKey:   "cards-deck",
		TagsKey:   "tags",
		TagPrefix: "flashcards",
		Separator: "?",
	}
}

// withDefaults fills every empty field from DefaultOptions.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.CardTag == "" {
		o.CardTag = def.CardTag
	}
	if o.DeckKey == "" {
		o.DeckKey = def.DeckKey
	}
	if o.TagsKey == "" {
		o.TagsKey = def.TagsKey
	}
	if o.TagPrefix == "" {
		o.TagPrefix = def.TagPrefix
	}
	if o.Separator == "" {
		o.Separator = def.Separator
	}
	return o
}
