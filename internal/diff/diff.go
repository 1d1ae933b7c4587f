// Package diff previews a migration as a unified diff.
package diff

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Generate returns the unified diff from before to after. Identical inputs
// produce an empty string.
func Generate(name, before, after string) string {
	if before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(name), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(name, name+" (migrated)", before, edits))
}

// Render wraps a unified diff in a diff code fence and renders it for the
// terminal. The fenced plain text is returned if rendering fails.
func Render(unified string, width int) string {
	fenced := fmt.Sprintf("```diff\n%s```\n", unified)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fenced
	}

	rendered, err := renderer.Render(fenced)
	if err != nil {
		return fenced
	}

	return rendered
}
