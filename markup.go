package accordion

import (
	"context"
	"io"

	"golang.org/x/net/html"

	"github.com/goliatone/go-accordion/internal/markdown"
)

// ParseHTML parses markup and returns its first <dl> element, the container a
// Controller binds to.
func ParseHTML(markup []byte) (*html.Node, error) {
	return markdown.FindContainer(markup)
}

// FromMarkdown renders a Markdown definition list and returns the resulting <dl>
// container.
func FromMarkdown(source []byte) (*html.Node, error) {
	return markdown.Container(source)
}

// LoadEntries reads every front-matter Markdown file directly under dir.
func LoadEntries(ctx context.Context, dir string) ([]Entry, error) {
	return markdown.LoadEntries(ctx, dir)
}

// Render writes node and its descendants as HTML.
func Render(w io.Writer, node *html.Node) error {
	return html.Render(w, node)
}
