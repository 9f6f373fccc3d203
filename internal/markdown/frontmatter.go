package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-accordion/internal/validation"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

// frontMatterEnvelope is the metadata block of an entry file. Title is accepted
// as an alias for header.
type frontMatterEnvelope struct {
	ID     *int   `yaml:"id"`
	Header string `yaml:"header"`
	Title  string `yaml:"title"`
	Order  int    `yaml:"order"`
}

// ParseEntry reads an entry file: front matter supplies id and header, the
// Markdown body is rendered into the content HTML.
func (p *Parser) ParseEntry(source []byte) (interfaces.Entry, error) {
	entry, _, err := p.parseEntry(source)
	return entry, err
}

func (p *Parser) parseEntry(source []byte) (interfaces.Entry, int, error) {
	var meta frontMatterEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.Entry{}, 0, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta.ID == nil {
		return interfaces.Entry{}, 0, validation.MissingArgument("id")
	}

	header := strings.TrimSpace(meta.Header)
	if header == "" {
		header = strings.TrimSpace(meta.Title)
	}
	content, err := p.Render(body)
	if err != nil {
		return interfaces.Entry{}, 0, err
	}

	entry := interfaces.Entry{
		ID:      *meta.ID,
		Header:  header,
		Content: strings.TrimSpace(string(content)),
	}
	if err := validation.ValidateEntry(entry); err != nil {
		return interfaces.Entry{}, 0, err
	}
	return entry, meta.Order, nil
}

// ParseEntry parses an entry file with the default parser.
func ParseEntry(source []byte) (interfaces.Entry, error) {
	return NewParser(Options{}).ParseEntry(source)
}
