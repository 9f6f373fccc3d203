package items

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-accordion/internal/validation"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

// CreateFromEntries synthesizes a <dt>/<dd> pair for every entry. Header and
// content are parsed as inner HTML.
func CreateFromEntries(entries []interfaces.Entry, source interfaces.ItemSource) ([]*interfaces.Item, error) {
	out := make([]*interfaces.Item, 0, len(entries))
	for _, entry := range entries {
		item, err := NewItem(entry, source)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// NewItem synthesizes the nodes for a single entry and stamps its id.
func NewItem(entry interfaces.Entry, source interfaces.ItemSource) (*interfaces.Item, error) {
	if err := validation.ValidateEntry(entry); err != nil {
		return nil, err
	}

	header, err := newElement(atom.Dt, entry.Header)
	if err != nil {
		return nil, validation.WrongType("header", "html fragment")
	}
	content, err := newElement(atom.Dd, entry.Content)
	if err != nil {
		return nil, validation.WrongType("content", "html fragment")
	}
	SetAttr(header, interfaces.ItemIDAttribute, strconv.Itoa(entry.ID))

	if source == "" {
		source = interfaces.ItemSourceInserted
	}
	return &interfaces.Item{
		ID:      entry.ID,
		Header:  header,
		Content: content,
		Source:  source,
	}, nil
}

func newElement(tag atom.Atom, inner string) (*html.Node, error) {
	node := &html.Node{Type: html.ElementNode, Data: tag.String(), DataAtom: tag}
	children, err := html.ParseFragment(strings.NewReader(inner), node)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		node.AppendChild(child)
	}
	return node, nil
}
