package markdown

import (
	"bytes"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-accordion/internal/validation"
)

// Container renders source and returns the first <dl> of the resulting document.
// Each definition term becomes an item header and its definition the content.
func (p *Parser) Container(source []byte) (*html.Node, error) {
	rendered, err := p.Render(source)
	if err != nil {
		return nil, err
	}
	return FindContainer(rendered)
}

// Container renders source with the default parser.
func Container(source []byte) (*html.Node, error) {
	return NewParser(Options{}).Container(source)
}

// FindContainer parses markup and returns its first <dl> element.
func FindContainer(markup []byte) (*html.Node, error) {
	doc, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		return nil, validation.WrongType("element", "html document")
	}
	if dl := findFirst(doc, atom.Dl); dl != nil {
		return dl, nil
	}
	return nil, validation.MissingArgument("element")
}

func findFirst(node *html.Node, tag atom.Atom) *html.Node {
	if node.Type == html.ElementNode && node.DataAtom == tag {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findFirst(child, tag); found != nil {
			return found
		}
	}
	return nil
}
