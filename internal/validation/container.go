package validation

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ValidateRootContainer ensures the host is a <dl> element node.
func ValidateRootContainer(node *html.Node) error {
	if node == nil {
		return MissingArgument("element")
	}
	if node.Type != html.ElementNode || node.DataAtom != atom.Dl {
		return WrongType("element", "dl element")
	}
	return nil
}

// ValidateItemNodes checks a header/content pair discovered in markup.
func ValidateItemNodes(header, content *html.Node) error {
	if header == nil {
		return MissingArgument("header")
	}
	if content == nil {
		return MissingArgument("content")
	}
	if header.Type != html.ElementNode {
		return WrongType("header", "element")
	}
	if header.DataAtom != atom.Dt {
		return TagMismatch("header", "dt")
	}
	if content.Type != html.ElementNode {
		return WrongType("content", "element")
	}
	if content.DataAtom != atom.Dd {
		return TagMismatch("content", "dd")
	}
	return nil
}
