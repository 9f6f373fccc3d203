package items

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-accordion/internal/validation"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

type markupPair struct {
	header  *html.Node
	content *html.Node
	id      int
	stamped bool
}

// CreateFromMarkup pairs every <dt> child of container with the element that
// immediately follows it, which must be a <dd>. Ids stamped on the header are
// reused; the rest come from counter in document order.
func CreateFromMarkup(container *html.Node, counter *Counter) ([]*interfaces.Item, error) {
	if err := validation.ValidateRootContainer(container); err != nil {
		return nil, err
	}
	if counter == nil {
		counter = NewCounter()
	}

	var pairs []markupPair
	for child := container.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode || child.DataAtom != atom.Dt {
			continue
		}
		content := nextElement(child)
		if err := validation.ValidateItemNodes(child, content); err != nil {
			return nil, err
		}
		pair := markupPair{header: child, content: content}
		if raw, ok := Attr(child, interfaces.ItemIDAttribute); ok {
			id, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil || id < 0 {
				return nil, validation.WrongType(interfaces.ItemIDAttribute, "non-negative integer")
			}
			pair.id = id
			pair.stamped = true
		}
		pairs = append(pairs, pair)
	}

	var stamped, repeated []int
	for _, pair := range pairs {
		if !pair.stamped {
			continue
		}
		if slices.Contains(stamped, pair.id) && !slices.Contains(repeated, pair.id) {
			repeated = append(repeated, pair.id)
		}
		stamped = append(stamped, pair.id)
	}
	if len(repeated) > 0 {
		slices.Sort(repeated)
		return nil, validation.DuplicateID(repeated...)
	}
	counter.Reserve(stamped...)

	out := make([]*interfaces.Item, 0, len(pairs))
	for _, pair := range pairs {
		id := pair.id
		if !pair.stamped {
			id = counter.Next()
		}
		out = append(out, &interfaces.Item{
			ID:      id,
			Header:  pair.header,
			Content: pair.content,
			Source:  interfaces.ItemSourceMarkup,
		})
	}
	return out, nil
}

func nextElement(node *html.Node) *html.Node {
	for sibling := node.NextSibling; sibling != nil; sibling = sibling.NextSibling {
		if sibling.Type == html.ElementNode {
			return sibling
		}
	}
	return nil
}

// Attr returns the value of the named attribute.
func Attr(node *html.Node, key string) (string, bool) {
	if node == nil {
		return "", false
	}
	for _, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces the named attribute.
func SetAttr(node *html.Node, key, value string) {
	if node == nil {
		return
	}
	for i, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			node.Attr[i].Val = value
			return
		}
	}
	node.Attr = append(node.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttr drops the named attribute.
func RemoveAttr(node *html.Node, key string) {
	if node == nil {
		return
	}
	node.Attr = slices.DeleteFunc(node.Attr, func(attr html.Attribute) bool {
		return attr.Namespace == "" && attr.Key == key
	})
}
