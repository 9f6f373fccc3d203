// Package dom renders accordion items into an x/net/html tree. It is the default
// interfaces.Renderer and doubles as a server-side renderer for the CLI.
package dom

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-slug"
	"golang.org/x/net/html"

	"github.com/goliatone/go-accordion/internal/items"
	"github.com/goliatone/go-accordion/internal/validation"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

const (
	attrClass    = "class"
	attrID       = "id"
	attrControls = "aria-controls"
	attrExpanded = "aria-expanded"
	attrRole     = "role"
)

var _ interfaces.Renderer = (*Renderer)(nil)

// Renderer attaches item nodes to a <dl> container and keeps a toggle handler per
// item id.
type Renderer struct {
	root    *html.Node
	classes interfaces.Classes

	mu       sync.Mutex
	handlers map[int]func()
	anchors  map[int]anchor
}

type anchor struct {
	header  bool
	content bool
}

// New returns a renderer for container using classes.
func New(container *html.Node, classes interfaces.Classes) *Renderer {
	return &Renderer{
		root:     container,
		classes:  classes,
		handlers: make(map[int]func()),
		anchors:  make(map[int]anchor),
	}
}

// Root exposes the container node.
func (r *Renderer) Root() *html.Node {
	return r.root
}

func (r *Renderer) MountRoot() {
	addClass(r.root, r.classes.Root)
}

func (r *Renderer) UnmountRoot() {
	removeClass(r.root, r.classes.Root)
}

// MountNode attaches header and content according to placement. Prepend inserts
// before the first child of the container; after inserts before the sibling that
// follows the reference content node.
func (r *Renderer) MountNode(item *interfaces.Item, placement interfaces.Placement) error {
	if item == nil || item.Header == nil || item.Content == nil {
		return validation.MissingArgument("item")
	}
	if item.Header.Parent == r.root && item.Content.Parent == r.root {
		return nil
	}
	detach(item.Header)
	detach(item.Content)

	switch placement.Mode {
	case interfaces.PlacePrepend:
		first := r.root.FirstChild
		if first == nil {
			r.appendPair(item)
			return nil
		}
		r.root.InsertBefore(item.Header, first)
		r.root.InsertBefore(item.Content, first)
	case interfaces.PlaceBefore:
		ref, err := r.reference(placement)
		if err != nil {
			return err
		}
		r.root.InsertBefore(item.Header, ref.Header)
		r.root.InsertBefore(item.Content, ref.Header)
	case interfaces.PlaceAfter:
		ref, err := r.reference(placement)
		if err != nil {
			return err
		}
		next := ref.Content.NextSibling
		if next == nil {
			r.appendPair(item)
			return nil
		}
		r.root.InsertBefore(item.Header, next)
		r.root.InsertBefore(item.Content, next)
	default:
		r.appendPair(item)
	}
	return nil
}

func (r *Renderer) UnmountNode(item *interfaces.Item) {
	if item == nil {
		return
	}
	detach(item.Header)
	detach(item.Content)
}

// AddPresentationClasses applies header and content classes, stamps the item id
// and wires the aria attributes between header and content.
func (r *Renderer) AddPresentationClasses(item *interfaces.Item) {
	if item == nil {
		return
	}
	addClass(item.Header, r.classes.Header)
	addClass(item.Content, r.classes.Content)
	items.SetAttr(item.Header, interfaces.ItemIDAttribute, strconv.Itoa(item.ID))
	items.SetAttr(item.Header, attrRole, "button")

	base := anchorBase(item)
	var created anchor
	headerID, ok := items.Attr(item.Header, attrID)
	if !ok || headerID == "" {
		headerID = base
		items.SetAttr(item.Header, attrID, headerID)
		created.header = true
	}
	contentID, ok := items.Attr(item.Content, attrID)
	if !ok || contentID == "" {
		contentID = base + "-panel"
		items.SetAttr(item.Content, attrID, contentID)
		created.content = true
	}
	items.SetAttr(item.Header, attrControls, contentID)
	items.SetAttr(item.Header, attrExpanded, strconv.FormatBool(r.IsOpen(item)))

	r.mu.Lock()
	r.anchors[item.ID] = created
	r.mu.Unlock()
}

// RemovePresentationClasses reverts AddPresentationClasses and SetOpen. The id
// stamp stays so a later scan reuses it.
func (r *Renderer) RemovePresentationClasses(item *interfaces.Item) {
	if item == nil {
		return
	}
	removeClass(item.Header, r.classes.Header)
	removeClass(item.Header, r.classes.Opened)
	removeClass(item.Content, r.classes.Content)
	items.RemoveAttr(item.Header, attrRole)
	items.RemoveAttr(item.Header, attrControls)
	items.RemoveAttr(item.Header, attrExpanded)

	r.mu.Lock()
	created := r.anchors[item.ID]
	delete(r.anchors, item.ID)
	r.mu.Unlock()
	if created.header {
		items.RemoveAttr(item.Header, attrID)
	}
	if created.content {
		items.RemoveAttr(item.Content, attrID)
	}
}

func (r *Renderer) SetOpen(item *interfaces.Item, open bool) {
	if item == nil {
		return
	}
	if open {
		addClass(item.Header, r.classes.Opened)
	} else {
		removeClass(item.Header, r.classes.Opened)
	}
	if _, ok := items.Attr(item.Header, attrExpanded); ok {
		items.SetAttr(item.Header, attrExpanded, strconv.FormatBool(open))
	}
}

func (r *Renderer) IsOpen(item *interfaces.Item) bool {
	if item == nil {
		return false
	}
	return hasClass(item.Header, r.classes.Opened)
}

func (r *Renderer) BindToggle(item *interfaces.Item, handler func()) {
	if item == nil || handler == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[item.ID] = handler
}

func (r *Renderer) UnbindToggle(item *interfaces.Item) {
	if item == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, item.ID)
}

// Click simulates activating the header of item id. It reports whether a handler
// was bound.
func (r *Renderer) Click(id int) bool {
	r.mu.Lock()
	handler := r.handlers[id]
	r.mu.Unlock()
	if handler == nil {
		return false
	}
	handler()
	return true
}

// Bound reports whether item id has a toggle handler.
func (r *Renderer) Bound(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.handlers[id]
	return ok
}

// Render writes the container markup to w.
func (r *Renderer) Render(w io.Writer) error {
	if r.root == nil {
		return validation.MissingArgument("element")
	}
	return html.Render(w, r.root)
}

func (r *Renderer) appendPair(item *interfaces.Item) {
	r.root.AppendChild(item.Header)
	r.root.AppendChild(item.Content)
}

func (r *Renderer) reference(placement interfaces.Placement) (*interfaces.Item, error) {
	ref := placement.Reference
	if ref == nil || ref.Header == nil || ref.Content == nil {
		return nil, validation.MissingArgument("reference")
	}
	if ref.Header.Parent != r.root || ref.Content.Parent != r.root {
		return nil, validation.NotFound("item", ref.ID)
	}
	return ref, nil
}

func anchorBase(item *interfaces.Item) string {
	text, err := slug.Normalize(textContent(item.Header))
	if err != nil || text == "" {
		return fmt.Sprintf("accordion-%d", item.ID)
	}
	return fmt.Sprintf("accordion-%d-%s", item.ID, text)
}

func textContent(node *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return strings.TrimSpace(sb.String())
}

func detach(node *html.Node) {
	if node != nil && node.Parent != nil {
		node.Parent.RemoveChild(node)
	}
}

func classList(node *html.Node) []string {
	value, _ := items.Attr(node, attrClass)
	return strings.Fields(value)
}

func hasClass(node *html.Node, class string) bool {
	if node == nil || class == "" {
		return false
	}
	return slices.Contains(classList(node), class)
}

func addClass(node *html.Node, class string) {
	if node == nil || class == "" || hasClass(node, class) {
		return
	}
	items.SetAttr(node, attrClass, strings.Join(append(classList(node), class), " "))
}

func removeClass(node *html.Node, class string) {
	if node == nil || class == "" {
		return
	}
	list := slices.DeleteFunc(classList(node), func(c string) bool { return c == class })
	if len(list) == 0 {
		items.RemoveAttr(node, attrClass)
		return
	}
	items.SetAttr(node, attrClass, strings.Join(list, " "))
}
