package dom

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-accordion/internal/items"
	"github.com/goliatone/go-accordion/internal/validation"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

var testClasses = interfaces.Classes{
	Root:    "jaccordion",
	Header:  "jaccordion__header",
	Opened:  "jaccordion__header--opened",
	Content: "jaccordion__content",
}

func newContainer() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "dl", DataAtom: atom.Dl}
}

func newItem(t *testing.T, id int, header string) *interfaces.Item {
	t.Helper()
	item, err := items.NewItem(interfaces.Entry{ID: id, Header: header, Content: header + " body"}, interfaces.ItemSourceInserted)
	if err != nil {
		t.Fatalf("new item: %v", err)
	}
	return item
}

func childIDs(root *html.Node) []string {
	var out []string
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.DataAtom == atom.Dt {
			id, _ := items.Attr(c, interfaces.ItemIDAttribute)
			out = append(out, "dt"+id)
			continue
		}
		out = append(out, c.Data)
	}
	return out
}

func TestMountNodePlacements(t *testing.T) {
	root := newContainer()
	r := New(root, testClasses)

	a := newItem(t, 1, "A")
	b := newItem(t, 2, "B")
	c := newItem(t, 3, "C")
	d := newItem(t, 4, "D")
	e := newItem(t, 5, "E")

	steps := []struct {
		item      *interfaces.Item
		placement interfaces.Placement
	}{
		{a, interfaces.Placement{Mode: interfaces.PlaceAppend}},
		{b, interfaces.Placement{Mode: interfaces.PlacePrepend}},
		{c, interfaces.Placement{Mode: interfaces.PlaceAfter, Reference: b}},
		{d, interfaces.Placement{Mode: interfaces.PlaceBefore, Reference: b}},
		{e, interfaces.Placement{Mode: interfaces.PlaceAfter, Reference: a}},
	}
	for _, step := range steps {
		if err := r.MountNode(step.item, step.placement); err != nil {
			t.Fatalf("mount %d: %v", step.item.ID, err)
		}
	}

	want := []string{"dt4", "dd", "dt2", "dd", "dt3", "dd", "dt1", "dd", "dt5", "dd"}
	if got := childIDs(root); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMountNodeLeavesAttachedNodesInPlace(t *testing.T) {
	root := newContainer()
	r := New(root, testClasses)
	a := newItem(t, 1, "A")
	b := newItem(t, 2, "B")
	_ = r.MountNode(a, interfaces.Placement{Mode: interfaces.PlaceAppend})
	_ = r.MountNode(b, interfaces.Placement{Mode: interfaces.PlaceAppend})

	if err := r.MountNode(a, interfaces.Placement{Mode: interfaces.PlaceAppend}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := childIDs(root); !slices.Equal(got, []string{"dt1", "dd", "dt2", "dd"}) {
		t.Fatalf("expected order untouched, got %v", got)
	}
}

func TestMountNodeRejectsDetachedReference(t *testing.T) {
	r := New(newContainer(), testClasses)
	ref := newItem(t, 1, "A")
	err := r.MountNode(newItem(t, 2, "B"), interfaces.Placement{Mode: interfaces.PlaceAfter, Reference: ref})
	if !validation.Is(err, validation.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	err = r.MountNode(newItem(t, 3, "C"), interfaces.Placement{Mode: interfaces.PlaceBefore})
	if !validation.Is(err, validation.KindMissingArgument) {
		t.Fatalf("expected missing argument, got %v", err)
	}
}

func TestUnmountNodeDetaches(t *testing.T) {
	root := newContainer()
	r := New(root, testClasses)
	a := newItem(t, 1, "A")
	_ = r.MountNode(a, interfaces.Placement{})
	r.UnmountNode(a)
	if root.FirstChild != nil || a.Header.Parent != nil {
		t.Fatal("expected nodes to be detached")
	}
}

func TestPresentationClassesAndOpenProjection(t *testing.T) {
	root := newContainer()
	r := New(root, testClasses)
	item := newItem(t, 7, "Shipping Info")
	items.SetAttr(item.Header, "class", "custom")

	r.MountRoot()
	r.AddPresentationClasses(item)

	if !hasClass(root, "jaccordion") {
		t.Fatal("expected root class")
	}
	if got := classList(item.Header); !slices.Equal(got, []string{"custom", "jaccordion__header"}) {
		t.Fatalf("unexpected header classes %v", got)
	}
	if !hasClass(item.Content, "jaccordion__content") {
		t.Fatal("expected content class")
	}
	headerID, _ := items.Attr(item.Header, "id")
	if !strings.HasPrefix(headerID, "accordion-7") {
		t.Fatalf("unexpected header anchor %q", headerID)
	}
	controls, _ := items.Attr(item.Header, "aria-controls")
	contentID, _ := items.Attr(item.Content, "id")
	if controls == "" || controls != contentID {
		t.Fatalf("expected aria-controls %q to match content id %q", controls, contentID)
	}

	r.SetOpen(item, true)
	if !r.IsOpen(item) {
		t.Fatal("expected opened projection")
	}
	if expanded, _ := items.Attr(item.Header, "aria-expanded"); expanded != "true" {
		t.Fatalf("expected aria-expanded true, got %q", expanded)
	}
	r.SetOpen(item, false)
	if r.IsOpen(item) {
		t.Fatal("expected closed projection")
	}

	r.SetOpen(item, true)
	r.RemovePresentationClasses(item)
	r.UnmountRoot()
	if got := classList(item.Header); !slices.Equal(got, []string{"custom"}) {
		t.Fatalf("expected only custom class to remain, got %v", got)
	}
	if _, ok := items.Attr(item.Header, "id"); ok {
		t.Fatal("expected generated anchor to be removed")
	}
	if _, ok := items.Attr(item.Header, "aria-controls"); ok {
		t.Fatal("expected aria wiring to be removed")
	}
	if _, ok := items.Attr(root, "class"); ok {
		t.Fatal("expected root class attribute to be dropped")
	}
	if stamp, _ := items.Attr(item.Header, interfaces.ItemIDAttribute); stamp != "7" {
		t.Fatalf("expected id stamp to survive, got %q", stamp)
	}
}

func TestPresentationKeepsAuthorIDs(t *testing.T) {
	r := New(newContainer(), testClasses)
	item := newItem(t, 1, "A")
	items.SetAttr(item.Header, "id", "faq")
	r.AddPresentationClasses(item)
	r.RemovePresentationClasses(item)
	if id, _ := items.Attr(item.Header, "id"); id != "faq" {
		t.Fatalf("expected author id to survive, got %q", id)
	}
}

func TestBindAndClick(t *testing.T) {
	r := New(newContainer(), testClasses)
	item := newItem(t, 3, "A")
	clicks := 0
	r.BindToggle(item, func() { clicks++ })

	if !r.Click(3) || clicks != 1 {
		t.Fatalf("expected bound handler to run once, got %d", clicks)
	}
	if !r.Bound(3) {
		t.Fatal("expected handler to be bound")
	}
	r.UnbindToggle(item)
	if r.Click(3) || clicks != 1 {
		t.Fatal("expected unbound click to be ignored")
	}
}

func TestRender(t *testing.T) {
	root := newContainer()
	r := New(root, interfaces.Classes{Root: "acc"})
	r.MountRoot()
	_ = r.MountNode(newItem(t, 0, "A"), interfaces.Placement{})

	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<dl class="acc"><dt data-accordion-id="0">A</dt><dd>A body</dd></dl>`
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}
