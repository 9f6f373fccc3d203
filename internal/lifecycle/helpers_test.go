package lifecycle_test

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-accordion/internal/dom"
	"github.com/goliatone/go-accordion/internal/lifecycle"
	"github.com/goliatone/go-accordion/internal/runtimeconfig"
	"github.com/goliatone/go-accordion/internal/transport"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

const threeItems = `<dl><dt>Zero</dt><dd>zero body</dd><dt>One</dt><dd>one body</dd><dt>Two</dt><dd>two body</dd></dl>`

func parseContainer(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<html><body>" + markup + "</body></html>"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var find func(*html.Node) *html.Node
	find = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && n.DataAtom == atom.Dl {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if found := find(c); found != nil {
				return found
			}
		}
		return nil
	}
	dl := find(doc)
	if dl == nil {
		t.Fatalf("no dl in %q", markup)
	}
	return dl
}

func entry(id int, header string) interfaces.Entry {
	return interfaces.Entry{ID: id, Header: header, Content: header + " body"}
}

func render(t *testing.T, node *html.Node) string {
	t.Helper()
	var sb strings.Builder
	if err := html.Render(&sb, node); err != nil {
		t.Fatalf("render: %v", err)
	}
	return sb.String()
}

// headerTexts lists the text of every <dt> in the container in document order.
func headerTexts(container *html.Node) []string {
	var out []string
	for child := container.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode || child.DataAtom != atom.Dt {
			continue
		}
		var sb strings.Builder
		for text := child.FirstChild; text != nil; text = text.NextSibling {
			if text.Type == html.TextNode {
				sb.WriteString(text.Data)
			}
		}
		out = append(out, sb.String())
	}
	return out
}

type recordedEvent struct {
	name    string
	payload any
}

type eventRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *eventRecorder) listen(t *testing.T, c *lifecycle.Controller, names ...string) {
	t.Helper()
	for _, name := range names {
		if _, err := c.On(name, func(payload any) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.events = append(r.events, recordedEvent{name: name, payload: payload})
		}); err != nil {
			t.Fatalf("subscribe %s: %v", name, err)
		}
	}
}

func (r *eventRecorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, event := range r.events {
		out = append(out, event.name)
	}
	return out
}

func (r *eventRecorder) last() recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return recordedEvent{}
	}
	return r.events[len(r.events)-1]
}

func (r *eventRecorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

var allEvents = []string{
	lifecycle.EventMountBefore,
	lifecycle.EventMountAfter,
	lifecycle.EventAjaxBefore,
	lifecycle.EventAjaxSuccess,
	lifecycle.EventOpenBefore,
	lifecycle.EventOpenAfter,
	lifecycle.EventCloseBefore,
	lifecycle.EventCloseAfter,
	lifecycle.EventAppend,
	lifecycle.EventPrepend,
	lifecycle.EventAppendBefore,
	lifecycle.EventAppendAfter,
	lifecycle.EventRemoveBefore,
	lifecycle.EventRemoveAfter,
	lifecycle.EventDestroy,
}

func staticAjax(entries []interfaces.Entry, err error) *runtimeconfig.AjaxConfig {
	return &runtimeconfig.AjaxConfig{
		URL:     "mem://entries",
		Fetcher: transport.FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
			if err != nil {
				return nil, err
			}
			return []byte("[]"), nil
		}),
		Shape: transport.ShaperFunc(func([]byte) ([]interfaces.Entry, error) {
			return entries, nil
		}),
	}
}

func mounted(t *testing.T, markup string, mutate func(*runtimeconfig.Config)) (*lifecycle.Controller, *html.Node) {
	t.Helper()
	container := parseContainer(t, markup)
	cfg := runtimeconfig.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	c, err := lifecycle.New(container, cfg)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	if err := c.Mount(context.Background()); err != nil {
		t.Fatalf("mount: %v", err)
	}
	return c, container
}

func openIDs(c *lifecycle.Controller) []int {
	var ids []int
	for _, item := range c.Items() {
		if c.IsOpen(item.ID) {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// recordingRenderer wraps the DOM renderer, logs every call and can fail
// MountNode for one id.
type recordingRenderer struct {
	*dom.Renderer
	calls    []string
	failID   int
	failWith error
}

func (r *recordingRenderer) MountNode(item *interfaces.Item, placement interfaces.Placement) error {
	r.calls = append(r.calls, "mount:"+strconv.Itoa(item.ID))
	if r.failWith != nil && item.ID == r.failID {
		return r.failWith
	}
	return r.Renderer.MountNode(item, placement)
}

func (r *recordingRenderer) UnmountNode(item *interfaces.Item) {
	r.calls = append(r.calls, "unmount:"+strconv.Itoa(item.ID))
	r.Renderer.UnmountNode(item)
}

