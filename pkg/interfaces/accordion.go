package interfaces

import "golang.org/x/net/html"

// ItemIDAttribute is stamped on header nodes so a later markup scan reuses the id.
const ItemIDAttribute = "data-accordion-id"

// Entry is the unrendered {id, header, content} record used to synthesize items.
// Header and Content hold inner HTML.
type Entry struct {
	ID      int    `json:"id" yaml:"id"`
	Header  string `json:"header" yaml:"header"`
	Content string `json:"content" yaml:"content"`
}

// ItemSource records which merge step or operation produced an item.
type ItemSource string

const (
	ItemSourceMarkup   ItemSource = "markup"
	ItemSourceEntries  ItemSource = "entries"
	ItemSourceAjax     ItemSource = "ajax"
	ItemSourceInserted ItemSource = "inserted"
)

// Synthesized reports whether the item nodes were created from an entry rather
// than discovered in the host container.
func (s ItemSource) Synthesized() bool {
	return s != ItemSourceMarkup && s != ""
}

// Item binds an id to the header (<dt>) and content (<dd>) nodes rendered in the
// host container. Open is the source of truth for the disclosure state; renderers
// project it onto presentation classes.
type Item struct {
	ID      int
	Header  *html.Node
	Content *html.Node
	Open    bool
	Source  ItemSource
}
