package interfaces

// PlacementMode selects where MountNode attaches an item relative to its siblings.
type PlacementMode string

const (
	PlaceAppend  PlacementMode = "append"
	PlacePrepend PlacementMode = "prepend"
	PlaceBefore  PlacementMode = "before"
	PlaceAfter   PlacementMode = "after"
)

// Placement describes where a node pair should be attached. Reference is required
// for PlaceBefore and PlaceAfter.
type Placement struct {
	Mode      PlacementMode
	Reference *Item
}

// Renderer attaches item nodes to the host container and projects item state onto
// presentation classes. The lifecycle controller calls renderer operations in the
// same relative order it mutates the registry.
type Renderer interface {
	// MountRoot applies the root presentation class to the container.
	MountRoot()
	// UnmountRoot strips the root presentation class.
	UnmountRoot()
	// MountNode attaches the item nodes. Nodes already attached to the container are
	// left in place.
	MountNode(item *Item, placement Placement) error
	// UnmountNode detaches the item nodes from the container.
	UnmountNode(item *Item)
	AddPresentationClasses(item *Item)
	RemovePresentationClasses(item *Item)
	// SetOpen projects the open state onto the header node.
	SetOpen(item *Item, open bool)
	// IsOpen reads the projected state back from the rendered nodes.
	IsOpen(item *Item) bool
	BindToggle(item *Item, handler func())
	UnbindToggle(item *Item)
}

// Classes names the presentation classes applied by a renderer.
type Classes struct {
	Root    string `json:"root" yaml:"root"`
	Header  string `json:"header" yaml:"header"`
	Opened  string `json:"opened" yaml:"opened"`
	Content string `json:"content" yaml:"content"`
}
