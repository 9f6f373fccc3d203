package lifecycle

import (
	"github.com/goliatone/go-accordion/internal/items"
	"github.com/goliatone/go-accordion/internal/validation"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

// Append adds an item synthesized from entry at the end of the accordion.
func (c *Controller) Append(entry interfaces.Entry) (*interfaces.Item, error) {
	return c.insert(entry, interfaces.PlaceAppend, 0, EventAppend)
}

// Prepend adds an item synthesized from entry at the start of the accordion.
func (c *Controller) Prepend(entry interfaces.Entry) (*interfaces.Item, error) {
	return c.insert(entry, interfaces.PlacePrepend, 0, EventPrepend)
}

// AppendBefore inserts an item synthesized from entry right before item refID.
func (c *Controller) AppendBefore(entry interfaces.Entry, refID int) (*interfaces.Item, error) {
	return c.insert(entry, interfaces.PlaceBefore, refID, EventAppendBefore)
}

// AppendAfter inserts an item synthesized from entry right after item refID.
func (c *Controller) AppendAfter(entry interfaces.Entry, refID int) (*interfaces.Item, error) {
	return c.insert(entry, interfaces.PlaceAfter, refID, EventAppendAfter)
}

func (c *Controller) insert(entry interfaces.Entry, mode interfaces.PlacementMode, refID int, event string) (*interfaces.Item, error) {
	c.mu.Lock()
	item, err := c.insertLocked(entry, mode, refID)
	c.mu.Unlock()
	if err != nil {
		c.logger.Warn("lifecycle.insert_failed", "mode", string(mode), "item_id", entry.ID, "error", err)
		return nil, err
	}

	c.itemLogger(item, "").Info("lifecycle.item.inserted", "mode", string(mode))
	c.emit(event, item)
	return item, nil
}

func (c *Controller) insertLocked(entry interfaces.Entry, mode interfaces.PlacementMode, refID int) (*interfaces.Item, error) {
	// A later markup scan would pick the inserted nodes up a second time.
	if c.state == StateUnmounted || (c.state == StateMounting && !c.localMerged) {
		return nil, validation.WrongType("state", string(StateMounted)).
			WithMetadata(map[string]any{"state": string(c.state)})
	}
	if err := validation.ValidateEntry(entry); err != nil {
		return nil, err
	}
	if err := validation.ValidateIDAgainstRegistry(entry.ID, c.items); err != nil {
		return nil, err
	}

	var ref *interfaces.Item
	if mode == interfaces.PlaceBefore || mode == interfaces.PlaceAfter {
		if err := validation.ValidateID(refID); err != nil {
			return nil, err
		}
		ref = items.FindByID(refID, c.items)
		if ref == nil {
			return nil, validation.NotFound("item", refID)
		}
	}

	item, err := items.NewItem(entry, interfaces.ItemSourceInserted)
	if err != nil {
		return nil, err
	}

	var next []*interfaces.Item
	switch mode {
	case interfaces.PlacePrepend:
		next = items.Prepend(item, c.items)
	case interfaces.PlaceBefore:
		next, err = items.InsertBefore(item, refID, c.items)
	case interfaces.PlaceAfter:
		next, err = items.InsertAfter(item, refID, c.items)
	default:
		next = items.Append(item, c.items)
	}
	if err != nil {
		return nil, err
	}

	if err := c.bindLocked(item, interfaces.Placement{Mode: mode, Reference: ref}, false); err != nil {
		c.unbindLocked(item, true)
		return nil, err
	}
	c.items = next
	return item, nil
}

// Remove unbinds and detaches item id and drops it from the registry.
// remove.before carries the item, remove.after only its id.
func (c *Controller) Remove(id int) error {
	if err := validation.ValidateID(id); err != nil {
		return err
	}
	c.mu.Lock()
	item := items.FindByID(id, c.items)
	c.mu.Unlock()
	if item == nil {
		return validation.NotFound("item", id)
	}

	c.emit(EventRemoveBefore, item)

	c.mu.Lock()
	if items.FindByID(id, c.items) != item {
		c.mu.Unlock()
		return validation.NotFound("item", id)
	}
	c.unbindLocked(item, true)
	c.items = items.Remove(id, c.items)
	c.mu.Unlock()

	c.itemLogger(item, "").Info("lifecycle.item.removed")
	c.emit(EventRemoveAfter, id)
	return nil
}
