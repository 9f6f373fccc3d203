package lifecycle

import (
	"github.com/goliatone/go-accordion/internal/items"
	"github.com/goliatone/go-accordion/internal/validation"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

// Enable lets toggle, open and close act on items.
func (c *Controller) Enable() {
	c.mu.Lock()
	c.enabled = true
	c.mu.Unlock()
	c.logger.Debug("lifecycle.enabled")
}

// Disable makes toggle, open and close silent no-ops.
func (c *Controller) Disable() {
	c.mu.Lock()
	c.enabled = false
	c.mu.Unlock()
	c.logger.Debug("lifecycle.disabled")
}

// IsOpen reports the open state of item id. Unknown ids are closed.
func (c *Controller) IsOpen(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	item := items.FindByID(id, c.items)
	return item != nil && item.Open
}

// Toggle opens a closed item and closes an open one.
func (c *Controller) Toggle(id int) error {
	item, ok, err := c.actionTarget(id)
	if err != nil || !ok {
		return err
	}
	c.mu.Lock()
	open := item.Open
	c.mu.Unlock()
	if open {
		return c.Close(id)
	}
	return c.Open(id)
}

// Open opens item id. Unless multiple items may be open, every other item is
// closed first, even when id is already open.
func (c *Controller) Open(id int) error {
	item, ok, err := c.actionTarget(id)
	if err != nil || !ok {
		return err
	}

	c.emit(EventOpenBefore, item)

	c.mu.Lock()
	if !items.ExistsID(id, c.items) {
		c.mu.Unlock()
		return validation.NotFound("item", id)
	}
	if !c.cfg.Multiple {
		for _, other := range c.items {
			if other.Open {
				c.setOpenLocked(other, false)
			}
		}
	}
	c.setOpenLocked(item, true)
	c.mu.Unlock()

	c.itemLogger(item, "").Debug("lifecycle.item.opened")
	c.emit(EventOpenAfter, item)
	return nil
}

// Close closes item id.
func (c *Controller) Close(id int) error {
	item, ok, err := c.actionTarget(id)
	if err != nil || !ok {
		return err
	}

	c.emit(EventCloseBefore, item)

	c.mu.Lock()
	if !items.ExistsID(id, c.items) {
		c.mu.Unlock()
		return validation.NotFound("item", id)
	}
	c.setOpenLocked(item, false)
	c.mu.Unlock()

	c.itemLogger(item, "").Debug("lifecycle.item.closed")
	c.emit(EventCloseAfter, item)
	return nil
}

// actionTarget resolves the item for toggle, open and close. ok is false when
// the controller is disabled and the call must be ignored.
func (c *Controller) actionTarget(id int) (*interfaces.Item, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return nil, false, nil
	}
	if err := validation.ValidateID(id); err != nil {
		return nil, false, err
	}
	item := items.FindByID(id, c.items)
	if item == nil {
		return nil, false, validation.NotFound("item", id)
	}
	return item, true, nil
}

func (c *Controller) setOpenLocked(item *interfaces.Item, open bool) {
	item.Open = open
	c.renderer.SetOpen(item, open)
}
