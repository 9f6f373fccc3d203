package lifecycle

import (
	"context"

	"github.com/goliatone/go-accordion/internal/items"
	"github.com/goliatone/go-accordion/internal/validation"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

// Mount builds the registry from markup, then the static entries, then the remote
// entries, rendering and binding each batch before the next one starts. On
// failure the items merged so far stay mounted, the controller stays disabled and
// mount.after is not emitted.
func (c *Controller) Mount(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	if c.state != StateUnmounted {
		state := c.state
		c.mu.Unlock()
		return validation.WrongType("state", string(StateUnmounted)).
			WithMetadata(map[string]any{"state": string(state)})
	}
	c.state = StateMounting
	c.localMerged = false
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	c.logger.Debug("lifecycle.mount.start")
	c.emit(EventMountBefore, nil)

	c.mu.Lock()
	err := c.mountLocalLocked(gen)
	if err == nil {
		c.localMerged = true
	}
	c.mu.Unlock()
	if err != nil {
		return c.failMount(gen, err)
	}

	if c.source != nil {
		c.emit(EventAjaxBefore, nil)
		entries, err := c.fetchEntries(ctx)
		if err != nil {
			return c.failMount(gen, err)
		}

		c.mu.Lock()
		err = c.mergeAjaxLocked(gen, entries)
		c.mu.Unlock()
		if err != nil {
			return c.failMount(gen, err)
		}
		c.emit(EventAjaxSuccess, nil)
	}

	c.mu.Lock()
	if err := c.checkGenerationLocked(gen); err != nil {
		c.mu.Unlock()
		return err
	}
	c.state = StateMounted
	c.enabled = true
	count := len(c.items)
	c.mu.Unlock()

	c.logger.Debug("lifecycle.mount.complete", "count", count)
	c.emit(EventMountAfter, nil)
	return nil
}

func (c *Controller) mountLocalLocked(gen uint64) error {
	if err := c.checkGenerationLocked(gen); err != nil {
		return err
	}
	c.renderer.MountRoot()

	markup, err := items.CreateFromMarkup(c.container, c.counter)
	if err != nil {
		return err
	}
	if err := c.mergeBatchLocked(markup, batchMarkup); err != nil {
		return err
	}

	if len(c.cfg.Entries) == 0 {
		return nil
	}
	if err := validation.ValidateEntriesAgainstRegistry(c.cfg.Entries, c.items); err != nil {
		return err
	}
	synthesized, err := items.CreateFromEntries(c.cfg.Entries, interfaces.ItemSourceEntries)
	if err != nil {
		return err
	}
	return c.mergeBatchLocked(synthesized, batchEntries)
}

func (c *Controller) fetchEntries(ctx context.Context) ([]interfaces.Entry, error) {
	raw, err := c.source.Fetcher.Fetch(ctx, c.source.URL)
	if err != nil {
		c.logger.Warn("lifecycle.ajax.fetch_failed", "url", c.source.URL, "error", err)
		return nil, err
	}
	entries, err := c.source.Shaper.Shape(raw)
	if err != nil {
		c.logger.Warn("lifecycle.ajax.shape_failed", "url", c.source.URL, "error", err)
		return nil, err
	}
	return entries, nil
}

func (c *Controller) mergeAjaxLocked(gen uint64, entries []interfaces.Entry) error {
	if err := c.checkGenerationLocked(gen); err != nil {
		return err
	}
	if err := validation.ValidateEntries(entries); err != nil {
		return err
	}
	if err := validation.ValidateEntriesAgainstRegistry(entries, c.items); err != nil {
		return err
	}
	batch, err := items.CreateFromEntries(entries, interfaces.ItemSourceAjax)
	if err != nil {
		return err
	}
	return c.mergeBatchLocked(batch, batchAjax)
}

// mergeBatchLocked renders and binds batch, then appends it to the registry. A
// render failure unwinds the items of the batch already rendered, detaching only
// the synthesized ones.
func (c *Controller) mergeBatchLocked(batch []*interfaces.Item, name string) error {
	rendered := make([]*interfaces.Item, 0, len(batch))
	for _, item := range batch {
		if err := c.bindLocked(item, interfaces.Placement{Mode: interfaces.PlaceAppend}, true); err != nil {
			c.itemLogger(item, name).Warn("lifecycle.batch.render_failed", "error", err)
			for _, done := range rendered {
				c.unbindLocked(done, done.Source.Synthesized())
			}
			return err
		}
		rendered = append(rendered, item)
	}
	c.items = items.AppendAll(batch, c.items)
	c.logger.Info("batch.merged", "batch", name, "count", len(batch), "ids", items.IDs(batch))
	return nil
}

// bindLocked attaches the item nodes, applies the presentation classes and wires
// the toggle handler. initial marks the mount pass, the only time openAt applies.
func (c *Controller) bindLocked(item *interfaces.Item, placement interfaces.Placement, initial bool) error {
	if err := c.renderer.MountNode(item, placement); err != nil {
		return err
	}
	c.renderer.AddPresentationClasses(item)

	id := item.ID
	c.renderer.BindToggle(item, func() {
		if err := c.Toggle(id); err != nil {
			c.logger.Warn("lifecycle.toggle_failed", "item_id", id, "error", err)
		}
	})

	if initial && c.cfg.OpenAt >= 0 && id == c.cfg.OpenAt {
		item.Open = true
		c.renderer.SetOpen(item, true)
		c.itemLogger(item, "").Debug("lifecycle.item.opened_at")
	}
	return nil
}

// unbindLocked reverts bindLocked. detach removes the nodes from the container.
func (c *Controller) unbindLocked(item *interfaces.Item, detach bool) {
	c.renderer.UnbindToggle(item)
	c.renderer.RemovePresentationClasses(item)
	item.Open = false
	if detach {
		c.renderer.UnmountNode(item)
	}
}

func (c *Controller) failMount(gen uint64, err error) error {
	c.mu.Lock()
	if c.generation == gen {
		c.state = StateMounted
		c.enabled = false
	}
	c.mu.Unlock()
	c.logger.Error("lifecycle.mount.failed", "error", err, "code", string(validation.KindOf(err)))
	return err
}

func (c *Controller) checkGenerationLocked(gen uint64) error {
	if c.generation != gen {
		return validation.WrongType("state", string(StateMounting)).
			WithMetadata(map[string]any{"state": string(c.state)})
	}
	return nil
}

// Unmount unbinds every item, strips the presentation classes and detaches the
// nodes synthesized from entries. Markup nodes stay in the container so a later
// Mount discovers them again. Unmounting an unmounted controller is a no-op.
func (c *Controller) Unmount() {
	c.mu.Lock()
	if c.state == StateUnmounted {
		c.mu.Unlock()
		return
	}
	for _, item := range c.items {
		c.unbindLocked(item, item.Source.Synthesized())
	}
	c.renderer.UnmountRoot()
	count := len(c.items)
	c.items = nil
	c.enabled = false
	c.counter.Reset()
	c.state = StateUnmounted
	c.localMerged = false
	c.generation++
	c.mu.Unlock()

	c.logger.Debug("lifecycle.unmounted", "count", count)
	c.emit(EventDestroy, nil)
}
