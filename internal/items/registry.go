// Package items holds the pure operations over the ordered item sequence. No
// function mutates the slice it receives; every result is a fresh slice so the
// caller can keep the previous sequence for rollback.
package items

import (
	"github.com/goliatone/go-accordion/internal/validation"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

// Append returns a new sequence with item at the end.
func Append(item *interfaces.Item, items []*interfaces.Item) []*interfaces.Item {
	out := make([]*interfaces.Item, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item)
}

// AppendAll returns a new sequence with batch appended in order.
func AppendAll(batch []*interfaces.Item, items []*interfaces.Item) []*interfaces.Item {
	out := make([]*interfaces.Item, 0, len(items)+len(batch))
	out = append(out, items...)
	return append(out, batch...)
}

// Prepend returns a new sequence with item at the start.
func Prepend(item *interfaces.Item, items []*interfaces.Item) []*interfaces.Item {
	out := make([]*interfaces.Item, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

// InsertBefore splices item immediately before the item identified by referenceID.
func InsertBefore(item *interfaces.Item, referenceID int, items []*interfaces.Item) ([]*interfaces.Item, error) {
	index := IndexOf(referenceID, items)
	if index < 0 {
		return nil, validation.NotFound("item", referenceID)
	}
	return splice(item, index, items), nil
}

// InsertAfter splices item immediately after the item identified by referenceID.
func InsertAfter(item *interfaces.Item, referenceID int, items []*interfaces.Item) ([]*interfaces.Item, error) {
	index := IndexOf(referenceID, items)
	if index < 0 {
		return nil, validation.NotFound("item", referenceID)
	}
	return splice(item, index+1, items), nil
}

// Remove returns a new sequence without the item identified by id. A missing id
// yields a same-length copy.
func Remove(id int, items []*interfaces.Item) []*interfaces.Item {
	out := make([]*interfaces.Item, 0, len(items))
	for _, item := range items {
		if item != nil && item.ID == id {
			continue
		}
		out = append(out, item)
	}
	return out
}

// FindByID returns the item identified by id, or nil.
func FindByID(id int, items []*interfaces.Item) *interfaces.Item {
	if index := IndexOf(id, items); index >= 0 {
		return items[index]
	}
	return nil
}

// ExistsID reports whether id is registered.
func ExistsID(id int, items []*interfaces.Item) bool {
	return IndexOf(id, items) >= 0
}

// IndexOf returns the position of id in items, or -1.
func IndexOf(id int, items []*interfaces.Item) int {
	for index, item := range items {
		if item != nil && item.ID == id {
			return index
		}
	}
	return -1
}

// IDs lists the ids in presentation order.
func IDs(items []*interfaces.Item) []int {
	out := make([]int, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, item.ID)
		}
	}
	return out
}

func splice(item *interfaces.Item, index int, items []*interfaces.Item) []*interfaces.Item {
	out := make([]*interfaces.Item, 0, len(items)+1)
	out = append(out, items[:index]...)
	out = append(out, item)
	return append(out, items[index:]...)
}
