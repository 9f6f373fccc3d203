package storage

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-accordion/internal/identity"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

// EntryRecord persists one accordion entry within a named collection.
type EntryRecord struct {
	bun.BaseModel `bun:"table:accordion_entries,alias:ae"`

	ID         uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Key        string    `bun:"key,notnull,unique" json:"key"`
	Collection string    `bun:"collection,notnull" json:"collection"`
	EntryID    int       `bun:"entry_id,notnull" json:"entry_id"`
	Header     string    `bun:"header,notnull" json:"header"`
	Content    string    `bun:"content,notnull" json:"content"`
	Position   int       `bun:"position,notnull,default:0" json:"position"`
	CreatedAt  time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// NormalizeCollection trims and lowercases collection names.
func NormalizeCollection(collection string) string {
	return strings.ToLower(strings.TrimSpace(collection))
}

// RecordKey is the unique identifier of an entry within its collection.
func RecordKey(collection string, entryID int) string {
	return NormalizeCollection(collection) + ":" + strconv.Itoa(entryID)
}

func newRecord(collection string, position int, entry interfaces.Entry, now time.Time) *EntryRecord {
	collection = NormalizeCollection(collection)
	return &EntryRecord{
		ID:         identity.EntryUUID(collection, entry.ID),
		Key:        RecordKey(collection, entry.ID),
		Collection: collection,
		EntryID:    entry.ID,
		Header:     entry.Header,
		Content:    entry.Content,
		Position:   position,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Entry converts the record back into an entry.
func (r *EntryRecord) Entry() interfaces.Entry {
	return interfaces.Entry{ID: r.EntryID, Header: r.Header, Content: r.Content}
}

func cloneRecord(record *EntryRecord) *EntryRecord {
	if record == nil {
		return nil
	}
	cloned := *record
	return &cloned
}
