package storage

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewEntryRepository creates a repository for entry records.
func NewEntryRepository(db *bun.DB) repository.Repository[*EntryRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*EntryRecord]{
		NewRecord: func() *EntryRecord { return &EntryRecord{} },
		GetID: func(record *EntryRecord) uuid.UUID {
			return record.ID
		},
		SetID: func(record *EntryRecord, id uuid.UUID) {
			record.ID = id
		},
		GetIdentifier: func() string {
			return "key"
		},
		GetIdentifierValue: func(record *EntryRecord) string {
			return record.Key
		},
	})
}
