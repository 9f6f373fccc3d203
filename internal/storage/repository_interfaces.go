package storage

import (
	"context"

	"github.com/google/uuid"
)

// EntryRepository exposes persistence operations for entry records.
type EntryRepository interface {
	Create(ctx context.Context, record *EntryRecord) (*EntryRecord, error)
	Update(ctx context.Context, record *EntryRecord) (*EntryRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*EntryRecord, error)
	GetByKey(ctx context.Context, key string) (*EntryRecord, error)
	ListCollection(ctx context.Context, collection string) ([]*EntryRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
