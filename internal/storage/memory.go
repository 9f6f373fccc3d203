package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*EntryRecord
	byKey map[string]uuid.UUID
}

// NewMemoryRepository constructs an in-memory entry repository.
func NewMemoryRepository() EntryRepository {
	return &memoryRepository{
		byID:  make(map[uuid.UUID]*EntryRecord),
		byKey: make(map[string]uuid.UUID),
	}
}

func (m *memoryRepository) Create(_ context.Context, record *EntryRecord) (*EntryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneRecord(record)
	m.byID[cloned.ID] = cloned
	m.byKey[cloned.Key] = cloned.ID
	return cloneRecord(cloned), nil
}

func (m *memoryRepository) Update(_ context.Context, record *EntryRecord) (*EntryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[record.ID]
	if !ok {
		return nil, &NotFoundError{Key: record.ID.String()}
	}
	cloned := cloneRecord(record)
	cloned.CreatedAt = existing.CreatedAt
	m.byID[cloned.ID] = cloned
	if existing.Key != cloned.Key {
		delete(m.byKey, existing.Key)
	}
	m.byKey[cloned.Key] = cloned.ID
	return cloneRecord(cloned), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*EntryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Key: id.String()}
	}
	return cloneRecord(record), nil
}

func (m *memoryRepository) GetByKey(_ context.Context, key string) (*EntryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byKey[key]
	if !ok {
		return nil, &NotFoundError{Key: key}
	}
	return cloneRecord(m.byID[id]), nil
}

func (m *memoryRepository) ListCollection(_ context.Context, collection string) ([]*EntryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	collection = NormalizeCollection(collection)
	var records []*EntryRecord
	for _, record := range m.byID {
		if record.Collection == collection {
			records = append(records, cloneRecord(record))
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Position != records[j].Position {
			return records[i].Position < records[j].Position
		}
		return records[i].EntryID < records[j].EntryID
	})
	return records, nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Key: id.String()}
	}
	delete(m.byKey, record.Key)
	delete(m.byID, id)
	return nil
}
