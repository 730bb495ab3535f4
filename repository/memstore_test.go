package repository

import (
	"context"
	"sort"

	"hymnal/store"
)

// memStore is an in-memory TableStore used by the repository tests.
type memStore struct {
	entities map[string]*store.Entity
	getErr   error // injected fault for Get
}

func newMemStore() *memStore {
	return &memStore{entities: make(map[string]*store.Entity)}
}

func memKey(partitionKey, rowKey string) string {
	return partitionKey + "\x00" + rowKey
}

func cloneEntity(e *store.Entity) *store.Entity {
	props := make(map[string]string, len(e.Properties))
	for k, v := range e.Properties {
		props[k] = v
	}
	return &store.Entity{PartitionKey: e.PartitionKey, RowKey: e.RowKey, Properties: props}
}

func (m *memStore) Get(ctx context.Context, partitionKey, rowKey string) (*store.Entity, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	entity, ok := m.entities[memKey(partitionKey, rowKey)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneEntity(entity), nil
}

func (m *memStore) List(ctx context.Context) ([]*store.Entity, error) {
	keys := make([]string, 0, len(m.entities))
	for k := range m.entities {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*store.Entity, 0, len(keys))
	for _, k := range keys {
		out = append(out, cloneEntity(m.entities[k]))
	}
	return out, nil
}

func (m *memStore) ListByRowKey(ctx context.Context, rowKey string) ([]*store.Entity, error) {
	var out []*store.Entity
	for _, entity := range m.entities {
		if entity.RowKey == rowKey {
			out = append(out, cloneEntity(entity))
		}
	}
	return out, nil
}

func (m *memStore) Upsert(ctx context.Context, entity *store.Entity) error {
	m.entities[memKey(entity.PartitionKey, entity.RowKey)] = cloneEntity(entity)
	return nil
}

func (m *memStore) Delete(ctx context.Context, partitionKey, rowKey string) error {
	delete(m.entities, memKey(partitionKey, rowKey))
	return nil
}
