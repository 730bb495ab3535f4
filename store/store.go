package store

import (
	"context"
	"errors"
)

// ErrNotFound reports that no entity exists under the requested keys.
var ErrNotFound = errors.New("entity not found")

// Entity is one record in a key-partitioned table: a partition key, a
// row key unique within the table, and a flat bag of string properties.
type Entity struct {
	PartitionKey string
	RowKey       string
	Properties   map[string]string
}

// TableStore is the contract the services require of the underlying
// key-partitioned record store. One handle serves one logical table;
// handles are constructed at startup and injected.
type TableStore interface {
	// Get returns the entity under (partitionKey, rowKey) or ErrNotFound.
	Get(ctx context.Context, partitionKey, rowKey string) (*Entity, error)
	// List returns every entity in the table.
	List(ctx context.Context) ([]*Entity, error)
	// ListByRowKey returns every entity whose row key equals rowKey,
	// regardless of partition.
	ListByRowKey(ctx context.Context, rowKey string) ([]*Entity, error)
	// Upsert writes the entity with replace semantics: created if absent,
	// fully overwritten if present.
	Upsert(ctx context.Context, entity *Entity) error
	// Delete removes the entity unconditionally. Deleting an absent
	// entity is not an error.
	Delete(ctx context.Context, partitionKey, rowKey string) error
}
