package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"hymnal/model"
	"hymnal/store"

	"github.com/google/uuid"
)

// CatalogUpsert carries the writable fields of a catalog entry. An empty
// ID means "create with a generated id".
type CatalogUpsert struct {
	ID      string
	Title   string
	Author  string
	Aliases []string
	Notes   string
}

// CatalogRepository defines the interface for catalog entry operations.
type CatalogRepository interface {
	// List returns all catalog entries sorted by title ascending.
	List(ctx context.Context) ([]*model.CatalogEntry, error)
	// Upsert writes an entry with replace semantics. When an id is given
	// the prior entry's createdAt is preserved; a missing prior entry is
	// tolerated and the write proceeds as a creation.
	Upsert(ctx context.Context, input CatalogUpsert) (*model.CatalogEntry, error)
	// Delete removes an entry by id. Absent entries are a no-op.
	Delete(ctx context.Context, id string) error
}

// tableCatalogRepository implements CatalogRepository over a TableStore.
type tableCatalogRepository struct {
	ts store.TableStore
}

// NewCatalogRepository creates a CatalogRepository backed by the given
// table store.
func NewCatalogRepository(ts store.TableStore) CatalogRepository {
	return &tableCatalogRepository{ts: ts}
}

func (r *tableCatalogRepository) List(ctx context.Context) ([]*model.CatalogEntry, error) {
	entities, err := r.ts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog entries: %w", err)
	}

	entries := make([]*model.CatalogEntry, 0, len(entities))
	for _, entity := range entities {
		// The catalog lives under one fixed partition; skip anything else.
		if entity.PartitionKey != DefaultPartition {
			continue
		}
		entry, err := model.DecodeCatalogEntry(entity)
		if err != nil {
			return nil, fmt.Errorf("failed to decode catalog entry: %w", err)
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Title < entries[j].Title
	})
	return entries, nil
}

func (r *tableCatalogRepository) Upsert(ctx context.Context, input CatalogUpsert) (*model.CatalogEntry, error) {
	title := strings.TrimSpace(input.Title)
	author := strings.TrimSpace(input.Author)
	if title == "" || author == "" {
		return nil, fmt.Errorf("%w: title and author are required", ErrValidation)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	createdAt := now

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = uuid.NewString()
	} else {
		existing, err := r.ts.Get(ctx, DefaultPartition, id)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			// A real storage fault must not silently reset createdAt.
			return nil, fmt.Errorf("failed to read catalog entry %s: %w", id, err)
		}
		if err == nil {
			if prior := existing.Properties["createdAt"]; prior != "" {
				createdAt = prior
			}
		}
	}

	entity := &store.Entity{
		PartitionKey: DefaultPartition,
		RowKey:       id,
		Properties: map[string]string{
			"title":     title,
			"author":    author,
			"aliases":   model.JoinAliases(input.Aliases),
			"notes":     input.Notes,
			"createdAt": createdAt,
			"updatedAt": now,
		},
	}
	if err := r.ts.Upsert(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to upsert catalog entry %s: %w", id, err)
	}
	return model.DecodeCatalogEntry(entity)
}

func (r *tableCatalogRepository) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}

	err := r.ts.Delete(ctx, DefaultPartition, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete catalog entry %s: %w", id, err)
	}
	return nil
}
