package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"hymnal/model"
	"hymnal/store"
)

// ErrValidation reports a missing or empty required field. Handlers
// translate it to a 400 response.
var ErrValidation = errors.New("validation failed")

// DefaultPartition is the partition new service records are written
// under. Historical data may live under other partitions, which is why
// updates and deletes resolve the partition by row key first.
const DefaultPartition = "song"

// SongRecordRepository defines the interface for service record operations.
type SongRecordRepository interface {
	// List returns all service records, most recent row key first.
	List(ctx context.Context) ([]*model.ServiceRecord, error)
	// Create upserts a record under row key = trimmed date.
	Create(ctx context.Context, date string, songs []string) (*model.ServiceRecord, error)
	// Update rewrites the record found by row key = date. The row key is
	// never changed; newDate, when non-empty, replaces only the stored
	// date field. A missing record is written fresh under the default
	// partition, so an update can create.
	Update(ctx context.Context, date string, songs []string, newDate string) (*model.ServiceRecord, error)
	// Delete removes the record by row key. Absent records are a no-op.
	Delete(ctx context.Context, date string) error
}

// tableSongRepository implements SongRecordRepository over a TableStore.
type tableSongRepository struct {
	ts store.TableStore
}

// NewSongRecordRepository creates a SongRecordRepository backed by the
// given table store.
func NewSongRecordRepository(ts store.TableStore) SongRecordRepository {
	return &tableSongRepository{ts: ts}
}

func (r *tableSongRepository) List(ctx context.Context) ([]*model.ServiceRecord, error) {
	entities, err := r.ts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list service records: %w", err)
	}

	records := make([]*model.ServiceRecord, 0, len(entities))
	for _, entity := range entities {
		record, err := model.DecodeServiceRecord(entity)
		if err != nil {
			return nil, fmt.Errorf("failed to decode service record: %w", err)
		}
		records = append(records, record)
	}

	// Row keys are dates, so descending row key order is most recent first.
	sort.Slice(records, func(i, j int) bool {
		return records[i].RowKey > records[j].RowKey
	})
	return records, nil
}

func (r *tableSongRepository) Create(ctx context.Context, date string, songs []string) (*model.ServiceRecord, error) {
	rowKey := strings.TrimSpace(date)
	songsText := model.JoinSongs(songs)
	if rowKey == "" {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}
	if songsText == "" {
		return nil, fmt.Errorf("%w: at least one song is required", ErrValidation)
	}

	entity := &store.Entity{
		PartitionKey: DefaultPartition,
		RowKey:       rowKey,
		Properties: map[string]string{
			"date":  rowKey,
			"songs": songsText,
		},
	}
	if err := r.ts.Upsert(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to create service record %s: %w", rowKey, err)
	}
	return model.DecodeServiceRecord(entity)
}

func (r *tableSongRepository) Update(ctx context.Context, date string, songs []string, newDate string) (*model.ServiceRecord, error) {
	rowKey := strings.TrimSpace(date)
	songsText := model.JoinSongs(songs)
	if rowKey == "" {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}
	if songsText == "" {
		return nil, fmt.Errorf("%w: at least one song is required", ErrValidation)
	}

	partitionKey, found, err := store.ResolvePartition(ctx, r.ts, rowKey)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve partition for %s: %w", rowKey, err)
	}
	if !found {
		partitionKey = DefaultPartition
	}

	storedDate := rowKey
	if trimmed := strings.TrimSpace(newDate); trimmed != "" {
		storedDate = trimmed
	}

	entity := &store.Entity{
		PartitionKey: partitionKey,
		RowKey:       rowKey,
		Properties: map[string]string{
			"date":  storedDate,
			"songs": songsText,
		},
	}
	if err := r.ts.Upsert(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to update service record %s: %w", rowKey, err)
	}
	return model.DecodeServiceRecord(entity)
}

func (r *tableSongRepository) Delete(ctx context.Context, date string) error {
	rowKey := strings.TrimSpace(date)
	if rowKey == "" {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}

	partitionKey, found, err := store.ResolvePartition(ctx, r.ts, rowKey)
	if err != nil {
		return fmt.Errorf("failed to resolve partition for %s: %w", rowKey, err)
	}
	if !found {
		return nil // Nothing to delete
	}

	err = r.ts.Delete(ctx, partitionKey, rowKey)
	if err != nil {
		// The row vanishing between resolution and deletion still counts
		// as a successful delete.
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete service record %s: %w", rowKey, err)
	}
	return nil
}
