package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"hymnal/store"
)

func TestSongCreateThenList(t *testing.T) {
	ctx := context.Background()
	ms := newMemStore()
	repo := NewSongRecordRepository(ms)

	if _, err := repo.Create(ctx, "2024-01-07", []string{"Amazing Grace", " Holy Holy Holy "}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := repo.Create(ctx, " 2024-01-14 ", []string{"Amazing Grace"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	// Most recent date first.
	if records[0].RowKey != "2024-01-14" || records[1].RowKey != "2024-01-07" {
		t.Errorf("Expected descending row key order, got [%s, %s]", records[0].RowKey, records[1].RowKey)
	}
	if !reflect.DeepEqual(records[1].Songs, []string{"Amazing Grace", "Holy Holy Holy"}) {
		t.Errorf("Expected trimmed songs, got %v", records[1].Songs)
	}
}

func TestSongCreateReplacesExistingDate(t *testing.T) {
	ctx := context.Background()
	repo := NewSongRecordRepository(newMemStore())

	if _, err := repo.Create(ctx, "2024-01-07", []string{"Old Song"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := repo.Create(ctx, "2024-01-07", []string{"New Song"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected upsert-replace to keep 1 record, got %d", len(records))
	}
	if !reflect.DeepEqual(records[0].Songs, []string{"New Song"}) {
		t.Errorf("Expected replaced songs, got %v", records[0].Songs)
	}
}

func TestSongCreateValidation(t *testing.T) {
	ctx := context.Background()
	repo := NewSongRecordRepository(newMemStore())

	if _, err := repo.Create(ctx, "  ", []string{"Amazing Grace"}); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for empty date, got %v", err)
	}
	if _, err := repo.Create(ctx, "2024-01-07", []string{"  ", ""}); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for all-empty songs, got %v", err)
	}
}

func TestSongUpdateKeepsRowKeyAcrossHistoricalPartition(t *testing.T) {
	ctx := context.Background()
	ms := newMemStore()
	repo := NewSongRecordRepository(ms)

	// Historical record stored under a legacy partition.
	ms.Upsert(ctx, &store.Entity{
		PartitionKey: "legacy",
		RowKey:       "2024-01-07",
		Properties:   map[string]string{"date": "2024-01-07", "songs": "Old Song"},
	})

	record, err := repo.Update(ctx, "2024-01-07", []string{"New Song"}, "2024-01-08")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	// The write must land in the resolved partition, under the original row key.
	if record.PartitionKey != "legacy" {
		t.Errorf("Expected resolved partition 'legacy', got %q", record.PartitionKey)
	}
	if record.RowKey != "2024-01-07" {
		t.Errorf("Expected row key unchanged, got %q", record.RowKey)
	}
	// The stored date may diverge from the row key after a rename.
	if record.Date != "2024-01-08" {
		t.Errorf("Expected date renamed to 2024-01-08, got %q", record.Date)
	}
	if _, ok := ms.entities[memKey("legacy", "2024-01-07")]; !ok {
		t.Error("Expected the entity to remain under legacy/2024-01-07")
	}
}

func TestSongUpdateMissingRecordCreatesUnderDefaultPartition(t *testing.T) {
	ctx := context.Background()
	ms := newMemStore()
	repo := NewSongRecordRepository(ms)

	record, err := repo.Update(ctx, "2024-03-03", []string{"Amazing Grace"}, "")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if record.PartitionKey != DefaultPartition {
		t.Errorf("Expected default partition fallback, got %q", record.PartitionKey)
	}

	records, _ := repo.List(ctx)
	if len(records) != 1 {
		t.Errorf("Expected update to create the missing record, got %d records", len(records))
	}
}

func TestSongDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	ms := newMemStore()
	repo := NewSongRecordRepository(ms)

	if _, err := repo.Create(ctx, "2024-01-07", []string{"Amazing Grace"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.Delete(ctx, "2024-01-07"); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	// Second delete of the same date: nothing to resolve, still success.
	if err := repo.Delete(ctx, "2024-01-07"); err != nil {
		t.Errorf("Expected idempotent delete, got %v", err)
	}
	// Never-existing date.
	if err := repo.Delete(ctx, "1999-12-31"); err != nil {
		t.Errorf("Expected delete of absent record to succeed, got %v", err)
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected empty table, got %d records", len(records))
	}
}
