package model

import (
	"reflect"
	"testing"

	"hymnal/store"
)

func TestDecodeCatalogEntry(t *testing.T) {
	entry, err := DecodeCatalogEntry(&store.Entity{
		PartitionKey: "song",
		RowKey:       "abc-123",
		Properties: map[string]string{
			"title":     " Amazing Grace ",
			"author":    "John Newton",
			"aliases":   "Grace| Amazing ",
			"notes":     "classic",
			"createdAt": "2024-01-01T00:00:00Z",
			"updatedAt": "2024-02-01T00:00:00Z",
		},
	})
	if err != nil {
		t.Fatalf("DecodeCatalogEntry failed: %v", err)
	}

	if entry.ID != "abc-123" {
		t.Errorf("Expected id from row key, got %q", entry.ID)
	}
	if entry.Title != "Amazing Grace" {
		t.Errorf("Expected trimmed title, got %q", entry.Title)
	}
	if !reflect.DeepEqual(entry.Aliases, []string{"Grace", "Amazing"}) {
		t.Errorf("Unexpected aliases: %v", entry.Aliases)
	}
	if entry.CreatedAt != "2024-01-01T00:00:00Z" || entry.UpdatedAt != "2024-02-01T00:00:00Z" {
		t.Errorf("Unexpected timestamps: %q / %q", entry.CreatedAt, entry.UpdatedAt)
	}
}

func TestDecodeCatalogEntryRejectsEmptyRowKey(t *testing.T) {
	_, err := DecodeCatalogEntry(&store.Entity{Properties: map[string]string{"title": "x"}})
	if err == nil {
		t.Error("Expected an error for an entity without a row key")
	}
}

func TestDecodeCatalogEntryToleratesMissingOptionalFields(t *testing.T) {
	entry, err := DecodeCatalogEntry(&store.Entity{
		PartitionKey: "song",
		RowKey:       "abc-123",
		Properties:   map[string]string{"title": "Doxology"},
	})
	if err != nil {
		t.Fatalf("DecodeCatalogEntry failed: %v", err)
	}
	if len(entry.Aliases) != 0 || entry.Notes != "" || entry.Author != "" {
		t.Errorf("Expected empty optional fields, got %+v", entry)
	}
}
