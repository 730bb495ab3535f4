package model

import (
	"fmt"
	"strings"

	"hymnal/store"
)

// CatalogEntry is one canonical song definition: title, author, known
// alternate titles and free-text notes. The generated id doubles as the
// row key; all entries live under one fixed partition.
type CatalogEntry struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Aliases   []string `json:"aliases"`
	Notes     string   `json:"notes"`
	CreatedAt string   `json:"createdAt,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

// SplitAliases decodes the delimiter-joined aliases string.
func SplitAliases(raw string) []string {
	return SplitSongs(raw)
}

// JoinAliases encodes aliases for storage.
func JoinAliases(aliases []string) string {
	return JoinSongs(aliases)
}

// DecodeCatalogEntry converts a stored entity into a typed catalog entry.
func DecodeCatalogEntry(entity *store.Entity) (*CatalogEntry, error) {
	if entity.RowKey == "" {
		return nil, fmt.Errorf("catalog entity has empty row key")
	}

	return &CatalogEntry{
		ID:        entity.RowKey,
		Title:     strings.TrimSpace(entity.Properties["title"]),
		Author:    strings.TrimSpace(entity.Properties["author"]),
		Aliases:   SplitAliases(entity.Properties["aliases"]),
		Notes:     entity.Properties["notes"],
		CreatedAt: entity.Properties["createdAt"],
		UpdatedAt: entity.Properties["updatedAt"],
	}, nil
}
