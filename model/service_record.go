package model

import (
	"fmt"
	"strings"

	"hymnal/store"
)

// SongDelimiter joins song titles into the single stored string.
const SongDelimiter = "|"

// ServiceRecord is one calendar date's list of songs, in performance
// order. The row key is the durable identity; the date field is display
// data and may diverge from it after an update.
type ServiceRecord struct {
	PartitionKey string   `json:"partitionKey"`
	RowKey       string   `json:"rowKey"`
	Date         string   `json:"date"`
	Songs        []string `json:"songs"`
}

// SplitSongs decodes a delimiter-joined songs string into a trimmed list
// with empty entries dropped.
func SplitSongs(raw string) []string {
	parts := strings.Split(raw, SongDelimiter)
	songs := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			songs = append(songs, s)
		}
	}
	return songs
}

// JoinSongs trims the given titles, drops empty ones and joins the rest
// with the song delimiter.
func JoinSongs(songs []string) string {
	clean := make([]string, 0, len(songs))
	for _, s := range songs {
		if t := strings.TrimSpace(s); t != "" {
			clean = append(clean, t)
		}
	}
	return strings.Join(clean, SongDelimiter)
}

// DecodeServiceRecord converts a stored entity into a typed record. The
// date falls back to the row key when the field is missing.
func DecodeServiceRecord(entity *store.Entity) (*ServiceRecord, error) {
	if entity.RowKey == "" {
		return nil, fmt.Errorf("service record entity has empty row key")
	}

	date := strings.TrimSpace(entity.Properties["date"])
	if date == "" {
		date = entity.RowKey
	}

	return &ServiceRecord{
		PartitionKey: entity.PartitionKey,
		RowKey:       entity.RowKey,
		Date:         date,
		Songs:        SplitSongs(entity.Properties["songs"]),
	}, nil
}
