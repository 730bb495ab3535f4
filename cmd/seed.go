package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"hymnal/config"
	"hymnal/db"
	"hymnal/model"
	"hymnal/repository"
	"hymnal/store"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var seedSongsFile string

// collectNewTitles returns the titles from songLists that the catalog
// does not already have, deduplicated by trimmed lowercase title. The
// first-seen casing wins; insertion order is preserved.
func collectNewTitles(existing map[string]struct{}, songLists [][]string) []string {
	var titles []string
	seen := make(map[string]struct{})
	for _, songs := range songLists {
		for _, title := range songs {
			key := strings.ToLower(strings.TrimSpace(title))
			if key == "" {
				continue
			}
			if _, ok := existing[key]; ok {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			titles = append(titles, strings.TrimSpace(title))
		}
	}
	return titles
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Bulk-load data into the song tables",
}

// seedCatalogCmd builds catalog entries from the titles already present
// in the service records, skipping titles the catalog knows about
// (case-insensitively). Seeded entries start with empty author, aliases
// and notes; they get filled in by hand later.
var seedCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Create catalog entries for every distinct song title in the service records",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		ctx := context.Background()

		if err := db.ConnectGormDB(cfg); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.CloseGormDB()

		if err := db.InitEntityTables(cfg.SongsTable, cfg.CatalogTable); err != nil {
			log.Fatalf("Failed to initialize entity tables: %v", err)
		}

		songsStore := store.NewGormTableStore(db.GormDB, cfg.SongsTable)
		catalogStore := store.NewGormTableStore(db.GormDB, cfg.CatalogTable)

		// Existing titles, keyed by trimmed lowercase title.
		existing := make(map[string]struct{})
		catalogEntities, err := catalogStore.List(ctx)
		if err != nil {
			log.Fatalf("Failed to list catalog entries: %v", err)
		}
		for _, entity := range catalogEntities {
			if entity.PartitionKey != repository.DefaultPartition {
				continue
			}
			title := strings.TrimSpace(entity.Properties["title"])
			if title == "" {
				continue
			}
			existing[strings.ToLower(title)] = struct{}{}
		}

		songEntities, err := songsStore.List(ctx)
		if err != nil {
			log.Fatalf("Failed to list service records: %v", err)
		}

		songLists := make([][]string, 0, len(songEntities))
		for _, entity := range songEntities {
			songLists = append(songLists, model.SplitSongs(entity.Properties["songs"]))
		}

		inserted := 0
		for _, title := range collectNewTitles(existing, songLists) {
			now := time.Now().UTC().Format(time.RFC3339)
			err := catalogStore.Upsert(ctx, &store.Entity{
				PartitionKey: repository.DefaultPartition,
				RowKey:       uuid.NewString(),
				Properties: map[string]string{
					"title":     title,
					"author":    "",
					"aliases":   "",
					"notes":     "",
					"createdAt": now,
					"updatedAt": now,
				},
			})
			if err != nil {
				log.Fatalf("Failed to insert catalog entry for %q: %v", title, err)
			}
			inserted++
		}

		if inserted == 0 {
			fmt.Println("No new unique songs to add.")
			return
		}
		fmt.Printf("Inserted %d unique songs into '%s'.\n", inserted, cfg.CatalogTable)
	},
}

// seedSongsCmd imports service records from a JSON export: an array of
// {"date": "...", "songs": ["..."]} objects.
var seedSongsCmd = &cobra.Command{
	Use:   "songs",
	Short: "Import service records from a JSON file",
	Run: func(cmd *cobra.Command, args []string) {
		if seedSongsFile == "" {
			log.Fatal("--file is required")
		}

		data, err := os.ReadFile(seedSongsFile)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", seedSongsFile, err)
		}

		var records []struct {
			Date  string   `json:"date"`
			Songs []string `json:"songs"`
		}
		if err := json.Unmarshal(data, &records); err != nil {
			log.Fatalf("Failed to parse %s: %v", seedSongsFile, err)
		}

		cfg := config.Load()
		ctx := context.Background()

		if err := db.ConnectGormDB(cfg); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.CloseGormDB()

		if err := db.InitEntityTables(cfg.SongsTable, cfg.CatalogTable); err != nil {
			log.Fatalf("Failed to initialize entity tables: %v", err)
		}

		songRepo := repository.NewSongRecordRepository(store.NewGormTableStore(db.GormDB, cfg.SongsTable))

		imported := 0
		for _, rec := range records {
			if _, err := songRepo.Create(ctx, rec.Date, rec.Songs); err != nil {
				log.Printf("Skipping record %q: %v", rec.Date, err)
				continue
			}
			imported++
		}

		fmt.Printf("Imported %d of %d service records into '%s'.\n", imported, len(records), cfg.SongsTable)
	},
}

func init() {
	seedSongsCmd.Flags().StringVar(&seedSongsFile, "file", "", "path to a JSON array of {date, songs[]} records")
	seedCmd.AddCommand(seedCatalogCmd)
	seedCmd.AddCommand(seedSongsCmd)
	rootCmd.AddCommand(seedCmd)
}
