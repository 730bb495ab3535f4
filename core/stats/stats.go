// Package stats derives play statistics from service records. Everything
// here is pure computation: the full record set goes in, the chart data
// comes out, nothing is cached or persisted.
package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"hymnal/model"
)

// chartLimit caps each ranked chart at the 25 most relevant entries.
const chartLimit = 25

// SongCount is one song's total play count.
type SongCount struct {
	Song  string `json:"song"`
	Plays int    `json:"plays"`
}

// SongGap is how long a song has gone unplayed.
type SongGap struct {
	Song       string `json:"song"`
	DaysSince  int    `json:"daysSince"`
	LastPlayed string `json:"lastPlayed"`
}

// MonthCount is the total number of song plays in one calendar month.
type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Plays int    `json:"plays"`
}

// Charts bundles the derived statistics served to clients.
type Charts struct {
	TopPlayed           []SongCount  `json:"topPlayed"`
	LeastPlayed         []SongCount  `json:"leastPlayed"`
	DaysSinceLastPlayed []SongGap    `json:"daysSinceLastPlayed"`
	MonthlyPlays        []MonthCount `json:"monthlyPlays"`
}

// Build computes all charts from the given service records. Songs are
// grouped case-insensitively; the casing shown is the one from the
// song's most recent service date. A record whose date cannot be parsed
// contributes as if it were sung at the given now, a deliberate
// fallback so malformed historical rows keep counting instead of
// failing the whole computation.
func Build(records []*model.ServiceRecord, now time.Time) Charts {
	counts := make(map[string]int)
	lastPlayed := make(map[string]time.Time)
	monthly := make(map[string]int)
	displayNames := make(map[string]string)

	for _, record := range records {
		playedDate := parseDate(record.Date, now)
		monthly[playedDate.Format("2006-01")] += len(record.Songs)

		for _, song := range record.Songs {
			key := strings.ToLower(song)
			counts[key]++
			if playedDate.After(lastPlayed[key]) {
				lastPlayed[key] = playedDate
				displayNames[key] = song
			} else if _, ok := displayNames[key]; !ok {
				displayNames[key] = song
			}
		}
	}

	sortedCounts := make([]SongCount, 0, len(counts))
	for key, plays := range counts {
		sortedCounts = append(sortedCounts, SongCount{Song: displayNames[key], Plays: plays})
	}
	sort.Slice(sortedCounts, func(i, j int) bool {
		if sortedCounts[i].Plays != sortedCounts[j].Plays {
			return sortedCounts[i].Plays > sortedCounts[j].Plays
		}
		return sortedCounts[i].Song < sortedCounts[j].Song
	})

	gaps := make([]SongGap, 0, len(lastPlayed))
	for key, ts := range lastPlayed {
		gaps = append(gaps, SongGap{
			Song:       displayNames[key],
			LastPlayed: ts.UTC().Format(time.RFC3339),
			DaysSince:  int(math.Round(now.Sub(ts).Hours() / 24)),
		})
	}
	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].DaysSince != gaps[j].DaysSince {
			return gaps[i].DaysSince > gaps[j].DaysSince
		}
		return gaps[i].Song < gaps[j].Song
	})

	monthlyPlays := make([]MonthCount, 0, len(monthly))
	for month, plays := range monthly {
		monthlyPlays = append(monthlyPlays, MonthCount{Month: month, Plays: plays})
	}
	sort.Slice(monthlyPlays, func(i, j int) bool {
		return monthlyPlays[i].Month < monthlyPlays[j].Month
	})

	return Charts{
		TopPlayed:           topSlice(sortedCounts),
		LeastPlayed:         bottomSliceReversed(sortedCounts),
		DaysSinceLastPlayed: topGaps(gaps),
		MonthlyPlays:        monthlyPlays,
	}
}

func topSlice(counts []SongCount) []SongCount {
	if len(counts) > chartLimit {
		counts = counts[:chartLimit]
	}
	out := make([]SongCount, len(counts))
	copy(out, counts)
	return out
}

// bottomSliceReversed returns the lowest-count entries with the least
// played song first.
func bottomSliceReversed(counts []SongCount) []SongCount {
	start := 0
	if len(counts) > chartLimit {
		start = len(counts) - chartLimit
	}
	tail := counts[start:]
	out := make([]SongCount, 0, len(tail))
	for i := len(tail) - 1; i >= 0; i-- {
		out = append(out, tail[i])
	}
	return out
}

func topGaps(gaps []SongGap) []SongGap {
	if len(gaps) > chartLimit {
		gaps = gaps[:chartLimit]
	}
	out := make([]SongGap, len(gaps))
	copy(out, gaps)
	return out
}

// parseDate accepts the plain date form used by the UI and RFC3339
// timestamps; anything else falls back to now.
func parseDate(input string, now time.Time) time.Time {
	input = strings.TrimSpace(input)
	if t, err := time.Parse("2006-01-02", input); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t
	}
	return now
}
