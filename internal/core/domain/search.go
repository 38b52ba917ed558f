// internal/core/domain/search.go
package domain

import (
	"strings"
	"time"
)

// LinkRow is one display row: site label, URL and status, in submission order.
type LinkRow struct {
	Site   string `json:"site"`
	URL    string `json:"url"`
	Status Status `json:"status"`
}

// MovieDetails is the metadata shown next to the links.
type MovieDetails struct {
	Title    string `json:"Title,omitempty"`
	Year     string `json:"Year,omitempty"`
	Released string `json:"Released,omitempty"`
	Runtime  string `json:"Runtime,omitempty"`
	Genre    string `json:"Genre,omitempty"`
	Director string `json:"Director,omitempty"`
	Actors   string `json:"Actors,omitempty"`
	Plot     string `json:"Plot,omitempty"`
	Poster   string `json:"Poster,omitempty"`
	IMDbID   string `json:"imdbID,omitempty"`

	// Ratings is the flattened "Source: Value, Source: Value" form.
	Ratings string `json:"Ratings,omitempty"`
}

// SearchResult is everything produced for one title.
type SearchResult struct {
	Title string `json:"title"`

	Movies    Results `json:"movies"`
	Subtitles Results `json:"subtitles"`

	MovieLinks    []LinkRow `json:"movie_links"`
	SubtitleLinks []LinkRow `json:"subtitle_links"`

	Details *MovieDetails `json:"movie_details,omitempty"`

	CheckedAt time.Time     `json:"checked_at"`
	Duration  time.Duration `json:"duration_ns"`
}

// AllURLs returns movie URLs followed by subtitle URLs, in display order,
// without duplicates.
func (r *SearchResult) AllURLs() []string {
	seen := make(map[string]bool, len(r.MovieLinks)+len(r.SubtitleLinks))
	urls := make([]string, 0, len(r.MovieLinks)+len(r.SubtitleLinks))
	for _, rows := range [][]LinkRow{r.MovieLinks, r.SubtitleLinks} {
		for _, row := range rows {
			if seen[row.URL] {
				continue
			}
			seen[row.URL] = true
			urls = append(urls, row.URL)
		}
	}
	return urls
}

// NormalizeTitle trims and collapses inner whitespace. Used as the cache key
// and before template substitution.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(title), " ")
}
