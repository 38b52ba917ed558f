// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"movielinks/internal/core/domain"
)

// sanitizeTitle turns a title into a safe file name.
// Example: "The Matrix: Reloaded" -> "the_matrix_reloaded"
func sanitizeTitle(title string) string {
	sanitized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, strings.ToLower(domain.NormalizeTitle(title)))

	// collapse consecutive underscores
	for strings.Contains(sanitized, "__") {
		sanitized = strings.ReplaceAll(sanitized, "__", "_")
	}
	sanitized = strings.Trim(sanitized, "_")
	if sanitized == "" {
		return "untitled"
	}
	return sanitized
}

// WriteJSON encodes the result to w.
func WriteJSON(w io.Writer, result *domain.SearchResult, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// OutputJSON saves the result in dir as movielinks_<title>_<timestamp>.json
// and returns the file path.
func OutputJSON(dir string, result *domain.SearchResult) (string, error) {
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	ts := result.CheckedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	filename := fmt.Sprintf("movielinks_%s_%s.json", sanitizeTitle(result.Title), ts.Format("20060102_150405"))
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(f, result, true); err != nil {
		return "", err
	}
	return path, nil
}

// Summary holds per-category status counts for one search.
type Summary struct {
	Title     string                `json:"title"`
	Movies    map[domain.Status]int `json:"movies"`
	Subtitles map[domain.Status]int `json:"subtitles"`
	Total     int                   `json:"total"`
	Found     int                   `json:"found"`
	CheckedAt time.Time             `json:"checked_at"`
}

// BuildSummary counts statuses for both categories.
func BuildSummary(result *domain.SearchResult) Summary {
	movies := result.Movies.Stats()
	subtitles := result.Subtitles.Stats()
	return Summary{
		Title:     result.Title,
		Movies:    movies,
		Subtitles: subtitles,
		Total:     len(result.Movies) + len(result.Subtitles),
		Found:     movies[domain.StatusFound] + subtitles[domain.StatusFound],
		CheckedAt: result.CheckedAt,
	}
}
