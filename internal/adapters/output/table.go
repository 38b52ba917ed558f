// internal/adapters/output/table.go
package output

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"movielinks/internal/core/domain"
)

// OutputTable prints a readable table of both link categories.
func OutputTable(w io.Writer, result *domain.SearchResult) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== movielinks: %s ===\n", result.Title)
	if result.Duration > 0 {
		fmt.Fprintf(tw, "Duration:\t%s\n", result.Duration.Round(time.Millisecond))
	}

	writeSection(tw, "Generated Links for Movies", result.MovieLinks)
	writeSection(tw, "Generated Links for Subtitles", result.SubtitleLinks)

	if d := result.Details; d != nil {
		fmt.Fprintln(tw, "\nMovie Details")
		for _, kv := range [][2]string{
			{"Title", d.Title}, {"Released", d.Released}, {"Runtime", d.Runtime},
			{"Genre", d.Genre}, {"Director", d.Director}, {"Ratings", d.Ratings}, {"Plot", d.Plot},
		} {
			if kv[1] != "" {
				fmt.Fprintf(tw, "%s:\t%s\n", kv[0], kv[1])
			}
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}

	s := BuildSummary(result)
	fmt.Fprintf(w, "\n%d of %d links found\n\n", s.Found, s.Total)
	return nil
}

func writeSection(w io.Writer, heading string, rows []domain.LinkRow) {
	fmt.Fprintf(w, "\n%s\n", heading)
	if len(rows) == 0 {
		fmt.Fprintln(w, "No links.")
		return
	}
	fmt.Fprintln(w, "#\tSTATUS\tSITE\tURL")
	fmt.Fprintln(w, "-\t------\t----\t---")
	for i, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, row.Status.Label(), row.Site, row.URL)
	}
}
