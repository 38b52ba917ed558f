// internal/platform/ui/helpers.go
package ui

import (
	"fmt"
	"strings"
	"time"

	"movielinks/internal/core/domain"
)

// formatDuration renders a duration for humans
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	} else if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	} else {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}

// parseYesNo reads a confirmation answer. Empty means defaultValue.
func parseYesNo(answer string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "s", "si", "sí":
		return true
	case "n", "no":
		return false
	default:
		return defaultValue
	}
}

// detailLines returns the non-empty field/value pairs of the metadata
func detailLines(d *domain.MovieDetails) [][2]string {
	if d == nil {
		return nil
	}
	fields := [][2]string{
		{"Title", d.Title},
		{"Year", d.Year},
		{"Released", d.Released},
		{"Runtime", d.Runtime},
		{"Genre", d.Genre},
		{"Director", d.Director},
		{"Actors", d.Actors},
		{"Ratings", d.Ratings},
		{"Plot", d.Plot},
	}
	out := fields[:0]
	for _, f := range fields {
		if f[1] != "" {
			out = append(out, f)
		}
	}
	return out
}

// summaryLine summarizes a check: "7 links: 3 found, 2 unsure, 2 error (1.2s)"
func summaryLine(s CheckStats) string {
	return fmt.Sprintf("%d links: %d found, %d unsure, %d error (%s)",
		s.Total, s.Found, s.Unsure, s.Errors, formatDuration(s.Duration))
}
