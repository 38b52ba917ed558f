// internal/platform/ui/presenter.go
package ui

import (
	"time"

	"movielinks/internal/core/domain"
)

// Presenter renders an interactive search session in the terminal.
// Implementations use pterm, plain text, or print nothing.
type Presenter interface {
	// Welcome prints the session header
	Welcome(info SessionInfo)

	// PromptTitle asks for a title. It returns io.EOF when input
	// is closed.
	PromptTitle() (string, error)

	// StartCheck signals that a batch of links is being checked
	StartCheck(heading string, total int)

	// FinishCheck ends the indicator opened by StartCheck
	FinishCheck(stats CheckStats)

	// ShowLinks prints a numbered table of links and their status
	ShowLinks(heading string, rows []domain.LinkRow)

	// ShowDetails prints movie metadata; nil prints nothing
	ShowDetails(details *domain.MovieDetails)

	// Confirm asks a yes/no question
	Confirm(question string, defaultValue bool) (bool, error)

	// General messages
	Info(msg string)
	Warning(msg string)
	Error(msg string)

	// Close releases resources such as active spinners
	Close() error
}

// SessionInfo is the configuration shown at startup
type SessionInfo struct {
	Version        string
	Templates      string
	MovieLinks     int
	SubtitleLinks  int
	Workers        int
	ProbeTimeout   time.Duration
	Identities     int
	MetadataActive bool
}

// CheckStats summarizes a finished check
type CheckStats struct {
	Heading  string
	Total    int
	Found    int
	Unsure   int
	Errors   int
	Duration time.Duration
}

// StatsFromRows counts the statuses of rows.
func StatsFromRows(heading string, rows []domain.LinkRow, d time.Duration) CheckStats {
	stats := CheckStats{Heading: heading, Total: len(rows), Duration: d}
	for _, row := range rows {
		switch row.Status {
		case domain.StatusFound:
			stats.Found++
		case domain.StatusUnsure:
			stats.Unsure++
		default:
			stats.Errors++
		}
	}
	return stats
}

// Mode selects the Presenter implementation
type Mode string

const (
	ModePretty Mode = "pretty"
	ModePlain  Mode = "plain"
	ModeQuiet  Mode = "quiet"
)
