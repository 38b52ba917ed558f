// internal/platform/ui/symbols.go
package ui

import (
	"github.com/pterm/pterm"

	"movielinks/internal/core/domain"
)

// Symbol returns the Unicode symbol for a status
func Symbol(s domain.Status) string {
	switch s {
	case domain.StatusFound:
		return "✓"
	case domain.StatusUnsure:
		return "?"
	case domain.StatusError:
		return "✗"
	default:
		return "·"
	}
}

// StatusStyle returns the pterm style for a status.
// Found maps to success, Unsure to warning, Error to the error color.
func StatusStyle(s domain.Status) *pterm.Style {
	switch s {
	case domain.StatusFound:
		return pterm.NewStyle(pterm.FgGreen)
	case domain.StatusUnsure:
		return pterm.NewStyle(pterm.FgYellow)
	case domain.StatusError:
		return pterm.NewStyle(pterm.FgMagenta)
	default:
		return pterm.NewStyle(pterm.FgDefault)
	}
}

// StatusTag renders "[Found]" in the status color
func StatusTag(s domain.Status) string {
	return StatusStyle(s).Sprint("[" + s.Label() + "]")
}

// Icons
var (
	IconMovie    = "🎬"
	IconSubtitle = "💬"
	IconInfo     = "ℹ"
	IconWarning  = "⚠"
	IconError    = "✗"
	IconSuccess  = "✓"
	IconTime     = "⏱"
	IconWorkers  = "⚙️"
)

// Separators
var (
	SeparatorHeavy = "=================================================="
	SeparatorLight = "--------------------------------------------------"
)
