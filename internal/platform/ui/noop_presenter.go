// internal/platform/ui/noop_presenter.go
package ui

import (
	"io"

	"movielinks/internal/core/domain"
)

// NoopPresenter is a Presenter that produces no output.
// Used for quiet mode and --json.
type NoopPresenter struct{}

// NewNoopPresenter returns a silent presenter
func NewNoopPresenter() *NoopPresenter {
	return &NoopPresenter{}
}

func (n *NoopPresenter) Welcome(info SessionInfo) {}

// PromptTitle always returns io.EOF: there is no interactive input
func (n *NoopPresenter) PromptTitle() (string, error) { return "", io.EOF }

func (n *NoopPresenter) StartCheck(heading string, total int)            {}
func (n *NoopPresenter) FinishCheck(stats CheckStats)                    {}
func (n *NoopPresenter) ShowLinks(heading string, rows []domain.LinkRow) {}
func (n *NoopPresenter) ShowDetails(details *domain.MovieDetails)        {}

// Confirm returns the default without asking
func (n *NoopPresenter) Confirm(question string, defaultValue bool) (bool, error) {
	return defaultValue, nil
}

func (n *NoopPresenter) Info(msg string)    {}
func (n *NoopPresenter) Warning(msg string) {}
func (n *NoopPresenter) Error(msg string)   {}
func (n *NoopPresenter) Close() error       { return nil }
