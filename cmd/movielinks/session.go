// cmd/movielinks/session.go
package main

import (
	"context"
	"fmt"
	"io"

	"movielinks/internal/adapters/output"
	"movielinks/internal/core/domain"
	"movielinks/internal/core/usecases"
	"movielinks/internal/platform/errors"
	"movielinks/internal/platform/logx"
	"movielinks/internal/platform/ui"
)

// Exit codes
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

type searcher interface {
	Search(ctx context.Context, title string) (*domain.SearchResult, error)
}

type linkOpener interface {
	OpenAll(ctx context.Context, urls []string) (int, error)
}

// session drives the prompt → check → show → open loop.
type session struct {
	search searcher
	ui     ui.Presenter
	open   linkOpener // nil never offers the browser

	movieCount    int
	subtitleCount int

	// saveDir receives a JSON copy of every result when set.
	saveDir string

	logger logx.Logger
}

// run loops until the input ends or the user declines another search.
func (s *session) run(ctx context.Context) int {
	for {
		title, err := s.ui.PromptTitle()
		if err == io.EOF {
			return exitOK
		}
		if err != nil {
			if ctx.Err() != nil {
				return exitInterrupted
			}
			s.ui.Error(fmt.Sprintf("could not read title: %v", err))
			return exitFailure
		}
		if domain.NormalizeTitle(title) == "" {
			s.ui.Warning(usecases.EmptyTitleMessage)
			continue
		}

		if code := s.once(ctx, title); code != exitOK {
			return code
		}

		again, err := s.ui.Confirm("Search another title?", false)
		if err != nil || !again {
			return exitOK
		}
	}
}

// once runs a single search and offers to open the links.
func (s *session) once(ctx context.Context, title string) int {
	s.ui.StartCheck("Links", s.movieCount+s.subtitleCount)
	res, err := s.search.Search(ctx, title)
	if err != nil {
		s.ui.FinishCheck(ui.CheckStats{Heading: "Links"})
		if ctx.Err() != nil {
			s.ui.Warning("Search interrupted.")
			return exitInterrupted
		}
		if errors.IsInvalidInput(err) {
			s.ui.Warning(usecases.EmptyTitleMessage)
			return exitOK
		}
		s.ui.Error(err.Error())
		return exitFailure
	}

	all := append(append([]domain.LinkRow{}, res.MovieLinks...), res.SubtitleLinks...)
	s.ui.FinishCheck(ui.StatsFromRows("Links", all, res.Duration))

	s.ui.ShowLinks("Generated Links for Movies", res.MovieLinks)
	s.ui.ShowLinks("Generated Links for Subtitles", res.SubtitleLinks)
	s.ui.ShowDetails(res.Details)

	if s.saveDir != "" {
		path, err := output.OutputJSON(s.saveDir, res)
		if err != nil {
			s.logger.Err(err, "phase", "save")
			s.ui.Warning(fmt.Sprintf("could not save result: %v", err))
		} else {
			s.ui.Info("Result saved to " + path)
		}
	}

	s.offerBrowser(ctx, res.AllURLs())
	return exitOK
}

func (s *session) offerBrowser(ctx context.Context, urls []string) {
	if s.open == nil {
		return
	}
	if len(urls) == 0 {
		s.ui.Warning("No links to open in the browser.")
		return
	}

	ok, err := s.ui.Confirm("Do you want to open all links in your browser?", false)
	if err != nil || !ok {
		s.ui.Info("Opening links canceled.")
		return
	}

	opened, err := s.open.OpenAll(ctx, urls)
	if err != nil {
		s.ui.Warning(fmt.Sprintf("Opened %d of %d links: %v", opened, len(urls), err))
		return
	}
	s.ui.Info("All links have been opened in your browser.")
}
