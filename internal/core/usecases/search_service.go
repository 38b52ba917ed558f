// internal/core/usecases/search_service.go
package usecases

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"movielinks/internal/core/domain"
	"movielinks/internal/core/ports"
	"movielinks/internal/platform/cache"
	"movielinks/internal/platform/errors"
	"movielinks/internal/platform/logx"
	"movielinks/internal/platform/sites"
)

// EmptyTitleMessage is shown when a search has no title.
const EmptyTitleMessage = "Please enter a movie title."

// DefaultMetadataTimeout bounds the metadata lookup of one search.
const DefaultMetadataTimeout = 8 * time.Second

// SiteLabeler names the site behind a URL.
type SiteLabeler interface {
	Label(rawURL string) string
}

// SearchService runs a full search: generate links, check both families,
// fetch metadata, assemble display rows.
type SearchService struct {
	checker   ports.LinkChecker
	generator ports.LinkGenerator
	metadata  ports.MetadataProvider
	labeler   SiteLabeler
	results   *cache.MemoryCache[*domain.SearchResult]

	metadataTimeout time.Duration
	flight          singleflight.Group
	logger          logx.Logger
}

// SearchServiceOptions configures a SearchService.
type SearchServiceOptions struct {
	Checker   ports.LinkChecker
	Generator ports.LinkGenerator

	// Metadata is optional.
	Metadata ports.MetadataProvider

	// Labeler defaults to the built-in site table.
	Labeler SiteLabeler

	// Cache is optional; nil disables result caching.
	Cache *cache.MemoryCache[*domain.SearchResult]

	MetadataTimeout time.Duration
	Logger          logx.Logger
}

// NewSearchService creates a SearchService.
func NewSearchService(opts SearchServiceOptions) *SearchService {
	if opts.Labeler == nil {
		opts.Labeler = sites.NewLabeler(nil)
	}
	if opts.MetadataTimeout <= 0 {
		opts.MetadataTimeout = DefaultMetadataTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}

	return &SearchService{
		checker:         opts.Checker,
		generator:       opts.Generator,
		metadata:        opts.Metadata,
		labeler:         opts.Labeler,
		results:         opts.Cache,
		metadataTimeout: opts.MetadataTimeout,
		logger:          opts.Logger.With("component", "search"),
	}
}

// Search returns link statuses and metadata for title. Only an empty title
// or a cancelled caller produce an error.
func (s *SearchService) Search(ctx context.Context, title string) (*domain.SearchResult, error) {
	title = domain.NormalizeTitle(title)
	if title == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, EmptyTitleMessage)
	}
	key := cacheKey(title)

	if s.results != nil {
		if cached, ok := s.results.Get(key); ok {
			s.logger.Debug("cache hit", "title", title)
			return cached, nil
		}
	}

	// The shared run outlives any single waiting caller.
	ch := s.flight.DoChan(key, func() (any, error) {
		res := s.run(context.WithoutCancel(ctx), title)
		if s.results != nil {
			s.results.Set(key, res)
		}
		return res, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Shared {
			s.logger.Debug("joined in-flight search", "title", title)
		}
		return r.Val.(*domain.SearchResult), nil
	}
}

func (s *SearchService) run(ctx context.Context, title string) *domain.SearchResult {
	start := time.Now()
	movieURLs := s.generator.Generate(title, domain.CategoryMovie)
	subtitleURLs := s.generator.Generate(title, domain.CategorySubtitle)

	res := &domain.SearchResult{Title: title, CheckedAt: start}

	var g errgroup.Group
	g.Go(func() error {
		res.Movies = s.checker.CheckAll(ctx, movieURLs)
		return nil
	})
	g.Go(func() error {
		res.Subtitles = s.checker.CheckAll(ctx, subtitleURLs)
		return nil
	})
	g.Go(func() error {
		res.Details = s.lookup(ctx, title)
		return nil
	})
	_ = g.Wait()

	res.MovieLinks = s.rows(movieURLs, res.Movies)
	res.SubtitleLinks = s.rows(subtitleURLs, res.Subtitles)
	res.Duration = time.Since(start)

	s.logger.Info("search finished",
		"title", title,
		"movie_links", len(movieURLs),
		"subtitle_links", len(subtitleURLs),
		"found", res.Movies.Count(domain.StatusFound)+res.Subtitles.Count(domain.StatusFound),
		"details", res.Details != nil,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res
}

// lookup never fails the search; problems are logged and yield nil.
func (s *SearchService) lookup(ctx context.Context, title string) *domain.MovieDetails {
	if s.metadata == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.metadataTimeout)
	defer cancel()

	details, err := s.metadata.Lookup(ctx, title)
	switch {
	case err == nil:
		return details
	case errors.Is(err, errors.ErrMetadataDisabled):
		s.logger.Debug("metadata disabled")
	case errors.IsNotFound(err):
		s.logger.Info("no metadata for title", "title", title)
	default:
		s.logger.Warn("metadata lookup failed", "title", title, "error", err.Error())
	}
	return nil
}

func (s *SearchService) rows(urls []string, statuses domain.Results) []domain.LinkRow {
	rows := make([]domain.LinkRow, 0, len(urls))
	for _, u := range urls {
		st, ok := statuses[u]
		if !ok {
			st = domain.StatusError
		}
		rows = append(rows, domain.LinkRow{Site: s.labeler.Label(u), URL: u, Status: st})
	}
	return rows
}

// Suggest returns title suggestions; without a metadata provider it is
// always empty.
func (s *SearchService) Suggest(ctx context.Context, query string) ([]string, error) {
	query = domain.NormalizeTitle(query)
	if s.metadata == nil || query == "" {
		return []string{}, nil
	}
	titles, err := s.metadata.Suggest(ctx, query)
	if errors.Is(err, errors.ErrMetadataDisabled) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if titles == nil {
		titles = []string{}
	}
	return titles, nil
}

func cacheKey(title string) string {
	return strings.ToLower(title)
}
