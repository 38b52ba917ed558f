// Package app wires the search stack from a Config. Both binaries build
// their runtime through Build.
package app

import (
	"context"
	"time"

	"movielinks/internal/core/domain"
	"movielinks/internal/core/ports"
	"movielinks/internal/core/usecases"
	"movielinks/internal/platform/cache"
	"movielinks/internal/platform/config"
	"movielinks/internal/platform/errors"
	"movielinks/internal/platform/identity"
	"movielinks/internal/platform/logx"
	"movielinks/internal/platform/resilience"
	"movielinks/internal/sources/httpprobe"
	"movielinks/internal/sources/omdb"
	"movielinks/internal/sources/templates"
)

// Options tunes Build for one binary.
type Options struct {
	// AllowMissingTemplates replaces a missing template file with an empty
	// set instead of failing.
	AllowMissingTemplates bool

	// Transport overrides the probe transport (tests).
	Transport ports.Prober
}

// App holds the wired components.
type App struct {
	Config     config.Config
	Templates  templates.Set
	Identities ports.IdentityProvider
	Checker    *usecases.BatchChecker
	Metadata   *omdb.Client
	Cache      *cache.MemoryCache[*domain.SearchResult]
	Search     *usecases.SearchService

	prober *httpprobe.Prober
	logger logx.Logger
}

// Build loads templates and identities and assembles the search service.
func Build(cfg config.Config, logger logx.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = logx.New()
	}

	set, err := templates.Load(cfg.Templates.Path)
	if err != nil {
		if !(opts.AllowMissingTemplates && errors.Is(err, errors.ErrTemplatesNotFound)) {
			return nil, err
		}
		logger.Warn("template file not found, searches will return no links", "path", cfg.Templates.Path)
		set = templates.Set{Movies: []string{}, Subtitles: []string{}}
	}
	for _, w := range set.Lint() {
		logger.Warn("suspicious template", "detail", w)
	}
	logger.Info("templates loaded",
		"path", cfg.Templates.Path,
		"movie", len(set.Movies),
		"subtitle", len(set.Subtitles),
	)

	a := &App{
		Config:     cfg,
		Templates:  set,
		Identities: identity.NewProvider(cfg.Identity.Path, cfg.Identity.Reload, logger),
		logger:     logger,
	}

	prober := opts.Transport
	if prober == nil {
		p, err := httpprobe.New(httpprobe.Options{
			Timeout:  cfg.Probe.Timeout,
			ProxyURL: cfg.Probe.ProxyURL,
			Logger:   logger,
		})
		if err != nil {
			return nil, errors.Wrap(err, "build prober")
		}
		a.prober = p
		prober = p
	}

	a.Checker = usecases.NewBatchChecker(usecases.BatchCheckerOptions{
		Prober:     prober,
		Identities: a.Identities,
		Workers:    cfg.Probe.Workers,
		Logger:     logger,
	})

	a.Metadata = omdb.New(omdb.Options{
		APIKey:    cfg.OMDb.APIKey,
		BaseURL:   cfg.OMDb.BaseURL,
		Timeout:   cfg.OMDb.Timeout,
		RateLimit: cfg.OMDb.RateLimit,
		Logger:    logger,
	})
	var metadata ports.MetadataProvider = a.Metadata
	if a.Metadata.Enabled() {
		metadata = resilience.NewGuardedMetadata(a.Metadata, resilience.GuardOptions{
			Breaker: resilience.BreakerConfig{FailureThreshold: 5, Cooldown: 30 * time.Second},
			Logger:  logger,
		})
	} else {
		logger.Info("no OMDb API key, movie details disabled")
	}

	if cfg.CacheEnabled() {
		a.Cache = cache.NewMemoryCache[*domain.SearchResult](cfg.Server.CacheSize, cfg.Server.CacheTTL)
	}

	a.Search = usecases.NewSearchService(usecases.SearchServiceOptions{
		Checker:         a.Checker,
		Generator:       set,
		Metadata:        metadata,
		Cache:           a.Cache,
		MetadataTimeout: cfg.OMDb.Timeout,
		Logger:          logger,
	})

	return a, nil
}

// StartBackground runs the cache cleanup worker until ctx is done.
func (a *App) StartBackground(ctx context.Context) {
	if a.Cache == nil {
		return
	}
	interval := a.Config.Server.CacheTTL / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	a.Cache.StartCleanupWorker(ctx, interval)
}

// Close releases idle probe and OMDb connections.
func (a *App) Close() error {
	var errs []error
	if a.prober != nil {
		errs = append(errs, a.prober.Close())
	}
	if a.Metadata != nil {
		errs = append(errs, a.Metadata.Close())
	}
	return errors.Join(errs...)
}
