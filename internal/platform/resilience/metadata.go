package resilience

import (
	"context"

	"movielinks/internal/core/domain"
	"movielinks/internal/core/ports"
	"movielinks/internal/platform/errors"
	"movielinks/internal/platform/logx"
)

// GuardedMetadata wraps a MetadataProvider with a circuit breaker. Only
// service failures count: not found, invalid input, disabled metadata and
// caller cancellation never open it. Each call makes at most one attempt.
type GuardedMetadata struct {
	inner   ports.MetadataProvider
	breaker *CircuitBreaker
	logger  logx.Logger
}

// GuardOptions configures GuardedMetadata.
type GuardOptions struct {
	Breaker BreakerConfig
	Logger  logx.Logger
}

// NewGuardedMetadata wraps inner.
func NewGuardedMetadata(inner ports.MetadataProvider, opts GuardOptions) *GuardedMetadata {
	if opts.Logger == nil {
		opts.Logger = logx.NewSilent()
	}
	return &GuardedMetadata{
		inner:   inner,
		breaker: NewCircuitBreaker(opts.Breaker),
		logger:  opts.Logger.With("component", "metadata-guard"),
	}
}

// Breaker returns the underlying breaker.
func (g *GuardedMetadata) Breaker() *CircuitBreaker {
	return g.breaker
}

// Lookup implements ports.MetadataProvider.
func (g *GuardedMetadata) Lookup(ctx context.Context, title string) (*domain.MovieDetails, error) {
	if err := g.allow("lookup"); err != nil {
		return nil, err
	}
	details, err := g.inner.Lookup(ctx, title)
	g.record(ctx, "lookup", err)
	if err != nil {
		return nil, err
	}
	return details, nil
}

// Suggest implements ports.MetadataProvider.
func (g *GuardedMetadata) Suggest(ctx context.Context, query string) ([]string, error) {
	if err := g.allow("suggest"); err != nil {
		return nil, err
	}
	titles, err := g.inner.Suggest(ctx, query)
	g.record(ctx, "suggest", err)
	if err != nil {
		return nil, err
	}
	return titles, nil
}

func (g *GuardedMetadata) allow(op string) error {
	if g.breaker.Allow() {
		return nil
	}
	g.logger.Debug("metadata call skipped", "op", op, "state", g.breaker.State().String())
	return errors.Wrapf(ErrCircuitOpen, "metadata %s", op)
}

// record treats an expected answer (not found, invalid input) as success.
// Caller cancellation only frees the trial slot.
func (g *GuardedMetadata) record(ctx context.Context, op string, err error) {
	switch {
	case err == nil, expected(err):
		g.breaker.RecordSuccess()
	case canceled(ctx, err):
		g.breaker.Release()
	default:
		g.breaker.RecordFailure()
		if g.breaker.State() == StateOpen {
			g.logger.Warn("metadata service failing, pausing lookups", "op", op, "error", err.Error())
		}
	}
}

func expected(err error) bool {
	return errors.IsNotFound(err) ||
		errors.IsInvalidInput(err) ||
		errors.Is(err, errors.ErrMetadataDisabled)
}

func canceled(ctx context.Context, err error) bool {
	return ctx.Err() == context.Canceled || errors.Is(err, context.Canceled)
}
