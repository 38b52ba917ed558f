package resilience

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"movielinks/internal/core/domain"
	"movielinks/internal/platform/errors"
	"movielinks/internal/testutil"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(threshold int, cooldown time.Duration) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	cb := NewCircuitBreaker(BreakerConfig{FailureThreshold: threshold, Cooldown: cooldown})
	cb.now = clock.now
	return cb, clock
}

func TestCircuitBreaker_Lifecycle(t *testing.T) {
	cb, clock := newTestBreaker(2, time.Minute)

	testutil.AssertTrue(t, cb.Allow(), "closed allows")
	cb.RecordFailure()
	testutil.AssertEqual(t, cb.State(), StateClosed, "below threshold")

	cb.RecordFailure()
	testutil.AssertEqual(t, cb.State(), StateOpen, "threshold reached")
	testutil.AssertFalse(t, cb.Allow(), "open rejects")

	clock.advance(time.Minute)
	testutil.AssertTrue(t, cb.Allow(), "cooldown elapsed, one probe")
	testutil.AssertEqual(t, cb.State(), StateHalfOpen, "half-open")
	testutil.AssertFalse(t, cb.Allow(), "only one probe in flight")

	cb.RecordSuccess()
	testutil.AssertEqual(t, cb.State(), StateClosed, "probe success closes")
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(1, time.Second)

	cb.RecordFailure()
	clock.advance(time.Second)
	testutil.AssertTrue(t, cb.Allow(), "probe")

	cb.RecordFailure()
	testutil.AssertEqual(t, cb.State(), StateOpen, "reopened")
	testutil.AssertFalse(t, cb.Allow(), "new cooldown started")
}

func TestCircuitBreaker_SuccessResetsCount(t *testing.T) {
	cb, _ := newTestBreaker(2, time.Minute)

	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()
	testutil.AssertEqual(t, cb.State(), StateClosed, "failures must be consecutive")

	cb.RecordFailure()
	cb.Reset()
	testutil.AssertEqual(t, cb.State(), StateClosed, "reset")
}

func TestCircuitBreaker_ReleaseFreesProbe(t *testing.T) {
	cb, clock := newTestBreaker(1, time.Second)

	cb.RecordFailure()
	clock.advance(time.Second)
	testutil.AssertTrue(t, cb.Allow(), "probe")
	testutil.AssertFalse(t, cb.Allow(), "slot taken")

	cb.Release()
	testutil.AssertTrue(t, cb.Allow(), "slot released")
	testutil.AssertEqual(t, cb.State(), StateHalfOpen, "still half-open")
}

func TestState_String(t *testing.T) {
	testutil.AssertEqual(t, StateClosed.String(), "closed", "closed")
	testutil.AssertEqual(t, StateOpen.String(), "open", "open")
	testutil.AssertEqual(t, StateHalfOpen.String(), "half-open", "half-open")
	testutil.AssertEqual(t, State(9).String(), "unknown", "unknown")
}

type stubMetadata struct {
	calls   atomic.Int32
	err     error
	details *domain.MovieDetails
}

func (s *stubMetadata) Lookup(ctx context.Context, title string) (*domain.MovieDetails, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.details, nil
}

func (s *stubMetadata) Suggest(ctx context.Context, query string) ([]string, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return []string{query + " (1995)"}, nil
}

func guard(inner *stubMetadata) *GuardedMetadata {
	return NewGuardedMetadata(inner, GuardOptions{
		Breaker: BreakerConfig{FailureThreshold: 2, Cooldown: time.Hour},
	})
}

func TestGuardedMetadata_PassThrough(t *testing.T) {
	inner := &stubMetadata{details: &domain.MovieDetails{Title: "Heat"}}
	g := guard(inner)

	details, err := g.Lookup(context.Background(), "Heat")
	testutil.AssertNoError(t, err, "lookup")
	testutil.AssertEqual(t, details.Title, "Heat", "details")

	titles, err := g.Suggest(context.Background(), "Heat")
	testutil.AssertNoError(t, err, "suggest")
	testutil.AssertEqual(t, titles, []string{"Heat (1995)"}, "titles")
}

func TestGuardedMetadata_OpensOnServiceFailures(t *testing.T) {
	inner := &stubMetadata{err: errors.Wrap(errors.ErrInvalidResponse, "HTTP 502")}
	g := guard(inner)

	for i := 0; i < 2; i++ {
		_, err := g.Lookup(context.Background(), "Heat")
		testutil.AssertTrue(t, errors.IsInvalidResponse(err), "upstream error returned")
	}
	testutil.AssertEqual(t, g.Breaker().State(), StateOpen, "breaker open")

	_, err := g.Suggest(context.Background(), "He")
	testutil.AssertTrue(t, errors.Is(err, ErrCircuitOpen), "short-circuited")
	testutil.AssertEqual(t, inner.calls.Load(), int32(2), "inner not called while open")
}

func TestGuardedMetadata_ExpectedErrorsDoNotTrip(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"not found", errors.Wrap(errors.ErrNotFound, "Movie not found!")},
		{"disabled", errors.ErrMetadataDisabled},
		{"invalid input", errors.Wrap(errors.ErrInvalidInput, "empty title")},
		{"canceled", context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := guard(&stubMetadata{err: tt.err})
			for i := 0; i < 5; i++ {
				_, _ = g.Lookup(context.Background(), "Heat")
			}
			testutil.AssertEqual(t, g.Breaker().State(), StateClosed, "still closed")
		})
	}
}

func TestGuardedMetadata_TimeoutsCount(t *testing.T) {
	inner := &stubMetadata{err: errors.ErrTimeout}
	g := guard(inner)

	_, err := g.Lookup(context.Background(), "Heat")
	testutil.AssertTrue(t, errors.IsTimeout(err), "timeout returned")
	testutil.AssertEqual(t, inner.calls.Load(), int32(1), "single attempt")

	_, _ = g.Suggest(context.Background(), "Heat")
	testutil.AssertEqual(t, g.Breaker().State(), StateOpen, "two timeouts open the breaker")
}

func TestGuardedMetadata_HalfOpenNotFoundCloses(t *testing.T) {
	inner := &stubMetadata{err: errors.ErrTimeout}
	g := guard(inner)
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	g.breaker.now = clock.now

	_, _ = g.Lookup(context.Background(), "Heat")
	_, _ = g.Lookup(context.Background(), "Heat")
	testutil.AssertEqual(t, g.Breaker().State(), StateOpen, "open")

	clock.advance(time.Hour)
	inner.err = errors.Wrap(errors.ErrNotFound, "Movie not found!")
	_, err := g.Lookup(context.Background(), "Nope")
	testutil.AssertTrue(t, errors.IsNotFound(err), "not found passes through")
	testutil.AssertEqual(t, g.Breaker().State(), StateClosed, "service answered, breaker closed")
}
