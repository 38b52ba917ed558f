// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"movielinks/internal/core/domain"
	"movielinks/internal/core/ports"
)

// mockProber answers from a per-URL table and tracks concurrency.
type mockProber struct {
	statuses map[string]domain.Status
	delay    time.Duration
	panicOn  string

	calls    atomic.Int64
	inFlight atomic.Int64
	peak     atomic.Int64

	mu         sync.Mutex
	identities []string
}

func newMockProber(statuses map[string]domain.Status) *mockProber {
	return &mockProber{statuses: statuses}
}

func (m *mockProber) Probe(ctx context.Context, url, identity string) domain.Outcome {
	m.calls.Add(1)
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		p := m.peak.Load()
		if n <= p || m.peak.CompareAndSwap(p, n) {
			break
		}
	}

	m.mu.Lock()
	m.identities = append(m.identities, identity)
	m.mu.Unlock()

	if url == m.panicOn {
		panic("probe exploded")
	}

	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return domain.Outcome{URL: url, Status: domain.StatusError}
		}
	}

	st, ok := m.statuses[url]
	if !ok {
		st = domain.StatusUnsure
	}
	return domain.Outcome{URL: url, Status: st}
}

func (m *mockProber) seenIdentities() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.identities...)
}

// countingProvider wraps an identity set and counts batch requests.
type countingProvider struct {
	ids   ports.Identities
	calls atomic.Int64
}

func (c *countingProvider) Identities() ports.Identities {
	c.calls.Add(1)
	return c.ids
}

// mockMetadata is a scripted ports.MetadataProvider.
type mockMetadata struct {
	details *domain.MovieDetails
	err     error
	delay   time.Duration

	suggestions []string
	suggestErr  error

	lookups atomic.Int64
}

func (m *mockMetadata) Lookup(ctx context.Context, title string) (*domain.MovieDetails, error) {
	m.lookups.Add(1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.details, nil
}

func (m *mockMetadata) Suggest(ctx context.Context, query string) ([]string, error) {
	return m.suggestions, m.suggestErr
}

// staticGenerator returns fixed URLs per category.
type staticGenerator struct {
	movies    []string
	subtitles []string
}

func (g staticGenerator) Generate(title string, category domain.Category) []string {
	if category == domain.CategoryMovie {
		return g.movies
	}
	return g.subtitles
}
