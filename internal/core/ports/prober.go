// internal/core/ports/prober.go
package ports

import (
	"context"

	"movielinks/internal/core/domain"
)

// Prober performs one reachability check against one URL.
// Implementations never return an error: every failure is folded into the
// Outcome status.
type Prober interface {
	// Probe checks url, sending identity as the client identity when it is
	// non-empty.
	Probe(ctx context.Context, url, identity string) domain.Outcome
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context, url, identity string) domain.Outcome

// Probe calls f.
func (f ProberFunc) Probe(ctx context.Context, url, identity string) domain.Outcome {
	return f(ctx, url, identity)
}

// Identities is a read-only set of client identity strings.
type Identities interface {
	// Pick returns a random identity, or false when the set is empty.
	Pick() (string, bool)

	// Len returns the number of identities.
	Len() int
}

// IdentityProvider hands out the identity set to use for one batch.
type IdentityProvider interface {
	Identities() Identities
}

// LinkGenerator turns a title into candidate URLs for a category.
type LinkGenerator interface {
	Generate(title string, category domain.Category) []string
}

// LinkChecker probes a batch of URLs and maps each to its status.
type LinkChecker interface {
	CheckAll(ctx context.Context, urls []string) domain.Results
}
