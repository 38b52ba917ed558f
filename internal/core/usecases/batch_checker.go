// internal/core/usecases/batch_checker.go
package usecases

import (
	"context"
	"time"

	"movielinks/internal/core/domain"
	"movielinks/internal/core/ports"
	"movielinks/internal/platform/logx"
	"movielinks/internal/platform/workerpool"
)

// DefaultWorkerCeiling is the largest pool a single CheckAll will start.
const DefaultWorkerCeiling = 15

// BatchChecker probes a list of URLs in parallel and maps each URL to its
// status. Each call owns its own worker pool.
type BatchChecker struct {
	prober     ports.Prober
	identities ports.IdentityProvider
	ceiling    int
	logger     logx.Logger
}

// BatchCheckerOptions configures a BatchChecker.
type BatchCheckerOptions struct {
	Prober ports.Prober

	// Identities supplies the identity set; nil means no identity header.
	Identities ports.IdentityProvider

	// Workers is the worker ceiling per call.
	Workers int

	Logger logx.Logger
}

// NewBatchChecker creates a BatchChecker.
func NewBatchChecker(opts BatchCheckerOptions) *BatchChecker {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkerCeiling
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}

	return &BatchChecker{
		prober:     opts.Prober,
		identities: opts.Identities,
		ceiling:    opts.Workers,
		logger:     opts.Logger.With("component", "batch-checker"),
	}
}

// probeTask runs one probe and records it into its slot.
type probeTask struct {
	url    string
	ids    ports.Identities
	prober ports.Prober
	out    *domain.Outcome
}

func (t *probeTask) Name() string { return t.url }

func (t *probeTask) Execute(ctx context.Context) error {
	// Filled before the probe so a panicking prober still leaves a result.
	*t.out = domain.Outcome{URL: t.url, Status: domain.StatusError}

	identity := ""
	if t.ids != nil {
		identity, _ = t.ids.Pick()
	}
	*t.out = t.prober.Probe(ctx, t.url, identity)
	t.out.URL = t.url
	if !t.out.Status.IsValid() {
		t.out.Status = domain.StatusError
	}
	return nil
}

// CheckAll probes every URL once and returns after all probes finished.
// Probe failures are folded into the mapping; CheckAll never fails.
func (bc *BatchChecker) CheckAll(ctx context.Context, urls []string) domain.Results {
	if len(urls) == 0 {
		return domain.NewResults(0)
	}
	start := time.Now()

	var ids ports.Identities
	if bc.identities != nil {
		ids = bc.identities.Identities()
	}

	workers := min(bc.ceiling, len(urls))
	pool := workerpool.New(ctx, workerpool.Config{Workers: workers, Logger: bc.logger})
	defer pool.Stop()

	outcomes := make([]domain.Outcome, len(urls))
	tasks := make([]workerpool.Task, len(urls))
	for i, u := range urls {
		tasks[i] = &probeTask{url: u, ids: ids, prober: bc.prober, out: &outcomes[i]}
	}

	for _, r := range pool.Submit(tasks) {
		if r.Error != nil {
			bc.logger.Warn("probe task failed", "url", r.Task.Name(), "error", r.Error.Error())
		}
	}

	results := domain.NewResults(len(urls))
	for _, o := range outcomes {
		results.Record(o)
	}

	identityCount := 0
	if ids != nil {
		identityCount = ids.Len()
	}
	bc.logger.Debug("batch checked",
		"urls", len(urls),
		"distinct", len(results),
		"workers", workers,
		"identities", identityCount,
		"found", results.Count(domain.StatusFound),
		"unsure", results.Count(domain.StatusUnsure),
		"error", results.Count(domain.StatusError),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return results
}
