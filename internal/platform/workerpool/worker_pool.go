// internal/platform/workerpool/worker_pool.go
package workerpool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"movielinks/internal/platform/logx"
)

// DefaultWorkers is used when Config.Workers is not positive.
const DefaultWorkers = 4

// Task is one unit of work run by the pool.
type Task interface {
	Execute(ctx context.Context) error
	Name() string
}

// TaskFunc adapts a function into a Task.
type TaskFunc struct {
	Label string
	Fn    func(ctx context.Context) error
}

func (t TaskFunc) Execute(ctx context.Context) error { return t.Fn(ctx) }
func (t TaskFunc) Name() string                      { return t.Label }

// TaskResult is the outcome of a single task.
type TaskResult struct {
	Task     Task
	Error    error
	Duration time.Duration
}

// Config configures a WorkerPool.
type Config struct {
	Workers int
	Logger  logx.Logger
}

// WorkerPool runs tasks on a fixed number of goroutines. A pool is meant to
// live for one batch: Start, Submit once or more, then Stop.
type WorkerPool struct {
	workers int
	logger  logx.Logger

	taskQueue chan Task
	results   chan TaskResult

	wg       sync.WaitGroup
	ctx      context.Context
	inFlight atomic.Int64
	peak     atomic.Int64
	started  atomic.Bool
	stopOnce sync.Once
}

// New creates a pool bound to ctx. Tasks receive ctx as is; cancelling it
// does not skip queued tasks, each task decides what cancellation means.
func New(ctx context.Context, cfg Config) *WorkerPool {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Logger == nil {
		cfg.Logger = logx.New()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	return &WorkerPool{
		workers:   cfg.Workers,
		logger:    cfg.Logger.With("component", "worker-pool"),
		taskQueue: make(chan Task, cfg.Workers*2),
		results:   make(chan TaskResult, cfg.Workers*2),
		ctx:       ctx,
	}
}

// Start launches the workers. Calling it twice is a no-op.
func (wp *WorkerPool) Start() {
	if !wp.started.CompareAndSwap(false, true) {
		return
	}
	wp.logger.Debug("starting worker pool", "workers", wp.workers)

	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		wp.results <- wp.executeTask(id, task)
	}
}

func (wp *WorkerPool) executeTask(workerID int, task Task) (res TaskResult) {
	start := time.Now()
	res.Task = task

	n := wp.inFlight.Add(1)
	for {
		p := wp.peak.Load()
		if n <= p || wp.peak.CompareAndSwap(p, n) {
			break
		}
	}

	defer func() {
		wp.inFlight.Add(-1)
		if r := recover(); r != nil {
			res.Error = fmt.Errorf("task %s panicked: %v", task.Name(), r)
			wp.logger.Warn("task panicked", "worker_id", workerID, "task", task.Name(), "panic", r)
		}
		res.Duration = time.Since(start)
	}()

	res.Error = task.Execute(wp.ctx)
	return res
}

// Submit queues tasks and blocks until every one of them has a result.
// Results arrive in completion order.
func (wp *WorkerPool) Submit(tasks []Task) []TaskResult {
	if len(tasks) == 0 {
		return []TaskResult{}
	}
	wp.Start()

	go func() {
		for _, task := range tasks {
			wp.taskQueue <- task
		}
	}()

	results := make([]TaskResult, 0, len(tasks))
	for i := 0; i < len(tasks); i++ {
		results = append(results, <-wp.results)
	}

	wp.logger.Debug("batch finished", "tasks", len(tasks), "peak_concurrency", wp.peak.Load())
	return results
}

// Stop closes the queue and waits for the workers to exit. It must not be
// called while a Submit is still running.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		close(wp.taskQueue)
		wp.wg.Wait()
		close(wp.results)
		wp.logger.Debug("worker pool stopped")
	})
}

// Stats reports the pool size and the highest concurrency seen so far.
func (wp *WorkerPool) Stats() Stats {
	return Stats{
		Workers:         wp.workers,
		InFlight:        int(wp.inFlight.Load()),
		PeakConcurrency: int(wp.peak.Load()),
	}
}

// Stats is a snapshot of WorkerPool counters.
type Stats struct {
	Workers         int
	InFlight        int
	PeakConcurrency int
}
