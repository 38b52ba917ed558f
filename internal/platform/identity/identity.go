// Package identity holds the client identity strings (User-Agent values)
// rotated across outbound probes.
package identity

import (
	"bufio"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"sync/atomic"

	"movielinks/internal/core/ports"
	"movielinks/internal/platform/errors"
	"movielinks/internal/platform/logx"
)

// ReloadPolicy decides when the identity file is read.
type ReloadPolicy string

const (
	// ReloadOnce reads the file once when the provider is built.
	ReloadOnce ReloadPolicy = "startup"

	// ReloadPerBatch re-reads the file for every batch of probes.
	ReloadPerBatch ReloadPolicy = "per-batch"
)

// IsValid reports whether p is a known policy.
func (p ReloadPolicy) IsValid() bool {
	return p == ReloadOnce || p == ReloadPerBatch
}

// Pool is an immutable list of identities. The zero value is an empty pool.
type Pool struct {
	items []string
}

// NewPool builds a pool from values, dropping blank entries.
func NewPool(values ...string) Pool {
	items := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			items = append(items, v)
		}
	}
	return Pool{items: items}
}

// Pick returns a uniformly random identity, or false when the pool is empty.
// Safe for concurrent use.
func (p Pool) Pick() (string, bool) {
	if len(p.items) == 0 {
		return "", false
	}
	return p.items[rand.IntN(len(p.items))], true
}

// Len returns the number of identities.
func (p Pool) Len() int {
	return len(p.items)
}

// Values returns a copy of the identities in file order.
func (p Pool) Values() []string {
	return append([]string(nil), p.items...)
}

// Parse reads one identity per line; blank lines are ignored.
func Parse(r io.Reader) (Pool, error) {
	var values []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		values = append(values, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return Pool{}, errors.Wrap(err, "read identities")
	}
	return NewPool(values...), nil
}

// Load reads the identity file at path. A missing or unreadable file yields
// an empty pool and an error describing why; callers treat it as degraded,
// not fatal.
func Load(path string) (Pool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Pool{}, errors.Wrapf(errors.ErrNotFound, "identity file %s", path)
		}
		return Pool{}, errors.Wrapf(err, "open identity file %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Static always returns the same pool.
type Static struct {
	pool Pool
}

// NewStatic wraps a pool as a provider.
func NewStatic(pool Pool) *Static {
	return &Static{pool: pool}
}

// Identities returns the fixed pool.
func (s *Static) Identities() ports.Identities {
	return s.pool
}

// File re-reads its file every time Identities is called. A deleted file
// empties the pool; any other read failure keeps the last good pool.
type File struct {
	path   string
	logger logx.Logger
	last   atomic.Pointer[Pool]
}

// NewFile builds a per-batch provider for path.
func NewFile(path string, logger logx.Logger) *File {
	f := &File{path: path, logger: logger.With("component", "identity")}
	f.last.Store(&Pool{})
	return f
}

// Identities reloads the file and returns the fresh pool.
func (f *File) Identities() ports.Identities {
	pool, err := Load(f.path)
	if errors.IsNotFound(err) {
		f.logger.Debug("identity file missing, probing without identity", "path", f.path)
		f.last.Store(&Pool{})
		return Pool{}
	}
	if err != nil {
		f.logger.Warn("identity reload failed, keeping previous pool",
			"path", f.path,
			"error", err.Error(),
			"kept", f.last.Load().Len(),
		)
		return *f.last.Load()
	}
	f.last.Store(&pool)
	f.logger.Debug("identity pool reloaded", "path", f.path, "count", pool.Len())
	return pool
}

// NewProvider builds the provider for a reload policy. With ReloadOnce the
// file is read now; a missing file leaves probes without an identity header.
func NewProvider(path string, policy ReloadPolicy, logger logx.Logger) ports.IdentityProvider {
	if policy == ReloadPerBatch {
		return NewFile(path, logger)
	}

	pool, err := Load(path)
	if err != nil {
		logger.Warn("identity file unavailable, probes will not set User-Agent",
			"path", path,
			"error", err.Error(),
		)
	} else {
		logger.Info("identity pool loaded", "path", path, "count", pool.Len())
	}
	return NewStatic(pool)
}
