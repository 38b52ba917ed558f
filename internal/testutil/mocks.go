// internal/testutil/mocks.go
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// Domain-specific mocks live next to the packages that use them; this file
// only holds generic HTTP doubles.

// RecordingServer is an httptest server that answers every request with a
// fixed status and records what it received.
type RecordingServer struct {
	*httptest.Server

	Hits atomic.Int64

	mu         sync.Mutex
	userAgents []string
}

// NewRecordingServer starts a server answering status after delay.
func NewRecordingServer(t *testing.T, status int, delay time.Duration) *RecordingServer {
	t.Helper()
	rs := &RecordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.Hits.Add(1)
		rs.mu.Lock()
		rs.userAgents = append(rs.userAgents, r.Header.Get("User-Agent"))
		rs.mu.Unlock()
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(rs.Close)
	return rs
}

// UserAgents returns the User-Agent headers seen so far.
func (rs *RecordingServer) UserAgents() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]string(nil), rs.userAgents...)
}
