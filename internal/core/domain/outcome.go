// internal/core/domain/outcome.go
package domain

import "time"

// Outcome is the result of probing a single URL.
type Outcome struct {
	URL    string `json:"url"`
	Status Status `json:"status"`

	// Code is the final HTTP status code; zero when the request failed.
	Code int `json:"code,omitempty"`

	// Duration is the wall time of the probe.
	Duration time.Duration `json:"duration_ns,omitempty"`
}

// Results maps each probed URL to its status. Duplicate URLs collapse into
// one key.
type Results map[string]Status

// NewResults returns an empty mapping sized for n URLs.
func NewResults(n int) Results {
	return make(Results, n)
}

// Record stores an outcome; the last write for a URL wins.
func (r Results) Record(o Outcome) {
	r[o.URL] = o.Status
}

// Count returns how many URLs have the given status.
func (r Results) Count(s Status) int {
	n := 0
	for _, st := range r {
		if st == s {
			n++
		}
	}
	return n
}

// Stats returns the number of URLs per status.
func (r Results) Stats() map[Status]int {
	stats := make(map[Status]int, 3)
	for _, st := range r {
		stats[st]++
	}
	return stats
}
