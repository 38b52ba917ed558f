// internal/core/domain/status.go
package domain

// Status is the reachability classification of one probed URL.
type Status string

const (
	// StatusFound means the URL answered with HTTP 200.
	StatusFound Status = "Found"

	// StatusUnsure means the URL answered with any other HTTP status code.
	StatusUnsure Status = "Unsure"

	// StatusError means the request never produced a response (timeout,
	// DNS failure, refused connection, TLS failure, malformed URL).
	StatusError Status = "Error"
)

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusFound, StatusUnsure, StatusError:
		return true
	default:
		return false
	}
}

// String returns the wire form of the status.
func (s Status) String() string {
	return string(s)
}

// Label returns the human-readable form used by terminal output.
func (s Status) Label() string {
	if s == StatusError {
		return "Error (Timeout or Unreachable)"
	}
	return string(s)
}

// ClassifyHTTPStatus maps a completed response code to a Status.
// Only 200 counts as found; every other code is unsure.
func ClassifyHTTPStatus(code int) Status {
	if code == 200 {
		return StatusFound
	}
	return StatusUnsure
}

// Category distinguishes the two template families of a search.
type Category string

const (
	CategoryMovie    Category = "movie"
	CategorySubtitle Category = "subtitle"
)

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	return c == CategoryMovie || c == CategorySubtitle
}
