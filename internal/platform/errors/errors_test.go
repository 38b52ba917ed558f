package errors

import (
	"fmt"
	"testing"

	"movielinks/internal/testutil"
)

func TestWrap(t *testing.T) {
	t.Run("wraps error with context", func(t *testing.T) {
		wrapped := Wrap(ErrTemplatesNotFound, "load templates")

		testutil.AssertNotNil(t, wrapped, "wrapped error should not be nil")
		testutil.AssertTrue(t, Is(wrapped, ErrTemplatesNotFound), "should unwrap to sentinel")
		testutil.AssertEqual(t, wrapped.Error(), "load templates: templates file not found", "message should include context")
	})

	t.Run("returns nil when wrapping nil", func(t *testing.T) {
		testutil.AssertTrue(t, Wrap(nil, "context") == nil, "wrapping nil should return nil")
	})

	t.Run("multiple wraps preserve chain", func(t *testing.T) {
		base := New("base")
		wrapped := Wrap(Wrap(base, "layer 1"), "layer 2")

		testutil.AssertTrue(t, Is(wrapped, base), "should unwrap to base error")
		testutil.AssertEqual(t, wrapped.Error(), "layer 2: layer 1: base", "should show full chain")
	})
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrNotFound, "omdb title %q", "Heat")

	testutil.AssertTrue(t, IsNotFound(wrapped), "should match sentinel")
	testutil.AssertEqual(t, wrapped.Error(), `omdb title "Heat": resource not found`, "formatted context")
	testutil.AssertTrue(t, Wrapf(nil, "x %d", 1) == nil, "wrapping nil should return nil")
}

func TestAs(t *testing.T) {
	var target *wrappedError
	err := fmt.Errorf("outer: %w", Wrap(ErrInvalidResponse, "decode"))

	testutil.AssertTrue(t, As(err, &target), "should find wrappedError in chain")
	testutil.AssertEqual(t, target.msg, "decode", "should expose inner message")
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		pred func(error) bool
		err  error
		want bool
	}{
		{"timeout direct", IsTimeout, ErrTimeout, true},
		{"timeout wrapped", IsTimeout, Wrap(ErrTimeout, "probe"), true},
		{"rate limit", IsRateLimit, Wrap(ErrRateLimit, "omdb"), true},
		{"not found", IsNotFound, Wrap(ErrNotFound, "omdb"), true},
		{"invalid input", IsInvalidInput, Wrap(ErrInvalidInput, "title"), true},
		{"unauthorized", IsUnauthorized, ErrUnauthorized, true},
		{"invalid response", IsInvalidResponse, ErrInvalidResponse, true},
		{"mismatch", IsNotFound, ErrTimeout, false},
		{"nil", IsTimeout, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, tt.pred(tt.err), tt.want, "predicate result")
		})
	}
}

func TestJoin(t *testing.T) {
	joined := Join(ErrTemplatesNotFound, nil, ErrInvalidTemplates)

	testutil.AssertTrue(t, Is(joined, ErrTemplatesNotFound), "should match first")
	testutil.AssertTrue(t, Is(joined, ErrInvalidTemplates), "should match second")
	testutil.AssertTrue(t, Join(nil, nil) == nil, "join of nils is nil")
}
