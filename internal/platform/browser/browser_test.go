package browser

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"

	"movielinks/internal/platform/errors"
	"movielinks/internal/testutil"
)

type recorder struct {
	mu   sync.Mutex
	urls []string
	fail map[string]bool
}

func (r *recorder) run(url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = append(r.urls, url)
	if r.fail[url] {
		return stderrors.New("launcher failed")
	}
	return nil
}

func TestLaunchers(t *testing.T) {
	tests := []struct {
		goos string
		want []string
	}{
		{"linux", []string{"xdg-open", "x-www-browser", "www-browser"}},
		{"freebsd", []string{"xdg-open", "x-www-browser", "www-browser"}},
		{"darwin", []string{"open"}},
		{"windows", []string{"rundll32"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			testutil.AssertEqual(t, Launchers(tt.goos), tt.want, "launchers")
		})
	}
}

func TestNew_DefaultsToSystemLauncher(t *testing.T) {
	o := New(nil)
	testutil.AssertNotNil(t, o.run, "runner set")
	testutil.AssertNotNil(t, o.lookPath, "lookPath set")
}

func TestOpenAll_InOrder(t *testing.T) {
	rec := &recorder{}
	o := New(nil, WithRunner(rec.run))

	n, err := o.OpenAll(context.Background(), []string{"https://a.test", "https://b.test"})

	testutil.AssertNoError(t, err, "open all")
	testutil.AssertEqual(t, n, 2, "opened count")
	testutil.AssertEqual(t, rec.urls, []string{"https://a.test", "https://b.test"}, "one call per url, in order")
}

func TestOpenAll_ContinuesAfterFailure(t *testing.T) {
	rec := &recorder{fail: map[string]bool{"https://bad.test": true}}
	o := New(nil, WithRunner(rec.run))

	n, err := o.OpenAll(context.Background(), []string{"https://bad.test", "https://ok.test"})

	testutil.AssertError(t, err, "failure is reported")
	testutil.AssertEqual(t, n, 1, "remaining url still opened")
	testutil.AssertEqual(t, len(rec.urls), 2, "both attempted")
}

func TestOpenAll_CancelledContext(t *testing.T) {
	rec := &recorder{}
	o := New(nil, WithRunner(rec.run))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := o.OpenAll(ctx, []string{"https://a.test"})

	testutil.AssertTrue(t, errors.Is(err, context.Canceled), "context error returned")
	testutil.AssertEqual(t, n, 0, "nothing opened")
	testutil.AssertEqual(t, len(rec.urls), 0, "launcher not called")
}

func TestOpen_EmptyURL(t *testing.T) {
	rec := &recorder{}
	o := New(nil, WithRunner(rec.run))

	err := o.Open(context.Background(), "")
	testutil.AssertTrue(t, errors.IsInvalidInput(err), "empty url is invalid input")
	testutil.AssertEqual(t, len(rec.urls), 0, "launcher not called")
}

func TestOpen_WrapsLauncherError(t *testing.T) {
	rec := &recorder{fail: map[string]bool{"https://bad.test": true}}
	o := New(nil, WithRunner(rec.run))

	err := o.Open(context.Background(), "https://bad.test")
	testutil.AssertError(t, err, "launcher error returned")
	testutil.AssertContains(t, err.Error(), "https://bad.test", "url in error")
}

func TestAvailable(t *testing.T) {
	var looked []string
	o := New(nil, WithGOOS("linux"), WithLookPath(func(name string) (string, error) {
		looked = append(looked, name)
		if name == "www-browser" {
			return "/usr/bin/www-browser", nil
		}
		return "", stderrors.New("not found")
	}))

	testutil.AssertTrue(t, o.Available(), "fallback launcher found")
	testutil.AssertEqual(t, looked, []string{"xdg-open", "x-www-browser", "www-browser"}, "candidates tried in order")

	o = New(nil, WithGOOS("windows"), WithLookPath(func(string) (string, error) {
		return "", stderrors.New("not found")
	}))
	testutil.AssertFalse(t, o.Available(), "missing launcher")
}
