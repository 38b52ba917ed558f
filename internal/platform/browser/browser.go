// Package browser opens URLs in the user's default browser.
package browser

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"

	"github.com/pkg/browser"

	"movielinks/internal/platform/errors"
	"movielinks/internal/platform/logx"
)

// Runner opens a single URL. Tests replace it to record calls.
type Runner func(url string) error

// Opener opens URLs with the platform launcher.
type Opener struct {
	goos     string
	run      Runner
	lookPath func(string) (string, error)
	logger   logx.Logger
}

// Option configures an Opener.
type Option func(*Opener)

// WithRunner replaces the URL opener.
func WithRunner(r Runner) Option { return func(o *Opener) { o.run = r } }

// WithGOOS overrides the detected operating system.
func WithGOOS(goos string) Option { return func(o *Opener) { o.goos = goos } }

// WithLookPath replaces exec.LookPath.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(o *Opener) { o.lookPath = fn }
}

// New returns an Opener for the current platform.
func New(logger logx.Logger, opts ...Option) *Opener {
	if logger == nil {
		logger = logx.NewSilent()
	}
	o := &Opener{
		goos:     runtime.GOOS,
		run:      openURL,
		lookPath: exec.LookPath,
		logger:   logger.With("component", "browser"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// openURL hands the URL to the system launcher. Launcher chatter would
// corrupt the interactive prompt, so it is discarded.
func openURL(url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(url)
}

// Launchers lists the programs the system launcher may use on goos.
func Launchers(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32"}
	default:
		return []string{"xdg-open", "x-www-browser", "www-browser"}
	}
}

// Available reports whether a launcher for this platform is installed.
func (o *Opener) Available() bool {
	for _, name := range Launchers(o.goos) {
		if _, err := o.lookPath(name); err == nil {
			return true
		}
	}
	return false
}

// Open opens one URL.
func (o *Opener) Open(ctx context.Context, url string) error {
	if url == "" {
		return errors.Wrap(errors.ErrInvalidInput, "empty url")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := o.run(url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

// OpenAll opens every URL in order and returns how many were opened.
// A failing URL does not stop the rest; the errors are joined.
func (o *Opener) OpenAll(ctx context.Context, urls []string) (int, error) {
	opened := 0
	var errs []error
	for _, u := range urls {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if err := o.Open(ctx, u); err != nil {
			o.logger.Warn("could not open link", "url", u, "error", err.Error())
			errs = append(errs, err)
			continue
		}
		opened++
	}
	o.logger.Debug("links opened", "opened", opened, "total", len(urls))
	return opened, errors.Join(errs...)
}
