// cmd/movielinks/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"golang.org/x/term"

	"movielinks/internal/adapters/output"
	"movielinks/internal/app"
	"movielinks/internal/platform/browser"
	"movielinks/internal/platform/config"
	"movielinks/internal/platform/logx"
	"movielinks/internal/platform/ui"
)

var (
	// Set with -ldflags at build time
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// 1. Config (flags > env > .env > defaults)
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration load failed: %v\n", err)
		fmt.Fprintln(os.Stderr, "Try: movielinks -h for help")
		return exitUsage
	}
	if cfg.ShowHelp {
		config.PrintHelp()
		return exitOK
	}
	if cfg.PrintVersion {
		config.PrintVersion("movielinks", version, commit, date)
		return exitOK
	}
	if cfg.Output.JSON && cfg.Output.Title == "" {
		fmt.Fprintln(os.Stderr, "Error: --json needs a title")
		fmt.Fprintln(os.Stderr, "Usage: movielinks --json -t \"The Matrix\"")
		return exitUsage
	}

	stdinTTY := term.IsTerminal(int(os.Stdin.Fd()))
	stdoutTTY := term.IsTerminal(int(os.Stdout.Fd()))
	mode := presenterMode(cfg, stdinTTY, stdoutTTY)
	if cfg.Output.NoColor || mode != ui.ModePretty {
		pterm.DisableColor()
	}

	// 2. Logger: the terminal belongs to the presenter unless -v
	level := logx.ParseLevel(cfg.Log.Level)
	if mode != ui.ModeQuiet && !cfg.Log.Verbose && level < logx.LevelWarn {
		level = logx.LevelWarn
	}
	logger := logx.NewWithLevel(level)
	logger.Debug("movielinks starting", "version", version, "commit", commit, "mode", string(mode))

	presenter := ui.New(mode, os.Stdin, os.Stdout)
	defer presenter.Close()

	// 3. Context and signals
	ctx, cancel := rootContextWithSignals()
	defer cancel()

	// 4. Search stack; a missing or broken template file is fatal here
	a, err := app.Build(cfg, logger, app.Options{})
	if err != nil {
		presenter.Error(fmt.Sprintf("cannot start: %v", err))
		logger.Err(err, "phase", "build")
		return exitFailure
	}
	defer a.Close()

	sess := &session{
		search:        a.Search,
		ui:            presenter,
		movieCount:    len(a.Templates.Movies),
		subtitleCount: len(a.Templates.Subtitles),
		saveDir:       cfg.Output.Dir,
		logger:        logger,
	}
	if !cfg.Output.NoBrowser && stdinTTY && mode != ui.ModeQuiet {
		sess.open = browser.New(logger)
	}

	// 5. One-shot modes
	if cfg.Output.Title != "" {
		if cfg.Output.JSON || !stdoutTTY {
			return oneShot(ctx, a, cfg, logger)
		}
		return sess.once(ctx, cfg.Output.Title)
	}

	// 6. Interactive loop
	presenter.Welcome(ui.SessionInfo{
		Version:        version,
		Templates:      cfg.Templates.Path,
		MovieLinks:     len(a.Templates.Movies),
		SubtitleLinks:  len(a.Templates.Subtitles),
		Workers:        cfg.Probe.Workers,
		ProbeTimeout:   cfg.Probe.Timeout,
		Identities:     a.Identities.Identities().Len(),
		MetadataActive: a.Metadata.Enabled(),
	})
	return sess.run(ctx)
}

// oneShot prints a single result as JSON or as a table for pipes.
func oneShot(ctx context.Context, a *app.App, cfg config.Config, logger logx.Logger) int {
	res, err := a.Search.Search(ctx, cfg.Output.Title)
	if err != nil {
		logger.Err(err, "phase", "search", "title", cfg.Output.Title)
		if ctx.Err() != nil {
			return exitInterrupted
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}

	if cfg.Output.Dir != "" {
		if path, err := output.OutputJSON(cfg.Output.Dir, res); err != nil {
			logger.Err(err, "phase", "save")
		} else {
			logger.Info("result saved", "path", path)
		}
	}

	if cfg.Output.JSON {
		err = output.WriteJSON(os.Stdout, res, true)
	} else {
		err = output.OutputTable(os.Stdout, res)
	}
	if err != nil {
		logger.Err(err, "phase", "output")
		return exitFailure
	}
	return exitOK
}

// presenterMode picks the presenter: quiet for JSON, plain without a
// terminal or with --no-color, pterm otherwise.
func presenterMode(cfg config.Config, stdinTTY, stdoutTTY bool) ui.Mode {
	switch {
	case cfg.Output.JSON:
		return ui.ModeQuiet
	case cfg.Output.NoColor || !stdinTTY || !stdoutTTY:
		return ui.ModePlain
	default:
		return ui.ModePretty
	}
}

// rootContextWithSignals creates a root context cancelled on SIGINT/SIGTERM.
// The returned cancel stops signal delivery and cancels the context.
func rootContextWithSignals() (context.Context, context.CancelFunc) {
	base, baseCancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			baseCancel()
		case <-base.Done():
		}
	}()

	cleanup := func() {
		signal.Stop(ch)
		baseCancel()
	}
	return base, cleanup
}
