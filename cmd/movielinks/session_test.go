package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"movielinks/internal/core/domain"
	"movielinks/internal/platform/config"
	"movielinks/internal/platform/errors"
	"movielinks/internal/platform/logx"
	"movielinks/internal/platform/ui"
	"movielinks/internal/testutil"
)

type fakeSearch struct {
	mu     sync.Mutex
	titles []string
	err    error
}

func (f *fakeSearch) Search(ctx context.Context, title string) (*domain.SearchResult, error) {
	f.mu.Lock()
	f.titles = append(f.titles, title)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	movie := "https://a.test/" + strings.ReplaceAll(title, " ", "+")
	sub := "https://b.test/" + strings.ReplaceAll(title, " ", "+")
	return &domain.SearchResult{
		Title:         title,
		Movies:        domain.Results{movie: domain.StatusFound},
		Subtitles:     domain.Results{sub: domain.StatusUnsure},
		MovieLinks:    []domain.LinkRow{{Site: "a.test", URL: movie, Status: domain.StatusFound}},
		SubtitleLinks: []domain.LinkRow{{Site: "b.test", URL: sub, Status: domain.StatusUnsure}},
	}, nil
}

type fakeOpener struct {
	urls []string
}

func (f *fakeOpener) OpenAll(ctx context.Context, urls []string) (int, error) {
	f.urls = append(f.urls, urls...)
	return len(urls), nil
}

func newSession(input string, search searcher, open linkOpener) (*session, *bytes.Buffer) {
	var out bytes.Buffer
	return &session{
		search:        search,
		ui:            ui.NewPlainPresenter(strings.NewReader(input), &out),
		open:          open,
		movieCount:    1,
		subtitleCount: 1,
		logger:        logx.NewSilent(),
	}, &out
}

func TestSession_SearchOpenAndQuit(t *testing.T) {
	search := &fakeSearch{}
	opener := &fakeOpener{}
	// title, open links? y, another? n
	sess, out := newSession("The Matrix\ny\nn\n", search, opener)

	code := sess.run(context.Background())

	testutil.AssertEqual(t, code, exitOK, "exit code")
	testutil.AssertEqual(t, search.titles, []string{"The Matrix"}, "one search")
	testutil.AssertEqual(t, opener.urls, []string{"https://a.test/The+Matrix", "https://b.test/The+Matrix"}, "movie links then subtitle links")

	got := out.String()
	for _, want := range []string{
		"Generated Links for Movies:",
		"1. [Found] a.test https://a.test/The+Matrix",
		"Generated Links for Subtitles:",
		"1. [Unsure] b.test https://b.test/The+Matrix",
		"All links have been opened in your browser.",
	} {
		testutil.AssertTrue(t, strings.Contains(got, want), "output should contain "+want)
	}
}

func TestSession_DeclineBrowserAndSearchAgain(t *testing.T) {
	search := &fakeSearch{}
	opener := &fakeOpener{}
	sess, out := newSession("Heat\nn\ny\nAlien\n\n", search, opener)

	code := sess.run(context.Background())

	testutil.AssertEqual(t, code, exitOK, "exit code")
	testutil.AssertEqual(t, search.titles, []string{"Heat", "Alien"}, "two searches")
	testutil.AssertEqual(t, len(opener.urls), 0, "nothing opened")
	testutil.AssertTrue(t, strings.Contains(out.String(), "Opening links canceled."), "cancel message")
}

func TestSession_EmptyTitleReprompts(t *testing.T) {
	search := &fakeSearch{}
	sess, out := newSession("   \nHeat\n", search, nil)

	code := sess.run(context.Background())

	testutil.AssertEqual(t, code, exitOK, "input ends cleanly")
	testutil.AssertEqual(t, search.titles, []string{"Heat"}, "blank title never searched")
	testutil.AssertTrue(t, strings.Contains(out.String(), "Please enter a movie title."), "warning shown")
}

func TestSession_NoBrowserNeverAsks(t *testing.T) {
	sess, out := newSession("Heat\n", &fakeSearch{}, nil)

	sess.run(context.Background())

	testutil.AssertFalse(t, strings.Contains(out.String(), "open all links"), "no browser prompt")
}

func TestSession_SearchFailure(t *testing.T) {
	sess, out := newSession("Heat\n", &fakeSearch{err: errors.New("boom")}, nil)

	code := sess.run(context.Background())

	testutil.AssertEqual(t, code, exitFailure, "failure exit code")
	testutil.AssertTrue(t, strings.Contains(out.String(), "ERROR: boom"), "error shown")
}

func TestSession_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sess, _ := newSession("Heat\n", &fakeSearch{err: context.Canceled}, nil)

	testutil.AssertEqual(t, sess.run(ctx), exitInterrupted, "interrupted exit code")
}

func TestSession_SavesResult(t *testing.T) {
	dir := t.TempDir()
	sess, out := newSession("Heat\n", &fakeSearch{}, nil)
	sess.saveDir = dir

	sess.run(context.Background())

	entries, err := os.ReadDir(dir)
	testutil.AssertNoError(t, err, "read dir")
	testutil.AssertEqual(t, len(entries), 1, "one file saved")
	testutil.AssertTrue(t, strings.Contains(out.String(), "Result saved to"), "save reported")
}

func TestPresenterMode(t *testing.T) {
	tests := []struct {
		name          string
		json, noColor bool
		stdin, stdout bool
		want          ui.Mode
	}{
		{"json", true, false, true, true, ui.ModeQuiet},
		{"terminal", false, false, true, true, ui.ModePretty},
		{"no color", false, true, true, true, ui.ModePlain},
		{"piped stdin", false, false, false, true, ui.ModePlain},
		{"piped stdout", false, false, true, false, ui.ModePlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Output.JSON = tt.json
			cfg.Output.NoColor = tt.noColor
			testutil.AssertEqual(t, presenterMode(cfg, tt.stdin, tt.stdout), tt.want, "mode")
		})
	}
}
