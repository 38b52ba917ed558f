// internal/platform/ui/plain_presenter.go
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"movielinks/internal/core/domain"
)

// PlainPresenter writes uncolored text and reads answers line by line.
// Used with --no-color or when stdin is not a terminal.
type PlainPresenter struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewPlainPresenter returns a plain-text presenter over in/out
func NewPlainPresenter(in io.Reader, out io.Writer) *PlainPresenter {
	return &PlainPresenter{in: bufio.NewReader(in), out: out}
}

func (p *PlainPresenter) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

func (p *PlainPresenter) Welcome(info SessionInfo) {
	p.printf("%s\n%s\n", strings.TrimLeft(BannerPlain, "\n"), WelcomeMessage)
	p.printf("templates: %d movie, %d subtitle | workers: %d | timeout: %s | user agents: %d\n\n",
		info.MovieLinks, info.SubtitleLinks, info.Workers, info.ProbeTimeout, info.Identities)
}

// PromptTitle reads one line. A last line without a newline is accepted;
// EOF with no data returns io.EOF.
func (p *PlainPresenter) PromptTitle() (string, error) {
	p.printf("Enter a movie title: ")
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *PlainPresenter) StartCheck(heading string, total int) {
	p.printf("\nChecking %d %s... Please wait.\n", total, strings.ToLower(heading))
}

func (p *PlainPresenter) FinishCheck(stats CheckStats) {
	p.printf("%s: %s\n", stats.Heading, summaryLine(stats))
}

func (p *PlainPresenter) ShowLinks(heading string, rows []domain.LinkRow) {
	var b strings.Builder
	b.WriteString("\n" + SeparatorHeavy + "\n")
	b.WriteString(heading + ":\n")
	b.WriteString(SeparatorHeavy + "\n")
	if len(rows) == 0 {
		b.WriteString("No templates configured for this category.\n")
	}
	for _, line := range plainLinkLines(rows) {
		b.WriteString(line + "\n")
	}
	b.WriteString(SeparatorHeavy + "\n")
	p.printf("%s", b.String())
}

func (p *PlainPresenter) ShowDetails(details *domain.MovieDetails) {
	lines := detailLines(details)
	if len(lines) == 0 {
		return
	}
	var b strings.Builder
	b.WriteString("\nMovie Details\n" + SeparatorLight + "\n")
	for _, f := range lines {
		fmt.Fprintf(&b, "%s: %s\n", f[0], f[1])
	}
	p.printf("%s", b.String())
}

// Confirm asks (y/n). On EOF it returns the default along with io.EOF.
func (p *PlainPresenter) Confirm(question string, defaultValue bool) (bool, error) {
	hint := "y/N"
	if defaultValue {
		hint = "Y/n"
	}
	p.printf("%s (%s): ", question, hint)
	line, err := p.readLine()
	if err != nil {
		return defaultValue, err
	}
	return parseYesNo(line, defaultValue), nil
}

func (p *PlainPresenter) Info(msg string)    { p.printf("INFO: %s\n", msg) }
func (p *PlainPresenter) Warning(msg string) { p.printf("WARNING: %s\n", msg) }
func (p *PlainPresenter) Error(msg string)   { p.printf("ERROR: %s\n", msg) }
func (p *PlainPresenter) Close() error       { return nil }

func (p *PlainPresenter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err == io.EOF && line != "" {
		return line, nil
	}
	return line, err
}

// plainLinkLines formatea "1. [Found] YTS https://..." sin color
func plainLinkLines(rows []domain.LinkRow) []string {
	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		line := fmt.Sprintf("%d. [%s] ", i+1, row.Status.Label())
		if row.Site != "" {
			line += row.Site + " "
		}
		lines = append(lines, line+row.URL)
	}
	return lines
}

// New returns the presenter for mode
func New(mode Mode, in io.Reader, out io.Writer) Presenter {
	switch mode {
	case ModePretty:
		return NewPTermPresenter()
	case ModeQuiet:
		return NewNoopPresenter()
	default:
		return NewPlainPresenter(in, out)
	}
}
