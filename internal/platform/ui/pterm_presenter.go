// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"movielinks/internal/core/domain"
)

// PTermPresenter implements Presenter with pterm: banner, interactive
// prompts, spinner and link tables.
type PTermPresenter struct {
	mu      sync.Mutex
	spinner *pterm.SpinnerPrinter
}

// NewPTermPresenter returns a pterm-backed presenter
func NewPTermPresenter() *PTermPresenter {
	return &PTermPresenter{}
}

// Welcome prints the banner and the session configuration
func (p *PTermPresenter) Welcome(info SessionInfo) {
	if err := pterm.DefaultBigText.
		WithLetters(putils.LettersFromStringWithRGB(BannerText, MarqueeGold)).
		Render(); err != nil {
		pterm.Print(BannerPlain)
	}

	pterm.Println(StylePrimary.Sprint(WelcomeMessage))
	pterm.Println()

	metadata := StyleSecondary.Sprint("OFF")
	if info.MetadataActive {
		metadata = StyleSuccess.Sprint("ON")
	}

	body := fmt.Sprintf("%s Movie templates: %d\n", IconMovie, info.MovieLinks)
	body += fmt.Sprintf("%s Subtitle templates: %d\n", IconSubtitle, info.SubtitleLinks)
	body += fmt.Sprintf("%s Workers: %d\n", IconWorkers, info.Workers)
	body += fmt.Sprintf("%s Timeout: %s\n", IconTime, info.ProbeTimeout)
	body += fmt.Sprintf("   User agents: %d\n", info.Identities)
	body += fmt.Sprintf("   OMDb details: %s", metadata)

	title := "Session"
	if info.Version != "" {
		title = "movielinks " + info.Version
	}

	pterm.DefaultBox.
		WithTitle(title).
		WithTitleTopCenter().
		WithLeftPadding(2).
		WithRightPadding(2).
		Println(body)
	pterm.Println()
}

// PromptTitle asks for the title with an interactive input
func (p *PTermPresenter) PromptTitle() (string, error) {
	title, err := pterm.DefaultInteractiveTextInput.Show("Enter a movie title")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(title), nil
}

// StartCheck starts a spinner while links are checked
func (p *PTermPresenter) StartCheck(heading string, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopSpinnerLocked()
	text := fmt.Sprintf("Checking %d %s... Please wait.", total, strings.ToLower(heading))
	spinner, err := pterm.DefaultSpinner.WithRemoveWhenDone(false).Start(text)
	if err != nil {
		pterm.Info.Println(text)
		return
	}
	p.spinner = spinner
}

// FinishCheck stops the spinner with the status summary
func (p *PTermPresenter) FinishCheck(stats CheckStats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	msg := fmt.Sprintf("%s: %s", stats.Heading, summaryLine(stats))
	if p.spinner == nil {
		pterm.Success.Println(msg)
		return
	}
	if stats.Total > 0 && stats.Errors == stats.Total {
		p.spinner.Warning(msg)
	} else {
		p.spinner.Success(msg)
	}
	p.spinner = nil
}

// ShowLinks prints the numbered link table
func (p *PTermPresenter) ShowLinks(heading string, rows []domain.LinkRow) {
	pterm.DefaultSection.Println(heading)

	if len(rows) == 0 {
		pterm.Warning.Println("No templates configured for this category.")
		return
	}

	if err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithData(LinkTable(rows, true)).
		Render(); err != nil {
		for _, line := range plainLinkLines(rows) {
			pterm.Println(line)
		}
	}
	pterm.Println()
}

// ShowDetails prints OMDb metadata in a box
func (p *PTermPresenter) ShowDetails(details *domain.MovieDetails) {
	lines := detailLines(details)
	if len(lines) == 0 {
		return
	}

	var b strings.Builder
	for i, f := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(StyleSecondary.Sprint(f[0] + ": "))
		b.WriteString(f[1])
	}

	pterm.DefaultBox.
		WithTitle(StylePrimary.Sprint("Movie Details")).
		WithTitleTopLeft().
		WithLeftPadding(2).
		WithRightPadding(2).
		Println(b.String())
	pterm.Println()
}

// Confirm uses pterm's interactive confirm
func (p *PTermPresenter) Confirm(question string, defaultValue bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.
		WithDefaultValue(defaultValue).
		Show(question)
}

func (p *PTermPresenter) Info(msg string)    { pterm.Info.Println(msg) }
func (p *PTermPresenter) Warning(msg string) { pterm.Warning.Println(msg) }
func (p *PTermPresenter) Error(msg string)   { pterm.Error.Println(msg) }

// Close stops any active spinner
func (p *PTermPresenter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopSpinnerLocked()
	return nil
}

func (p *PTermPresenter) stopSpinnerLocked() {
	if p.spinner != nil {
		_ = p.spinner.Stop()
		p.spinner = nil
	}
}

// LinkTable builds the table rows: number, status, site and URL.
// With colored=false the cells carry no ANSI sequences.
func LinkTable(rows []domain.LinkRow, colored bool) pterm.TableData {
	data := pterm.TableData{{"#", "Status", "Site", "URL"}}
	for i, row := range rows {
		idx := fmt.Sprintf("%d", i+1)
		status := "[" + row.Status.Label() + "]"
		url := row.URL
		if colored {
			idx = StyleIndex.Sprint(idx)
			status = StatusTag(row.Status)
			url = StyleLink.Sprint(url)
		}
		data = append(data, []string{idx, status, row.Site, url})
	}
	return data
}
