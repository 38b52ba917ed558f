// internal/platform/config/help.go
package config

import (
	"fmt"
	"io"
	"os"
	"runtime"
)

const helpText = `
movielinks - find where a movie and its subtitles can be found

USAGE:
  movielinks [options] [title]
  movielinks-server [options]

IMPORTANT:
  Use double dash (--) for long flag names: --title, --workers, --timeout
  Use single dash (-) for short flags: -t, -w, -T

SEARCH OPTIONS:
  -t, --title string         Search this title and exit after one round
      --json                 Print the result as JSON (no prompts, no tables)
      --no-browser           Never offer to open the links in a browser
      --no-color             Disable colored output
  -o, --output-dir string    Also save every result as JSON in this directory

LINK OPTIONS:
      --templates string     Link template file, JSON or YAML (default: "templates.json")
      --user-agents string   User agent file, one per line (default: "user_agents.txt")
      --identity-reload str  When to read the user agent file:
                               startup    once, when the program starts (default)
                               per-batch  before every batch of checks

PROBE OPTIONS:
  -T, --timeout duration     Per-link timeout (default: 5s)
  -w, --workers int          Maximum concurrent checks per batch (default: 15)
  -p, --proxy string         HTTP(S) proxy for link checks (optional)

METADATA OPTIONS:
      --omdb-key string      OMDb API key; movie details are skipped without one
      --omdb-url string      OMDb API base URL (default: "https://www.omdbapi.com/")

SERVER OPTIONS (movielinks-server):
  -a, --addr string          Listen address (default: ":5000")
      --rate-limit float     Requests per second per client (default: 2)
      --rate-burst int       Burst per client (default: 5)
      --cors-origins list    Comma-separated allowed origins (default: none)
      --cache-ttl duration   Search result cache lifetime, 0 disables (default: 10m)
      --cache-size int       Search result cache entries (default: 256)

INFO:
      --log-level string     debug, info, warn or error (default: "info")
  -v, --verbose              Debug logging
      --version              Print version information and exit
  -h, --help                 Show this help message

EXAMPLES:
  Interactive session:
    movielinks

  One search, JSON output:
    movielinks --json "The Matrix"

  Slow network:
    movielinks -T 10s -w 5 -t "Heat"

  Web UI on port 8080 with movie details:
    movielinks-server -a :8080 --omdb-key abc123

ENVIRONMENT VARIABLES:
  A .env file in the working directory is read first (MOVIELINKS_ENV_FILE
  overrides its path). Variables already set in the environment win over it.

  MOVIELINKS_TEMPLATES=links.yaml      Template file
  MOVIELINKS_USER_AGENTS=ua.txt        User agent file
  MOVIELINKS_IDENTITY_RELOAD=per-batch Reload policy
  MOVIELINKS_PROBE_TIMEOUT=5s          Per-link timeout
  MOVIELINKS_WORKERS=15                Concurrent checks per batch
  MOVIELINKS_PROXY_URL=http://...      Proxy
  OMDB_API_KEY=...                     OMDb key (MOVIELINKS_OMDB_API_KEY also works)
  MOVIELINKS_ADDR=:5000                Listen address (PORT is honored too)
  MOVIELINKS_RATE_LIMIT=2              Requests per second per client
  MOVIELINKS_CORS_ORIGINS=a.com,b.com  Allowed origins
  MOVIELINKS_CACHE_TTL=10m             Cache lifetime
  MOVIELINKS_LOG_LEVEL=debug           Log level

  Note: CLI flags override environment variables.

STATUSES:
  Found    the site answered 200 OK
  Unsure   the site answered with any other status code
  Error    no answer at all (timeout, DNS, refused, TLS)
`

// HelpText returns the usage text.
func HelpText() string {
	return helpText
}

// PrintHelp prints the custom help message and exits.
func PrintHelp() {
	fmt.Fprint(os.Stdout, helpText)
	os.Exit(0)
}

// PrintVersion prints version information and exits.
func PrintVersion(name, version, commit, date string) {
	writeVersion(os.Stdout, name, version, commit, date)
	os.Exit(0)
}

func writeVersion(w io.Writer, name, version, commit, date string) {
	fmt.Fprintf(w, "%s %s\n", name, version)
	fmt.Fprintf(w, "  Commit:  %s\n", commit)
	fmt.Fprintf(w, "  Built:   %s\n", date)
	fmt.Fprintf(w, "  Go:      %s\n", runtime.Version())
}
