// Package sites maps candidate URLs to the short site names shown in result
// tables.
package sites

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// labels is keyed by registrable domain (eTLD+1).
var labels = map[string]string{
	"yts.mx":             "YTS",
	"1337x.to":           "1337x",
	"thepiratebay.org":   "The Pirate Bay",
	"torrentgalaxy.to":   "TorrentGalaxy",
	"limetorrents.lol":   "LimeTorrents",
	"rarbg.to":           "RARBG",
	"fmovies.to":         "FMovies",
	"123movies.net":      "123Movies",
	"soap2day.to":        "Soap2Day",
	"justwatch.com":      "JustWatch",
	"imdb.com":           "IMDb",
	"archive.org":        "Internet Archive",
	"opensubtitles.org":  "OpenSubtitles",
	"opensubtitles.com":  "OpenSubtitles",
	"subscene.com":       "Subscene",
	"yifysubtitles.ch":   "YIFY Subtitles",
	"podnapisi.net":      "Podnapisi",
	"addic7ed.com":       "Addic7ed",
	"subdl.com":          "SubDL",
	"tvsubtitles.net":    "TVsubtitles",
	"moviesubtitles.org": "MovieSubtitles",
}

// Labeler resolves site names. The zero value uses the built-in table.
type Labeler struct {
	extra map[string]string
}

// NewLabeler returns a Labeler whose overrides take precedence over the
// built-in table. Keys are registrable domains.
func NewLabeler(overrides map[string]string) *Labeler {
	extra := make(map[string]string, len(overrides))
	for k, v := range overrides {
		extra[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Labeler{extra: extra}
}

// Label returns the display name for rawURL. Unknown hosts fall back to
// their registrable domain, and unparsable input to the input itself.
func (l *Labeler) Label(rawURL string) string {
	base := BaseDomain(rawURL)
	if base == "" {
		return rawURL
	}
	if l != nil {
		if name, ok := l.extra[base]; ok {
			return name
		}
	}
	if name, ok := labels[base]; ok {
		return name
	}
	return base
}

// Label uses the built-in table.
func Label(rawURL string) string {
	return (*Labeler)(nil).Label(rawURL)
}

// BaseDomain extracts the eTLD+1 of the URL host, e.g.
// https://www.opensubtitles.org/en -> opensubtitles.org. Hosts without a
// registrable domain (IPs, localhost) are returned as is.
func BaseDomain(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "" {
		return ""
	}
	if net.ParseIP(host) != nil {
		return host
	}
	base, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return base
}
