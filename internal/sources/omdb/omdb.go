// Package omdb fetches movie metadata and title suggestions from the OMDb API.
package omdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"movielinks/internal/core/domain"
	"movielinks/internal/platform/errors"
	"movielinks/internal/platform/httpclient"
	"movielinks/internal/platform/logx"
)

const (
	DefaultBaseURL = "https://www.omdbapi.com/"
	DefaultTimeout = 10 * time.Second

	// MaxSuggestions caps Suggest results.
	MaxSuggestions = 10

	notAvailable = "N/A"
)

// Options configures a Client.
type Options struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration

	// RateLimit is outbound requests per second; 0 disables limiting.
	RateLimit float64

	// HTTP overrides the client built from the options above.
	HTTP   *httpclient.Client
	Logger logx.Logger
}

// Client implements ports.MetadataProvider.
type Client struct {
	apiKey  string
	baseURL string
	http    *httpclient.Client
	logger  logx.Logger
}

// New creates a Client. Without an API key every call returns
// ErrMetadataDisabled.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.HTTP == nil {
		opts.HTTP = httpclient.New(httpclient.Config{
			Timeout:        opts.Timeout,
			RateLimit:      opts.RateLimit,
			RateLimitBurst: 2,
			MaxBodyBytes:   512 << 10,
		}, opts.Logger)
	}

	return &Client{
		apiKey:  strings.TrimSpace(opts.APIKey),
		baseURL: opts.BaseURL,
		http:    opts.HTTP,
		logger:  opts.Logger.With("component", "omdb"),
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Close releases pooled connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// envelope carries the fields every OMDb response has.
type envelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// Rating is one entry of the OMDb Ratings list.
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

type movieResponse struct {
	envelope
	Title    string   `json:"Title"`
	Year     string   `json:"Year"`
	Released string   `json:"Released"`
	Runtime  string   `json:"Runtime"`
	Genre    string   `json:"Genre"`
	Director string   `json:"Director"`
	Actors   string   `json:"Actors"`
	Plot     string   `json:"Plot"`
	Poster   string   `json:"Poster"`
	IMDbID   string   `json:"imdbID"`
	Ratings  []Rating `json:"Ratings"`
}

type searchResponse struct {
	envelope
	Search []struct {
		Title  string `json:"Title"`
		Year   string `json:"Year"`
		IMDbID string `json:"imdbID"`
		Type   string `json:"Type"`
	} `json:"Search"`
}

// Lookup fetches details for an exact title.
func (c *Client) Lookup(ctx context.Context, title string) (*domain.MovieDetails, error) {
	if !c.Enabled() {
		return nil, errors.ErrMetadataDisabled
	}
	title = domain.NormalizeTitle(title)
	if title == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "empty title")
	}

	var mr movieResponse
	if err := c.fetch(ctx, url.Values{"t": {title}, "plot": {"short"}}, &mr); err != nil {
		return nil, errors.Wrapf(err, "omdb lookup %q", title)
	}

	details := &domain.MovieDetails{
		Title:    clean(mr.Title),
		Year:     clean(mr.Year),
		Released: clean(mr.Released),
		Runtime:  clean(mr.Runtime),
		Genre:    clean(mr.Genre),
		Director: clean(mr.Director),
		Actors:   clean(mr.Actors),
		Plot:     clean(mr.Plot),
		Poster:   clean(mr.Poster),
		IMDbID:   clean(mr.IMDbID),
		Ratings:  FlattenRatings(mr.Ratings),
	}
	c.logger.Debug("metadata found", "title", title, "imdb_id", details.IMDbID)
	return details, nil
}

// Suggest returns up to MaxSuggestions distinct titles matching query. No
// match is an empty list, not an error.
func (c *Client) Suggest(ctx context.Context, query string) ([]string, error) {
	if !c.Enabled() {
		return nil, errors.ErrMetadataDisabled
	}
	query = domain.NormalizeTitle(query)
	if query == "" {
		return []string{}, nil
	}

	var sr searchResponse
	if err := c.fetch(ctx, url.Values{"s": {query}}, &sr); err != nil {
		if errors.IsNotFound(err) {
			return []string{}, nil
		}
		return nil, errors.Wrapf(err, "omdb search %q", query)
	}

	seen := make(map[string]bool, len(sr.Search))
	titles := make([]string, 0, min(len(sr.Search), MaxSuggestions))
	for _, item := range sr.Search {
		t := strings.TrimSpace(item.Title)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		titles = append(titles, t)
		if len(titles) == MaxSuggestions {
			break
		}
	}
	return titles, nil
}

// fetch runs one query and decodes into v, translating OMDb error bodies.
func (c *Client) fetch(ctx context.Context, params url.Values, v any) error {
	params.Set("apikey", c.apiKey)
	reqURL := c.baseURL + "?" + params.Encode()

	resp, err := c.http.Get(ctx, reqURL, map[string]string{"Accept": "application/json"})
	if err != nil {
		return err
	}
	body, err := c.http.ReadBody(resp)
	if err != nil {
		return err
	}

	// OMDb reports most failures in the body, sometimes with a 200.
	var env envelope
	if jerr := json.Unmarshal(body, &env); jerr == nil && strings.EqualFold(env.Response, "False") {
		return classify(env.Error)
	}
	if err := httpclient.CheckStatus(resp); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Wrapf(errors.ErrInvalidResponse, "HTTP %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errors.Join(errors.ErrInvalidResponse, err)
	}
	return nil
}

func classify(msg string) error {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "not found"):
		return errors.Wrap(errors.ErrNotFound, msg)
	case strings.Contains(lower, "api key"):
		return errors.Wrap(errors.ErrUnauthorized, msg)
	case strings.Contains(lower, "limit reached"):
		return errors.Wrap(errors.ErrRateLimit, msg)
	case strings.Contains(lower, "too many results"):
		return errors.Wrap(errors.ErrNotFound, msg)
	default:
		return errors.Wrap(errors.ErrInvalidResponse, msg)
	}
}

// FlattenRatings renders ratings as "Source: Value, Source: Value".
func FlattenRatings(ratings []Rating) string {
	parts := make([]string, 0, len(ratings))
	for _, r := range ratings {
		src, val := strings.TrimSpace(r.Source), clean(r.Value)
		if src == "" || val == "" {
			continue
		}
		parts = append(parts, src+": "+val)
	}
	return strings.Join(parts, ", ")
}

func clean(s string) string {
	s = strings.TrimSpace(s)
	if s == notAvailable {
		return ""
	}
	return s
}
