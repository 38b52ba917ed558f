// internal/platform/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"movielinks/internal/platform/errors"
	"movielinks/internal/platform/identity"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "MOVIELINKS_"

type Config struct {
	Templates Templates
	Identity  Identity
	Probe     Probe
	OMDb      OMDb
	Server    Server
	Output    Output
	Log       Log

	// EnvFile is the dotenv file read before the environment.
	EnvFile string

	PrintVersion bool
	ShowHelp     bool
}

type Templates struct {
	Path string // .json, .yaml or .yml
}

type Identity struct {
	Path   string
	Reload identity.ReloadPolicy
}

type Probe struct {
	Timeout  time.Duration
	Workers  int // ceiling per batch
	ProxyURL string
}

type OMDb struct {
	APIKey    string `json:"-"`
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests/s, 0 = unlimited
}

type Server struct {
	Addr            string
	RateLimit       float64 // per client, requests/s
	RateBurst       int
	CORSOrigins     []string
	CacheTTL        time.Duration
	CacheSize       int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type Output struct {
	Title     string // non-interactive search when set
	JSON      bool
	NoBrowser bool
	NoColor   bool
	Dir       string // each result is also saved here as JSON when set
}

type Log struct {
	Level   string
	Verbose bool
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Templates: Templates{Path: "templates.json"},
		Identity: Identity{
			Path:   "user_agents.txt",
			Reload: identity.ReloadOnce,
		},
		Probe: Probe{
			Timeout: 5 * time.Second,
			Workers: 15,
		},
		OMDb: OMDb{
			BaseURL:   "https://www.omdbapi.com/",
			Timeout:   8 * time.Second,
			RateLimit: 5,
		},
		Server: Server{
			Addr:            ":5000",
			RateLimit:       2,
			RateBurst:       5,
			CacheTTL:        10 * time.Minute,
			CacheSize:       256,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log:     Log{Level: "info"},
		EnvFile: ".env",
	}
}

// Load builds the configuration: defaults, then the .env file, then the
// environment, then args (flags win).
func Load(args []string) (Config, error) {
	cfg := DefaultConfig()

	if v := getenv(EnvPrefix+"ENV_FILE", ""); v != "" {
		cfg.EnvFile = v
	}
	if err := loadEnvFile(cfg.EnvFile); err != nil {
		return cfg, err
	}

	loadFromEnv(&cfg)

	if err := loadFromFlags(&cfg, args); err != nil {
		return cfg, err
	}

	normalize(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadEnvFile reads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "env file %s: %v", path, err)
	}
	return nil
}

// loadFromEnv applies MOVIELINKS_* environment variables.
func loadFromEnv(cfg *Config) {
	if v := getenv(EnvPrefix+"TEMPLATES", ""); v != "" {
		cfg.Templates.Path = v
	}
	if v := getenv(EnvPrefix+"USER_AGENTS", ""); v != "" {
		cfg.Identity.Path = v
	}
	if v := getenv(EnvPrefix+"IDENTITY_RELOAD", ""); v != "" {
		cfg.Identity.Reload = identity.ReloadPolicy(strings.ToLower(strings.TrimSpace(v)))
	}

	if v := getenv(EnvPrefix+"PROBE_TIMEOUT", ""); v != "" {
		cfg.Probe.Timeout = parseDuration(v, cfg.Probe.Timeout)
	}
	if v := getenv(EnvPrefix+"WORKERS", ""); v != "" {
		cfg.Probe.Workers = parseInt(v, cfg.Probe.Workers)
	}
	if v := getenv(EnvPrefix+"PROXY_URL", ""); v != "" {
		cfg.Probe.ProxyURL = v
	}

	// OMDB_API_KEY is the name the API docs use; the prefixed one wins.
	if v := getenv("OMDB_API_KEY", ""); v != "" {
		cfg.OMDb.APIKey = v
	}
	if v := getenv(EnvPrefix+"OMDB_API_KEY", ""); v != "" {
		cfg.OMDb.APIKey = v
	}
	if v := getenv(EnvPrefix+"OMDB_URL", ""); v != "" {
		cfg.OMDb.BaseURL = v
	}
	if v := getenv(EnvPrefix+"OMDB_TIMEOUT", ""); v != "" {
		cfg.OMDb.Timeout = parseDuration(v, cfg.OMDb.Timeout)
	}
	if v := getenv(EnvPrefix+"OMDB_RATE_LIMIT", ""); v != "" {
		cfg.OMDb.RateLimit = parseFloat(v, cfg.OMDb.RateLimit)
	}

	if v := getenv(EnvPrefix+"ADDR", ""); v != "" {
		cfg.Server.Addr = v
	} else if v := getenv("PORT", ""); v != "" {
		cfg.Server.Addr = ":" + strings.TrimPrefix(v, ":")
	}
	if v := getenv(EnvPrefix+"RATE_LIMIT", ""); v != "" {
		cfg.Server.RateLimit = parseFloat(v, cfg.Server.RateLimit)
	}
	if v := getenv(EnvPrefix+"RATE_BURST", ""); v != "" {
		cfg.Server.RateBurst = parseInt(v, cfg.Server.RateBurst)
	}
	if v := getenv(EnvPrefix+"CORS_ORIGINS", ""); v != "" {
		cfg.Server.CORSOrigins = splitList(v)
	}
	if v := getenv(EnvPrefix+"CACHE_TTL", ""); v != "" {
		cfg.Server.CacheTTL = parseDuration(v, cfg.Server.CacheTTL)
	}
	if v := getenv(EnvPrefix+"CACHE_SIZE", ""); v != "" {
		cfg.Server.CacheSize = parseInt(v, cfg.Server.CacheSize)
	}

	if v := getenv(EnvPrefix+"OUTPUT_DIR", ""); v != "" {
		cfg.Output.Dir = v
	}
	if v := getenv(EnvPrefix+"NO_BROWSER", ""); v != "" {
		cfg.Output.NoBrowser = parseBool(v)
	}
	if v := getenv("NO_COLOR", ""); v != "" {
		cfg.Output.NoColor = true
	}
	if v := getenv(EnvPrefix+"LOG_LEVEL", ""); v != "" {
		cfg.Log.Level = v
	}
}

// loadFromFlags parses CLI flags on a private FlagSet.
func loadFromFlags(cfg *Config, args []string) error {
	fs := pflag.NewFlagSet("movielinks", pflag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {}

	reload := string(cfg.Identity.Reload)

	fs.StringVarP(&cfg.Output.Title, "title", "t", cfg.Output.Title, "Movie title to search (skips the prompt)")
	fs.BoolVar(&cfg.Output.JSON, "json", cfg.Output.JSON, "Print the result as JSON")
	fs.BoolVar(&cfg.Output.NoBrowser, "no-browser", cfg.Output.NoBrowser, "Never offer to open links")
	fs.BoolVar(&cfg.Output.NoColor, "no-color", cfg.Output.NoColor, "Disable colored output")
	fs.StringVarP(&cfg.Output.Dir, "output-dir", "o", cfg.Output.Dir, "Also save every result as JSON in this directory")

	fs.StringVar(&cfg.Templates.Path, "templates", cfg.Templates.Path, "Link template file (.json, .yaml)")
	fs.StringVar(&cfg.Identity.Path, "user-agents", cfg.Identity.Path, "User agent file, one per line")
	fs.StringVar(&reload, "identity-reload", reload, "When to read the user agent file: startup|per-batch")

	fs.DurationVarP(&cfg.Probe.Timeout, "timeout", "T", cfg.Probe.Timeout, "Per-link timeout")
	fs.IntVarP(&cfg.Probe.Workers, "workers", "w", cfg.Probe.Workers, "Maximum concurrent probes per batch")
	fs.StringVarP(&cfg.Probe.ProxyURL, "proxy", "p", cfg.Probe.ProxyURL, "HTTP(S) proxy for probes")

	fs.StringVar(&cfg.OMDb.APIKey, "omdb-key", cfg.OMDb.APIKey, "OMDb API key (metadata disabled when empty)")
	fs.StringVar(&cfg.OMDb.BaseURL, "omdb-url", cfg.OMDb.BaseURL, "OMDb API base URL")

	fs.StringVarP(&cfg.Server.Addr, "addr", "a", cfg.Server.Addr, "HTTP listen address")
	fs.Float64Var(&cfg.Server.RateLimit, "rate-limit", cfg.Server.RateLimit, "Requests per second per client")
	fs.IntVar(&cfg.Server.RateBurst, "rate-burst", cfg.Server.RateBurst, "Burst per client")
	fs.StringSliceVar(&cfg.Server.CORSOrigins, "cors-origins", cfg.Server.CORSOrigins, "Allowed CORS origins")
	fs.DurationVar(&cfg.Server.CacheTTL, "cache-ttl", cfg.Server.CacheTTL, "Search result cache lifetime (0 disables)")
	fs.IntVar(&cfg.Server.CacheSize, "cache-size", cfg.Server.CacheSize, "Search result cache entries")

	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "debug|info|warn|error")
	fs.BoolVarP(&cfg.Log.Verbose, "verbose", "v", cfg.Log.Verbose, "Debug logging")
	fs.BoolVar(&cfg.PrintVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&cfg.ShowHelp, "help", "h", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if fs.NArg() > 0 && cfg.Output.Title == "" {
		// movielinks "the matrix"
		cfg.Output.Title = strings.Join(fs.Args(), " ")
	}

	cfg.Identity.Reload = identity.ReloadPolicy(strings.ToLower(strings.TrimSpace(reload)))
	return nil
}

func normalize(c *Config) {
	c.Output.Title = strings.TrimSpace(c.Output.Title)
	if c.Probe.Workers < 1 {
		c.Probe.Workers = 1
	}
	if c.Probe.Timeout <= 0 {
		c.Probe.Timeout = DefaultConfig().Probe.Timeout
	}
	if c.OMDb.Timeout <= 0 {
		c.OMDb.Timeout = DefaultConfig().OMDb.Timeout
	}
	if c.OMDb.RateLimit < 0 {
		c.OMDb.RateLimit = 0
	}
	if c.Server.RateBurst < 1 {
		c.Server.RateBurst = 1
	}
	if c.Server.CacheSize < 1 {
		c.Server.CacheSize = 1
	}
	if c.Server.CacheTTL < 0 {
		c.Server.CacheTTL = 0
	}
	if c.Identity.Reload == "" {
		c.Identity.Reload = identity.ReloadOnce
	}
	if c.Log.Verbose {
		c.Log.Level = "debug"
	}
	c.OMDb.APIKey = strings.TrimSpace(c.OMDb.APIKey)
}

// Validate rejects values normalize cannot repair.
func (c Config) Validate() error {
	if !c.Identity.Reload.IsValid() {
		return errors.Wrapf(errors.ErrInvalidInput, "identity reload policy %q (want %s or %s)",
			c.Identity.Reload, identity.ReloadOnce, identity.ReloadPerBatch)
	}
	if c.Templates.Path == "" {
		return errors.Wrap(errors.ErrInvalidInput, "templates path is empty")
	}
	return nil
}

// CacheEnabled reports whether search results should be cached.
func (c Config) CacheEnabled() bool {
	return c.Server.CacheTTL > 0
}

// ToJSON serializes the configuration for debugging.
func (c Config) ToJSON() (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// String is a one-line summary for startup logs.
func (c Config) String() string {
	return fmt.Sprintf("templates=%s user_agents=%s reload=%s workers=%d timeout=%s omdb=%t",
		c.Templates.Path, c.Identity.Path, c.Identity.Reload, c.Probe.Workers, c.Probe.Timeout, c.OMDb.APIKey != "")
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

func parseFloat(v string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

// parseDuration accepts Go durations ("1500ms") or plain seconds ("5").
func parseDuration(v string, def time.Duration) time.Duration {
	v = strings.TrimSpace(v)
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if s, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(s * float64(time.Second))
	}
	return def
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
