package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPI        = "http://localhost:8888/api/v1"
	defaultPageSize   = 12
	defaultAddr       = ":8080"
	defaultSummaryTTL = time.Hour
	defaultLoginURL   = "/login"
)

// Config holds application-level configuration.
type Config struct {
	APIURL      string // e.g. "https://blog.example.com/api/v1"
	SessionPath string // Path to the saved session blob
	StatePath   string // Path to the persisted UI state
	LogPath     string // Log file used while the TUI owns the terminal
	PageSize    int
	Addr        string // Listen address for `termblog serve`
	Memcache    string // Comma-separated memcached servers; empty disables caching
	SummaryTTL  time.Duration
	LoginURL    string // Where the web front end sends anonymous users
}

// Load reads configuration from environment variables, after merging a
// .env file from the working directory when one exists.
//
//	TERMBLOG_API          API base URL (default: http://localhost:8888/api/v1)
//	TERMBLOG_SESSION      Session file (default: ~/.config/termblog/session.json)
//	TERMBLOG_STATE        UI state file (default: ~/.config/termblog/ui_state.json)
//	TERMBLOG_LOG          Log file (default: ~/.config/termblog/termblog.log)
//	TERMBLOG_PAGE_SIZE    Posts per page (default: 12)
//	TERMBLOG_ADDR         Web listen address (default: :8080)
//	TERMBLOG_MEMCACHE     Memcached servers for summaries (optional)
//	TERMBLOG_SUMMARY_TTL  Summary cache TTL in seconds (default: 3600)
//	TERMBLOG_LOGIN_URL    Login redirect target (default: /login)
func Load() (Config, error) {
	// A missing .env file is the common case.
	_ = godotenv.Load()

	api := strings.TrimSpace(os.Getenv("TERMBLOG_API"))
	if api == "" {
		api = defaultAPI
	}
	parsed, err := url.Parse(api)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("invalid TERMBLOG_API: must be an absolute URL")
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return Config{}, fmt.Errorf("invalid TERMBLOG_API: only http and https are allowed")
	}
	api = strings.TrimRight(parsed.String(), "/")

	var dir string
	dirFor := func() (string, error) {
		if dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config", "termblog")
		return dir, nil
	}
	pathOr := func(env, name string) (string, error) {
		if p := strings.TrimSpace(os.Getenv(env)); p != "" {
			return p, nil
		}
		d, err := dirFor()
		if err != nil {
			return "", err
		}
		return filepath.Join(d, name), nil
	}

	sessionPath, err := pathOr("TERMBLOG_SESSION", "session.json")
	if err != nil {
		return Config{}, err
	}
	statePath, err := pathOr("TERMBLOG_STATE", "ui_state.json")
	if err != nil {
		return Config{}, err
	}
	logPath, err := pathOr("TERMBLOG_LOG", "termblog.log")
	if err != nil {
		return Config{}, err
	}

	pageSize, err := positiveInt("TERMBLOG_PAGE_SIZE", defaultPageSize)
	if err != nil {
		return Config{}, err
	}
	ttl, err := positiveInt("TERMBLOG_SUMMARY_TTL", int(defaultSummaryTTL/time.Second))
	if err != nil {
		return Config{}, err
	}

	addr := strings.TrimSpace(os.Getenv("TERMBLOG_ADDR"))
	if addr == "" {
		addr = defaultAddr
	}
	loginURL := strings.TrimSpace(os.Getenv("TERMBLOG_LOGIN_URL"))
	if loginURL == "" {
		loginURL = defaultLoginURL
	}

	return Config{
		APIURL:      api,
		SessionPath: sessionPath,
		StatePath:   statePath,
		LogPath:     logPath,
		PageSize:    pageSize,
		Addr:        addr,
		Memcache:    strings.TrimSpace(os.Getenv("TERMBLOG_MEMCACHE")),
		SummaryTTL:  time.Duration(ttl) * time.Second,
		LoginURL:    loginURL,
	}, nil
}

// MemcacheServers splits the memcached setting into server addresses.
func (c Config) MemcacheServers() []string {
	var out []string
	for _, s := range strings.Split(c.Memcache, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func positiveInt(env string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(env))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", env)
	}
	return n, nil
}
