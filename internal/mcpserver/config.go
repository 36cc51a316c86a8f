package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/docpatch/differ"
	"github.com/erraggy/docpatch/patch"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Patch set cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Limits.
	MaxDocumentSize int64
	MaxInlineSize   int64

	// ReadOnly forces every patch_apply call into dry-run mode.
	ReadOnly bool

	// DiffContext is the number of context lines in returned diffs.
	DiffContext int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from DOCPATCH_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("DOCPATCH_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("DOCPATCH_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("DOCPATCH_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("DOCPATCH_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("DOCPATCH_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxDocumentSize:    envInt64("DOCPATCH_MAX_DOCUMENT_SIZE", patch.DefaultMaxDocumentSize),
		MaxInlineSize:      envInt64("DOCPATCH_MAX_INLINE_SIZE", 4*1024*1024),
		ReadOnly:           envBool("DOCPATCH_READ_ONLY", false),
		DiffContext:        envIntMin("DOCPATCH_DIFF_CONTEXT", differ.DefaultContext, 0),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	return envIntMin(key, fallback, 1)
}

// envIntMin reads an int env var, falling back when it is below lowest.
func envIntMin(key string, fallback, lowest int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < lowest {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid size env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
