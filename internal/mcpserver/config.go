package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oasmodels/emitter"
	"github.com/erraggy/oasmodels/typegen"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Generation defaults.
	PackageName     string
	Format          emitter.Format
	Validation      bool
	InlineResponses bool

	// Limits.
	MaxInlineSize int64
	ListLimit     int
	MaxLimit      int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASMODELS_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("OASMODELS_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OASMODELS_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("OASMODELS_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("OASMODELS_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OASMODELS_CACHE_SWEEP_INTERVAL", 60*time.Second),
		PackageName:        envPackage("OASMODELS_PACKAGE", typegen.DefaultPackageNamespace),
		Format:             envFormat("OASMODELS_FORMAT", emitter.FormatGo),
		Validation:         envBool("OASMODELS_VALIDATION", true),
		InlineResponses:    envBool("OASMODELS_INLINE_RESPONSES", true),
		MaxInlineSize:      int64(envInt("OASMODELS_MAX_INLINE_SIZE", 10*1024*1024)),
		ListLimit:          envInt("OASMODELS_LIST_LIMIT", 100),
		MaxLimit:           envInt("OASMODELS_MAX_LIMIT", 1000),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
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
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}

func envFormat(key string, fallback emitter.Format) emitter.Format {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := emitter.ParseFormat(v)
	if err != nil {
		slog.Warn("invalid format env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return f
}

func envPackage(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if !validPackageName(v) {
		slog.Warn("invalid package env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return v
}

// validPackageName reports whether name is a lowercase Go package name.
func validPackageName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
