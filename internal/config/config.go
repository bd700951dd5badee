// Package config holds the process-wide, environment-driven tunables for
// the room server, following the teacher's internal/config.Load pattern
// (default value with an optional env override) rather than a config
// file — the specification explicitly treats config files as out of
// scope.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the full set of ambient tunables injected into cmd/server.
type Config struct {
	HTTPAddr string

	HeartbeatInterval time.Duration
	BotMoveDelay      time.Duration
	MismatchDelay     time.Duration

	MaxBodyBytes int64
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// Load builds a Config from the environment, falling back to defaults
// that match the specification's literal values (25s heartbeat, 1200ms
// bot move, 1100ms mismatch resolution, 32KiB body cap).
func Load() Config {
	return Config{
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		HeartbeatInterval: getenvDuration("HEARTBEAT_INTERVAL", 25*time.Second),
		BotMoveDelay:      getenvDuration("BOT_MOVE_DELAY", 1200*time.Millisecond),
		MismatchDelay:     getenvDuration("MISMATCH_DELAY", 1100*time.Millisecond),
		MaxBodyBytes:      int64(getenvInt("MAX_BODY_BYTES", 32*1024)),
	}
}
