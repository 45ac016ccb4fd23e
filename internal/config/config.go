package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime tunables. Every field has a working default
// so the server can start with an empty environment.
type Config struct {
	HTTPAddr string
	BaseURL  string

	// CodeAttempts bounds the unique room-code allocation loop.
	CodeAttempts int

	// Player status thresholds.
	InactiveAfter   time.Duration
	DisconnectAfter time.Duration

	// MonitorInterval is the sweep period of the status monitor.
	MonitorInterval time.Duration
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvDur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getenvStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() Config {
	return Config{
		HTTPAddr:        getenvStr("HTTP_ADDR", ":8080"),
		BaseURL:         getenvStr("BASE_URL", "http://localhost:8080"),
		CodeAttempts:    getenvInt("CODE_ATTEMPTS", 10),
		InactiveAfter:   getenvDur("INACTIVE_AFTER", 30*time.Second),
		DisconnectAfter: getenvDur("DISCONNECT_AFTER", 5*time.Minute),
		MonitorInterval: getenvDur("MONITOR_INTERVAL", 10*time.Second),
	}
}
