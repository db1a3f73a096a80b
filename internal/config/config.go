// Package config loads application configuration from environment variables.
// Sub-configs for rate limiting and response caching live in their own files;
// the env helper functions defined here are shared by all of them.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the runtime settings of the server process. All state is
// in-memory, so there is deliberately no database section; the only external
// endpoints are optional (Redis for the response cache, RabbitMQ for the
// reservation event stream) and the service runs fine without either.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	RabbitURL      string // AMQP endpoint for reservation events; empty disables publishing
	MetricsEnabled bool   // expose Prometheus metrics on /metrics
}

// Load reads the configuration from the environment. Every value has a
// default so the server starts with no environment at all; a .env file, if
// present, is loaded by main before this runs.
func Load() Config {
	return Config{
		Env:            envStr("APP_ENV", "dev"),
		Port:           envStr("APP_PORT", "8080"),
		RabbitURL:      firstNonEmpty(os.Getenv("RABBITMQ_URL"), os.Getenv("AMQP_URL")),
		MetricsEnabled: envBool("METRICS_ENABLED", true),
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}
