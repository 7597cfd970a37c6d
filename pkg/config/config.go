// Package config loads process configuration from the environment
package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	// CatalogPath points at the product catalog JSON file.
	CatalogPath string
	// CartPath points at the durable cart slot; empty means next to the
	// executable (resolved at startup).
	CartPath string

	Headless bool
}

func Load() Config {
	return Config{
		AppEnv:      getEnv("APP_ENV", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPPort:    getEnvInt("HTTP_PORT", 12712),
		CatalogPath: getEnv("CATALOG_PATH", "catalog.json"),
		CartPath:    getEnv("CART_PATH", ""),
		Headless:    getEnvBool("HEADLESS", false),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}

	return b
}
