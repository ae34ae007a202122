// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits with an error.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration for the board service.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string

	SecretKey     string
	TokenTTLHours int
	BcryptCost    int

	FeedURL             string   // empty disables the ingest worker
	IngestIntervalHours int      // how often the cron job fires
	IngestBlocklist     []string // extra terms on top of the built-in list
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("SECRET_KEY is required")
	}

	ttl := 24
	if s := os.Getenv("TOKEN_TTL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("TOKEN_TTL_HOURS must be a positive integer, got %q", s)
		}
		ttl = v
	}

	cost := 12
	if s := os.Getenv("BCRYPT_COST"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 4 || v > 31 {
			return nil, fmt.Errorf("BCRYPT_COST must be an integer between 4 and 31, got %q", s)
		}
		cost = v
	}

	interval := 6
	if s := os.Getenv("INGEST_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("INGEST_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}

	var blocklist []string
	if s := os.Getenv("INGEST_BLOCKLIST"); s != "" {
		for _, term := range strings.Split(s, ",") {
			if term = strings.TrimSpace(term); term != "" {
				blocklist = append(blocklist, term)
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		Port:                port,
		DatabaseURL:         dbURL,
		RedisURL:            redisURL,
		SecretKey:           secret,
		TokenTTLHours:       ttl,
		BcryptCost:          cost,
		FeedURL:             os.Getenv("FEED_URL"),
		IngestIntervalHours: interval,
		IngestBlocklist:     blocklist,
	}, nil
}
