// Package config loads the bot's runtime configuration from the
// environment, with an optional .env file for local development.
package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"

	"postwatch/pkg/config"
)

// Config is everything the process needs to run.
type Config struct {
	DiscordToken string
	DatabaseURL  string

	// Debug suppresses all pings so a test deployment can share a guild
	// with the real one.
	Debug bool

	CheckInterval      time.Duration
	LinkTimeout        time.Duration
	MaxConcurrentLinks int

	YouTubeCredentialsFile string
	RedditClientFile       string

	MetricsPort string

	SweepSchedule string
	Retention     time.Duration
}

// Load reads the configuration. A .env file in the working directory is
// merged in first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		return nil, errors.New("DISCORD_TOKEN is required")
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	return &Config{
		DiscordToken: token,
		DatabaseURL:  dsn,

		Debug: config.GetEnvBool("BOT_TESTING_MODE", false),

		CheckInterval:      config.GetEnvDuration("CHECK_INTERVAL", 300*time.Second),
		LinkTimeout:        config.GetEnvDuration("LINK_TIMEOUT", 30*time.Second),
		MaxConcurrentLinks: config.GetEnvInt("MAX_CONCURRENT_LINKS", 4),

		YouTubeCredentialsFile: config.GetEnvString("YOUTUBE_CREDENTIALS_FILE", "keys/youtube-service-account.json"),
		RedditClientFile:       config.GetEnvString("REDDIT_CLIENT_FILE", "keys/reddit-rss.json"),

		MetricsPort: config.GetEnvString("METRICS_PORT", "9090"),

		SweepSchedule: config.GetEnvString("SWEEP_SCHEDULE", "0 4 * * *"),
		Retention:     config.GetEnvDuration("POST_RETENTION", 180*24*time.Hour),
	}, nil
}
