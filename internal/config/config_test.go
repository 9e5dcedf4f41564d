package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost/postwatch")
	t.Setenv("BOT_TESTING_MODE", "yes")
	t.Setenv("CHECK_INTERVAL", "120s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Debug, "BOT_TESTING_MODE=yes should enable debug")
	assert.Equal(t, 120*time.Second, cfg.CheckInterval)
	assert.Equal(t, 180*24*time.Hour, cfg.Retention)
	assert.Equal(t, 4, cfg.MaxConcurrentLinks)
	assert.Equal(t, "keys/youtube-service-account.json", cfg.YouTubeCredentialsFile)
	assert.Equal(t, "keys/reddit-rss.json", cfg.RedditClientFile)
	assert.Equal(t, "9090", cfg.MetricsPort)
	assert.Equal(t, "0 4 * * *", cfg.SweepSchedule)
}

func TestLoad_RequiredVariables(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/postwatch")
	_, err := Load()
	require.Error(t, err, "missing token must fail")

	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DATABASE_URL", "")
	_, err = Load()
	require.Error(t, err, "missing database url must fail")
}
