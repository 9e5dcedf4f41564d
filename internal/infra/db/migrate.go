package db

import "database/sql"

// MigrateUp creates the schema and seeds the platform catalog. Every
// statement is idempotent, so the bot runs this unconditionally at startup.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS platforms (
    id          SERIAL PRIMARY KEY,
    name        VARCHAR(32) NOT NULL UNIQUE,
    description VARCHAR(64)
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS channel_links (
    id                 BIGSERIAL PRIMARY KEY,
    source_id          VARCHAR(48) NOT NULL,
    display_name       VARCHAR(64) NOT NULL,
    discord_channel_id TEXT NOT NULL,
    platform_id        INTEGER NOT NULL REFERENCES platforms(id) ON DELETE CASCADE,
    should_mention     BOOLEAN NOT NULL DEFAULT TRUE,
    role_mention_id    TEXT,
    created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (source_id, discord_channel_id)
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id              BIGSERIAL PRIMARY KEY,
    item_id         TEXT NOT NULL UNIQUE,
    channel_link_id BIGINT NOT NULL REFERENCES channel_links(id) ON DELETE CASCADE,
    discovered_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_channel_links_platform_id ON channel_links(platform_id)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_discovered_at ON posts(discovered_at)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return seedPlatforms(db)
}

// seedPlatforms inserts the supported platform rows. Re-running is a no-op.
func seedPlatforms(db *sql.DB) error {
	const query = `
INSERT INTO platforms (name, description) VALUES
    ('YouTube', 'YouTube channel uploads via the Data API'),
    ('Reddit', 'Subreddit posts via the public RSS listing')
ON CONFLICT (name) DO NOTHING`
	_, err := db.Exec(query)
	return err
}
