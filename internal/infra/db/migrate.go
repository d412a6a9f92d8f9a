package db

import "database/sql"

// MigrateUp creates the schema when it does not exist yet.
// Soft-deleted rows stay in place: deleted_at is a timestamp marker, and
// every read query filters on it rather than expecting rows to disappear.
func MigrateUp(pool *sql.DB) error {
	// gen_random_uuid requires pgcrypto on Postgres < 13; enabling it is
	// harmless elsewhere.
	_, _ = pool.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
    id                  UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    username            TEXT NOT NULL UNIQUE,
    email               TEXT NOT NULL UNIQUE,
    password_hash       TEXT NOT NULL,
    role                VARCHAR(10) NOT NULL DEFAULT 'user',
    profile_picture_url TEXT,
    created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS categories (
    id   UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE
)`,
		`CREATE TABLE IF NOT EXISTS articles (
    id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    title           TEXT NOT NULL,
    summary         TEXT NOT NULL,
    content         TEXT NOT NULL,
    cover_image_url TEXT NOT NULL,
    author_id       UUID NOT NULL REFERENCES users(id),
    category_id     UUID NOT NULL REFERENCES categories(id),
    views           BIGINT NOT NULL DEFAULT 0,
    published_date  TIMESTAMPTZ NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    deleted_at      TIMESTAMPTZ
)`,
		`CREATE TABLE IF NOT EXISTS article_tags (
    article_id UUID NOT NULL REFERENCES articles(id),
    tag        TEXT NOT NULL,
    PRIMARY KEY (article_id, tag)
)`,
		`CREATE TABLE IF NOT EXISTS comments (
    id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    article_id UUID NOT NULL REFERENCES articles(id),
    author_id  UUID NOT NULL REFERENCES users(id),
    content    TEXT NOT NULL,
    likes      BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    deleted_at TIMESTAMPTZ
)`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
    id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id    UUID NOT NULL UNIQUE REFERENCES users(id),
    status     VARCHAR(10) NOT NULL DEFAULT 'active',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS analytics (
    id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    date           DATE NOT NULL UNIQUE,
    total_visitors BIGINT NOT NULL DEFAULT 0
)`,
	}
	for _, stmt := range statements {
		if _, err := pool.Exec(stmt); err != nil {
			return err
		}
	}

	indexes := []string{
		// Default list ordering and the recent/newsletter reads.
		`CREATE INDEX IF NOT EXISTS idx_articles_published_date ON articles(published_date DESC)`,
		// Popular leaderboard.
		`CREATE INDEX IF NOT EXISTS idx_articles_views ON articles(views DESC)`,
		// Active-row filtering on every read path.
		`CREATE INDEX IF NOT EXISTS idx_articles_deleted_at ON articles(deleted_at) WHERE deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_comments_article_id ON comments(article_id)`,
		`CREATE INDEX IF NOT EXISTS idx_article_tags_article_id ON article_tags(article_id)`,
	}
	for _, stmt := range indexes {
		if _, err := pool.Exec(stmt); err != nil {
			return err
		}
	}

	// pg_trgm speeds up the ILIKE search; ignore failures when the
	// extension is unavailable or the role lacks privileges.
	_, _ = pool.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`)
	searchIndexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_articles_title_gin ON articles USING gin(title gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_summary_gin ON articles USING gin(summary gin_trgm_ops)`,
	}
	for _, stmt := range searchIndexes {
		_, _ = pool.Exec(stmt)
	}

	return nil
}
