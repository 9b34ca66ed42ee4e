package queue

const schemaSQL = `
CREATE TABLE IF NOT EXISTS episodes (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    slug TEXT NOT NULL,
    pub_date TEXT NOT NULL,
    storage_key TEXT NOT NULL,
    feed_slug TEXT NOT NULL DEFAULT 'general',
    category TEXT NOT NULL DEFAULT 'News',
    source_tag TEXT,
    adapter_name TEXT NOT NULL DEFAULT 'general',
    source_url TEXT,
    size_bytes INTEGER NOT NULL,
    duration_seconds INTEGER,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_episodes_feed_slug ON episodes(feed_slug);

CREATE TABLE IF NOT EXISTS processed_messages (
    storage_key TEXT PRIMARY KEY,
    processed_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`
