package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Resolutions: one row per requested asset class per run
CREATE TABLE IF NOT EXISTS resolutions (
    resolution_id INTEGER PRIMARY KEY AUTOINCREMENT,
    request_id TEXT NOT NULL,
    url TEXT NOT NULL,
    final_url TEXT,
    asset_kind TEXT NOT NULL,            -- icon, image
    status TEXT NOT NULL,                -- success, failed
    source_tag TEXT,                     -- link-tag, manifest, og-meta, ...
    score INTEGER,
    format TEXT,                         -- png, jpg, webp, gif, svg, ico
    byte_size INTEGER,
    is_fallback BOOLEAN NOT NULL DEFAULT 0,
    timed_out BOOLEAN NOT NULL DEFAULT 0,
    error_type TEXT,                     -- no_asset, default_image_failed, fetch_error
    duration_ms INTEGER,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_resolutions_url ON resolutions(url);
CREATE INDEX IF NOT EXISTS idx_resolutions_request ON resolutions(request_id);
CREATE INDEX IF NOT EXISTS idx_resolutions_time ON resolutions(created_at);
CREATE INDEX IF NOT EXISTS idx_resolutions_status ON resolutions(status);
`
