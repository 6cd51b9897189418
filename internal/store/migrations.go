package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_meta (
	id          INTEGER PRIMARY KEY CHECK (id = 1),
	source      TEXT NOT NULL DEFAULT '',
	fetched_at  DATETIME NOT NULL,
	saved_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS users (
	position   INTEGER NOT NULL,
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	available  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS tickets (
	position   INTEGER NOT NULL,
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL DEFAULT '',
	priority   INTEGER NOT NULL DEFAULT 0,
	user_id    TEXT NOT NULL DEFAULT '',
	tags       TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_tickets_position ON tickets(position);
CREATE INDEX IF NOT EXISTS idx_users_position ON users(position);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		// Rows are keyed by position: the endpoint does not promise unique
		// ids, and a snapshot must read back exactly as it was saved.
		version: 2,
		sql: `
CREATE TABLE users_v2 (
	position   INTEGER PRIMARY KEY,
	id         TEXT NOT NULL,
	name       TEXT NOT NULL DEFAULT '',
	available  INTEGER NOT NULL DEFAULT 0
);
INSERT INTO users_v2 (position, id, name, available)
	SELECT position, id, name, available FROM users;
DROP TABLE users;
ALTER TABLE users_v2 RENAME TO users;
CREATE INDEX idx_users_id ON users(id);

CREATE TABLE tickets_v2 (
	position   INTEGER PRIMARY KEY,
	id         TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL DEFAULT '',
	priority   INTEGER NOT NULL DEFAULT 0,
	user_id    TEXT NOT NULL DEFAULT '',
	tags       TEXT NOT NULL DEFAULT '[]'
);
INSERT INTO tickets_v2 (position, id, title, status, priority, user_id, tags)
	SELECT position, id, title, status, priority, user_id, tags FROM tickets;
DROP TABLE tickets;
ALTER TABLE tickets_v2 RENAME TO tickets;
CREATE INDEX idx_tickets_id ON tickets(id);
CREATE INDEX idx_tickets_user_id ON tickets(user_id);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
