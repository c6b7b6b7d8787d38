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

CREATE TABLE IF NOT EXISTS categories (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	color      TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tasks (
	id                TEXT PRIMARY KEY,
	category_id       TEXT REFERENCES categories(id) ON DELETE SET NULL,
	title             TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	due_date          DATETIME,
	importance_factor INTEGER,
	duration          INTEGER,
	repeat_interval   TEXT,
	completed         INTEGER NOT NULL DEFAULT 0,
	completed_at      DATETIME,
	created_at        DATETIME NOT NULL,
	updated_at        DATETIME NOT NULL,
	CHECK (completed = (completed_at IS NOT NULL))
);

CREATE TABLE IF NOT EXISTS subtasks (
	id                TEXT PRIMARY KEY,
	task_id           TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	title             TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	duration          INTEGER,
	importance_factor INTEGER,
	order_rank        INTEGER,
	completed         INTEGER NOT NULL DEFAULT 0,
	completed_at      DATETIME,
	is_deleted        INTEGER NOT NULL DEFAULT 0,
	created_at        DATETIME NOT NULL,
	updated_at        DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(category_id);
CREATE INDEX IF NOT EXISTS idx_tasks_completed ON tasks(completed);
CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);
CREATE INDEX IF NOT EXISTS idx_subtasks_task ON subtasks(task_id);
CREATE INDEX IF NOT EXISTS idx_subtasks_order ON subtasks(task_id, order_rank);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
