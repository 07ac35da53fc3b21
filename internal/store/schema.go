package store

// Rows keep document order through position; a save replaces every table.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS income (
    position             INTEGER PRIMARY KEY,
    timestamp            TEXT NOT NULL,
    amount               REAL NOT NULL,
    description          TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS expenses (
    position             INTEGER PRIMARY KEY,
    timestamp            TEXT NOT NULL,
    amount               REAL NOT NULL,
    category             TEXT NOT NULL,
    description          TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS categories (
    position             INTEGER PRIMARY KEY,
    name                 TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS budget (
    category             TEXT PRIMARY KEY,
    amount               REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS goals (
    position             INTEGER PRIMARY KEY,
    id                   TEXT NOT NULL DEFAULT '',
    name                 TEXT NOT NULL,
    target_amount        REAL NOT NULL,
    deadline             TEXT NOT NULL,
    saved_amount         REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(category);
`
