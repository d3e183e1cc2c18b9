package index

// Schema DDL for the index store. The whole store is a disposable cache of
// the markdown tree; dropping the database file loses nothing that a sync
// pass cannot rebuild.
const (
	createDocuments = `CREATE TABLE IF NOT EXISTS documents (
    filepath TEXT PRIMARY KEY,
    id TEXT NOT NULL,
    short_code TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    document_type TEXT NOT NULL,
    phase TEXT NOT NULL,
    parent_id TEXT,
    blocked_by TEXT NOT NULL DEFAULT '[]',
    content TEXT,
    file_hash TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    archived INTEGER NOT NULL DEFAULT 0,
    exit_criteria_met INTEGER NOT NULL DEFAULT 0
);`

	createRelationships = `CREATE TABLE IF NOT EXISTS document_relationships (
    child_filepath TEXT NOT NULL,
    parent_filepath TEXT NOT NULL,
    child_id TEXT NOT NULL,
    parent_id TEXT NOT NULL,
    PRIMARY KEY (child_filepath, parent_filepath)
);`

	createTags = `CREATE TABLE IF NOT EXISTS document_tags (
    document_filepath TEXT NOT NULL,
    tag TEXT NOT NULL,
    PRIMARY KEY (document_filepath, tag)
);`

	createSearch = `CREATE VIRTUAL TABLE IF NOT EXISTS document_search USING fts5(
    filepath UNINDEXED,
    title,
    content
);`

	createConfiguration = `CREATE TABLE IF NOT EXISTS configuration (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// schemaStatements lists DDL in creation order.
var schemaStatements = []string{
	createDocuments,
	createRelationships,
	createTags,
	createSearch,
	createConfiguration,
}
