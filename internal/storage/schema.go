package storage

// Schema is the SQL schema for the memory database. Every statement is
// guarded with IF NOT EXISTS so it can be applied on every open.
const Schema = `
CREATE TABLE IF NOT EXISTS entities (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE CHECK(name <> ''),
    entity_type TEXT NOT NULL,
    created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);

CREATE TABLE IF NOT EXISTS observations (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    entity_id   TEXT NOT NULL REFERENCES entities(id) ON DELETE CASCADE,
    content     TEXT NOT NULL,
    created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);

CREATE TABLE IF NOT EXISTS relations (
    id              TEXT PRIMARY KEY,
    from_entity_id  TEXT NOT NULL REFERENCES entities(id) ON DELETE CASCADE,
    to_entity_id    TEXT NOT NULL REFERENCES entities(id) ON DELETE CASCADE,
    relation_type   TEXT NOT NULL,
    created_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
    UNIQUE(from_entity_id, to_entity_id, relation_type)
);

CREATE TABLE IF NOT EXISTS directive_runs (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    directive_name  TEXT NOT NULL,
    started_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
    ended_at        TEXT NULL,
    status          TEXT NOT NULL
                    CHECK(status IN ('started', 'success', 'failed', 'partial')),
    error_message   TEXT NULL,
    notes           TEXT NULL,
    input_summary   TEXT NULL,
    output_summary  TEXT NULL
);

CREATE INDEX IF NOT EXISTS idx_entities_type ON entities(entity_type);
CREATE INDEX IF NOT EXISTS idx_entities_created ON entities(created_at);
CREATE INDEX IF NOT EXISTS idx_observations_entity ON observations(entity_id);
CREATE INDEX IF NOT EXISTS idx_relations_from ON relations(from_entity_id);
CREATE INDEX IF NOT EXISTS idx_relations_to ON relations(to_entity_id);
CREATE INDEX IF NOT EXISTS idx_runs_directive ON directive_runs(directive_name);
CREATE INDEX IF NOT EXISTS idx_runs_status ON directive_runs(status);
CREATE INDEX IF NOT EXISTS idx_runs_started ON directive_runs(started_at);
`

// dsnPragmas configures every connection opened by the driver.
const dsnPragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)"

// nowExpr is the timestamp format the store assigns at write time.
const nowExpr = `strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`
