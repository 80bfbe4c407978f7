// Package history keeps a local SQLite log of analysis runs. Only summary
// numbers are stored; message text never leaves the export.
package history

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS runs (
    id          TEXT PRIMARY KEY,
    source_path TEXT NOT NULL,
    sha256      TEXT NOT NULL,
    records     INTEGER NOT NULL DEFAULT 0,
    dropped     INTEGER NOT NULL DEFAULT 0,
    messages    INTEGER NOT NULL DEFAULT 0,
    words       INTEGER NOT NULL DEFAULT 0,
    media       INTEGER NOT NULL DEFAULT 0,
    links       INTEGER NOT NULL DEFAULT 0,
    analyzed_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS runs_sha256 ON runs(sha256);
CREATE INDEX IF NOT EXISTS runs_analyzed_at ON runs(analyzed_at);
`

// schemaVersion is bumped whenever the runs table changes shape.
const schemaVersion = "1"

type DB struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *rand.Rand
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT)"); err != nil {
		db.Close()
		return nil, fmt.Errorf("init meta: %w", err)
	}
	if _, err := db.Exec("INSERT OR IGNORE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("init meta: %w", err)
	}

	return &DB{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// SchemaVersion reports the version recorded when the database was created.
func (d *DB) SchemaVersion() (string, error) {
	var v string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&v)
	return v, err
}

func (d *DB) newID(at time.Time) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(at), d.entropy).String()
}
