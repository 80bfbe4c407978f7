package history

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by Get when no run matches.
var ErrNotFound = errors.New("run not found")

// timeLayout is fixed-width UTC so analyzed_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type Run struct {
	ID         string
	SourcePath string
	SHA256     string
	Records    int
	Dropped    int
	Messages   int
	Words      int
	Media      int
	Links      int
	AnalyzedAt time.Time
}

// Checksum is the hex SHA-256 used to recognise the same export across runs.
func Checksum(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Record stores r, filling ID and AnalyzedAt when unset, and returns the stored run.
func (d *DB) Record(r Run) (Run, error) {
	if r.AnalyzedAt.IsZero() {
		r.AnalyzedAt = time.Now()
	}
	r.AnalyzedAt = r.AnalyzedAt.UTC()
	if r.ID == "" {
		r.ID = d.newID(r.AnalyzedAt)
	}

	_, err := d.db.Exec(`
		INSERT INTO runs (id, source_path, sha256, records, dropped, messages, words, media, links, analyzed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.SourcePath, r.SHA256, r.Records, r.Dropped,
		r.Messages, r.Words, r.Media, r.Links,
		r.AnalyzedAt.Format(timeLayout),
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return r, nil
}

const selectRuns = `SELECT id, source_path, sha256, records, dropped, messages, words, media, links, analyzed_at FROM runs`

// List returns the most recent runs first. limit <= 0 means no limit.
func (d *DB) List(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := d.db.Query(selectRuns+" ORDER BY analyzed_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRuns(rows)
}

// PreviousFor returns earlier runs over the same content, newest first.
func (d *DB) PreviousFor(sum string) ([]Run, error) {
	rows, err := d.db.Query(selectRuns+" WHERE sha256 = ? ORDER BY analyzed_at DESC, id DESC", sum)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRuns(rows)
}

// Get finds a run by full ID or unique prefix.
func (d *DB) Get(idPrefix string) (*Run, error) {
	rows, err := d.db.Query(selectRuns+" WHERE id LIKE ? || '%' ORDER BY id LIMIT 2", idPrefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	switch len(runs) {
	case 0:
		return nil, fmt.Errorf("%s: %w", idPrefix, ErrNotFound)
	case 1:
		return &runs[0], nil
	}
	return nil, fmt.Errorf("run id prefix %q is ambiguous", idPrefix)
}

func (d *DB) Count() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n)
	return n, err
}

// Prune deletes runs analyzed before cutoff and returns how many were removed.
func (d *DB) Prune(cutoff time.Time) (int, error) {
	res, err := d.db.Exec("DELETE FROM runs WHERE analyzed_at < ?", cutoff.UTC().Format(timeLayout))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var at string
		if err := rows.Scan(&r.ID, &r.SourcePath, &r.SHA256, &r.Records, &r.Dropped,
			&r.Messages, &r.Words, &r.Media, &r.Links, &at); err != nil {
			return nil, err
		}
		t, err := time.Parse(timeLayout, at)
		if err != nil {
			return nil, fmt.Errorf("run %s: bad analyzed_at %q: %w", r.ID, at, err)
		}
		r.AnalyzedAt = t
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
