package storage

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/Nowhitestar/process-builder-data/internal"
)

// DB is the run ledger: a small sqlite database recording what each
// processing run produced. The output tree never depends on it.
type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  csvPath TEXT NOT NULL,
  outputDir TEXT NOT NULL,
  projects INTEGER NOT NULL,
  sectors INTEGER NOT NULL,
  logosDownloaded INTEGER NOT NULL,
  durationMs INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS run_projects (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId INTEGER NOT NULL,
  projectId TEXT NOT NULL,
  name TEXT NOT NULL,
  sector TEXT,
  type TEXT,
  FOREIGN KEY(runId) REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_run_projects_runId ON run_projects(runId);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) InsertRun(csvPath, outputDir string, projects, sectors, logosDownloaded int, durationMs int64) (int, error) {
	res, err := d.conn.Exec(`
INSERT INTO runs (csvPath, outputDir, projects, sectors, logosDownloaded, durationMs)
VALUES (?, ?, ?, ?, ?, ?)`,
		csvPath, outputDir, projects, sectors, logosDownloaded, durationMs)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (d *DB) InsertRunProjects(runID int, projects []internal.RunProject) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO run_projects (runId, projectId, name, sector, type)
VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range projects {
		if _, err := stmt.Exec(runID, p.ProjectID, p.Name, p.Sector, p.Type); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListRuns(limit int) ([]internal.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.conn.Query(`
SELECT id, csvPath, outputDir, projects, sectors, logosDownloaded, durationMs, createdAt
FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []internal.RunRecord{}
	for rows.Next() {
		var r internal.RunRecord
		if err := rows.Scan(&r.ID, &r.CSVPath, &r.OutputDir, &r.Projects, &r.Sectors, &r.LogosDownloaded, &r.DurationMs, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) CountRunProjects(runID int) (int, error) {
	var count int
	err := d.conn.QueryRow(`SELECT COUNT(*) FROM run_projects WHERE runId = ?`, runID).Scan(&count)
	return count, err
}
