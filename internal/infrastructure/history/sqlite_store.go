package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/ports"
)

// SQLiteStore persists the command log in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history db: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS commands (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT,
		command TEXT,
		cwd TEXT,
		exit_code INTEGER,
		output TEXT,
		risk_level TEXT
	);`)
	return err
}

// Save inserts a new record.
func (s *SQLiteStore) Save(record domain.CommandRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO commands
		(timestamp, command, cwd, exit_code, output, risk_level)
		VALUES (?, ?, ?, ?, ?, ?)`,
		record.Timestamp.Format(time.RFC3339Nano),
		record.Command,
		record.Cwd,
		record.ExitCode,
		record.Output,
		string(record.RiskLevel),
	)
	return err
}

// Records returns the newest entries first.
func (s *SQLiteStore) Records(limit int) ([]domain.CommandRecord, error) {
	return s.query("", limit)
}

// Search returns entries whose command contains query, newest first.
func (s *SQLiteStore) Search(query string, limit int) ([]domain.CommandRecord, error) {
	return s.query(query, limit)
}

func (s *SQLiteStore) query(search string, limit int) ([]domain.CommandRecord, error) {
	builder := strings.Builder{}
	builder.WriteString("SELECT timestamp, command, cwd, exit_code, output, risk_level FROM commands")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE command LIKE ?")
		args = append(args, "%"+search+"%")
	}
	builder.WriteString(" ORDER BY id DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.CommandRecord
	for rows.Next() {
		var rec domain.CommandRecord
		var ts, risk string
		if err := rows.Scan(&ts, &rec.Command, &rec.Cwd, &rec.ExitCode, &rec.Output, &risk); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			rec.Timestamp = t
		}
		rec.RiskLevel = domain.Severity(risk)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all entries.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM commands")
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ ports.CommandLog = (*SQLiteStore)(nil)
