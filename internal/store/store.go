package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Postgres driver for DATABASE_URL deployments.
	_ "github.com/lib/pq"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the ent driver and provides access to repositories.
type Store struct {
	db     *sql.DB
	drv    *entsql.Driver
	seq    *sequenceCounter
	locker Locker
}

// Option configures a Store.
type Option func(*Store)

// WithLocker replaces the in-process per-subject lock, e.g. with a Redis
// lock shared across replicas.
func WithLocker(l Locker) Option {
	return func(s *Store) { s.locker = l }
}

// Open creates a new Store. A postgres:// DSN selects Postgres, anything
// else is treated as a SQLite path or URI. It applies recommended pragmas
// and runs auto-migration.
func Open(dsn string, opts ...Option) (*Store, error) {
	d := Dialect(dsn)
	driverName := "sqlite"
	if d == dialect.Postgres {
		driverName = "postgres"
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if d == dialect.SQLite {
		// One connection keeps pragmas and the in-memory database consistent.
		db.SetMaxOpenConns(1)
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	drv := entsql.OpenDB(d, db)
	if err := migrate(context.Background(), drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		drv.Close()
		return nil, err
	}

	s := &Store{db: db, drv: drv, seq: seq, locker: NewKeyedMutex()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dialect reports the ent dialect a DSN selects.
func Dialect(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return dialect.Postgres
	}
	return dialect.SQLite
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

func (s *Store) conn() conn {
	return conn{ex: s.drv, dialect: s.drv.Dialect(), seq: s.seq}
}

// Assessments returns the Level-1 repository outside any transaction.
func (s *Store) Assessments() AssessmentRepo { return &assessmentRepo{s.conn()} }

// Level2 returns the Level-2 repository outside any transaction.
func (s *Store) Level2() Level2Repo { return &level2Repo{s.conn()} }

// Progress returns the progress repository outside any transaction.
func (s *Store) Progress() ProgressRepo { return &progressRepo{s.conn()} }

// Chat returns the chat history repository.
func (s *Store) Chat() ChatRepo { return &chatRepo{s.conn()} }

// EventRepo returns the event repository.
func (s *Store) EventRepo() EventRepo { return &eventRepo{s.conn()} }

// applyPragmas configures SQLite for a small single-node service.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. COGNIWISE_DB environment variable
// 2. $XDG_DATA_HOME/cogniwise/cogniwise.db
// 3. ~/.local/share/cogniwise/cogniwise.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("COGNIWISE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "cogniwise", "cogniwise.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of a SQLite path if it doesn't
// exist. Postgres DSNs and in-memory URIs are left alone.
func EnsureDir(path string) error {
	if Dialect(path) == dialect.Postgres || strings.HasPrefix(path, "file:") || strings.Contains(path, ":memory:") {
		return nil
	}
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
