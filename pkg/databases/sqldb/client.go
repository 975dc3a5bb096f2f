package sqldb

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

// Dialect selects the SQL driver and migration set.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"

	// DefaultMaxOpenConns is the default maximum number of open connections to the database.
	DefaultMaxOpenConns = 10
	// DefaultMaxIdleConns is the default maximum number of idle connections to the database.
	DefaultMaxIdleConns = 5
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused.
	DefaultConnMaxLifetime = 30 * time.Second

	pgUniqueViolation = "23505"
)

//go:embed migrations
var migrationsFS embed.FS

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Client wraps a database/sql handle for one of the supported dialects.
type Client struct {
	db              *sql.DB
	dialect         Dialect
	MaxOpenConns    int           // MaxOpenConns is the maximum number of open connections to the database
	MaxIdleConns    int           // MaxIdleConns is the maximum number of idle connections to the database
	ConnMaxLifetime time.Duration // ConnMaxLifetime is the maximum amount of time a connection may be reused
}

// NewClient returns an unconnected client for dialect. Zero options fall back
// to the package defaults.
func NewClient(dialect Dialect, opts Options) *Client {
	c := &Client{
		dialect:         dialect,
		MaxOpenConns:    opts.MaxOpenConns,
		MaxIdleConns:    opts.MaxIdleConns,
		ConnMaxLifetime: opts.ConnMaxLifetime,
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = DefaultMaxOpenConns
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = DefaultMaxIdleConns
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	if dialect == SQLite {
		// sqlite serialises writers; a single connection avoids SQLITE_BUSY
		c.MaxOpenConns = 1
		c.MaxIdleConns = 1
	}
	return c
}

// Dialect returns the client's SQL dialect.
func (c *Client) Dialect() Dialect {
	return c.dialect
}

// Connect opens the database and verifies it is reachable. For sqlite the dsn
// is a file path; its directory is created when missing.
func (c *Client) Connect(ctx context.Context, dsn string) error {
	if dsn == "" {
		return fmt.Errorf("sqldb: DSN is empty")
	}

	switch c.dialect {
	case Postgres:
	case SQLite:
		if dir := filepath.Dir(dsn); dsn != ":memory:" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create directory for SQLite: %w", err)
			}
		}
		if !strings.Contains(dsn, "?") {
			dsn += "?_foreign_keys=on&_busy_timeout=10000"
		}
	default:
		return fmt.Errorf("sqldb: unsupported dialect %q", c.dialect)
	}

	var err error
	c.db, err = sql.Open(string(c.dialect), dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", c.dialect, err)
	}

	c.db.SetMaxOpenConns(c.MaxOpenConns)
	c.db.SetMaxIdleConns(c.MaxIdleConns)
	c.db.SetConnMaxLifetime(c.ConnMaxLifetime)

	return c.Ping(ctx)
}

// Disconnect closes the database connection.
func (c *Client) Disconnect(ctx context.Context) error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Ping checks the health of the connection.
func (c *Client) Ping(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("sqldb: client is not connected")
	}
	return c.db.PingContext(ctx)
}

// Migrate applies the embedded migrations for the client's dialect.
func (c *Client) Migrate(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("sqldb: client is not connected")
	}

	dir := "migrations/postgres"
	if c.dialect == SQLite {
		dir = "migrations/sqlite"
	}

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(string(c.dialect)); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, c.db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Rebind rewrites ? placeholders into the dialect's bind style.
func (c *Client) Rebind(query string) string {
	if c.dialect != Postgres {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
			sb.WriteRune(r)
		case r == '?' && !inQuote:
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// ExecContext executes a ?-placeholder statement.
func (c *Client) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.db.ExecContext(ctx, c.Rebind(query), args...)
}

// QueryContext runs a ?-placeholder query returning rows.
func (c *Client) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, c.Rebind(query), args...)
}

// QueryRowContext runs a ?-placeholder query returning at most one row.
func (c *Client) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return c.db.QueryRowContext(ctx, c.Rebind(query), args...)
}

// UniqueViolation reports whether err is a unique constraint failure and, when
// the driver exposes it, which constraint or column was hit.
func UniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return pqErr.Constraint, true
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return liteErr.Error(), true
	}
	return "", false
}
