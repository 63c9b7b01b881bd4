package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"salesdesk/internal/config"
)

// errNoRowsAffected is reported when an INSERT completes without writing a row
var errNoRowsAffected = errors.New("unexpected error: no rows affected")

// pgForeignKeyViolation is the SQLSTATE for foreign_key_violation
const pgForeignKeyViolation = "23503"

// dialect isolates the SQL differences between supported stores
type dialect interface {
	// driverName is the database/sql driver to open
	driverName() string
	// dsn decorates the configured DSN with required connection options
	dsn(raw string) string
	// schema returns the bootstrap statements, executed in order
	schema() []string
	// rebind rewrites ? placeholders into the store's native form
	rebind(query string) string
	// insertSQL adapts an INSERT so that the generated key can be read back
	insertSQL(query string) string
	// execInsert runs a prepared insert and returns the generated key
	execInsert(ctx context.Context, stmt *sql.Stmt, args ...any) (int64, error)
	// isForeignKeyViolation reports whether err is a referential-integrity failure
	isForeignKeyViolation(err error) bool
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case config.DriverSQLite:
		return sqliteDialect{}, nil
	case config.DriverPostgres:
		return postgresDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// ============================================================================
// SQLite
// ============================================================================

type sqliteDialect struct{}

func (sqliteDialect) driverName() string { return "sqlite" }

func (sqliteDialect) dsn(raw string) string {
	if strings.Contains(raw, "_pragma=foreign_keys") {
		return raw
	}
	sep := "?"
	if strings.Contains(raw, "?") {
		sep = "&"
	}
	return raw + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

func (sqliteDialect) schema() []string {
	return []string{
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE IF NOT EXISTS department (
			Id INTEGER PRIMARY KEY AUTOINCREMENT,
			Name VARCHAR(60) DEFAULT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS seller (
			Id INTEGER PRIMARY KEY AUTOINCREMENT,
			Name VARCHAR(70) NOT NULL,
			Email VARCHAR(100) NOT NULL,
			BirthDate DATETIME,
			BaseSalary DOUBLE NOT NULL,
			DepartmentId INTEGER NOT NULL,
			FOREIGN KEY (DepartmentId) REFERENCES department (Id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_seller_department ON seller(DepartmentId)`,
	}
}

func (sqliteDialect) rebind(query string) string { return query }

func (sqliteDialect) insertSQL(query string) string { return query }

func (sqliteDialect) execInsert(ctx context.Context, stmt *sql.Stmt, args ...any) (int64, error) {
	res, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errNoRowsAffected
	}
	return res.LastInsertId()
}

func (sqliteDialect) isForeignKeyViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
			return true
		}
		if code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "FOREIGN KEY") {
			return true
		}
		return false
	}
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// ============================================================================
// PostgreSQL (pgx)
// ============================================================================

type postgresDialect struct{}

func (postgresDialect) driverName() string { return "pgx" }

func (postgresDialect) dsn(raw string) string { return raw }

func (postgresDialect) schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS department (
			Id SERIAL PRIMARY KEY,
			Name VARCHAR(60)
		)`,
		`CREATE TABLE IF NOT EXISTS seller (
			Id SERIAL PRIMARY KEY,
			Name VARCHAR(70) NOT NULL,
			Email VARCHAR(100) NOT NULL,
			BirthDate TIMESTAMP,
			BaseSalary NUMERIC(12,2) NOT NULL,
			DepartmentId INTEGER NOT NULL REFERENCES department (Id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_seller_department ON seller(DepartmentId)`,
	}
}

func (postgresDialect) rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (postgresDialect) insertSQL(query string) string {
	return query + " RETURNING Id"
}

func (postgresDialect) execInsert(ctx context.Context, stmt *sql.Stmt, args ...any) (int64, error) {
	var id int64
	err := stmt.QueryRowContext(ctx, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, errNoRowsAffected
	}
	return id, err
}

func (postgresDialect) isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
