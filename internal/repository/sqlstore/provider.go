// Package sqlstore implements the repository DAOs over database/sql.
//
// A Provider owns the single process-wide connection. Each DAO operation
// prepares its statement, runs it under the configured query timeout and
// releases statement and cursor before returning, on every path.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"salesdesk/internal/config"
	"salesdesk/internal/domain"
	"salesdesk/internal/repository"
)

var (
	_ repository.DepartmentDao = (*DepartmentDao)(nil)
	_ repository.SellerDao     = (*SellerDao)(nil)
)

// Provider owns the store connection and hands out DAOs bound to it
type Provider struct {
	db      *sql.DB
	dialect dialect
	timeout time.Duration
	logger  *zap.Logger
}

// Open connects to the configured store, restricts the pool to a single
// connection and bootstraps the schema
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Provider, error) {
	d, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.driverName(), d.dsn(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	p := newProvider(db, d, cfg.QueryTimeout.Duration(), logger)

	if err := p.ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := p.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	p.logger.Info("database opened", zap.String("driver", cfg.Driver))
	return p, nil
}

// New wraps an already opened database handle. The schema is not touched.
func New(db *sql.DB, driver string, timeout time.Duration, logger *zap.Logger) (*Provider, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	return newProvider(db, d, timeout, logger), nil
}

func newProvider(db *sql.DB, d dialect, timeout time.Duration, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Exactly one connection for the process lifetime; database/sql
	// serializes callers on it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return &Provider{
		db:      db,
		dialect: d,
		timeout: timeout,
		logger:  logger.Named("sqlstore"),
	}
}

func (p *Provider) ping(ctx context.Context) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.db.PingContext(ctx)
}

// Migrate creates the department and seller tables if they do not exist
func (p *Provider) Migrate(ctx context.Context) error {
	for _, stmt := range p.dialect.schema() {
		if err := p.execSchema(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provider) execSchema(ctx context.Context, stmt string) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	_, err := p.db.ExecContext(ctx, stmt)
	return err
}

// Departments returns the department DAO bound to this connection
func (p *Provider) Departments() *DepartmentDao {
	return &DepartmentDao{p: p}
}

// Sellers returns the seller DAO bound to this connection
func (p *Provider) Sellers() *SellerDao {
	return &SellerDao{p: p}
}

// Close closes the database connection
func (p *Provider) Close() error {
	return p.db.Close()
}

// withTimeout bounds a single store call. A zero timeout leaves ctx as is.
func (p *Provider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, p.timeout)
}

// prepare rebinds and prepares query; the caller must Close the statement
func (p *Provider) prepare(ctx context.Context, query string) (*sql.Stmt, error) {
	return p.db.PrepareContext(ctx, p.dialect.rebind(query))
}

// wrap converts a store failure into the domain error taxonomy
func (p *Provider) wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	var ie *domain.IntegrityError
	var pe *domain.PersistenceError
	if errors.As(err, &ie) || errors.As(err, &pe) {
		return err
	}

	p.logger.Debug("store operation failed", zap.String("op", op), zap.Error(err))

	if p.dialect.isForeignKeyViolation(err) {
		return &domain.IntegrityError{Op: op, Msg: err.Error(), Err: err}
	}
	return domain.NewPersistenceError(op, err)
}
