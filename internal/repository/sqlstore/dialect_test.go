package sqlstore

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"salesdesk/internal/config"
	"salesdesk/internal/domain"
)

func newMockProvider(t *testing.T, driver string, timeout time.Duration) (*Provider, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	p, err := New(db, driver, timeout, zaptest.NewLogger(t))
	require.NoError(t, err)
	return p, mock
}

func TestPostgresRebind(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SELECT 1", "SELECT 1"},
		{"DELETE FROM seller WHERE Id = ?", "DELETE FROM seller WHERE Id = $1"},
		{"UPDATE department SET Name = ? WHERE Id = ?", "UPDATE department SET Name = $1 WHERE Id = $2"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, postgresDialect{}.rebind(tt.in))
	}
}

func TestPostgresInsertReturningID(t *testing.T) {
	p, mock := newMockProvider(t, config.DriverPostgres, 0)

	mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO department (Name) VALUES ($1) RETURNING Id`)).
		ExpectQuery().
		WithArgs("Toys").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(17)))

	d := domain.NewDepartment("Toys")
	require.NoError(t, p.Departments().Insert(context.Background(), d))
	require.NotNil(t, d.ID)
	assert.Equal(t, int64(17), *d.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSellerUpdateBindsInOrder(t *testing.T) {
	p, mock := newMockProvider(t, config.DriverPostgres, 0)

	mock.ExpectPrepare(`UPDATE seller\s+SET Name = \$1, Email = \$2, BirthDate = \$3, BaseSalary = \$4, DepartmentId = \$5\s+WHERE Id = \$6`).
		ExpectExec().
		WithArgs("eve", "eve@x.io", nil, "1200", int64(3), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	dep := domain.NewDepartment("D")
	dep.SetID(3)
	s := &domain.Seller{Name: "eve", Email: "eve@x.io", BaseSalary: decimal.NewFromInt(1200), Department: dep}
	s.SetID(9)

	require.NoError(t, p.Sellers().Update(context.Background(), s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresForeignKeyViolation(t *testing.T) {
	p, mock := newMockProvider(t, config.DriverPostgres, 0)

	pgErr := &pgconn.PgError{Code: "23503", Message: "update or delete on table \"department\" violates foreign key constraint"}
	mock.ExpectPrepare(regexp.QuoteMeta(`DELETE FROM department WHERE Id = $1`)).
		WillBeClosed().
		ExpectExec().
		WithArgs(int64(5)).
		WillReturnError(pgErr)

	err := p.Departments().DeleteByID(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, domain.IsIntegrity(err))
	assert.Contains(t, err.Error(), "still referenced by sellers")

	var got *pgconn.PgError
	assert.True(t, errors.As(err, &got), "integrity error should unwrap to the driver error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrepareFailureIsPersistenceError(t *testing.T) {
	p, mock := newMockProvider(t, config.DriverSQLite, 0)

	boom := errors.New("connection reset")
	mock.ExpectPrepare(`SELECT Id, Name FROM department`).WillReturnError(boom)

	_, err := p.Departments().FindAll(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsPersistence(err))
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertWithoutRowsAffected(t *testing.T) {
	p, mock := newMockProvider(t, config.DriverSQLite, 0)

	mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO department (Name) VALUES (?)`)).
		WillBeClosed().
		ExpectExec().
		WithArgs("Nothing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	d := domain.NewDepartment("Nothing")
	err := p.Departments().Insert(context.Background(), d)
	require.Error(t, err)
	assert.True(t, domain.IsPersistence(err))
	assert.Contains(t, err.Error(), "no rows affected")
	assert.Nil(t, d.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryTimeout(t *testing.T) {
	p, mock := newMockProvider(t, config.DriverSQLite, 20*time.Millisecond)

	mock.ExpectPrepare(`SELECT Id, Name FROM department WHERE Id = \?`).
		ExpectQuery().
		WithArgs(int64(1)).
		WillDelayFor(time.Second).
		WillReturnRows(sqlmock.NewRows([]string{"Id", "Name"}).AddRow(int64(1), "late"))

	_, err := p.Departments().FindByID(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, domain.IsPersistence(err))
}

func TestScanFailureReleasesCursor(t *testing.T) {
	p, mock := newMockProvider(t, config.DriverSQLite, 0)

	mock.ExpectPrepare(`SELECT Id, Name FROM department ORDER BY Name`).
		WillBeClosed().
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"Id", "Name"}).AddRow("not-a-number", "x")).
		RowsWillBeClosed()

	_, err := p.Departments().FindAll(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsPersistence(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
