package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"salesdesk/internal/domain"
)

// DepartmentDao implements repository.DepartmentDao
type DepartmentDao struct {
	p *Provider
}

// Insert persists a new department and assigns the generated ID back onto it
func (r *DepartmentDao) Insert(ctx context.Context, d *domain.Department) error {
	const op = "insert department"
	if d.ID != nil {
		return &domain.PersistenceError{Op: op, Msg: fmt.Sprintf("department already has id %d", *d.ID)}
	}

	ctx, cancel := r.p.withTimeout(ctx)
	defer cancel()

	stmt, err := r.p.prepare(ctx, r.p.dialect.insertSQL(`INSERT INTO department (Name) VALUES (?)`))
	if err != nil {
		return r.p.wrap(op, err)
	}
	defer stmt.Close()

	id, err := r.p.dialect.execInsert(ctx, stmt, d.Name)
	if err != nil {
		return r.p.wrap(op, err)
	}

	d.SetID(id)
	return nil
}

// Update rewrites the department's columns by ID. A missing row is not an error.
func (r *DepartmentDao) Update(ctx context.Context, d *domain.Department) error {
	const op = "update department"
	if d.ID == nil {
		return &domain.PersistenceError{Op: op, Msg: "department has no id"}
	}

	ctx, cancel := r.p.withTimeout(ctx)
	defer cancel()

	stmt, err := r.p.prepare(ctx, `UPDATE department SET Name = ? WHERE Id = ?`)
	if err != nil {
		return r.p.wrap(op, err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, d.Name, *d.ID); err != nil {
		return r.p.wrap(op, err)
	}
	return nil
}

// DeleteByID removes a department. Fails when the ID does not exist, and with
// an IntegrityError when sellers still reference it.
func (r *DepartmentDao) DeleteByID(ctx context.Context, id int64) error {
	const op = "delete department"

	ctx, cancel := r.p.withTimeout(ctx)
	defer cancel()

	stmt, err := r.p.prepare(ctx, `DELETE FROM department WHERE Id = ?`)
	if err != nil {
		return r.p.wrap(op, err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, id)
	if err != nil {
		if r.p.dialect.isForeignKeyViolation(err) {
			return &domain.IntegrityError{
				Op:  op,
				Msg: fmt.Sprintf("department %d is still referenced by sellers", id),
				Err: err,
			}
		}
		return r.p.wrap(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return r.p.wrap(op, err)
	}
	if n == 0 {
		return &domain.PersistenceError{Op: op, Msg: fmt.Sprintf("department with id %d doesn't exist", id)}
	}
	return nil
}

// FindByID retrieves a single department; nil, nil when absent
func (r *DepartmentDao) FindByID(ctx context.Context, id int64) (*domain.Department, error) {
	const op = "find department"

	ctx, cancel := r.p.withTimeout(ctx)
	defer cancel()

	stmt, err := r.p.prepare(ctx, `SELECT `+departmentColumns+` FROM department WHERE Id = ?`)
	if err != nil {
		return nil, r.p.wrap(op, err)
	}
	defer stmt.Close()

	var row departmentRow
	err = stmt.QueryRowContext(ctx, id).Scan(row.scanArgs()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.p.wrap(op, err)
	}

	return row.toDomain(), nil
}

// FindAll returns every department ordered by name
func (r *DepartmentDao) FindAll(ctx context.Context) ([]*domain.Department, error) {
	const op = "list departments"

	ctx, cancel := r.p.withTimeout(ctx)
	defer cancel()

	stmt, err := r.p.prepare(ctx, `SELECT `+departmentColumns+` FROM department ORDER BY Name`)
	if err != nil {
		return nil, r.p.wrap(op, err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, r.p.wrap(op, err)
	}
	defer rows.Close()

	departments := make([]*domain.Department, 0)
	for rows.Next() {
		var row departmentRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, r.p.wrap(op, err)
		}
		departments = append(departments, row.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, r.p.wrap(op, err)
	}
	return departments, nil
}
