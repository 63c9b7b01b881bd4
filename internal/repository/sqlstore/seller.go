package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"salesdesk/internal/domain"
)

// SellerDao implements repository.SellerDao
type SellerDao struct {
	p *Provider
}

// requireDepartment rejects sellers whose department has not been persisted
func requireDepartment(op string, s *domain.Seller) error {
	if s.Department == nil || s.Department.ID == nil {
		return &domain.PersistenceError{Op: op, Msg: "seller department is not persisted"}
	}
	return nil
}

// Insert persists a new seller and assigns the generated ID back onto it
func (r *SellerDao) Insert(ctx context.Context, s *domain.Seller) error {
	const op = "insert seller"
	if s.ID != nil {
		return &domain.PersistenceError{Op: op, Msg: fmt.Sprintf("seller already has id %d", *s.ID)}
	}
	if err := requireDepartment(op, s); err != nil {
		return err
	}

	ctx, cancel := r.p.withTimeout(ctx)
	defer cancel()

	stmt, err := r.p.prepare(ctx, r.p.dialect.insertSQL(`INSERT INTO seller
		(Name, Email, BirthDate, BaseSalary, DepartmentId)
		VALUES (?, ?, ?, ?, ?)`))
	if err != nil {
		return r.p.wrap(op, err)
	}
	defer stmt.Close()

	id, err := r.p.dialect.execInsert(ctx, stmt, sellerWriteArgs(s)...)
	if err != nil {
		return r.p.wrap(op, err)
	}

	s.SetID(id)
	return nil
}

// Update rewrites the seller's columns by ID. A missing row is not an error.
func (r *SellerDao) Update(ctx context.Context, s *domain.Seller) error {
	const op = "update seller"
	if s.ID == nil {
		return &domain.PersistenceError{Op: op, Msg: "seller has no id"}
	}
	if err := requireDepartment(op, s); err != nil {
		return err
	}

	ctx, cancel := r.p.withTimeout(ctx)
	defer cancel()

	stmt, err := r.p.prepare(ctx, `UPDATE seller
		SET Name = ?, Email = ?, BirthDate = ?, BaseSalary = ?, DepartmentId = ?
		WHERE Id = ?`)
	if err != nil {
		return r.p.wrap(op, err)
	}
	defer stmt.Close()

	args := append(sellerWriteArgs(s), *s.ID)
	if _, err := stmt.ExecContext(ctx, args...); err != nil {
		return r.p.wrap(op, err)
	}
	return nil
}

// DeleteByID removes a seller. Fails when the ID does not exist.
func (r *SellerDao) DeleteByID(ctx context.Context, id int64) error {
	const op = "delete seller"

	ctx, cancel := r.p.withTimeout(ctx)
	defer cancel()

	stmt, err := r.p.prepare(ctx, `DELETE FROM seller WHERE Id = ?`)
	if err != nil {
		return r.p.wrap(op, err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return r.p.wrap(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return r.p.wrap(op, err)
	}
	if n == 0 {
		return &domain.PersistenceError{Op: op, Msg: fmt.Sprintf("seller with id %d doesn't exist", id)}
	}
	return nil
}

// FindByID retrieves a single seller with its department; nil, nil when absent
func (r *SellerDao) FindByID(ctx context.Context, id int64) (*domain.Seller, error) {
	const op = "find seller"

	ctx, cancel := r.p.withTimeout(ctx)
	defer cancel()

	stmt, err := r.p.prepare(ctx, `SELECT `+sellerColumns+` `+sellerFrom+` WHERE seller.Id = ?`)
	if err != nil {
		return nil, r.p.wrap(op, err)
	}
	defer stmt.Close()

	var row sellerRow
	err = stmt.QueryRowContext(ctx, id).Scan(row.scanArgs()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.p.wrap(op, err)
	}

	return row.toDomain(nil), nil
}

// FindAll returns every seller ordered by name
func (r *SellerDao) FindAll(ctx context.Context) ([]*domain.Seller, error) {
	return r.query(ctx, "list sellers", `SELECT `+sellerColumns+` `+sellerFrom+` ORDER BY seller.Name`)
}

// FindByDepartment returns the sellers of one department ordered by name
func (r *SellerDao) FindByDepartment(ctx context.Context, d *domain.Department) ([]*domain.Seller, error) {
	const op = "list sellers by department"
	if d == nil || d.ID == nil {
		return nil, &domain.PersistenceError{Op: op, Msg: "department is not persisted"}
	}
	return r.query(ctx, op, `SELECT `+sellerColumns+` `+sellerFrom+`
		WHERE seller.DepartmentId = ? ORDER BY seller.Name`, *d.ID)
}

func (r *SellerDao) query(ctx context.Context, op, query string, args ...any) ([]*domain.Seller, error) {
	ctx, cancel := r.p.withTimeout(ctx)
	defer cancel()

	stmt, err := r.p.prepare(ctx, query)
	if err != nil {
		return nil, r.p.wrap(op, err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, r.p.wrap(op, err)
	}
	defer rows.Close()

	deps := make(map[int64]*domain.Department)
	sellers := make([]*domain.Seller, 0)
	for rows.Next() {
		var row sellerRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, r.p.wrap(op, err)
		}
		sellers = append(sellers, row.toDomain(deps))
	}

	if err := rows.Err(); err != nil {
		return nil, r.p.wrap(op, err)
	}
	return sellers, nil
}
