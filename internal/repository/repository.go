package repository

import (
	"context"

	"salesdesk/internal/domain"
)

// DepartmentDao defines data access for departments
type DepartmentDao interface {
	// Insert persists a new department and assigns its generated ID
	Insert(ctx context.Context, d *domain.Department) error
	// Update rewrites an existing department. Zero rows matched is not an error.
	Update(ctx context.Context, d *domain.Department) error
	// DeleteByID removes a department. Fails if no row matched or if sellers
	// still reference it.
	DeleteByID(ctx context.Context, id int64) error
	// FindByID returns nil, nil when no row matches
	FindByID(ctx context.Context, id int64) (*domain.Department, error)
	// FindAll returns every department ordered by name
	FindAll(ctx context.Context) ([]*domain.Department, error)
}

// SellerDao defines data access for sellers. Every returned seller carries
// its fully populated department.
type SellerDao interface {
	Insert(ctx context.Context, s *domain.Seller) error
	Update(ctx context.Context, s *domain.Seller) error
	DeleteByID(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Seller, error)
	FindAll(ctx context.Context) ([]*domain.Seller, error)
	// FindByDepartment returns the sellers of one department ordered by name
	FindByDepartment(ctx context.Context, d *domain.Department) ([]*domain.Seller, error)
}
