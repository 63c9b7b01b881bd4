// Package view holds the widget-free list and form controllers that sit
// between a user interface and the services.
//
// A ListView keeps the displayed collection of one entity type and
// re-queries it whenever a topic it is attached to fires. A form parses
// raw text, saves through the service and, only once the store confirmed
// the write, notifies the registry so every attached list refreshes before
// Save returns. Validation failures and Cancel never notify.
package view

import (
	"context"

	"salesdesk/internal/domain"
	"salesdesk/internal/service"
)

// Lister loads the full collection of T
type Lister[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
}

// Source is what a ListView reads from and deletes through
type Source[T any] interface {
	Lister[T]
	Remove(ctx context.Context, e T) error
}

// Saver persists T, choosing between insert and update
type Saver[T any] interface {
	SaveOrUpdate(ctx context.Context, e T) error
}

var (
	_ DepartmentSource = (*service.DepartmentService)(nil)
	_ SellerSource     = (*service.SellerService)(nil)
)

// DepartmentSource is the department service as seen by views
type DepartmentSource interface {
	Source[*domain.Department]
	Saver[*domain.Department]
}

// SellerSource is the seller service as seen by views
type SellerSource interface {
	Source[*domain.Seller]
	Saver[*domain.Seller]
}
