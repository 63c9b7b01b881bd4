package service

import (
	"context"

	"go.uber.org/zap"

	"salesdesk/internal/domain"
	"salesdesk/internal/repository"
)

// SellerService provides seller operations for the views
type SellerService struct {
	dao    repository.SellerDao
	logger *zap.Logger
}

// NewSellerService creates a new seller service
func NewSellerService(dao repository.SellerDao, logger *zap.Logger) *SellerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SellerService{dao: dao, logger: logger.Named("sellers")}
}

// FindAll returns every seller ordered by name
func (s *SellerService) FindAll(ctx context.Context) ([]*domain.Seller, error) {
	return s.dao.FindAll(ctx)
}

// FindByID returns the seller, or nil when it does not exist
func (s *SellerService) FindByID(ctx context.Context, id int64) (*domain.Seller, error) {
	return s.dao.FindByID(ctx, id)
}

// FindByDepartment returns the sellers assigned to d
func (s *SellerService) FindByDepartment(ctx context.Context, d *domain.Department) ([]*domain.Seller, error) {
	return s.dao.FindByDepartment(ctx, d)
}

// SaveOrUpdate inserts a new seller or updates an existing one
func (s *SellerService) SaveOrUpdate(ctx context.Context, seller *domain.Seller) error {
	op := "updated"
	var err error
	if seller.IsNew() {
		op = "inserted"
		err = s.dao.Insert(ctx, seller)
	} else {
		err = s.dao.Update(ctx, seller)
	}
	if err != nil {
		return err
	}

	s.logger.Debug("seller "+op,
		zap.Int64("id", seller.IDValue()),
		zap.Int64("department_id", seller.Department.IDValue()),
	)
	return nil
}

// Remove deletes the seller
func (s *SellerService) Remove(ctx context.Context, seller *domain.Seller) error {
	if seller == nil || seller.IsNew() {
		return &domain.PersistenceError{Op: "delete seller", Msg: "seller is not persisted"}
	}

	if err := s.dao.DeleteByID(ctx, *seller.ID); err != nil {
		return err
	}
	s.logger.Debug("seller removed", zap.Int64("id", *seller.ID))
	return nil
}
