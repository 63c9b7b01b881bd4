package service

import (
	"context"

	"go.uber.org/zap"

	"salesdesk/internal/domain"
	"salesdesk/internal/repository"
)

// DepartmentService provides department operations for the views
type DepartmentService struct {
	dao    repository.DepartmentDao
	logger *zap.Logger
}

// NewDepartmentService creates a new department service
func NewDepartmentService(dao repository.DepartmentDao, logger *zap.Logger) *DepartmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepartmentService{dao: dao, logger: logger.Named("departments")}
}

// FindAll returns every department ordered by name
func (s *DepartmentService) FindAll(ctx context.Context) ([]*domain.Department, error) {
	return s.dao.FindAll(ctx)
}

// FindByID returns the department, or nil when it does not exist
func (s *DepartmentService) FindByID(ctx context.Context, id int64) (*domain.Department, error) {
	return s.dao.FindByID(ctx, id)
}

// SaveOrUpdate inserts a new department or updates an existing one
func (s *DepartmentService) SaveOrUpdate(ctx context.Context, d *domain.Department) error {
	if d.IsNew() {
		if err := s.dao.Insert(ctx, d); err != nil {
			return err
		}
		s.logger.Debug("department inserted", zap.Int64("id", d.IDValue()), zap.String("name", d.Name))
		return nil
	}

	if err := s.dao.Update(ctx, d); err != nil {
		return err
	}
	s.logger.Debug("department updated", zap.Int64("id", d.IDValue()), zap.String("name", d.Name))
	return nil
}

// Remove deletes the department. An IntegrityError is returned when sellers
// still reference it.
func (s *DepartmentService) Remove(ctx context.Context, d *domain.Department) error {
	if d == nil || d.IsNew() {
		return &domain.PersistenceError{Op: "delete department", Msg: "department is not persisted"}
	}

	if err := s.dao.DeleteByID(ctx, *d.ID); err != nil {
		return err
	}
	s.logger.Debug("department removed", zap.Int64("id", *d.ID))
	return nil
}
