package view

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"salesdesk/internal/domain"
	"salesdesk/internal/notify"
	"salesdesk/internal/validation"
)

// ErrFormClosed is returned by Save after the form was saved or cancelled
var ErrFormClosed = errors.New("form is closed")

// form holds the save/cancel cycle shared by entity forms
type form[T any] struct {
	saver    Saver[T]
	registry *notify.Registry
	topic    notify.Topic
	logger   *zap.Logger

	mu     sync.Mutex
	errs   domain.FieldErrors
	closed bool
}

func (f *form[T]) setup(saver Saver[T], registry *notify.Registry, topic notify.Topic, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	f.saver = saver
	f.registry = registry
	f.topic = topic
	f.logger = logger.Named("form").With(zap.String("topic", string(topic)))
	f.errs = domain.FieldErrors{}
}

// commit persists a parsed entity. With field errors nothing is saved and
// nothing is notified; the errors stay on the form for redisplay.
func (f *form[T]) commit(ctx context.Context, e T, errs domain.FieldErrors) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrFormClosed
	}

	f.errs = errs
	if err := errs.Err(); err != nil {
		return err
	}

	if err := f.saver.SaveOrUpdate(ctx, e); err != nil {
		return err
	}

	f.closed = true
	publish(ctx, f.registry, f.topic, f.logger)
	return nil
}

// Errors returns the field errors of the last Save attempt
func (f *form[T]) Errors() domain.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(domain.FieldErrors, len(f.errs))
	for k, v := range f.errs {
		out[k] = v
	}
	return out
}

// Cancel closes the form without touching the store
func (f *form[T]) Cancel() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

// Closed reports whether the form was saved or cancelled
func (f *form[T]) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// DepartmentForm edits one department
type DepartmentForm struct {
	form[*domain.Department]
	limits validation.Limits
	entity *domain.Department
}

// NewDepartmentForm opens a form on d, or on a new department when d is nil
func NewDepartmentForm(svc Saver[*domain.Department], registry *notify.Registry, limits validation.Limits, d *domain.Department, logger *zap.Logger) *DepartmentForm {
	if d == nil {
		d = &domain.Department{}
	}
	f := &DepartmentForm{limits: limits, entity: d}
	f.setup(svc, registry, notify.TopicDepartment, logger)
	return f
}

// Values renders the edited department as form text
func (f *DepartmentForm) Values() validation.DepartmentForm {
	return validation.FormFromDepartment(f.entity)
}

// Save validates raw, persists the result and notifies department listeners
func (f *DepartmentForm) Save(ctx context.Context, raw validation.DepartmentForm) (*domain.Department, error) {
	d, errs := raw.Parse(f.limits)
	if err := f.commit(ctx, d, errs); err != nil {
		return nil, err
	}
	f.entity = d
	return d, nil
}

// SellerForm edits one seller
type SellerForm struct {
	form[*domain.Seller]
	departments Lister[*domain.Department]
	limits      validation.Limits
	entity      *domain.Seller

	choices []*domain.Department
}

// NewSellerForm opens a form on s, or on a new seller when s is nil.
// departments supplies the department choices.
func NewSellerForm(svc Saver[*domain.Seller], departments Lister[*domain.Department], registry *notify.Registry, limits validation.Limits, s *domain.Seller, logger *zap.Logger) *SellerForm {
	if s == nil {
		s = &domain.Seller{}
	}
	f := &SellerForm{departments: departments, limits: limits, entity: s}
	f.setup(svc, registry, notify.TopicSeller, logger)
	return f
}

// LoadAssociatedObjects loads the department choices
func (f *SellerForm) LoadAssociatedObjects(ctx context.Context) error {
	deps, err := f.departments.FindAll(ctx)
	if err != nil {
		return err
	}
	f.choices = deps
	return nil
}

// Departments returns the loaded department choices
func (f *SellerForm) Departments() []*domain.Department {
	return f.choices
}

// Values renders the edited seller as form text
func (f *SellerForm) Values() validation.SellerForm {
	return validation.FormFromSeller(f.entity)
}

// Save validates raw against the loaded choices, persists the result and
// notifies seller listeners
func (f *SellerForm) Save(ctx context.Context, raw validation.SellerForm) (*domain.Seller, error) {
	s, errs := raw.Parse(f.limits, f.choices)
	if err := f.commit(ctx, s, errs); err != nil {
		return nil, err
	}
	f.entity = s
	return s, nil
}
