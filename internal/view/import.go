package view

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"salesdesk/internal/codec"
	"salesdesk/internal/domain"
	"salesdesk/internal/notify"
	"salesdesk/internal/validation"
)

// ImportResult summarises a roster import
type ImportResult struct {
	DepartmentsCreated int      `json:"departments_created"`
	SellersCreated     int      `json:"sellers_created"`
	Rejected           []string `json:"rejected,omitempty"`
}

// Importer saves roster records through the regular forms, so every record
// is validated and every save is announced like a hand-entered one
type Importer struct {
	departments DepartmentSource
	sellers     Saver[*domain.Seller]
	registry    *notify.Registry
	limits      validation.Limits
	logger      *zap.Logger
}

// NewImporter creates an importer
func NewImporter(departments DepartmentSource, sellers Saver[*domain.Seller], registry *notify.Registry, limits validation.Limits, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		departments: departments,
		sellers:     sellers,
		registry:    registry,
		limits:      limits,
		logger:      logger.Named("import"),
	}
}

// Import merges roster into the store. Departments are matched by name;
// rejected records are reported and skipped. Only store failures abort.
func (im *Importer) Import(ctx context.Context, roster *codec.Roster) (*ImportResult, error) {
	result := &ImportResult{}

	existing, err := im.departments.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*domain.Department, len(existing))
	for _, d := range existing {
		byName[d.Name] = d
	}

	for i, rec := range roster.Departments {
		dep, ok := byName[strings.TrimSpace(rec.Name)]
		if !ok {
			form := NewDepartmentForm(im.departments, im.registry, im.limits, nil, im.logger)
			dep, err = form.Save(ctx, validation.DepartmentForm{Name: rec.Name})
			if err != nil {
				if domain.IsValidation(err) {
					result.Rejected = append(result.Rejected, fmt.Sprintf("department #%d %q: %v", i+1, rec.Name, err))
					continue
				}
				return result, err
			}
			byName[dep.Name] = dep
			result.DepartmentsCreated++
		}

		choices := []*domain.Department{dep}
		for j, srec := range rec.Sellers {
			form := NewSellerForm(im.sellers, nil, im.registry, im.limits, nil, im.logger)
			form.choices = choices

			if _, err := form.Save(ctx, srec.SellerForm(dep.ID)); err != nil {
				if domain.IsValidation(err) {
					result.Rejected = append(result.Rejected, fmt.Sprintf("seller #%d %q of %q: %v", j+1, srec.Name, rec.Name, err))
					continue
				}
				return result, err
			}
			result.SellersCreated++
		}
	}

	im.logger.Info("roster imported",
		zap.Int("departments_created", result.DepartmentsCreated),
		zap.Int("sellers_created", result.SellersCreated),
		zap.Int("rejected", len(result.Rejected)),
	)
	return result, nil
}
