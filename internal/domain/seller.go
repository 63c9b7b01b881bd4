package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Seller represents a salesperson assigned to a department
type Seller struct {
	ID         *int64          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	BirthDate  *time.Time      `json:"birth_date,omitempty"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	Department *Department     `json:"department"`
}

// IsNew reports whether the seller has not been persisted yet
func (s *Seller) IsNew() bool {
	return s.ID == nil
}

// SetID assigns the store-generated identity
func (s *Seller) SetID(id int64) {
	s.ID = &id
}

// IDValue returns the identity, or 0 when unsaved
func (s *Seller) IDValue() int64 {
	if s == nil || s.ID == nil {
		return 0
	}
	return *s.ID
}

// DepartmentID returns the referenced department's identity, or nil when
// the seller has no department or it is unsaved
func (s *Seller) DepartmentID() *int64 {
	if s.Department == nil {
		return nil
	}
	return s.Department.ID
}

func (s *Seller) String() string {
	id := "new"
	if s.ID != nil {
		id = fmt.Sprintf("%d", *s.ID)
	}
	return fmt.Sprintf("Seller[%s, %s, %s]", id, s.Name, s.Email)
}
