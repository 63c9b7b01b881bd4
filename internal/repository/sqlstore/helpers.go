package sqlstore

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"salesdesk/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// nullToTimePtr safely converts sql.NullTime to *time.Time
func nullToTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		return &nt.Time
	}
	return nil
}

// timePtrToNull safely converts *time.Time to sql.NullTime
func timePtrToNull(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// ============================================================================
// Schema Evolution Guide
// ============================================================================
//
// To add a column to the seller table:
// 1. Add field to sellerRow struct (below)
// 2. Update scanArgs() - APPEND to end to match column order
// 3. Update sellerColumns constant - APPEND to end
// 4. Update toDomain() to map the new field
// 5. Update sellerWriteArgs() if the column is writable
// 6. Add the column to both dialect schema() lists
//
// CRITICAL: Column order must match between sellerColumns and scanArgs().

// ============================================================================
// Department Row Scanner
// ============================================================================

// departmentRow holds all columns from a department query for scanning
type departmentRow struct {
	ID   int64
	Name sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match departmentColumns order exactly: Id, Name
func (r *departmentRow) scanArgs() []interface{} {
	return []interface{}{
		&r.ID,   // 1
		&r.Name, // 2
	}
}

// toDomain converts the scanned row to a domain.Department
func (r *departmentRow) toDomain() *domain.Department {
	d := &domain.Department{Name: nullToString(r.Name)}
	d.SetID(r.ID)
	return d
}

// departmentColumns returns the SELECT column list for department queries
const departmentColumns = `Id, Name`

// ============================================================================
// Seller Row Scanner
// ============================================================================

// sellerRow holds the seller columns plus the joined department name
type sellerRow struct {
	ID           int64
	Name         string
	Email        string
	BirthDate    sql.NullTime
	BaseSalary   decimal.Decimal
	DepartmentID int64
	DepName      sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match sellerColumns order exactly:
// Id, Name, Email, BirthDate, BaseSalary, DepartmentId, DepName
func (r *sellerRow) scanArgs() []interface{} {
	return []interface{}{
		&r.ID,           // 1
		&r.Name,         // 2
		&r.Email,        // 3
		&r.BirthDate,    // 4
		&r.BaseSalary,   // 5
		&r.DepartmentID, // 6
		&r.DepName,      // 7
	}
}

// toDomain converts the scanned row to a domain.Seller with its department
// populated. deps lets rows of the same department share one instance.
func (r *sellerRow) toDomain(deps map[int64]*domain.Department) *domain.Seller {
	dep, ok := deps[r.DepartmentID]
	if !ok {
		dep = &domain.Department{Name: nullToString(r.DepName)}
		dep.SetID(r.DepartmentID)
		if deps != nil {
			deps[r.DepartmentID] = dep
		}
	}

	s := &domain.Seller{
		Name:       r.Name,
		Email:      r.Email,
		BirthDate:  nullToTimePtr(r.BirthDate),
		BaseSalary: r.BaseSalary,
		Department: dep,
	}
	s.SetID(r.ID)
	return s
}

// sellerColumns returns the SELECT column list for joined seller queries
const sellerColumns = `seller.Id, seller.Name, seller.Email, seller.BirthDate,
	seller.BaseSalary, seller.DepartmentId, department.Name AS DepName`

// sellerFrom is the join every seller read goes through
const sellerFrom = `FROM seller INNER JOIN department ON seller.DepartmentId = department.Id`

// ============================================================================
// Seller Write Helpers
// ============================================================================

// sellerWriteArgs prepares arguments for seller INSERT/UPDATE
// Returns: Name, Email, BirthDate, BaseSalary, DepartmentId
func sellerWriteArgs(s *domain.Seller) []interface{} {
	return []interface{}{
		s.Name,
		s.Email,
		timePtrToNull(s.BirthDate),
		s.BaseSalary,
		*s.Department.ID,
	}
}
