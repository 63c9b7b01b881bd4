// Package codec converts the department/seller roster to and from
// interchange formats. Records carry form text (dd/MM/yyyy dates, two
// decimal salaries), so an imported roster goes through the same
// validation as a hand-filled form.
package codec

import (
	"fmt"
	"io"
	"sort"

	"salesdesk/internal/domain"
	"salesdesk/internal/validation"
)

// Importer parses a roster document from a format
type Importer interface {
	Parse(r io.Reader) (*Roster, error)
	Format() string
}

// Exporter writes a roster document in a format
type Exporter interface {
	Export(roster *Roster, w io.Writer) error
	Format() string
}

// Codec both imports and exports one format
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec registered for format
func ForFormat(format string) (Codec, error) {
	switch format {
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// Roster is the department tree with nested sellers
type Roster struct {
	Departments []DepartmentRecord `json:"departments" yaml:"departments"`
}

// DepartmentRecord is one department and its sellers
type DepartmentRecord struct {
	Name    string         `json:"name" yaml:"name"`
	Sellers []SellerRecord `json:"sellers,omitempty" yaml:"sellers,omitempty"`
}

// SellerRecord is a seller in form text
type SellerRecord struct {
	Name       string `json:"name" yaml:"name"`
	Email      string `json:"email" yaml:"email"`
	BirthDate  string `json:"birth_date,omitempty" yaml:"birth_date,omitempty"`
	BaseSalary string `json:"base_salary" yaml:"base_salary"`
}

// NewRoster groups sellers under their departments. Departments keep the
// given order; sellers of unknown departments are dropped.
func NewRoster(departments []*domain.Department, sellers []*domain.Seller) *Roster {
	byID := make(map[int64][]SellerRecord, len(departments))
	for _, s := range sellers {
		id := s.DepartmentID()
		if id == nil {
			continue
		}
		f := validation.FormFromSeller(s)
		byID[*id] = append(byID[*id], SellerRecord{
			Name:       f.Name,
			Email:      f.Email,
			BirthDate:  f.BirthDate,
			BaseSalary: f.BaseSalary,
		})
	}

	roster := &Roster{Departments: make([]DepartmentRecord, 0, len(departments))}
	for _, d := range departments {
		rec := DepartmentRecord{Name: d.Name, Sellers: byID[d.IDValue()]}
		sort.SliceStable(rec.Sellers, func(i, j int) bool { return rec.Sellers[i].Name < rec.Sellers[j].Name })
		roster.Departments = append(roster.Departments, rec)
	}
	return roster
}

// SellerForm returns the seller record as form text for department depID
func (r SellerRecord) SellerForm(depID *int64) validation.SellerForm {
	return validation.SellerForm{
		Name:         r.Name,
		Email:        r.Email,
		BirthDate:    r.BirthDate,
		BaseSalary:   r.BaseSalary,
		DepartmentID: validation.FormatID(depID),
	}
}
