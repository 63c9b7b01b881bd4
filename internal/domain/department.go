package domain

import "fmt"

// Department represents an organisational unit sellers are assigned to
type Department struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

// NewDepartment creates an unsaved department
func NewDepartment(name string) *Department {
	return &Department{Name: name}
}

// IsNew reports whether the department has not been persisted yet
func (d *Department) IsNew() bool {
	return d.ID == nil
}

// SetID assigns the store-generated identity
func (d *Department) SetID(id int64) {
	d.ID = &id
}

// IDValue returns the identity, or 0 when unsaved
func (d *Department) IDValue() int64 {
	if d == nil || d.ID == nil {
		return 0
	}
	return *d.ID
}

func (d *Department) String() string {
	if d.ID == nil {
		return fmt.Sprintf("Department[new, %s]", d.Name)
	}
	return fmt.Sprintf("Department[%d, %s]", *d.ID, d.Name)
}
