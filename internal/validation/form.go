package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"salesdesk/internal/domain"
)

// Field names shared by forms and the HTTP surface
const (
	FieldID           = "id"
	FieldName         = "name"
	FieldEmail        = "email"
	FieldBirthDate    = "birth_date"
	FieldBaseSalary   = "base_salary"
	FieldDepartmentID = "department_id"
)

// Messages recorded for rejected fields
const (
	MsgInvalidNumber     = "Invalid number"
	MsgInvalidDate       = "Invalid date"
	MsgInvalidEmail      = "Invalid email"
	MsgUnknownDepartment = "Unknown department"
)

// MsgTooLong is the message for a field longer than max characters
func MsgTooLong(max int) string {
	return fmt.Sprintf("Field exceeds %d characters", max)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkText trims raw, checks it against the validator tags and records a
// message for every failing tag. The trimmed value is returned.
func checkText(errs domain.FieldErrors, field, raw, tags string) string {
	v := strings.TrimSpace(raw)

	err := validate.Var(v, tags)
	if err == nil {
		return v
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add(field, err.Error())
		return v
	}
	for _, fe := range verrs {
		errs.Add(field, fieldMessage(fe))
	}
	return v
}

// fieldMessage maps a validator tag to the message shown next to the field
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return domain.MsgRequired
	case "max":
		n, _ := strconv.Atoi(fe.Param())
		return MsgTooLong(n)
	case "email":
		return MsgInvalidEmail
	default:
		return "Invalid value"
	}
}

// textTags builds the tag list for a required text field of at most max
// characters. A non-positive max disables the length check.
func textTags(max int, extra ...string) string {
	tags := []string{"required"}
	if max > 0 {
		tags = append(tags, fmt.Sprintf("max=%d", max))
	}
	return strings.Join(append(tags, extra...), ",")
}

// DepartmentForm is the raw text of a department form
type DepartmentForm struct {
	ID   string
	Name string
}

// Parse validates the form. The department is returned even when errs is
// non-empty so the caller can redisplay it.
func (f DepartmentForm) Parse(limits Limits) (*domain.Department, domain.FieldErrors) {
	errs := domain.FieldErrors{}

	d := &domain.Department{ID: TryParseInt(f.ID)}
	d.Name = checkText(errs, FieldName, f.Name, textTags(limits.DepartmentName))

	return d, errs
}

// FormFromDepartment renders a department back into form text
func FormFromDepartment(d *domain.Department) DepartmentForm {
	if d == nil {
		return DepartmentForm{}
	}
	return DepartmentForm{ID: FormatID(d.ID), Name: d.Name}
}

// SellerForm is the raw text of a seller form
type SellerForm struct {
	ID           string
	Name         string
	Email        string
	BirthDate    string
	BaseSalary   string
	DepartmentID string
}

// Parse validates the form. departments are the selectable choices; the
// seller's department is resolved against them by id.
func (f SellerForm) Parse(limits Limits, departments []*domain.Department) (*domain.Seller, domain.FieldErrors) {
	errs := domain.FieldErrors{}

	s := &domain.Seller{ID: TryParseInt(f.ID)}
	s.Name = checkText(errs, FieldName, f.Name, textTags(limits.SellerName))

	s.Email = checkText(errs, FieldEmail, f.Email, textTags(limits.SellerEmail, "email"))

	if raw := strings.TrimSpace(f.BirthDate); raw != "" {
		t, err := ParseDate(raw)
		if err != nil {
			errs.Add(FieldBirthDate, MsgInvalidDate)
		} else {
			s.BirthDate = &t
		}
	}

	if raw := strings.TrimSpace(f.BaseSalary); raw == "" {
		errs.Add(FieldBaseSalary, domain.MsgRequired)
	} else if salary, err := ParseSalary(raw); err != nil {
		errs.Add(FieldBaseSalary, MsgInvalidNumber)
	} else {
		s.BaseSalary = salary
	}

	if strings.TrimSpace(f.DepartmentID) == "" {
		errs.Add(FieldDepartmentID, domain.MsgRequired)
	} else if id := TryParseInt(f.DepartmentID); id == nil {
		errs.Add(FieldDepartmentID, MsgInvalidNumber)
	} else if dep := findDepartment(departments, *id); dep == nil {
		errs.Add(FieldDepartmentID, MsgUnknownDepartment)
	} else {
		s.Department = dep
	}

	return s, errs
}

// FormFromSeller renders a seller back into form text
func FormFromSeller(s *domain.Seller) SellerForm {
	if s == nil {
		return SellerForm{}
	}
	f := SellerForm{
		ID:         FormatID(s.ID),
		Name:       s.Name,
		Email:      s.Email,
		BirthDate:  FormatDate(s.BirthDate),
		BaseSalary: FormatSalary(s.BaseSalary),
	}
	if s.Department != nil {
		f.DepartmentID = FormatID(s.Department.ID)
	}
	return f
}

func findDepartment(departments []*domain.Department, id int64) *domain.Department {
	for _, d := range departments {
		if d != nil && d.ID != nil && *d.ID == id {
			return d
		}
	}
	return nil
}
