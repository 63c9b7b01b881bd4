package handler

import (
	"net/http"

	"salesdesk/internal/validation"
	"salesdesk/internal/view"
)

// ListDepartments returns the department list ordered by name
func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.departmentList.Items(), http.StatusOK)
}

// GetDepartment returns a single department
func (h *Handler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	d, err := h.departments.FindByID(r.Context(), id)
	if err != nil {
		h.writeFailure(w, "Failed to get department", err)
		return
	}
	if d == nil {
		h.writeError(w, "Not found", "department not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, d, http.StatusOK)
}

// SaveDepartment creates or updates a department from form values.
// A non-empty id field selects the department to edit.
func (h *Handler) SaveDepartment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeError(w, "Invalid form", err.Error(), http.StatusBadRequest)
		return
	}

	raw := validation.DepartmentForm{
		ID:   r.PostFormValue(validation.FieldID),
		Name: r.PostFormValue(validation.FieldName),
	}

	status := http.StatusCreated
	form := view.NewDepartmentForm(h.departments, h.registry, h.limits, nil, h.logger)
	if id := validation.TryParseInt(raw.ID); id != nil {
		existing, err := h.departments.FindByID(r.Context(), *id)
		if err != nil {
			h.writeFailure(w, "Failed to save department", err)
			return
		}
		if existing == nil {
			h.writeError(w, "Not found", "department not found", http.StatusNotFound)
			return
		}
		form = view.NewDepartmentForm(h.departments, h.registry, h.limits, existing, h.logger)
		status = http.StatusOK
	}

	saved, err := form.Save(r.Context(), raw)
	if err != nil {
		h.writeFailure(w, "Failed to save department", err)
		return
	}

	h.writeJSON(w, saved, status)
}

// DeleteDepartment removes a department. Departments still referenced by
// sellers are refused with 409.
func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	d, err := h.departments.FindByID(r.Context(), id)
	if err != nil {
		h.writeFailure(w, "Failed to delete department", err)
		return
	}
	if d == nil {
		h.writeError(w, "Not found", "department not found", http.StatusNotFound)
		return
	}

	if err := h.departmentList.Remove(r.Context(), d); err != nil {
		h.writeFailure(w, "Failed to delete department", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListDepartmentSellers returns the sellers of one department
func (h *Handler) ListDepartmentSellers(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	d, err := h.departments.FindByID(r.Context(), id)
	if err != nil {
		h.writeFailure(w, "Failed to list sellers", err)
		return
	}
	if d == nil {
		h.writeError(w, "Not found", "department not found", http.StatusNotFound)
		return
	}

	sellers, err := h.sellers.FindByDepartment(r.Context(), d)
	if err != nil {
		h.writeFailure(w, "Failed to list sellers", err)
		return
	}

	h.writeJSON(w, sellers, http.StatusOK)
}
