package handler

import (
	"net/http"

	"salesdesk/internal/validation"
	"salesdesk/internal/view"
)

// ListSellers returns the seller list ordered by name
func (h *Handler) ListSellers(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.sellerList.Items(), http.StatusOK)
}

// GetSeller returns a single seller with its department
func (h *Handler) GetSeller(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	s, err := h.sellers.FindByID(r.Context(), id)
	if err != nil {
		h.writeFailure(w, "Failed to get seller", err)
		return
	}
	if s == nil {
		h.writeError(w, "Not found", "seller not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, s, http.StatusOK)
}

// SaveSeller creates or updates a seller from form values
func (h *Handler) SaveSeller(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeError(w, "Invalid form", err.Error(), http.StatusBadRequest)
		return
	}

	raw := validation.SellerForm{
		ID:           r.PostFormValue(validation.FieldID),
		Name:         r.PostFormValue(validation.FieldName),
		Email:        r.PostFormValue(validation.FieldEmail),
		BirthDate:    r.PostFormValue(validation.FieldBirthDate),
		BaseSalary:   r.PostFormValue(validation.FieldBaseSalary),
		DepartmentID: r.PostFormValue(validation.FieldDepartmentID),
	}

	status := http.StatusCreated
	form := view.NewSellerForm(h.sellers, h.departments, h.registry, h.limits, nil, h.logger)
	if id := validation.TryParseInt(raw.ID); id != nil {
		existing, err := h.sellers.FindByID(r.Context(), *id)
		if err != nil {
			h.writeFailure(w, "Failed to save seller", err)
			return
		}
		if existing == nil {
			h.writeError(w, "Not found", "seller not found", http.StatusNotFound)
			return
		}
		form = view.NewSellerForm(h.sellers, h.departments, h.registry, h.limits, existing, h.logger)
		status = http.StatusOK
	}

	if err := form.LoadAssociatedObjects(r.Context()); err != nil {
		h.writeFailure(w, "Failed to load departments", err)
		return
	}

	saved, err := form.Save(r.Context(), raw)
	if err != nil {
		h.writeFailure(w, "Failed to save seller", err)
		return
	}

	h.writeJSON(w, saved, status)
}

// DeleteSeller removes a seller
func (h *Handler) DeleteSeller(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	s, err := h.sellers.FindByID(r.Context(), id)
	if err != nil {
		h.writeFailure(w, "Failed to delete seller", err)
		return
	}
	if s == nil {
		h.writeError(w, "Not found", "seller not found", http.StatusNotFound)
		return
	}

	if err := h.sellerList.Remove(r.Context(), s); err != nil {
		h.writeFailure(w, "Failed to delete seller", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
