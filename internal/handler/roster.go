package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"salesdesk/internal/codec"
)

// maxImportBytes bounds an uploaded roster
const maxImportBytes = 4 << 20

// ExportRoster writes every department with its sellers as JSON or YAML
func (h *Handler) ExportRoster(w http.ResponseWriter, r *http.Request) {
	c, err := codec.ForFormat(chi.URLParam(r, "format"))
	if err != nil {
		h.writeError(w, "Invalid format", err.Error(), http.StatusBadRequest)
		return
	}

	roster := codec.NewRoster(h.departmentList.Items(), h.sellerList.Items())

	contentType := "application/json"
	if c.Format() == "yaml" {
		contentType = "application/yaml"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=roster."+c.Format())

	if err := c.Export(roster, w); err != nil {
		h.logger.Error("failed to export roster", zap.Error(err))
	}
}

// ImportRoster merges an uploaded roster. Rejected records are listed in
// the response; the rest are saved.
func (h *Handler) ImportRoster(w http.ResponseWriter, r *http.Request) {
	c, err := codec.ForFormat(chi.URLParam(r, "format"))
	if err != nil {
		h.writeError(w, "Invalid format", err.Error(), http.StatusBadRequest)
		return
	}

	roster, err := c.Parse(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		h.writeError(w, "Invalid roster", err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.importer.Import(r.Context(), roster)
	if err != nil {
		h.writeFailure(w, "Failed to import roster", err)
		return
	}

	h.writeJSON(w, result, http.StatusOK)
}
