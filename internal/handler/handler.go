package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"salesdesk/internal/domain"
	"salesdesk/internal/notify"
	"salesdesk/internal/service"
	"salesdesk/internal/validation"
	"salesdesk/internal/view"
)

// Handler serves the department and seller API
type Handler struct {
	departments *service.DepartmentService
	sellers     *service.SellerService
	registry    *notify.Registry
	limits      validation.Limits
	logger      *zap.Logger

	departmentList *view.ListView[*domain.Department]
	sellerList     *view.ListView[*domain.Seller]
	importer       *view.Importer
}

// New creates a handler. The list views must already be attached and
// refreshed by the caller.
func New(
	departments *service.DepartmentService,
	sellers *service.SellerService,
	departmentList *view.ListView[*domain.Department],
	sellerList *view.ListView[*domain.Seller],
	registry *notify.Registry,
	limits validation.Limits,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		departments:    departments,
		sellers:        sellers,
		registry:       registry,
		limits:         limits,
		logger:         logger.Named("http"),
		departmentList: departmentList,
		sellerList:     sellerList,
		importer:       view.NewImporter(departments, sellers, registry, limits, logger),
	}
}

// ErrorResponse is the JSON error body
type ErrorResponse struct {
	Error   string             `json:"error"`
	Details string             `json:"details,omitempty"`
	Fields  domain.FieldErrors `json:"fields,omitempty"`
}

// pathID parses the {id} URL parameter; ok is false after a 400 was written
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id := validation.TryParseInt(raw)
	if id == nil {
		h.writeError(w, "Invalid ID", "not an integer: "+raw, http.StatusBadRequest)
		return 0, false
	}
	return *id, true
}

// writeFailure maps a domain error onto a status code
func (h *Handler) writeFailure(w http.ResponseWriter, message string, err error) {
	var ve *domain.ValidationError
	var ie *domain.IntegrityError

	switch {
	case errors.As(err, &ve):
		h.writeJSON(w, ErrorResponse{Error: message, Details: "validation failed", Fields: ve.Errors}, http.StatusUnprocessableEntity)
	case errors.As(err, &ie):
		h.writeError(w, message, ie.Error(), http.StatusConflict)
	case errors.Is(err, view.ErrFormClosed):
		h.writeError(w, message, err.Error(), http.StatusConflict)
	default:
		h.logger.Error(message, zap.Error(err))
		h.writeError(w, message, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn("failed to encode JSON", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message, details string, statusCode int) {
	h.writeJSON(w, ErrorResponse{Error: message, Details: details}, statusCode)
}
