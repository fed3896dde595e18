package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/retailpulse/backend/internal/application/services"
	"github.com/retailpulse/backend/internal/domain/entities"
	"github.com/retailpulse/backend/internal/query"
	apperrors "github.com/retailpulse/backend/pkg/errors"
)

// SalesBrowser is the service surface the sales endpoints depend on.
type SalesBrowser interface {
	Search(ctx context.Context, f query.Filter) (*services.SearchResult, error)
	FacetOptions(ctx context.Context) (*entities.FacetOptions, error)
	Summary(ctx context.Context) (*entities.SalesSummary, error)
}

// SalesHandler handles sales-browsing HTTP requests
type SalesHandler struct {
	service SalesBrowser
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(service SalesBrowser) *SalesHandler {
	return &SalesHandler{service: service}
}

// GetSales handles GET /api/sales
func (h *SalesHandler) GetSales(w http.ResponseWriter, r *http.Request) {
	filter := ParseFilter(r.URL.Query())

	result, err := h.service.Search(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, r, err, "failed to fetch sales")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetFilterOptions handles GET /api/sales/filter-options
func (h *SalesHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.FacetOptions(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err, "failed to fetch filter options")
		return
	}

	respondWithJSON(w, http.StatusOK, options)
}

// GetSummary handles GET /api/sales/summary
func (h *SalesHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err, "failed to fetch sales summary")
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

// respondWithServiceError maps service errors onto HTTP statuses. Store
// failures surface as a single opaque 500; details stay in the log.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error, message string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeValidation {
		respondWithError(w, http.StatusBadRequest, appErr.Message)
		return
	}

	log.Error().Err(err).Str("path", r.URL.Path).Msg(message)
	respondWithError(w, http.StatusInternalServerError, message)
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
