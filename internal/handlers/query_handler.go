package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/interfaces"
	"github.com/ternarybob/reperio/internal/models"
	"github.com/ternarybob/reperio/internal/services/filter"
)

// QueryHandler serves natural-language queries against File Search stores.
type QueryHandler struct {
	querySvc interfaces.QueryService
	validate *validator.Validate
	logger   arbor.ILogger
}

func NewQueryHandler(querySvc interfaces.QueryService, logger arbor.ILogger) *QueryHandler {
	return &QueryHandler{
		querySvc: querySvc,
		validate: validator.New(),
		logger:   logger,
	}
}

// QueryHandler handles POST /api/queries. An invalid metadata filter is
// rejected here, before the request ever reaches the model.
func (h *QueryHandler) QueryHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		WriteApiError(w, models.NewValidationError("Invalid request", err.Error()))
		return
	}
	if !filter.IsValid(req.MetadataFilter) {
		WriteApiError(w, models.NewValidationError("Invalid metadata filter syntax", nil))
		return
	}

	response, err := h.querySvc.Query(r.Context(), &req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int("stores", len(req.StoreNames)).
			Str("model", req.Model).
			Msg("Query failed")
		WriteApiError(w, err)
		return
	}

	WriteData(w, http.StatusOK, response)
}

// ValidateFilterHandler handles POST /api/queries/validate-filter: a
// client-side helper so the query form can check a hand-typed filter without
// spending a model call.
func (h *QueryHandler) ValidateFilterHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Filter string `json:"filter"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	WriteData(w, http.StatusOK, map[string]interface{}{
		"filter": req.Filter,
		"valid":  filter.IsValid(req.Filter),
	})
}
