package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/interfaces"
	"github.com/ternarybob/reperio/internal/models"
)

// StoreHandler serves the File Search store endpoints.
type StoreHandler struct {
	fileSearch interfaces.FileSearchService
	validate   *validator.Validate
	logger     arbor.ILogger
}

func NewStoreHandler(fileSearch interfaces.FileSearchService, logger arbor.ILogger) *StoreHandler {
	return &StoreHandler{
		fileSearch: fileSearch,
		validate:   validator.New(),
		logger:     logger,
	}
}

// ListStoresHandler handles GET /api/stores
func (h *StoreHandler) ListStoresHandler(w http.ResponseWriter, r *http.Request) {
	stores, err := h.fileSearch.ListStores(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list stores")
		WriteApiError(w, err)
		return
	}

	WriteData(w, http.StatusOK, map[string]interface{}{
		"stores": stores,
	})
}

// CreateStoreHandler handles POST /api/stores
func (h *StoreHandler) CreateStoreHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		WriteApiError(w, models.NewValidationError("Invalid request", err.Error()))
		return
	}

	store, err := h.fileSearch.CreateStore(r.Context(), req.DisplayName)
	if err != nil {
		h.logger.Error().Err(err).Str("display_name", req.DisplayName).Msg("Failed to create store")
		WriteApiError(w, err)
		return
	}

	WriteData(w, http.StatusCreated, map[string]interface{}{
		"store": store,
	})
}

// GetStoreHandler handles GET /api/stores/{id}
func (h *StoreHandler) GetStoreHandler(w http.ResponseWriter, r *http.Request, storeID string) {
	store, err := h.fileSearch.GetStore(r.Context(), storeID)
	if err != nil {
		if !models.IsNotFound(err) {
			h.logger.Error().Err(err).Str("store", storeID).Msg("Failed to get store")
		}
		WriteApiError(w, err)
		return
	}

	WriteData(w, http.StatusOK, map[string]interface{}{
		"store": store,
	})
}

// DeleteStoreHandler handles DELETE /api/stores/{id}. The delete is always
// forced upstream, so documents in the store go with it.
func (h *StoreHandler) DeleteStoreHandler(w http.ResponseWriter, r *http.Request, storeID string) {
	if err := h.fileSearch.DeleteStore(r.Context(), storeID); err != nil {
		if !models.IsNotFound(err) {
			h.logger.Error().Err(err).Str("store", storeID).Msg("Failed to delete store")
		}
		WriteApiError(w, err)
		return
	}

	WriteData(w, http.StatusOK, map[string]interface{}{
		"message": "Store deleted",
	})
}
