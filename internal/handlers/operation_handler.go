package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/interfaces"
	"github.com/ternarybob/reperio/internal/models"
	"github.com/ternarybob/reperio/internal/services/poller"
)

// OperationHandler serves single operation status snapshots.
type OperationHandler struct {
	fileSearch interfaces.FileSearchService
	logger     arbor.ILogger
}

func NewOperationHandler(fileSearch interfaces.FileSearchService, logger arbor.ILogger) *OperationHandler {
	return &OperationHandler{
		fileSearch: fileSearch,
		logger:     logger,
	}
}

// GetOperationHandler handles GET /api/operations/{opId}. The id is accepted
// with or without the "operations/" prefix.
func (h *OperationHandler) GetOperationHandler(w http.ResponseWriter, r *http.Request, operationID string) {
	operation, err := h.fileSearch.GetOperation(r.Context(), operationID)
	if err != nil {
		if !models.IsNotFound(err) {
			h.logger.Error().Err(err).Str("operation", operationID).Msg("Failed to get operation")
		}
		WriteApiError(w, err)
		return
	}

	WriteData(w, http.StatusOK, poller.SnapshotStatus(operation))
}
