package handlers

import (
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/interfaces"
	"github.com/ternarybob/reperio/internal/models"
)

// DocumentHandler serves document listing and deletion within a store.
type DocumentHandler struct {
	fileSearch interfaces.FileSearchService
	logger     arbor.ILogger
}

func NewDocumentHandler(fileSearch interfaces.FileSearchService, logger arbor.ILogger) *DocumentHandler {
	return &DocumentHandler{
		fileSearch: fileSearch,
		logger:     logger,
	}
}

// ListDocumentsHandler handles GET /api/stores/{id}/documents
func (h *DocumentHandler) ListDocumentsHandler(w http.ResponseWriter, r *http.Request, storeID string) {
	documents, err := h.fileSearch.ListDocuments(r.Context(), storeID)
	if err != nil {
		h.logger.Error().Err(err).Str("store", storeID).Msg("Failed to list documents")
		WriteApiError(w, err)
		return
	}

	WriteData(w, http.StatusOK, map[string]interface{}{
		"documents": documents,
	})
}

// GetDocumentHandler handles GET /api/stores/{id}/documents/{docId}
func (h *DocumentHandler) GetDocumentHandler(w http.ResponseWriter, r *http.Request, storeID, docID string) {
	document, err := h.fileSearch.GetDocument(r.Context(), documentName(storeID, docID))
	if err != nil {
		if !models.IsNotFound(err) {
			h.logger.Error().Err(err).Str("store", storeID).Str("document", docID).Msg("Failed to get document")
		}
		WriteApiError(w, err)
		return
	}

	WriteData(w, http.StatusOK, map[string]interface{}{
		"document": document,
	})
}

// DeleteDocumentHandler handles DELETE /api/stores/{id}/documents/{docId}.
// The gateway issues the delete unconditionally; the document-state guard is
// a dashboard policy, not enforced here.
func (h *DocumentHandler) DeleteDocumentHandler(w http.ResponseWriter, r *http.Request, storeID, docID string) {
	if err := h.fileSearch.DeleteDocument(r.Context(), documentName(storeID, docID)); err != nil {
		h.logger.Error().Err(err).Str("store", storeID).Str("document", docID).Msg("Failed to delete document")
		WriteApiError(w, err)
		return
	}

	WriteData(w, http.StatusOK, map[string]interface{}{
		"message": "Document deleted",
	})
}

// documentName builds the full resource name from path segments.
func documentName(storeID, docID string) string {
	return fmt.Sprintf("fileSearchStores/%s/documents/%s", storeID, docID)
}
