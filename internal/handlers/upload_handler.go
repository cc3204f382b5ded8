package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/interfaces"
	"github.com/ternarybob/reperio/internal/models"
)

// UploadHandler accepts multipart uploads, stages the bytes, validates the
// configuration, and initiates the ingestion operation. The response is a 202
// with the operation handle; completion is observed through polling.
type UploadHandler struct {
	fileSearch  interfaces.FileSearchService
	staging     interfaces.StagingService
	validate    *validator.Validate
	maxFileSize int64
	logger      arbor.ILogger
}

func NewUploadHandler(fileSearch interfaces.FileSearchService, staging interfaces.StagingService, maxFileSize int64, logger arbor.ILogger) *UploadHandler {
	return &UploadHandler{
		fileSearch:  fileSearch,
		staging:     staging,
		validate:    validator.New(),
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// UploadHandler handles POST /api/stores/{id}/upload with multipart form
// fields "file" (the bytes) and "config" (JSON upload configuration).
func (h *UploadHandler) UploadHandler(w http.ResponseWriter, r *http.Request, storeID string) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		WriteApiError(w, models.NewValidationError("Invalid multipart form", err.Error()))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteApiError(w, models.NewValidationError("No file provided", "File is required in form data"))
		return
	}
	defer file.Close()

	configJSON := r.FormValue("config")
	if configJSON == "" {
		WriteApiError(w, models.NewValidationError("No config provided", "Config JSON is required in form data"))
		return
	}

	var config models.UploadConfig
	if err := json.Unmarshal([]byte(configJSON), &config); err != nil {
		WriteApiError(w, models.NewValidationError("Invalid config JSON", err.Error()))
		return
	}

	if err := h.validate.Struct(&config); err != nil {
		WriteApiError(w, models.NewValidationError("Invalid configuration", err.Error()))
		return
	}
	if err := config.Validate(); err != nil {
		WriteApiError(w, models.NewValidationError(err.Error(), nil))
		return
	}

	// Stage the bytes so the gateway reads from disk, and release the staged
	// file on every exit path.
	stagedPath, err := h.staging.Stage(header.Filename, file)
	if err != nil {
		h.logger.Error().Err(err).Str("filename", header.Filename).Msg("Failed to stage upload")
		WriteError(w, http.StatusInternalServerError, "Failed to stage upload")
		return
	}
	defer h.staging.Release(stagedPath)

	operation, err := h.fileSearch.UploadFile(r.Context(), stagedPath, storeID, &config)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("store", storeID).
			Str("filename", header.Filename).
			Msg("Failed to upload file")
		WriteApiError(w, err)
		return
	}

	h.logger.Info().
		Str("store", storeID).
		Str("filename", header.Filename).
		Str("operation", operation.Name).
		Msg("Upload accepted")

	WriteData(w, http.StatusAccepted, map[string]interface{}{
		"operation": operation,
	})
}
