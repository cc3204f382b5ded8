package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/ternarybob/reperio/internal/models"
)

// UploadFile submits a staged local file into a store using the multipart
// media-upload protocol and returns the ingestion operation handle. It never
// blocks for completion; callers observe the result through the poller or a
// fresh document list. Configuration is validated before any network call.
func (c *Client) UploadFile(ctx context.Context, localPath, storeName string, config *models.UploadConfig) (*models.Operation, error) {
	if storeName == "" {
		return nil, models.NewValidationError("Store name is required", nil)
	}
	if config == nil {
		return nil, models.NewValidationError("Upload configuration is required", nil)
	}
	if err := config.Validate(); err != nil {
		return nil, models.NewValidationError(err.Error(), nil)
	}

	file, err := os.Open(localPath)
	if err != nil {
		return nil, models.NewValidationError(fmt.Sprintf("Cannot read upload file: %s", err.Error()), nil)
	}
	defer file.Close()

	body, contentType, err := buildUploadBody(file, localPath, config)
	if err != nil {
		return nil, c.wrapError("upload file", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	uploadURL := fmt.Sprintf("%s/upload/%s/%s:uploadToFileSearchStore", c.baseURL, apiVersion, NormalizeStoreName(storeName))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("X-Goog-Upload-Protocol", "multipart")
	req.Header.Set("Content-Type", contentType)

	if c.logger != nil {
		c.logger.Info().
			Str("store", storeName).
			Str("display_name", config.DisplayName).
			Msg("Starting file upload")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.wrapError("upload file", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.wrapError("upload file", c.decodeError(resp))
	}

	var operation models.Operation
	if err := json.NewDecoder(resp.Body).Decode(&operation); err != nil {
		return nil, c.wrapError("upload file", fmt.Errorf("failed to decode operation: %w", err))
	}

	if c.logger != nil {
		c.logger.Info().
			Str("operation", operation.Name).
			Bool("done", operation.Done).
			Msg("Upload operation started")
	}

	return &operation, nil
}

// buildUploadBody assembles the multipart/related body: a JSON metadata part
// carrying the upload configuration followed by the raw file bytes.
func buildUploadBody(file io.Reader, localPath string, config *models.UploadConfig) (io.Reader, string, error) {
	metadata := map[string]interface{}{
		"displayName": config.DisplayName,
	}
	if config.ChunkingConfig != nil {
		metadata["chunkingConfig"] = config.ChunkingConfig
	}
	if len(config.CustomMetadata) > 0 {
		metadata["customMetadata"] = config.CustomMetadata
	}

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode upload metadata: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	metaPart, err := writer.CreatePart(metaHeader)
	if err != nil {
		return nil, "", err
	}
	if _, err := metaPart.Write(metadataJSON); err != nil {
		return nil, "", err
	}

	fileType := mime.TypeByExtension(filepath.Ext(localPath))
	if fileType == "" {
		fileType = "application/octet-stream"
	}
	fileHeader := textproto.MIMEHeader{}
	fileHeader.Set("Content-Type", fileType)
	filePart, err := writer.CreatePart(fileHeader)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(filePart, file); err != nil {
		return nil, "", fmt.Errorf("failed to copy file bytes: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	contentType := fmt.Sprintf("multipart/related; boundary=%s", writer.Boundary())
	return &buf, contentType, nil
}
