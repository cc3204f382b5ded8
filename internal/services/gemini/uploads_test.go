package gemini

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/reperio/internal/models"
)

func stageTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestUploadFile(t *testing.T) {
	t.Run("Sends multipart metadata and file bytes", func(t *testing.T) {
		path := stageTestFile(t, "notes.txt", "hello file search")

		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "/upload/v1beta/fileSearchStores/abc123:uploadToFileSearchStore", r.URL.Path)
			assert.Equal(t, "multipart", r.Header.Get("X-Goog-Upload-Protocol"))

			mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			require.NoError(t, err)
			assert.Equal(t, "multipart/related", mediaType)

			reader := multipart.NewReader(r.Body, params["boundary"])

			metaPart, err := reader.NextPart()
			require.NoError(t, err)
			metaBytes, _ := io.ReadAll(metaPart)
			assert.Contains(t, string(metaBytes), `"displayName":"notes.txt"`)
			assert.Contains(t, string(metaBytes), `"chunkingConfig"`)

			filePart, err := reader.NextPart()
			require.NoError(t, err)
			fileBytes, _ := io.ReadAll(filePart)
			assert.Equal(t, "hello file search", string(fileBytes))

			writeJSON(w, 200, models.Operation{Name: "fileSearchStores/abc123/operations/op1"})
		})

		operation, err := client.UploadFile(context.Background(), path, "abc123", &models.UploadConfig{
			DisplayName:    "notes.txt",
			ChunkingConfig: &models.ChunkingConfig{WhiteSpaceConfig: models.WhiteSpaceConfig{MaxTokensPerChunk: 400, MaxOverlapTokens: 30}},
		})
		require.NoError(t, err)
		assert.Equal(t, "fileSearchStores/abc123/operations/op1", operation.Name)
		assert.False(t, operation.Done)
	})

	t.Run("Rejects invalid chunking before the network", func(t *testing.T) {
		path := stageTestFile(t, "notes.txt", "content")

		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		_, err := client.UploadFile(context.Background(), path, "abc123", &models.UploadConfig{
			DisplayName:    "notes.txt",
			ChunkingConfig: &models.ChunkingConfig{WhiteSpaceConfig: models.WhiteSpaceConfig{MaxTokensPerChunk: 100, MaxOverlapTokens: 30}},
		})
		require.Error(t, err)

		apiErr, ok := models.AsApiError(err)
		require.True(t, ok)
		assert.Equal(t, models.ErrorKindValidation, apiErr.Kind)
	})

	t.Run("Missing staged file is a validation error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		_, err := client.UploadFile(context.Background(), "/nonexistent/file.txt", "abc123", &models.UploadConfig{
			DisplayName: "file.txt",
		})
		require.Error(t, err)

		apiErr, ok := models.AsApiError(err)
		require.True(t, ok)
		assert.Equal(t, models.ErrorKindValidation, apiErr.Kind)
	})

	t.Run("Upstream rejection passes through", func(t *testing.T) {
		path := stageTestFile(t, "big.bin", strings.Repeat("x", 64))

		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeAPIError(w, 400, "Unsupported file type")
		})

		_, err := client.UploadFile(context.Background(), path, "abc123", &models.UploadConfig{
			DisplayName: "big.bin",
		})
		require.Error(t, err)

		apiErr, ok := models.AsApiError(err)
		require.True(t, ok)
		assert.Equal(t, 400, apiErr.StatusCode)
		assert.Contains(t, apiErr.Message, "Unsupported file type")
	})
}
