package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/reperio/internal/common"
	"github.com/ternarybob/reperio/internal/models"
	"google.golang.org/genai"
)

// newQueryTestClient routes the genai SDK at a fake generateContent backend.
func newQueryTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	genaiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: server.URL},
	})
	require.NoError(t, err)

	client, err := NewClient(&common.GeminiConfig{APIKey: "test-key"}, WithGenaiClient(genaiClient))
	require.NoError(t, err)
	return client
}

func TestQueryValidation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	t.Run("Rejects empty question", func(t *testing.T) {
		_, err := client.Query(context.Background(), &models.QueryRequest{
			Question:   "   ",
			StoreNames: []string{"a"},
		})
		require.Error(t, err)

		apiErr, ok := models.AsApiError(err)
		require.True(t, ok)
		assert.Equal(t, models.ErrorKindValidation, apiErr.Kind)
	})

	t.Run("Rejects oversized question", func(t *testing.T) {
		long := make([]byte, models.MaxQuestionLength+1)
		for i := range long {
			long[i] = 'q'
		}
		_, err := client.Query(context.Background(), &models.QueryRequest{
			Question:   string(long),
			StoreNames: []string{"a"},
		})
		require.Error(t, err)
	})

	t.Run("Rejects missing stores", func(t *testing.T) {
		_, err := client.Query(context.Background(), &models.QueryRequest{
			Question: "q",
		})
		require.Error(t, err)
	})

	t.Run("Rejects malformed metadata filter", func(t *testing.T) {
		_, err := client.Query(context.Background(), &models.QueryRequest{
			Question:       "q",
			StoreNames:     []string{"a"},
			MetadataFilter: "category electronics",
		})
		require.Error(t, err)

		apiErr, ok := models.AsApiError(err)
		require.True(t, ok)
		assert.Equal(t, models.ErrorKindValidation, apiErr.Kind)
		assert.Contains(t, apiErr.Message, "metadata filter")
	})
}

func TestQueryEmptyAnswer(t *testing.T) {
	// A candidate with no text parts means the model retrieved nothing
	// useful. That is still a successful reply, not an upstream failure.
	client := newQueryTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"role": "model", "parts": []interface{}{}}},
			},
		})
	})

	resp, err := client.Query(context.Background(), &models.QueryRequest{
		Question:   "anything about widgets?",
		StoreNames: []string{"fileSearchStores/empty"},
	})
	require.NoError(t, err)
	assert.Equal(t, "", resp.Answer)
	assert.Empty(t, resp.Citations)
}

func TestExtractCitations(t *testing.T) {
	t.Run("Nil grounding yields no citations", func(t *testing.T) {
		assert.Nil(t, ExtractCitations(nil))
		assert.Nil(t, ExtractCitations(&genai.GroundingMetadata{}))
	})

	t.Run("Flattens retrieved contexts", func(t *testing.T) {
		grounding := &genai.GroundingMetadata{
			GroundingChunks: []*genai.GroundingChunk{
				{RetrievedContext: &genai.GroundingChunkRetrievedContext{
					Title: "report.pdf",
					Text:  "Q3 revenue grew 12%",
					URI:   "fileSearchStores/a/documents/d1",
				}},
				{RetrievedContext: &genai.GroundingChunkRetrievedContext{
					Text: "untitled excerpt",
				}},
				{},
			},
		}

		citations := ExtractCitations(grounding)
		require.Len(t, citations, 3)

		assert.Equal(t, 0, citations[0].ID)
		assert.Equal(t, "report.pdf", citations[0].Title)
		assert.Equal(t, "Q3 revenue grew 12%", citations[0].Text)

		// Missing titles fall back without dropping the entry; indices stay
		// aligned with the grounding chunks.
		assert.Equal(t, "Untitled", citations[1].Title)
		assert.Equal(t, "untitled excerpt", citations[1].Text)
		assert.Equal(t, 2, citations[2].ID)
		assert.Equal(t, "Untitled", citations[2].Title)
	})
}
