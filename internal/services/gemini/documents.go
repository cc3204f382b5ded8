package gemini

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ternarybob/reperio/internal/models"
)

// listDocumentsResponse is the upstream page shape for document listings.
type listDocumentsResponse struct {
	Documents     []models.Document `json:"documents"`
	NextPageToken string            `json:"nextPageToken"`
}

// ListDocuments returns every document in a store, following upstream
// pagination. Document state (PENDING/ACTIVE/FAILED) is whatever the remote
// side reports at the moment of the call.
func (c *Client) ListDocuments(ctx context.Context, storeName string) ([]models.Document, error) {
	if storeName == "" {
		return nil, models.NewValidationError("Store name is required", nil)
	}

	documents := []models.Document{}
	path := fmt.Sprintf("%s/documents", NormalizeStoreName(storeName))
	pageToken := ""

	for {
		query := url.Values{}
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		var page listDocumentsResponse
		if err := c.do(ctx, http.MethodGet, path, query, nil, &page); err != nil {
			return nil, c.wrapError("list documents", err)
		}

		documents = append(documents, page.Documents...)

		if page.NextPageToken == "" {
			return documents, nil
		}
		pageToken = page.NextPageToken
	}
}

// GetDocument fetches one document by full resource name
// ("fileSearchStores/{id}/documents/{docId}").
func (c *Client) GetDocument(ctx context.Context, name string) (*models.Document, error) {
	if name == "" {
		return nil, models.NewValidationError("Document name is required", nil)
	}

	var document models.Document
	if err := c.do(ctx, http.MethodGet, name, nil, nil, &document); err != nil {
		return nil, c.wrapError("get document", err)
	}
	return &document, nil
}

// DeleteDocument removes a document. No document-state policy is enforced
// here: the dashboard blocks ACTIVE/PENDING deletes as a UX guard, but the
// remote API is the final authority.
func (c *Client) DeleteDocument(ctx context.Context, name string) error {
	if name == "" {
		return models.NewValidationError("Document name is required", nil)
	}

	if err := c.do(ctx, http.MethodDelete, name, nil, nil, nil); err != nil {
		return c.wrapError("delete document", err)
	}

	if c.logger != nil {
		c.logger.Info().
			Str("document", name).
			Msg("Document deleted")
	}
	return nil
}
