package gemini

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ternarybob/reperio/internal/models"
)

const storesPath = "fileSearchStores"

// listStoresResponse is the upstream page shape for store listings.
type listStoresResponse struct {
	FileSearchStores []models.Store `json:"fileSearchStores"`
	NextPageToken    string         `json:"nextPageToken"`
}

// CreateStore creates a File Search store. The display name must be present
// and at most 100 characters; violations never reach the network.
func (c *Client) CreateStore(ctx context.Context, displayName string) (*models.Store, error) {
	trimmed := strings.TrimSpace(displayName)
	if trimmed == "" {
		return nil, models.NewValidationError("Display name is required", nil)
	}
	if len(trimmed) > 100 {
		return nil, models.NewValidationError("Display name too long (max 100 characters)", nil)
	}

	var store models.Store
	body := map[string]string{"displayName": trimmed}
	if err := c.do(ctx, http.MethodPost, storesPath, nil, body, &store); err != nil {
		return nil, c.wrapError("create store", err)
	}

	if store.DisplayName == "" {
		store.DisplayName = trimmed
	}

	if c.logger != nil {
		c.logger.Info().
			Str("store", store.Name).
			Str("display_name", store.DisplayName).
			Msg("File Search store created")
	}

	return &store, nil
}

// ListStores returns every store, following upstream pagination. Order is
// whatever the API returned; it is not guaranteed stable between calls.
func (c *Client) ListStores(ctx context.Context) ([]models.Store, error) {
	stores := []models.Store{}
	pageToken := ""

	for {
		query := url.Values{}
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		var page listStoresResponse
		if err := c.do(ctx, http.MethodGet, storesPath, query, nil, &page); err != nil {
			return nil, c.wrapError("list stores", err)
		}

		for _, store := range page.FileSearchStores {
			if store.DisplayName == "" {
				store.DisplayName = store.Name
			}
			stores = append(stores, store)
		}

		if page.NextPageToken == "" {
			return stores, nil
		}
		pageToken = page.NextPageToken
	}
}

// GetStore fetches one store by resource name ("fileSearchStores/{id}").
func (c *Client) GetStore(ctx context.Context, name string) (*models.Store, error) {
	if name == "" {
		return nil, models.NewValidationError("Store name is required", nil)
	}

	var store models.Store
	if err := c.do(ctx, http.MethodGet, NormalizeStoreName(name), nil, nil, &store); err != nil {
		return nil, c.wrapError("get store", err)
	}

	if store.DisplayName == "" {
		store.DisplayName = store.Name
	}
	return &store, nil
}

// GetStoreOrNull translates a not-found lookup into (nil, nil). This is the
// one documented place a not-found error is swallowed.
func (c *Client) GetStoreOrNull(ctx context.Context, name string) (*models.Store, error) {
	store, err := c.GetStore(ctx, name)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return store, nil
}

// DeleteStore deletes a store and everything in it. The force flag is always
// set so the cascade happens even when documents remain; deleting an absent
// store is NOT idempotent and yields a not-found error.
func (c *Client) DeleteStore(ctx context.Context, name string) error {
	if name == "" {
		return models.NewValidationError("Store name is required", nil)
	}

	query := url.Values{}
	query.Set("force", "true")

	if err := c.do(ctx, http.MethodDelete, NormalizeStoreName(name), query, nil, nil); err != nil {
		return c.wrapError("delete store", err)
	}

	if c.logger != nil {
		c.logger.Info().
			Str("store", name).
			Msg("File Search store deleted")
	}
	return nil
}

// NormalizeStoreName accepts a bare store id or a full resource name and
// returns the full "fileSearchStores/{id}" form.
func NormalizeStoreName(name string) string {
	if strings.HasPrefix(name, storesPath+"/") {
		return name
	}
	return fmt.Sprintf("%s/%s", storesPath, name)
}
