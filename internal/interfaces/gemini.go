package interfaces

import (
	"context"

	"github.com/ternarybob/reperio/internal/models"
)

// FileSearchService is the gateway over the hosted File Search API: thin call
// wrappers that normalize every failure into *models.ApiError. Each call is
// an independent network request; nothing is cached.
type FileSearchService interface {
	// CreateStore creates a store with the given display name (1..100 chars).
	CreateStore(ctx context.Context, displayName string) (*models.Store, error)

	// ListStores returns all stores in upstream order (not guaranteed stable).
	ListStores(ctx context.Context) ([]models.Store, error)

	// GetStore fetches one store; absent stores yield a not-found error.
	GetStore(ctx context.Context, name string) (*models.Store, error)

	// GetStoreOrNull translates not-found into (nil, nil) for convenience.
	GetStoreOrNull(ctx context.Context, name string) (*models.Store, error)

	// DeleteStore always requests a forced, cascading delete. Deleting an
	// absent store yields a not-found error, not success.
	DeleteStore(ctx context.Context, name string) error

	// ListDocuments returns the documents of a store in upstream order.
	ListDocuments(ctx context.Context, storeName string) ([]models.Document, error)

	// GetDocument fetches one document by full resource name.
	GetDocument(ctx context.Context, name string) (*models.Document, error)

	// DeleteDocument issues the delete unconditionally; the ACTIVE/PENDING
	// restriction is a dashboard guard, not a gateway rule.
	DeleteDocument(ctx context.Context, name string) error

	// UploadFile submits a staged file and returns the operation handle.
	// It never waits for ingestion to complete.
	UploadFile(ctx context.Context, localPath, storeName string, config *models.UploadConfig) (*models.Operation, error)

	// GetOperation fetches a single status snapshot of an operation.
	GetOperation(ctx context.Context, name string) (*models.Operation, error)
}

// QueryService submits questions against one or more stores and returns the
// generated answer with grounding metadata.
type QueryService interface {
	Query(ctx context.Context, req *models.QueryRequest) (*models.QueryResponse, error)
}

// OperationSource is the minimal fetch surface the poller depends on.
type OperationSource interface {
	GetOperation(ctx context.Context, name string) (*models.Operation, error)
}
