package main

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/interfaces"
	"github.com/ternarybob/reperio/internal/models"
	"github.com/ternarybob/reperio/internal/services/gemini"
	"github.com/ternarybob/reperio/internal/services/poller"
)

type fakeGateway struct {
	interfaces.FileSearchService
	interfaces.QueryService

	getStoreOrNull func(ctx context.Context, name string) (*models.Store, error)
	listDocuments  func(ctx context.Context, storeName string) ([]models.Document, error)
}

func (f *fakeGateway) GetStoreOrNull(ctx context.Context, name string) (*models.Store, error) {
	return f.getStoreOrNull(ctx, name)
}

func (f *fakeGateway) ListDocuments(ctx context.Context, storeName string) ([]models.Document, error) {
	return f.listDocuments(ctx, storeName)
}

type fakeOperationSource struct {
	operation *models.Operation
}

func (f *fakeOperationSource) GetOperation(ctx context.Context, name string) (*models.Operation, error) {
	return f.operation, nil
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func fastRetryConfig() *gemini.RetryConfig {
	return &gemini.RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 1.5,
	}
}

func TestQueryWithRetry(t *testing.T) {
	logger := arbor.NewLogger()

	t.Run("Retries rate limited queries until success", func(t *testing.T) {
		calls := 0
		resp, err := queryWithRetry(context.Background(), fastRetryConfig(), logger, func() (*models.QueryResponse, error) {
			calls++
			if calls < 3 {
				return nil, models.NewQuotaExceededError("API quota exceeded. Please try again later.", nil)
			}
			return &models.QueryResponse{Answer: "recovered"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, "recovered", resp.Answer)
	})

	t.Run("Returns other errors without retrying", func(t *testing.T) {
		calls := 0
		_, err := queryWithRetry(context.Background(), fastRetryConfig(), logger, func() (*models.QueryResponse, error) {
			calls++
			return nil, models.NewValidationError("Question is required", nil)
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("Gives up after max retries", func(t *testing.T) {
		calls := 0
		_, err := queryWithRetry(context.Background(), fastRetryConfig(), logger, func() (*models.QueryResponse, error) {
			calls++
			return nil, models.NewQuotaExceededError("API quota exceeded. Please try again later.", nil)
		})
		require.Error(t, err)
		assert.Equal(t, 4, calls)

		apiErr, ok := models.AsApiError(err)
		require.True(t, ok)
		assert.Equal(t, models.ErrorKindQuotaExceeded, apiErr.Kind)
	})

	t.Run("Stops waiting when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := queryWithRetry(ctx, &gemini.RetryConfig{
			MaxRetries:        3,
			InitialBackoff:    time.Minute,
			MaxBackoff:        time.Minute,
			BackoffMultiplier: 1.5,
		}, logger, func() (*models.QueryResponse, error) {
			return nil, models.NewQuotaExceededError("API quota exceeded. Please try again later.", nil)
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestHandleListDocuments(t *testing.T) {
	logger := arbor.NewLogger()

	t.Run("Reports missing store without listing", func(t *testing.T) {
		gateway := &fakeGateway{
			getStoreOrNull: func(ctx context.Context, name string) (*models.Store, error) {
				return nil, nil
			},
			listDocuments: func(ctx context.Context, storeName string) ([]models.Document, error) {
				t.Error("no list expected")
				return nil, nil
			},
		}

		result, err := handleListDocuments(gateway, logger)(context.Background(), toolRequest(map[string]any{"store_id": "ghost"}))
		require.NoError(t, err)
		assert.Contains(t, resultText(t, result), "not found")
	})

	t.Run("Lists documents by resolved store name", func(t *testing.T) {
		var listedStore string
		gateway := &fakeGateway{
			getStoreOrNull: func(ctx context.Context, name string) (*models.Store, error) {
				return &models.Store{Name: "fileSearchStores/abc123", DisplayName: "Reports"}, nil
			},
			listDocuments: func(ctx context.Context, storeName string) ([]models.Document, error) {
				listedStore = storeName
				return []models.Document{
					{Name: "fileSearchStores/abc123/documents/d1", DisplayName: "q3.pdf", State: "ACTIVE"},
				}, nil
			},
		}

		result, err := handleListDocuments(gateway, logger)(context.Background(), toolRequest(map[string]any{"store_id": "abc123"}))
		require.NoError(t, err)
		assert.Equal(t, "fileSearchStores/abc123", listedStore)

		text := resultText(t, result)
		assert.Contains(t, text, "Reports")
		assert.Contains(t, text, "q3.pdf")
	})
}

func TestHandleWaitForOperation(t *testing.T) {
	logger := arbor.NewLogger()

	t.Run("Reports successful completion", func(t *testing.T) {
		source := &fakeOperationSource{operation: &models.Operation{
			Name: "operations/op1",
			Done: true,
		}}
		p := poller.New(source, logger, poller.WithInterval(time.Millisecond))

		result, err := handleWaitForOperation(p, logger)(context.Background(), toolRequest(map[string]any{"operation_id": "op1"}))
		require.NoError(t, err)

		text := resultText(t, result)
		assert.Contains(t, text, "operations/op1")
		assert.Contains(t, text, "Completed successfully")
	})

	t.Run("Surfaces the upstream failure message", func(t *testing.T) {
		source := &fakeOperationSource{operation: &models.Operation{
			Name:  "operations/op2",
			Done:  true,
			Error: &models.OperationError{Code: 3, Message: "unsupported file type"},
		}}
		p := poller.New(source, logger, poller.WithInterval(time.Millisecond))

		result, err := handleWaitForOperation(p, logger)(context.Background(), toolRequest(map[string]any{"operation_id": "op2"}))
		require.NoError(t, err)
		assert.Contains(t, resultText(t, result), "unsupported file type")
	})

	t.Run("Requires operation_id", func(t *testing.T) {
		p := poller.New(&fakeOperationSource{}, logger)

		result, err := handleWaitForOperation(p, logger)(context.Background(), toolRequest(map[string]any{}))
		require.NoError(t, err)
		assert.Contains(t, resultText(t, result), "operation_id")
	})
}
