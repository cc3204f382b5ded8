package main

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/interfaces"
	"github.com/ternarybob/reperio/internal/models"
	"github.com/ternarybob/reperio/internal/services/gemini"
	"github.com/ternarybob/reperio/internal/services/poller"
)

type fileSearchGateway interface {
	interfaces.FileSearchService
	interfaces.QueryService
}

// queryWithRetry retries rate-limited queries with bounded backoff. MCP
// callers are non-interactive, so waiting out a quota window beats failing.
func queryWithRetry(ctx context.Context, cfg *gemini.RetryConfig, logger arbor.ILogger, run func() (*models.QueryResponse, error)) (*models.QueryResponse, error) {
	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		resp, err := run()
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !gemini.IsRateLimitError(err) {
			return nil, err
		}
		if attempt == cfg.MaxRetries {
			break
		}

		backoff := cfg.CalculateBackoff(attempt, gemini.ExtractRetryDelay(err))
		logger.Warn().
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Msg("Query rate limited, backing off")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
	return nil, lastErr
}

// handleQueryStores implements the query_stores tool
func handleQueryStores(gateway fileSearchGateway, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := request.RequireString("question")
		if err != nil || question == "" {
			return textResult("Error: question parameter is required"), nil
		}

		storeNames := request.GetStringSlice("store_names", nil)
		if len(storeNames) == 0 {
			return textResult("Error: store_names parameter is required"), nil
		}

		req := &models.QueryRequest{
			Question:       question,
			StoreNames:     storeNames,
			MetadataFilter: request.GetString("metadata_filter", ""),
			Model:          request.GetString("model", ""),
		}
		resp, err := queryWithRetry(ctx, gemini.NewDefaultRetryConfig(), logger, func() (*models.QueryResponse, error) {
			return gateway.Query(ctx, req)
		})
		if err != nil {
			logger.Error().Err(err).Msg("Query failed")
			return textResult(fmt.Sprintf("Query error: %v", err)), nil
		}

		return textResult(formatQueryResponse(question, resp)), nil
	}
}

// handleListStores implements the list_stores tool
func handleListStores(gateway fileSearchGateway, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stores, err := gateway.ListStores(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("List stores failed")
			return textResult(fmt.Sprintf("List error: %v", err)), nil
		}

		return textResult(formatStores(stores)), nil
	}
}

// handleListDocuments implements the list_documents tool
func handleListDocuments(gateway fileSearchGateway, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		storeID, err := request.RequireString("store_id")
		if err != nil || storeID == "" {
			return textResult("Error: store_id parameter is required"), nil
		}

		store, err := gateway.GetStoreOrNull(ctx, storeID)
		if err != nil {
			logger.Error().Err(err).Str("store", storeID).Msg("Get store failed")
			return textResult(fmt.Sprintf("Store error: %v", err)), nil
		}
		if store == nil {
			return textResult(fmt.Sprintf("Store %q not found.", storeID)), nil
		}

		documents, err := gateway.ListDocuments(ctx, store.Name)
		if err != nil {
			logger.Error().Err(err).Str("store", storeID).Msg("List documents failed")
			return textResult(fmt.Sprintf("List error: %v", err)), nil
		}

		return textResult(formatDocuments(store.DisplayName, documents)), nil
	}
}

// handleWaitForOperation implements the wait_for_operation tool
func handleWaitForOperation(p *poller.Poller, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		operationID, err := request.RequireString("operation_id")
		if err != nil || operationID == "" {
			return textResult("Error: operation_id parameter is required"), nil
		}

		operation, err := p.WaitForOperation(ctx, operationID)
		if err != nil {
			logger.Error().Err(err).Str("operation", operationID).Msg("Wait for operation failed")
			return textResult(fmt.Sprintf("Operation error: %v", err)), nil
		}

		return textResult(formatOperation(operation)), nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}
