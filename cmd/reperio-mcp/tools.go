package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createQueryStoresTool returns the query_stores tool definition
func createQueryStoresTool() mcp.Tool {
	return mcp.NewTool("query_stores",
		mcp.WithDescription("Ask a natural-language question against one or more File Search stores and get a grounded answer with citations"),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("The question to answer from the indexed documents"),
		),
		mcp.WithArray("store_names",
			mcp.Required(),
			mcp.WithStringItems(),
			mcp.Description("Store names or IDs to search (bare IDs are accepted)"),
		),
		mcp.WithString("metadata_filter",
			mcp.Description("Optional metadata filter, e.g. category = \"reports\" AND year >= 2023"),
		),
		mcp.WithString("model",
			mcp.Description("Gemini model to answer with (default: configured model)"),
		),
	)
}

// createListStoresTool returns the list_stores tool definition
func createListStoresTool() mcp.Tool {
	return mcp.NewTool("list_stores",
		mcp.WithDescription("List all File Search stores with their display names and timestamps"),
	)
}

// createWaitForOperationTool returns the wait_for_operation tool definition
func createWaitForOperationTool() mcp.Tool {
	return mcp.NewTool("wait_for_operation",
		mcp.WithDescription("Block until a long-running ingestion operation reaches a terminal state and report the outcome"),
		mcp.WithString("operation_id",
			mcp.Required(),
			mcp.Description("Operation name or bare ID returned by an upload"),
		),
	)
}

// createListDocumentsTool returns the list_documents tool definition
func createListDocumentsTool() mcp.Tool {
	return mcp.NewTool("list_documents",
		mcp.WithDescription("List the documents of one File Search store with their ingestion state"),
		mcp.WithString("store_id",
			mcp.Required(),
			mcp.Description("Store name or ID (bare IDs are accepted)"),
		),
	)
}
