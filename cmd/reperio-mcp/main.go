package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"
	"github.com/ternarybob/reperio/internal/common"
	"github.com/ternarybob/reperio/internal/services/gemini"
	"github.com/ternarybob/reperio/internal/services/poller"
)

func main() {
	// Load configuration
	configPath := os.Getenv("REPERIO_CONFIG")
	if configPath == "" {
		configPath = "reperio.toml"
	}

	config, err := common.LoadFromFiles(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	// Minimal logger for MCP server (console only, no file output)
	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString("warn") // Minimal logging to avoid cluttering MCP stdio

	// Initialize the File Search gateway
	client, err := gemini.NewClient(&config.Gemini, gemini.WithLogger(logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize gemini client")
	}

	// Poller for the wait_for_operation tool
	operationPoller := poller.New(client, logger,
		poller.WithInterval(config.PollerInterval()),
		poller.WithCeiling(config.PollerCeiling()),
	)

	// Create MCP server
	mcpServer := server.NewMCPServer(
		"reperio",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	// Register file search tools
	mcpServer.AddTool(createQueryStoresTool(), handleQueryStores(client, logger))
	mcpServer.AddTool(createListStoresTool(), handleListStores(client, logger))
	mcpServer.AddTool(createListDocumentsTool(), handleListDocuments(client, logger))
	mcpServer.AddTool(createWaitForOperationTool(), handleWaitForOperation(operationPoller, logger))

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
