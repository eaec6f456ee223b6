package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"
	"github.com/ternarybob/vitalog/internal/common"
	"github.com/ternarybob/vitalog/internal/storage/badger"
)

func main() {
	// Load configuration
	configPath := os.Getenv("VITALOG_CONFIG")
	if configPath == "" {
		configPath = "vitalog.toml"
	}

	config, err := common.LoadFromFiles(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Minimal console-only logger to avoid cluttering MCP stdio
	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString("warn")

	storageManager, err := badger.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer storageManager.Close()

	// The browser starts lazily on the first browser tool call; data tools
	// work without Chrome installed.
	browserProvider := newBrowserProvider(config, storageManager, logger)
	defer browserProvider.Close()

	mcpServer := server.NewMCPServer(
		"vitalog",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	// Register browser tools
	mcpServer.AddTool(createNavigateTool(), handleNavigate(browserProvider, logger))
	mcpServer.AddTool(createClickTool(), handleClick(browserProvider, logger))
	mcpServer.AddTool(createTypeTextTool(), handleTypeText(browserProvider, logger))
	mcpServer.AddTool(createGetContentTool(), handleGetContent(browserProvider, logger))
	mcpServer.AddTool(createWaitForTool(), handleWaitFor(browserProvider, logger))
	mcpServer.AddTool(createScreenshotTool(), handleScreenshot(browserProvider, logger))
	mcpServer.AddTool(createExecuteJSTool(), handleExecuteJS(browserProvider, logger))

	// Register data tools
	mcpServer.AddTool(createGetCaloriesTool(), handleGetCalories(storageManager, logger))
	mcpServer.AddTool(createGetMeasurementsTool(), handleGetMeasurements(storageManager, logger))

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
