package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vitalog/internal/common"
	"github.com/ternarybob/vitalog/internal/interfaces"
	"github.com/ternarybob/vitalog/internal/services/browser"
)

// browserProvider owns one lazily started browser session shared by all
// browser tools.
type browserProvider struct {
	config  *common.Config
	storage interfaces.StorageManager
	logger  arbor.ILogger

	mu      sync.Mutex
	session *browser.Session
	tools   *browser.Tools
}

func newBrowserProvider(config *common.Config, storage interfaces.StorageManager, logger arbor.ILogger) *browserProvider {
	return &browserProvider{
		config:  config,
		storage: storage,
		logger:  logger,
	}
}

// Tools starts the browser on first use and returns the tool surface.
func (p *browserProvider) Tools() (*browser.Tools, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.tools != nil {
		return p.tools, nil
	}

	session, err := browser.NewSession(&p.config.Browser, p.storage.SessionStorage(), p.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	p.session = session
	p.tools = browser.NewTools(session)
	return p.tools, nil
}

// Close shuts down the browser session if one was started.
func (p *browserProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session != nil {
		p.session.Close()
		p.session = nil
		p.tools = nil
	}
}

// errorResult formats a tool failure as a text result rather than a
// protocol error, so the calling model sees what went wrong.
func errorResult(format string, args ...interface{}) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(fmt.Sprintf(format, args...)),
		},
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// handleNavigate implements the browser_navigate tool
func handleNavigate(provider *browserProvider, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		targetURL, err := request.RequireString("url")
		if err != nil || targetURL == "" {
			return errorResult("Error: url parameter is required"), nil
		}

		tools, err := provider.Tools()
		if err != nil {
			return errorResult("Browser unavailable: %v", err), nil
		}

		result, err := tools.Navigate(targetURL)
		if err != nil {
			logger.Error().Err(err).Str("url", targetURL).Msg("Navigate failed")
			return errorResult("Navigate failed: %v", err), nil
		}
		return textResult(result), nil
	}
}

// handleClick implements the browser_click tool
func handleClick(provider *browserProvider, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		selector, err := request.RequireString("selector")
		if err != nil || selector == "" {
			return errorResult("Error: selector parameter is required"), nil
		}

		tools, err := provider.Tools()
		if err != nil {
			return errorResult("Browser unavailable: %v", err), nil
		}

		result, err := tools.Click(selector)
		if err != nil {
			return errorResult("Click failed: %v", err), nil
		}
		return textResult(result), nil
	}
}

// handleTypeText implements the browser_type tool
func handleTypeText(provider *browserProvider, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		selector, err := request.RequireString("selector")
		if err != nil || selector == "" {
			return errorResult("Error: selector parameter is required"), nil
		}
		text, err := request.RequireString("text")
		if err != nil {
			return errorResult("Error: text parameter is required"), nil
		}

		tools, err := provider.Tools()
		if err != nil {
			return errorResult("Browser unavailable: %v", err), nil
		}

		result, err := tools.TypeText(selector, text)
		if err != nil {
			return errorResult("Type failed: %v", err), nil
		}
		return textResult(result), nil
	}
}

// handleGetContent implements the browser_get_content tool
func handleGetContent(provider *browserProvider, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		selector := request.GetString("selector", "")

		tools, err := provider.Tools()
		if err != nil {
			return errorResult("Browser unavailable: %v", err), nil
		}

		content, err := tools.GetContent(selector)
		if err != nil {
			return errorResult("Read failed: %v", err), nil
		}
		return textResult(content), nil
	}
}

// handleWaitFor implements the browser_wait_for tool
func handleWaitFor(provider *browserProvider, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		selector, err := request.RequireString("selector")
		if err != nil || selector == "" {
			return errorResult("Error: selector parameter is required"), nil
		}
		timeout := request.GetInt("timeout_seconds", 10)

		tools, err := provider.Tools()
		if err != nil {
			return errorResult("Browser unavailable: %v", err), nil
		}

		result, err := tools.WaitFor(selector, time.Duration(timeout)*time.Second)
		if err != nil {
			return errorResult("Wait failed: %v", err), nil
		}
		return textResult(result), nil
	}
}

// handleScreenshot implements the browser_screenshot tool
func handleScreenshot(provider *browserProvider, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tools, err := provider.Tools()
		if err != nil {
			return errorResult("Browser unavailable: %v", err), nil
		}

		encoded, err := tools.Screenshot()
		if err != nil {
			return errorResult("Screenshot failed: %v", err), nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewImageContent(encoded, "image/png"),
			},
		}, nil
	}
}

// handleExecuteJS implements the browser_execute_js tool
func handleExecuteJS(provider *browserProvider, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		script, err := request.RequireString("script")
		if err != nil || script == "" {
			return errorResult("Error: script parameter is required"), nil
		}

		tools, err := provider.Tools()
		if err != nil {
			return errorResult("Browser unavailable: %v", err), nil
		}

		result, err := tools.ExecuteJS(script)
		if err != nil {
			return errorResult("Script failed: %v", err), nil
		}
		return textResult(result), nil
	}
}

// handleGetCalories implements the get_calorie_records tool
func handleGetCalories(storage interfaces.StorageManager, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if date := request.GetString("date", ""); date != "" {
			record, err := storage.CalorieStorage().GetByDate(date)
			if err != nil {
				logger.Error().Err(err).Str("date", date).Msg("Calorie lookup failed")
				return errorResult("Lookup failed: %v", err), nil
			}
			if record == nil {
				return textResult(fmt.Sprintf("No calorie record for %s", date)), nil
			}
			return textResult(formatCalorieRecord(record)), nil
		}

		records, err := storage.CalorieStorage().GetAll()
		if err != nil {
			logger.Error().Err(err).Msg("Calorie listing failed")
			return errorResult("Listing failed: %v", err), nil
		}

		limit := request.GetInt("limit", 30)
		return textResult(formatCalorieRecords(records, limit)), nil
	}
}

// handleGetMeasurements implements the get_measurement_records tool
func handleGetMeasurements(storage interfaces.StorageManager, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if date := request.GetString("date", ""); date != "" {
			record, err := storage.MeasurementStorage().GetByDate(date)
			if err != nil {
				logger.Error().Err(err).Str("date", date).Msg("Measurement lookup failed")
				return errorResult("Lookup failed: %v", err), nil
			}
			if record == nil {
				return textResult(fmt.Sprintf("No measurement record for %s", date)), nil
			}
			return textResult(formatMeasurementRecord(record)), nil
		}

		records, err := storage.MeasurementStorage().GetAll()
		if err != nil {
			logger.Error().Err(err).Msg("Measurement listing failed")
			return errorResult("Listing failed: %v", err), nil
		}

		limit := request.GetInt("limit", 30)
		return textResult(formatMeasurementRecords(records, limit)), nil
	}
}
