package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createNavigateTool returns the browser_navigate tool definition
func createNavigateTool() mcp.Tool {
	return mcp.NewTool("browser_navigate",
		mcp.WithDescription("Navigate the shared browser session to a URL and wait for the page to load"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Absolute URL to open"),
		),
	)
}

// createClickTool returns the browser_click tool definition
func createClickTool() mcp.Tool {
	return mcp.NewTool("browser_click",
		mcp.WithDescription("Click the first element matching a CSS selector"),
		mcp.WithString("selector",
			mcp.Required(),
			mcp.Description("CSS selector of the element to click"),
		),
	)
}

// createTypeTextTool returns the browser_type tool definition
func createTypeTextTool() mcp.Tool {
	return mcp.NewTool("browser_type",
		mcp.WithDescription("Type text into the first element matching a CSS selector"),
		mcp.WithString("selector",
			mcp.Required(),
			mcp.Description("CSS selector of the input element"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to type"),
		),
	)
}

// createGetContentTool returns the browser_get_content tool definition
func createGetContentTool() mcp.Tool {
	return mcp.NewTool("browser_get_content",
		mcp.WithDescription("Read the HTML of the current page or of a specific element"),
		mcp.WithString("selector",
			mcp.Description("CSS selector; omit for the whole page"),
		),
	)
}

// createWaitForTool returns the browser_wait_for tool definition
func createWaitForTool() mcp.Tool {
	return mcp.NewTool("browser_wait_for",
		mcp.WithDescription("Wait until an element is visible"),
		mcp.WithString("selector",
			mcp.Required(),
			mcp.Description("CSS selector of the element to wait for"),
		),
		mcp.WithNumber("timeout_seconds",
			mcp.Description("Seconds to wait (default: 10)"),
		),
	)
}

// createScreenshotTool returns the browser_screenshot tool definition
func createScreenshotTool() mcp.Tool {
	return mcp.NewTool("browser_screenshot",
		mcp.WithDescription("Capture a full-page screenshot of the current page (base64 PNG)"),
	)
}

// createExecuteJSTool returns the browser_execute_js tool definition
func createExecuteJSTool() mcp.Tool {
	return mcp.NewTool("browser_execute_js",
		mcp.WithDescription("Evaluate a JavaScript expression on the current page and return the result"),
		mcp.WithString("script",
			mcp.Required(),
			mcp.Description("JavaScript expression to evaluate"),
		),
	)
}

// createGetCaloriesTool returns the get_calorie_records tool definition
func createGetCaloriesTool() mcp.Tool {
	return mcp.NewTool("get_calorie_records",
		mcp.WithDescription("List stored calorie diary records ordered by date"),
		mcp.WithString("date",
			mcp.Description("Return only the record for this date (YYYY-MM-DD)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max records to return, most recent first (default: 30)"),
		),
	)
}

// createGetMeasurementsTool returns the get_measurement_records tool definition
func createGetMeasurementsTool() mcp.Tool {
	return mcp.NewTool("get_measurement_records",
		mcp.WithDescription("List stored body measurement records (mass, waist, body fat) ordered by date"),
		mcp.WithString("date",
			mcp.Description("Return only the record for this date (YYYY-MM-DD)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max records to return, most recent first (default: 30)"),
		),
	)
}
