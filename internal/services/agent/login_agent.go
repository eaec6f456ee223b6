// Package agent drives the browser with Claude tool use. It exists for one
// job: recovering a login when the scripted selectors stop matching after a
// site redesign.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vitalog/internal/common"
	"github.com/ternarybob/vitalog/internal/services/browser"
)

const maxContentLength = 20000

// LoginAgent runs a bounded Claude tool-use loop over the browser tool
// surface until the session is signed in or the turn budget runs out.
type LoginAgent struct {
	config    *common.ClaudeConfig
	logger    arbor.ILogger
	client    anthropic.Client
	timeout   time.Duration
	maxTokens int
	maxTurns  int
}

// NewLoginAgent creates the agent. Requires an Anthropic API key; callers
// should skip construction entirely when none is configured.
func NewLoginAgent(claudeConfig *common.ClaudeConfig, logger arbor.ILogger) (*LoginAgent, error) {
	if claudeConfig.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required for agent-assisted login (set ANTHROPIC_API_KEY or claude.api_key in config)")
	}

	if claudeConfig.Model == "" {
		claudeConfig.Model = "claude-sonnet-4-20250514"
	}

	timeout := 5 * time.Minute
	if claudeConfig.Timeout != "" {
		parsed, err := time.ParseDuration(claudeConfig.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout duration '%s': %w", claudeConfig.Timeout, err)
		}
		timeout = parsed
	}

	maxTokens := claudeConfig.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	maxTurns := claudeConfig.MaxTurns
	if maxTurns <= 0 {
		maxTurns = 15
	}

	agent := &LoginAgent{
		config:    claudeConfig,
		logger:    logger,
		client:    anthropic.NewClient(option.WithAPIKey(claudeConfig.APIKey)),
		timeout:   timeout,
		maxTokens: maxTokens,
		maxTurns:  maxTurns,
	}

	logger.Debug().
		Str("model", claudeConfig.Model).
		Dur("timeout", timeout).
		Int("max_turns", maxTurns).
		Msg("Login agent initialized")

	return agent, nil
}

// Login asks the model to sign in through the tool surface. The credentials
// go into the prompt; the model decides which selectors to use. Success is
// declared by the model calling report_result with logged_in=true, and is
// verified against the live page before this method returns nil.
func (a *LoginAgent) Login(ctx context.Context, tools *browser.Tools, siteURL, email, password string) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	a.logger.Info().Str("site", siteURL).Msg("Starting agent-assisted login")

	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(loginPrompt(siteURL, email, password))),
	}

	reported := false
	for turn := 0; turn < a.maxTurns; turn++ {
		resp, err := a.client.Messages.New(timeoutCtx, anthropic.MessageNewParams{
			Model:     anthropic.Model(a.config.Model),
			MaxTokens: int64(a.maxTokens),
			System:    []anthropic.TextBlockParam{{Text: loginSystemPrompt}},
			Messages:  messages,
			Tools:     browserTools(),
		})
		if err != nil {
			return fmt.Errorf("agent request failed: %w", err)
		}

		messages = append(messages, resp.ToParam())

		var results []anthropic.ContentBlockParamUnion
		for _, block := range resp.Content {
			toolUse, ok := block.AsAny().(anthropic.ToolUseBlock)
			if !ok {
				continue
			}

			a.logger.Debug().Str("tool", toolUse.Name).Int("turn", turn).Msg("Agent tool call")

			if toolUse.Name == "report_result" {
				reported = parseReport(toolUse.JSON.Input.Raw())
				results = append(results, anthropic.NewToolResultBlock(toolUse.ID, "acknowledged", false))
				continue
			}

			output, toolErr := a.dispatch(tools, toolUse.Name, toolUse.JSON.Input.Raw())
			if toolErr != nil {
				results = append(results, anthropic.NewToolResultBlock(toolUse.ID, toolErr.Error(), true))
			} else {
				results = append(results, anthropic.NewToolResultBlock(toolUse.ID, output, false))
			}
		}

		if len(results) == 0 {
			break
		}
		messages = append(messages, anthropic.NewUserMessage(results...))

		if reported {
			break
		}
	}

	if !reported {
		return fmt.Errorf("agent did not complete login within %d turns", a.maxTurns)
	}

	if err := verifyLoggedIn(tools); err != nil {
		return err
	}

	a.logger.Info().Msg("Agent-assisted login succeeded")
	return nil
}

// dispatch routes one tool call to the browser tool surface.
func (a *LoginAgent) dispatch(tools *browser.Tools, name, rawInput string) (string, error) {
	var input struct {
		URL      string `json:"url"`
		Selector string `json:"selector"`
		Text     string `json:"text"`
		Timeout  int    `json:"timeout_seconds"`
	}
	if err := json.Unmarshal([]byte(rawInput), &input); err != nil {
		return "", fmt.Errorf("invalid tool input: %w", err)
	}

	switch name {
	case "navigate":
		return tools.Navigate(input.URL)
	case "click":
		return tools.Click(input.Selector)
	case "type_text":
		return tools.TypeText(input.Selector, input.Text)
	case "wait_for":
		return tools.WaitFor(input.Selector, time.Duration(input.Timeout)*time.Second)
	case "get_content":
		content, err := tools.GetContent(input.Selector)
		if err != nil {
			return "", err
		}
		if len(content) > maxContentLength {
			content = content[:maxContentLength] + "\n...[truncated]"
		}
		return content, nil
	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

// parseReport reads the logged_in flag from a report_result call.
func parseReport(rawInput string) bool {
	var report struct {
		LoggedIn bool `json:"logged_in"`
	}
	if err := json.Unmarshal([]byte(rawInput), &report); err != nil {
		return false
	}
	return report.LoggedIn
}

// verifyLoggedIn checks the live page rather than trusting the model's
// self-report. A signed-in page has no sign-in button.
func verifyLoggedIn(tools *browser.Tools) error {
	content, err := tools.GetContent("body")
	if err != nil {
		return fmt.Errorf("could not verify login state: %w", err)
	}
	if !browser.SignedIn(content) {
		return fmt.Errorf("agent reported success but page still shows the sign-in button")
	}
	return nil
}

const loginSystemPrompt = `You are a browser automation assistant. You sign in to a website using the provided tools, then report the outcome.

Rules:
- Use CSS selectors only.
- Accept any cookie consent banner before interacting with the page.
- Never invent selectors: inspect the page with get_content before clicking or typing.
- When the login form is submitted and the page has settled, call report_result exactly once.`

func loginPrompt(siteURL, email, password string) string {
	return fmt.Sprintf(`Sign in to %s.

Email: %s
Password: %s

The usual flow: open the site, dismiss the cookie banner, open the sign-in form, enter the credentials, tick "remember me" if present, submit, wait for the page to settle. The exact selectors may have changed, so inspect the page as you go. When done, call report_result with logged_in set to whether the site now shows a signed-in page.`, siteURL, email, password)
}

// browserTools declares the tool surface offered to the model.
func browserTools() []anthropic.ToolUnionParam {
	tools := []anthropic.ToolParam{
		{
			Name:        "navigate",
			Description: anthropic.String("Navigate the browser to a URL and wait for the page to load."),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: map[string]interface{}{
					"url": map[string]interface{}{"type": "string", "description": "Absolute URL to open"},
				},
				Required: []string{"url"},
			},
		},
		{
			Name:        "click",
			Description: anthropic.String("Click the first element matching a CSS selector."),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: map[string]interface{}{
					"selector": map[string]interface{}{"type": "string", "description": "CSS selector"},
				},
				Required: []string{"selector"},
			},
		},
		{
			Name:        "type_text",
			Description: anthropic.String("Type text into the first element matching a CSS selector."),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: map[string]interface{}{
					"selector": map[string]interface{}{"type": "string", "description": "CSS selector of the input"},
					"text":     map[string]interface{}{"type": "string", "description": "Text to type"},
				},
				Required: []string{"selector", "text"},
			},
		},
		{
			Name:        "wait_for",
			Description: anthropic.String("Wait until an element is visible."),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: map[string]interface{}{
					"selector":        map[string]interface{}{"type": "string", "description": "CSS selector"},
					"timeout_seconds": map[string]interface{}{"type": "integer", "description": "Seconds to wait, default 10"},
				},
				Required: []string{"selector"},
			},
		},
		{
			Name:        "get_content",
			Description: anthropic.String("Read the HTML of the page or of a specific element. Long content is truncated."),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: map[string]interface{}{
					"selector": map[string]interface{}{"type": "string", "description": "CSS selector; empty for the whole page"},
				},
			},
		},
		{
			Name:        "report_result",
			Description: anthropic.String("Report the final outcome of the login attempt."),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: map[string]interface{}{
					"logged_in": map[string]interface{}{"type": "boolean", "description": "Whether the site shows a signed-in page"},
					"notes":     map[string]interface{}{"type": "string", "description": "Short description of what happened"},
				},
				Required: []string{"logged_in"},
			},
		},
	}

	union := make([]anthropic.ToolUnionParam, 0, len(tools))
	for i := range tools {
		union = append(union, anthropic.ToolUnionParam{OfTool: &tools[i]})
	}
	return union
}
