// Package planner turns a natural-language command into machine-executable
// steps by asking an LLM, one round at a time.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"airemote/internal/models"
)

// ErrNoAPIKey indicates no LLM API key was configured.
var ErrNoAPIKey = errors.New("no LLM API key configured")

// Planner produces the next round of steps for a user request. screenshot
// may be nil on headless hosts.
type Planner interface {
	Plan(ctx context.Context, command string, stepNum int, screenshot []byte) (*models.Plan, error)
	Close() error
}

// HostContext describes the machine the steps will run on. It is embedded
// in the system prompt so the model plans for the right platform.
type HostContext struct {
	OS           string
	Platform     string
	ScreenWidth  int
	ScreenHeight int
}

const systemPromptFormat = `You are the planning backend of a desktop automation assistant.
The user gives you a goal in plain language and a screenshot of the current screen.
You reply with the smallest next batch of input actions that moves toward the goal.

Host: %s (%s), screen %dx%d.

Reply with a single JSON object and nothing else:
{"steps": [{"function": "...", "parameters": {...}, "human_readable_justification": "..."}], "done": null}

Allowed functions:
- sleep(secs) - wait for applications or pages to load
- click(x, y, button="left", clicks=1)
- moveTo(x, y)
- write(string, interval=0.1) - type text at the cursor
- press(key, presses=1) - tap a single key, e.g. "enter"
- hotkey(keys) - key combination, e.g. ["ctrl", "t"]

Set "done" to a short completion message once the goal is met, or to an
explanation of why it cannot be met. While work remains, "done" must be null.`

// SystemPrompt renders the planning instructions for a host.
func SystemPrompt(host HostContext) string {
	return fmt.Sprintf(systemPromptFormat, host.OS, host.Platform, host.ScreenWidth, host.ScreenHeight)
}

// UserMessage renders one planning round request.
func UserMessage(command string, stepNum int) string {
	payload, _ := json.Marshal(map[string]interface{}{
		"original_user_request": command,
		"step_num":              stepNum,
	})
	return string(payload)
}

// ExtractPlan pulls the JSON object out of a model reply. Models do not
// reliably return a bare JSON body, so everything outside the outermost
// braces is discarded.
func ExtractPlan(text string) (*models.Plan, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object in model reply")
	}

	var plan models.Plan
	if err := json.Unmarshal([]byte(text[start:end+1]), &plan); err != nil {
		return nil, fmt.Errorf("parsing model reply: %w", err)
	}
	return &plan, nil
}
