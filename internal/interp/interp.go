// Package interp executes planned steps against the desktop. Input events
// are driven through xdotool; hosts without a display get simulation mode,
// where steps are logged and reported successful.
package interp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"airemote/internal/models"
)

// Runner executes one external command. Swapped out in tests.
type Runner func(ctx context.Context, name string, args ...string) error

func defaultRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %w (%s)", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Interpreter executes planned steps one at a time.
type Interpreter struct {
	runner   Runner
	headless bool
}

// New creates an interpreter. Headless mode is detected from the DISPLAY
// environment variable.
func New() *Interpreter {
	headless := os.Getenv("DISPLAY") == ""
	if headless {
		log.Println("[Interp] No DISPLAY found, running in simulation mode")
	}
	return &Interpreter{runner: defaultRunner, headless: headless}
}

// NewWithRunner creates an interpreter with a custom command runner.
func NewWithRunner(runner Runner, headless bool) *Interpreter {
	return &Interpreter{runner: runner, headless: headless}
}

// Headless reports whether steps are simulated instead of executed.
func (i *Interpreter) Headless() bool {
	return i.headless
}

// Run executes a single step.
func (i *Interpreter) Run(ctx context.Context, step models.Step) error {
	if step.Function == "sleep" {
		secs := floatParam(step.Parameters, 1, "secs")
		select {
		case <-time.After(time.Duration(secs * float64(time.Second))):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	args, err := xdotoolArgs(step)
	if err != nil {
		return err
	}

	if i.headless {
		log.Printf("[Interp] Simulated %s %v", step.Function, step.Parameters)
		return nil
	}

	return i.runner(ctx, "xdotool", args...)
}

// xdotoolArgs maps a planned step onto an xdotool invocation.
func xdotoolArgs(step models.Step) ([]string, error) {
	p := step.Parameters

	switch step.Function {
	case "moveTo":
		x := intParam(p, 0, "x")
		y := intParam(p, 0, "y")
		return []string{"mousemove", strconv.Itoa(x), strconv.Itoa(y)}, nil

	case "click":
		args := []string{}
		if _, ok := p["x"]; ok {
			args = append(args, "mousemove", strconv.Itoa(intParam(p, 0, "x")), strconv.Itoa(intParam(p, 0, "y")))
		}
		button := "1"
		switch stringParam(p, "left", "button") {
		case "right":
			button = "3"
		case "middle":
			button = "2"
		}
		clicks := intParam(p, 1, "clicks")
		if clicks < 1 {
			clicks = 1
		}
		args = append(args, "click", "--repeat", strconv.Itoa(clicks), button)
		return args, nil

	case "write", "typewrite":
		text := stringParam(p, "", "string", "text")
		interval := floatParam(p, 0.1, "interval")
		delayMS := int(interval * 1000)
		return []string{"type", "--delay", strconv.Itoa(delayMS), "--", text}, nil

	case "press":
		key := stringParam(p, "", "key", "keys")
		if key == "" {
			return nil, fmt.Errorf("press step without a key")
		}
		args := []string{"key"}
		presses := intParam(p, 1, "presses")
		if presses < 1 {
			presses = 1
		}
		sym := keysym(key)
		for n := 0; n < presses; n++ {
			args = append(args, sym)
		}
		return args, nil

	case "hotkey":
		keys := listParam(p)
		if len(keys) == 0 {
			return nil, fmt.Errorf("hotkey step without keys")
		}
		syms := make([]string, len(keys))
		for n, k := range keys {
			syms[n] = keysym(k)
		}
		return []string{"key", strings.Join(syms, "+")}, nil

	default:
		return nil, fmt.Errorf("unknown step function %q", step.Function)
	}
}

// keysym translates the planner's key names onto X11 keysyms.
func keysym(key string) string {
	switch strings.ToLower(key) {
	case "enter", "return":
		return "Return"
	case "esc", "escape":
		return "Escape"
	case "tab":
		return "Tab"
	case "space":
		return "space"
	case "backspace":
		return "BackSpace"
	case "delete", "del":
		return "Delete"
	case "up":
		return "Up"
	case "down":
		return "Down"
	case "left":
		return "Left"
	case "right":
		return "Right"
	case "home":
		return "Home"
	case "end":
		return "End"
	case "pageup", "pgup":
		return "Page_Up"
	case "pagedown", "pgdn":
		return "Page_Down"
	case "win", "command", "cmd", "super":
		return "super"
	default:
		return key
	}
}

func stringParam(p map[string]interface{}, def string, names ...string) string {
	for _, name := range names {
		if v, ok := p[name]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return def
}

func floatParam(p map[string]interface{}, def float64, names ...string) float64 {
	for _, name := range names {
		switch v := p[name].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
	}
	return def
}

func intParam(p map[string]interface{}, def int, names ...string) int {
	for _, name := range names {
		switch v := p[name].(type) {
		case float64:
			return int(v)
		case int:
			return v
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return def
}

// listParam flattens a hotkey parameter map into its key list. The planner
// usually sends {"keys": ["ctrl", "t"]}, but single-key maps happen too.
func listParam(p map[string]interface{}) []string {
	var keys []string
	if raw, ok := p["keys"]; ok {
		switch v := raw.(type) {
		case []interface{}:
			for _, item := range v {
				if s, ok := item.(string); ok {
					keys = append(keys, s)
				}
			}
			return keys
		case string:
			return []string{v}
		}
	}
	for _, raw := range p {
		if s, ok := raw.(string); ok {
			keys = append(keys, s)
		}
	}
	return keys
}
