// Package widget implements the command submission widget: a text buffer,
// a submit action, and a display state reflecting the outcome of the most
// recent submission attempt.
package widget

import (
	"context"
	"strings"
)

// Style categorizes the display state for rendering.
type Style int

const (
	StyleNeutral Style = iota
	StyleSuccess
	StyleError
)

func (s Style) String() string {
	switch s {
	case StyleSuccess:
		return "success"
	case StyleError:
		return "error"
	default:
		return "neutral"
	}
}

// Display is the (message, style) tuple shown to the user.
type Display struct {
	Message string
	Style   Style
}

// Result is the parsed outcome returned by the execution endpoint.
type Result struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Endpoint executes a command remotely. Execute returns a non-nil Result
// for any well-formed response, or an error for transport/parse failures.
type Endpoint interface {
	Execute(ctx context.Context, command string) (*Result, error)
}

const (
	msgEmptyCommand = "Please enter a command"
	msgExecuting    = "Executing..."
	msgNetworkError = "Network error. Please try again."
)

// Widget holds the command text and display state. It is not safe for
// concurrent use; callers drive it from a single event loop.
type Widget struct {
	endpoint Endpoint
	command  string
	display  Display
	busy     bool
}

func New(endpoint Endpoint) *Widget {
	return &Widget{endpoint: endpoint}
}

// SetCommand replaces the command text. Ignored while a submission is in
// flight, matching the disabled input surface.
func (w *Widget) SetCommand(text string) {
	if w.busy {
		return
	}
	w.command = text
}

// Command returns the current command text.
func (w *Widget) Command() string {
	return w.command
}

// Display returns the current display state.
func (w *Widget) Display() Display {
	return w.display
}

// Busy reports whether a submission is in flight.
func (w *Widget) Busy() bool {
	return w.busy
}

// Begin validates the command text and transitions the widget into the
// in-flight state. It returns the raw, untrimmed text to submit and
// whether the caller should proceed with the request. A blank command
// sets the validation error without starting a submission; a busy widget
// rejects the attempt outright, so overlapping submissions cannot occur.
func (w *Widget) Begin() (command string, ok bool) {
	if w.busy {
		return "", false
	}

	if strings.TrimSpace(w.command) == "" {
		w.display = Display{Message: msgEmptyCommand, Style: StyleError}
		return "", false
	}

	w.busy = true
	w.display = Display{Message: msgExecuting, Style: StyleNeutral}
	return w.command, true
}

// Finish applies the outcome of the request started by Begin. On success
// the command text is cleared; on any failure it is preserved so the user
// can edit and retry. Transport and parse failures collapse into a single
// generic error message.
func (w *Widget) Finish(result *Result, err error) {
	w.busy = false

	if err != nil {
		w.display = Display{Message: msgNetworkError, Style: StyleError}
		return
	}

	if result.Status == "success" {
		w.display = Display{Message: result.Message, Style: StyleSuccess}
		w.command = ""
		return
	}

	w.display = Display{Message: result.Message, Style: StyleError}
}

// Submit performs a full submission cycle, blocking until the endpoint
// resolves. Display updates are applied strictly in the order
// validation -> in-flight -> resolution.
func (w *Widget) Submit(ctx context.Context) {
	command, ok := w.Begin()
	if !ok {
		return
	}
	result, err := w.endpoint.Execute(ctx, command)
	w.Finish(result, err)
}
