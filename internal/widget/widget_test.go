package widget_test

import (
	"context"
	"errors"
	"testing"

	"airemote/internal/widget"
)

// fakeEndpoint records calls and plays back a scripted result.
type fakeEndpoint struct {
	calls  []string
	result *widget.Result
	err    error
}

func (f *fakeEndpoint) Execute(_ context.Context, command string) (*widget.Result, error) {
	f.calls = append(f.calls, command)
	return f.result, f.err
}

func TestSubmit_BlankCommand(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n  "} {
		ep := &fakeEndpoint{}
		w := widget.New(ep)
		w.SetCommand(text)

		w.Submit(context.Background())

		if len(ep.calls) != 0 {
			t.Errorf("input %q: expected no endpoint call, got %d", text, len(ep.calls))
		}
		d := w.Display()
		if d.Style != widget.StyleError {
			t.Errorf("input %q: expected error style, got %v", text, d.Style)
		}
		if d.Message != "Please enter a command" {
			t.Errorf("input %q: expected validation message, got %q", text, d.Message)
		}
	}
}

func TestSubmit_SendsUntrimmedText(t *testing.T) {
	ep := &fakeEndpoint{result: &widget.Result{Status: "success", Message: "Done"}}
	w := widget.New(ep)
	w.SetCommand("  open the browser  ")

	w.Submit(context.Background())

	if len(ep.calls) != 1 {
		t.Fatalf("expected exactly one endpoint call, got %d", len(ep.calls))
	}
	if ep.calls[0] != "  open the browser  " {
		t.Errorf("expected untrimmed command, got %q", ep.calls[0])
	}
}

func TestSubmit_Success(t *testing.T) {
	ep := &fakeEndpoint{result: &widget.Result{Status: "success", Message: "Done"}}
	w := widget.New(ep)
	w.SetCommand("open the browser")

	w.Submit(context.Background())

	d := w.Display()
	if d.Style != widget.StyleSuccess {
		t.Errorf("expected success style, got %v", d.Style)
	}
	if d.Message != "Done" {
		t.Errorf("expected message 'Done', got %q", d.Message)
	}
	if w.Command() != "" {
		t.Errorf("expected command text cleared, got %q", w.Command())
	}
}

func TestSubmit_EndpointReportedFailure(t *testing.T) {
	ep := &fakeEndpoint{result: &widget.Result{Status: "error", Message: "Bad input"}}
	w := widget.New(ep)
	w.SetCommand("do something odd")

	w.Submit(context.Background())

	d := w.Display()
	if d.Style != widget.StyleError {
		t.Errorf("expected error style, got %v", d.Style)
	}
	if d.Message != "Bad input" {
		t.Errorf("expected message 'Bad input', got %q", d.Message)
	}
	if w.Command() != "do something odd" {
		t.Errorf("expected command text preserved, got %q", w.Command())
	}
}

func TestSubmit_TransportFailure(t *testing.T) {
	ep := &fakeEndpoint{err: errors.New("connection refused")}
	w := widget.New(ep)
	w.SetCommand("open the browser")

	w.Submit(context.Background())

	d := w.Display()
	if d.Style != widget.StyleError {
		t.Errorf("expected error style, got %v", d.Style)
	}
	if d.Message != "Network error. Please try again." {
		t.Errorf("expected generic network message, got %q", d.Message)
	}
	if w.Command() != "open the browser" {
		t.Errorf("expected command text preserved, got %q", w.Command())
	}
}

func TestSubmit_SequentialCyclesAreIndependent(t *testing.T) {
	ep := &fakeEndpoint{result: &widget.Result{Status: "success", Message: "Done"}}
	w := widget.New(ep)

	w.SetCommand("list files")
	w.Submit(context.Background())
	w.SetCommand("list files")
	w.Submit(context.Background())

	if len(ep.calls) != 2 {
		t.Fatalf("expected two endpoint calls, got %d", len(ep.calls))
	}
	if ep.calls[0] != ep.calls[1] {
		t.Errorf("expected identical payloads, got %q and %q", ep.calls[0], ep.calls[1])
	}
	d := w.Display()
	if d.Style != widget.StyleSuccess || d.Message != "Done" {
		t.Errorf("unexpected final display state: %+v", d)
	}
	if w.Command() != "" {
		t.Errorf("expected command cleared after second cycle, got %q", w.Command())
	}
}

func TestBegin_InFlightState(t *testing.T) {
	w := widget.New(&fakeEndpoint{})
	w.SetCommand("open the browser")

	command, ok := w.Begin()
	if !ok {
		t.Fatal("expected Begin to proceed")
	}
	if command != "open the browser" {
		t.Errorf("expected command snapshot, got %q", command)
	}
	if !w.Busy() {
		t.Error("expected widget busy after Begin")
	}
	d := w.Display()
	if d.Style != widget.StyleNeutral || d.Message != "Executing..." {
		t.Errorf("unexpected in-flight display state: %+v", d)
	}
}

func TestBegin_RejectsOverlappingSubmission(t *testing.T) {
	w := widget.New(&fakeEndpoint{})
	w.SetCommand("first")

	if _, ok := w.Begin(); !ok {
		t.Fatal("expected first Begin to proceed")
	}

	// The trigger is disabled while in flight.
	if _, ok := w.Begin(); ok {
		t.Error("expected second Begin to be rejected while busy")
	}

	// Text edits are ignored while in flight.
	w.SetCommand("second")
	if w.Command() != "first" {
		t.Errorf("expected command unchanged while busy, got %q", w.Command())
	}

	w.Finish(&widget.Result{Status: "success", Message: "Done"}, nil)
	if w.Busy() {
		t.Error("expected widget idle after Finish")
	}
}

func TestStyleString(t *testing.T) {
	if widget.StyleNeutral.String() != "neutral" {
		t.Errorf("unexpected neutral string: %s", widget.StyleNeutral)
	}
	if widget.StyleSuccess.String() != "success" {
		t.Errorf("unexpected success string: %s", widget.StyleSuccess)
	}
	if widget.StyleError.String() != "error" {
		t.Errorf("unexpected error string: %s", widget.StyleError)
	}
}
