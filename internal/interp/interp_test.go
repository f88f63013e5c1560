package interp

import (
	"context"
	"strings"
	"testing"
	"time"

	"airemote/internal/models"
)

type recordedCall struct {
	name string
	args []string
}

func recordingRunner(calls *[]recordedCall) Runner {
	return func(_ context.Context, name string, args ...string) error {
		*calls = append(*calls, recordedCall{name: name, args: args})
		return nil
	}
}

func TestRun_MoveTo(t *testing.T) {
	var calls []recordedCall
	i := NewWithRunner(recordingRunner(&calls), false)

	err := i.Run(context.Background(), models.Step{
		Function:   "moveTo",
		Parameters: map[string]interface{}{"x": float64(100), "y": float64(200)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(calls) != 1 || calls[0].name != "xdotool" {
		t.Fatalf("expected one xdotool call, got %+v", calls)
	}
	got := strings.Join(calls[0].args, " ")
	if got != "mousemove 100 200" {
		t.Errorf("unexpected args: %s", got)
	}
}

func TestRun_ClickWithCoordinates(t *testing.T) {
	var calls []recordedCall
	i := NewWithRunner(recordingRunner(&calls), false)

	err := i.Run(context.Background(), models.Step{
		Function: "click",
		Parameters: map[string]interface{}{
			"x": float64(10), "y": float64(20), "button": "right", "clicks": float64(2),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := strings.Join(calls[0].args, " ")
	if got != "mousemove 10 20 click --repeat 2 3" {
		t.Errorf("unexpected args: %s", got)
	}
}

func TestRun_Write(t *testing.T) {
	var calls []recordedCall
	i := NewWithRunner(recordingRunner(&calls), false)

	err := i.Run(context.Background(), models.Step{
		Function:   "write",
		Parameters: map[string]interface{}{"text": "hello world", "interval": 0.05},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := strings.Join(calls[0].args, " ")
	if got != "type --delay 50 -- hello world" {
		t.Errorf("unexpected args: %s", got)
	}
}

func TestRun_PressMapsKeysyms(t *testing.T) {
	var calls []recordedCall
	i := NewWithRunner(recordingRunner(&calls), false)

	err := i.Run(context.Background(), models.Step{
		Function:   "press",
		Parameters: map[string]interface{}{"key": "enter", "presses": float64(3)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := strings.Join(calls[0].args, " ")
	if got != "key Return Return Return" {
		t.Errorf("unexpected args: %s", got)
	}
}

func TestRun_Hotkey(t *testing.T) {
	var calls []recordedCall
	i := NewWithRunner(recordingRunner(&calls), false)

	err := i.Run(context.Background(), models.Step{
		Function:   "hotkey",
		Parameters: map[string]interface{}{"keys": []interface{}{"ctrl", "t"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := strings.Join(calls[0].args, " ")
	if got != "key ctrl+t" {
		t.Errorf("unexpected args: %s", got)
	}
}

func TestRun_SleepHonorsContext(t *testing.T) {
	i := NewWithRunner(recordingRunner(&[]recordedCall{}), false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := i.Run(ctx, models.Step{
		Function:   "sleep",
		Parameters: map[string]interface{}{"secs": float64(30)},
	})
	if err == nil {
		t.Error("expected context error")
	}
	if time.Since(start) > time.Second {
		t.Error("sleep did not return promptly on cancellation")
	}
}

func TestRun_HeadlessSimulates(t *testing.T) {
	var calls []recordedCall
	i := NewWithRunner(recordingRunner(&calls), true)

	err := i.Run(context.Background(), models.Step{
		Function:   "click",
		Parameters: map[string]interface{}{"x": float64(1), "y": float64(2)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("expected no external calls in headless mode, got %d", len(calls))
	}
}

func TestRun_UnknownFunction(t *testing.T) {
	i := NewWithRunner(recordingRunner(&[]recordedCall{}), false)

	err := i.Run(context.Background(), models.Step{Function: "launchMissiles"})
	if err == nil {
		t.Error("expected error for unknown function")
	}
}

func TestRun_PressWithoutKey(t *testing.T) {
	i := NewWithRunner(recordingRunner(&[]recordedCall{}), false)

	err := i.Run(context.Background(), models.Step{Function: "press", Parameters: map[string]interface{}{}})
	if err == nil {
		t.Error("expected error for press without key")
	}
}
