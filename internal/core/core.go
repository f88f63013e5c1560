// Package core orchestrates a command request: plan with the LLM, execute
// the planned steps, repeat with a fresh screenshot until the objective is
// met, and report status along the way.
package core

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"airemote/internal/interp"
	"airemote/internal/models"
	"airemote/internal/planner"
	"airemote/internal/services"
)

// ScreenGrabber supplies the planner with the current screen contents.
type ScreenGrabber interface {
	Screenshot(ctx context.Context) ([]byte, error)
}

// Options bound a request's execution.
type Options struct {
	MaxSteps  int
	StepDelay time.Duration
}

// Core runs one command request at a time. A new request cancels any
// request still in flight; the widget never submits concurrently, but a
// second phone or an impatient reload can.
type Core struct {
	planner planner.Planner
	interp  *interp.Interpreter
	screen  ScreenGrabber
	history *services.HistoryService
	opts    Options

	cancelMu sync.Mutex
	cancel   context.CancelFunc

	streamsMu sync.RWMutex
	streams   map[string][]chan string
}

func New(p planner.Planner, i *interp.Interpreter, s ScreenGrabber, h *services.HistoryService, opts Options) *Core {
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = 10
	}
	return &Core{
		planner: p,
		interp:  i,
		screen:  s,
		history: h,
		opts:    opts,
		streams: make(map[string][]chan string),
	}
}

// Execute runs the request to completion and returns its final record.
// The returned request always carries a terminal status and a message
// suitable for the widget's display.
func (c *Core) Execute(ctx context.Context, command string) (*models.Request, error) {
	req, err := c.history.CreateRequest(command)
	if err != nil {
		return nil, err
	}

	ctx = c.takeOver(ctx)
	defer c.release()

	log.Printf("[Core] Starting request %s: %q", req.ID, command)
	if err := c.history.MarkRunning(req.ID); err != nil {
		return nil, err
	}

	message, runErr := c.run(ctx, req.ID, command)

	status := models.StatusSuccess
	if runErr != nil {
		status = models.StatusFailed
		message = fmt.Sprintf("Error: %v", runErr)
	}

	if err := c.history.FinishRequest(req.ID, status, message); err != nil {
		log.Printf("[Core] Error finishing request %s: %v", req.ID, err)
	}
	c.broadcast(req.ID, "complete:"+string(status))
	c.closeStreams(req.ID)

	log.Printf("[Core] Finished request %s with status=%s", req.ID, status)

	return c.history.GetRequestByID(req.ID)
}

// run loops plan -> execute until the planner reports completion.
func (c *Core) run(ctx context.Context, requestID, command string) (string, error) {
	executed := 0

	for stepNum := 0; stepNum < c.opts.MaxSteps; stepNum++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		var screenshot []byte
		if c.screen != nil {
			shot, err := c.screen.Screenshot(ctx)
			if err != nil {
				log.Printf("[Core] Screenshot failed for request %s: %v", requestID, err)
			} else {
				screenshot = shot
			}
		}

		plan, err := c.planner.Plan(ctx, command, stepNum, screenshot)
		if err != nil {
			return "", err
		}

		for _, step := range plan.Steps {
			if step.Justification != "" {
				c.broadcast(requestID, "status:"+step.Justification)
				log.Printf("[Core] %s: %s", requestID, step.Justification)
			}

			if err := c.interp.Run(ctx, step); err != nil {
				return "", err
			}
			executed++
			_ = c.history.RecordSteps(requestID, executed)

			if c.opts.StepDelay > 0 {
				select {
				case <-time.After(c.opts.StepDelay):
				case <-ctx.Done():
					return "", ctx.Err()
				}
			}
		}

		if plan.Done != "" {
			return plan.Done, nil
		}
		if len(plan.Steps) == 0 {
			return "", fmt.Errorf("planner returned no steps and no completion")
		}
	}

	return "", fmt.Errorf("request did not complete within %d planning rounds", c.opts.MaxSteps)
}

// takeOver cancels any in-flight request and registers this one.
func (c *Core) takeOver(ctx context.Context) context.Context {
	c.cancelMu.Lock()
	defer c.cancelMu.Unlock()

	if c.cancel != nil {
		log.Println("[Core] Cancelling previous request")
		c.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	return ctx
}

func (c *Core) release() {
	c.cancelMu.Lock()
	defer c.cancelMu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Stop cancels the in-flight request, if any.
func (c *Core) Stop() {
	c.cancelMu.Lock()
	defer c.cancelMu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
}

// Subscribe returns a channel of status lines for a request. Lines are
// prefixed "status:" while running and a final "complete:<status>".
func (c *Core) Subscribe(requestID string) chan string {
	ch := make(chan string, 100)

	c.streamsMu.Lock()
	c.streams[requestID] = append(c.streams[requestID], ch)
	c.streamsMu.Unlock()

	return ch
}

// Unsubscribe removes a subscriber registered with Subscribe.
func (c *Core) Unsubscribe(requestID string, ch chan string) {
	c.streamsMu.Lock()
	defer c.streamsMu.Unlock()

	channels := c.streams[requestID]
	for i, existing := range channels {
		if existing == ch {
			c.streams[requestID] = append(channels[:i], channels[i+1:]...)
			close(ch)
			break
		}
	}

	if len(c.streams[requestID]) == 0 {
		delete(c.streams, requestID)
	}
}

func (c *Core) broadcast(requestID, line string) {
	c.streamsMu.RLock()
	defer c.streamsMu.RUnlock()

	for _, ch := range c.streams[requestID] {
		select {
		case ch <- line:
		default:
		}
	}
}

func (c *Core) closeStreams(requestID string) {
	c.streamsMu.Lock()
	defer c.streamsMu.Unlock()

	for _, ch := range c.streams[requestID] {
		close(ch)
	}
	delete(c.streams, requestID)
}
