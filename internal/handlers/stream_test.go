package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"airemote/internal/core"
	"airemote/internal/database"
	"airemote/internal/handlers"
	"airemote/internal/interp"
	"airemote/internal/models"
	"airemote/internal/planner"
	"airemote/internal/services"
)

// gatedPlanner blocks its first round until the gate closes, then emits
// one justified step; the second round reports completion.
type gatedPlanner struct {
	gate  chan struct{}
	round int
}

func (p *gatedPlanner) Plan(context.Context, string, int, []byte) (*models.Plan, error) {
	if p.round == 0 {
		p.round++
		<-p.gate
		return &models.Plan{Steps: []models.Step{{
			Function:      "press",
			Parameters:    map[string]interface{}{"key": "enter"},
			Justification: "opening a terminal",
		}}}, nil
	}
	return &models.Plan{Done: "Done"}, nil
}

func (p *gatedPlanner) Close() error { return nil }

// wsEvent mirrors the stream handler's wire event for decoding.
type wsEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func setupStreamTest(t *testing.T, p planner.Planner) (*gin.Engine, *core.Core, *services.HistoryService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	history := services.NewHistoryService(db)
	in := interp.NewWithRunner(func(context.Context, string, ...string) error { return nil }, false)
	c := core.New(p, in, noScreen{}, history, core.Options{MaxSteps: 3})

	handler := handlers.NewStreamHandler(c, history)
	router := gin.New()
	router.GET("/api/requests/:id/stream", handler.Stream)
	return router, c, history
}

func streamURL(srv *httptest.Server, id string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/requests/" + id + "/stream"
}

func TestStream_CompletedRequest(t *testing.T) {
	router, c, _ := setupStreamTest(t, &donePlanner{message: "Done"})
	srv := httptest.NewServer(router)
	defer srv.Close()

	req, err := c.Execute(context.Background(), "open the browser")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The request finished before the subscription, so its broadcast
	// channels are gone; the stream must still resolve from the record
	// instead of waiting on a channel nothing will ever write to.
	conn, _, err := websocket.DefaultDialer.Dial(streamURL(srv, req.ID), nil)
	if err != nil {
		t.Fatalf("failed to dial stream: %v", err)
	}
	defer func() { _ = conn.Close() }()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event wsEvent
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("expected a terminal event, got read error: %v", err)
	}
	if event.Type != "complete" {
		t.Errorf("expected complete event, got %q", event.Type)
	}
	if event.Status != string(models.StatusSuccess) {
		t.Errorf("expected success status, got %q", event.Status)
	}
	if event.Message != "Done" {
		t.Errorf("expected completion message, got %q", event.Message)
	}
}

func TestStream_RelaysStatusUntilComplete(t *testing.T) {
	gate := make(chan struct{})
	router, c, history := setupStreamTest(t, &gatedPlanner{gate: gate})
	srv := httptest.NewServer(router)
	defer srv.Close()

	done := make(chan error, 1)
	go func() {
		_, err := c.Execute(context.Background(), "open the browser")
		done <- err
	}()

	// The request row exists once Execute reaches the gated planner.
	var id string
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		requests, _ := history.GetRequests(1, 0)
		if len(requests) == 1 {
			id = requests[0].ID
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if id == "" {
		t.Fatal("request was never created")
	}

	conn, _, err := websocket.DefaultDialer.Dial(streamURL(srv, id), nil)
	if err != nil {
		t.Fatalf("failed to dial stream: %v", err)
	}
	defer func() { _ = conn.Close() }()

	// The handler subscribes right after the upgrade response; give it a
	// beat before releasing the planner so the first broadcast has a
	// subscriber.
	time.Sleep(100 * time.Millisecond)
	close(gate)

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var sawStatus bool
	for {
		var event wsEvent
		if err := conn.ReadJSON(&event); err != nil {
			t.Fatalf("stream ended before completion: %v", err)
		}
		if event.Type == "status" && event.Message == "opening a terminal" {
			sawStatus = true
		}
		if event.Type == "complete" {
			if event.Status != string(models.StatusSuccess) {
				t.Errorf("expected success status, got %q", event.Status)
			}
			break
		}
	}
	if !sawStatus {
		t.Error("expected the step justification on the stream")
	}

	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStream_UnknownRequest(t *testing.T) {
	router, _, _ := setupStreamTest(t, &donePlanner{message: "Done"})
	srv := httptest.NewServer(router)
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial(streamURL(srv, "no-such-id"), nil)
	if err == nil {
		t.Fatal("expected the handshake to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %+v", resp)
	}
}
