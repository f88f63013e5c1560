package models

import "time"

// RequestStatus represents the status of a command request.
type RequestStatus string

const (
	// StatusPending indicates the request is waiting to start.
	StatusPending RequestStatus = "pending"
	// StatusRunning indicates the request is currently being executed.
	StatusRunning RequestStatus = "running"
	// StatusSuccess indicates the request completed successfully.
	StatusSuccess RequestStatus = "success"
	// StatusFailed indicates the request failed.
	StatusFailed RequestStatus = "failed"
)

// Request represents a single user command and its outcome.
type Request struct {
	CreatedAt  time.Time     `json:"created_at"`
	StartedAt  *time.Time    `json:"started_at"`
	FinishedAt *time.Time    `json:"finished_at"`
	ID         string        `json:"id"`
	Command    string        `json:"command"`
	Status     RequestStatus `json:"status"`
	Message    string        `json:"message"`
	Steps      int           `json:"steps"`
}

// ExecuteRequest is the wire payload submitted by the command widget.
type ExecuteRequest struct {
	Command string `json:"command"`
}

// ExecuteResponse is the wire result consumed by the command widget.
// Status is "success" or "error"; Message is human readable.
type ExecuteResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	StreamURL string `json:"stream_url,omitempty"`
}
