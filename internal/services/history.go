// Package services contains the persistence-backed domain services.
package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"airemote/internal/database"
	"airemote/internal/models"
)

var ErrRequestNotFound = errors.New("request not found")

// HistoryService records every command request and its outcome, the
// persistent form of the conversation history shown on the mobile page.
type HistoryService struct {
	db *database.DB
}

func NewHistoryService(db *database.DB) *HistoryService {
	return &HistoryService{db: db}
}

// CreateRequest records a new pending request and returns it.
func (s *HistoryService) CreateRequest(command string) (*models.Request, error) {
	id := uuid.New().String()

	_, err := s.db.Exec(
		"INSERT INTO requests (id, command, status) VALUES (?, ?, ?)",
		id, command, models.StatusPending,
	)
	if err != nil {
		return nil, err
	}

	return s.GetRequestByID(id)
}

// GetRequestByID fetches a single request.
func (s *HistoryService) GetRequestByID(id string) (*models.Request, error) {
	var req models.Request
	var message sql.NullString
	var startedAt, finishedAt sql.NullTime

	err := s.db.QueryRow(
		"SELECT id, command, status, message, steps, started_at, finished_at, created_at FROM requests WHERE id = ?",
		id,
	).Scan(&req.ID, &req.Command, &req.Status, &message, &req.Steps, &startedAt, &finishedAt, &req.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}

	if message.Valid {
		req.Message = message.String
	}
	if startedAt.Valid {
		req.StartedAt = &startedAt.Time
	}
	if finishedAt.Valid {
		req.FinishedAt = &finishedAt.Time
	}

	return &req, nil
}

// GetRequests lists recent requests, newest first.
func (s *HistoryService) GetRequests(limit, offset int) ([]models.Request, error) {
	if limit == 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, command, status, message, steps, started_at, finished_at, created_at
		FROM requests
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.Request
	for rows.Next() {
		var req models.Request
		var message sql.NullString
		var startedAt, finishedAt sql.NullTime

		if err := rows.Scan(
			&req.ID, &req.Command, &req.Status, &message, &req.Steps,
			&startedAt, &finishedAt, &req.CreatedAt,
		); err != nil {
			return nil, err
		}

		if message.Valid {
			req.Message = message.String
		}
		if startedAt.Valid {
			req.StartedAt = &startedAt.Time
		}
		if finishedAt.Valid {
			req.FinishedAt = &finishedAt.Time
		}

		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// MarkRunning records that execution has started.
func (s *HistoryService) MarkRunning(id string) error {
	_, err := s.db.Exec(
		"UPDATE requests SET status = ?, started_at = ? WHERE id = ?",
		models.StatusRunning, time.Now(), id,
	)
	return err
}

// RecordSteps updates the executed step count.
func (s *HistoryService) RecordSteps(id string, steps int) error {
	_, err := s.db.Exec("UPDATE requests SET steps = ? WHERE id = ?", steps, id)
	return err
}

// FinishRequest records the final status and message.
func (s *HistoryService) FinishRequest(id string, status models.RequestStatus, message string) error {
	_, err := s.db.Exec(
		"UPDATE requests SET status = ?, message = ?, finished_at = ? WHERE id = ?",
		status, message, time.Now(), id,
	)
	return err
}
