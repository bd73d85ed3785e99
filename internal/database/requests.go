package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shareit/internal/models"
)

const requestColumns = `id, description, requestor_id, created`

func (db *DB) CreateRequest(ctx context.Context, request *models.ItemRequest) error {
	result, err := db.ExecContext(ctx,
		`INSERT INTO requests (description, requestor_id, created) VALUES (?, ?, ?)`,
		request.Description, request.RequestorID, utc(request.Created))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	request.ID = id
	return nil
}

func (db *DB) GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error) {
	var request models.ItemRequest
	err := db.GetContext(ctx, &request, `SELECT `+requestColumns+` FROM requests WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return &request, nil
}

func (db *DB) ListRequestsByRequestor(ctx context.Context, requestorID int64) ([]*models.ItemRequest, error) {
	requests := []*models.ItemRequest{}
	query := `SELECT ` + requestColumns + ` FROM requests WHERE requestor_id = ? ORDER BY created DESC, id DESC`
	if err := db.SelectContext(ctx, &requests, query, requestorID); err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

// ListRequests returns every request, newest first.
func (db *DB) ListRequests(ctx context.Context) ([]*models.ItemRequest, error) {
	requests := []*models.ItemRequest{}
	query := `SELECT ` + requestColumns + ` FROM requests ORDER BY created DESC, id DESC`
	if err := db.SelectContext(ctx, &requests, query); err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}
