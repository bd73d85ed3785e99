package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"shareit/internal/models"

	"github.com/jmoiron/sqlx"
)

const itemColumns = `id, name, description, available, owner_id, request_id`

func (db *DB) CreateItem(ctx context.Context, item *models.Item) error {
	query := `INSERT INTO items (name, description, available, owner_id, request_id)
              VALUES (:name, :description, :available, :owner_id, :request_id)`
	result, err := db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = id
	return nil
}

func (db *DB) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item
	err := db.GetContext(ctx, &item, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

func (db *DB) UpdateItem(ctx context.Context, item *models.Item) error {
	query := `UPDATE items SET name = :name, description = :description, available = :available,
              request_id = :request_id WHERE id = :id`
	result, err := db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return affectedOne(result, "update item")
}

func (db *DB) ListItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error) {
	items := []*models.Item{}
	err := db.SelectContext(ctx, &items, `SELECT `+itemColumns+` FROM items WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by owner: %w", err)
	}
	return items, nil
}

// SearchAvailableItems matches text case-insensitively against name or
// description of available items. Blank text matches nothing.
func (db *DB) SearchAvailableItems(ctx context.Context, text string) ([]*models.Item, error) {
	items := []*models.Item{}
	if strings.TrimSpace(text) == "" {
		return items, nil
	}

	pattern := "%" + escapeLike(strings.ToLower(text)) + "%"
	query := `SELECT ` + itemColumns + ` FROM items
              WHERE available = 1
              AND (ulower(name) LIKE ? ESCAPE '\' OR ulower(description) LIKE ? ESCAPE '\')
              ORDER BY id`
	if err := db.SelectContext(ctx, &items, query, pattern, pattern); err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	return items, nil
}

func (db *DB) ListItemsByRequestIDs(ctx context.Context, requestIDs []int64) ([]*models.Item, error) {
	items := []*models.Item{}
	if len(requestIDs) == 0 {
		return items, nil
	}

	query, args, err := sqlx.In(`SELECT `+itemColumns+` FROM items WHERE request_id IN (?) ORDER BY id`, requestIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build request items query: %w", err)
	}
	if err := db.SelectContext(ctx, &items, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list items by request: %w", err)
	}
	return items, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
