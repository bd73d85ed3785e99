package database

import (
	"context"
	"fmt"

	"shareit/internal/models"
)

func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) error {
	result, err := db.ExecContext(ctx,
		`INSERT INTO comments (text, item_id, author_id, created) VALUES (?, ?, ?, ?)`,
		comment.Text, comment.ItemID, comment.AuthorID, utc(comment.Created))
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	comment.ID = id
	return nil
}

// ListCommentsByItem returns comments oldest first with the author's current name.
func (db *DB) ListCommentsByItem(ctx context.Context, itemID int64) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	query := `SELECT c.id, c.text, c.item_id, c.author_id, COALESCE(u.name, '') AS author_name, c.created
              FROM comments c
              LEFT JOIN users u ON u.id = c.author_id
              WHERE c.item_id = ?
              ORDER BY c.created, c.id`
	if err := db.SelectContext(ctx, &comments, query, itemID); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
