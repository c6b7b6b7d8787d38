package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tmuir/focusdo/internal/model"
)

// CreateCategory inserts a new category. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateCategory(ctx context.Context, c model.Category) (model.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return model.Category{}, fmt.Errorf("category name must not be empty")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (id, name, color, created_at) VALUES (?, ?, ?, ?)",
		c.ID, c.Name, c.Color, c.CreatedAt,
	)
	if err != nil {
		return model.Category{}, fmt.Errorf("creating category: %w", err)
	}
	return c, nil
}

// DeleteCategory removes a category by ID. Tasks in it fall back to
// having no category.
func (s *SQLiteStore) DeleteCategory(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting category %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetCategories retrieves all categories ordered by name.
func (s *SQLiteStore) GetCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT * FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
