package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/trivia/pkg/models"
)

func (r *SQLiteRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, type FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c models.Category
		var typ sql.NullString
		if err := rows.Scan(&c.ID, &typ); err != nil {
			return nil, err
		}
		c.Type = typ.String
		out = append(out, c)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, type FROM categories WHERE id = ?`, id)
	var c models.Category
	var typ sql.NullString
	if err := row.Scan(&c.ID, &typ); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	c.Type = typ.String
	return &c, nil
}
