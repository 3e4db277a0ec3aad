// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"gigfin/internal/models"
	"gigfin/internal/slug"
)

// CategoryStore reads categories from the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, parent_id, name, name_en, name_pt, slug, slug_en, slug_pt,
	description, meta_title, meta_description, level, sort_order, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.ParentID, &c.Name, &c.NameEn, &c.NamePt,
		&c.Slug, &c.SlugEn, &c.SlugPt,
		&c.Description, &c.MetaTitle, &c.MetaDescription,
		&c.Level, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns every category as a flat list ordered by sort_order, then
// name. This order is the "stored order" slug resolution relies on to
// break ties between siblings.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+categoryColumns+`
		FROM categories
		ORDER BY sort_order, name, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if !slug.Valid(c.Slug) {
			slog.Warn("category slug is not canonical", "id", c.ID, "slug", c.Slug)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}
