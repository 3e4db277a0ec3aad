// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store holds the PostgreSQL read stores. Content is written by
// the editorial CMS; this service only reads it.
package store

import (
	"context"
	"database/sql"

	"gigfin/internal/models"
)

// Content combines the category and article stores into the single
// source the catalog loads snapshots from.
type Content struct {
	Categories *CategoryStore
	Articles   *ArticleStore
}

// NewContent creates both stores over db.
func NewContent(db *sql.DB) *Content {
	return &Content{
		Categories: NewCategoryStore(db),
		Articles:   NewArticleStore(db),
	}
}

func (c *Content) ListCategories(ctx context.Context) ([]models.Category, error) {
	return c.Categories.List(ctx)
}

func (c *Content) ListArticles(ctx context.Context) ([]models.Article, error) {
	return c.Articles.ListPublished(ctx)
}

func (c *Content) FindArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return c.Articles.FindBySlug(ctx, slug)
}
