// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"gigfin/internal/locale"
	"gigfin/internal/models"
)

// ArticleStore reads published articles from the database.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

const articleColumns = `id, category_id, title, title_en, title_pt, slug, slug_en, slug_pt,
	excerpt, meta_description, locale, published_at, created_at, updated_at`

// publishedFilter restricts queries to articles readers may see.
const publishedFilter = `status = 'published' AND (published_at IS NULL OR published_at <= NOW())`

// errSkipArticle marks a row whose stored locale could not be normalized.
var errSkipArticle = errors.New("article has unknown locale")

// scanArticle scans a row and normalizes the stored locale text into a
// Visibility. Unknown values return errSkipArticle.
func scanArticle(scanner interface{ Scan(...any) error }) (*models.Article, error) {
	var a models.Article
	var vis string
	err := scanner.Scan(
		&a.ID, &a.CategoryID, &a.Title, &a.TitleEn, &a.TitlePt,
		&a.Slug, &a.SlugEn, &a.SlugPt,
		&a.Excerpt, &a.MetaDescription, &vis,
		&a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Visibility, err = locale.ParseVisibility(vis)
	if err != nil {
		slog.Warn("skipping article", "id", a.ID, "locale", vis, "error", err)
		return nil, errSkipArticle
	}
	return &a, nil
}

// ListPublished returns all published articles, newest first.
func (s *ArticleStore) ListPublished(ctx context.Context) ([]models.Article, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+articleColumns+`
		FROM articles
		WHERE `+publishedFilter+`
		ORDER BY published_at DESC NULLS LAST, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var items []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if errors.Is(err, errSkipArticle) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// FindBySlug retrieves a published article whose default, English or
// Portuguese slug equals slug. Returns nil if not found.
func (s *ArticleStore) FindBySlug(ctx context.Context, slug string) (*models.Article, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+articleColumns+`
		FROM articles
		WHERE (slug = $1 OR slug_en = $1 OR slug_pt = $1) AND `+publishedFilter+`
		ORDER BY (slug = $1) DESC, published_at DESC NULLS LAST
		LIMIT 1`, slug)
	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, errSkipArticle) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by slug: %w", err)
	}
	return a, nil
}
