// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"gigfin/internal/slug"
)

type seedCategory struct {
	key    string
	parent string
	nameEn string
	namePt string
}

type seedArticle struct {
	category string
	titleEn  string
	titlePt  string
	locale   string
}

// seedCategories is listed parents first so parent ids are known on insert.
var seedCategories = []seedCategory{
	{key: "insurance", nameEn: "Insurance", namePt: "Seguros"},
	{key: "taxes", nameEn: "Taxes", namePt: "Impostos"},
	{key: "retirement", nameEn: "Retirement", namePt: "Previdência"},
	{key: "driver-insurance", parent: "insurance", nameEn: "Driver Insurance", namePt: "Seguro para Motoristas"},
	{key: "health-insurance", parent: "insurance", nameEn: "Health Insurance", namePt: "Plano de Saúde"},
	{key: "mei", parent: "taxes", nameEn: "Sole Proprietorship", namePt: "MEI"},
}

var seedArticles = []seedArticle{
	{category: "driver-insurance", titleEn: "Cheap Cover for Ride-Hailing Drivers", titlePt: "Seguro Barato para Motoristas de Aplicativo", locale: "Both"},
	{category: "mei", titlePt: "Como Abrir um MEI em 2026", locale: "pt_BR"},
	{category: "retirement", titleEn: "Retirement Basics for Freelancers", titlePt: "Previdência para Autônomos", locale: "Both"},
	{titleEn: "Budgeting With Irregular Income", locale: "en_US"},
}

// Seed populates the database with a small bilingual category tree and a
// few published articles for development. It does nothing when categories
// already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	ids := make(map[string]string, len(seedCategories))
	for i, c := range seedCategories {
		var parent any
		level := 0
		if c.parent != "" {
			parent = ids[c.parent]
			level = 1
		}
		var id string
		err := tx.QueryRow(`
			INSERT INTO categories (parent_id, name, name_en, name_pt, slug, slug_en, slug_pt, level, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`, parent, c.nameEn, c.nameEn, c.namePt,
			c.key, slug.Generate(c.nameEn), slug.Generate(c.namePt), level, i,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.key, err)
		}
		ids[c.key] = id
	}

	for _, a := range seedArticles {
		var category any
		if a.category != "" {
			category = ids[a.category]
		}
		title := a.titleEn
		if title == "" {
			title = a.titlePt
		}
		_, err := tx.Exec(`
			INSERT INTO articles (category_id, title, title_en, title_pt, slug, slug_en, slug_pt,
			                      locale, status, published_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'published', NOW())
		`, category, title, a.titleEn, a.titlePt,
			slug.Generate(title), slug.Generate(a.titleEn), slug.Generate(a.titlePt), a.locale,
		)
		if err != nil {
			return fmt.Errorf("seed article %q: %w", title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded",
		"categories", len(seedCategories),
		"articles", len(seedArticles),
	)
	return nil
}
