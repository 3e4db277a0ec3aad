// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"gigfin/internal/database"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "gigfin")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "gigfin")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// uniqueSlug returns a slug that will not collide with seed data or other
// test runs sharing the database.
func uniqueSlug(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// insertCategory inserts a category and registers its removal.
func insertCategory(t *testing.T, db *sql.DB, parent *uuid.UUID, slug, slugPt string, order int) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := db.QueryRow(`
		INSERT INTO categories (parent_id, name, slug, slug_pt, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, parent, slug, slug, slugPt, order).Scan(&id)
	if err != nil {
		t.Fatalf("insert category %s: %v", slug, err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM categories WHERE id = $1", id) })
	return id
}

// insertArticle inserts an article and registers its removal.
func insertArticle(t *testing.T, db *sql.DB, category *uuid.UUID, slug, slugPt, loc, status string) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := db.QueryRow(`
		INSERT INTO articles (category_id, title, slug, slug_pt, locale, status, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW() - INTERVAL '1 minute')
		RETURNING id
	`, category, slug, slug, slugPt, loc, status).Scan(&id)
	if err != nil {
		t.Fatalf("insert article %s: %v", slug, err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM articles WHERE id = $1", id) })
	return id
}
