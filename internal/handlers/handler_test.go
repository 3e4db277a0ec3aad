// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for the handler
// tests: an in-memory content source and a chi router wired like the
// production one.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"gigfin/internal/catalog"
	"gigfin/internal/locale"
	"gigfin/internal/models"
)

func id(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name))
}

func ptr(u uuid.UUID) *uuid.UUID { return &u }

// memorySource is an in-memory catalog.Source.
type memorySource struct {
	mu         sync.Mutex
	categories []models.Category
	articles   []models.Article
	err        error
}

func (m *memorySource) ListCategories(context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.categories, m.err
}

func (m *memorySource) ListArticles(context.Context) ([]models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.articles, m.err
}

func (m *memorySource) FindArticleBySlug(_ context.Context, slug string) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.articles {
		if m.articles[i].HasSlug(slug) {
			a := m.articles[i]
			return &a, nil
		}
	}
	return nil, nil
}

var updated = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

// sampleSource holds a small bilingual tree:
//
//	insurance (seguros)
//	  health-insurance (plano-de-saude)  sort 1
//	  driver-insurance (seguro-motorista) sort 2
//	taxes (impostos)
func sampleSource() *memorySource {
	return &memorySource{
		categories: []models.Category{
			{ID: id("insurance"), Name: "Insurance", NamePt: "Seguros", Slug: "insurance", SlugPt: "seguros", SortOrder: 1, UpdatedAt: updated},
			{ID: id("taxes"), Name: "Taxes", NamePt: "Impostos", Slug: "taxes", SlugPt: "impostos", SortOrder: 2, UpdatedAt: updated},
			{ID: id("driver"), ParentID: ptr(id("insurance")), Name: "Driver Insurance", NamePt: "Seguro para Motoristas", Slug: "driver-insurance", SlugPt: "seguro-motorista", Level: 1, SortOrder: 2, UpdatedAt: updated},
			{ID: id("health"), ParentID: ptr(id("insurance")), Name: "Health Insurance", NamePt: "Plano de Saúde", Slug: "health-insurance", SlugPt: "plano-de-saude", Level: 1, SortOrder: 1, UpdatedAt: updated},
		},
		articles: []models.Article{
			{ID: id("cheap"), CategoryID: ptr(id("driver")), Title: "Cheap Cover", TitlePt: "Seguro Barato", Slug: "cheap-cover", SlugPt: "seguro-barato", Excerpt: "Compare **three** quotes", Visibility: locale.Both, UpdatedAt: updated},
			{ID: id("mei"), CategoryID: ptr(id("taxes")), Title: "Guia do MEI", Slug: "guia-mei", Visibility: locale.PTOnly, UpdatedAt: updated},
			{ID: id("budget"), Title: "Budgeting", Slug: "budgeting", Visibility: locale.ENOnly, UpdatedAt: updated},
		},
	}
}

// newTestAPI returns a router with the API and SEO routes over src.
func newTestAPI(t *testing.T, src catalog.Source) http.Handler {
	t.Helper()
	svc := catalog.New(src, catalog.Options{})
	api := NewAPI(svc, locale.PTBR)
	seo := NewSEO(svc, nil, "https://example.com")
	seo.now = func() time.Time { return updated.Add(24 * time.Hour) }

	r := chi.NewRouter()
	r.Get("/sitemap.xml", seo.Sitemap)
	r.Get("/robots.txt", seo.Robots)
	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", api.Categories)
		r.Get("/categories/{locale}/*", api.Category)
		r.Get("/articles", api.Articles)
		r.Get("/articles/{slug}", api.Article)
		r.Get("/resolve/{locale}/*", api.Resolve)
		r.Get("/translate", api.Translate)
		r.Get("/menu/{locale}", api.Menu)
		r.Get("/breadcrumbs/{locale}/*", api.Breadcrumbs)
	})
	return r
}

// get performs a GET and returns the recorder.
func get(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// decode unmarshals a JSON response body into v.
func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
}

// expectStatus fails the test when the status code differs.
func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status: got %d, want %d (body %s)", rr.Code, want, rr.Body.String())
	}
}
