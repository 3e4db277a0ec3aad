// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// content API. Crawler endpoints sit at the root; the JSON API lives under
// /api behind the rate limiter.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"gigfin/internal/handlers"
	"gigfin/internal/middleware"
)

// Client cache lifetimes for the list endpoints.
const (
	categoriesMaxAge = 5 * time.Minute
	articlesMaxAge   = time.Hour
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. limiter may be nil to disable rate limiting.
func New(api *handlers.API, seo *handlers.SEO, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)
	r.Get("/sitemap.xml", seo.Sitemap)
	r.Get("/robots.txt", seo.Robots)

	r.Route("/api", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}

		r.With(middleware.CacheControl(categoriesMaxAge)).Get("/categories", api.Categories)
		r.Get("/categories/{locale}/*", api.Category)

		r.With(middleware.CacheControl(articlesMaxAge)).Get("/articles", api.Articles)
		r.Get("/articles/{slug}", api.Article)

		r.Get("/resolve/{locale}/*", api.Resolve)
		r.Get("/translate", api.Translate)
		r.Get("/menu/{locale}", api.Menu)
		r.Get("/breadcrumbs/{locale}/*", api.Breadcrumbs)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
