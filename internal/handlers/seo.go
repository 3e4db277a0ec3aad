// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"gigfin/internal/cache"
	"gigfin/internal/catalog"
	"gigfin/internal/sitemap"
)

// SEO serves the crawler endpoints. Rendered bodies are kept in the
// Valkey response cache; without Valkey they are rebuilt per request.
type SEO struct {
	catalog   *catalog.Service
	responses *cache.ResponseCache
	siteURL   string
	now       func() time.Time
}

// NewSEO creates the crawler handlers. responses may be nil.
func NewSEO(svc *catalog.Service, responses *cache.ResponseCache, siteURL string) *SEO {
	return &SEO{
		catalog:   svc,
		responses: responses,
		siteURL:   siteURL,
		now:       time.Now,
	}
}

// Sitemap serves sitemap.xml covering every site locale.
func (s *SEO) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if body, ok := s.responses.Get(ctx, cache.SitemapKey); ok {
		writeBody(w, "application/xml; charset=utf-8", "HIT", body)
		return
	}

	locales := s.catalog.Locales()
	ix := s.catalog.Index(ctx, locales[0])
	items := sitemap.Assemble(ix, s.catalog.Articles(ctx), locales, s.siteURL, s.now())

	body, err := sitemap.Render(items)
	if err != nil {
		slog.Error("render sitemap", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.responses.Set(ctx, cache.SitemapKey, body)
	writeBody(w, "application/xml; charset=utf-8", "MISS", body)
}

// Robots serves robots.txt.
func (s *SEO) Robots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if body, ok := s.responses.Get(ctx, cache.RobotsKey); ok {
		writeBody(w, "text/plain; charset=utf-8", "HIT", body)
		return
	}

	body := []byte(sitemap.Robots(s.siteURL))
	s.responses.Set(ctx, cache.RobotsKey, body)
	writeBody(w, "text/plain; charset=utf-8", "MISS", body)
}

func writeBody(w http.ResponseWriter, contentType, cacheStatus string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
