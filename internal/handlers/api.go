// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON content API and the crawler
// endpoints (sitemap.xml, robots.txt) on top of the catalog snapshots.
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"gigfin/internal/catalog"
	"gigfin/internal/locale"
	"gigfin/internal/markdown"
	"gigfin/internal/models"
	"gigfin/internal/taxonomy"
)

// API groups the read-only JSON endpoints used by the site frontend.
type API struct {
	catalog *catalog.Service
	locales localeResolver
}

// NewAPI creates the API handlers. def is the locale used when a request
// names none and Accept-Language does not match.
func NewAPI(svc *catalog.Service, def locale.Locale) *API {
	return &API{
		catalog: svc,
		locales: localeResolver{locales: svc.Locales(), fallback: def},
	}
}

// CategoryView is a category as seen from one locale.
type CategoryView struct {
	ID              uuid.UUID  `json:"id"`
	ParentID        *uuid.UUID `json:"parent_id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	Path            string     `json:"path"`
	Description     string     `json:"description"`
	DescriptionHTML string     `json:"description_html,omitempty"`
	MetaTitle       string     `json:"meta_title,omitempty"`
	MetaDescription string     `json:"meta_description,omitempty"`
	Level           int        `json:"level"`
	SortOrder       int        `json:"sort_order"`
}

// ArticleView is an article as seen from one locale.
type ArticleView struct {
	ID              uuid.UUID         `json:"id"`
	CategoryID      *uuid.UUID        `json:"category_id,omitempty"`
	Title           string            `json:"title"`
	Slug            string            `json:"slug"`
	Path            string            `json:"path"`
	Excerpt         string            `json:"excerpt,omitempty"`
	ExcerptHTML     string            `json:"excerpt_html,omitempty"`
	MetaDescription string            `json:"meta_description,omitempty"`
	Visibility      locale.Visibility `json:"locale"`
	PublishedAt     *time.Time        `json:"published_at,omitempty"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func categoryView(ix *taxonomy.Index, c models.Category, l locale.Locale) (CategoryView, error) {
	segs, err := ix.BuildPath(c, l)
	if err != nil {
		return CategoryView{}, err
	}
	return CategoryView{
		ID:              c.ID,
		ParentID:        c.ParentID,
		Name:            c.LocalizedName(l),
		Slug:            c.LocalizedSlug(l),
		Path:            taxonomy.URLPath(l, segs...),
		Description:     c.Description,
		DescriptionHTML: renderMarkdown(c.Description, "category", c.ID),
		MetaTitle:       c.MetaTitle,
		MetaDescription: c.MetaDescription,
		Level:           c.Level,
		SortOrder:       c.SortOrder,
	}, nil
}

func articleView(ix *taxonomy.Index, a models.Article, l locale.Locale) (ArticleView, error) {
	segs, err := ix.ArticlePath(a, l)
	if err != nil {
		return ArticleView{}, err
	}
	return ArticleView{
		ID:              a.ID,
		CategoryID:      a.CategoryID,
		Title:           a.LocalizedTitle(l),
		Slug:            a.LocalizedSlug(l),
		Path:            taxonomy.URLPath(l, segs...),
		Excerpt:         a.Excerpt,
		ExcerptHTML:     renderMarkdown(a.Excerpt, "article", a.ID),
		MetaDescription: a.MetaDescription,
		Visibility:      a.Visibility,
		PublishedAt:     a.PublishedAt,
		UpdatedAt:       a.UpdatedAt,
	}, nil
}

// renderMarkdown converts src for a view. Conversion failures are logged
// and leave the HTML field empty; the raw text is still returned.
func renderMarkdown(src, kind string, id uuid.UUID) string {
	out, err := markdown.ToHTML(src)
	if err != nil {
		slog.Warn("markdown render failed", kind, id, "error", err)
		return ""
	}
	return out
}

// Categories lists every category with its localized path.
// GET /api/categories?locale=
func (a *API) Categories(w http.ResponseWriter, r *http.Request) {
	l, err := a.locales.fromQuery(r, "locale")
	if err != nil {
		fail(w, r, err)
		return
	}

	ix := a.catalog.Index(r.Context(), l)
	views := make([]CategoryView, 0, ix.Len())
	for _, c := range ix.Categories() {
		v, err := categoryView(ix, c, l)
		if err != nil {
			slog.Warn("skip category", "category", c.ID, "error", err)
			continue
		}
		views = append(views, v)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"locale":     l,
		"categories": views,
	})
}

// Category resolves a localized slug path to a category.
// GET /api/categories/{locale}/*
func (a *API) Category(w http.ResponseWriter, r *http.Request) {
	l, err := a.locales.fromPath(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	segs := wildcardSegments(r)
	if msg := validateSegments(segs); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	ix := a.catalog.Index(ctx, l)
	c, err := ix.Resolve(segs, l)
	if err != nil {
		fail(w, r, err)
		return
	}
	view, err := categoryView(ix, *c, l)
	if err != nil {
		fail(w, r, err)
		return
	}
	crumbs, err := ix.Breadcrumbs(*c, l)
	if err != nil {
		fail(w, r, err)
		return
	}
	children, err := ix.BuildMenuSections(c.ID, l)
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"category":    view,
		"breadcrumbs": crumbs,
		"children":    children,
		"alternates":  a.catalog.CategoryAlternates(ctx, *c),
	})
}

// Articles lists the articles published in a locale, optionally limited
// to one category (by localized slug) and its descendants.
// GET /api/articles?locale=&category=
func (a *API) Articles(w http.ResponseWriter, r *http.Request) {
	l, err := a.locales.fromQuery(r, "locale")
	if err != nil {
		fail(w, r, err)
		return
	}

	ctx := r.Context()
	ix := a.catalog.Index(ctx, l)
	list := lo.Filter(a.catalog.Articles(ctx), func(art models.Article, _ int) bool {
		return art.VisibleIn(l)
	})

	if q := r.URL.Query().Get("category"); q != "" {
		if msg := validateSlug(q); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		c, ok := ix.FindBySlug(q, l)
		if !ok {
			fail(w, r, taxonomy.ErrNotFound)
			return
		}
		subtree := subtreeIDs(ix, c.ID)
		list = lo.Filter(list, func(art models.Article, _ int) bool {
			return art.CategoryID != nil && subtree[*art.CategoryID]
		})
	}

	views := make([]ArticleView, 0, len(list))
	for _, art := range list {
		v, err := articleView(ix, art, l)
		if err != nil {
			slog.Warn("skip article", "article", art.ID, "error", err)
			continue
		}
		views = append(views, v)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"locale":   l,
		"articles": views,
	})
}

// subtreeIDs returns id and every category below it.
func subtreeIDs(ix *taxonomy.Index, id uuid.UUID) map[uuid.UUID]bool {
	out := map[uuid.UUID]bool{id: true}
	queue := []uuid.UUID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range ix.Children(cur) {
			if !out[child.ID] {
				out[child.ID] = true
				queue = append(queue, child.ID)
			}
		}
	}
	return out
}

// Article returns one article by any of its slugs, as seen from the
// requested locale. Articles not published in that locale are not found.
// GET /api/articles/{slug}?locale=
func (a *API) Article(w http.ResponseWriter, r *http.Request) {
	l, err := a.locales.fromQuery(r, "locale")
	if err != nil {
		fail(w, r, err)
		return
	}
	slugParam := chi.URLParam(r, "slug")
	if msg := validateSlug(slugParam); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	art, err := a.catalog.FindArticle(ctx, slugParam)
	if err != nil {
		fail(w, r, err)
		return
	}
	if art == nil || !art.VisibleIn(l) {
		fail(w, r, taxonomy.ErrNotFound)
		return
	}

	ix := a.catalog.Index(ctx, l)
	view, err := articleView(ix, *art, l)
	if err != nil {
		fail(w, r, err)
		return
	}
	crumbs := []taxonomy.Crumb{}
	if art.CategoryID != nil {
		if c, ok := ix.Get(*art.CategoryID); ok {
			if cs, err := ix.Breadcrumbs(*c, l); err == nil {
				crumbs = cs
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"article":     view,
		"breadcrumbs": crumbs,
		"alternates":  a.catalog.ArticleAlternates(ctx, *art),
	})
}

// Resolve answers what a localized path points at: a category or an
// article, with its canonical path and whether the caller should redirect.
// GET /api/resolve/{locale}/*
func (a *API) Resolve(w http.ResponseWriter, r *http.Request) {
	l, err := a.locales.fromPath(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	segs := wildcardSegments(r)
	if msg := validateSegments(segs); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := a.catalog.Resolve(r.Context(), l, segs)
	if err != nil {
		fail(w, r, err)
		return
	}
	if res.Breadcrumbs == nil {
		res.Breadcrumbs = []taxonomy.Crumb{}
	}
	writeJSON(w, http.StatusOK, res)
}

// Translate maps a site path to the equivalent path in another locale.
// The source locale comes from the path prefix, then the from parameter,
// then the default locale.
// GET /api/translate?path=&to=
func (a *API) Translate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	path := q.Get("path")
	if msg := validatePath(path); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	to, err := a.locales.parse(q.Get("to"))
	if err != nil {
		fail(w, r, err)
		return
	}

	from := a.locales.fallback
	if prefix, _, ok := taxonomy.StripLocale(taxonomy.SplitPath(path)); ok {
		from = prefix
	} else if f := q.Get("from"); f != "" {
		if from, err = a.locales.parse(f); err != nil {
			fail(w, r, err)
			return
		}
	}

	ctx := r.Context()
	translated := a.catalog.Translator(ctx, from).Translate(ctx, path, from, to)

	writeJSON(w, http.StatusOK, map[string]any{
		"path":       path,
		"from":       from,
		"to":         to,
		"translated": translated,
	})
}

// Menu returns the navigation tree for a locale. With root (a category
// slug or id) only the sections below that category are returned.
// GET /api/menu/{locale}?root=
func (a *API) Menu(w http.ResponseWriter, r *http.Request) {
	l, err := a.locales.fromPath(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	ix := a.catalog.Index(r.Context(), l)

	var items []taxonomy.MenuNode
	if root := r.URL.Query().Get("root"); root != "" {
		if msg := validateSlug(root); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		rootID, ok := menuRoot(ix, root, l)
		if !ok {
			fail(w, r, taxonomy.ErrNotFound)
			return
		}
		items, err = ix.BuildMenuSections(rootID, l)
	} else {
		items, err = ix.BuildMenu(l)
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	if items == nil {
		items = []taxonomy.MenuNode{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"locale": l,
		"items":  items,
	})
}

// menuRoot finds the menu root by id or localized slug.
func menuRoot(ix *taxonomy.Index, root string, l locale.Locale) (uuid.UUID, bool) {
	if id, err := uuid.Parse(root); err == nil {
		if _, ok := ix.Get(id); ok {
			return id, true
		}
	}
	c, ok := ix.FindBySlug(root, l)
	if !ok {
		return uuid.Nil, false
	}
	return c.ID, true
}

// Breadcrumbs returns the breadcrumb trail for a category or article path.
// GET /api/breadcrumbs/{locale}/*
func (a *API) Breadcrumbs(w http.ResponseWriter, r *http.Request) {
	l, err := a.locales.fromPath(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	segs := wildcardSegments(r)
	if msg := validateSegments(segs); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := a.catalog.Resolve(r.Context(), l, segs)
	if err != nil {
		fail(w, r, err)
		return
	}
	crumbs := res.Breadcrumbs
	if crumbs == nil {
		crumbs = []taxonomy.Crumb{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"locale":      l,
		"kind":        res.Kind,
		"canonical":   res.Canonical,
		"breadcrumbs": crumbs,
	})
}
