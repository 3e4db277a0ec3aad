// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"slices"

	"gigfin/internal/locale"
	"gigfin/internal/models"
	"gigfin/internal/taxonomy"
)

// Kind tells the router what a path resolved to.
type Kind string

const (
	KindCategory Kind = "category"
	KindArticle  Kind = "article"
)

// Resolution is the routing answer for a localized slug path.
type Resolution struct {
	Kind        Kind              `json:"kind"`
	Locale      locale.Locale     `json:"locale"`
	Category    *models.Category  `json:"category,omitempty"`
	Article     *models.Article   `json:"article,omitempty"`
	Breadcrumbs []taxonomy.Crumb  `json:"breadcrumbs"`
	Segments    []string          `json:"segments"`
	Canonical   string            `json:"canonical"`
	Redirect    bool              `json:"redirect"`
	Alternates  map[string]string `json:"alternates"`
}

// Resolve maps the segments below the locale prefix to a category or an
// article. The full path is tried as a category first; if that fails the
// last segment is tried as an article slug. Articles not published in l
// are not found. For articles, Redirect reports whether the requested
// segments differ from the canonical path for l.
//
// Returns taxonomy.ErrNotFound when nothing matches, or the article
// lookup error when the datastore could not be asked.
func (s *Service) Resolve(ctx context.Context, l locale.Locale, segments []string) (*Resolution, error) {
	ix := s.Index(ctx, l)

	if c, err := ix.Resolve(segments, l); err == nil {
		segs, err := ix.BuildPath(*c, l)
		if err != nil {
			return nil, err
		}
		crumbs, err := ix.Breadcrumbs(*c, l)
		if err != nil {
			return nil, err
		}
		return &Resolution{
			Kind:        KindCategory,
			Locale:      l,
			Category:    c,
			Breadcrumbs: crumbs,
			Segments:    segs,
			Canonical:   taxonomy.URLPath(l, segs...),
			Alternates:  s.CategoryAlternates(ctx, *c),
		}, nil
	}

	var last string
	for i := len(segments) - 1; i >= 0 && last == ""; i-- {
		last = segments[i]
	}
	if last == "" {
		return nil, taxonomy.ErrNotFound
	}

	a, err := s.FindArticle(ctx, last)
	if err != nil {
		return nil, err
	}
	if a == nil || !a.VisibleIn(l) {
		return nil, taxonomy.ErrNotFound
	}

	segs, err := ix.ArticlePath(*a, l)
	if err != nil {
		return nil, err
	}
	res := &Resolution{
		Kind:       KindArticle,
		Locale:     l,
		Article:    a,
		Segments:   segs,
		Canonical:  taxonomy.URLPath(l, segs...),
		Redirect:   !slices.Equal(segs, compact(segments)),
		Alternates: s.ArticleAlternates(ctx, *a),
	}
	if a.CategoryID != nil {
		if c, ok := ix.Get(*a.CategoryID); ok {
			res.Category = c
			if crumbs, err := ix.Breadcrumbs(*c, l); err == nil {
				res.Breadcrumbs = crumbs
			}
		}
	}
	return res, nil
}

// CategoryAlternates returns the category's URL in every site locale,
// keyed by locale tag.
func (s *Service) CategoryAlternates(ctx context.Context, c models.Category) map[string]string {
	out := make(map[string]string, len(s.locales))
	for _, l := range s.locales {
		ix := s.Index(ctx, l)
		cur := c
		if fresh, ok := ix.Get(c.ID); ok {
			cur = *fresh
		}
		if segs, err := ix.BuildPath(cur, l); err == nil {
			out[l.String()] = taxonomy.URLPath(l, segs...)
		}
	}
	return out
}

// ArticleAlternates returns the article's URL in every site locale it is
// published in.
func (s *Service) ArticleAlternates(ctx context.Context, a models.Article) map[string]string {
	out := make(map[string]string, len(s.locales))
	for _, l := range s.locales {
		if !a.VisibleIn(l) {
			continue
		}
		if segs, err := s.Index(ctx, l).ArticlePath(a, l); err == nil {
			out[l.String()] = taxonomy.URLPath(l, segs...)
		}
	}
	return out
}

func compact(segs []string) []string {
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
