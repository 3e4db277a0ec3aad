// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package taxonomy

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"gigfin/internal/locale"
	"gigfin/internal/models"
)

// ArticlesSegment is the path used for articles that have no category.
const ArticlesSegment = "articles"

// Crumb is one step of a breadcrumb trail.
type Crumb struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
	Path string    `json:"path"`
}

// chain returns c and its ancestors, root first. The walk stops quietly at
// a parent that is not in the index, so callers get the suffix of the real
// chain starting at the orphaned node.
func (ix *Index) chain(c models.Category) ([]models.Category, error) {
	out := []models.Category{c}
	seen := map[uuid.UUID]struct{}{c.ID: {}}

	parent := c.ParentID
	for parent != nil && ix != nil {
		i, ok := ix.byID[*parent]
		if !ok {
			break
		}
		p := ix.nodes[i]
		if _, loop := seen[p.ID]; loop {
			return nil, fmt.Errorf("%w: category %s", ErrCyclicCategoryGraph, p.ID)
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
		parent = p.ParentID
	}

	slices.Reverse(out)
	return out, nil
}

// BuildPath returns the localized slugs from the root ancestor down to c.
// A missing ancestor yields a shorter path rather than an error.
func (ix *Index) BuildPath(c models.Category, l locale.Locale) ([]string, error) {
	cats, err := ix.chain(c)
	if err != nil {
		return nil, err
	}
	segs := make([]string, len(cats))
	for i := range cats {
		segs[i] = cats[i].LocalizedSlug(l)
	}
	return segs, nil
}

// Breadcrumbs returns one crumb per category from the root down to c, each
// with its full localized URL path.
func (ix *Index) Breadcrumbs(c models.Category, l locale.Locale) ([]Crumb, error) {
	cats, err := ix.chain(c)
	if err != nil {
		return nil, err
	}
	crumbs := make([]Crumb, len(cats))
	segs := make([]string, 0, len(cats))
	for i := range cats {
		slug := cats[i].LocalizedSlug(l)
		segs = append(segs, slug)
		crumbs[i] = Crumb{
			ID:   cats[i].ID,
			Name: cats[i].LocalizedName(l),
			Slug: slug,
			Path: URLPath(l, segs...),
		}
	}
	return crumbs, nil
}

// ArticlePath returns the localized segments for an article: its category
// chain followed by its own slug, or "articles/<slug>" when the article has
// no category or the category is not in the index.
func (ix *Index) ArticlePath(a models.Article, l locale.Locale) ([]string, error) {
	slug := a.LocalizedSlug(l)
	if a.CategoryID == nil {
		return []string{ArticlesSegment, slug}, nil
	}
	c, ok := ix.Get(*a.CategoryID)
	if !ok {
		return []string{ArticlesSegment, slug}, nil
	}
	segs, err := ix.BuildPath(*c, l)
	if err != nil {
		return nil, err
	}
	return append(segs, slug), nil
}

// URLPath joins segments under the locale prefix: "/pt-BR/a/b".
func URLPath(l locale.Locale, segs ...string) string {
	var b strings.Builder
	b.WriteString("/")
	b.WriteString(l.String())
	for _, s := range segs {
		if s == "" {
			continue
		}
		b.WriteString("/")
		b.WriteString(s)
	}
	return b.String()
}

// SplitPath breaks a URL path into its non-empty segments.
func SplitPath(p string) []string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
}

// localePrefix reports whether seg is a locale URL prefix ("pt-BR",
// "en_US", any case) and which locale it names.
func localePrefix(seg string) (locale.Locale, bool) {
	norm := strings.ReplaceAll(seg, "_", "-")
	for _, l := range locale.All() {
		if strings.EqualFold(norm, l.String()) {
			return l, true
		}
	}
	return "", false
}

// StripLocale removes a leading locale prefix from segs, returning the
// prefix locale when one was present.
func StripLocale(segs []string) (locale.Locale, []string, bool) {
	if len(segs) == 0 {
		return "", segs, false
	}
	l, ok := localePrefix(segs[0])
	if !ok {
		return "", segs, false
	}
	return l, segs[1:], true
}
