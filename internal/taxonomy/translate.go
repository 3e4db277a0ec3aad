// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package taxonomy

import (
	"context"
	"log/slog"

	"gigfin/internal/locale"
	"gigfin/internal/models"
)

// ArticleLookup finds an article by any of its slugs. It returns (nil, nil)
// when no article matches.
type ArticleLookup interface {
	FindArticle(ctx context.Context, slug string) (*models.Article, error)
}

// Translator rewrites a URL path so that it addresses the same content
// under another locale's slugs.
type Translator struct {
	Index    *Index
	Articles ArticleLookup
}

// NewTranslator returns a Translator over ix. articles may be nil, in which
// case every path is treated as a category path.
func NewTranslator(ix *Index, articles ArticleLookup) *Translator {
	return &Translator{Index: ix, Articles: articles}
}

// Translate returns the path for to that corresponds to path in from. The
// locale prefix of path, if present, is dropped and replaced by to.
//
// When the last segment is an article slug the whole path is rebuilt from
// the article's category chain. Otherwise each segment is re-slugged on its
// own: a segment naming a category in from, preferably the child of the
// previous segment's category, becomes that category's slug in to, and
// anything else is kept as is. If the article lookup fails, or the
// article path cannot be built, only the prefix is swapped.
func (t *Translator) Translate(ctx context.Context, path string, from, to locale.Locale) string {
	_, segs, _ := StripLocale(SplitPath(path))
	if len(segs) == 0 {
		return URLPath(to)
	}

	if t.Articles != nil {
		last := segs[len(segs)-1]
		a, err := t.Articles.FindArticle(ctx, last)
		if err != nil {
			slog.Warn("translate path: article lookup failed", "path", path, "error", err)
			return URLPath(to, segs...)
		}
		if a != nil {
			out, err := t.Index.ArticlePath(*a, to)
			if err != nil {
				slog.Warn("translate path: article path failed", "path", path, "article", a.ID, "error", err)
				return URLPath(to, segs...)
			}
			return URLPath(to, out...)
		}
	}

	return URLPath(to, t.Index.reslug(segs, from, to)...)
}

// reslug maps each segment, read as a slug in from, to the slug in to of
// the same category. A segment is looked up among the children of the
// category matched by the previous segment (the roots for the first one);
// only when that fails is any category with the slug taken. Segments that
// match nothing are kept as is.
func (ix *Index) reslug(segs []string, from, to locale.Locale) []string {
	out := make([]string, len(segs))
	copy(out, segs)
	if ix == nil {
		return out
	}

	candidates := ix.roots
	for i, seg := range segs {
		j, ok := ix.slugAmong(candidates, seg, from)
		if !ok {
			j, ok = ix.slugAmong(ix.all(), seg, from)
		}
		if !ok {
			candidates = nil
			continue
		}
		out[i] = ix.nodes[j].LocalizedSlug(to)
		candidates = ix.children[j]
	}
	return out
}

// slugAmong returns the first of idx whose slug for l equals slug.
func (ix *Index) slugAmong(idx []int, slug string, l locale.Locale) (int, bool) {
	for _, i := range idx {
		if ix.nodes[i].LocalizedSlug(l) == slug {
			return i, true
		}
	}
	return 0, false
}

// all returns every arena index in stored order.
func (ix *Index) all() []int {
	idx := make([]int, len(ix.nodes))
	for i := range idx {
		idx[i] = i
	}
	return idx
}
