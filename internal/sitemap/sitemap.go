// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sitemap flattens the category tree and the article list into the
// per-locale URL list behind sitemap.xml, and renders robots.txt.
package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"

	"gigfin/internal/locale"
	"gigfin/internal/models"
	"gigfin/internal/taxonomy"
)

// Assemble builds the URL list for every locale in locales: the locale home
// page, every category (including ones not shown in navigation) and every
// article visible in that locale. Articles without a category are listed
// under /articles. The whole set is built in memory in one pass.
func Assemble(ix *taxonomy.Index, articles []models.Article, locales []locale.Locale, baseURL string, now time.Time) []Item {
	baseURL = strings.TrimRight(baseURL, "/")
	cats := ix.Categories()

	var items []Item
	for _, l := range locales {
		items = append(items, Item{
			URL:          baseURL + taxonomy.URLPath(l),
			LastModified: now,
			ChangeFreq:   ChangeFreqDaily,
			Priority:     1.0,
		})

		for _, c := range cats {
			segs, err := ix.BuildPath(c, l)
			if err != nil {
				slog.Warn("sitemap: skip category", "category", c.ID, "error", err)
				continue
			}
			items = append(items, Item{
				URL:          baseURL + taxonomy.URLPath(l, segs...),
				LastModified: c.UpdatedAt,
				ChangeFreq:   ChangeFreqWeekly,
				Priority:     0.8,
			})
		}

		visible := lo.Filter(articles, func(a models.Article, _ int) bool {
			return a.VisibleIn(l)
		})
		for _, a := range visible {
			segs, err := ix.ArticlePath(a, l)
			if err != nil {
				slog.Warn("sitemap: skip article", "article", a.ID, "error", err)
				continue
			}
			freq, priority := articleFreshness(now.Sub(a.UpdatedAt))
			items = append(items, Item{
				URL:          baseURL + taxonomy.URLPath(l, segs...),
				LastModified: a.UpdatedAt,
				ChangeFreq:   freq,
				Priority:     priority,
			})
		}
	}
	return items
}

// articleFreshness maps time since the last update to a change frequency
// and priority.
func articleFreshness(age time.Duration) (ChangeFrequency, float32) {
	switch {
	case age < 24*time.Hour:
		return ChangeFreqDaily, 0.9
	case age < 7*24*time.Hour:
		return ChangeFreqWeekly, 0.8
	case age < 30*24*time.Hour:
		return ChangeFreqMonthly, 0.7
	default:
		return ChangeFreqYearly, 0.6
	}
}

// Render serializes items as a sitemap XML document.
func Render(items []Item) ([]byte, error) {
	set := URLSet{
		Xmlns: Namespace,
		URLs: lo.Map(items, func(it Item, _ int) URL {
			return it.ToURL()
		}),
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("sitemap encode: %w", err)
	}
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// Robots returns the robots.txt body pointing crawlers at the sitemap.
// The JSON API is not meant for indexing.
func Robots(baseURL string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "Sitemap: %s/sitemap.xml\n", baseURL)
	return b.String()
}
