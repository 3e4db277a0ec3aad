// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"

	"gigfin/internal/locale"
)

// Article is a published piece of content. Articles without a category are
// served under the default "articles" path.
type Article struct {
	ID              uuid.UUID         `json:"id"`
	CategoryID      *uuid.UUID        `json:"category_id,omitempty"`
	Title           string            `json:"title"`
	TitleEn         string            `json:"title_en,omitempty"`
	TitlePt         string            `json:"title_pt,omitempty"`
	Slug            string            `json:"slug"`
	SlugEn          string            `json:"slug_en,omitempty"`
	SlugPt          string            `json:"slug_pt,omitempty"`
	Excerpt         string            `json:"excerpt,omitempty"`
	MetaDescription string            `json:"meta_description,omitempty"`
	Visibility      locale.Visibility `json:"locale"`
	PublishedAt     *time.Time        `json:"published_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// LocalizedSlug returns the article's path segment for l.
func (a *Article) LocalizedSlug(l locale.Locale) string {
	return localized(l, a.Slug, a.SlugEn, a.SlugPt)
}

// LocalizedTitle returns the article's title for l.
func (a *Article) LocalizedTitle(l locale.Locale) string {
	return localized(l, a.Title, a.TitleEn, a.TitlePt)
}

// HasSlug reports whether s is any of the article's slugs.
func (a *Article) HasSlug(s string) bool {
	return s != "" && (s == a.Slug || s == a.SlugEn || s == a.SlugPt)
}

// VisibleIn reports whether the article is published under l.
func (a *Article) VisibleIn(l locale.Locale) bool {
	return a.Visibility.Includes(l)
}
