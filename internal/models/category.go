// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"

	"gigfin/internal/locale"
)

// Category is a node in the site taxonomy. Categories form a tree through
// ParentID; each one carries a per-locale slug used to build URL paths.
type Category struct {
	ID              uuid.UUID  `json:"id"`
	ParentID        *uuid.UUID `json:"parent_id"`
	Name            string     `json:"name"`
	NameEn          string     `json:"name_en,omitempty"`
	NamePt          string     `json:"name_pt,omitempty"`
	Slug            string     `json:"slug"`
	SlugEn          string     `json:"slug_en,omitempty"`
	SlugPt          string     `json:"slug_pt,omitempty"`
	Description     string     `json:"description"`
	MetaTitle       string     `json:"meta_title,omitempty"`
	MetaDescription string     `json:"meta_description,omitempty"`

	// Level is a display hint only; depth is derived from ParentID.
	Level     int       `json:"level"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocalizedSlug returns the path segment for l: the locale override when
// set, otherwise the default slug.
func (c *Category) LocalizedSlug(l locale.Locale) string {
	return localized(l, c.Slug, c.SlugEn, c.SlugPt)
}

// LocalizedName applies the same fallback rule to the display name.
func (c *Category) LocalizedName(l locale.Locale) string {
	return localized(l, c.Name, c.NameEn, c.NamePt)
}

// localized picks pt or en when non-empty for the matching locale.
func localized(l locale.Locale, def, en, pt string) string {
	switch l {
	case locale.PTBR:
		if pt != "" {
			return pt
		}
	case locale.ENUS:
		if en != "" {
			return en
		}
	}
	return def
}
