// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"

	"gigfin/internal/taxonomy"
)

// Validation limits for request paths and parameters. Slug lengths match
// the database columns.
const (
	maxSlugLen     = 300
	maxPathDepth   = 16
	maxPathLen     = 2_000
	maxLocaleParam = 16
)

// validateSlug checks a single slug parameter and returns the first error
// found, or "" when it is acceptable.
func validateSlug(s string) string {
	if strings.TrimSpace(s) == "" {
		return "slug is required"
	}
	if utf8.RuneCountInString(s) > maxSlugLen {
		return "slug is too long (max 300 characters)"
	}
	if strings.ContainsAny(s, "/?#") {
		return "slug must be a single path segment"
	}
	return ""
}

// validateSegments checks a slug path below the locale prefix.
func validateSegments(segs []string) string {
	if len(segs) > maxPathDepth {
		return "path is too deep (max 16 segments)"
	}
	for _, s := range segs {
		if utf8.RuneCountInString(s) > maxSlugLen {
			return "path segment is too long (max 300 characters)"
		}
	}
	return ""
}

// validatePath checks a full site path given to the translate endpoint.
func validatePath(p string) string {
	if strings.TrimSpace(p) == "" {
		return "path is required"
	}
	if !strings.HasPrefix(p, "/") {
		return "path must start with /"
	}
	if len(p) > maxPathLen {
		return "path is too long (max 2,000 bytes)"
	}
	return validateSegments(taxonomy.SplitPath(p))
}
