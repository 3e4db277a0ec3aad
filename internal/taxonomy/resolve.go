// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package taxonomy

import (
	"gigfin/internal/locale"
	"gigfin/internal/models"
)

// Resolve finds the category addressed by a slug path such as
// ["insurance", "driver-insurance"]. The first segment is matched against
// root categories and each following segment against the children of the
// previous match. When siblings share a slug the first one in stored order
// whose subtree matches the rest of the path wins. Empty segments are
// ignored. Returns ErrNotFound when the path does not match the tree.
func (ix *Index) Resolve(segments []string, l locale.Locale) (*models.Category, error) {
	segs := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			segs = append(segs, s)
		}
	}
	if ix == nil || len(segs) == 0 {
		return nil, ErrNotFound
	}

	i, ok := ix.descend(ix.roots, segs, l)
	if !ok {
		return nil, ErrNotFound
	}
	c := ix.nodes[i]
	return &c, nil
}

func (ix *Index) descend(candidates []int, segs []string, l locale.Locale) (int, bool) {
	for _, i := range candidates {
		if ix.nodes[i].LocalizedSlug(l) != segs[0] {
			continue
		}
		if len(segs) == 1 {
			return i, true
		}
		if j, ok := ix.descend(ix.children[i], segs[1:], l); ok {
			return j, true
		}
	}
	return 0, false
}

// FindBySlug returns the first category in stored order, at any depth,
// whose slug for l equals slug.
func (ix *Index) FindBySlug(slug string, l locale.Locale) (*models.Category, bool) {
	if ix == nil || slug == "" {
		return nil, false
	}
	for i := range ix.nodes {
		if ix.nodes[i].LocalizedSlug(l) == slug {
			c := ix.nodes[i]
			return &c, true
		}
	}
	return nil, false
}
