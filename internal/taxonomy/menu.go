// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package taxonomy

import (
	"cmp"
	"slices"

	"github.com/google/uuid"

	"gigfin/internal/locale"
)

// MenuNode is one entry of a navigation tree.
type MenuNode struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	Path     string     `json:"path"`
	Children []MenuNode `json:"children,omitempty"`
}

// BuildMenuSections returns the subtree below rootID as menu sections: one
// node per child of the root, each carrying its own children. Siblings are
// ordered by SortOrder; equal values keep stored order.
func (ix *Index) BuildMenuSections(rootID uuid.UUID, l locale.Locale) ([]MenuNode, error) {
	if ix == nil {
		return nil, ErrNotFound
	}
	i, ok := ix.byID[rootID]
	if !ok {
		return nil, ErrNotFound
	}
	return ix.menuLevel(ix.children[i], l)
}

// BuildMenu returns the full navigation tree starting at the roots.
func (ix *Index) BuildMenu(l locale.Locale) ([]MenuNode, error) {
	if ix == nil {
		return nil, nil
	}
	return ix.menuLevel(ix.roots, l)
}

func (ix *Index) menuLevel(idx []int, l locale.Locale) ([]MenuNode, error) {
	sorted := ix.sortSiblings(idx)
	nodes := make([]MenuNode, 0, len(sorted))
	for _, i := range sorted {
		c := ix.nodes[i]
		segs, err := ix.BuildPath(c, l)
		if err != nil {
			return nil, err
		}
		children, err := ix.menuLevel(ix.children[i], l)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, MenuNode{
			ID:       c.ID,
			Name:     c.LocalizedName(l),
			Slug:     c.LocalizedSlug(l),
			Path:     URLPath(l, segs...),
			Children: children,
		})
	}
	return nodes, nil
}

// sortSiblings returns a copy of idx stably sorted by SortOrder.
func (ix *Index) sortSiblings(idx []int) []int {
	out := slices.Clone(idx)
	slices.SortStableFunc(out, func(a, b int) int {
		return cmp.Compare(ix.nodes[a].SortOrder, ix.nodes[b].SortOrder)
	})
	return out
}
