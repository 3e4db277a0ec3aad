// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package taxonomy maps the category tree to localized URL paths and back.
// An Index holds one read-only snapshot of the categories; everything else
// in the package (path building, slug resolution, locale switching, menus)
// walks that snapshot.
package taxonomy

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"gigfin/internal/models"
)

var (
	// ErrNotFound is returned when a slug path or id matches no category.
	ErrNotFound = errors.New("taxonomy: not found")

	// ErrCyclicCategoryGraph is returned when parent references loop.
	ErrCyclicCategoryGraph = errors.New("taxonomy: cyclic category graph")
)

// Index is an arena of categories with an id lookup table and a child list
// per node. It is immutable after construction and safe for concurrent reads.
type Index struct {
	nodes    []models.Category
	byID     map[uuid.UUID]int
	roots    []int
	children [][]int
}

// NewIndex copies cats into a new index. Records keep their stored order,
// which breaks ties everywhere in the package. A later record repeating an
// earlier id is ignored. Categories whose parent is not in cats are treated
// as roots. A parent cycle fails the whole snapshot.
func NewIndex(cats []models.Category) (*Index, error) {
	ix := &Index{
		nodes: make([]models.Category, 0, len(cats)),
		byID:  make(map[uuid.UUID]int, len(cats)),
	}
	for _, c := range cats {
		if _, dup := ix.byID[c.ID]; dup {
			continue
		}
		ix.byID[c.ID] = len(ix.nodes)
		ix.nodes = append(ix.nodes, c)
	}

	ix.children = make([][]int, len(ix.nodes))
	for i := range ix.nodes {
		p, ok := ix.parentIndex(i)
		if !ok {
			ix.roots = append(ix.roots, i)
			continue
		}
		ix.children[p] = append(ix.children[p], i)
	}

	if err := ix.checkAcyclic(); err != nil {
		return nil, err
	}
	return ix, nil
}

// parentIndex returns the arena index of node i's parent, if present.
func (ix *Index) parentIndex(i int) (int, bool) {
	pid := ix.nodes[i].ParentID
	if pid == nil {
		return 0, false
	}
	p, ok := ix.byID[*pid]
	return p, ok
}

// checkAcyclic walks every parent chain once, colouring nodes as it goes.
// Reaching a node that is still on the current chain means a cycle.
func (ix *Index) checkAcyclic() error {
	const (
		unvisited = iota
		walking
		done
	)
	state := make([]int, len(ix.nodes))

	for start := range ix.nodes {
		var chain []int
		i := start
		for state[i] == unvisited {
			state[i] = walking
			chain = append(chain, i)
			p, ok := ix.parentIndex(i)
			if !ok {
				break
			}
			i = p
			if state[i] == walking {
				return fmt.Errorf("%w: category %s", ErrCyclicCategoryGraph, ix.nodes[i].ID)
			}
		}
		for _, j := range chain {
			state[j] = done
		}
	}
	return nil
}

// Len returns the number of categories in the index.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.nodes)
}

// Get returns a copy of the category with the given id.
func (ix *Index) Get(id uuid.UUID) (*models.Category, bool) {
	if ix == nil {
		return nil, false
	}
	i, ok := ix.byID[id]
	if !ok {
		return nil, false
	}
	c := ix.nodes[i]
	return &c, true
}

// Categories returns every category in stored order.
func (ix *Index) Categories() []models.Category {
	if ix == nil {
		return nil
	}
	out := make([]models.Category, len(ix.nodes))
	copy(out, ix.nodes)
	return out
}

// Roots returns the top-level categories, including orphans whose parent
// is missing from the snapshot, in stored order.
func (ix *Index) Roots() []models.Category {
	if ix == nil {
		return nil
	}
	return ix.collect(ix.roots)
}

// Children returns the direct children of id in stored order.
func (ix *Index) Children(id uuid.UUID) []models.Category {
	if ix == nil {
		return nil
	}
	i, ok := ix.byID[id]
	if !ok {
		return nil
	}
	return ix.collect(ix.children[i])
}

func (ix *Index) collect(idx []int) []models.Category {
	return lo.Map(idx, func(i int, _ int) models.Category {
		return ix.nodes[i]
	})
}
