// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog serves read-only snapshots of the category tree and the
// article list. Snapshots are loaded from a Source, kept in TTL caches, and
// when the Source fails the last good snapshot (or an empty one) is served
// so pages degrade instead of erroring.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"gigfin/internal/cache"
	"gigfin/internal/locale"
	"gigfin/internal/models"
	"gigfin/internal/taxonomy"
)

// Default cache settings.
const (
	DefaultCategoryTTL = 5 * time.Minute
	DefaultArticleTTL  = time.Hour
	DefaultMaxEntries  = 64
)

// articlesKey is the only key of the article cache.
const articlesKey = "published"

// Source loads content from the backing datastore.
type Source interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListArticles(ctx context.Context) ([]models.Article, error)
	// FindArticleBySlug returns (nil, nil) when no article has the slug.
	FindArticleBySlug(ctx context.Context, slug string) (*models.Article, error)
}

// Options configures a Service. Zero values fall back to the defaults.
type Options struct {
	CategoryTTL time.Duration
	ArticleTTL  time.Duration
	MaxEntries  int
	Locales     []locale.Locale
}

// Service owns the snapshot caches and composes the taxonomy operations
// over them. It is safe for concurrent use.
type Service struct {
	source     Source
	locales    []locale.Locale
	categories *cache.TTL[locale.Locale, *taxonomy.Index]
	articles   *cache.TTL[string, []models.Article]
	group      singleflight.Group
	onRefresh  []func(context.Context)

	mu          sync.Mutex
	fingerprint uint64
	refreshed   bool
}

// New creates a Service reading from src.
func New(src Source, opts Options) *Service {
	if opts.CategoryTTL <= 0 {
		opts.CategoryTTL = DefaultCategoryTTL
	}
	if opts.ArticleTTL <= 0 {
		opts.ArticleTTL = DefaultArticleTTL
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	if len(opts.Locales) == 0 {
		opts.Locales = locale.All()
	}
	return &Service{
		source:     src,
		locales:    opts.Locales,
		categories: cache.NewTTL[locale.Locale, *taxonomy.Index](opts.CategoryTTL, opts.MaxEntries),
		articles:   cache.NewTTL[string, []models.Article](opts.ArticleTTL, opts.MaxEntries),
	}
}

// Locales returns the locales the site is published in.
func (s *Service) Locales() []locale.Locale {
	return s.locales
}

// OnRefresh registers fn to run after a successful Refresh that loaded
// content different from the previous refresh.
func (s *Service) OnRefresh(fn func(context.Context)) {
	s.onRefresh = append(s.onRefresh, fn)
}

// Index returns the category snapshot for l. On a cache miss it loads a
// new snapshot; if that fails it serves the stale snapshot, or an empty
// index when there has never been a good one.
func (s *Service) Index(ctx context.Context, l locale.Locale) *taxonomy.Index {
	if ix, ok := s.categories.Get(l); ok {
		return ix
	}
	ix, err := s.loadIndex(ctx, l)
	if err == nil {
		return ix
	}
	if stale, ok := s.categories.Stale(l); ok {
		slog.Warn("serving stale category snapshot", "locale", l, "error", err)
		return stale
	}
	slog.Warn("no category snapshot available, serving empty tree", "locale", l, "error", err)
	return emptyIndex
}

// loadIndex fetches categories and stores a fresh index for l. Concurrent
// loads for the same locale share one fetch.
func (s *Service) loadIndex(ctx context.Context, l locale.Locale) (*taxonomy.Index, error) {
	v, err, _ := s.group.Do("categories:"+l.String(), func() (any, error) {
		cats, err := s.source.ListCategories(ctx)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		ix, err := taxonomy.NewIndex(cats)
		if err != nil {
			slog.Error("rejecting category snapshot", "locale", l, "error", err)
			return nil, err
		}
		s.categories.Put(l, ix)
		return ix, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*taxonomy.Index), nil
}

// Articles returns the published article snapshot with the same fallback
// policy as Index.
func (s *Service) Articles(ctx context.Context) []models.Article {
	if list, ok := s.articles.Get(articlesKey); ok {
		return list
	}
	list, err := s.loadArticles(ctx)
	if err == nil {
		return list
	}
	if stale, ok := s.articles.Stale(articlesKey); ok {
		slog.Warn("serving stale article snapshot", "error", err)
		return stale
	}
	slog.Warn("no article snapshot available, serving empty list", "error", err)
	return nil
}

func (s *Service) loadArticles(ctx context.Context) ([]models.Article, error) {
	v, err, _ := s.group.Do(articlesKey, func() (any, error) {
		list, err := s.source.ListArticles(ctx)
		if err != nil {
			return nil, fmt.Errorf("list articles: %w", err)
		}
		s.articles.Put(articlesKey, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Article), nil
}

// FindArticle looks an article up by any of its slugs. A fresh article
// snapshot is searched first; otherwise the Source is asked directly. When
// the Source fails the stale snapshot answers instead, and the error is
// returned only if there has never been a good snapshot.
func (s *Service) FindArticle(ctx context.Context, slug string) (*models.Article, error) {
	if slug == "" {
		return nil, nil
	}
	if list, ok := s.articles.Get(articlesKey); ok {
		return findBySlug(list, slug), nil
	}
	a, err := s.source.FindArticleBySlug(ctx, slug)
	if err == nil {
		return a, nil
	}
	if stale, ok := s.articles.Stale(articlesKey); ok {
		slog.Warn("serving article from stale snapshot", "slug", slug, "error", err)
		return findBySlug(stale, slug), nil
	}
	return nil, fmt.Errorf("find article %q: %w", slug, err)
}

func findBySlug(list []models.Article, slug string) *models.Article {
	for i := range list {
		if list[i].HasSlug(slug) {
			a := list[i]
			return &a
		}
	}
	return nil
}

// Translator returns a path translator over the snapshot for l.
func (s *Service) Translator(ctx context.Context, l locale.Locale) *taxonomy.Translator {
	return taxonomy.NewTranslator(s.Index(ctx, l), s)
}

// Refresh reloads every snapshot regardless of age. The OnRefresh hooks run
// when the loaded content differs from the last successful refresh (always
// on the first one). Failed loads keep the previous snapshot.
func (s *Service) Refresh(ctx context.Context) error {
	var errs []error
	var cats []models.Category
	for _, l := range s.locales {
		ix, err := s.loadIndex(ctx, l)
		if err != nil {
			errs = append(errs, fmt.Errorf("refresh %s: %w", l, err))
			continue
		}
		cats = ix.Categories()
	}
	list, err := s.loadArticles(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("refresh articles: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	if !s.swapFingerprint(fingerprint(cats, list)) {
		slog.Debug("content unchanged since last refresh")
		return nil
	}
	for _, fn := range s.onRefresh {
		fn(ctx)
	}
	return nil
}

// swapFingerprint stores fp and reports whether it differs from the
// previous one.
func (s *Service) swapFingerprint(fp uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := !s.refreshed || s.fingerprint != fp
	s.fingerprint, s.refreshed = fp, true
	return changed
}

// fingerprint hashes the fields of a snapshot that affect URLs, menus and
// the sitemap.
func fingerprint(cats []models.Category, articles []models.Article) uint64 {
	d := xxhash.New()
	field := func(s string) {
		d.WriteString(s)
		d.Write([]byte{0})
	}
	parent := func(id *uuid.UUID) string {
		if id == nil {
			return ""
		}
		return id.String()
	}
	for _, c := range cats {
		field(c.ID.String())
		field(parent(c.ParentID))
		field(c.Name + "|" + c.NameEn + "|" + c.NamePt)
		field(c.Slug + "|" + c.SlugEn + "|" + c.SlugPt)
		field(strconv.Itoa(c.SortOrder))
		field(c.UpdatedAt.UTC().Format(time.RFC3339Nano))
	}
	field("articles")
	for _, a := range articles {
		field(a.ID.String())
		field(parent(a.CategoryID))
		field(a.Slug + "|" + a.SlugEn + "|" + a.SlugPt)
		field(string(a.Visibility))
		field(a.UpdatedAt.UTC().Format(time.RFC3339Nano))
	}
	return d.Sum64()
}

var emptyIndex = mustEmptyIndex()

func mustEmptyIndex() *taxonomy.Index {
	ix, err := taxonomy.NewIndex(nil)
	if err != nil {
		panic(err)
	}
	return ix
}
