// Package repository loads the tag universe for a picker session from the
// delivery API or from tags supplied in the element config.
package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/gravitrone/tagpicker/internal/api"
	"github.com/gravitrone/tagpicker/internal/taxonomy"
)

// Source fetches tag items from the remote data source.
type Source interface {
	ListTags(ctx context.Context, language string) ([]api.TagItem, error)
	ListTagsByCodenames(ctx context.Context, language string, codenames []string) ([]api.TagItem, error)
}

// Cache stores fetched tag sets between processes.
type Cache interface {
	Get(ctx context.Context, key string) ([]taxonomy.Tag, bool, error)
	Set(ctx context.Context, key string, tags []taxonomy.Tag) error
}

// Result is a loaded tag universe. Err records why the universe is smaller
// than expected; Tags is always usable.
type Result struct {
	Tags    []taxonomy.Tag
	Missing []string
	Err     error
}

// Repository loads tag universes. Each project and language is fetched once;
// later loads reuse the stored set.
type Repository struct {
	source    Source
	sourceFor func(projectID string) Source
	cache     Cache
	logger    *zap.Logger

	mu   sync.Mutex
	memo map[string][]taxonomy.Tag
}

// Option configures a Repository.
type Option func(*Repository)

// WithCache adds a shared cache consulted before the remote source.
func WithCache(c Cache) Option {
	return func(r *Repository) { r.cache = c }
}

// WithProjectSources routes each load to the source for its project id.
// Loads without a project id use the default source.
func WithProjectSources(sourceFor func(projectID string) Source) Option {
	return func(r *Repository) { r.sourceFor = sourceFor }
}

// New creates a repository. A nil source is allowed when only fixed tags are
// used.
func New(source Source, logger *zap.Logger, opts ...Option) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Repository{
		source: source,
		logger: logger,
		memo:   make(map[string][]taxonomy.Tag),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load returns the tag universe for a query. Transport failures are logged and
// produce an empty universe rather than an error.
func (r *Repository) Load(ctx context.Context, projectID, language string, q Query) Result {
	log := r.logger.With(
		zap.String("project_id", projectID),
		zap.String("language", language),
		zap.Stringer("mode", q.Mode),
	)

	src := r.source
	if r.sourceFor != nil && projectID != "" {
		src = r.sourceFor(projectID)
	}

	switch q.Mode {
	case ModeFixed:
		tags, errs := FromFixed(q.Fixed)
		for _, err := range errs {
			log.Warn("fixed tag rejected", zap.Error(err))
		}
		return Result{Tags: tags}

	case ModeExplicit:
		key := cacheKey(projectID, language, "codenames", strings.Join(q.Codenames, ","))
		tags, err := r.fetch(ctx, log, key, src, func(ctx context.Context) ([]api.TagItem, error) {
			return src.ListTagsByCodenames(ctx, language, q.Codenames)
		})
		if err != nil {
			return Result{Tags: []taxonomy.Tag{}, Err: err}
		}
		missing := missingCodenames(q.Codenames, tags)
		if len(missing) > 0 {
			log.Warn("specific tags not found", zap.Strings("codenames", missing))
		}
		return Result{Tags: tags, Missing: missing}

	case ModeParent:
		all, err := r.all(ctx, log, src, projectID, language)
		if err != nil {
			return Result{Tags: []taxonomy.Tag{}, Err: err}
		}
		sub := taxonomy.Subtree(taxonomy.BuildForest(all), q.Parent)
		if len(sub) == 0 {
			log.Info("parent tag not found", zap.String("parent", q.Parent))
			return Result{Tags: sub, Missing: []string{q.Parent}}
		}
		return Result{Tags: sub}

	default:
		all, err := r.all(ctx, log, src, projectID, language)
		if err != nil {
			return Result{Tags: []taxonomy.Tag{}, Err: err}
		}
		return Result{Tags: all}
	}
}

func (r *Repository) all(ctx context.Context, log *zap.Logger, src Source, projectID, language string) ([]taxonomy.Tag, error) {
	key := cacheKey(projectID, language, "all")
	return r.fetch(ctx, log, key, src, func(ctx context.Context) ([]api.TagItem, error) {
		return src.ListTags(ctx, language)
	})
}

// fetch resolves a tag set through the in-process memo, then the shared
// cache, then the remote source.
func (r *Repository) fetch(ctx context.Context, log *zap.Logger, key string, src Source, remote func(context.Context) ([]api.TagItem, error)) ([]taxonomy.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tags, ok := r.memo[key]; ok {
		return tags, nil
	}

	if r.cache != nil {
		tags, ok, err := r.cache.Get(ctx, key)
		switch {
		case err != nil:
			log.Warn("tag cache read failed", zap.String("key", key), zap.Error(err))
		case ok:
			log.Debug("tag cache hit", zap.String("key", key), zap.Int("count", len(tags)))
			r.memo[key] = tags
			return tags, nil
		}
	}

	if src == nil {
		err := fmt.Errorf("fetch tags: no data source configured")
		log.Error("tag fetch failed", zap.Error(err))
		return nil, err
	}

	items, err := remote(ctx)
	if err != nil {
		err = fmt.Errorf("fetch tags: %w", err)
		log.Error("tag fetch failed", zap.Error(err))
		return nil, err
	}
	tags, skipped := FromItems(items)
	if len(skipped) > 0 {
		log.Warn("tag items skipped", zap.Strings("items", skipped))
	}
	log.Debug("tags fetched", zap.Int("count", len(tags)))
	r.memo[key] = tags

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, tags); err != nil {
			log.Warn("tag cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return tags, nil
}

func cacheKey(parts ...string) string {
	return "tagpicker:tags:" + strings.Join(parts, ":")
}

func missingCodenames(requested []string, found []taxonomy.Tag) []string {
	have := make(map[string]struct{}, len(found))
	for _, tag := range found {
		have[tag.Codename] = struct{}{}
	}
	var missing []string
	for _, c := range requested {
		if _, ok := have[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}
