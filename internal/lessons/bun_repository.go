package lessons

import (
	"context"
	"fmt"
	"strconv"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-curriculum/lessons"
)

// BunLessonRepository persists lessons through bun with optional read caching.
type BunLessonRepository struct {
	db   *bun.DB
	repo repository.Repository[*lessons.Lesson]
}

func NewBunLessonRepository(db *bun.DB) *BunLessonRepository {
	return NewBunLessonRepositoryWithCache(db, nil, nil)
}

// NewBunLessonRepositoryWithCache constructs a LessonRepository backed by bun
// with optional caching.
func NewBunLessonRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunLessonRepository {
	base := NewLessonModelRepository(db)
	return &BunLessonRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

func (r *BunLessonRepository) Create(ctx context.Context, record *lessons.Lesson) (*lessons.Lesson, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "id", record.ID.String())
	}
	return created, nil
}

func (r *BunLessonRepository) Update(ctx context.Context, record *lessons.Lesson) (*lessons.Lesson, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"ordinal",
			"slug",
			"title",
			"summary",
			"path",
			"body",
			"body_html",
			"checksum",
			"sections",
			"code_samples",
			"tags",
			"draft",
			"metadata",
			"source_modified",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "id", record.ID.String())
	}
	return updated, nil
}

func (r *BunLessonRepository) GetByID(ctx context.Context, id uuid.UUID) (*lessons.Lesson, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "id", id.String())
	}
	return result, nil
}

func (r *BunLessonRepository) GetByOrdinal(ctx context.Context, ordinal int) (*lessons.Lesson, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.ordinal = ?", ordinal)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "ordinal", strconv.Itoa(ordinal))
	}
	if len(records) == 0 {
		return nil, &lessons.NotFoundError{Resource: "ordinal", Key: strconv.Itoa(ordinal)}
	}
	return records[0], nil
}

func (r *BunLessonRepository) GetBySlug(ctx context.Context, slug string) (*lessons.Lesson, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "slug", slug)
	}
	return result, nil
}

func (r *BunLessonRepository) List(ctx context.Context) ([]*lessons.Lesson, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.ordinal ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "list", "")
	}
	return records, nil
}

func (r *BunLessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("lesson repository: database not configured")
	}

	result, err := r.db.NewDelete().
		Model((*lessons.Lesson)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("lesson delete rows affected: %w", err)
	}
	if affected == 0 {
		return &lessons.NotFoundError{Resource: "id", Key: id.String()}
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}

	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &lessons.NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}

	return fmt.Errorf("lesson repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
