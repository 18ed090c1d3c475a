package outline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-curriculum/outline"
)

// BunOutlineRepository persists outlines through bun. Levels and entries are
// replaced wholesale on upsert since the source document is the truth.
type BunOutlineRepository struct {
	db   *bun.DB
	repo repository.Repository[*outline.Outline]
}

func NewBunOutlineRepository(db *bun.DB) *BunOutlineRepository {
	return &BunOutlineRepository{
		db:   db,
		repo: NewOutlineModelRepository(db),
	}
}

func (r *BunOutlineRepository) Upsert(ctx context.Context, record *outline.Outline) (*outline.Outline, error) {
	if record == nil || strings.TrimSpace(record.Code) == "" {
		return nil, outline.ErrCodeRequired
	}
	if r.db == nil {
		return nil, fmt.Errorf("outline repository: database not configured")
	}

	now := time.Now().UTC()

	existing, err := r.repo.GetByIdentifier(ctx, record.Code)
	switch {
	case err == nil:
	case goerrors.IsCategory(err, repository.CategoryDatabaseNotFound):
		existing = nil
	default:
		return nil, fmt.Errorf("outline repository error: %w", err)
	}

	err = r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if existing != nil {
			if _, err := tx.NewDelete().
				Model((*outline.Entry)(nil)).
				Where("level_id IN (SELECT id FROM outline_levels WHERE outline_id = ?)", existing.ID).
				Exec(ctx); err != nil {
				return fmt.Errorf("delete outline entries: %w", err)
			}
			if _, err := tx.NewDelete().
				Model((*outline.Level)(nil)).
				Where("?TableAlias.outline_id = ?", existing.ID).
				Exec(ctx); err != nil {
				return fmt.Errorf("delete outline levels: %w", err)
			}
			record.ID = existing.ID
			record.CreatedAt = existing.CreatedAt
			record.UpdatedAt = now
			if _, err := tx.NewUpdate().
				Model(record).
				WherePK().
				Exec(ctx); err != nil {
				return fmt.Errorf("update outline: %w", err)
			}
		} else {
			record.CreatedAt = now
			record.UpdatedAt = now
			if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
				return fmt.Errorf("insert outline: %w", err)
			}
		}

		for _, level := range record.Levels {
			level.OutlineID = record.ID
			if level.CreatedAt.IsZero() {
				level.CreatedAt = now
			}
			level.UpdatedAt = now
			if _, err := tx.NewInsert().Model(level).Exec(ctx); err != nil {
				return fmt.Errorf("insert outline level: %w", err)
			}
			for _, entry := range level.Entries {
				entry.LevelID = level.ID
				if entry.CreatedAt.IsZero() {
					entry.CreatedAt = now
				}
				entry.UpdatedAt = now
				if _, err := tx.NewInsert().Model(entry).Exec(ctx); err != nil {
					return fmt.Errorf("insert outline entry: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByCode(ctx, record.Code)
}

func (r *BunOutlineRepository) GetByCode(ctx context.Context, code string) (*outline.Outline, error) {
	if r.db == nil {
		return nil, fmt.Errorf("outline repository: database not configured")
	}

	record := &outline.Outline{}
	err := r.db.NewSelect().
		Model(record).
		Relation("Levels", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("position ASC")
		}).
		Relation("Levels.Entries", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("position ASC")
		}).
		Where("?TableAlias.code = ?", strings.ToLower(strings.TrimSpace(code))).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &outline.NotFoundError{Code: code}
		}
		return nil, fmt.Errorf("outline repository error: %w", err)
	}
	return record, nil
}

func (r *BunOutlineRepository) Delete(ctx context.Context, code string) error {
	if r.db == nil {
		return fmt.Errorf("outline repository: database not configured")
	}

	existing, err := r.GetByCode(ctx, code)
	if err != nil {
		return err
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*outline.Entry)(nil)).
			Where("level_id IN (SELECT id FROM outline_levels WHERE outline_id = ?)", existing.ID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete outline entries: %w", err)
		}
		if _, err := tx.NewDelete().
			Model((*outline.Level)(nil)).
			Where("?TableAlias.outline_id = ?", existing.ID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete outline levels: %w", err)
		}
		if _, err := tx.NewDelete().
			Model((*outline.Outline)(nil)).
			Where("?TableAlias.id = ?", existing.ID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete outline: %w", err)
		}
		return nil
	})
}
