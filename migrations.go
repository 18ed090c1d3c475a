package curriculum

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-curriculum/lessons"
	"github.com/goliatone/go-curriculum/outline"
)

// RegisterModels registers every bun model the module persists so hosts can
// rely on relation metadata before running queries.
func RegisterModels(db *bun.DB) {
	if db == nil {
		return
	}
	db.RegisterModel(
		(*lessons.Lesson)(nil),
		(*outline.Outline)(nil),
		(*outline.Level)(nil),
		(*outline.Entry)(nil),
	)
}

// CreateSchema creates the module tables when they do not exist. Hosts with
// their own migration tooling can skip this and manage DDL themselves.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return nil
	}

	RegisterModels(db)

	models := []any{
		(*lessons.Lesson)(nil),
		(*outline.Outline)(nil),
		(*outline.Level)(nil),
		(*outline.Entry)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			WithForeignKeys().
			Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
