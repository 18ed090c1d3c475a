package outline

import (
	"context"
	"strings"
	"sync"

	"github.com/goliatone/go-curriculum/outline"
)

// MemoryOutlineRepository is an in-memory outline store for scaffolding/tests.
type MemoryOutlineRepository struct {
	mu      sync.RWMutex
	records map[string]*outline.Outline
}

// NewMemoryOutlineRepository constructs the repository.
func NewMemoryOutlineRepository() *MemoryOutlineRepository {
	return &MemoryOutlineRepository{
		records: make(map[string]*outline.Outline),
	}
}

// Upsert stores the outline under its code, replacing any previous version.
func (m *MemoryOutlineRepository) Upsert(_ context.Context, record *outline.Outline) (*outline.Outline, error) {
	if record == nil || strings.TrimSpace(record.Code) == "" {
		return nil, outline.ErrCodeRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneOutline(record)
	m.records[copied.Code] = copied
	return cloneOutline(copied), nil
}

// GetByCode retrieves the outline stored under code.
func (m *MemoryOutlineRepository) GetByCode(_ context.Context, code string) (*outline.Outline, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return nil, &outline.NotFoundError{Code: code}
	}
	return cloneOutline(record), nil
}

// Delete removes the outline stored under code.
func (m *MemoryOutlineRepository) Delete(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(code))
	if _, ok := m.records[key]; !ok {
		return &outline.NotFoundError{Code: code}
	}
	delete(m.records, key)
	return nil
}

func cloneOutline(in *outline.Outline) *outline.Outline {
	if in == nil {
		return nil
	}
	out := *in
	out.Levels = make([]*outline.Level, 0, len(in.Levels))
	for _, level := range in.Levels {
		copied := *level
		if level.Goal != nil {
			goal := *level.Goal
			copied.Goal = &goal
		}
		copied.Entries = make([]*outline.Entry, 0, len(level.Entries))
		for _, entry := range level.Entries {
			entryCopy := *entry
			copied.Entries = append(copied.Entries, &entryCopy)
		}
		out.Levels = append(out.Levels, &copied)
	}
	if in.DeletedAt != nil {
		deleted := *in.DeletedAt
		out.DeletedAt = &deleted
	}
	return &out
}
