package lessons

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-curriculum/lessons"
)

// MemoryLessonRepository is an in-memory lesson store for scaffolding/tests.
type MemoryLessonRepository struct {
	mu           sync.RWMutex
	records      map[uuid.UUID]*lessons.Lesson
	ordinalIndex map[int]uuid.UUID
	slugIndex    map[string]uuid.UUID
}

// NewMemoryLessonRepository constructs the repository.
func NewMemoryLessonRepository() *MemoryLessonRepository {
	return &MemoryLessonRepository{
		records:      make(map[uuid.UUID]*lessons.Lesson),
		ordinalIndex: make(map[int]uuid.UUID),
		slugIndex:    make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied lesson, enforcing ordinal and slug uniqueness.
func (m *MemoryLessonRepository) Create(_ context.Context, record *lessons.Lesson) (*lessons.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.ordinalIndex[record.Ordinal]; ok && existing != record.ID {
		return nil, &lessons.OrdinalConflictError{
			Ordinal: record.Ordinal,
			Paths:   []string{m.records[existing].Path, record.Path},
		}
	}
	if existing, ok := m.slugIndex[record.Slug]; ok && existing != record.ID {
		return nil, lessons.ErrSlugConflict
	}

	copied := cloneLesson(record)
	m.records[copied.ID] = copied
	m.ordinalIndex[copied.Ordinal] = copied.ID
	m.slugIndex[copied.Slug] = copied.ID
	return cloneLesson(copied), nil
}

// Update replaces the stored lesson, reindexing ordinal and slug.
func (m *MemoryLessonRepository) Update(_ context.Context, record *lessons.Lesson) (*lessons.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.records[record.ID]
	if !ok {
		return nil, &lessons.NotFoundError{Resource: "id", Key: record.ID.String()}
	}

	if existing, ok := m.ordinalIndex[record.Ordinal]; ok && existing != record.ID {
		return nil, &lessons.OrdinalConflictError{
			Ordinal: record.Ordinal,
			Paths:   []string{m.records[existing].Path, record.Path},
		}
	}
	if existing, ok := m.slugIndex[record.Slug]; ok && existing != record.ID {
		return nil, lessons.ErrSlugConflict
	}

	delete(m.ordinalIndex, current.Ordinal)
	delete(m.slugIndex, current.Slug)

	copied := cloneLesson(record)
	m.records[copied.ID] = copied
	m.ordinalIndex[copied.Ordinal] = copied.ID
	m.slugIndex[copied.Slug] = copied.ID
	return cloneLesson(copied), nil
}

// GetByID retrieves a lesson by identifier.
func (m *MemoryLessonRepository) GetByID(_ context.Context, id uuid.UUID) (*lessons.Lesson, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[id]
	if !ok {
		return nil, &lessons.NotFoundError{Resource: "id", Key: id.String()}
	}
	return cloneLesson(record), nil
}

// GetByOrdinal retrieves a lesson by its ordinal.
func (m *MemoryLessonRepository) GetByOrdinal(_ context.Context, ordinal int) (*lessons.Lesson, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.ordinalIndex[ordinal]
	if !ok {
		return nil, &lessons.NotFoundError{Resource: "ordinal", Key: strconv.Itoa(ordinal)}
	}
	return cloneLesson(m.records[id]), nil
}

// GetBySlug retrieves a lesson by slug.
func (m *MemoryLessonRepository) GetBySlug(_ context.Context, slug string) (*lessons.Lesson, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &lessons.NotFoundError{Resource: "slug", Key: slug}
	}
	return cloneLesson(m.records[id]), nil
}

// List returns every lesson ordered by ordinal.
func (m *MemoryLessonRepository) List(_ context.Context) ([]*lessons.Lesson, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*lessons.Lesson, 0, len(m.records))
	for _, record := range m.records {
		out = append(out, cloneLesson(record))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Ordinal < out[j].Ordinal
	})
	return out, nil
}

// Delete removes a lesson and its index entries.
func (m *MemoryLessonRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[id]
	if !ok {
		return &lessons.NotFoundError{Resource: "id", Key: id.String()}
	}
	delete(m.ordinalIndex, record.Ordinal)
	delete(m.slugIndex, record.Slug)
	delete(m.records, id)
	return nil
}

func cloneLesson(in *lessons.Lesson) *lessons.Lesson {
	if in == nil {
		return nil
	}
	out := *in
	if in.Summary != nil {
		summary := *in.Summary
		out.Summary = &summary
	}
	out.Sections = append([]lessons.Section(nil), in.Sections...)
	out.Samples = append([]lessons.CodeSample(nil), in.Samples...)
	out.Tags = append([]string(nil), in.Tags...)
	if in.Metadata != nil {
		out.Metadata = make(map[string]any, len(in.Metadata))
		for key, value := range in.Metadata {
			out.Metadata[key] = value
		}
	}
	if in.DeletedAt != nil {
		deleted := *in.DeletedAt
		out.DeletedAt = &deleted
	}
	return &out
}
