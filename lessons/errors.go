package lessons

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOrdinalRequired  = errors.New("lessons: ordinal is required")
	ErrOrdinalInvalid   = errors.New("lessons: filename does not follow the lesson naming scheme")
	ErrOrdinalConflict  = errors.New("lessons: ordinal already exists")
	ErrSlugRequired     = errors.New("lessons: slug is required")
	ErrSlugInvalid      = errors.New("lessons: slug contains invalid characters")
	ErrSlugConflict     = errors.New("lessons: slug already exists")
	ErrTitleRequired    = errors.New("lessons: title is required")
	ErrBodyRequired     = errors.New("lessons: body is required")
	ErrLessonNotFound   = errors.New("lessons: lesson not found")
	ErrMetadataInvalid  = errors.New("lessons: frontmatter metadata invalid")
	ErrRepositoryNotSet = errors.New("lessons: repository is required")
)

// NotFoundError captures lookups that missed, preserving the key used.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrLessonNotFound.Error()
	}
	key := strings.TrimSpace(e.Key)
	if key == "" {
		return ErrLessonNotFound.Error()
	}
	return fmt.Sprintf("%s: %s=%s", ErrLessonNotFound.Error(), e.Resource, key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrLessonNotFound
}

// OrdinalConflictError reports two source files claiming the same ordinal.
type OrdinalConflictError struct {
	Ordinal int
	Paths   []string
}

func (e *OrdinalConflictError) Error() string {
	if e == nil {
		return ErrOrdinalConflict.Error()
	}
	if len(e.Paths) == 0 {
		return fmt.Sprintf("%s: ordinal=%d", ErrOrdinalConflict.Error(), e.Ordinal)
	}
	return fmt.Sprintf("%s: ordinal=%d paths=%s", ErrOrdinalConflict.Error(), e.Ordinal, strings.Join(e.Paths, ", "))
}

func (e *OrdinalConflictError) Unwrap() error {
	return ErrOrdinalConflict
}
