package checker

import "errors"

var (
	ErrUnknownProperty = errors.New("checker: unknown property code")
	ErrLessonsDirEmpty = errors.New("checker: lessons directory is required")
)
