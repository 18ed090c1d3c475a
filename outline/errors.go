package outline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPathRequired     = errors.New("outline: index path is required")
	ErrCodeRequired     = errors.New("outline: code is required")
	ErrTitleRequired    = errors.New("outline: index document has no title")
	ErrNoLevels         = errors.New("outline: index document defines no levels")
	ErrOutlineNotFound  = errors.New("outline: outline not found")
	ErrResolverNotSet   = errors.New("outline: url resolver not configured")
	ErrRepositoryNotSet = errors.New("outline: repository is required")
)

// NotFoundError captures outline lookups that missed.
type NotFoundError struct {
	Code string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrOutlineNotFound.Error()
	}
	code := strings.TrimSpace(e.Code)
	if code == "" {
		return ErrOutlineNotFound.Error()
	}
	return fmt.Sprintf("%s: code=%s", ErrOutlineNotFound.Error(), code)
}

func (e *NotFoundError) Unwrap() error {
	return ErrOutlineNotFound
}
