package lessons

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// lessonFilePattern matches the canonical lesson naming scheme, e.g.
// "lesson_14.md". Matching is case-insensitive on the prefix.
var lessonFilePattern = regexp.MustCompile(`(?i)^lesson_(\d+)\.md$`)

// ParseOrdinal extracts the lesson number from a file path following the
// lesson_N.md naming scheme. It returns ErrOrdinalInvalid for anything else.
func ParseOrdinal(filePath string) (int, error) {
	base := path.Base(strings.TrimSpace(filePath))
	matches := lessonFilePattern.FindStringSubmatch(base)
	if matches == nil {
		return 0, fmt.Errorf("%w: %s", ErrOrdinalInvalid, base)
	}
	ordinal, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrOrdinalInvalid, base)
	}
	if ordinal <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrOrdinalInvalid, base)
	}
	return ordinal, nil
}

// IsLessonFile reports whether the path follows the lesson naming scheme.
func IsLessonFile(filePath string) bool {
	_, err := ParseOrdinal(filePath)
	return err == nil
}

// FileName builds the canonical filename for an ordinal.
func FileName(ordinal int) string {
	return fmt.Sprintf("lesson_%d.md", ordinal)
}

// HeadingOrdinal extracts the lesson number mentioned in a heading such as
// "Lesson 14: Dynamic and Recursive Components". The second return value is
// false when the heading carries no lesson number.
func HeadingOrdinal(heading string) (int, bool) {
	matches := headingPattern.FindStringSubmatch(heading)
	if matches == nil {
		return 0, false
	}
	ordinal, err := strconv.Atoi(matches[1])
	if err != nil || ordinal <= 0 {
		return 0, false
	}
	return ordinal, true
}

var headingPattern = regexp.MustCompile(`(?i)\blesson\s+(\d+)\b`)
