// Package checker defines the structural property codes reported by the
// curriculum checker and helpers for selecting them.
package checker

import (
	"fmt"
	"strings"
)

// Property codes. Each one names a structural invariant of a lessons
// directory and its index document.
const (
	// PropertyIndexTargets: every index entry resolves to an existing file.
	PropertyIndexTargets = "p1"
	// PropertyLessonStructure: every lesson has a title and at least one section.
	PropertyLessonStructure = "p2"
	// PropertyOrdinals: ordinals are unique and agree with the index ordering.
	PropertyOrdinals = "p3"
	// PropertyFences: fenced code blocks are balanced.
	PropertyFences = "p4"
	// PropertyDuplicates: no two lessons claim the same heading number.
	PropertyDuplicates = "p5"
)

// Issue codes emitted by the checker.
const (
	// CodeLessonUnreadable reports a file the check run could not read. It is
	// emitted regardless of the property selection.
	CodeLessonUnreadable        = "lesson_unreadable"
	CodeIndexMissing            = "index_missing"
	CodeIndexTargetMissing      = "index_target_missing"
	CodeLessonTitleMissing      = "lesson_title_missing"
	CodeLessonSectionsMissing   = "lesson_sections_missing"
	CodeOrdinalMismatch         = "ordinal_mismatch"
	CodeOrdinalDuplicate        = "ordinal_duplicate"
	CodeFenceUnbalanced         = "fence_unbalanced"
	CodeDuplicateHeadingOrdinal = "duplicate_heading_ordinal"
)

// AllProperties lists every property code in run order.
func AllProperties() []string {
	return []string{
		PropertyIndexTargets,
		PropertyLessonStructure,
		PropertyOrdinals,
		PropertyFences,
		PropertyDuplicates,
	}
}

// IsValidProperty reports whether code names a known property.
func IsValidProperty(code string) bool {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case PropertyIndexTargets, PropertyLessonStructure, PropertyOrdinals, PropertyFences, PropertyDuplicates:
		return true
	default:
		return false
	}
}

// NormalizeProperties validates and deduplicates a property selection. An
// empty selection expands to every property.
func NormalizeProperties(codes []string) ([]string, error) {
	if len(codes) == 0 {
		return AllProperties(), nil
	}

	seen := map[string]struct{}{}
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		normalized := strings.ToLower(strings.TrimSpace(code))
		if normalized == "" {
			continue
		}
		if !IsValidProperty(normalized) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProperty, code)
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	if len(out) == 0 {
		return AllProperties(), nil
	}
	return out, nil
}
