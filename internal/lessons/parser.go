package lessons

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/goliatone/go-curriculum/internal/identity"
	"github.com/goliatone/go-curriculum/lessons"
	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

// BuildLesson turns a loaded Markdown document and its structural analysis
// into a lesson model. The ordinal comes from the lesson_N.md filename, the
// title from the first H1 (frontmatter title as fallback), and the slug from
// frontmatter or the normalised title.
func BuildLesson(doc *interfaces.Document, structure *interfaces.DocumentStructure) (*lessons.Lesson, error) {
	if doc == nil {
		return nil, fmt.Errorf("lessons: nil document")
	}
	if structure == nil {
		return nil, fmt.Errorf("lessons: nil document structure")
	}

	ordinal, err := lessons.ParseOrdinal(doc.FilePath)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(structure.Title)
	if title == "" {
		title = strings.TrimSpace(doc.FrontMatter.Title)
	}
	if title == "" {
		return nil, fmt.Errorf("%w: %s", lessons.ErrTitleRequired, doc.FilePath)
	}

	slugValue, err := resolveSlug(doc.FrontMatter.Slug, title)
	if err != nil {
		return nil, err
	}

	body := strings.TrimSpace(string(doc.Body))
	if body == "" {
		return nil, fmt.Errorf("%w: %s", lessons.ErrBodyRequired, doc.FilePath)
	}

	lesson := &lessons.Lesson{
		ID:             identity.LessonUUID(ordinal),
		Ordinal:        ordinal,
		Slug:           slugValue,
		Title:          title,
		Path:           doc.FilePath,
		Body:           string(doc.Body),
		Checksum:       hex.EncodeToString(doc.Checksum),
		Tags:           append([]string(nil), doc.FrontMatter.Tags...),
		Draft:          doc.FrontMatter.Draft,
		Metadata:       doc.FrontMatter.Custom,
		SourceModified: doc.LastModified,
	}

	if summary := strings.TrimSpace(doc.FrontMatter.Summary); summary != "" {
		lesson.Summary = &summary
	}

	for _, heading := range structure.Headings {
		if heading.Level < 2 {
			continue
		}
		lesson.Sections = append(lesson.Sections, lessons.Section{
			Level: heading.Level,
			Title: heading.Text,
			Line:  heading.Line,
		})
	}

	for _, fence := range structure.Fences {
		lesson.Samples = append(lesson.Samples, lessons.CodeSample{
			Language: fence.Language,
			Line:     fence.Line,
		})
	}

	return lesson, nil
}

func resolveSlug(fromFrontMatter, title string) (string, error) {
	candidate := strings.TrimSpace(fromFrontMatter)
	if candidate != "" {
		if !lessons.IsValidSlug(candidate) {
			return "", fmt.Errorf("%w: %s", lessons.ErrSlugInvalid, candidate)
		}
		return candidate, nil
	}

	normalized, err := lessons.NormalizeSlug(title)
	if err != nil {
		return "", fmt.Errorf("%w: %v", lessons.ErrSlugInvalid, err)
	}
	if normalized == "" {
		return "", lessons.ErrSlugRequired
	}
	return normalized, nil
}
