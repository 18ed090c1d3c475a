package outline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-curriculum/internal/identity"
	"github.com/goliatone/go-curriculum/lessons"
	"github.com/goliatone/go-curriculum/outline"
	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

// goalPrefix marks the paragraph under a level heading that states the level's
// learning goal, e.g. "Goal: render state and react to input."
const goalPrefix = "goal:"

// ParseOutline turns the index document and its structural analysis into an
// outline model. Level-2 headings open levels; links below a level heading
// become its entries in source order.
func ParseOutline(doc *interfaces.Document, structure *interfaces.DocumentStructure, code string) (*outline.Outline, error) {
	if doc == nil {
		return nil, fmt.Errorf("outline: nil document")
	}
	if structure == nil {
		return nil, fmt.Errorf("outline: nil document structure")
	}

	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		code = outline.DefaultCode
	}

	title := strings.TrimSpace(structure.Title)
	if title == "" {
		title = strings.TrimSpace(doc.FrontMatter.Title)
	}
	if title == "" {
		return nil, fmt.Errorf("%w: %s", outline.ErrTitleRequired, doc.FilePath)
	}

	result := &outline.Outline{
		ID:    identity.OutlineUUID(code),
		Code:  code,
		Path:  doc.FilePath,
		Title: title,
	}

	spans := levelSpans(structure.Headings)
	if len(spans) == 0 {
		return nil, fmt.Errorf("%w: %s", outline.ErrNoLevels, doc.FilePath)
	}

	bodyLines := strings.Split(string(doc.Body), "\n")

	for i, span := range spans {
		level := &outline.Level{
			ID:        identity.LevelUUID(result.ID, i+1),
			OutlineID: result.ID,
			Position:  i + 1,
			Title:     span.title,
		}

		if goal := findGoal(bodyLines, span.start, span.end); goal != "" {
			level.Goal = &goal
		}

		for _, link := range linksInSpan(structure.Links, span) {
			ordinal, err := lessons.ParseOrdinal(link.Destination)
			if err != nil {
				ordinal = 0
			}
			level.Entries = append(level.Entries, &outline.Entry{
				ID:       identity.EntryUUID(level.ID, link.Destination),
				LevelID:  level.ID,
				Position: len(level.Entries) + 1,
				Label:    link.Text,
				Target:   link.Destination,
				Ordinal:  ordinal,
			})
		}

		result.Levels = append(result.Levels, level)
	}

	return result, nil
}

type levelSpan struct {
	title string
	start int
	end   int
}

// levelSpans returns the line ranges owned by each level-2 heading. A level
// ends where the next H1 or H2 begins.
func levelSpans(headings []interfaces.Heading) []levelSpan {
	var spans []levelSpan
	for _, heading := range headings {
		if heading.Level != 2 {
			if heading.Level == 1 && len(spans) > 0 && spans[len(spans)-1].end == 0 {
				spans[len(spans)-1].end = heading.Line
			}
			continue
		}
		if len(spans) > 0 && spans[len(spans)-1].end == 0 {
			spans[len(spans)-1].end = heading.Line
		}
		spans = append(spans, levelSpan{
			title: heading.Text,
			start: heading.Line,
		})
	}
	return spans
}

func linksInSpan(links []interfaces.Link, span levelSpan) []interfaces.Link {
	var out []interfaces.Link
	for _, link := range links {
		if link.Line <= span.start {
			continue
		}
		if span.end > 0 && link.Line >= span.end {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(link.Destination), ".md") {
			continue
		}
		out = append(out, link)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Line < out[j].Line
	})
	return out
}

// findGoal scans the lines between a level heading and the first list item for
// a paragraph carrying the goal prefix.
func findGoal(lines []string, start, end int) string {
	if end == 0 || end > len(lines)+1 {
		end = len(lines) + 1
	}
	for i := start; i < end-1; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "#") {
			break
		}
		if strings.HasPrefix(strings.ToLower(line), goalPrefix) {
			return strings.TrimSpace(line[len(goalPrefix):])
		}
		break
	}
	return ""
}
