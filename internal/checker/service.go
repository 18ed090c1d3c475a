// Package checker implements the structural checks that keep a lessons
// directory and its index document consistent.
package checker

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/goliatone/go-curriculum/checker"
	"github.com/goliatone/go-curriculum/internal/logging"
	"github.com/goliatone/go-curriculum/lessons"
	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

// ServiceConfig wires the checker with its collaborators and defaults.
type ServiceConfig struct {
	Markdown interfaces.MarkdownService
	Logger   interfaces.Logger
	// LessonsDir is the default directory inspected when CheckOptions leaves
	// it empty.
	LessonsDir string
	// IndexPath is the default index document, relative to LessonsDir.
	IndexPath string
}

// Service implements interfaces.CheckerService.
type Service struct {
	markdown   interfaces.MarkdownService
	logger     interfaces.Logger
	lessonsDir string
	indexPath  string
}

// NewService builds a checker service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Markdown == nil {
		return nil, fmt.Errorf("checker: markdown service is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	indexPath := cfg.IndexPath
	if indexPath == "" {
		indexPath = "README.md"
	}
	lessonsDir := cfg.LessonsDir
	if lessonsDir == "" {
		lessonsDir = "."
	}

	return &Service{
		markdown:   cfg.Markdown,
		logger:     logger,
		lessonsDir: lessonsDir,
		indexPath:  indexPath,
	}, nil
}

// lessonInfo pairs a lesson document with its structural analysis.
type lessonInfo struct {
	doc       *interfaces.Document
	structure *interfaces.DocumentStructure
	ordinal   int
}

// Check runs the selected structural properties over the lessons directory
// and its index document.
func (s *Service) Check(ctx context.Context, opts interfaces.CheckOptions) (*interfaces.CheckReport, error) {
	dir := opts.LessonsDir
	if strings.TrimSpace(dir) == "" {
		dir = s.lessonsDir
	}
	indexPath := opts.IndexPath
	if strings.TrimSpace(indexPath) == "" {
		indexPath = s.indexPath
	}

	properties, err := checker.NormalizeProperties(opts.Properties)
	if err != nil {
		return nil, err
	}
	selected := make(map[string]struct{}, len(properties))
	for _, property := range properties {
		selected[property] = struct{}{}
	}

	docs, failures, err := s.markdown.ScanDirectory(ctx, dir, interfaces.LoadOptions{Pattern: "*.md"})
	if err != nil {
		return nil, err
	}

	report := &interfaces.CheckReport{
		LessonsDir: dir,
		IndexPath:  indexPath,
	}

	for _, failure := range failures {
		report.Issues = append(report.Issues, interfaces.CheckIssue{
			Code:     checker.CodeLessonUnreadable,
			Severity: interfaces.SeverityError,
			Path:     failure.Path,
			Message:  fmt.Sprintf("file could not be read: %v", failure.Err),
		})
	}

	var index *lessonInfo
	var lessonInfos []*lessonInfo
	paths := make(map[string]struct{}, len(docs))

	for _, doc := range docs {
		paths[doc.FilePath] = struct{}{}

		structure, err := s.markdown.Analyze(ctx, doc)
		if err != nil {
			return nil, err
		}

		info := &lessonInfo{doc: doc, structure: structure}

		if matchesIndex(doc.FilePath, indexPath) {
			index = info
			continue
		}
		if ordinal, err := lessons.ParseOrdinal(doc.FilePath); err == nil {
			info.ordinal = ordinal
			lessonInfos = append(lessonInfos, info)
		}
	}

	report.Lessons = len(lessonInfos)

	if _, ok := selected[checker.PropertyIndexTargets]; ok {
		s.checkIndexTargets(report, index, indexPath, paths)
	}
	if _, ok := selected[checker.PropertyLessonStructure]; ok {
		s.checkLessonStructure(report, lessonInfos)
	}
	if _, ok := selected[checker.PropertyOrdinals]; ok {
		s.checkOrdinals(report, index, lessonInfos)
	}
	if _, ok := selected[checker.PropertyFences]; ok {
		s.checkFences(report, index, lessonInfos)
	}
	if _, ok := selected[checker.PropertyDuplicates]; ok {
		s.checkDuplicates(report, lessonInfos)
	}

	s.logger.Info("check finished",
		"dir", dir,
		"lessons", report.Lessons,
		"errors", report.CountBySeverity(interfaces.SeverityError),
		"warnings", report.CountBySeverity(interfaces.SeverityWarning),
	)
	return report, nil
}

// checkIndexTargets verifies every index link resolves to an existing file.
func (s *Service) checkIndexTargets(report *interfaces.CheckReport, index *lessonInfo, indexPath string, paths map[string]struct{}) {
	if index == nil {
		report.Issues = append(report.Issues, interfaces.CheckIssue{
			Property: checker.PropertyIndexTargets,
			Code:     checker.CodeIndexMissing,
			Severity: interfaces.SeverityError,
			Path:     indexPath,
			Message:  "index document not found",
		})
		return
	}

	base := path.Dir(index.doc.FilePath)
	for _, link := range index.structure.Links {
		if !isRelativeMarkdown(link.Destination) {
			continue
		}
		target := resolveTarget(base, link.Destination)
		if _, ok := paths[target]; ok {
			continue
		}
		report.Issues = append(report.Issues, interfaces.CheckIssue{
			Property: checker.PropertyIndexTargets,
			Code:     checker.CodeIndexTargetMissing,
			Severity: interfaces.SeverityError,
			Path:     index.doc.FilePath,
			Line:     link.Line,
			Message:  fmt.Sprintf("index entry %q links to missing file %s", link.Text, link.Destination),
		})
	}
}

// checkLessonStructure verifies titles and section headings.
func (s *Service) checkLessonStructure(report *interfaces.CheckReport, infos []*lessonInfo) {
	for _, info := range infos {
		if strings.TrimSpace(info.structure.Title) == "" {
			report.Issues = append(report.Issues, interfaces.CheckIssue{
				Property: checker.PropertyLessonStructure,
				Code:     checker.CodeLessonTitleMissing,
				Severity: interfaces.SeverityError,
				Path:     info.doc.FilePath,
				Message:  "lesson has no level-1 heading",
			})
		}

		sections := 0
		for _, heading := range info.structure.Headings {
			if heading.Level >= 2 {
				sections++
			}
		}
		if sections == 0 {
			report.Issues = append(report.Issues, interfaces.CheckIssue{
				Property: checker.PropertyLessonStructure,
				Code:     checker.CodeLessonSectionsMissing,
				Severity: interfaces.SeverityError,
				Path:     info.doc.FilePath,
				Message:  "lesson has no section headings",
			})
		}
	}
}

// checkOrdinals verifies filename ordinals are unique, match the index
// ordering, and are mentioned by the lesson's top heading.
func (s *Service) checkOrdinals(report *interfaces.CheckReport, index *lessonInfo, infos []*lessonInfo) {
	byOrdinal := make(map[int]string, len(infos))
	for _, info := range infos {
		if first, ok := byOrdinal[info.ordinal]; ok {
			report.Issues = append(report.Issues, interfaces.CheckIssue{
				Property: checker.PropertyOrdinals,
				Code:     checker.CodeOrdinalDuplicate,
				Severity: interfaces.SeverityError,
				Path:     info.doc.FilePath,
				Message:  fmt.Sprintf("ordinal %d already used by %s", info.ordinal, first),
			})
			continue
		}
		byOrdinal[info.ordinal] = info.doc.FilePath
	}

	for _, info := range infos {
		title := info.structure.Title
		if strings.TrimSpace(title) == "" {
			continue
		}
		headingOrdinal, ok := lessons.HeadingOrdinal(title)
		if !ok {
			report.Issues = append(report.Issues, interfaces.CheckIssue{
				Property: checker.PropertyOrdinals,
				Code:     checker.CodeOrdinalMismatch,
				Severity: interfaces.SeverityWarning,
				Path:     info.doc.FilePath,
				Message:  fmt.Sprintf("top heading does not mention lesson %d", info.ordinal),
			})
			continue
		}
		if headingOrdinal != info.ordinal {
			report.Issues = append(report.Issues, interfaces.CheckIssue{
				Property: checker.PropertyOrdinals,
				Code:     checker.CodeOrdinalMismatch,
				Severity: interfaces.SeverityError,
				Path:     info.doc.FilePath,
				Message:  fmt.Sprintf("top heading claims lesson %d, filename says %d", headingOrdinal, info.ordinal),
			})
		}
	}

	if index == nil {
		return
	}

	base := path.Dir(index.doc.FilePath)
	position := 0
	seenTargets := make(map[int]string)
	for _, link := range index.structure.Links {
		if !isRelativeMarkdown(link.Destination) {
			continue
		}
		ordinal, err := lessons.ParseOrdinal(link.Destination)
		if err != nil {
			continue
		}
		position++

		target := resolveTarget(base, link.Destination)
		if first, ok := seenTargets[ordinal]; ok {
			report.Issues = append(report.Issues, interfaces.CheckIssue{
				Property: checker.PropertyOrdinals,
				Code:     checker.CodeOrdinalDuplicate,
				Severity: interfaces.SeverityError,
				Path:     index.doc.FilePath,
				Line:     link.Line,
				Message:  fmt.Sprintf("index references lesson %d twice (first at %s)", ordinal, first),
			})
			continue
		}
		seenTargets[ordinal] = target

		if ordinal != position {
			report.Issues = append(report.Issues, interfaces.CheckIssue{
				Property: checker.PropertyOrdinals,
				Code:     checker.CodeOrdinalMismatch,
				Severity: interfaces.SeverityError,
				Path:     index.doc.FilePath,
				Line:     link.Line,
				Message:  fmt.Sprintf("index position %d links to lesson %d", position, ordinal),
			})
		}
	}
}

// checkFences verifies every fence delimiter is accounted for by the parse.
func (s *Service) checkFences(report *interfaces.CheckReport, index *lessonInfo, infos []*lessonInfo) {
	targets := infos
	if index != nil {
		targets = append([]*lessonInfo{index}, infos...)
	}

	for _, info := range targets {
		if info.structure.UnclosedFence {
			report.Issues = append(report.Issues, interfaces.CheckIssue{
				Property: checker.PropertyFences,
				Code:     checker.CodeFenceUnbalanced,
				Severity: interfaces.SeverityError,
				Path:     info.doc.FilePath,
				Message:  "document ends inside an open code fence",
			})
			continue
		}
		if info.structure.FenceOpeners != len(info.structure.Fences) {
			report.Issues = append(report.Issues, interfaces.CheckIssue{
				Property: checker.PropertyFences,
				Code:     checker.CodeFenceUnbalanced,
				Severity: interfaces.SeverityError,
				Path:     info.doc.FilePath,
				Message: fmt.Sprintf("source shows %d fence openers but the parse produced %d blocks",
					info.structure.FenceOpeners, len(info.structure.Fences)),
			})
		}
	}
}

// checkDuplicates verifies no two lessons claim the same heading number.
func (s *Service) checkDuplicates(report *interfaces.CheckReport, infos []*lessonInfo) {
	byHeading := make(map[int]string, len(infos))
	for _, info := range infos {
		headingOrdinal, ok := lessons.HeadingOrdinal(info.structure.Title)
		if !ok {
			continue
		}
		if first, ok := byHeading[headingOrdinal]; ok {
			report.Issues = append(report.Issues, interfaces.CheckIssue{
				Property: checker.PropertyDuplicates,
				Code:     checker.CodeDuplicateHeadingOrdinal,
				Severity: interfaces.SeverityError,
				Path:     info.doc.FilePath,
				Message:  fmt.Sprintf("heading claims lesson %d, already claimed by %s", headingOrdinal, first),
			})
			continue
		}
		byHeading[headingOrdinal] = info.doc.FilePath
	}
}

func matchesIndex(filePath, indexPath string) bool {
	clean := strings.TrimPrefix(path.Clean(filePath), "./")
	target := strings.TrimPrefix(path.Clean(indexPath), "./")
	return clean == target || path.Base(clean) == target
}

func isRelativeMarkdown(destination string) bool {
	dest := strings.TrimSpace(destination)
	if dest == "" {
		return false
	}
	if strings.Contains(dest, "://") || strings.HasPrefix(dest, "//") || strings.HasPrefix(dest, "#") {
		return false
	}
	if idx := strings.IndexAny(dest, "#?"); idx >= 0 {
		dest = dest[:idx]
	}
	return strings.HasSuffix(strings.ToLower(dest), ".md")
}

func resolveTarget(base, destination string) string {
	dest := strings.TrimSpace(destination)
	if idx := strings.IndexAny(dest, "#?"); idx >= 0 {
		dest = dest[:idx]
	}
	joined := path.Join(base, dest)
	return strings.TrimPrefix(joined, "./")
}
