package checker

import (
	"context"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-curriculum/checker"
	markdownsvc "github.com/goliatone/go-curriculum/internal/markdown"
	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

func TestCheck_CleanCurriculumPasses(t *testing.T) {
	report := runCheck(t, cleanCurriculum(), interfaces.CheckOptions{})

	if !report.OK() {
		t.Fatalf("expected clean curriculum to pass, got %#v", report.Issues)
	}
	if report.Lessons != 3 {
		t.Fatalf("expected 3 lessons, got %d", report.Lessons)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("expected no issues, got %#v", report.Issues)
	}
}

func TestCheck_IndexTargetMissing(t *testing.T) {
	fsys := cleanCurriculum()
	delete(fsys, "lesson_3.md")

	report := runCheck(t, fsys, interfaces.CheckOptions{Properties: []string{checker.PropertyIndexTargets}})

	if report.OK() {
		t.Fatalf("expected failure for missing target")
	}
	issue := requireIssue(t, report, checker.CodeIndexTargetMissing)
	if issue.Path != "README.md" || issue.Line == 0 {
		t.Fatalf("expected index path and line, got %#v", issue)
	}
}

func TestCheck_IndexMissing(t *testing.T) {
	fsys := cleanCurriculum()
	delete(fsys, "README.md")

	report := runCheck(t, fsys, interfaces.CheckOptions{Properties: []string{checker.PropertyIndexTargets}})

	requireIssue(t, report, checker.CodeIndexMissing)
}

func TestCheck_LessonStructure(t *testing.T) {
	fsys := cleanCurriculum()
	fsys["lesson_3.md"] = file("No heading here, just prose.\n")

	report := runCheck(t, fsys, interfaces.CheckOptions{Properties: []string{checker.PropertyLessonStructure}})

	requireIssue(t, report, checker.CodeLessonTitleMissing)
	requireIssue(t, report, checker.CodeLessonSectionsMissing)
}

func TestCheck_HeadingOrdinalMismatch(t *testing.T) {
	fsys := cleanCurriculum()
	fsys["lesson_3.md"] = file("# Lesson 14: Dynamic Components\n\n## Recursion\n\nText.\n")

	report := runCheck(t, fsys, interfaces.CheckOptions{Properties: []string{checker.PropertyOrdinals}})

	issue := requireIssue(t, report, checker.CodeOrdinalMismatch)
	if issue.Severity != interfaces.SeverityError {
		t.Fatalf("expected error severity, got %s", issue.Severity)
	}
	if issue.Path != "lesson_3.md" {
		t.Fatalf("expected lesson_3.md, got %s", issue.Path)
	}
}

func TestCheck_HeadingOrdinalAbsentIsWarning(t *testing.T) {
	fsys := cleanCurriculum()
	fsys["lesson_3.md"] = file("# Advanced Components\n\n## Recursion\n\nText.\n")

	report := runCheck(t, fsys, interfaces.CheckOptions{Properties: []string{checker.PropertyOrdinals}})

	issue := requireIssue(t, report, checker.CodeOrdinalMismatch)
	if issue.Severity != interfaces.SeverityWarning {
		t.Fatalf("expected warning severity, got %s", issue.Severity)
	}
	if !report.OK() {
		t.Fatalf("warnings alone must not fail the report")
	}
}

func TestCheck_IndexOrderMismatch(t *testing.T) {
	fsys := cleanCurriculum()
	fsys["README.md"] = file(`# Vue.js Curriculum

## Level 1: Fundamentals

Goal: learn the basics.

- [Lesson 2: Reactive State](lesson_2.md)
- [Lesson 1: Getting Started](lesson_1.md)
- [Lesson 3: Component Basics](lesson_3.md)
`)

	report := runCheck(t, fsys, interfaces.CheckOptions{Properties: []string{checker.PropertyOrdinals}})

	mismatches := 0
	for _, issue := range report.Issues {
		if issue.Code == checker.CodeOrdinalMismatch && issue.Path == "README.md" {
			mismatches++
		}
	}
	if mismatches != 2 {
		t.Fatalf("expected 2 index order mismatches, got %#v", report.Issues)
	}
}

func TestCheck_IndexDuplicateReference(t *testing.T) {
	fsys := cleanCurriculum()
	fsys["README.md"] = file(`# Vue.js Curriculum

## Level 1: Fundamentals

- [Lesson 1: Getting Started](lesson_1.md)
- [Lesson 1 again](lesson_1.md)
`)

	report := runCheck(t, fsys, interfaces.CheckOptions{Properties: []string{checker.PropertyOrdinals}})

	requireIssue(t, report, checker.CodeOrdinalDuplicate)
}

func TestCheck_FenceUnbalanced(t *testing.T) {
	fsys := cleanCurriculum()
	fsys["lesson_3.md"] = file("# Lesson 3: Component Basics\n\n## Setup\n\n```js\nconst app = createApp()\n\nNo closing fence.\n")

	report := runCheck(t, fsys, interfaces.CheckOptions{Properties: []string{checker.PropertyFences}})

	issue := requireIssue(t, report, checker.CodeFenceUnbalanced)
	if issue.Path != "lesson_3.md" {
		t.Fatalf("expected lesson_3.md, got %s", issue.Path)
	}
}

func TestCheck_DuplicateHeadingOrdinal(t *testing.T) {
	fsys := cleanCurriculum()
	fsys["lesson_3.md"] = file("# Lesson 2: Copy Paste Mistake\n\n## Section\n\nText.\n")

	report := runCheck(t, fsys, interfaces.CheckOptions{Properties: []string{checker.PropertyDuplicates}})

	requireIssue(t, report, checker.CodeDuplicateHeadingOrdinal)
}

func TestCheck_PropertySelection(t *testing.T) {
	fsys := cleanCurriculum()
	delete(fsys, "lesson_3.md")
	fsys["lesson_2.md"] = file("No heading.\n")

	report := runCheck(t, fsys, interfaces.CheckOptions{Properties: []string{checker.PropertyLessonStructure}})

	for _, issue := range report.Issues {
		if issue.Property != checker.PropertyLessonStructure {
			t.Fatalf("unexpected property in selection run: %#v", issue)
		}
	}
}

func TestCheck_EmptyDirectoryReportsMissingIndexOnly(t *testing.T) {
	report := runCheckFS(t, fstest.MapFS{}, interfaces.CheckOptions{})

	if report.Lessons != 0 {
		t.Fatalf("expected 0 lessons, got %d", report.Lessons)
	}
	if len(report.Issues) != 1 {
		t.Fatalf("expected only the missing index issue, got %#v", report.Issues)
	}
	requireIssue(t, report, checker.CodeIndexMissing)
}

func TestCheck_UnreadableLessonReported(t *testing.T) {
	fsys := unreadableFS{FS: cleanCurriculum(), denied: "lesson_2.md"}

	report := runCheckFS(t, fsys, interfaces.CheckOptions{})

	issue := requireIssue(t, report, checker.CodeLessonUnreadable)
	if issue.Severity != interfaces.SeverityError {
		t.Fatalf("expected error severity, got %s", issue.Severity)
	}
	if issue.Path != "lesson_2.md" {
		t.Fatalf("expected lesson_2.md, got %s", issue.Path)
	}
	if report.OK() {
		t.Fatalf("unreadable lesson must fail the report")
	}
	// The remaining files still get checked.
	if report.Lessons != 2 {
		t.Fatalf("expected 2 readable lessons, got %d", report.Lessons)
	}
}

// unreadableFS denies reads of one file to simulate permission failures.
type unreadableFS struct {
	fs.FS
	denied string
}

func (u unreadableFS) Open(name string) (fs.File, error) {
	if name == u.denied {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return u.FS.Open(name)
}

func TestCheck_UnknownPropertyRejected(t *testing.T) {
	markdown := markdownsvc.NewService(markdownsvc.ServiceConfig{FS: cleanCurriculum()})
	svc, err := NewService(ServiceConfig{Markdown: markdown})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if _, err := svc.Check(context.Background(), interfaces.CheckOptions{Properties: []string{"p99"}}); err == nil {
		t.Fatalf("expected unknown property to be rejected")
	}
}

func cleanCurriculum() fstest.MapFS {
	return fstest.MapFS{
		"README.md": file(`# Vue.js Curriculum

A progressive set of hands-on lessons.

## Level 1: Fundamentals

Goal: render state and react to input.

- [Lesson 1: Getting Started](lesson_1.md)
- [Lesson 2: Reactive State](lesson_2.md)

## Level 2: Components

Goal: compose interfaces from reusable pieces.

- [Lesson 3: Component Basics](lesson_3.md)
`),
		"lesson_1.md": file("# Lesson 1: Getting Started\n\nIntro.\n\n## Prerequisites\n\nNode.js 18.\n\n## Creating a Project\n\n```bash\nnpm create vue@latest\n```\n"),
		"lesson_2.md": file("# Lesson 2: Reactive State\n\nIntro.\n\n## Declaring State\n\n```js\nconst count = ref(0)\n```\n"),
		"lesson_3.md": file("# Lesson 3: Component Basics\n\nIntro.\n\n## Registering Components\n\nText.\n"),
	}
}

func file(content string) *fstest.MapFile {
	return &fstest.MapFile{
		Data:    []byte(content),
		ModTime: time.Now().UTC(),
	}
}

func runCheck(tb testing.TB, fsys fstest.MapFS, opts interfaces.CheckOptions) *interfaces.CheckReport {
	tb.Helper()
	return runCheckFS(tb, fsys, opts)
}

func runCheckFS(tb testing.TB, fsys fs.FS, opts interfaces.CheckOptions) *interfaces.CheckReport {
	tb.Helper()

	markdown := markdownsvc.NewService(markdownsvc.ServiceConfig{FS: fsys})
	svc, err := NewService(ServiceConfig{Markdown: markdown})
	if err != nil {
		tb.Fatalf("NewService: %v", err)
	}

	report, err := svc.Check(context.Background(), opts)
	if err != nil {
		tb.Fatalf("Check: %v", err)
	}
	return report
}

func requireIssue(tb testing.TB, report *interfaces.CheckReport, code string) interfaces.CheckIssue {
	tb.Helper()
	for _, issue := range report.Issues {
		if issue.Code == code {
			return issue
		}
	}
	tb.Fatalf("expected issue %s, got %#v", code, report.Issues)
	return interfaces.CheckIssue{}
}
