package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-curriculum/cmd/curriculum/internal/bootstrap"
	checkercmd "github.com/goliatone/go-curriculum/internal/commands/checker"
	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	code, err := runCheck(os.Args[1:], os.Stdout)
	if err != nil {
		log.Fatalf("curriculum check: %v", err)
	}
	os.Exit(code)
}

func runCheck(args []string, out *os.File) (int, error) {
	fs := flag.NewFlagSet("curriculum-check", flag.ExitOnError)
	lessonsDir := fs.String("lessons-dir", ".", "Path to the directory holding lesson files and the index")
	indexFile := fs.String("index", "README.md", "Index document, relative to the lessons directory")
	properties := fs.String("properties", "", "Comma separated property codes to run (p1..p5, empty runs all)")
	failOnWarnings := fs.Bool("fail-on-warnings", false, "Exit non-zero when warnings are reported")

	if err := fs.Parse(args); err != nil {
		return 2, err
	}

	module, err := moduleBuilder(bootstrap.Options{
		LessonsDir:    *lessonsDir,
		IndexFile:     *indexFile,
		EnableChecker: true,
	})
	if err != nil {
		return 2, fmt.Errorf("bootstrap module: %w", err)
	}
	if module.Checker == nil {
		return 2, fmt.Errorf("checker service not configured")
	}

	handler := checkercmd.NewRunCheckHandler(module.Checker, module.Logger, checkercmd.FeatureGates{}, func(_ context.Context, report *interfaces.CheckReport) {
		printReport(out, report)
	})

	msg := checkercmd.RunCheckCommand{
		IndexPath:      *indexFile,
		Properties:     bootstrap.SplitList(*properties),
		FailOnWarnings: *failOnWarnings,
	}
	if err := handler.Execute(context.Background(), msg); err != nil {
		if errors.Is(err, checkercmd.ErrCheckFailed) {
			return 1, nil
		}
		return 2, fmt.Errorf("execute check command: %w", err)
	}

	return 0, nil
}

func printReport(out *os.File, report *interfaces.CheckReport) {
	if report == nil {
		return
	}
	for _, issue := range report.Issues {
		location := issue.Path
		if issue.Line > 0 {
			location = fmt.Sprintf("%s:%d", issue.Path, issue.Line)
		}
		tag := issue.Code
		if issue.Property != "" {
			tag = issue.Property + "/" + issue.Code
		}
		fmt.Fprintf(out, "%s [%s] %s: %s\n", issue.Severity, tag, location, issue.Message)
	}

	errorCount := report.CountBySeverity(interfaces.SeverityError)
	warningCount := report.CountBySeverity(interfaces.SeverityWarning)
	fmt.Fprintf(out, "checked %d lessons: %d errors, %d warnings\n", report.Lessons, errorCount, warningCount)
}
