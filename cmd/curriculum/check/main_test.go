package main

import (
	"context"
	"os"
	"testing"

	"github.com/goliatone/go-curriculum/cmd/curriculum/internal/bootstrap"
	"github.com/goliatone/go-curriculum/internal/logging"
	"github.com/goliatone/go-curriculum/pkg/interfaces"
)

type stubCheckerService struct {
	calls  int
	opts   interfaces.CheckOptions
	report *interfaces.CheckReport
}

func (s *stubCheckerService) Check(_ context.Context, opts interfaces.CheckOptions) (*interfaces.CheckReport, error) {
	s.calls++
	s.opts = opts
	return s.report, nil
}

func withStubModule(t *testing.T, svc *stubCheckerService) {
	t.Helper()
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Checker: svc,
			Logger:  logging.NoOp(),
		}, nil
	}
}

func TestRunCheckPassingReport(t *testing.T) {
	svc := &stubCheckerService{report: &interfaces.CheckReport{Lessons: 3}}
	withStubModule(t, svc)

	code, err := runCheck([]string{"-properties", "p1,p4"}, os.Stdout)
	if err != nil {
		t.Fatalf("runCheck returned error: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if svc.calls != 1 {
		t.Fatalf("expected one check call, got %d", svc.calls)
	}
	if len(svc.opts.Properties) != 2 {
		t.Fatalf("expected property selection to be forwarded, got %#v", svc.opts.Properties)
	}
}

func TestRunCheckFailingReport(t *testing.T) {
	svc := &stubCheckerService{report: &interfaces.CheckReport{
		Lessons: 1,
		Issues: []interfaces.CheckIssue{
			{Property: "p1", Code: "index_target_missing", Severity: interfaces.SeverityError, Path: "README.md", Line: 7},
		},
	}}
	withStubModule(t, svc)

	code, err := runCheck(nil, os.Stdout)
	if err != nil {
		t.Fatalf("runCheck returned error: %v", err)
	}
	if code != 1 {
		t.Fatalf("expected exit code 1 for failing report, got %d", code)
	}
}

func TestRunCheckFailOnWarnings(t *testing.T) {
	svc := &stubCheckerService{report: &interfaces.CheckReport{
		Lessons: 1,
		Issues: []interfaces.CheckIssue{
			{Property: "p3", Code: "ordinal_mismatch", Severity: interfaces.SeverityWarning, Path: "lesson_2.md"},
		},
	}}
	withStubModule(t, svc)

	code, err := runCheck(nil, os.Stdout)
	if err != nil {
		t.Fatalf("runCheck returned error: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected warnings to pass by default, got %d", code)
	}

	svc.calls = 0
	code, err = runCheck([]string{"-fail-on-warnings"}, os.Stdout)
	if err != nil {
		t.Fatalf("runCheck returned error: %v", err)
	}
	if code != 1 {
		t.Fatalf("expected exit code 1 with -fail-on-warnings, got %d", code)
	}
}
