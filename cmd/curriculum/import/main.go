package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-curriculum/cmd/curriculum/internal/bootstrap"
	lessonscmd "github.com/goliatone/go-curriculum/internal/commands/lessons"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runImport(os.Args[1:]); err != nil {
		log.Fatalf("curriculum import: %v", err)
	}
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("curriculum-import", flag.ExitOnError)
	lessonsDir := fs.String("lessons-dir", "lessons", "Path to the directory holding lesson files")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering lesson files")
	recursive := fs.Bool("recursive", false, "Recurse into subdirectories when discovering lessons")
	indexFile := fs.String("index", "README.md", "Index document, relative to the lessons directory")
	outlineCode := fs.String("outline-code", "", "Code under which the outline is stored")
	skipOutline := fs.Bool("skip-outline", false, "Import lessons only, skipping the index outline")
	includeDrafts := fs.Bool("include-drafts", false, "Import lessons whose front matter marks them as drafts")
	dryRun := fs.Bool("dry-run", false, "Preview changes without persisting lessons")
	dbDriver := fs.String("db-driver", "sqlite", "Database driver, sqlite or postgres")
	dbDSN := fs.String("db-dsn", "", "Database DSN; empty keeps lessons in memory")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		LessonsDir:  *lessonsDir,
		Pattern:     *pattern,
		Recursive:   *recursive,
		IndexFile:   *indexFile,
		OutlineCode: *outlineCode,
		DBDriver:    *dbDriver,
		DBDSN:       *dbDSN,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	ctx := context.Background()
	gates := lessonscmd.FeatureGates{}

	importHandler := lessonscmd.NewImportDirectoryHandler(module.Lessons, module.Logger, gates)
	importMsg := lessonscmd.ImportDirectoryCommand{
		Directory:     ".",
		DryRun:        *dryRun,
		IncludeDrafts: *includeDrafts,
	}
	if err := importHandler.Execute(ctx, importMsg); err != nil {
		return fmt.Errorf("execute import command: %w", err)
	}

	if !*skipOutline {
		outlineHandler := lessonscmd.NewImportOutlineHandler(module.Outline, module.Logger, gates)
		outlineMsg := lessonscmd.ImportOutlineCommand{
			Path:   *indexFile,
			Code:   *outlineCode,
			DryRun: *dryRun,
		}
		if err := outlineHandler.Execute(ctx, outlineMsg); err != nil {
			return fmt.Errorf("execute outline command: %w", err)
		}
	}

	fmt.Fprintln(os.Stdout, "curriculum import command executed successfully")
	return nil
}
