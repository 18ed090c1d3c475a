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
	if err := runSync(os.Args[1:]); err != nil {
		log.Fatalf("curriculum sync: %v", err)
	}
}

func runSync(args []string) error {
	fs := flag.NewFlagSet("curriculum-sync", flag.ExitOnError)
	lessonsDir := fs.String("lessons-dir", "lessons", "Path to the directory holding lesson files")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering lesson files")
	recursive := fs.Bool("recursive", false, "Recurse into subdirectories when discovering lessons")
	includeDrafts := fs.Bool("include-drafts", false, "Sync lessons whose front matter marks them as drafts")
	deleteOrphaned := fs.Bool("delete-orphaned", false, "Remove stored lessons without a matching source file")
	dryRun := fs.Bool("dry-run", false, "Preview changes without persisting lessons")
	dbDriver := fs.String("db-driver", "sqlite", "Database driver, sqlite or postgres")
	dbDSN := fs.String("db-dsn", "", "Database DSN; empty keeps lessons in memory")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		LessonsDir: *lessonsDir,
		Pattern:    *pattern,
		Recursive:  *recursive,
		DBDriver:   *dbDriver,
		DBDSN:      *dbDSN,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	handler := lessonscmd.NewSyncDirectoryHandler(module.Lessons, module.Logger, lessonscmd.FeatureGates{})
	msg := lessonscmd.SyncDirectoryCommand{
		Directory:      ".",
		DryRun:         *dryRun,
		IncludeDrafts:  *includeDrafts,
		DeleteOrphaned: *deleteOrphaned,
	}
	if err := handler.Execute(context.Background(), msg); err != nil {
		return fmt.Errorf("execute sync command: %w", err)
	}

	fmt.Fprintln(os.Stdout, "curriculum sync command executed successfully")
	return nil
}
