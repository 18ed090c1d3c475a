package lessonscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	importDirectoryMessageType = "curriculum.lessons.import_directory"
	syncDirectoryMessageType   = "curriculum.lessons.sync_directory"
	importOutlineMessageType   = "curriculum.lessons.import_outline"
)

// ImportDirectoryCommand triggers a filesystem walk for lesson files under the
// provided Directory. The command mirrors lessons.Service ImportDirectory
// semantics, allowing callers to supply import options that map directly onto
// interfaces.LessonImportOptions.
type ImportDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load lesson files from.
	Directory string `json:"directory"`
	// DryRun toggles preview mode to collect import diffs without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
	// IncludeDrafts imports lessons whose front matter marks them as drafts.
	IncludeDrafts bool `json:"include_drafts,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("curriculum.lessons.import_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// SyncDirectoryCommand orchestrates a lesson sync run for the provided
// Directory, applying deletion flags consistent with
// interfaces.LessonSyncOptions.
type SyncDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load lesson files from.
	Directory string `json:"directory"`
	// DryRun toggles preview mode to collect sync diffs without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
	// IncludeDrafts syncs lessons whose front matter marks them as drafts.
	IncludeDrafts bool `json:"include_drafts,omitempty"`
	// DeleteOrphaned removes stored lessons without matching lesson files when true.
	DeleteOrphaned bool `json:"delete_orphaned,omitempty"`
}

// Type implements command.Message.
func (SyncDirectoryCommand) Type() string { return syncDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd SyncDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("curriculum.lessons.sync_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// ImportOutlineCommand parses the index document at Path and persists it as
// the curriculum outline registered under Code.
type ImportOutlineCommand struct {
	// Path selects the index document (usually README.md) to parse.
	Path string `json:"path"`
	// Code names the stored outline. Empty defaults to the primary outline code.
	Code string `json:"code,omitempty"`
	// DryRun parses and validates the outline without persisting it.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportOutlineCommand) Type() string { return importOutlineMessageType }

// Validate ensures the index path is present before handlers execute.
func (cmd ImportOutlineCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("curriculum.lessons.import_outline.path_required", "path is required")
			}
			return nil
		})),
	)
}
