package checkercmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-curriculum/checker"
)

const runCheckMessageType = "curriculum.checker.run_check"

// RunCheckCommand executes the structural property checks against a lessons
// directory and its index document. Properties selects a subset of the
// property codes; empty runs all of them.
type RunCheckCommand struct {
	// LessonsDir selects the directory holding lesson files and the index.
	LessonsDir string `json:"lessons_dir,omitempty"`
	// IndexPath overrides the index document path relative to LessonsDir.
	IndexPath string `json:"index_path,omitempty"`
	// Properties restricts the run to the named property codes.
	Properties []string `json:"properties,omitempty"`
	// FailOnWarnings escalates warning issues to run failures.
	FailOnWarnings bool `json:"fail_on_warnings,omitempty"`
}

// Type implements command.Message.
func (RunCheckCommand) Type() string { return runCheckMessageType }

// Validate rejects unknown property codes before handlers execute.
func (cmd RunCheckCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Properties, validation.Each(validation.By(func(value any) error {
			code, _ := value.(string)
			if !checker.IsValidProperty(code) {
				return validation.NewError("curriculum.checker.run_check.unknown_property", "unknown property code")
			}
			return nil
		}))),
	)
}
