package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/docpatch/internal/cliutil"
	"github.com/erraggy/docpatch/patch"
	"github.com/erraggy/docpatch/patcherrors"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Quiet   bool
	Format  string
	NoColor bool
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.NoColor, "no-color", false, "disable colored output")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: docpatch validate [flags] <patch-file>\n\n")
		Writef(fs.Output(), "Validate a patch file without applying it.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  docpatch validate fixes.yaml\n")
		Writef(fs.Output(), "  docpatch validate --format json fixes.yaml\n")
		Writef(fs.Output(), "\nValidation Checks:\n")
		Writef(fs.Output(), "  - patchset version is present and supported (%s)\n", patch.SupportedVersion)
		Writef(fs.Output(), "  - info.title is present\n")
		Writef(fs.Output(), "  - at least one edit is defined, each with a matcher\n")
		Writef(fs.Output(), "  - regexp matchers compile\n")
		Writef(fs.Output(), "  - each edit's idempotency check is usable\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Patch file is valid\n")
		Writef(fs.Output(), "  1    Patch file has errors\n")
	}

	return fs, flags
}

// validateReport is the structured form of a validate run.
type validateReport struct {
	Path   string   `yaml:"path" json:"path"`
	Title  string   `yaml:"title,omitempty" json:"title,omitempty"`
	Edits  int      `yaml:"edits" json:"edits"`
	Valid  bool     `yaml:"valid" json:"valid"`
	Errors []string `yaml:"errors,omitempty" json:"errors,omitempty"`
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate requires exactly one patch file")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	path := fs.Arg(0)
	ps, err := patch.ParsePatchSetFile(path)
	if err != nil {
		return fmt.Errorf("reading patch file: %w", err)
	}

	errs := patch.Validate(ps)
	if err := renderValidate(os.Stdout, flags, path, ps, errs); err != nil {
		return err
	}
	if len(errs) > 0 {
		return fmt.Errorf("patch file has %d validation error(s)", len(errs))
	}
	return nil
}

func renderValidate(w io.Writer, flags *ValidateFlags, path string, ps *patch.PatchSet, errs []*patcherrors.ValidationError) error {
	report := validateReport{
		Path:  path,
		Title: ps.Info.Title,
		Edits: len(ps.Edits),
		Valid: len(errs) == 0,
	}
	for _, e := range errs {
		report.Errors = append(report.Errors, e.Error())
	}

	if flags.Format != FormatText {
		return OutputStructured(w, report, flags.Format)
	}

	p := cliutil.NewPalette(cliutil.ColorEnabled(w, flags.NoColor))
	if !flags.Quiet {
		Writef(w, "Patch file: %s\n", path)
		if ps.Info.Title != "" {
			Writef(w, "Title: %s\n", ps.Info.Title)
		}
		if ps.Document != "" {
			Writef(w, "Document: %s\n", ps.Document)
		}
		Writef(w, "Edits: %d\n\n", len(ps.Edits))
	}

	if report.Valid {
		Writef(w, "%s\n", p.Success("✓ Patch file is valid"))
		return nil
	}
	Writef(w, "%s\n", p.Failure("✗ Patch file has %d error(s):", len(errs)))
	for _, msg := range report.Errors {
		Writef(w, "  - %s\n", msg)
	}
	return nil
}
