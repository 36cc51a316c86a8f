package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/erraggy/docpatch/differ"
	"github.com/erraggy/docpatch/internal/cliutil"
	"github.com/erraggy/docpatch/patch"
)

// ApplyFlags contains flags for the apply command
type ApplyFlags struct {
	Document string
	Output   string
	DryRun   bool
	Diff     bool
	Format   string
	Quiet    bool
	NoColor  bool
	NFC      bool
	MaxSize  int64
	Verbose  bool
}

// SetupApplyFlags creates and configures a FlagSet for the apply command.
// Returns the FlagSet and an ApplyFlags struct with bound flag variables.
func SetupApplyFlags() (*flag.FlagSet, *ApplyFlags) {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	flags := &ApplyFlags{}

	fs.StringVar(&flags.Document, "d", "", "document to patch (default: the patch file's document field)")
	fs.StringVar(&flags.Document, "document", "", "document to patch (default: the patch file's document field)")
	fs.StringVar(&flags.Output, "o", "", "write the patched document to this file instead of in place")
	fs.StringVar(&flags.Output, "output", "", "write the patched document to this file instead of in place")
	fs.BoolVar(&flags.DryRun, "n", false, "evaluate every edit without writing")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "evaluate every edit without writing")
	fs.BoolVar(&flags.Diff, "diff", false, "print a unified diff of the change")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: no report, only errors")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: no report, only errors")
	fs.BoolVar(&flags.NoColor, "no-color", false, "disable colored output")
	fs.BoolVar(&flags.NFC, "nfc", false, "NFC-normalize the document and edits before matching")
	fs.Int64Var(&flags.MaxSize, "max-size", patch.DefaultMaxDocumentSize, "maximum document size in bytes (0 disables the limit)")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose: debug logging to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "verbose: debug logging to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: docpatch apply [flags] <patch-file> [document]\n\n")
		Writef(fs.Output(), "Apply a patch set's edits, in order, to a document.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  docpatch apply fixes.yaml\n")
		Writef(fs.Output(), "  docpatch apply fixes.yaml templates/update.md.template\n")
		Writef(fs.Output(), "  docpatch apply --dry-run --diff fixes.yaml\n")
		Writef(fs.Output(), "  docpatch apply -o patched.md --format json fixes.yaml\n")
		Writef(fs.Output(), "\nNotes:\n")
		Writef(fs.Output(), "  - Edits run in order; each replaces the first occurrence of its matcher\n")
		Writef(fs.Output(), "  - An edit whose effect is already present is skipped, so reruns are safe\n")
		Writef(fs.Output(), "  - If a required edit is not found, nothing is written\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    All required edits applied or already present\n")
		Writef(fs.Output(), "  1    A required edit was not found, or another error occurred\n")
	}

	return fs, flags
}

// applyReport is the structured (json/yaml) form of an apply run.
type applyReport struct {
	patch.ApplyResult `yaml:",inline"`

	Groups  []patch.GroupSummary `yaml:"groups,omitempty" json:"groups,omitempty"`
	Summary string               `yaml:"summary" json:"summary"`
	Diff    string               `yaml:"diff,omitempty" json:"diff,omitempty"`
}

// HandleApply executes the apply command
func HandleApply(args []string) error {
	fs, flags := SetupApplyFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return fmt.Errorf("apply requires a patch file and an optional document")
	}
	patchPath := fs.Arg(0)

	docPath := flags.Document
	if fs.NArg() == 2 {
		if docPath != "" && docPath != fs.Arg(1) {
			return fmt.Errorf("document given twice: --document %s and argument %s", docPath, fs.Arg(1))
		}
		docPath = fs.Arg(1)
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if flags.MaxSize < 0 {
		return fmt.Errorf("invalid max-size %d: must not be negative", flags.MaxSize)
	}

	opts := []patch.Option{
		patch.WithPatchSetFile(patchPath),
		patch.WithDryRun(flags.DryRun),
		patch.WithMaxDocumentSize(flags.MaxSize),
		patch.WithNormalizeUnicode(flags.NFC),
	}
	if docPath != "" {
		opts = append(opts, patch.WithDocumentPath(docPath))
	}
	if flags.Output != "" {
		opts = append(opts, patch.WithOutputPath(filepath.Clean(flags.Output)))
	}
	if flags.Verbose {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, patch.WithLogger(patch.NewSlogAdapter(slog.New(handler))))
	}

	result, err := patch.ApplyWithOptions(opts...)
	if result == nil {
		return fmt.Errorf("applying patch set: %w", err)
	}

	if rerr := renderApply(os.Stdout, flags, result); rerr != nil {
		return rerr
	}
	if err != nil {
		return fmt.Errorf("applying patch set: %w", err)
	}
	return nil
}

// renderApply writes the report for result to w according to flags.
func renderApply(w io.Writer, flags *ApplyFlags, result *patch.ApplyResult) error {
	var diff string
	if flags.Diff {
		from, to := "a/document", "b/document"
		if result.DocumentPath != "" {
			from = "a/" + filepath.ToSlash(result.DocumentPath)
			to = "b/" + filepath.ToSlash(result.DocumentPath)
		}
		diff = differ.Unified(result.Original, result.Content, from, to)
	}

	if flags.Format != FormatText {
		report := applyReport{
			ApplyResult: *result,
			Groups:      result.Groups(),
			Summary:     result.Summary(),
			Diff:        diff,
		}
		return OutputStructured(w, report, flags.Format)
	}

	if flags.Quiet {
		return nil
	}

	p := cliutil.NewPalette(cliutil.ColorEnabled(w, flags.NoColor))
	Writef(w, "%s %s\n", p.Header("Patching"), result.DocumentPath)
	RenderEdits(w, p, result)
	RenderGroups(w, p, result)
	if diff != "" {
		Writef(w, "\n")
		RenderDiff(w, p, diff)
	}
	RenderOutcome(w, p, result)
	if result.Written && result.OutputPath != result.DocumentPath {
		Writef(w, "\nOutput written to: %s\n", result.OutputPath)
	}
	return nil
}
