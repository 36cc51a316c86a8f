package patch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/erraggy/docpatch/internal/fileutil"
	"github.com/erraggy/docpatch/patcherrors"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxDocumentSize is the default limit on document size (16 MiB).
const DefaultMaxDocumentSize int64 = 16 << 20

// Applier applies patch sets to documents.
type Applier struct {
	// DryRun evaluates every edit but never writes the document.
	DryRun bool

	// OutputPath, when set, receives the patched content instead of the
	// document itself.
	OutputPath string

	// MaxDocumentSize rejects larger documents with a ResourceLimitError.
	// Zero disables the limit.
	MaxDocumentSize int64

	// NormalizeUnicode converts the document and all edit text to NFC
	// before matching. The written document is NFC as well.
	NormalizeUnicode bool

	// Logger receives progress messages. Nil means NopLogger.
	Logger Logger
}

// NewApplier creates a new Applier with default settings.
func NewApplier() *Applier {
	return &Applier{
		MaxDocumentSize: DefaultMaxDocumentSize,
	}
}

func (a *Applier) logger() Logger {
	if a.Logger == nil {
		return NopLogger{}
	}
	return a.Logger
}

// Apply applies a patch set to the document at documentPath.
//
// The document is read once, every edit runs in order against the
// in-memory buffer, and the result is written back once at the end. When a
// required edit is not found the returned error wraps
// *patcherrors.PatchNotFoundError, the returned result still lists every
// edit's outcome, and the file on disk is left untouched. A document whose
// content did not change is not rewritten.
func (a *Applier) Apply(documentPath string, ps *PatchSet) (*ApplyResult, error) {
	log := a.logger().With("document", documentPath)

	data, err := a.readDocument(documentPath)
	if err != nil {
		return nil, err
	}
	log.Debug("document loaded", "bytes", len(data))

	result, err := a.apply(string(data), ps, log)
	if result != nil {
		result.DocumentPath = documentPath
	}
	if err != nil {
		var nf *patcherrors.PatchNotFoundError
		if errors.As(err, &nf) {
			nf.Path = documentPath
		}
		return result, err
	}

	target := documentPath
	if a.OutputPath != "" {
		target = a.OutputPath
	}
	result.OutputPath = target

	if err := a.write(result, target, target != documentPath, log); err != nil {
		return result, err
	}
	return result, nil
}

// ApplyContent applies a patch set to in-memory content. Nothing is read
// from disk; the result is written only when OutputPath is set.
func (a *Applier) ApplyContent(content string, ps *PatchSet) (*ApplyResult, error) {
	log := a.logger()

	if a.MaxDocumentSize > 0 && int64(len(content)) > a.MaxDocumentSize {
		return nil, &patcherrors.ResourceLimitError{
			ResourceType: "document_size",
			Limit:        a.MaxDocumentSize,
			Actual:       int64(len(content)),
		}
	}

	result, err := a.apply(content, ps, log)
	if err != nil {
		return result, err
	}

	if a.OutputPath != "" {
		result.OutputPath = a.OutputPath
		if err := a.write(result, a.OutputPath, true, log); err != nil {
			return result, err
		}
	}
	return result, nil
}

// readDocument loads the document, enforcing MaxDocumentSize.
func (a *Applier) readDocument(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &patcherrors.IOError{Op: "read", Path: path, Cause: err}
	}
	if a.MaxDocumentSize > 0 && info.Size() > a.MaxDocumentSize {
		return nil, &patcherrors.ResourceLimitError{
			ResourceType: "document_size",
			Limit:        a.MaxDocumentSize,
			Actual:       info.Size(),
			Message:      path,
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &patcherrors.IOError{Op: "read", Path: path, Cause: err}
	}
	return data, nil
}

// write persists the result unless this is a dry run. Unchanged content
// is only written when it goes to a separate output file. A separate
// output file must not be a symlink.
func (a *Applier) write(result *ApplyResult, target string, separateOutput bool, log Logger) error {
	if a.DryRun {
		result.DryRun = true
		log.Debug("dry run, not writing", "target", target)
		return nil
	}
	if !result.HasChanges() && !separateOutput {
		log.Debug("document unchanged, not writing")
		return nil
	}
	dest := target
	if separateOutput {
		if err := fileutil.RejectSymlink(target); err != nil {
			return &patcherrors.IOError{Op: "write", Path: target, Cause: err}
		}
	} else {
		// A symlinked document is patched through the link: the link's
		// target is replaced and the link itself stays in place.
		resolved, err := filepath.EvalSymlinks(target)
		if err != nil {
			return &patcherrors.IOError{Op: "write", Path: target, Cause: err}
		}
		dest = resolved
	}
	if err := fileutil.WriteFileAtomic(dest, []byte(result.Content), fileutil.ReadableByAll); err != nil {
		return &patcherrors.IOError{Op: "write", Path: target, Cause: err}
	}
	result.Written = true
	log.Info("document written", "target", target, "bytes", len(result.Content))
	return nil
}

// apply runs every edit against content. It performs no I/O.
func (a *Applier) apply(content string, ps *PatchSet, log Logger) (*ApplyResult, error) {
	if errs := Validate(ps); len(errs) > 0 {
		return nil, errs[0] // Return first validation error
	}

	original := content
	edits := ps.Edits
	if a.NormalizeUnicode {
		content = norm.NFC.String(content)
		edits = normalizeEdits(edits)
	}

	patterns := make([]*regexp.Regexp, len(edits))
	for i, edit := range edits {
		if !edit.Regexp {
			continue
		}
		re, err := regexp.Compile(edit.Match)
		if err != nil {
			return nil, &patcherrors.ValidationError{
				Path:    fmt.Sprintf("edits[%d].match", i),
				Message: "invalid regular expression",
				Cause:   err,
			}
		}
		patterns[i] = re
	}

	result := &ApplyResult{
		Original: original,
		Results:  make([]EditResult, 0, len(edits)),
	}

	var notFound *patcherrors.PatchNotFoundError
	buf := content

	// Apply each edit sequentially
	for i, edit := range edits {
		res := EditResult{
			Index:    i,
			Name:     edit.Name,
			Group:    edit.Group,
			Required: edit.Required,
			Offset:   -1,
		}

		if notFound != nil {
			res.Outcome = OutcomeSkipped
			result.Skipped++
			result.Results = append(result.Results, res)
			continue
		}

		if edit.alreadyPresent(buf) {
			res.Outcome = OutcomeAlreadyPresent
			result.AlreadyPresent++
			result.Results = append(result.Results, res)
			log.Info("edit already applied", "edit", res.Label())
			continue
		}

		start, end, replacement, ok := edit.locate(buf, patterns[i])
		if !ok {
			res.Outcome = OutcomeNotFound
			result.NotFound++
			result.Results = append(result.Results, res)
			if edit.Required {
				notFound = &patcherrors.PatchNotFoundError{
					EditIndex: i,
					Name:      edit.Name,
					Matcher:   edit.Match,
				}
				log.Error("required edit not found", "edit", res.Label())
			} else {
				log.Warn("optional edit not found", "edit", res.Label())
			}
			continue
		}

		buf = buf[:start] + replacement + buf[end:]
		res.Outcome = OutcomeApplied
		res.Offset = start
		result.Applied++
		result.Results = append(result.Results, res)
		log.Debug("edit applied", "edit", res.Label(), "offset", start)
	}

	if notFound != nil {
		result.Aborted = true
		result.Content = original
		return result, notFound
	}

	result.Content = buf
	return result, nil
}

// normalizeEdits returns NFC copies of the edits' text fields.
func normalizeEdits(edits []Edit) []Edit {
	out := make([]Edit, len(edits))
	for i, e := range edits {
		e.Match = norm.NFC.String(e.Match)
		e.Replace = norm.NFC.String(e.Replace)
		e.Marker = norm.NFC.String(e.Marker)
		out[i] = e
	}
	return out
}
