package patch

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/erraggy/docpatch/patcherrors"
	"go.yaml.in/yaml/v4"
)

// patchFile is the on-disk shape of a patch set. It differs from PatchSet
// in accepting insert edits and an optional required flag.
type patchFile struct {
	Version  string      `yaml:"patchset"`
	Info     Info        `yaml:"info"`
	Document string      `yaml:"document"`
	Edits    []editEntry `yaml:"edits"`
}

type editEntry struct {
	Name        string `yaml:"name"`
	Group       string `yaml:"group"`
	Description string `yaml:"description"`
	Match       string `yaml:"match"`
	Replace     string `yaml:"replace"`
	Insert      string `yaml:"insert"`
	Before      string `yaml:"before"`
	After       string `yaml:"after"`
	Regexp      bool   `yaml:"regexp"`
	Required    *bool  `yaml:"required"`
	Check       string `yaml:"check"`
	Marker      string `yaml:"marker"`
}

// toEdit converts an entry to an Edit. Insert entries become a match on
// the anchor with a marker check on the inserted text.
func (e editEntry) toEdit(index int) (Edit, error) {
	path := fmt.Sprintf("edits[%d]", index)
	isInsert := e.Before != "" || e.After != ""

	var edit Edit
	switch {
	case isInsert:
		if e.Before != "" && e.After != "" {
			return Edit{}, &patcherrors.ValidationError{Path: path, Message: "insert edit must set only one of before or after"}
		}
		if e.Match != "" || e.Replace != "" {
			return Edit{}, &patcherrors.ValidationError{Path: path, Message: "insert edit cannot also set match or replace"}
		}
		if e.Insert == "" {
			return Edit{}, &patcherrors.ValidationError{Path: path + ".insert", Message: "insert text is required"}
		}
		if e.Regexp {
			return Edit{}, &patcherrors.ValidationError{Path: path + ".regexp", Message: "insert anchors are literal text"}
		}
		if e.Before != "" {
			edit = InsertBefore(e.Before, e.Insert)
		} else {
			edit = InsertAfter(e.After, e.Insert)
		}
		// An explicit check or marker overrides the insert default.
		if e.Check != "" {
			edit.Check = CheckMode(e.Check)
			edit.Marker = e.Marker
		} else if e.Marker != "" {
			edit.Marker = e.Marker
		}
	case e.Insert != "":
		return Edit{}, &patcherrors.ValidationError{Path: path + ".insert", Message: "insert requires before or after"}
	default:
		edit = Edit{
			Match:    e.Match,
			Replace:  e.Replace,
			Regexp:   e.Regexp,
			Required: true,
			Check:    CheckMode(e.Check),
			Marker:   e.Marker,
		}
	}

	edit.Name = e.Name
	edit.Group = e.Group
	edit.Description = e.Description
	if e.Required != nil {
		edit.Required = *e.Required
	}
	return edit, nil
}

// ParsePatchSet parses a patch set from YAML or JSON bytes.
//
// Structural problems that cannot be represented in a PatchSet (such as an
// insert edit with both before and after) are reported as a
// *patcherrors.ValidationError. Call Validate for the remaining checks.
func ParsePatchSet(data []byte) (*PatchSet, error) {
	var f patchFile

	// yaml.Unmarshal handles both YAML and JSON
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &patcherrors.ParseError{Message: "invalid patch file", Cause: err}
	}

	ps := &PatchSet{
		Version:  f.Version,
		Info:     f.Info,
		Document: f.Document,
		Edits:    make([]Edit, 0, len(f.Edits)),
	}
	for i, entry := range f.Edits {
		edit, err := entry.toEdit(i)
		if err != nil {
			return nil, err
		}
		ps.Edits = append(ps.Edits, edit)
	}
	return ps, nil
}

// ParsePatchSetFile parses a patch set from a file path.
func ParsePatchSetFile(path string) (*PatchSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &patcherrors.IOError{Op: "read", Path: path, Cause: err}
	}

	ps, err := ParsePatchSet(data)
	if err != nil {
		var pe *patcherrors.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return nil, pe
		}
		return nil, fmt.Errorf("patch: %s: %w", path, err)
	}

	ps.source = path
	return ps, nil
}

// IsPatchSetDocument checks if the given bytes appear to be a patch set.
//
// This is a heuristic check that looks for the "patchset" version field.
func IsPatchSetDocument(data []byte) bool {
	return bytes.Contains(data, []byte("patchset:")) ||
		bytes.Contains(data, []byte(`"patchset":`))
}

// MarshalPatchSet serializes a patch set to YAML bytes. Insert edits are
// written in their match/replace form.
func MarshalPatchSet(ps *PatchSet) ([]byte, error) {
	data, err := yaml.Marshal(ps)
	if err != nil {
		return nil, fmt.Errorf("patch: failed to marshal: %w", err)
	}
	return data, nil
}
